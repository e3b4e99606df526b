package protocol

import (
	"strconv"
	"strings"
)

// Version is a dotted MAJOR.MINOR.PATCH triple. Empty parses as 0.0.0
// (spec.md §4.3). Comparison is lexicographic-as-integers per component with
// missing trailing components treated as 0.
//
// golang.org/x/mod/semver is not used here: it requires a "v" prefix and a
// strictly well-formed semver string, whereas the spec's coercion rule
// ("missing parts -> 0", "" == "0.0.0") is looser than semver proper — see
// DESIGN.md.
type Version struct {
	Major, Minor, Patch int
}

// ParseVersion parses a dotted version string. An empty string yields the
// zero Version (0.0.0). Non-numeric components parse as 0 rather than
// failing, matching the permissive coercion the spec requires for missing
// parts.
func ParseVersion(s string) Version {
	if s == "" {
		return Version{}
	}
	parts := strings.SplitN(s, ".", 3)
	var v Version
	fields := []*int{&v.Major, &v.Minor, &v.Patch}
	for i, f := range fields {
		if i >= len(parts) {
			break
		}
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err == nil {
			*f = n
		}
	}
	return v
}

// Compare returns -1, 0, or 1 as v is less than, equal to, or greater than o.
func (v Version) Compare(o Version) int {
	if v.Major != o.Major {
		return cmpInt(v.Major, o.Major)
	}
	if v.Minor != o.Minor {
		return cmpInt(v.Minor, o.Minor)
	}
	return cmpInt(v.Patch, o.Patch)
}

// GreaterThan reports whether v > o, the comparison the negotiator uses to
// reject a plugin whose required version exceeds what's offered.
func (v Version) GreaterThan(o Version) bool { return v.Compare(o) > 0 }

func (v Version) String() string {
	return strconv.Itoa(v.Major) + "." + strconv.Itoa(v.Minor) + "." + strconv.Itoa(v.Patch)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
