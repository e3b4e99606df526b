package catalogue

import "github.com/ecmwf/plume/internal/perr"

// ParameterType is the closed set of types a Parameter can declare
// (spec.md §3). ATLAS_FIELD is the opaque external gridded-field type.
type ParameterType string

const (
	Int        ParameterType = "INT"
	Bool       ParameterType = "BOOL"
	Float      ParameterType = "FLOAT"
	Double     ParameterType = "DOUBLE"
	String     ParameterType = "STRING"
	AtlasField ParameterType = "ATLAS_FIELD"
)

var validTypes = map[ParameterType]struct{}{
	Int: {}, Bool: {}, Float: {}, Double: {}, String: {}, AtlasField: {},
}

// ParseParameterType converts a configuration string to a ParameterType.
// An unrecognised string fails with perr.BadValue, per spec.md §3.
func ParseParameterType(s string) (ParameterType, error) {
	t := ParameterType(s)
	if _, ok := validTypes[t]; !ok {
		return "", perr.New(perr.BadValue, "unknown parameter type %q", s)
	}
	return t, nil
}

func (t ParameterType) String() string { return string(t) }

// Availability is the optional feed-time requirement on a Parameter.
type Availability string

const (
	Unspecified Availability = ""
	Always      Availability = "always"
	OnRequest   Availability = "on-request"
)

// ParseAvailability validates an availability string against the closed set
// {"", "always", "on-request"} (spec.md §4.1).
func ParseAvailability(s string) (Availability, error) {
	switch Availability(s) {
	case Unspecified, Always, OnRequest:
		return Availability(s), nil
	default:
		return "", perr.New(perr.BadValue, "unknown availability %q", s)
	}
}
