// Package negotiate implements the pure matching function between a
// plugin's requirements and a host's offered parameters (spec.md §4.4).
package negotiate

import (
	"github.com/ecmwf/plume/catalogue"
	"github.com/ecmwf/plume/logging"
	"github.com/ecmwf/plume/protocol"
)

// Decision is the outcome of negotiating one plugin (spec.md §3
// "PluginDecision"). Agreed is only meaningful when Accepted is true; it is
// the union of the plugin's intrinsic requirements and every satisfied
// group's names, deduplicated.
type Decision struct {
	Accepted bool
	Agreed   []string
}

// Group is one alternative set of parameter descriptors (spec.md §4.4): a
// group is satisfied iff every name in it is offered. Groups are
// alternatives, not requirements — zero satisfied groups does not fail
// negotiation on its own.
type Group []catalogue.Parameter

// Negotiate matches requires against offers plus an optional set of grouped
// alternatives, following spec.md §4.4 steps 1-5 exactly:
//
//  1. requires' core version must not exceed what's offered.
//  2. requires' field-library version must not exceed what's offered.
//  3. every intrinsic required name must be present in offers.
//  4. each group is independently checked for full membership in offers;
//     satisfied groups contribute their names to Agreed, unsatisfied groups
//     are skipped and logged.
//  5. accept, returning the deduplicated Agreed set.
//
// Negotiate is a pure function: it has no side effects beyond the supplied
// logger and never mutates offers or requires.
func Negotiate(log logging.Logger, offers, requires *protocol.Protocol, groups []Group) Decision {
	if log == nil {
		log = logging.NoOp{}
	}

	if requires.CoreVersion().GreaterThan(offers.CoreVersion()) {
		log.Warn("negotiation rejected: required core version %s exceeds offered %s",
			requires.CoreVersion(), offers.CoreVersion())
		return Decision{Accepted: false}
	}
	if requires.FieldLibVersion().GreaterThan(offers.FieldLibVersion()) {
		log.Warn("negotiation rejected: required field-library version %s exceeds offered %s",
			requires.FieldLibVersion(), offers.FieldLibVersion())
		return Decision{Accepted: false}
	}

	agreed := newNameSet()
	for _, name := range requires.Parameters().Names() {
		if !offers.Has(name) {
			log.Warn("negotiation rejected: required parameter %q not offered", name)
			return Decision{Accepted: false}
		}
		agreed.add(name)
	}

	for i, g := range groups {
		if groupSatisfied(offers, g) {
			for _, p := range g {
				agreed.add(p.Name)
			}
		} else {
			log.Debug("negotiation: group %d not satisfied, skipping", i)
		}
	}

	return Decision{Accepted: true, Agreed: agreed.values()}
}

func groupSatisfied(offers *protocol.Protocol, g Group) bool {
	for _, p := range g {
		if !offers.Has(p.Name) {
			return false
		}
	}
	return true
}

// nameSet preserves first-seen order while deduplicating, matching the
// "duplicate names within agreed are deduplicated" edge case (spec.md §4.4)
// without depending on map iteration order for the output.
type nameSet struct {
	order []string
	seen  map[string]struct{}
}

func newNameSet() *nameSet {
	return &nameSet{seen: map[string]struct{}{}}
}

func (s *nameSet) add(name string) {
	if _, ok := s.seen[name]; ok {
		return
	}
	s.seen[name] = struct{}{}
	s.order = append(s.order, name)
}

func (s *nameSet) values() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
