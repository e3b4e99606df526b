package modeldata

import (
	"github.com/ecmwf/plume/catalogue"
	"github.com/ecmwf/plume/logging"
)

// Checker performs warning-only validation of a ModelData against a
// reference catalogue at feed time (spec.md §4.7 feedPlugins step 1):
// missing parameters never abort feeding, they only surface as log
// warnings, with "always" parameters called out specifically since they
// are supposed to be present for the whole run regardless of which plugin
// asked for them.
type Checker struct {
	log logging.Logger
}

// NewChecker returns a Checker that logs through log (a nil logger is
// replaced with a no-op sink).
func NewChecker(log logging.Logger) *Checker {
	if log == nil {
		log = logging.NoOp{}
	}
	return &Checker{log: log}
}

// Check logs one warning for every descriptor in reference missing from
// data; a missing descriptor whose availability is catalogue.Always gets a
// distinct warning saying it must always be present. A descriptor present
// with the wrong type is also warned about.
func (c *Checker) Check(data *ModelData, reference *catalogue.Catalogue) {
	for _, p := range reference.Parameters() {
		present, err := data.HasParameter(p.Name, p.Type)
		if err != nil {
			c.log.Warn("parameter %q present with wrong type: %v", p.Name, err)
			continue
		}
		if present {
			continue
		}
		if p.Availability == catalogue.Always {
			c.log.Warn("parameter %q is required to always be present but is missing from model data", p.Name)
		} else {
			c.log.Warn("requested parameter %q is missing from model data", p.Name)
		}
	}
}
