package catalogue

import (
	"github.com/ecmwf/plume/internal/perr"
	"github.com/ecmwf/plume/logging"
)

// Catalogue is an ordered, deduplicated-by-name collection of Parameters
// (spec.md §4.1, "ParameterCatalogue"). The zero value is not usable; build
// one with New.
type Catalogue struct {
	log    logging.Logger
	order  []string
	byName map[string]Parameter
}

// New returns an empty Catalogue. A nil logger is replaced with a no-op
// sink, mirroring the teacher's tolerance for an unset logger field.
func New(log logging.Logger) *Catalogue {
	if log == nil {
		log = logging.NoOp{}
	}
	return &Catalogue{log: log, byName: map[string]Parameter{}}
}

// Insert adds p to the catalogue (spec.md §4.1 insertParam):
//   - name absent: append
//   - name present, same type: log and return unchanged (nil error)
//   - name present, different type: fail with perr.BadValue
func (c *Catalogue) Insert(p Parameter) error {
	existing, ok := c.byName[p.Name]
	if !ok {
		c.order = append(c.order, p.Name)
		c.byName[p.Name] = p
		return nil
	}
	if existing.Type == p.Type {
		c.log.Warn("parameter %q already in catalogue with the same type, ignoring", p.Name)
		return nil
	}
	return perr.New(perr.BadValue, "parameter %q already in catalogue with type %s, cannot redeclare as %s",
		p.Name, existing.Type, p.Type)
}

// Has reports whether name is present.
func (c *Catalogue) Has(name string) bool {
	_, ok := c.byName[name]
	return ok
}

// Get looks up a Parameter by name, failing with perr.NotFound on miss.
func (c *Catalogue) Get(name string) (Parameter, error) {
	p, ok := c.byName[name]
	if !ok {
		return Parameter{}, perr.New(perr.NotFound, "no parameter named %q in catalogue", name)
	}
	return p, nil
}

// Parameters returns every Parameter in insertion order.
func (c *Catalogue) Parameters() []Parameter {
	out := make([]Parameter, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.byName[name])
	}
	return out
}

// Names returns every parameter name in insertion order.
func (c *Catalogue) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Len reports how many parameters are in the catalogue.
func (c *Catalogue) Len() int { return len(c.order) }

// Filter returns a new Catalogue containing exactly the named parameters, in
// the order they appear in names. Any name not present fails the whole
// operation with perr.NotFound (spec.md §4.1).
func (c *Catalogue) Filter(names []string) (*Catalogue, error) {
	out := New(c.log)
	for _, name := range names {
		p, ok := c.byName[name]
		if !ok {
			return nil, perr.New(perr.NotFound, "cannot filter: no parameter named %q", name)
		}
		out.order = append(out.order, name)
		out.byName[name] = p
	}
	return out, nil
}

// ToConfig exports the catalogue to its configuration form (ordered slice of
// Config), for round-trip with NewFromConfig.
func (c *Catalogue) ToConfig() []Config {
	out := make([]Config, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.byName[name].ToConfig())
	}
	return out
}

// FromConfig builds a Catalogue from a slice of parameter configs,
// validating and inserting each one in order.
func FromConfig(log logging.Logger, cfgs []Config) (*Catalogue, error) {
	c := New(log)
	for _, cfg := range cfgs {
		p, err := NewFromConfig(cfg)
		if err != nil {
			return nil, err
		}
		if err := c.Insert(p); err != nil {
			return nil, err
		}
	}
	return c, nil
}
