package catalogue

import "github.com/ecmwf/plume/internal/perr"

// Parameter is a validated, value-typed descriptor (spec.md §3). Equality is
// defined by (Name, Type) — Availability and Comment do not participate.
type Parameter struct {
	Name         string
	Type         ParameterType
	Availability Availability
	Comment      string
}

// Config is the structured configuration shape for a Parameter descriptor
// (spec.md §6, "Parameter descriptor"). Unknown keys are rejected at decode
// time by the config package's strict YAML decoder (decodeStrict), not here.
type Config struct {
	Name         string `yaml:"name" json:"name"`
	Type         string `yaml:"type" json:"type"`
	Availability string `yaml:"available,omitempty" json:"available,omitempty"`
	Comment      string `yaml:"comment,omitempty" json:"comment,omitempty"`
}

// NewFromConfig validates a Config into a Parameter. Essential keys are
// {name, type}; available and comment are optional (spec.md §4.1).
func NewFromConfig(c Config) (Parameter, error) {
	if c.Name == "" {
		return Parameter{}, perr.New(perr.BadValue, "parameter requires a non-empty name")
	}
	t, err := ParseParameterType(c.Type)
	if err != nil {
		return Parameter{}, err
	}
	avail, err := ParseAvailability(c.Availability)
	if err != nil {
		return Parameter{}, err
	}
	return Parameter{Name: c.Name, Type: t, Availability: avail, Comment: c.Comment}, nil
}

// NewParameter builds a Parameter from explicit fields, validating type and
// name the same way NewFromConfig does.
func NewParameter(name string, t ParameterType, availability Availability, comment string) (Parameter, error) {
	if name == "" {
		return Parameter{}, perr.New(perr.BadValue, "parameter requires a non-empty name")
	}
	if _, ok := validTypes[t]; !ok {
		return Parameter{}, perr.New(perr.BadValue, "unknown parameter type %q", t)
	}
	switch availability {
	case Unspecified, Always, OnRequest:
	default:
		return Parameter{}, perr.New(perr.BadValue, "unknown availability %q", availability)
	}
	return Parameter{Name: name, Type: t, Availability: availability, Comment: comment}, nil
}

// ToConfig exports the Parameter back to its configuration form (spec.md §4.1
// "export to configuration form"), preserving all four fields for round-trip.
func (p Parameter) ToConfig() Config {
	return Config{Name: p.Name, Type: string(p.Type), Availability: string(p.Availability), Comment: p.Comment}
}

// Equal implements the (name, type) equality spec.md §3 defines for
// Parameter.
func (p Parameter) Equal(o Parameter) bool {
	return p.Name == o.Name && p.Type == o.Type
}
