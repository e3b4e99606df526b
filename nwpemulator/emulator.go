// Package nwpemulator is a synthetic NWP model driver: it generates
// INT/FLOAT/DOUBLE scalar fields from a small YAML DSL and advances them
// across time steps, standing in for a real model so manager.Manager can
// be exercised end-to-end without GRIB input (spec.md's Non-goals exclude
// real GRIB reading; this is a client of the core, not part of it).
package nwpemulator

import (
	"gopkg.in/yaml.v3"

	"github.com/ecmwf/plume/catalogue"
	"github.com/ecmwf/plume/internal/perr"
	"github.com/ecmwf/plume/logging"
	"github.com/ecmwf/plume/modeldata"
)

// FieldSpec describes one synthetic field: its name, type, initial value,
// and the amount it advances by on each Advance call.
type FieldSpec struct {
	Name    string  `yaml:"field"`
	Type    string  `yaml:"type"`
	Initial float64 `yaml:"initial"`
	Step    float64 `yaml:"step"`
}

// Config is the top-level emulator DSL document: a list of field specs.
type Config struct {
	Fields []FieldSpec `yaml:"fields"`
}

// ParseConfig parses the emulator's YAML DSL.
func ParseConfig(raw []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, perr.Wrap(perr.BadValue, err, "invalid nwp emulator configuration")
	}
	for _, f := range cfg.Fields {
		if f.Name == "" {
			return Config{}, perr.New(perr.BadValue, "emulator field requires a non-empty name")
		}
		if _, err := catalogue.ParseParameterType(f.Type); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

// field is the emulator's own bookkeeping for one spec's current value.
type field struct {
	spec  FieldSpec
	value float64
}

// Emulator holds the current value of every configured field and advances
// them independently, one Step per time step.
type Emulator struct {
	fields []*field
}

// New returns an Emulator initialized from cfg, each field starting at its
// Initial value.
func New(cfg Config) *Emulator {
	e := &Emulator{fields: make([]*field, 0, len(cfg.Fields))}
	for _, spec := range cfg.Fields {
		e.fields = append(e.fields, &field{spec: spec, value: spec.Initial})
	}
	return e
}

// Advance moves every field forward by one time step (value += step).
func (e *Emulator) Advance() {
	for _, f := range e.fields {
		f.value += f.spec.Step
	}
}

// Catalogue returns a catalogue.Catalogue describing every emulated field,
// suitable for building the host's offered Protocol.
func (e *Emulator) Catalogue(log logging.Logger) (*catalogue.Catalogue, error) {
	c := catalogue.New(log)
	for _, f := range e.fields {
		t, err := catalogue.ParseParameterType(f.spec.Type)
		if err != nil {
			return nil, err
		}
		p, err := catalogue.NewParameter(f.spec.Name, t, catalogue.Always, "emulated field")
		if err != nil {
			return nil, err
		}
		if err := c.Insert(p); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Populate creates or updates, in data, an owning cell for every field at
// its current value, typed per the field's FieldSpec.
func (e *Emulator) Populate(data *modeldata.ModelData) error {
	for _, f := range e.fields {
		t, err := catalogue.ParseParameterType(f.spec.Type)
		if err != nil {
			return err
		}
		switch t {
		case catalogue.Int:
			if present, _ := data.HasParameter(f.spec.Name, ""); !present {
				data.CreateInt(f.spec.Name, int(f.value))
			} else if err := data.UpdateInt(f.spec.Name, int(f.value)); err != nil {
				return err
			}
		case catalogue.Float:
			if present, _ := data.HasParameter(f.spec.Name, ""); !present {
				data.CreateFloat(f.spec.Name, float32(f.value))
			} else if err := data.UpdateFloat(f.spec.Name, float32(f.value)); err != nil {
				return err
			}
		case catalogue.Double:
			if present, _ := data.HasParameter(f.spec.Name, ""); !present {
				data.CreateDouble(f.spec.Name, f.value)
			} else if err := data.UpdateDouble(f.spec.Name, f.value); err != nil {
				return err
			}
		default:
			return perr.New(perr.BadValue, "nwp emulator does not support field type %s", t)
		}
	}
	return nil
}
