// Package protocol implements the symmetric offers/requires side of a
// negotiation (spec.md §4.3): a catalogue of parameters plus a core-framework
// version and a gridded-field-library version. A host's offers and a
// plugin's requires are two separate Protocols, so the four versions that
// gate acceptance before parameter matching even runs are split across them.
package protocol

import (
	"github.com/ecmwf/plume/catalogue"
	"github.com/ecmwf/plume/logging"
)

// Protocol carries one side's parameter catalogue (requires for a plugin,
// offers for a host) plus the requested/offered core-framework and
// gridded-field-library versions.
type Protocol struct {
	log logging.Logger

	params *catalogue.Catalogue

	coreVersion      Version
	fieldLibVersion  Version
}

// Config is the structured shape of a Protocol (spec.md §6): one optional
// "parameters" list plus version fields. Either side is built from the same
// shape; the caller decides whether the list is read as offers or as
// requires. There are no separate "offered"/"required" keys.
type Config struct {
	CoreVersion     string              `yaml:"core_version,omitempty" json:"core_version,omitempty"`
	FieldLibVersion string              `yaml:"field_lib_version,omitempty" json:"field_lib_version,omitempty"`
	Parameters      []catalogue.Config  `yaml:"parameters,omitempty" json:"parameters,omitempty"`
}

// New returns an empty Protocol with the given versions.
func New(log logging.Logger, coreVersion, fieldLibVersion string) *Protocol {
	if log == nil {
		log = logging.NoOp{}
	}
	return &Protocol{
		log:             log,
		params:          catalogue.New(log),
		coreVersion:     ParseVersion(coreVersion),
		fieldLibVersion: ParseVersion(fieldLibVersion),
	}
}

// FromConfig builds a Protocol from its configuration form.
func FromConfig(log logging.Logger, cfg Config) (*Protocol, error) {
	p := New(log, cfg.CoreVersion, cfg.FieldLibVersion)
	for _, pc := range cfg.Parameters {
		param, err := catalogue.NewFromConfig(pc)
		if err != nil {
			return nil, err
		}
		// Builders never overwrite an existing parameter of the same name
		// (first wins, warn) — spec.md §4.3. catalogue.Insert already
		// implements exactly that rule.
		if err := p.params.Insert(param); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// CoreVersion is the protocol's requested/offered core-framework version.
func (p *Protocol) CoreVersion() Version { return p.coreVersion }

// FieldLibVersion is the protocol's requested/offered gridded-field-library
// version.
func (p *Protocol) FieldLibVersion() Version { return p.fieldLibVersion }

// Parameters returns the underlying catalogue.
func (p *Protocol) Parameters() *catalogue.Catalogue { return p.params }

// Has reports whether name is present in this side's catalogue.
func (p *Protocol) Has(name string) bool { return p.params.Has(name) }

// add is the shared implementation behind requireT/offerT: insert never
// overwrites an existing parameter with the same name (first wins, warn).
func (p *Protocol) add(param catalogue.Parameter) *Protocol {
	if err := p.params.Insert(param); err != nil {
		p.log.Warn("protocol builder: %v", err)
	}
	return p
}

func (p *Protocol) requireT(name string, t catalogue.ParameterType) *Protocol {
	param, err := catalogue.NewParameter(name, t, catalogue.Unspecified, "")
	if err != nil {
		p.log.Warn("protocol builder: %v", err)
		return p
	}
	return p.add(param)
}

func (p *Protocol) offerT(name string, t catalogue.ParameterType, availability catalogue.Availability, comment string) *Protocol {
	param, err := catalogue.NewParameter(name, t, availability, comment)
	if err != nil {
		p.log.Warn("protocol builder: %v", err)
		return p
	}
	return p.add(param)
}

// RequireInt, RequireBool, RequireFloat, RequireDouble, RequireString,
// RequireAtlasField are the fluent requireT builders named per spec.md §4.3.
func (p *Protocol) RequireInt(name string) *Protocol        { return p.requireT(name, catalogue.Int) }
func (p *Protocol) RequireBool(name string) *Protocol       { return p.requireT(name, catalogue.Bool) }
func (p *Protocol) RequireFloat(name string) *Protocol      { return p.requireT(name, catalogue.Float) }
func (p *Protocol) RequireDouble(name string) *Protocol     { return p.requireT(name, catalogue.Double) }
func (p *Protocol) RequireString(name string) *Protocol     { return p.requireT(name, catalogue.String) }
func (p *Protocol) RequireAtlasField(name string) *Protocol { return p.requireT(name, catalogue.AtlasField) }

// OfferInt, OfferBool, OfferFloat, OfferDouble, OfferString, OfferAtlasField
// are the fluent offerT builders named per spec.md §4.3.
func (p *Protocol) OfferInt(name string, availability catalogue.Availability, comment string) *Protocol {
	return p.offerT(name, catalogue.Int, availability, comment)
}
func (p *Protocol) OfferBool(name string, availability catalogue.Availability, comment string) *Protocol {
	return p.offerT(name, catalogue.Bool, availability, comment)
}
func (p *Protocol) OfferFloat(name string, availability catalogue.Availability, comment string) *Protocol {
	return p.offerT(name, catalogue.Float, availability, comment)
}
func (p *Protocol) OfferDouble(name string, availability catalogue.Availability, comment string) *Protocol {
	return p.offerT(name, catalogue.Double, availability, comment)
}
func (p *Protocol) OfferString(name string, availability catalogue.Availability, comment string) *Protocol {
	return p.offerT(name, catalogue.String, availability, comment)
}
func (p *Protocol) OfferAtlasField(name string, availability catalogue.Availability, comment string) *Protocol {
	return p.offerT(name, catalogue.AtlasField, availability, comment)
}

// ToConfig exports the protocol back to configuration form.
func (p *Protocol) ToConfig() Config {
	return Config{
		CoreVersion:     p.coreVersion.String(),
		FieldLibVersion: p.fieldLibVersion.String(),
		Parameters:      p.params.ToConfig(),
	}
}
