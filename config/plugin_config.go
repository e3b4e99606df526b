// Package config implements YAML parsing and validation of PluginConfig and
// ManagerConfig (spec.md §3, §4.1 constructors: "required keys fail
// construction with bad-value").
package config

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"github.com/ecmwf/plume/catalogue"
	"github.com/ecmwf/plume/internal/perr"
	"github.com/ecmwf/plume/pluginapi"
)

// PluginConfig is the validated configuration for one plugin entry
// (spec.md §3). Name and Lib are required; Parameters and CoreConfig are
// optional. Parameters is a list of groups — each inner list is an
// alternative set of parameter descriptors (spec.md §4.4).
type PluginConfig struct {
	Name       string
	Lib        string
	Parameters [][]catalogue.Parameter
	CoreConfig pluginapi.CoreConfig
}

// rawPluginConfig mirrors PluginConfig's YAML/JSON shape before validation.
// Unknown top-level keys are rejected by yaml.v3's KnownFields, set by
// decodeStrict.
type rawPluginConfig struct {
	Name       string                  `yaml:"name"`
	Lib        string                  `yaml:"lib"`
	Parameters [][]catalogue.Config    `yaml:"parameters,omitempty"`
	CoreConfig map[string]interface{}  `yaml:"core-config,omitempty"`
}

// ParsePluginConfig parses and validates one plugin entry's configuration.
func ParsePluginConfig(raw []byte) (PluginConfig, error) {
	var r rawPluginConfig
	if err := decodeStrict(raw, &r); err != nil {
		return PluginConfig{}, perr.Wrap(perr.BadValue, err, "invalid plugin configuration")
	}
	return buildPluginConfig(r)
}

func buildPluginConfig(r rawPluginConfig) (PluginConfig, error) {
	if r.Name == "" {
		return PluginConfig{}, perr.New(perr.BadValue, "plugin configuration requires a non-empty name")
	}
	if r.Lib == "" {
		return PluginConfig{}, perr.New(perr.BadValue, "plugin configuration requires a non-empty lib")
	}

	groups := make([][]catalogue.Parameter, 0, len(r.Parameters))
	for _, group := range r.Parameters {
		params := make([]catalogue.Parameter, 0, len(group))
		for _, pc := range group {
			p, err := catalogue.NewFromConfig(pc)
			if err != nil {
				return PluginConfig{}, err
			}
			params = append(params, p)
		}
		groups = append(groups, params)
	}

	var coreConfig pluginapi.CoreConfig
	if r.CoreConfig != nil {
		coreConfig = pluginapi.CoreConfig(r.CoreConfig)
	}

	return PluginConfig{
		Name:       r.Name,
		Lib:        r.Lib,
		Parameters: groups,
		CoreConfig: coreConfig,
	}, nil
}

// decodeStrict decodes raw YAML into v, rejecting unknown fields (spec.md
// §4.1 "other keys fail construction with bad-value").
func decodeStrict(raw []byte, v interface{}) error {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	return dec.Decode(v)
}
