package config

import (
	"github.com/ecmwf/plume/internal/perr"
)

// ManagerConfig is the validated top-level configuration the Manager is
// configured with (spec.md §3). Plugins is required (may be empty); Verbose
// is optional.
type ManagerConfig struct {
	Plugins []PluginConfig
	Verbose bool
}

// rawManagerConfig mirrors ManagerConfig's YAML shape before validation.
type rawManagerConfig struct {
	Plugins []rawPluginConfig `yaml:"plugins"`
	Verbose *bool             `yaml:"verbose,omitempty"`
}

// ParseManagerConfig parses and validates the manager's top-level
// configuration. Each plugin entry is structurally revalidated the same
// way ParsePluginConfig validates a standalone entry (spec.md §3 "Each
// PluginConfig is structurally revalidated").
func ParseManagerConfig(raw []byte) (ManagerConfig, error) {
	var r rawManagerConfig
	if err := decodeStrict(raw, &r); err != nil {
		return ManagerConfig{}, perr.Wrap(perr.BadValue, err, "invalid manager configuration")
	}
	if r.Plugins == nil {
		return ManagerConfig{}, perr.New(perr.BadValue, "manager configuration requires a plugins key")
	}

	plugins := make([]PluginConfig, 0, len(r.Plugins))
	for _, rp := range r.Plugins {
		pc, err := buildPluginConfig(rp)
		if err != nil {
			return ManagerConfig{}, err
		}
		plugins = append(plugins, pc)
	}

	verbose := false
	if r.Verbose != nil {
		verbose = *r.Verbose
	}

	return ManagerConfig{Plugins: plugins, Verbose: verbose}, nil
}
