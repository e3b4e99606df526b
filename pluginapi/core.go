package pluginapi

import "github.com/ecmwf/plume/modeldata"

// PluginCore is the executable body a Plugin names by PluginCoreName
// (spec.md §4.5). It holds, after feeding, a filtered ModelData view
// limited to its agreed parameter names. Setup and Teardown default to
// no-ops for implementations that embed NoopBody; Run is mandatory and is
// not defaulted.
type PluginCore interface {
	// GrabData stores the handler's filtered ModelData view for later use
	// by Setup/Run/Teardown.
	GrabData(data *modeldata.ModelData)
	Setup() error
	Run() error
	Teardown() error
}

// NoopBody gives a PluginCore implementation a default GrabData, which
// stores the view in Data, and no-op Setup/Teardown, so a body only needs
// to implement Run.
type NoopBody struct {
	Data *modeldata.ModelData
}

func (b *NoopBody) GrabData(data *modeldata.ModelData) { b.Data = data }
func (b *NoopBody) Setup() error                       { return nil }
func (b *NoopBody) Teardown() error                    { return nil }

// CoreConfig is the opaque per-plugin configuration blob a PluginCore
// builder receives (spec.md §4.1 PluginConfig's optional "core-config"
// key). Builders decode it however suits their own body.
type CoreConfig map[string]interface{}

// CoreBuilder constructs a new PluginCore body from its CoreConfig,
// corresponding to the "builder" a PluginCoreFactory entry maps a body-type
// name to (spec.md §4.5).
type CoreBuilder func(config CoreConfig) (PluginCore, error)
