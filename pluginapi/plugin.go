// Package pluginapi defines the two abstractions a plugin library exposes —
// Plugin (the library's single entry point) and PluginCore (its executable
// body) — plus the process-wide registry bodies self-register into
// (spec.md §4.5).
package pluginapi

import "github.com/ecmwf/plume/protocol"

// Plugin is the externally exposed object a library emits, one per library
// (spec.md §4.5). It advertises identity and the Protocol it requires, and
// names the PluginCore body that should be built for it once negotiation
// accepts. Init and Finalise default to no-ops for implementations that
// embed NoopLifecycle.
type Plugin interface {
	Name() string
	Version() string
	GitSHA1() string
	PluginCoreName() string
	Requires() *protocol.Protocol
	Init() error
	Finalise() error
}

// NoopLifecycle gives a Plugin implementation default no-op Init/Finalise
// hooks (spec.md §4.5 "Lifecycle hooks init/finalise default to no-op"), so
// most plugins only need to implement the identity methods.
type NoopLifecycle struct{}

func (NoopLifecycle) Init() error     { return nil }
func (NoopLifecycle) Finalise() error { return nil }
