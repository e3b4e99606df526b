package pluginapi

import (
	"sync"

	"github.com/ecmwf/plume/internal/perr"
)

// Factory is the process-wide PluginCoreFactory registry (spec.md §4.5): a
// singleton mapping body-type name to builder. Builders self-register at
// library load time (a package-level init() calling Register), and the
// registry uses its own mutex independently of anything the Manager holds,
// matching spec.md §5's "only the factory holds a lock" rule. This
// collapses the spec's two historical generations (PluginCore and the
// legacy Kernel/KernelFactory naming) onto the single PluginCore name, per
// spec.md §4.5's own recommendation.
type Factory struct {
	mu       sync.RWMutex
	builders map[string]CoreBuilder
}

var defaultFactory = NewFactory()

// DefaultFactory returns the process-wide registry libraries register
// their bodies into via Register.
func DefaultFactory() *Factory { return defaultFactory }

// NewFactory returns an empty, independently-lockable registry — tests use
// this instead of the shared DefaultFactory to avoid cross-test
// interference.
func NewFactory() *Factory {
	return &Factory{builders: map[string]CoreBuilder{}}
}

// Register adds a builder under name, failing with perr.BadValue if name is
// already registered (spec.md §4.5 "assert uniqueness").
func (f *Factory) Register(name string, builder CoreBuilder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.builders[name]; ok {
		return perr.New(perr.BadValue, "plugin core %q is already registered", name)
	}
	f.builders[name] = builder
	return nil
}

// Deregister removes name from the registry, if present. It is not an
// error to deregister a name that was never registered.
func (f *Factory) Deregister(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.builders, name)
}

// Build constructs a new PluginCore body for name, failing with
// perr.NotFound if no builder is registered under that name.
func (f *Factory) Build(name string, config CoreConfig) (PluginCore, error) {
	f.mu.RLock()
	builder, ok := f.builders[name]
	f.mu.RUnlock()
	if !ok {
		return nil, perr.New(perr.NotFound, "no plugin core registered under name %q", name)
	}
	return builder(config)
}

// Names returns every currently registered body-type name.
func (f *Factory) Names() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]string, 0, len(f.builders))
	for name := range f.builders {
		out = append(out, name)
	}
	return out
}
