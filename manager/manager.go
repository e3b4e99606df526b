// Package manager implements the process-wide coordinator that configures,
// negotiates, feeds, runs, and tears down a run's plugins (spec.md §4.7).
package manager

import (
	"reflect"
	"sync"

	"go.uber.org/multierr"

	"github.com/ecmwf/plume/catalogue"
	"github.com/ecmwf/plume/config"
	"github.com/ecmwf/plume/handler"
	"github.com/ecmwf/plume/internal/perr"
	"github.com/ecmwf/plume/logging"
	"github.com/ecmwf/plume/modeldata"
	"github.com/ecmwf/plume/negotiate"
	"github.com/ecmwf/plume/pluginapi"
	"github.com/ecmwf/plume/protocol"
)

type state int

const (
	unconfigured state = iota
	configured
	negotiated
	fed
	tornDown
)

// Manager is the process-wide façade driving one run's plugins through
// configure -> negotiate -> feedPlugins -> run* -> teardown (spec.md §4.7).
// It holds a single mutex guarding the active-plugin registry and state
// fields, mirroring the teacher's single-mutex plugins.Manager.
type Manager struct {
	mu sync.Mutex

	log     logging.Logger
	loader  Loader
	factory *pluginapi.Factory
	metrics *Metrics
	checker *modeldata.Checker

	state state
	cfg   config.ManagerConfig

	handlers         []*handler.Handler
	offeredCatalogue *catalogue.Catalogue
}

// New returns an unconfigured Manager. A nil logger/metrics/factory falls
// back to sane defaults (no-op logging, an unregistered metrics set, and
// the process-wide default PluginCoreFactory).
func New(log logging.Logger, loader Loader, factory *pluginapi.Factory, metrics *Metrics) *Manager {
	if log == nil {
		log = logging.NoOp{}
	}
	if factory == nil {
		factory = pluginapi.DefaultFactory()
	}
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &Manager{
		log:     log,
		loader:  loader,
		factory: factory,
		metrics: metrics,
		checker: modeldata.NewChecker(log),
	}
}

// IsConfigured reports whether Configure has ever succeeded, independent of
// how far the state machine has advanced since.
func (m *Manager) IsConfigured() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state != unconfigured
}

// Configure parses-equivalent cfg into the Manager's stored configuration.
// A re-call with an identical configuration is a no-op (spec.md §4.7
// "idempotent on a re-call with identical config, keep first"); a re-call
// with a different configuration fails with perr.Precondition, since
// reconfiguring mid-run is not a transition the state machine allows.
func (m *Manager) Configure(cfg config.ManagerConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == unconfigured {
		m.cfg = cfg
		m.state = configured
		return nil
	}
	if reflect.DeepEqual(m.cfg, cfg) {
		return nil
	}
	return perr.New(perr.Precondition, "manager is already configured with a different configuration")
}

// Negotiate loads each configured plugin's library, asks it for its
// intrinsic requirements, and negotiates against offers (spec.md §4.7).
// A plugin whose library fails to load, or whose negotiation is rejected,
// is skipped; the loop always continues to the remaining entries. Failures
// worth surfacing are aggregated with multierr rather than discarded.
func (m *Manager) Negotiate(offers *protocol.Protocol) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != configured {
		return perr.New(perr.Precondition, "negotiate requires the manager to be configured")
	}

	var errs error
	for _, pc := range m.cfg.Plugins {
		lib, err := m.loader.Load(pc.Lib)
		if err != nil {
			m.log.Warn("plugin %q: failed to load library %q: %v", pc.Name, pc.Lib, err)
			errs = multierr.Append(errs, err)
			continue
		}
		plug, err := lib.Plugin()
		if err != nil {
			m.log.Warn("plugin %q: %v", pc.Name, err)
			errs = multierr.Append(errs, err)
			continue
		}

		groups := make([]negotiate.Group, 0, len(pc.Parameters))
		for _, g := range pc.Parameters {
			groups = append(groups, negotiate.Group(g))
		}

		m.metrics.Negotiated.Inc()
		decision := negotiate.Negotiate(m.log, offers, plug.Requires(), groups)
		if !decision.Accepted {
			m.metrics.Rejected.Inc()
			m.log.Info("plugin %q rejected by negotiation", pc.Name)
			continue
		}
		m.metrics.Accepted.Inc()

		body, err := m.factory.Build(plug.PluginCoreName(), pc.CoreConfig)
		if err != nil {
			m.log.Warn("plugin %q: failed to build core %q: %v", pc.Name, plug.PluginCoreName(), err)
			errs = multierr.Append(errs, err)
			continue
		}

		h := handler.New(plug, decision.Agreed)
		if err := h.Activate(body); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		m.handlers = append(m.handlers, h)
		m.metrics.Active.Inc()
	}

	m.offeredCatalogue = offers.Parameters()
	m.state = negotiated
	return errs
}

// activeNames returns the deduplicated union of every active handler's
// agreed parameter names, in admission order.
func (m *Manager) activeNames() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, h := range m.handlers {
		for _, name := range h.GetRequiredParamNames() {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}

// FeedPlugins checks data against the active catalogue (warning-only, see
// modeldata.Checker) and hands each active handler its filtered slice
// (spec.md §4.7). A handler whose agreed names are only partially present
// in data still gets fed the names that are present; missing names never
// abort feeding.
func (m *Manager) FeedPlugins(data *modeldata.ModelData) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != negotiated {
		return perr.New(perr.Precondition, "feedPlugins requires the manager to be negotiated")
	}

	activeCatalogue, err := m.offeredCatalogue.Filter(m.activeNames())
	if err != nil {
		return err
	}
	m.checker.Check(data, activeCatalogue)

	for _, h := range m.handlers {
		present := make([]string, 0, len(h.GetRequiredParamNames()))
		for _, name := range h.GetRequiredParamNames() {
			if ok, _ := data.HasParameter(name, ""); ok {
				present = append(present, name)
			}
		}
		required, err := data.Filter(present)
		if err != nil {
			return err
		}
		if err := h.GrabData(required); err != nil {
			return err
		}
		if err := h.Setup(); err != nil {
			return err
		}
	}

	m.state = fed
	return nil
}

// Run invokes Run on each active handler, in admission order. A failing
// handler's error is returned immediately; Run does not attempt to run
// later handlers in that same call (spec.md §5).
func (m *Manager) Run() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != fed {
		return perr.New(perr.Precondition, "run requires the manager to be fed")
	}
	for _, h := range m.handlers {
		if err := h.Run(); err != nil {
			return err
		}
	}
	return nil
}

// Teardown invokes Teardown on every active handler in admission order,
// aggregating every failure instead of stopping at the first. Handlers are
// not destroyed; they are released when the Manager itself is dropped.
// Teardown is idempotent: once torn down, further calls are a no-op rather
// than an error, matching the reference Manager::teardown(), which carries
// no state guard at all.
func (m *Manager) Teardown() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == tornDown {
		return nil
	}
	if m.state != fed {
		return perr.New(perr.Precondition, "teardown requires the manager to be fed")
	}
	var errs error
	for _, h := range m.handlers {
		if err := h.Teardown(); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	m.state = tornDown
	return errs
}

// IsParamRequested reports whether name is in the agreed set of any active
// handler.
func (m *Manager) IsParamRequested(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.activeNames() {
		if n == name {
			return true
		}
	}
	return false
}

// GetActiveParams returns the deduplicated union of every active handler's
// agreed parameter names, in admission order.
func (m *Manager) GetActiveParams() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activeNames()
}

// GetActiveDataCatalogue returns the offered catalogue filtered down to
// GetActiveParams, i.e. the descriptors feed-time checks validate against.
func (m *Manager) GetActiveDataCatalogue() (*catalogue.Catalogue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.offeredCatalogue == nil {
		return nil, perr.New(perr.Precondition, "no offered catalogue cached, negotiate has not run")
	}
	return m.offeredCatalogue.Filter(m.activeNames())
}
