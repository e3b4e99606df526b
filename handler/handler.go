// Package handler implements PluginHandler, the unique owner of one
// accepted plugin's executable body (spec.md §4.6).
package handler

import (
	"github.com/ecmwf/plume/internal/perr"
	"github.com/ecmwf/plume/modeldata"
	"github.com/ecmwf/plume/pluginapi"
)

// Handler owns (uniquely) the PluginCore body built for one accepted
// plugin. It holds a non-owning reference to the Plugin object (owned by
// its library) and the agreed parameter names from negotiation. It does not
// keep the plugin configuration it was admitted under; that configuration
// is only used by the Manager to build the body.
//
// Handler has no Go finalizer: its "destruction releases the body" contract
// (spec.md §4.6) is realized by Manager dropping its last reference, Go's
// ordinary GC semantics taking the place of C++ move-only ownership. A
// Handler is therefore not meant to be copied; callers pass *Handler.
type Handler struct {
	plugin        pluginapi.Plugin
	pluginName    string
	agreedNames   []string
	body          pluginapi.PluginCore
}

// New returns an inactive Handler for plugin, holding the agreed parameter
// names from its PluginDecision. Call Activate before Setup/Run/Teardown.
func New(plugin pluginapi.Plugin, agreedNames []string) *Handler {
	names := make([]string, len(agreedNames))
	copy(names, agreedNames)
	return &Handler{plugin: plugin, pluginName: plugin.Name(), agreedNames: names}
}

// Activate stores body, making the Handler active. body must be non-nil
// (spec.md §4.6 precondition).
func (h *Handler) Activate(body pluginapi.PluginCore) error {
	if body == nil {
		return perr.New(perr.Precondition, "cannot activate handler for %q with a nil body", h.pluginName)
	}
	h.body = body
	return nil
}

// IsActive reports whether a body is held.
func (h *Handler) IsActive() bool { return h.body != nil }

// GetRequiredParamNames returns the agreed names from negotiation — not the
// plugin's raw Requires() — per spec.md §4.6.
func (h *Handler) GetRequiredParamNames() []string {
	out := make([]string, len(h.agreedNames))
	copy(out, h.agreedNames)
	return out
}

// PluginName is the name of the Plugin this handler was built for,
// primarily for logging and metrics labels.
func (h *Handler) PluginName() string { return h.pluginName }

func (h *Handler) requireActive() error {
	if !h.IsActive() {
		return perr.New(perr.Precondition, "handler for %q is not active", h.pluginName)
	}
	return nil
}

// GrabData forwards data to the body (spec.md §4.6).
func (h *Handler) GrabData(data *modeldata.ModelData) error {
	if err := h.requireActive(); err != nil {
		return err
	}
	h.body.GrabData(data)
	return nil
}

// Setup forwards to the body.
func (h *Handler) Setup() error {
	if err := h.requireActive(); err != nil {
		return err
	}
	return h.body.Setup()
}

// Run forwards to the body.
func (h *Handler) Run() error {
	if err := h.requireActive(); err != nil {
		return err
	}
	return h.body.Run()
}

// Teardown forwards to the body. Unlike Setup/Run, Teardown runs
// unconditionally during shutdown (spec.md §4.6) — an inactive handler's
// Teardown is a no-op rather than a precondition failure, since shutdown
// must not itself fail on a plugin that never got past negotiation.
func (h *Handler) Teardown() error {
	if !h.IsActive() {
		return nil
	}
	return h.body.Teardown()
}
