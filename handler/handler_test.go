package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecmwf/plume/modeldata"
	"github.com/ecmwf/plume/pluginapi"
	"github.com/ecmwf/plume/protocol"
)

type fakePlugin struct{ name string }

func (p *fakePlugin) Name() string                      { return p.name }
func (p *fakePlugin) Version() string                   { return "1.0.0" }
func (p *fakePlugin) GitSHA1() string                    { return "deadbeef" }
func (p *fakePlugin) PluginCoreName() string             { return "fake" }
func (p *fakePlugin) Requires() *protocol.Protocol       { return protocol.New(nil, "1.0.0", "1.0.0") }
func (p *fakePlugin) Init() error                        { return nil }
func (p *fakePlugin) Finalise() error                    { return nil }

type fakeBody struct {
	pluginapi.NoopBody
	ran       bool
	torndown  bool
	runErr    error
}

func (b *fakeBody) Run() error {
	b.ran = true
	return b.runErr
}
func (b *fakeBody) Teardown() error {
	b.torndown = true
	return nil
}

func TestHandlerLifecycleHappyPath(t *testing.T) {
	h := New(&fakePlugin{name: "p"}, []string{"a", "b"})
	require.False(t, h.IsActive())

	body := &fakeBody{}
	require.NoError(t, h.Activate(body))
	require.True(t, h.IsActive())

	assert.Equal(t, []string{"a", "b"}, h.GetRequiredParamNames())

	data := modeldata.New(nil)
	require.NoError(t, h.GrabData(data))
	assert.Same(t, data, body.Data)

	require.NoError(t, h.Setup())
	require.NoError(t, h.Run())
	assert.True(t, body.ran)

	require.NoError(t, h.Teardown())
	assert.True(t, body.torndown)
}

func TestActivateRejectsNilBody(t *testing.T) {
	h := New(&fakePlugin{name: "p"}, nil)
	err := h.Activate(nil)
	require.Error(t, err)
}

func TestOperationsOnInactiveHandlerFailPrecondition(t *testing.T) {
	h := New(&fakePlugin{name: "p"}, nil)

	require.Error(t, h.Setup())
	require.Error(t, h.Run())
	require.Error(t, h.GrabData(modeldata.New(nil)))
}

func TestTeardownOnInactiveHandlerIsNoop(t *testing.T) {
	h := New(&fakePlugin{name: "p"}, nil)
	require.NoError(t, h.Teardown())
}

func TestRunPropagatesBodyError(t *testing.T) {
	h := New(&fakePlugin{name: "p"}, nil)
	body := &fakeBody{runErr: assert.AnError}
	require.NoError(t, h.Activate(body))

	err := h.Run()
	require.Error(t, err)
}
