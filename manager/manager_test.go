package manager

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecmwf/plume/catalogue"
	"github.com/ecmwf/plume/config"
	"github.com/ecmwf/plume/modeldata"
	"github.com/ecmwf/plume/pluginapi"
	"github.com/ecmwf/plume/protocol"
)

type testPlugin struct {
	pluginapi.NoopLifecycle
	name       string
	coreName   string
	requires   *protocol.Protocol
}

func (p *testPlugin) Name() string                { return p.name }
func (p *testPlugin) Version() string             { return "1.0.0" }
func (p *testPlugin) GitSHA1() string              { return "deadbeef" }
func (p *testPlugin) PluginCoreName() string       { return p.coreName }
func (p *testPlugin) Requires() *protocol.Protocol { return p.requires }

type testCore struct {
	pluginapi.NoopBody
	sum int
}

func (c *testCore) Run() error {
	n, err := c.Data.GetInt("nptr")
	if err != nil {
		return err
	}
	c.sum += n
	return nil
}

func newManagerFixture(t *testing.T) (*Manager, *testCore) {
	t.Helper()
	factory := pluginapi.NewFactory()
	core := &testCore{}
	require.NoError(t, factory.Register("simple", func(pluginapi.CoreConfig) (pluginapi.PluginCore, error) {
		return core, nil
	}))

	requires := protocol.New(nil, "1.0.0", "1.0.0").RequireInt("nptr")
	loader := NewFakeLoader(map[string]pluginapi.Plugin{
		"libsimple.so": &testPlugin{name: "simple", coreName: "simple", requires: requires},
	})

	m := New(nil, loader, factory, nil)
	return m, core
}

func offeredProtocol() *protocol.Protocol {
	return protocol.New(nil, "1.0.0", "1.0.0").OfferInt("nptr", catalogue.Always, "")
}

func TestManagerHappyPathEndToEnd(t *testing.T) {
	m, core := newManagerFixture(t)
	cfg := config.ManagerConfig{Plugins: []config.PluginConfig{{Name: "simple", Lib: "libsimple.so"}}}

	require.NoError(t, m.Configure(cfg))
	require.NoError(t, m.Negotiate(offeredProtocol()))
	assert.True(t, m.IsParamRequested("nptr"))

	data := modeldata.New(nil)
	n := 7
	data.ProvideInt("nptr", &n)
	require.NoError(t, m.FeedPlugins(data))

	require.NoError(t, m.Run())
	require.NoError(t, m.Run())
	assert.Equal(t, 14, core.sum)

	require.NoError(t, m.Teardown())
}

func TestTeardownIsIdempotent(t *testing.T) {
	m, _ := newManagerFixture(t)
	cfg := config.ManagerConfig{Plugins: []config.PluginConfig{{Name: "simple", Lib: "libsimple.so"}}}

	require.NoError(t, m.Configure(cfg))
	require.NoError(t, m.Negotiate(offeredProtocol()))

	data := modeldata.New(nil)
	n := 1
	data.ProvideInt("nptr", &n)
	require.NoError(t, m.FeedPlugins(data))

	require.NoError(t, m.Teardown())
	require.NoError(t, m.Teardown())
}

func TestConfigureIsIdempotentOnIdenticalConfig(t *testing.T) {
	m, _ := newManagerFixture(t)
	cfg := config.ManagerConfig{Plugins: []config.PluginConfig{{Name: "simple", Lib: "libsimple.so"}}}

	require.NoError(t, m.Configure(cfg))
	require.NoError(t, m.Configure(cfg))
}

func TestConfigureFailsOnConflictingReconfigure(t *testing.T) {
	m, _ := newManagerFixture(t)
	require.NoError(t, m.Configure(config.ManagerConfig{Plugins: nil}))
	err := m.Configure(config.ManagerConfig{Verbose: true})
	require.Error(t, err)
}

func TestNegotiateFailsPreconditionWhenNotConfigured(t *testing.T) {
	m, _ := newManagerFixture(t)
	err := m.Negotiate(offeredProtocol())
	require.Error(t, err)
}

func TestRunFailsPreconditionBeforeFeed(t *testing.T) {
	m, _ := newManagerFixture(t)
	cfg := config.ManagerConfig{Plugins: []config.PluginConfig{{Name: "simple", Lib: "libsimple.so"}}}
	require.NoError(t, m.Configure(cfg))
	require.NoError(t, m.Negotiate(offeredProtocol()))

	err := m.Run()
	require.Error(t, err)
}

func TestNegotiateSkipsPluginOnLibraryLoadFailure(t *testing.T) {
	m, _ := newManagerFixture(t)
	cfg := config.ManagerConfig{Plugins: []config.PluginConfig{{Name: "missing", Lib: "nope.so"}}}
	require.NoError(t, m.Configure(cfg))

	err := m.Negotiate(offeredProtocol())
	require.Error(t, err, "load failures are surfaced via multierr but do not abort negotiation")
	assert.Empty(t, m.GetActiveParams())
}

func TestNegotiateSkipsPluginRejectedByVersionMismatch(t *testing.T) {
	factory := pluginapi.NewFactory()
	requires := protocol.New(nil, "9.0.0", "1.0.0")
	loader := NewFakeLoader(map[string]pluginapi.Plugin{
		"libsimple.so": &testPlugin{name: "simple", coreName: "simple", requires: requires},
	})
	m := New(nil, loader, factory, nil)
	cfg := config.ManagerConfig{Plugins: []config.PluginConfig{{Name: "simple", Lib: "libsimple.so"}}}
	require.NoError(t, m.Configure(cfg))

	require.NoError(t, m.Negotiate(offeredProtocol()))
	assert.Empty(t, m.GetActiveParams())
}

func TestFeedPluginsToleratesMissingParameters(t *testing.T) {
	m, core := newManagerFixture(t)
	cfg := config.ManagerConfig{Plugins: []config.PluginConfig{{Name: "simple", Lib: "libsimple.so"}}}
	require.NoError(t, m.Configure(cfg))
	require.NoError(t, m.Negotiate(offeredProtocol()))

	data := modeldata.New(nil)
	require.NoError(t, m.FeedPlugins(data))

	err := m.Run()
	require.Error(t, err, "missing parameter surfaces on get, not at feed time")
	assert.Equal(t, 0, core.sum)
}
