package pluginapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCore struct{ NoopBody }

func (s *stubCore) Run() error { return nil }

func stubBuilder(CoreConfig) (PluginCore, error) { return &stubCore{}, nil }

func TestRegisterAndBuild(t *testing.T) {
	f := NewFactory()
	require.NoError(t, f.Register("stub", stubBuilder))

	core, err := f.Build("stub", nil)
	require.NoError(t, err)
	assert.NotNil(t, core)
}

func TestRegisterFailsOnDuplicateName(t *testing.T) {
	f := NewFactory()
	require.NoError(t, f.Register("stub", stubBuilder))

	err := f.Register("stub", stubBuilder)
	require.Error(t, err)
}

func TestBuildFailsNotFoundOnUnknownName(t *testing.T) {
	f := NewFactory()
	_, err := f.Build("nope", nil)
	require.Error(t, err)
}

func TestDeregisterRemovesBuilder(t *testing.T) {
	f := NewFactory()
	require.NoError(t, f.Register("stub", stubBuilder))
	f.Deregister("stub")

	_, err := f.Build("stub", nil)
	require.Error(t, err)
}

func TestDeregisterUnknownNameIsNotAnError(t *testing.T) {
	f := NewFactory()
	assert.NotPanics(t, func() { f.Deregister("never-registered") })
}
