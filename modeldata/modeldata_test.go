package modeldata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecmwf/plume/catalogue"
	"github.com/ecmwf/plume/internal/perr"
)

func TestProvideAndGetBorrowedInt(t *testing.T) {
	m := New(nil)
	x := 42
	m.ProvideInt("nptr", &x)

	got, err := m.GetInt("nptr")
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	x = 99
	got, err = m.GetInt("nptr")
	require.NoError(t, err)
	assert.Equal(t, 99, got, "borrowed cell must reflect host-side mutation")
}

func TestUpdateOnBorrowedCellFailsUnownedMutation(t *testing.T) {
	m := New(nil)
	x := 1
	m.ProvideInt("nptr", &x)

	err := m.UpdateInt("nptr", 2)
	require.Error(t, err)
	assert.True(t, perr.Is(err, perr.UnownedMutation))
}

func TestCreateAndUpdateOwnedCell(t *testing.T) {
	m := New(nil)
	m.CreateDouble("timestep", 0.0)

	require.NoError(t, m.UpdateDouble("timestep", 3.5))
	got, err := m.GetDouble("timestep")
	require.NoError(t, err)
	assert.Equal(t, 3.5, got)
}

func TestGetWithWrongTypeFailsTypeMismatch(t *testing.T) {
	m := New(nil)
	m.CreateInt("n", 1)

	_, err := m.GetDouble("n")
	require.Error(t, err)
	assert.True(t, perr.Is(err, perr.TypeMismatch))
}

func TestGetMissingFailsNotFound(t *testing.T) {
	m := New(nil)
	_, err := m.GetInt("missing")
	require.Error(t, err)
	assert.True(t, perr.Is(err, perr.NotFound))
}

func TestFilterSharesCellsAcrossViews(t *testing.T) {
	m := New(nil)
	m.CreateInt("a", 1)
	m.CreateInt("b", 2)

	view, err := m.Filter([]string{"a"})
	require.NoError(t, err)

	require.NoError(t, view.UpdateInt("a", 100))

	got, err := m.GetInt("a")
	require.NoError(t, err)
	assert.Equal(t, 100, got, "mutation through a filtered view must be visible through the source")
}

func TestFilterFailsOnMissingName(t *testing.T) {
	m := New(nil)
	m.CreateInt("a", 1)

	_, err := m.Filter([]string{"a", "z"})
	require.Error(t, err)
	assert.True(t, perr.Is(err, perr.NotFound))
}

func TestHasParameterWithTypeMismatchFails(t *testing.T) {
	m := New(nil)
	m.CreateInt("a", 1)

	_, err := m.HasParameter("a", catalogue.Double)
	require.Error(t, err)
	assert.True(t, perr.Is(err, perr.TypeMismatch))
}

func TestHasParameterMissingReturnsFalseNoError(t *testing.T) {
	m := New(nil)
	present, err := m.HasParameter("nope", "")
	require.NoError(t, err)
	assert.False(t, present)
}

func TestProvideSameNameTwiceKeepsFirst(t *testing.T) {
	m := New(nil)
	a, b := 1, 2
	m.ProvideInt("x", &a)
	m.ProvideInt("x", &b)

	got, err := m.GetInt("x")
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}

type fakeAtlasFieldHandle struct {
	retains int
	valid   bool
}

func (f *fakeAtlasFieldHandle) Retain() AtlasFieldHandle {
	f.retains++
	return f
}
func (f *fakeAtlasFieldHandle) Release()      {}
func (f *fakeAtlasFieldHandle) Valid() bool   { return f.valid }

func TestProvideAtlasFieldSharedRejectsInvalidHandle(t *testing.T) {
	m := New(nil)
	err := m.ProvideAtlasFieldShared("field_dummy_1", &fakeAtlasFieldHandle{valid: false})
	require.Error(t, err)
	assert.True(t, perr.Is(err, perr.Precondition))
}

func TestGetAtlasFieldSharedRetainsOnRead(t *testing.T) {
	m := New(nil)
	h := &fakeAtlasFieldHandle{valid: true}
	require.NoError(t, m.ProvideAtlasFieldShared("field_dummy_1", h))

	_, err := m.GetAtlasFieldShared("field_dummy_1")
	require.NoError(t, err)
	assert.Equal(t, 1, h.retains)
}

func TestListAvailableParametersFiltersByType(t *testing.T) {
	m := New(nil)
	m.CreateInt("i", 1)
	m.CreateDouble("d", 1.0)

	assert.Equal(t, []string{"i"}, m.ListAvailableParameters(catalogue.Int))
	assert.ElementsMatch(t, []string{"i", "d"}, m.ListAvailableParameters(""))
}
