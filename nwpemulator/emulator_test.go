package nwpemulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecmwf/plume/modeldata"
)

func TestParseConfigRejectsUnknownType(t *testing.T) {
	_, err := ParseConfig([]byte(`
fields:
  - field: x
    type: NOT_A_TYPE
    initial: 0
    step: 1
`))
	require.Error(t, err)
}

func TestEmulatorAdvanceAndPopulate(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
fields:
  - field: air_temperature
    type: DOUBLE
    initial: 280.0
    step: 0.5
  - field: step_count
    type: INT
    initial: 0
    step: 1
`))
	require.NoError(t, err)

	e := New(cfg)
	data := modeldata.New(nil)

	require.NoError(t, e.Populate(data))
	temp, err := data.GetDouble("air_temperature")
	require.NoError(t, err)
	assert.Equal(t, 280.0, temp)

	e.Advance()
	require.NoError(t, e.Populate(data))
	temp, err = data.GetDouble("air_temperature")
	require.NoError(t, err)
	assert.Equal(t, 280.5, temp)

	steps, err := data.GetInt("step_count")
	require.NoError(t, err)
	assert.Equal(t, 1, steps)
}

func TestEmulatorCatalogueDescribesFields(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
fields:
  - field: air_pressure
    type: DOUBLE
    initial: 101325.0
    step: 0.0
`))
	require.NoError(t, err)

	e := New(cfg)
	c, err := e.Catalogue(nil)
	require.NoError(t, err)
	assert.True(t, c.Has("air_pressure"))
}
