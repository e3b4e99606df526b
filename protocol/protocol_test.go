package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecmwf/plume/catalogue"
)

func TestParseVersionEmptyIsZero(t *testing.T) {
	assert.Equal(t, Version{}, ParseVersion(""))
}

func TestParseVersionMissingPartsAreZero(t *testing.T) {
	assert.Equal(t, Version{Major: 1, Minor: 2, Patch: 0}, ParseVersion("1.2"))
	assert.Equal(t, Version{Major: 7, Minor: 0, Patch: 0}, ParseVersion("7"))
}

func TestParseVersionNonNumericCoercesToZero(t *testing.T) {
	assert.Equal(t, Version{Major: 1, Minor: 0, Patch: 3}, ParseVersion("1.x.3"))
}

func TestVersionCompareAndGreaterThan(t *testing.T) {
	v1 := ParseVersion("1.2.3")
	v2 := ParseVersion("1.3.0")
	assert.Equal(t, -1, v1.Compare(v2))
	assert.True(t, v2.GreaterThan(v1))
	assert.False(t, v1.GreaterThan(v2))
	assert.Equal(t, 0, v1.Compare(ParseVersion("1.2.3")))
}

func TestNewProtocolDefaultsToZeroVersions(t *testing.T) {
	p := New(nil, "", "")
	assert.Equal(t, Version{}, p.CoreVersion())
	assert.Equal(t, Version{}, p.FieldLibVersion())
	assert.Equal(t, 0, p.Parameters().Len())
}

func TestRequireBuildersAddIntrinsicParameters(t *testing.T) {
	p := New(nil, "1.0.0", "2.1.0")
	p.RequireInt("nptr").RequireDouble("timestep").RequireAtlasField("field_dummy_1")

	assert.True(t, p.Has("nptr"))
	assert.True(t, p.Has("timestep"))
	assert.True(t, p.Has("field_dummy_1"))

	param, err := p.Parameters().Get("nptr")
	require.NoError(t, err)
	assert.Equal(t, catalogue.Int, param.Type)
}

func TestOfferBuildersCarryAvailabilityAndComment(t *testing.T) {
	p := New(nil, "1.0.0", "1.0.0")
	p.OfferDouble("air_temperature", catalogue.Always, "kelvin")

	param, err := p.Parameters().Get("air_temperature")
	require.NoError(t, err)
	assert.Equal(t, catalogue.Double, param.Type)
	assert.Equal(t, catalogue.Always, param.Availability)
	assert.Equal(t, "kelvin", param.Comment)
}

func TestBuilderFirstWinsOnNameCollision(t *testing.T) {
	p := New(nil, "1.0.0", "1.0.0")
	p.OfferInt("z", catalogue.Always, "first")
	p.OfferInt("z", catalogue.OnRequest, "second")

	param, err := p.Parameters().Get("z")
	require.NoError(t, err)
	assert.Equal(t, catalogue.Always, param.Availability)
	assert.Equal(t, "first", param.Comment)
}

func TestProtocolConfigRoundTrip(t *testing.T) {
	p := New(nil, "3.4.5", "1.0.0")
	p.RequireInt("nptr").OfferString("name", catalogue.Always, "")

	cfg := p.ToConfig()
	back, err := FromConfig(nil, cfg)
	require.NoError(t, err)

	assert.Equal(t, p.CoreVersion(), back.CoreVersion())
	assert.Equal(t, p.FieldLibVersion(), back.FieldLibVersion())
	assert.Equal(t, p.Parameters().Names(), back.Parameters().Names())
}

func TestFromConfigRejectsUnknownParameterType(t *testing.T) {
	cfg := Config{
		CoreVersion: "1.0.0",
		Parameters:  []catalogue.Config{{Name: "x", Type: "NOT_A_TYPE"}},
	}
	_, err := FromConfig(nil, cfg)
	require.Error(t, err)
}
