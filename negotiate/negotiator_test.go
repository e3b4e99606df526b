package negotiate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecmwf/plume/catalogue"
	"github.com/ecmwf/plume/protocol"
)

func TestNegotiateRejectsOnCoreVersionMismatch(t *testing.T) {
	offers := protocol.New(nil, "1.0.0", "1.0.0")
	requires := protocol.New(nil, "2.0.0", "1.0.0")

	d := Negotiate(nil, offers, requires, nil)
	assert.False(t, d.Accepted)
}

func TestNegotiateRejectsOnFieldLibVersionMismatch(t *testing.T) {
	offers := protocol.New(nil, "1.0.0", "1.0.0")
	requires := protocol.New(nil, "1.0.0", "2.5.0")

	d := Negotiate(nil, offers, requires, nil)
	assert.False(t, d.Accepted)
}

func TestNegotiateRejectsOnMissingIntrinsicRequirement(t *testing.T) {
	offers := protocol.New(nil, "1.0.0", "1.0.0")
	requires := protocol.New(nil, "1.0.0", "1.0.0").RequireInt("nptr")

	d := Negotiate(nil, offers, requires, nil)
	assert.False(t, d.Accepted)
}

func TestNegotiateAcceptsAndAgreesIntrinsicNames(t *testing.T) {
	offers := protocol.New(nil, "1.0.0", "1.0.0").OfferInt("nptr", catalogue.Always, "")
	requires := protocol.New(nil, "1.0.0", "1.0.0").RequireInt("nptr")

	d := Negotiate(nil, offers, requires, nil)
	require.True(t, d.Accepted)
	assert.ElementsMatch(t, []string{"nptr"}, d.Agreed)
}

func TestNegotiateSkipsUnsatisfiedGroupsWithoutFailing(t *testing.T) {
	offers := protocol.New(nil, "1.0.0", "1.0.0").OfferInt("nptr", catalogue.Always, "")
	requires := protocol.New(nil, "1.0.0", "1.0.0").RequireInt("nptr")

	unsatisfied := Group{mustParam(t, "missing_one", catalogue.Float)}

	d := Negotiate(nil, offers, requires, []Group{unsatisfied})
	require.True(t, d.Accepted)
	assert.ElementsMatch(t, []string{"nptr"}, d.Agreed)
}

func TestNegotiateAddsSatisfiedGroupNames(t *testing.T) {
	offers := protocol.New(nil, "1.0.0", "1.0.0").
		OfferInt("nptr", catalogue.Always, "").
		OfferDouble("air_temperature", catalogue.OnRequest, "").
		OfferDouble("air_pressure", catalogue.OnRequest, "")
	requires := protocol.New(nil, "1.0.0", "1.0.0").RequireInt("nptr")

	satisfied := Group{
		mustParam(t, "air_temperature", catalogue.Double),
		mustParam(t, "air_pressure", catalogue.Double),
	}

	d := Negotiate(nil, offers, requires, []Group{satisfied})
	require.True(t, d.Accepted)
	assert.ElementsMatch(t, []string{"nptr", "air_temperature", "air_pressure"}, d.Agreed)
}

func TestNegotiateAddsSatisfiedAlternativeAndSkipsUnsatisfied(t *testing.T) {
	offers := protocol.New(nil, "1.0.0", "1.0.0").
		OfferDouble("alt_a", catalogue.OnRequest, "")
	requires := protocol.New(nil, "1.0.0", "1.0.0")

	groupA := Group{mustParam(t, "alt_a", catalogue.Double)}
	groupB := Group{mustParam(t, "alt_b", catalogue.Double)}

	d := Negotiate(nil, offers, requires, []Group{groupA, groupB})
	require.True(t, d.Accepted)
	assert.ElementsMatch(t, []string{"alt_a"}, d.Agreed)
}

func TestNegotiateDeduplicatesAgreedNames(t *testing.T) {
	offers := protocol.New(nil, "1.0.0", "1.0.0").OfferInt("nptr", catalogue.Always, "")
	requires := protocol.New(nil, "1.0.0", "1.0.0").RequireInt("nptr")

	group := Group{mustParam(t, "nptr", catalogue.Int)}

	d := Negotiate(nil, offers, requires, []Group{group})
	require.True(t, d.Accepted)
	assert.Equal(t, []string{"nptr"}, d.Agreed)
}

func TestNegotiateEmptyRequiresAndGroupsAcceptsWithEmptyAgreed(t *testing.T) {
	offers := protocol.New(nil, "1.0.0", "1.0.0")
	requires := protocol.New(nil, "1.0.0", "1.0.0")

	d := Negotiate(nil, offers, requires, nil)
	require.True(t, d.Accepted)
	assert.Empty(t, d.Agreed)
}

func mustParam(t *testing.T, name string, pt catalogue.ParameterType) catalogue.Parameter {
	t.Helper()
	p, err := catalogue.NewParameter(name, pt, catalogue.Unspecified, "")
	require.NoError(t, err)
	return p
}
