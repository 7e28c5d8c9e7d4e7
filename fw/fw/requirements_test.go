package fw

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func allTypes() []RequirementType {
	return []RequirementType{RequirementDelay, RequirementLoss, RequirementBandwidth, RequirementCost}
}

func TestRequirementSetParseSingleValue(t *testing.T) {
	r := NewRequirementSet(allTypes()...)
	ok := r.ParseParameters("maxdelay=100,maxloss=0.05")
	require.True(t, ok)

	lo, hi := r.GetLimits(RequirementDelay)
	require.Equal(t, 100.0, lo)
	require.Equal(t, 100.0, hi)

	lo, hi = r.GetLimits(RequirementLoss)
	require.Equal(t, 0.05, lo)
	require.Equal(t, 0.05, hi)
}

func TestRequirementSetParseRange(t *testing.T) {
	r := NewRequirementSet(allTypes()...)
	ok := r.ParseParameters("minbw=30-100")
	require.True(t, ok)

	lo, hi := r.GetLimits(RequirementBandwidth)
	require.Equal(t, 30.0, lo)
	require.Equal(t, 100.0, hi)
}

func TestRequirementSetUnrecognizedKeyIgnored(t *testing.T) {
	r := NewRequirementSet(allTypes()...)
	ok := r.ParseParameters("nonce=true,bogus=7")
	require.False(t, ok)
	require.False(t, r.Contains(RequirementDelay))
}

func TestRequirementSetMalformedSkippedSilently(t *testing.T) {
	r := NewRequirementSet(allTypes()...)
	ok := r.ParseParameters("maxdelay=,maxloss=0.05,=10")
	require.True(t, ok)
	require.False(t, r.Contains(RequirementDelay))
	require.True(t, r.Contains(RequirementLoss))
}

func TestRequirementSetDuplicateKeyLastWins(t *testing.T) {
	r := NewRequirementSet(allTypes()...)
	r.ParseParameters("maxdelay=50,maxdelay=80")
	lo, _ := r.GetLimits(RequirementDelay)
	require.Equal(t, 80.0, lo)
}

func TestRequirementSetMincostAlias(t *testing.T) {
	r := NewRequirementSet(allTypes()...)
	r.ParseParameters("mincost=200")
	require.True(t, r.Contains(RequirementCost))
	lo, _ := r.GetLimits(RequirementCost)
	require.Equal(t, 200.0, lo)
}

func TestRequirementSetUnsupportedTypeNotParsed(t *testing.T) {
	r := NewRequirementSet(RequirementDelay)
	ok := r.ParseParameters("minbw=10")
	require.False(t, ok)
	require.False(t, r.Contains(RequirementBandwidth))
}

func TestRequirementSetGetLimitsUnset(t *testing.T) {
	r := NewRequirementSet(allTypes()...)
	lo, hi := r.GetLimits(RequirementDelay)
	require.Equal(t, -1.0, lo)
	require.Equal(t, -1.0, hi)
}

func TestRequirementSetOwnTypes(t *testing.T) {
	r := NewRequirementSet(RequirementDelay, RequirementLoss)
	r.ParseParameters("maxdelay=100,minbw=10")
	types := r.OwnTypes()
	require.Len(t, types, 1)
	require.Equal(t, RequirementDelay, types[0])
}

func TestIsUpwardAttribute(t *testing.T) {
	require.True(t, IsUpwardAttribute(RequirementBandwidth))
	require.False(t, IsUpwardAttribute(RequirementDelay))
	require.False(t, IsUpwardAttribute(RequirementLoss))
	require.False(t, IsUpwardAttribute(RequirementCost))
}

// ParseParameters(Format()) reproduces the same bounds for any supported
// key set.
func TestRequirementSetRoundTrip(t *testing.T) {
	original := NewRequirementSet(allTypes()...)
	original.ParseParameters("maxdelay=50-90,maxloss=0.02,minbw=10-20,maxcost=300")

	round := NewRequirementSet(allTypes()...)
	round.ParseParameters(original.Format())

	for _, typ := range allTypes() {
		wantLo, wantHi := original.GetLimits(typ)
		gotLo, gotHi := round.GetLimits(typ)
		require.Equal(t, wantLo, gotLo)
		require.Equal(t, wantHi, gotHi)
		require.Equal(t, original.Contains(typ), round.Contains(typ))
	}
}
