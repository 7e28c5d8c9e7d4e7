package fw

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Every registered strategy exposes a version list and the exact
// identifier it registers in the Strategy-Choice table.
func TestStrategyRegistry(t *testing.T) {
	require.Len(t, strategyInit, 4)

	require.Equal(t, "ndn:/localhost/nfd/strategy/lowest-cost/%FD%01/", StrategyIDs["lowest-cost"])
	require.Equal(t, "ndn:/localhost/nfd/strategy/madm/%FD%01/", StrategyIDs["madm"])
	require.Equal(t, "ndn:/localhost/nfd/strategy/broadcast-newnonce/%FD%01", StrategyIDs["broadcast-newnonce"])
	require.Equal(t, "ndn:/localhost/nfd/strategy/multicast/%FD%01", StrategyIDs["multicast"])

	for name := range StrategyIDs {
		require.Contains(t, StrategyVersions, name)
		require.NotEmpty(t, StrategyVersions[name])
	}
}

// Instantiating every registered strategy against a fresh thread must
// produce a distinct, working instance per call.
func TestStrategyInstantiation(t *testing.T) {
	thread := NewThread()
	seen := make(map[string]bool)
	for _, factory := range strategyInit {
		s := factory()
		s.Instantiate(thread)
		require.False(t, seen[s.String()], "duplicate strategy name %q", s.String())
		seen[s.String()] = true
	}
}
