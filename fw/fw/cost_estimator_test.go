package fw

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCostEstimatorDefaultUnlimited(t *testing.T) {
	c := NewCostEstimator()
	require.Equal(t, float64(DefaultCost), c.Value())
	c.AddTraffic(10 << 20)
	require.Equal(t, float64(DefaultCost), c.Value())
}

// limit=10MB, initial cost=100. AddTraffic(5MB) -> 500,
// AddTraffic(4MB) -> 900, AddTraffic(2MB) -> 1001.
func TestCostEstimatorRampToLimit(t *testing.T) {
	c := NewCostEstimator()
	c.SetLimit(10)
	require.Equal(t, float64(DefaultCost), c.Value())

	c.AddTraffic(5 << 20)
	require.InDelta(t, 500.0, c.Value(), 0.01)

	c.AddTraffic(4 << 20)
	require.InDelta(t, 900.0, c.Value(), 0.01)

	c.AddTraffic(2 << 20)
	require.InDelta(t, 1001.0, c.Value(), 0.01)
}

// Under a fixed limit, cost never decreases across calls.
func TestCostEstimatorMonotoneUpward(t *testing.T) {
	c := NewCostEstimator()
	c.SetLimit(100)

	prev := c.Value()
	for i := 0; i < 20; i++ {
		c.AddTraffic(1 << 20)
		cur := c.Value()
		require.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
}
