package fw

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRttEstimatorNoSample(t *testing.T) {
	r := NewRttEstimator()
	require.Equal(t, -1.0, r.Current())
}

func TestRttEstimatorSeedsOnFirstSample(t *testing.T) {
	r := NewRttEstimator()
	r.AddSample(50 * time.Millisecond)
	require.InDelta(t, 50.0, r.Current(), 0.001)
}

func TestRttEstimatorSmooths(t *testing.T) {
	r := NewRttEstimator()
	r.AddSample(100 * time.Millisecond)
	r.AddSample(50 * time.Millisecond)
	// EWMA: 1/8*50 + 7/8*100 = 93.75
	require.InDelta(t, 93.75, r.Current(), 0.01)
}
