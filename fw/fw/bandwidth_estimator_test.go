package fw

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBandwidthEstimatorNoSamples(t *testing.T) {
	b := NewBandwidthEstimator(time.Second)
	require.Equal(t, -1.0, b.Current(time.Unix(0, 0)))
}

func TestBandwidthEstimatorComputesKbps(t *testing.T) {
	b := NewBandwidthEstimator(time.Second)
	base := time.Unix(0, 0)
	b.AddDelivered(1000, base)
	b.AddDelivered(1000, base.Add(500*time.Millisecond))

	// 2000 bytes * 8 / 1000 = 16 kbit over a 1s window = 16 kbps.
	require.InDelta(t, 16.0, b.Current(base.Add(900*time.Millisecond)), 0.001)
}

func TestBandwidthEstimatorEvictsOldSamples(t *testing.T) {
	b := NewBandwidthEstimator(time.Second)
	base := time.Unix(0, 0)
	b.AddDelivered(1000, base)

	require.Equal(t, -1.0, b.Current(base.Add(2*time.Second)))
}
