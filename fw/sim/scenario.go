// Package sim drives the forwarding strategies (package fw) against a
// synthetic traffic generator described by a YAML scenario file, so the
// path-selection core can be exercised end to end without a real Face
// I/O layer. It is the "make it runnable" surface every complete daemon
// repo in the corpus has (cmd/ndnd, fw/cmd/cmd.go); it is not a
// replacement for the real forwarder's FIB/PIT/CS.
package sim

import "time"

// Scenario is the YAML-loadable description of one simulation run: the
// simulated faces (each with a delay/loss/bandwidth profile), the FIB
// next-hops and strategy binding per prefix, and the Interest traffic to
// generate against them.
type Scenario struct {
	// ProbingIntervalMs overrides the default probing cadence (spec
	// §4.7's Open Question: the probing interval is not pinned
	// quantitatively by the source material, so it is a configurable
	// parameter). Zero keeps each strategy's built-in default.
	ProbingIntervalMs int64 `yaml:"probingIntervalMs"`

	Faces    []FaceProfile    `yaml:"faces"`
	Prefixes []PrefixConfig   `yaml:"prefixes"`
	Traffic  []TrafficPattern `yaml:"traffic"`
}

// FaceProfile describes one simulated face's link characteristics.
type FaceProfile struct {
	ID uint64 `yaml:"id"`
	// DelayMs is the time between an Interest being forwarded on this
	// face and its simulated Data reply arriving, i.e. the whole round
	// trip the RTT estimator observes.
	DelayMs float64 `yaml:"delayMs"`
	// LossRate is the fraction of Interests sent on this face (in [0,1])
	// for which no Data is ever returned.
	LossRate float64 `yaml:"lossRate"`
	// BandwidthKbps is unused by the simulation directly - delivered
	// bytes still flow through the real BandwidthEstimator from the
	// ContentSize of each simulated Data - but is kept in the scenario
	// schema for readability and for future link-shaping extensions.
	BandwidthKbps float64 `yaml:"bandwidthKbps"`
}

// NextHopConfig is one FIB next-hop entry for a prefix.
type NextHopConfig struct {
	Face uint64 `yaml:"face"`
	Cost int    `yaml:"cost"`
}

// PrefixConfig binds a prefix to a strategy, its parameter string, and an
// ordered next-hop list.
type PrefixConfig struct {
	Name     string          `yaml:"name"`
	Strategy string          `yaml:"strategy"`
	Params   string          `yaml:"params"`
	NextHops []NextHopConfig `yaml:"nexthops"`
}

// TrafficPattern generates Count Interests under Prefix, spaced
// IntervalMs apart, each carrying ContentSizeBytes worth of simulated
// Data on satisfaction.
type TrafficPattern struct {
	Prefix           string `yaml:"prefix"`
	Count            int    `yaml:"count"`
	IntervalMs       int64  `yaml:"intervalMs"`
	ContentSizeBytes int    `yaml:"contentSizeBytes"`
}

// defaultContentSize is used when a traffic pattern does not specify one.
const defaultContentSize = 1024

func (t TrafficPattern) contentSize() int {
	if t.ContentSizeBytes > 0 {
		return t.ContentSizeBytes
	}
	return defaultContentSize
}

func (t TrafficPattern) interval() time.Duration {
	if t.IntervalMs <= 0 {
		return 100 * time.Millisecond
	}
	return time.Duration(t.IntervalMs) * time.Millisecond
}
