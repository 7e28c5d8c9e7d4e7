/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package fw

// DefaultCost is the cost assigned to a face before any traffic limit has
// been configured.
const DefaultCost = 100

// MaxCost is the nominal cost ceiling; adjustCost can still propose
// MaxCost+1 once consumed traffic exceeds the limit.
const MaxCost = 1000

// CostEstimator ramps a face's cost upward as consumed traffic approaches
// a configured traffic limit. Cost is monotone-upward: once
// traffic pushes the estimate higher, it never retreats while the limit
// stays fixed.
type CostEstimator struct {
	cost      float64
	consumed  float64
	limit     float64
	isLimited bool
}

// NewCostEstimator constructs an estimator with no configured limit; Value
// stays at DefaultCost until SetLimit is called.
func NewCostEstimator() *CostEstimator {
	return &CostEstimator{cost: DefaultCost}
}

// SetLimit configures the traffic-ramp ceiling in megabytes and marks the
// estimator as limited.
func (c *CostEstimator) SetLimit(limitMB float64) {
	c.limit = limitMB
	c.isLimited = true
	c.adjustCost()
}

// AddTraffic records bytes delivered and re-derives the cost.
func (c *CostEstimator) AddTraffic(bytes int) {
	c.consumed += float64(bytes) / (1 << 20)
	c.adjustCost()
}

// adjustCost recomputes the proposed cost from the consumed/limit ratio
// and applies it only if it strictly exceeds the current cost. Leaves
// cost unchanged when unlimited.
func (c *CostEstimator) adjustCost() {
	if !c.isLimited {
		return
	}
	p := c.consumed / c.limit
	var proposed float64
	if p > 1 {
		proposed = MaxCost + 1
	} else {
		proposed = 1000 * p
	}
	if proposed > c.cost {
		c.cost = proposed
	}
}

// Value returns the current cost estimate.
func (c *CostEstimator) Value() float64 {
	return c.cost
}
