/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package fw

import (
	"time"

	"github.com/named-data/ndnd-pathsel/fw/defn"
)

// Default estimator parameters shared by every strategy instance's
// per-face table.
const (
	DefaultInterestLifetime = 4 * time.Second
	DefaultLossWindow       = 10 * time.Second
	DefaultBandwidthWindow  = 10 * time.Second
)

// RequirementType enumerates the attributes a requirement set or an
// interface estimation can speak about.
type RequirementType int

const (
	RequirementBandwidth RequirementType = iota
	RequirementCost
	RequirementDelay
	RequirementLoss
)

// InterfaceEstimation bundles the RTT, loss, and bandwidth estimators for
// a single face.
type InterfaceEstimation struct {
	rtt  *RttEstimator
	loss *LossEstimator
	bw   *BandwidthEstimator
}

// NewInterfaceEstimation constructs a face's estimator bundle. lifetime
// and lossWindow parameterize the loss estimator; bwWindow parameterizes the
// bandwidth estimator.
func NewInterfaceEstimation(lifetime, lossWindow, bwWindow time.Duration) (*InterfaceEstimation, error) {
	loss, err := NewLossEstimator(lifetime, lossWindow)
	if err != nil {
		return nil, err
	}
	return &InterfaceEstimation{
		rtt:  NewRttEstimator(),
		loss: loss,
		bw:   NewBandwidthEstimator(bwWindow),
	}, nil
}

// AddSent forwards to the loss estimator.
func (e *InterfaceEstimation) AddSent(name string, t time.Time) error {
	return e.loss.AddSent(name, t)
}

// AddSatisfied forwards to the loss and bandwidth estimators.
func (e *InterfaceEstimation) AddSatisfied(name string, bytes int, t time.Time) {
	e.loss.AddSatisfied(name, t)
	e.bw.AddDelivered(bytes, t)
}

// AddRtt forwards to the RTT estimator.
func (e *InterfaceEstimation) AddRtt(d time.Duration) {
	e.rtt.AddSample(d)
}

// Value dispatches to the estimator for t, returning -1 for an
// unrecognized or unsupported type (COST is not held here - it lives in
// the strategy's costMap).
func (e *InterfaceEstimation) Value(t RequirementType, now time.Time) float64 {
	switch t {
	case RequirementDelay:
		return e.rtt.Current()
	case RequirementLoss:
		return e.loss.LossPercentage(now)
	case RequirementBandwidth:
		return e.bw.Current(now)
	default:
		return -1
	}
}

// FaceInfoTable maps a FaceId to its InterfaceEstimation, created lazily
// on first reference.
type FaceInfoTable struct {
	entries map[defn.FaceId]*InterfaceEstimation
}

// NewFaceInfoTable constructs an empty table.
func NewFaceInfoTable() *FaceInfoTable {
	return &FaceInfoTable{entries: make(map[defn.FaceId]*InterfaceEstimation)}
}

// GetOrCreate returns the estimation bundle for face, creating one with
// the default parameters if this is the first reference.
func (t *FaceInfoTable) GetOrCreate(face defn.FaceId) *InterfaceEstimation {
	if e, ok := t.entries[face]; ok {
		return e
	}
	// NewInterfaceEstimation only fails when windowSize <= lifetime, which
	// cannot happen with the fixed defaults above.
	e, _ := NewInterfaceEstimation(DefaultInterestLifetime, DefaultLossWindow, DefaultBandwidthWindow)
	t.entries[face] = e
	return e
}
