/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

// Package fw implements the forwarding strategies: the multi-attribute
// path-selection engine (lowest-cost, MADM, broadcast/new-nonce) plus the
// baseline multicast strategy, all built against the table package's
// FIB/PIT/Face/StrategyChoice/MeasurementAccessor collaborators.
package fw

import (
	"time"

	"github.com/named-data/ndnd-pathsel/fw/defn"
	"github.com/named-data/ndnd-pathsel/fw/table"
)

// Strategy is the capability set every forwarding strategy implements.
// Concrete strategies are plain values holding their own state; dispatch
// happens through this interface.
type Strategy interface {
	String() string

	// Instantiate binds the strategy to its owning Thread. Construction
	// order is Thread -> Strategy: the strategy holds a non-owning
	// back-reference to the thread for configuration lookups only.
	Instantiate(thread *Thread)

	AfterReceiveInterest(
		inFace defn.FaceId,
		interest *defn.Interest,
		fibEntry table.FibEntry,
		pitEntry table.PitEntry,
	)

	BeforeSatisfyInterest(
		pitEntry table.PitEntry,
		inFace defn.FaceId,
		data *defn.Data,
	)

	AfterReceiveData(
		data *defn.Data,
		pitEntry table.PitEntry,
		inFace defn.FaceId,
	)

	AfterContentStoreHit(
		data *defn.Data,
		pitEntry table.PitEntry,
		inFace defn.FaceId,
	)
}

// strategyInit collects the constructors of every registered strategy, in
// registration order.
var strategyInit []func() Strategy

// StrategyVersions maps a strategy's short name to the versions it
// implements.
var StrategyVersions = make(map[string][]uint64)

// StrategyIDs maps a strategy's short name to the exact identifier it is
// registered under in the Strategy-Choice table.
var StrategyIDs = make(map[string]string)

// Thread holds the forwarder-side accessors a strategy needs to look
// itself up in: the strategy-choice table, the measurement accessor, and
// the face table.
type Thread struct {
	StrategyChoice *table.StrategyChoiceTable
	Measurements   *table.MeasurementAccessor
	Faces          map[defn.FaceId]table.Face
}

// NewThread constructs a Thread with fresh, empty collaborators.
func NewThread() *Thread {
	return &Thread{
		StrategyChoice: table.NewStrategyChoiceTable(),
		Measurements:   table.NewMeasurementAccessor(),
		Faces:          make(map[defn.FaceId]table.Face),
	}
}

// AddFace registers a face the thread can forward to.
func (t *Thread) AddFace(f table.Face) {
	t.Faces[f.ID()] = f
}

// StrategyBase is embedded by every concrete strategy. It holds the
// back-reference to the owning Thread and the two primitives strategies
// use to actually move packets, so concrete strategies never touch
// t.Faces directly.
type StrategyBase struct {
	thread  *Thread
	name    string
	version uint64
}

// NewStrategyBase initializes the embedded base with the owning thread,
// the strategy's short name, and its version.
func (s *StrategyBase) NewStrategyBase(thread *Thread, name string, version uint64) {
	s.thread = thread
	s.name = name
	s.version = version
}

// String identifies the strategy instance in log output.
func (s *StrategyBase) String() string {
	return s.name
}

// GetMeasurements returns the thread's measurement accessor.
func (s *StrategyBase) GetMeasurements() *table.MeasurementAccessor {
	return s.thread.Measurements
}

// GetStrategyChoice returns the thread's strategy-choice table.
func (s *StrategyBase) GetStrategyChoice() *table.StrategyChoiceTable {
	return s.thread.StrategyChoice
}

// SendInterest forwards interest to outFace, recording an out-record on
// pitEntry, and optionally freshening the nonce.
func (s *StrategyBase) SendInterest(
	interest *defn.Interest,
	pitEntry table.PitEntry,
	outFace defn.FaceId,
	newNonce bool,
	lifetime time.Duration,
) {
	face, ok := s.thread.Faces[outFace]
	if !ok {
		return
	}
	pitEntry.InsertOutRecord(outFace, interest.Nonce, lifetime)
	face.SendInterest(interest, newNonce)
}

// SendData emits data on outFace in satisfaction of pitEntry.
func (s *StrategyBase) SendData(data *defn.Data, outFace defn.FaceId) {
	if face, ok := s.thread.Faces[outFace]; ok {
		face.SendData(data)
	}
}

// RejectPendingInterest abandons pitEntry when the strategy could not
// forward the Interest anywhere; its in-records are expired so no
// downstream keeps waiting on it.
func (s *StrategyBase) RejectPendingInterest(pitEntry table.PitEntry) {
	pitEntry.Reject()
}
