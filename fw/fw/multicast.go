/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package fw

import (
	"time"

	"github.com/named-data/ndnd-pathsel/fw/core"
	"github.com/named-data/ndnd-pathsel/fw/defn"
	"github.com/named-data/ndnd-pathsel/fw/table"
)

// MulticastSuppressionTime is the time to suppress retransmissions of the same Interest.
const MulticastSuppressionTime = 500 * time.Millisecond

// MulticastInterestLifetime is the out-record lifetime used when no
// per-Interest lifetime is otherwise known.
const MulticastInterestLifetime = 4 * time.Second

// multicastStrategyID is the identifier registered in the Strategy-Choice
// table for this strategy.
const multicastStrategyID = "ndn:/localhost/nfd/strategy/multicast/%FD%01"

// Multicast is a forwarding strategy that forwards Interests to all nexthop faces.
type Multicast struct {
	StrategyBase
}

// Registers the Multicast strategy with version 1, adding its constructor to the initialization list and mapping it to the "multicast" name in the strategy version registry.
func init() {
	strategyInit = append(strategyInit, func() Strategy { return &Multicast{} })
	StrategyVersions["multicast"] = []uint64{1}
	StrategyIDs["multicast"] = multicastStrategyID
}

// Initializes the base multicast forwarding strategy with the specified thread, naming it "multicast" and using version 1.
func (s *Multicast) Instantiate(thread *Thread) {
	s.NewStrategyBase(thread, "multicast", 1)
}

// Handles a Content Store hit by logging the event and sending the cached Data packet to the faces specified in the PIT entry.
func (s *Multicast) AfterContentStoreHit(
	data *defn.Data,
	pitEntry table.PitEntry,
	inFace defn.FaceId,
) {
	core.Log.Trace(s, "AfterContentStoreHit", "name", data.Name, "faceid", inFace)
	for faceID := range pitEntry.InRecords() {
		s.SendData(data, faceID)
	}
}

// Forwards the received Data packet to all faces listed in the PIT entry's incoming records to satisfy pending Interests in a multicast scenario.
func (s *Multicast) AfterReceiveData(
	data *defn.Data,
	pitEntry table.PitEntry,
	inFace defn.FaceId,
) {
	core.Log.Trace(s, "AfterReceiveData", "name", data.Name, "inrecords", len(pitEntry.InRecords()))
	for faceID := range pitEntry.InRecords() {
		core.Log.Trace(s, "Forwarding Data", "name", data.Name, "faceid", faceID)
		s.SendData(data, faceID)
	}
}

// Suppresses retransmitted Interests with differing nonces within the suppression interval and forwards new Interests to all nexthops in a multicast scenario.
func (s *Multicast) AfterReceiveInterest(
	inFace defn.FaceId,
	interest *defn.Interest,
	fibEntry table.FibEntry,
	pitEntry table.PitEntry,
) {
	nexthops := fibEntry.GetNextHops()
	if len(nexthops) == 0 {
		core.Log.Debug(s, "No nexthop for Interest", "name", interest.Name)
		return
	}

	// If there is an out record less than suppression interval ago, drop the
	// retransmission to suppress it (only if the nonce is different)
	now := time.Now()
	for _, outRecord := range pitEntry.OutRecords() {
		if outRecord.LatestNonce != interest.Nonce &&
			outRecord.LatestTimestamp.Add(MulticastSuppressionTime).After(now) {
			core.Log.Debug(s, "Suppressed Interest", "name", interest.Name)
			return
		}
	}

	// Send interest to all nexthops that are not looping back
	for _, nexthop := range nexthops {
		if !pitEntry.CanForwardTo(nexthop.Nexthop) {
			continue
		}
		core.Log.Trace(s, "Forwarding Interest", "name", interest.Name, "faceid", nexthop.Nexthop)
		s.SendInterest(interest, pitEntry, nexthop.Nexthop, false, MulticastInterestLifetime)
	}
}

// This function is a no-op in the Multicast strategy, serving as a placeholder for pre-satisfaction logic that is unnecessary for multicast interest handling.
func (s *Multicast) BeforeSatisfyInterest(pitEntry table.PitEntry, inFace defn.FaceId, data *defn.Data) {
	// This does nothing in Multicast
}
