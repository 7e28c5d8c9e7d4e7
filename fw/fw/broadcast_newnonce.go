/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package fw

import (
	"strings"

	"github.com/named-data/ndnd-pathsel/fw/core"
	"github.com/named-data/ndnd-pathsel/fw/defn"
	"github.com/named-data/ndnd-pathsel/fw/table"
)

// broadcastNewNonceStrategyID is the exact identifier registered in the
// Strategy-Choice table for this strategy.
const broadcastNewNonceStrategyID = "ndn:/localhost/nfd/strategy/broadcast-newnonce/%FD%01"

// BroadcastNewNonce forwards an Interest to every forwardable next-hop.
// Its one parameter, `nonce`, controls whether each copy
// keeps the incoming nonce (`nonce=false`) or is given a fresh one
// (any other value, or absence).
type BroadcastNewNonce struct {
	StrategyBase
}

func init() {
	strategyInit = append(strategyInit, func() Strategy { return &BroadcastNewNonce{} })
	StrategyVersions["broadcast-newnonce"] = []uint64{1}
	StrategyIDs["broadcast-newnonce"] = broadcastNewNonceStrategyID
}

func (s *BroadcastNewNonce) Instantiate(thread *Thread) {
	s.NewStrategyBase(thread, "broadcast-newnonce", 1)
}

// freshenNonce reports whether outbound copies should receive a new
// nonce - false only when the parameter string explicitly says
// nonce=false.
func freshenNonce(params string) bool {
	for _, part := range strings.Split(params, ",") {
		part = strings.TrimSpace(part)
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		if strings.TrimSpace(kv[0]) == "nonce" {
			return strings.TrimSpace(kv[1]) != "false"
		}
	}
	return true
}

func (s *BroadcastNewNonce) AfterReceiveInterest(
	inFace defn.FaceId,
	interest *defn.Interest,
	fibEntry table.FibEntry,
	pitEntry table.PitEntry,
) {
	params := s.GetStrategyChoice().FindEffectiveParameters(interest.Name)
	freshen := freshenNonce(params)

	sent := 0
	for _, nh := range fibEntry.GetNextHops() {
		if !pitEntry.CanForwardTo(nh.Nexthop) {
			continue
		}
		out := interest
		if freshen {
			out = &defn.Interest{Name: interest.Name, Nonce: freshNonce(interest.Nonce)}
		}
		s.SendInterest(out, pitEntry, nh.Nexthop, freshen, DefaultInterestLifetime)
		sent++
	}

	if sent == 0 {
		core.Log.Debug(s, "No eligible face for Interest", "name", interest.Name)
	}
	if !pitEntry.HasUnexpiredOutRecords() {
		core.Log.Debug(s, "Rejecting Interest: no unexpired out-records after fan-out", "name", interest.Name)
		s.RejectPendingInterest(pitEntry)
	}
}

func (s *BroadcastNewNonce) BeforeSatisfyInterest(pitEntry table.PitEntry, inFace defn.FaceId, data *defn.Data) {
	// No per-attribute bookkeeping for this strategy.
}

func (s *BroadcastNewNonce) AfterReceiveData(data *defn.Data, pitEntry table.PitEntry, inFace defn.FaceId) {
	for faceID := range pitEntry.InRecords() {
		s.SendData(data, faceID)
	}
}

func (s *BroadcastNewNonce) AfterContentStoreHit(data *defn.Data, pitEntry table.PitEntry, inFace defn.FaceId) {
	for faceID := range pitEntry.InRecords() {
		s.SendData(data, faceID)
	}
}
