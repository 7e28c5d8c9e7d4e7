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

// Hysteresis is the fractional margin a non-working face must clear
// before it displaces the current working face.
const Hysteresis = 0.05

// lowestCostStrategyID is the exact identifier registered in the
// Strategy-Choice table for this strategy.
const lowestCostStrategyID = "ndn:/localhost/nfd/strategy/lowest-cost/%FD%01/"

// LowestCost selects, per prefix, the first forwardable face that still
// satisfies the prefix's requirement bounds, falling back to the
// best-measured face on the priority attribute when none qualify.
type LowestCost struct {
	StrategyBase
	faceTable *FaceInfoTable
	probing   *ProbingHelper
	priority  RequirementType
}

func init() {
	strategyInit = append(strategyInit, func() Strategy { return &LowestCost{} })
	StrategyVersions["lowest-cost"] = []uint64{1}
	StrategyIDs["lowest-cost"] = lowestCostStrategyID
}

// Instantiate wires the strategy into thread with its own per-face table
// and probing helper. The default priority attribute is DELAY.
func (s *LowestCost) Instantiate(thread *Thread) {
	s.NewStrategyBase(thread, "lowest-cost", 1)
	s.faceTable = NewFaceInfoTable()
	s.probing = NewProbingHelper(DefaultProbingInterval)
	s.priority = RequirementDelay
}

// SetProbingInterval overrides the default probing cadence. Callers -
// notably the CLI simulator's scenario file - may configure it
// explicitly.
func (s *LowestCost) SetProbingInterval(d time.Duration) {
	s.probing = NewProbingHelper(d)
}

func (s *LowestCost) AfterReceiveInterest(
	inFace defn.FaceId,
	interest *defn.Interest,
	fibEntry table.FibEntry,
	pitEntry table.PitEntry,
) {
	info := FindOrCreateMeasurementInfo(s.thread, interest.Name,
		RequirementDelay, RequirementLoss, RequirementBandwidth, RequirementCost)
	req := info.Requirements()

	if pitEntry.HasUnexpiredOutRecords() {
		core.Log.Trace(s, "Suppressed retransmission", "name", interest.Name)
		return
	}

	now := time.Now()
	workingFace, hasWorking := info.WorkingFace()
	nexthops := fibEntry.GetNextHops()

	chosen, ok := s.selectOutput(nexthops, pitEntry, req, workingFace, hasWorking, now)
	if !ok {
		core.Log.Debug(s, "No eligible face for Interest", "name", interest.Name)
		return
	}

	if s.probing.ProbingDue(now) {
		for _, nh := range nexthops {
			if nh.Nexthop == chosen || !pitEntry.CanForwardTo(nh.Nexthop) {
				continue
			}
			core.Log.Trace(s, "Probing", "name", interest.Name, "faceid", nh.Nexthop)
			probe := &defn.Interest{Name: interest.Name, Nonce: freshNonce(interest.Nonce)}
			s.SendInterest(probe, pitEntry, nh.Nexthop, true, DefaultInterestLifetime)
		}
	}

	if !hasWorking || workingFace != chosen {
		info.SetWorkingFace(chosen)
	}

	if err := s.faceTable.GetOrCreate(chosen).AddSent(interest.Name, now); err != nil {
		core.Log.Warn(s, "Duplicate send", "name", interest.Name, "faceid", chosen, "err", err)
	}
	s.SendInterest(interest, pitEntry, chosen, false, DefaultInterestLifetime)
}

// selectOutput runs a joint DELAY+LOSS pass when both are required,
// falling back to single-attribute selection on the priority attribute
// (or the first next-hop when nothing is required at all).
func (s *LowestCost) selectOutput(
	nexthops []*table.FibNextHopEntry,
	pit table.PitEntry,
	req *RequirementSet,
	workingFace defn.FaceId,
	hasWorking bool,
	now time.Time,
) (defn.FaceId, bool) {
	if req.Contains(RequirementDelay) && req.Contains(RequirementLoss) {
		delayLimit := req.GetLimit(RequirementDelay)
		lossLimit := req.GetLimit(RequirementLoss)
		for _, nh := range nexthops {
			if !pit.CanForwardTo(nh.Nexthop) {
				continue
			}
			dLimit, lLimit := delayLimit, lossLimit
			if !hasWorking || nh.Nexthop != workingFace {
				dLimit /= 1 + Hysteresis
				lLimit /= 1 + Hysteresis
			}
			est := s.faceTable.GetOrCreate(nh.Nexthop)
			if est.Value(RequirementDelay, now) < dLimit && est.Value(RequirementLoss, now) < lLimit {
				return nh.Nexthop, true
			}
		}
		return s.selectByAttribute(nexthops, pit, s.priority, req, workingFace, hasWorking, now)
	}

	if req.Contains(RequirementDelay) {
		return s.selectByAttribute(nexthops, pit, RequirementDelay, req, workingFace, hasWorking, now)
	}
	if req.Contains(RequirementLoss) {
		return s.selectByAttribute(nexthops, pit, RequirementLoss, req, workingFace, hasWorking, now)
	}
	if req.Contains(RequirementBandwidth) {
		return s.selectByAttribute(nexthops, pit, RequirementBandwidth, req, workingFace, hasWorking, now)
	}

	for _, nh := range nexthops {
		if pit.CanForwardTo(nh.Nexthop) {
			return nh.Nexthop, true
		}
	}
	return defn.InvalidFaceId, false
}

// selectByAttribute picks the first forwardable face whose measured
// value passes the (hysteresis-adjusted) limit for t, or the
// best-measured face when none pass.
func (s *LowestCost) selectByAttribute(
	nexthops []*table.FibNextHopEntry,
	pit table.PitEntry,
	t RequirementType,
	req *RequirementSet,
	workingFace defn.FaceId,
	hasWorking bool,
	now time.Time,
) (defn.FaceId, bool) {
	limit := req.GetLimit(t)
	upward := IsUpwardAttribute(t)

	bestFace, bestValue, haveBest := defn.InvalidFaceId, 0.0, false

	for _, nh := range nexthops {
		if !pit.CanForwardTo(nh.Nexthop) {
			continue
		}
		value := s.faceTable.GetOrCreate(nh.Nexthop).Value(t, now)

		effective := limit
		if !hasWorking || nh.Nexthop != workingFace {
			if upward {
				effective *= 1 + Hysteresis
			} else {
				effective /= 1 + Hysteresis
			}
		}

		passes := value > effective
		if !upward {
			passes = value < effective
		}
		if passes {
			return nh.Nexthop, true
		}

		if !haveBest || (upward && value > bestValue) || (!upward && value < bestValue) {
			bestFace, bestValue, haveBest = nh.Nexthop, value, true
		}
	}

	if haveBest {
		return bestFace, true
	}
	return defn.InvalidFaceId, false
}

func (s *LowestCost) AfterContentStoreHit(data *defn.Data, pitEntry table.PitEntry, inFace defn.FaceId) {
	for faceID := range pitEntry.InRecords() {
		s.SendData(data, faceID)
	}
}

func (s *LowestCost) AfterReceiveData(data *defn.Data, pitEntry table.PitEntry, inFace defn.FaceId) {
	for faceID := range pitEntry.InRecords() {
		s.SendData(data, faceID)
	}
}

// BeforeSatisfyInterest updates loss and bandwidth for the upstream face,
// plus RTT when the PIT entry holds both in- and out-records. Late Data
// with no out-record still counts toward loss and bandwidth; only the RTT
// update is skipped since there is no send timestamp to measure against.
func (s *LowestCost) BeforeSatisfyInterest(pitEntry table.PitEntry, inFace defn.FaceId, data *defn.Data) {
	now := time.Now()
	est := s.faceTable.GetOrCreate(inFace)
	est.AddSatisfied(data.Name, data.ContentSize, now)

	outRecord, hasOut := pitEntry.GetOutRecord(inFace)
	if !hasOut {
		core.Log.Trace(s, "Late Data with no out-record", "name", data.Name, "faceid", inFace)
		return
	}
	if len(pitEntry.InRecords()) > 0 {
		est.AddRtt(now.Sub(outRecord.LastRenewed))
	}
}
