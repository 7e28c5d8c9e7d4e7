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

// madmStrategyID is the exact identifier registered in the Strategy-Choice
// table for this strategy.
const madmStrategyID = "ndn:/localhost/nfd/strategy/madm/%FD%01/"

// Madm selects, per prefix, the next-hop with the highest normalized
// additive sub-score across every attribute the prefix's requirement set
// constrains.
type Madm struct {
	StrategyBase
	faceTable   *FaceInfoTable
	costMap     map[defn.FaceId]*CostEstimator
	probing     *ProbingHelper
	initialized bool
}

func init() {
	strategyInit = append(strategyInit, func() Strategy { return &Madm{} })
	StrategyVersions["madm"] = []uint64{1}
	StrategyIDs["madm"] = madmStrategyID
}

func (s *Madm) Instantiate(thread *Thread) {
	s.NewStrategyBase(thread, "madm", 1)
	s.faceTable = NewFaceInfoTable()
	s.costMap = make(map[defn.FaceId]*CostEstimator)
	s.probing = NewProbingHelper(DefaultProbingInterval)
}

// cost returns the cost estimator for face, seeding it from seedCost the
// first time the face is referenced.
func (s *Madm) cost(face defn.FaceId, seedCost int) *CostEstimator {
	c, ok := s.costMap[face]
	if !ok {
		c = NewCostEstimator()
		c.cost = float64(seedCost)
		s.costMap[face] = c
	}
	return c
}

// SetProbingInterval overrides the default probing cadence, for the same
// reason as LowestCost.SetProbingInterval.
func (s *Madm) SetProbingInterval(d time.Duration) {
	s.probing = NewProbingHelper(d)
}

func (s *Madm) AfterReceiveInterest(
	inFace defn.FaceId,
	interest *defn.Interest,
	fibEntry table.FibEntry,
	pitEntry table.PitEntry,
) {
	info := FindOrCreateMeasurementInfo(s.thread, interest.Name,
		RequirementDelay, RequirementLoss, RequirementBandwidth, RequirementCost)
	req := info.Requirements()

	now := time.Now()
	nexthops := fibEntry.GetNextHops()

	if !s.initialized {
		for _, nh := range nexthops {
			s.cost(nh.Nexthop, nh.Cost)
		}
		s.initialized = true
	}

	workingFace, hasWorking := info.WorkingFace()
	ownTypes := req.OwnTypes()

	bestFace, bestTotal, haveBest := defn.InvalidFaceId, 0.0, false
	for _, nh := range nexthops {
		isWorking := hasWorking && nh.Nexthop == workingFace
		total := s.score(nh.Nexthop, nh.Cost, ownTypes, req, isWorking, now)
		if isWorking {
			total *= 1 + Hysteresis
		}
		if !haveBest || total >= bestTotal {
			bestFace, bestTotal, haveBest = nh.Nexthop, total, true
		}
	}

	if !haveBest {
		core.Log.Debug(s, "No eligible face for Interest", "name", interest.Name)
		return
	}

	if s.probing.ProbingDue(now) {
		_, costHi := req.GetLimits(RequirementCost)
		maxcostSet := req.Contains(RequirementCost)
		for _, nh := range nexthops {
			if nh.Nexthop == bestFace {
				continue
			}
			if maxcostSet && s.cost(nh.Nexthop, nh.Cost).Value() > costHi {
				continue
			}
			core.Log.Trace(s, "Probing", "name", interest.Name, "faceid", nh.Nexthop)
			probe := &defn.Interest{Name: interest.Name, Nonce: freshNonce(interest.Nonce)}
			s.SendInterest(probe, pitEntry, nh.Nexthop, true, DefaultInterestLifetime)
		}
	}

	if !hasWorking || workingFace != bestFace {
		info.SetWorkingFace(bestFace)
	}

	if err := s.faceTable.GetOrCreate(bestFace).AddSent(interest.Name, now); err != nil {
		core.Log.Warn(s, "Duplicate send", "name", interest.Name, "faceid", bestFace, "err", err)
	}
	s.SendInterest(interest, pitEntry, bestFace, false, DefaultInterestLifetime)
}

// score sums the per-attribute sub-scores for face across types. A
// single zero sub-score collapses the total to zero.
func (s *Madm) score(
	face defn.FaceId,
	seedCost int,
	types []RequirementType,
	req *RequirementSet,
	isWorking bool,
	now time.Time,
) float64 {
	total := 0.0
	for _, t := range types {
		var v float64
		if t == RequirementCost {
			v = s.cost(face, seedCost).Value()
		} else {
			v = s.faceTable.GetOrCreate(face).Value(t, now)
		}

		if t == RequirementBandwidth && !isWorking {
			total += 0.5
			continue
		}

		lo, hi := req.GetLimits(t)
		sub := subScore(v, lo, hi)
		if IsUpwardAttribute(t) {
			sub = 1 - sub
		}
		if sub == 0 {
			return 0
		}
		total += sub
	}
	return total
}

// subScore maps v onto [0, 1] against the (lo, hi) bound: 1 at or below
// lo, 0 at or above hi, linear in between.
func subScore(v, lo, hi float64) float64 {
	switch {
	case v <= lo:
		return 1
	case v >= hi:
		return 0
	default:
		return 1 - (v-lo)/(hi-lo)
	}
}

func (s *Madm) AfterContentStoreHit(data *defn.Data, pitEntry table.PitEntry, inFace defn.FaceId) {
	for faceID := range pitEntry.InRecords() {
		s.SendData(data, faceID)
	}
}

func (s *Madm) AfterReceiveData(data *defn.Data, pitEntry table.PitEntry, inFace defn.FaceId) {
	for faceID := range pitEntry.InRecords() {
		s.SendData(data, faceID)
	}
}

// BeforeSatisfyInterest updates loss, bandwidth, and the upstream face's
// traffic-ramped cost, plus RTT when the PIT entry holds both in- and
// out-records. Late Data with no out-record still counts toward loss,
// bandwidth, and traffic; only the RTT update is skipped since there is
// no send timestamp to measure against.
func (s *Madm) BeforeSatisfyInterest(pitEntry table.PitEntry, inFace defn.FaceId, data *defn.Data) {
	now := time.Now()
	est := s.faceTable.GetOrCreate(inFace)
	est.AddSatisfied(data.Name, data.ContentSize, now)
	s.cost(inFace, DefaultCost).AddTraffic(data.ContentSize)

	outRecord, hasOut := pitEntry.GetOutRecord(inFace)
	if !hasOut {
		core.Log.Trace(s, "Late Data with no out-record", "name", data.Name, "faceid", inFace)
		return
	}
	if len(pitEntry.InRecords()) > 0 {
		est.AddRtt(now.Sub(outRecord.LastRenewed))
	}
}
