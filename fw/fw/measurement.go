/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package fw

import (
	"github.com/named-data/ndnd-pathsel/fw/defn"
	"github.com/named-data/ndnd-pathsel/std/types/optional"
)

// measurementTypeID is the type-id the strategies register their
// per-prefix record under in the MeasurementAccessor.
const measurementTypeID = 1012

// MeasurementInfo is the per-prefix scratch record a strategy pins along
// the name tree: the current working face plus the parsed requirement
// set for that prefix.
type MeasurementInfo struct {
	currentWorkingFace optional.Optional[defn.FaceId]
	requirements       *RequirementSet
}

// WorkingFace returns the current working face and whether one is set.
func (m *MeasurementInfo) WorkingFace() (defn.FaceId, bool) {
	return m.currentWorkingFace.Get()
}

// SetWorkingFace updates the current working face.
func (m *MeasurementInfo) SetWorkingFace(face defn.FaceId) {
	m.currentWorkingFace.Set(face)
}

// Requirements returns the prefix's parsed requirement set.
func (m *MeasurementInfo) Requirements() *RequirementSet {
	return m.requirements
}

// FindOrCreateMeasurementInfo resolves the measurement record attached to
// name's longest matching prefix, creating one (parsing parameters from
// the strategy-choice table) if absent.
func FindOrCreateMeasurementInfo(thread *Thread, name string, supported ...RequirementType) *MeasurementInfo {
	if _, rec, ok := thread.Measurements.FindLongestPrefixMatch(name, measurementTypeID); ok {
		if info, ok := rec.(*MeasurementInfo); ok {
			return info
		}
	}

	req := NewRequirementSet(supported...)
	params := thread.StrategyChoice.FindEffectiveParameters(name)
	req.ParseParameters(params)

	info := &MeasurementInfo{requirements: req}
	thread.Measurements.Insert(name, measurementTypeID, info)
	return info
}
