/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import "strings"

// MeasurementAccessor is a keyed, heterogeneous per-name scratch store.
// Strategies pin per-prefix state along the name tree, tagged with a
// 32-bit type-id so unrelated strategies sharing the same accessor never
// collide. A lookup miss walks from the full name up to the root looking
// for the nearest existing record of the requested type; a create always
// happens at the exact name given.
type MeasurementAccessor struct {
	// records[name][typeId] = record
	records map[string]map[int32]any
}

// NewMeasurementAccessor constructs an empty accessor.
func NewMeasurementAccessor() *MeasurementAccessor {
	return &MeasurementAccessor{records: make(map[string]map[int32]any)}
}

// FindLongestPrefixMatch walks from name up to the root looking for the
// nearest existing record tagged typeId, returning the matching prefix
// name, the record, and whether one was found.
func (m *MeasurementAccessor) FindLongestPrefixMatch(name string, typeId int32) (string, any, bool) {
	components := splitName(name)
	for i := len(components); i >= 0; i-- {
		prefix := "/" + strings.Join(components[:i], "/")
		if i == 0 {
			prefix = "/"
		}
		if byType, ok := m.records[prefix]; ok {
			if record, ok := byType[typeId]; ok {
				return prefix, record, true
			}
		}
	}
	return "", nil, false
}

// Insert attaches record, tagged typeId, at the exact name given.
func (m *MeasurementAccessor) Insert(name string, typeId int32, record any) {
	byType, ok := m.records[name]
	if !ok {
		byType = make(map[int32]any)
		m.records[name] = byType
	}
	byType[typeId] = record
}
