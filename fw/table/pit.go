/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"time"

	"github.com/named-data/ndnd-pathsel/fw/defn"
)

// PitInRecord tracks one incoming Interest from a downstream face.
type PitInRecord struct {
	Face            defn.FaceId
	LatestNonce     uint32
	LatestTimestamp time.Time
	ExpirationTime  time.Time
}

// PitOutRecord tracks one forwarded Interest to an upstream face.
type PitOutRecord struct {
	Face            defn.FaceId
	LatestNonce     uint32
	LatestTimestamp time.Time
	LastRenewed     time.Time
	ExpirationTime  time.Time
}

// PitEntry is the pending-Interest-table entry a strategy is given on
// AfterReceiveInterest/BeforeSatisfyInterest. PIT entries are borrowed
// read/write for the duration of one callback and must never be retained
// across callbacks.
type PitEntry interface {
	Name() string
	InRecords() map[defn.FaceId]*PitInRecord
	OutRecords() map[defn.FaceId]*PitOutRecord
	GetOutRecord(face defn.FaceId) (*PitOutRecord, bool)
	// CanForwardTo reports whether forwarding to face is allowed without
	// violating loop-prevention (i.e. face does not already have an
	// in-record).
	CanForwardTo(face defn.FaceId) bool
	// HasUnexpiredOutRecords reports whether any out-record's
	// ExpirationTime is still in the future.
	HasUnexpiredOutRecords() bool
	// InsertOutRecord records that an Interest was just forwarded to face
	// with the given nonce, returning the (possibly pre-existing) record.
	InsertOutRecord(face defn.FaceId, nonce uint32, lifetime time.Duration) *PitOutRecord
	// Reject abandons the pending Interest: every in-record is expired so
	// no downstream keeps waiting on this entry.
	Reject()
	// Rejected reports whether Reject was called on this entry.
	Rejected() bool
}

// BasePitEntry is a minimal, concrete PitEntry suitable for tests and the
// CLI simulator.
type BasePitEntry struct {
	name       string
	inRecords  map[defn.FaceId]*PitInRecord
	outRecords map[defn.FaceId]*PitOutRecord
	rejected   bool
	now        func() time.Time
}

// NewPitEntry constructs a PIT entry for name. nowFn defaults to time.Now
// when nil, and exists so tests can inject a deterministic clock.
func NewPitEntry(name string, nowFn func() time.Time) *BasePitEntry {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &BasePitEntry{
		name:       name,
		inRecords:  make(map[defn.FaceId]*PitInRecord),
		outRecords: make(map[defn.FaceId]*PitOutRecord),
		now:        nowFn,
	}
}

func (e *BasePitEntry) Name() string { return e.name }

func (e *BasePitEntry) InRecords() map[defn.FaceId]*PitInRecord { return e.inRecords }

func (e *BasePitEntry) OutRecords() map[defn.FaceId]*PitOutRecord { return e.outRecords }

func (e *BasePitEntry) GetOutRecord(face defn.FaceId) (*PitOutRecord, bool) {
	r, ok := e.outRecords[face]
	return r, ok
}

func (e *BasePitEntry) CanForwardTo(face defn.FaceId) bool {
	_, hasInRecord := e.inRecords[face]
	return !hasInRecord
}

func (e *BasePitEntry) HasUnexpiredOutRecords() bool {
	now := e.now()
	for _, r := range e.outRecords {
		if r.ExpirationTime.After(now) {
			return true
		}
	}
	return false
}

func (e *BasePitEntry) Reject() {
	now := e.now()
	for _, r := range e.inRecords {
		r.ExpirationTime = now
	}
	e.rejected = true
}

func (e *BasePitEntry) Rejected() bool { return e.rejected }

func (e *BasePitEntry) InsertOutRecord(face defn.FaceId, nonce uint32, lifetime time.Duration) *PitOutRecord {
	now := e.now()
	r, ok := e.outRecords[face]
	if !ok {
		r = &PitOutRecord{Face: face}
		e.outRecords[face] = r
	}
	r.LatestNonce = nonce
	r.LatestTimestamp = now
	r.LastRenewed = now
	r.ExpirationTime = now.Add(lifetime)
	return r
}

// InsertInRecord records an incoming Interest from face, returning
// whether a record already existed and the previous nonce if so.
func (e *BasePitEntry) InsertInRecord(face defn.FaceId, nonce uint32, lifetime time.Duration) (record *PitInRecord, alreadyExists bool, prevNonce uint32) {
	now := e.now()
	r, ok := e.inRecords[face]
	if ok {
		prevNonce = r.LatestNonce
	} else {
		r = &PitInRecord{Face: face}
		e.inRecords[face] = r
	}
	r.LatestNonce = nonce
	r.LatestTimestamp = now
	r.ExpirationTime = now.Add(lifetime)
	return r, ok, prevNonce
}
