/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

// Package table holds the FIB, PIT, Face, Strategy-Choice, and
// measurement-accessor collaborators the forwarding strategies are built
// against. These are explicitly out-of-scope collaborators per the core
// specification; the implementations here are deliberately minimal,
// in-memory, and single-threaded (matching the strategy layer's own
// concurrency model) - just enough to compile, test, and run the
// path-selection core end to end.
package table

import "github.com/named-data/ndnd-pathsel/fw/defn"

// FibNextHopEntry is one ranked next hop for a FIB entry.
type FibNextHopEntry struct {
	Nexthop defn.FaceId
	Cost    int
}

// FibEntry is the longest-matching FIB entry for an Interest's name.
type FibEntry interface {
	// Name is the registered prefix this entry matches.
	Name() string
	// GetNextHops returns the ranked next-hop list, in FIB order (lowest
	// cost first by convention, but the strategies only ever rely on scan
	// order - never on Cost directly, except as the MADM seed value).
	GetNextHops() []*FibNextHopEntry
}

// baseFibEntry is a minimal concrete FibEntry.
type baseFibEntry struct {
	name     string
	nexthops []*FibNextHopEntry
}

// NewFibEntry constructs a FIB entry for prefix with the given next hops.
func NewFibEntry(prefix string, nexthops []*FibNextHopEntry) FibEntry {
	return &baseFibEntry{name: prefix, nexthops: nexthops}
}

func (e *baseFibEntry) Name() string                   { return e.name }
func (e *baseFibEntry) GetNextHops() []*FibNextHopEntry { return e.nexthops }

// Fib is an in-memory FIB keyed by exact registered prefix, with
// longest-prefix-match lookup by component count.
type Fib struct {
	entries map[string]FibEntry
}

// NewFib constructs an empty FIB.
func NewFib() *Fib {
	return &Fib{entries: make(map[string]FibEntry)}
}

// Insert registers (or replaces) the FIB entry for prefix.
func (f *Fib) Insert(prefix string, nexthops []*FibNextHopEntry) {
	f.entries[prefix] = NewFibEntry(prefix, nexthops)
}

// FindLongestPrefixMatch returns the FIB entry whose registered prefix is
// the longest prefix of name, or nil if none matches.
func (f *Fib) FindLongestPrefixMatch(name string) FibEntry {
	best, bestLen := FibEntry(nil), -1
	for prefix, entry := range f.entries {
		if isNamePrefix(prefix, name) && len(prefix) > bestLen {
			best, bestLen = entry, len(prefix)
		}
	}
	return best
}

// isNamePrefix reports whether prefix is a component-wise prefix of name.
func isNamePrefix(prefix, name string) bool {
	if prefix == "/" || prefix == "" {
		return true
	}
	if prefix == name {
		return true
	}
	if len(name) <= len(prefix) {
		return false
	}
	return name[:len(prefix)] == prefix && name[len(prefix)] == '/'
}
