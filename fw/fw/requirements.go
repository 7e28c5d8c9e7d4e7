/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package fw

import (
	"strconv"
	"strings"

	"github.com/named-data/ndnd-pathsel/fw/core"
)

// bound holds a (lower, upper) requirement pair for one attribute.
type bound struct {
	lo, hi float64
}

// canonicalKey is the parameter-string key a RequirementType round-trips
// through Format - maxcost is used rather than the mincost alias, which
// is accepted on parse but never produced.
var canonicalKey = map[RequirementType]string{
	RequirementLoss:      "maxloss",
	RequirementDelay:     "maxdelay",
	RequirementBandwidth: "minbw",
	RequirementCost:      "maxcost",
}

var keyToType = map[string]RequirementType{
	"maxloss":  RequirementLoss,
	"maxdelay": RequirementDelay,
	"minbw":    RequirementBandwidth,
	"maxcost":  RequirementCost,
	"mincost":  RequirementCost,
}

// RequirementSet holds the operator-supplied per-prefix bounds a strategy
// selects against.
type RequirementSet struct {
	supported   map[RequirementType]bool
	bounds      map[RequirementType]bound
	initialized map[RequirementType]bool
}

// NewRequirementSet constructs a requirement set understanding exactly
// the given attribute types.
func NewRequirementSet(supported ...RequirementType) *RequirementSet {
	s := make(map[RequirementType]bool, len(supported))
	for _, t := range supported {
		s[t] = true
	}
	return &RequirementSet{
		supported:   s,
		bounds:      make(map[RequirementType]bound),
		initialized: make(map[RequirementType]bool),
	}
}

// ParseParameters parses a comma-separated key=value or key=lo-hi
// parameter string. Unrecognized keys are ignored, malformed pairs are
// skipped silently, and duplicate keys resolve last-value-wins. Returns
// true iff at least one supported key was parsed.
func (r *RequirementSet) ParseParameters(s string) bool {
	any := false
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		key := strings.TrimSpace(kv[0])
		val := strings.TrimSpace(kv[1])

		t, ok := keyToType[key]
		if !ok {
			continue
		}
		if !r.supported[t] {
			continue
		}

		lo, hi, ok := parseBoundValue(val)
		if !ok {
			continue
		}
		r.bounds[t] = bound{lo: lo, hi: hi}
		r.initialized[t] = true
		any = true
	}
	return any
}

// parseBoundValue parses "v" as (v, v), or "vl-vu" as (vl, vu).
func parseBoundValue(val string) (lo, hi float64, ok bool) {
	if idx := strings.IndexByte(val, '-'); idx > 0 {
		loStr, hiStr := val[:idx], val[idx+1:]
		lo, err1 := strconv.ParseFloat(strings.TrimSpace(loStr), 64)
		hi, err2 := strconv.ParseFloat(strings.TrimSpace(hiStr), 64)
		if err1 != nil || err2 != nil {
			return 0, 0, false
		}
		return lo, hi, true
	}
	v, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, 0, false
	}
	return v, v, true
}

// Format renders the initialized attributes back into parameter-string
// form, in canonical key order, such that ParseParameters(Format())
// reproduces the same bounds for any supported key set.
func (r *RequirementSet) Format() string {
	order := []RequirementType{RequirementLoss, RequirementDelay, RequirementBandwidth, RequirementCost}
	parts := make([]string, 0, len(order))
	for _, t := range order {
		if !r.initialized[t] {
			continue
		}
		b := r.bounds[t]
		key := canonicalKey[t]
		if b.lo == b.hi {
			parts = append(parts, key+"="+formatFloat(b.lo))
		} else {
			parts = append(parts, key+"="+formatFloat(b.lo)+"-"+formatFloat(b.hi))
		}
	}
	return strings.Join(parts, ",")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// GetLimits returns the (lower, upper) bound for t, or (-1, -1) if unset.
func (r *RequirementSet) GetLimits(t RequirementType) (float64, float64) {
	if !r.initialized[t] {
		return -1, -1
	}
	b := r.bounds[t]
	return b.lo, b.hi
}

// GetLimit returns the lower bound for t, warning if the bound is a
// proper range rather than a single value.
func (r *RequirementSet) GetLimit(t RequirementType) float64 {
	lo, hi := r.GetLimits(t)
	if lo != hi {
		core.Log.Warn(core.Component("requirements"), "requirement has distinct lower/upper bounds", "type", t, "lo", lo, "hi", hi)
	}
	return lo
}

// Contains reports whether t has a parsed bound.
func (r *RequirementSet) Contains(t RequirementType) bool {
	return r.initialized[t]
}

// OwnTypes returns the intersection of supported and initialized
// attribute types.
func (r *RequirementSet) OwnTypes() []RequirementType {
	out := make([]RequirementType, 0, len(r.initialized))
	for t := range r.initialized {
		if r.supported[t] {
			out = append(out, t)
		}
	}
	return out
}

// IsUpwardAttribute reports whether higher values of t are preferred.
func IsUpwardAttribute(t RequirementType) bool {
	return t == RequirementBandwidth
}
