// Copyright 2026 The Ballastcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tanks

import "github.com/cpmech/gosl/chk"

// Registry is the single mutable tank-state owner of a run (spec §5). It is
// owned exclusively by the stage planner; the solver only ever receives an
// immutable Snapshot.
type Registry struct {
	order []string // tank_id insertion order, preserved for deterministic output
	byID  map[string]*Tank
}

// NewRegistry builds a Registry from tank rows, validating each one.
func NewRegistry(ts []Tank) *Registry {
	r := &Registry{byID: make(map[string]*Tank, len(ts))}
	for i := range ts {
		t := ts[i]
		t.Validate()
		if _, dup := r.byID[t.ID]; dup {
			chk.Panic("tanks: duplicate tank_id %q", t.ID)
		}
		r.order = append(r.order, t.ID)
		r.byID[t.ID] = &t
	}
	return r
}

// IDs returns tank IDs in registry (input) order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Get returns a copy of the tank with the given id, and whether it exists.
func (r *Registry) Get(id string) (Tank, bool) {
	t, ok := r.byID[id]
	if !ok {
		return Tank{}, false
	}
	return *t, true
}

// Snapshot returns an immutable copy of every tank, in registry order, for
// handing to the solver (spec §5: "the solver receives an immutable
// snapshot").
func (r *Registry) Snapshot() []Tank {
	out := make([]Tank, len(r.order))
	for i, id := range r.order {
		out[i] = *r.byID[id]
	}
	return out
}

// ApplyDeltas applies a chosen plan (net mass change per tank_id) to the
// registry. It validates every resulting current_t against [min_t,max_t]
// and mode restrictions *before* mutating anything, so the apply is
// all-or-nothing (spec §5: "tank-delta application is atomic").
func (r *Registry) ApplyDeltas(deltas map[string]float64) error {

	next := make(map[string]float64, len(deltas))
	for id, d := range deltas {
		t, ok := r.byID[id]
		if !ok {
			return chk.Err("tanks: apply: unknown tank_id %q", id)
		}
		newT := t.CurrentT + d
		if newT < t.MinT-1e-9 || newT > t.MaxT+1e-9 {
			return chk.Err("tanks: apply: tank %s would go to %v, outside [%v,%v]", id, newT, t.MinT, t.MaxT)
		}
		if d > 1e-9 && !t.Mode.AllowsFill() {
			return chk.Err("tanks: apply: tank %s mode %s forbids fill", id, t.Mode)
		}
		if d < -1e-9 && !t.Mode.AllowsDischarge() {
			return chk.Err("tanks: apply: tank %s mode %s forbids discharge", id, t.Mode)
		}
		next[id] = newT
	}

	// all deltas validated: commit
	for id, newT := range next {
		r.byID[id].CurrentT = newT
	}
	return nil
}
