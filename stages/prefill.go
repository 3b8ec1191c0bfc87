// Copyright 2026 The Ballastcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stages

import (
	"github.com/cpmech/ballastcore/hydro"
	"github.com/cpmech/ballastcore/tanks"
)

// ForwardGroup names the four forward tanks the pre-ballast policy primes
// and then restricts to discharge-only across the two critical stages
// (spec §4.4's "non-obvious design decision").
var ForwardGroup = []string{"FWB1.P", "FWB1.S", "FWB2.P", "FWB2.S"}

// CriticalStagesRequiringDischargeOnly is the pair of stages on which the
// forward group is constrained to DischargeOnly, regardless of its
// registry-declared mode.
var CriticalStagesRequiringDischargeOnly = []Name{Stage5PreBallast, Stage6ACritical}

// RequiredPreFillT inverts the method-B draft-prediction equations of
// spec §4.2: given the aft draft the forward group alone must be able to
// reach by discharging (the captain-gate target, e.g. AFT_MIN), and the
// weighted longitudinal position of the forward group, it returns the
// total tonnage the group must hold before Stage 1 so that fully
// discharging it exactly closes the gap between currentAftM and
// targetAftM.
//
// A negative result means the group would need to absorb mass (fill, not
// discharge) to reach targetAftM from currentAftM — the policy only
// applies where the result is positive.
func RequiredPreFillT(currentAftM, targetAftM, xFwbM float64, hp hydro.Point) float64 {
	coefAft := 1/(100*hp.TpcTCm) + (xFwbM-hp.LcfM)/(200*hp.MtcTmCm)
	if coefAft == 0 {
		return 0
	}
	// targetAftM = currentAftM + (-preFillT)*coefAft  =>  solve for preFillT
	return (currentAftM - targetAftM) / coefAft
}

// ApplyPreFill fills the forward group equally to the given total
// tonnage, once, before Stage 1 begins. It is the only point in a run
// where the forward group's current_t is set directly rather than moved
// by a solver-chosen delta, since no stage's solve has run yet.
func ApplyPreFill(reg *tanks.Registry, totalT float64) error {
	if totalT <= 0 {
		return nil
	}
	per := totalT / float64(len(ForwardGroup))
	deltas := make(map[string]float64, len(ForwardGroup))
	for _, id := range ForwardGroup {
		deltas[id] = per
	}
	return reg.ApplyDeltas(deltas)
}

// forwardGroupXM returns the mean x_from_mid_m of the forward group's
// tanks present in the registry — the single pooled longitudinal position
// RequiredPreFillT treats the group as occupying, since ApplyPreFill
// splits the pre-fill evenly across the group.
func forwardGroupXM(reg *tanks.Registry) float64 {
	var sum float64
	var n int
	for _, id := range ForwardGroup {
		if t, ok := reg.Get(id); ok {
			sum += t.XFromMidM
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// restrictToDischargeOnly returns a copy of snapshot with every forward-
// group tank's mode forced to DischargeOnly, for use only when solving
// the two critical stages (spec §4.4). The registry's own declared mode
// is left untouched; this is a per-call snapshot override, not a
// persistent state change.
func restrictToDischargeOnly(snapshot []tanks.Tank) []tanks.Tank {
	forward := make(map[string]bool, len(ForwardGroup))
	for _, id := range ForwardGroup {
		forward[id] = true
	}
	out := make([]tanks.Tank, len(snapshot))
	copy(out, snapshot)
	for i, t := range out {
		if forward[t.ID] {
			out[i].Mode = tanks.DischargeOnly
		}
	}
	return out
}
