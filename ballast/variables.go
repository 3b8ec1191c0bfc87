// Copyright 2026 The Ballastcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ballast

import "github.com/cpmech/ballastcore/tanks"

// variable is one decision variable column of the LP: either the fill leg
// p_i or the discharge leg n_i of a tank (spec §4.3). A tank whose mode
// forbids a leg simply does not get a column for it, rather than getting a
// column pinned to zero — fewer variables, same effect.
type variable struct {
	TankID  string
	IsFill  bool // true=fill leg p_i, false=discharge leg n_i
	XFromMM float64
	UpperB  float64 // p_i <= UpperB, or n_i <= UpperB
}

// buildVariables returns one or two LP columns per usable tank: a fill leg
// if the mode/capacity allow a nonzero fill bound, a discharge leg if they
// allow a nonzero discharge bound.
func buildVariables(snapshot []tanks.Tank) []variable {
	var vars []variable
	for _, t := range snapshot {
		if ub := t.FillUpperBound(); ub > 1e-12 {
			vars = append(vars, variable{TankID: t.ID, IsFill: true, XFromMM: t.XFromMidM, UpperB: ub})
		}
		if ub := t.DischargeUpperBound(); ub > 1e-12 {
			vars = append(vars, variable{TankID: t.ID, IsFill: false, XFromMM: t.XFromMidM, UpperB: ub})
		}
	}
	return vars
}

// sign returns +1 for a fill leg and -1 for a discharge leg: the
// coefficient a column contributes to Δw_i = p_i - n_i.
func (v variable) sign() float64 {
	if v.IsFill {
		return 1
	}
	return -1
}
