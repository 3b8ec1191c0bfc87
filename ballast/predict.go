// Copyright 2026 The Ballastcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ballast implements the LP ballast solver (C4): per-tank
// fill/discharge deltas chosen to satisfy every gate simultaneously, with
// hydrostatic re-interpolation across iterations (spec §4.2, §4.3).
package ballast

import "github.com/cpmech/ballastcore/hydro"

// Prediction is the method-B (LCF-based) draft-change prediction of
// spec §4.2.
type Prediction struct {
	DeltaWT    float64 // ΔW, total weight change, t
	DeltaMTm   float64 // ΔM, total moment change about LCF, t·m
	DeltaTmean float64 // ΔTmean, m
	DeltaTrim  float64 // ΔTrim, positive stern-down, m
	NewFwdM    float64
	NewAftM    float64
}

// tankDelta pairs a tank's longitudinal position with its chosen net delta,
// the only two facts the draft-prediction equations need per tank.
type tankDelta struct {
	XFromMidM float64
	DeltaT    float64
}

// PredictDrafts applies the method-B small-change model: total weight and
// moment changes are reduced to a mean-draft change and a trim change via
// the hydrostatic point's TPC and MTC, then split fwd/aft by half the trim
// change (spec §4.2). Moments are taken about LCF, not midship — note the
// subtraction of hp.LcfM below.
func PredictDrafts(fwd0, aft0 float64, deltas []tankDelta, hp hydro.Point) Prediction {
	var dw, dm float64
	for _, d := range deltas {
		dw += d.DeltaT
		dm += d.DeltaT * (d.XFromMidM - hp.LcfM)
	}
	dTmean := dw / (100 * hp.TpcTCm)
	dTrim := dm / (100 * hp.MtcTmCm)
	return Prediction{
		DeltaWT:    dw,
		DeltaMTm:   dm,
		DeltaTmean: dTmean,
		DeltaTrim:  dTrim,
		NewFwdM:    fwd0 + dTmean - dTrim/2,
		NewAftM:    aft0 + dTmean + dTrim/2,
	}
}
