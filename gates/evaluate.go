// Copyright 2026 The Ballastcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gates

import "math"

// Config holds the gate bounds recognised from the site profile (spec §6,
// input 4) plus the vessel's depth, an explicit, enumerated record — not a
// free-form map.
type Config struct {
	FwdMaxM       float64  // charterer gate bound
	AftMinM       float64  // captain gate bound
	FreeboardMinM float64  // FB_MIN
	VesselDepthM  float64  // D_vessel
	GuardBandM    float64  // default 0.02 m (2 cm)
	TrimAbsLimitM *float64 // optional; nil => trim gate not evaluated
}

// TideContext is the optional, stage-scoped tide/UKC input (spec §3). The
// two "known" flags let the evaluator distinguish "this gate does not
// apply here" (N/A, tide context altogether absent) from "this gate
// applies but a required value has not arrived yet" (VERIFY).
type TideContext struct {
	ForecastTideM     float64
	ForecastTideKnown bool

	DepthRefM       float64
	DatumOffsetM    float64
	UkcMinM         float64
	SquatM          float64
	SafetyAllowM    float64
	UkcContextKnown bool
}

// Drafts is the predicted draft pair for a stage.
type Drafts struct {
	FwdM float64
	AftM float64
}

// Derived holds every quantity computed from predicted drafts (spec §4.5).
type Derived struct {
	FreeboardFwdM float64
	FreeboardAftM float64
	FreeboardMinM float64

	DfwdChartDatumM float64 // D_fwd measured from Chart Datum

	UkcFwdM    float64
	UkcAftM    float64
	UkcMinM    float64
	TideReqM   float64
	TideMargin float64
}

// Result is the full gate-evaluation outcome for one stage.
type Result struct {
	Derived Derived

	CaptainGate   Outcome // D_aft >= AFT_MIN, always active
	ChartererGate Outcome // D_fwd_CD <= FWD_MAX, critical stages only
	FreeboardGate Outcome // always active
	UkcGate       Outcome // active iff tide context supplied
	TrimGate      Outcome // active iff TrimAbsLimitM configured
	TideVerdict   Outcome // OK/FAIL mirror of TideMargin >= 0, Verify/NA as UkcGate

	HardStop       bool
	HardStopReason string
}

// Evaluate computes every derived quantity and gate outcome for one stage's
// predicted drafts. trimM is ΔTrim + initial_trim (signed, stern-down
// positive); pass nil to skip the optional trim gate regardless of cfg.
func Evaluate(d Drafts, cfg Config, tide TideContext, isCritical bool, trimM *float64, hydroInRange bool) Result {

	var r Result

	r.Derived.FreeboardFwdM = cfg.VesselDepthM - d.FwdM
	r.Derived.FreeboardAftM = cfg.VesselDepthM - d.AftM
	r.Derived.FreeboardMinM = math.Min(r.Derived.FreeboardFwdM, r.Derived.FreeboardAftM)

	if tide.ForecastTideKnown {
		r.Derived.DfwdChartDatumM = d.FwdM - tide.ForecastTideM
	} else {
		r.Derived.DfwdChartDatumM = d.FwdM
	}

	r.CaptainGate = evalMin(d.AftM, cfg.AftMinM, cfg.GuardBandM)

	if !isCritical {
		r.ChartererGate = NA
	} else if !tide.ForecastTideKnown {
		r.ChartererGate = Verify
	} else {
		r.ChartererGate = evalMax(r.Derived.DfwdChartDatumM, cfg.FwdMaxM, cfg.GuardBandM)
	}

	r.FreeboardGate = evalMin(r.Derived.FreeboardMinM, cfg.FreeboardMinM, cfg.GuardBandM)

	if !tide.UkcContextKnown {
		r.UkcGate = NA
		r.TideVerdict = NA
	} else {
		available := tide.DepthRefM + tide.DatumOffsetM + tide.ForecastTideM
		r.Derived.UkcFwdM = available - (d.FwdM + tide.SquatM + tide.SafetyAllowM)
		r.Derived.UkcAftM = available - (d.AftM + tide.SquatM + tide.SafetyAllowM)
		r.Derived.UkcMinM = math.Min(r.Derived.UkcFwdM, r.Derived.UkcAftM)

		dRef := math.Max(d.FwdM, d.AftM) // worse-case (deepest) draft
		r.Derived.TideReqM = math.Max(0, dRef+tide.SquatM+tide.SafetyAllowM+tide.UkcMinM-tide.DepthRefM-tide.DatumOffsetM)
		r.Derived.TideMargin = tide.ForecastTideM - r.Derived.TideReqM

		if !tide.ForecastTideKnown {
			r.UkcGate = Verify
			r.TideVerdict = Verify
		} else {
			r.UkcGate = evalMin(r.Derived.UkcMinM, tide.UkcMinM, cfg.GuardBandM)
			if r.Derived.TideMargin >= 0 {
				r.TideVerdict = OK
			} else {
				r.TideVerdict = Fail
			}
		}
	}

	if cfg.TrimAbsLimitM != nil && trimM != nil {
		r.TrimGate = evalMax(math.Abs(*trimM), *cfg.TrimAbsLimitM, cfg.GuardBandM)
	} else {
		r.TrimGate = NA
	}

	// hard stops (spec §4.5, §7)
	switch {
	case !hydroInRange:
		r.HardStop, r.HardStopReason = true, "HydroOutOfRange"
	case math.Max(d.FwdM, d.AftM) > cfg.VesselDepthM+1e-6:
		r.HardStop, r.HardStopReason = true, "PhysicsError: predicted draft exceeds D_vessel"
	case r.CaptainGate == Fail || r.ChartererGate == Fail || r.FreeboardGate == Fail || r.UkcGate == Fail || r.TrimGate == Fail:
		r.HardStop, r.HardStopReason = true, "GateFailure"
	}

	return r
}
