// Copyright 2026 The Ballastcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ballast

import "github.com/cpmech/gosl/chk"

// gateKind names which constraint class a row belongs to, so the
// infeasibility diagnosis (infeasibility.go) can relax one class at a time
// and report which one was responsible (spec §4.3).
type gateKind int

const (
	gateCaptain gateKind = iota
	gateCharterer
	gateFreeboard
	gateUKC
	gateTrim
	gateTankBound
)

func (k gateKind) String() string {
	switch k {
	case gateCaptain:
		return "captain"
	case gateCharterer:
		return "charterer"
	case gateFreeboard:
		return "freeboard"
	case gateUKC:
		return "ukc"
	case gateTrim:
		return "trim"
	case gateTankBound:
		return "tank_bounds"
	default:
		return "unknown"
	}
}

// taggedRow is a constraint row plus which gate class produced it, so a
// relaxed re-solve can selectively loosen the RHS of one class's rows.
type taggedRow struct {
	row
	Kind gateKind
}

// Input bundles everything buildConstraints needs to turn the gates of
// spec §4.3 into linear rows over the decision-variable columns built by
// buildVariables.
type Input struct {
	Fwd0M, Aft0M   float64 // initial drafts for this stage
	InitialTrimM   float64 // aft0 - fwd0, positive stern-down
	TpcTCm         float64
	MtcTmCm        float64
	LcfM           float64
	VesselDepthM   float64
	FwdMaxM        float64
	AftMinM        float64
	FreeboardMinM  float64
	GuardBandM     float64
	TrimAbsLimitM  *float64
	IsCritical     bool
	ForecastTideM  float64
	TideKnown      bool
	AvailDepthM    float64 // depth_ref + datum_offset + forecast_tide
	SquatM         float64
	SafetyAllowM   float64
	UkcMinM        float64
	UkcKnown       bool
}

// coefFwd/coefAft return the contribution of one decision-variable column
// to D_fwd / D_aft (spec §4.2), given the column's tank position and sign.
func coefFwd(xFromMidM, lcfM, sign, tpc, mtc float64) float64 {
	return sign * (1/(100*tpc) - (xFromMidM-lcfM)/(200*mtc))
}

func coefAft(xFromMidM, lcfM, sign, tpc, mtc float64) float64 {
	return sign * (1/(100*tpc) + (xFromMidM-lcfM)/(200*mtc))
}

func coefTrim(xFromMidM, lcfM, sign, mtc float64) float64 {
	return sign * (xFromMidM - lcfM) / (100 * mtc)
}

// buildConstraints assembles every LP row: per-tank upper bounds plus the
// gate rows of spec §4.3, using the guard-banded (relaxed) bound in every
// row, consistent with the spec's explicit "AFT_MIN - guard_band" /
// "FWD_MAX + guard_band" wording — a solution inside the guard band is a
// feasible LP solution that the gate evaluator later marks LIMIT rather
// than OK, never an infeasible one.
func buildConstraints(vars []variable, in Input) []taggedRow {
	if in.TpcTCm <= 0 || in.MtcTmCm <= 0 {
		chk.Panic("ballast: TPC and MTC must be positive (TPC=%v, MTC=%v)", in.TpcTCm, in.MtcTmCm)
	}

	var rows []taggedRow

	// per-tank upper bounds: v_j <= UpperB
	for j, v := range vars {
		coeffs := make([]float64, len(vars))
		coeffs[j] = 1
		rows = append(rows, taggedRow{row{Coeffs: coeffs, Op: le, RHS: v.UpperB}, gateTankBound})
	}

	cFwd := make([]float64, len(vars))
	cAft := make([]float64, len(vars))
	cTrim := make([]float64, len(vars))
	for j, v := range vars {
		cFwd[j] = coefFwd(v.XFromMM, in.LcfM, v.sign(), in.TpcTCm, in.MtcTmCm)
		cAft[j] = coefAft(v.XFromMM, in.LcfM, v.sign(), in.TpcTCm, in.MtcTmCm)
		cTrim[j] = coefTrim(v.XFromMM, in.LcfM, v.sign(), in.MtcTmCm)
	}

	// captain gate: D_aft >= AFT_MIN - guard_band, always active
	rows = append(rows, taggedRow{
		row{Coeffs: cAft, Op: ge, RHS: (in.AftMinM - in.GuardBandM) - in.Aft0M},
		gateCaptain,
	})

	// charterer gate: D_fwd_CD <= FWD_MAX + guard_band, critical stages only
	if in.IsCritical {
		fwd0CD := in.Fwd0M
		if in.TideKnown {
			fwd0CD -= in.ForecastTideM
		}
		rows = append(rows, taggedRow{
			row{Coeffs: cFwd, Op: le, RHS: (in.FwdMaxM + in.GuardBandM) - fwd0CD},
			gateCharterer,
		})
	}

	// freeboard gate, both ends, always active
	rows = append(rows, taggedRow{
		row{Coeffs: cFwd, Op: le, RHS: in.VesselDepthM - (in.FreeboardMinM - in.GuardBandM) - in.Fwd0M},
		gateFreeboard,
	})
	rows = append(rows, taggedRow{
		row{Coeffs: cAft, Op: le, RHS: in.VesselDepthM - (in.FreeboardMinM - in.GuardBandM) - in.Aft0M},
		gateFreeboard,
	})

	// UKC gate, both ends, only when tide context is supplied
	if in.UkcKnown {
		rows = append(rows, taggedRow{
			row{Coeffs: cFwd, Op: le, RHS: in.AvailDepthM - in.SquatM - in.SafetyAllowM - (in.UkcMinM - in.GuardBandM) - in.Fwd0M},
			gateUKC,
		})
		rows = append(rows, taggedRow{
			row{Coeffs: cAft, Op: le, RHS: in.AvailDepthM - in.SquatM - in.SafetyAllowM - (in.UkcMinM - in.GuardBandM) - in.Aft0M},
			gateUKC,
		})
	}

	// optional trim limit: |ΔTrim + initial_trim| <= TRIM_ABS_LIMIT
	if in.TrimAbsLimitM != nil {
		limit := *in.TrimAbsLimitM
		rows = append(rows, taggedRow{
			row{Coeffs: cTrim, Op: le, RHS: limit + in.GuardBandM - in.InitialTrimM},
			gateTrim,
		})
		negTrim := make([]float64, len(vars))
		for j, c := range cTrim {
			negTrim[j] = -c
		}
		rows = append(rows, taggedRow{
			row{Coeffs: negTrim, Op: le, RHS: limit + in.GuardBandM + in.InitialTrimM},
			gateTrim,
		})
	}

	return rows
}
