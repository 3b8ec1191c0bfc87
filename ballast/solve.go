// Copyright 2026 The Ballastcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ballast

import (
	"context"
	"time"

	"github.com/cpmech/ballastcore/gates"
	"github.com/cpmech/ballastcore/hydro"
	"github.com/cpmech/ballastcore/tanks"
	"github.com/cpmech/gosl/io"
)

// State is the per-stage solver state machine of spec §4.3:
// LOADED -> HYDRO_INTERP -> LP_SOLVED -> (converged? DONE : HYDRO_INTERP),
// terminal DONE or INFEASIBLE.
type State int

const (
	Loaded State = iota
	HydroInterp
	LpSolved
	Done
	Infeasible
)

func (s State) String() string {
	switch s {
	case Loaded:
		return "LOADED"
	case HydroInterp:
		return "HYDRO_INTERP"
	case LpSolved:
		return "LP_SOLVED"
	case Done:
		return "DONE"
	case Infeasible:
		return "INFEASIBLE"
	default:
		return "UNKNOWN"
	}
}

// Params are the tunables of spec §4.3.
type Params struct {
	Objective        Objective
	IterateHydroMax  int           // default 2
	HydroTolM        float64       // default 0.005 m
	SolveTimeout     time.Duration // default 10s, per stage solve
}

// DefaultParams returns the spec's defaults.
func DefaultParams() Params {
	return Params{Objective: TimePreferring, IterateHydroMax: 2, HydroTolM: 0.005, SolveTimeout: 10 * time.Second}
}

// Result is the outcome of one SolveResult-shaped call (spec §4.3).
type Result struct {
	State         State
	Prediction    Prediction
	PerTankDeltaT map[string]float64
	HydroPoint    hydro.Point
	Iterations    int
	Gates         gates.Result
	Infeasibility *InfeasibilityReport // non-nil iff State==Infeasible
}

// Solve runs the LP ballast solver for one stage: builds decision
// variables and gate constraints from the tank snapshot and gate
// configuration, solves, predicts drafts, and re-interpolates the
// hydrostatic table until the mean draft converges or IterateHydroMax is
// exhausted (spec §4.3). It honours a wall-clock budget (default 10s,
// spec §5); exceeding it is reported as infeasibility with reason
// SOLVER_TIMEOUT, with no partial plan applied.
func Solve(ctx context.Context, table *hydro.Table, snapshot []tanks.Tank, fwd0, aft0 float64,
	cfg gates.Config, tide gates.TideContext, isCritical bool, params Params) Result {

	if params.SolveTimeout <= 0 {
		params = DefaultParams()
	}
	ctx, cancel := context.WithTimeout(ctx, params.SolveTimeout)
	defer cancel()

	vars := buildVariables(snapshot)
	objC := buildObjective(vars, snapshot, params.Objective)

	tmeanBase := (fwd0 + aft0) / 2 // mean draft before any ballast change
	tmean0 := tmeanBase            // mean draft hp is interpolated at
	hp := table.Interp(tmean0)

	var lastRows []taggedRow
	var lastLP lpResult

	for iter := 0; iter <= params.IterateHydroMax; iter++ {
		select {
		case <-ctx.Done():
			return Result{State: Infeasible, Infeasibility: &InfeasibilityReport{Reason: "SOLVER_TIMEOUT"}}
		default:
		}

		in := Input{
			Fwd0M: fwd0, Aft0M: aft0, InitialTrimM: aft0 - fwd0,
			TpcTCm: hp.TpcTCm, MtcTmCm: hp.MtcTmCm, LcfM: hp.LcfM,
			VesselDepthM: cfg.VesselDepthM, FwdMaxM: cfg.FwdMaxM, AftMinM: cfg.AftMinM,
			FreeboardMinM: cfg.FreeboardMinM, GuardBandM: cfg.GuardBandM, TrimAbsLimitM: cfg.TrimAbsLimitM,
			IsCritical:    isCritical,
			ForecastTideM: tide.ForecastTideM, TideKnown: tide.ForecastTideKnown,
			AvailDepthM: tide.DepthRefM + tide.DatumOffsetM + tide.ForecastTideM,
			SquatM:      tide.SquatM, SafetyAllowM: tide.SafetyAllowM, UkcMinM: tide.UkcMinM, UkcKnown: tide.UkcContextKnown,
		}
		lastRows = buildConstraints(vars, in)
		lastLP = solveLP(len(vars), objC, toRows(lastRows))

		if lastLP.Status == lpInfeasible {
			report := diagnose(vars, objC, in, lastRows)
			return Result{State: Infeasible, Iterations: iter + 1, Infeasibility: report}
		}
		if lastLP.Status == lpUnbounded {
			return Result{State: Infeasible, Iterations: iter + 1,
				Infeasibility: &InfeasibilityReport{Reason: "unbounded LP — check objective weights and tank bounds"}}
		}

		deltas := columnDeltas(vars, lastLP.X)
		pred := PredictDrafts(fwd0, aft0, deltas, hp)
		newTmean := tmeanBase + pred.DeltaTmean

		if absF(newTmean-tmean0) <= params.HydroTolM || iter == params.IterateHydroMax {
			perTank := perTankDeltas(vars, lastLP.X)
			io.Pf("> ballast: converged after %d hydrostatic iteration(s), ΔW=%.3f t\n", iter+1, pred.DeltaWT)

			var trimM *float64
			if cfg.TrimAbsLimitM != nil {
				t := pred.NewAftM - pred.NewFwdM
				trimM = &t
			}
			finalHp := table.Interp(newTmean)
			gr := gates.Evaluate(gates.Drafts{FwdM: pred.NewFwdM, AftM: pred.NewAftM}, cfg, tide, isCritical, trimM, !finalHp.Clamped && table.InRange(finalHp.DispT))

			return Result{
				State: Done, Prediction: pred, PerTankDeltaT: perTank,
				HydroPoint: hp, Iterations: iter + 1, Gates: gr,
			}
		}

		tmean0 = newTmean
		hp = table.Interp(tmean0)
	}

	// unreachable: the loop above always returns by the last iteration
	return Result{State: Infeasible, Infeasibility: &InfeasibilityReport{Reason: "hydrostatic iteration did not converge"}}
}

func toRows(tagged []taggedRow) []row {
	out := make([]row, len(tagged))
	for i, t := range tagged {
		out[i] = t.row
	}
	return out
}

func columnDeltas(vars []variable, x []float64) []tankDelta {
	byTank := make(map[string]float64)
	for j, v := range vars {
		byTank[v.TankID] += v.sign() * x[j]
	}
	out := make([]tankDelta, 0, len(byTank))
	seen := make(map[string]bool)
	for _, v := range vars {
		if seen[v.TankID] {
			continue
		}
		seen[v.TankID] = true
		out = append(out, tankDelta{XFromMidM: v.XFromMM, DeltaT: byTank[v.TankID]})
	}
	return out
}

func perTankDeltas(vars []variable, x []float64) map[string]float64 {
	out := make(map[string]float64)
	for j, v := range vars {
		out[v.TankID] += v.sign() * x[j]
	}
	return out
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
