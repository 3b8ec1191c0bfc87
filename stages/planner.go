// Copyright 2026 The Ballastcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stages

import (
	"context"

	"github.com/cpmech/ballastcore/ballast"
	"github.com/cpmech/ballastcore/gates"
	"github.com/cpmech/ballastcore/hydro"
	"github.com/cpmech/ballastcore/tanks"
	"github.com/cpmech/gosl/io"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Input is one row of the stage table (spec §6, input 3): the
// load-transfer drafts and per-stage gate bounds, plus the optional
// tide/UKC context.
type Input struct {
	Name                         Name
	CurrentFwdM, CurrentAftM     float64
	FwdMaxM, AftMinM             float64
	FreeboardMinM, VesselDepthM  float64
	GuardBandM                   float64
	TrimAbsLimitM                *float64
	Tide                         gates.TideContext
}

// Result is the Stage Result of spec §3: the output of C4+C5 for one
// stage.
type Result struct {
	StageName      Name
	RawFwdM        float64 // pre-ballast draft, straight from the stage table
	RawAftM        float64
	GatesRaw       gates.Result // gates evaluated at the raw drafts, for the QA table
	NewFwdM        float64
	NewAftM        float64
	NewTrimM       float64
	NewTmeanM      float64
	DeltaWT        float64
	PerTankDeltas  map[string]float64
	Gates          gates.Result
	IsCritical     bool
	HardStopAny    bool
	HardStopReason string
	SolveState     ballast.State
	Infeasibility  *ballast.InfeasibilityReport
}

// Planner sequences the nine stages, owns the single mutable Registry,
// and invokes the LP solver and gate evaluator once per stage (spec
// §4.4). It is single-threaded: no stage begins until the prior stage's
// deltas are applied or its failure is recorded.
type Planner struct {
	RunID      uuid.UUID
	Table      *hydro.Table
	Registry   *tanks.Registry
	Classifier Classifier
	Objective  ballast.Objective
	Log        zerolog.Logger
}

// NewPlanner returns a Planner tagged with a fresh RunID. The RunID is not
// attached to the planner's log lines or to the CSV reports.
func NewPlanner(table *hydro.Table, reg *tanks.Registry, log zerolog.Logger) *Planner {
	return &Planner{RunID: uuid.New(), Table: table, Registry: reg, Classifier: NewClassifier(), Log: log}
}

// PrimeForwardGroup runs the forward-inventory pre-ballast policy before
// Stage 1: computes the tonnage the forward group must hold so that
// fully discharging it during the critical stages closes the gap to
// targetAftM, and applies it as a one-time fill (spec §4.4).
func (p *Planner) PrimeForwardGroup(currentAftM, targetAftM, xFwbM float64, hp hydro.Point) error {
	total := RequiredPreFillT(currentAftM, targetAftM, xFwbM, hp)
	if total <= 0 {
		return nil
	}
	io.Pf("> stages: priming forward group with %.2f t total ahead of Stage 1\n", total)
	return ApplyPreFill(p.Registry, total)
}

// RunStage executes one stage: classifies criticality, takes a registry
// snapshot (restricted to discharge-only on the forward group for the
// two critical stages), solves, and — on a converged plan — commits the
// deltas to the registry before returning. Per-stage failures (hard
// stops, infeasibility) are recorded in the Result and do NOT abort the
// run; Run's loop produces one result per input stage.
func (p *Planner) RunStage(ctx context.Context, in Input) Result {
	isCritical := p.Classifier.IsCritical(in.Name)

	snapshot := p.Registry.Snapshot()
	for _, cs := range CriticalStagesRequiringDischargeOnly {
		if in.Name == cs {
			snapshot = restrictToDischargeOnly(snapshot)
			break
		}
	}

	cfg := gates.Config{
		FwdMaxM: in.FwdMaxM, AftMinM: in.AftMinM, FreeboardMinM: in.FreeboardMinM,
		VesselDepthM: in.VesselDepthM, GuardBandM: in.GuardBandM, TrimAbsLimitM: in.TrimAbsLimitM,
	}

	// raw-draft gate evaluation, for the QA table's "raw" row (spec §6
	// output 3) — independent of whether the solve below converges.
	var rawTrimM *float64
	if cfg.TrimAbsLimitM != nil {
		t := in.CurrentAftM - in.CurrentFwdM
		rawTrimM = &t
	}
	hpRaw := p.Table.Interp((in.CurrentFwdM + in.CurrentAftM) / 2)
	gatesRaw := gates.Evaluate(gates.Drafts{FwdM: in.CurrentFwdM, AftM: in.CurrentAftM},
		cfg, in.Tide, isCritical, rawTrimM, !hpRaw.Clamped && p.Table.InRange(hpRaw.DispT))

	params := ballast.DefaultParams()
	params.Objective = p.Objective
	sr := ballast.Solve(ctx, p.Table, snapshot, in.CurrentFwdM, in.CurrentAftM, cfg, in.Tide, isCritical, params)

	res := Result{
		StageName: in.Name, IsCritical: isCritical, SolveState: sr.State,
		RawFwdM: in.CurrentFwdM, RawAftM: in.CurrentAftM, GatesRaw: gatesRaw,
	}

	if sr.State == ballast.Infeasible {
		res.HardStopAny = true
		res.HardStopReason = "Infeasibility"
		res.Infeasibility = sr.Infeasibility
		res.NewFwdM, res.NewAftM = in.CurrentFwdM, in.CurrentAftM
		p.Log.Warn().Str("stage", string(in.Name)).Str("reason", sr.Infeasibility.Reason).Msg("stage infeasible, tank state unchanged")
		io.PfRed("> stage %s: INFEASIBLE — %s\n", in.Name, sr.Infeasibility.Reason)
		return res
	}

	if sr.Gates.HardStop {
		res.HardStopAny = true
		res.HardStopReason = sr.Gates.HardStopReason
		io.PfRed("> stage %s: HARD STOP — %s\n", in.Name, sr.Gates.HardStopReason)
		p.Log.Error().Str("stage", string(in.Name)).Str("reason", sr.Gates.HardStopReason).Msg("hard stop")
		if sr.Gates.HardStopReason == "HydroOutOfRange" || sr.Gates.HardStopReason == "PhysicsError: predicted draft exceeds D_vessel" {
			// planner proceeds to next stage unchanged; no deltas applied
			res.NewFwdM, res.NewAftM = in.CurrentFwdM, in.CurrentAftM
			return res
		}
		// GateFailure: the plan is still applied (spec §7); fall through.
	}

	if err := p.Registry.ApplyDeltas(sr.PerTankDeltaT); err != nil {
		res.HardStopAny = true
		res.HardStopReason = "PhysicsError: " + err.Error()
		res.NewFwdM, res.NewAftM = in.CurrentFwdM, in.CurrentAftM
		return res
	}

	res.NewFwdM = sr.Prediction.NewFwdM
	res.NewAftM = sr.Prediction.NewAftM
	res.NewTrimM = sr.Prediction.NewAftM - sr.Prediction.NewFwdM
	res.NewTmeanM = (sr.Prediction.NewFwdM + sr.Prediction.NewAftM) / 2
	res.DeltaWT = sr.Prediction.DeltaWT
	res.PerTankDeltas = sr.PerTankDeltaT
	res.Gates = sr.Gates

	io.PfGreen("> stage %s: done, ΔFwd=%.3f ΔAft=%.3f\n", in.Name, sr.Prediction.NewFwdM-in.CurrentFwdM, sr.Prediction.NewAftM-in.CurrentAftM)
	return res
}

// Run executes inputs in the order given, threading tank state forward
// through the registry (spec §4.4). Before the first stage it primes the
// forward group against the first critical stage's captain-gate bound
// (spec §4.4's forward-inventory policy); if no critical stage is present
// in inputs, priming is skipped. It returns one result per input, each
// possibly marked failed; it does not check the inputs' names, count or
// order against FixedOrder().
func (p *Planner) Run(ctx context.Context, inputs []Input) []Result {
	if len(inputs) > 0 {
		if target, ok := firstCriticalTarget(inputs); ok {
			tmean0 := (inputs[0].CurrentFwdM + inputs[0].CurrentAftM) / 2
			hp := p.Table.Interp(tmean0)
			xFwbM := forwardGroupXM(p.Registry)
			if err := p.PrimeForwardGroup(inputs[0].CurrentAftM, target, xFwbM, hp); err != nil {
				p.Log.Error().Err(err).Msg("forward-group pre-fill failed, proceeding without it")
				io.PfRed("> stages: forward-group pre-fill failed: %v\n", err)
			}
		}
	}

	out := make([]Result, 0, len(inputs))
	for _, in := range inputs {
		out = append(out, p.RunStage(ctx, in))
	}
	return out
}

// firstCriticalTarget returns the captain-gate bound (AFT_MIN_m) of the
// first stage in inputs that requires the forward group to be
// discharge-only, and whether such a stage was found.
func firstCriticalTarget(inputs []Input) (float64, bool) {
	for _, in := range inputs {
		for _, cs := range CriticalStagesRequiringDischargeOnly {
			if in.Name == cs {
				return in.AftMinM, true
			}
		}
	}
	return 0, false
}
