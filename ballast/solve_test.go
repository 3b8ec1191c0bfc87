// Copyright 2026 The Ballastcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ballast

import (
	"context"
	"testing"

	"github.com/cpmech/ballastcore/gates"
	"github.com/cpmech/ballastcore/hydro"
	"github.com/cpmech/ballastcore/tanks"
	"github.com/cpmech/gosl/chk"
)

// flatTable returns a table whose TPC/MTC/LCF are constant over
// [loTmean,hiTmean], so hydrostatic re-interpolation across solver
// iterations never perturbs the LP — keeping these tests' arithmetic
// exact rather than approximate.
func flatTable(tst *testing.T, loTmean, hiTmean, tpc, mtc, lcf float64) *hydro.Table {
	return hydro.NewTable([]hydro.Row{
		{TmeanM: loTmean, DispT: 1000, LcfM: lcf, TpcTCm: tpc, MtcTmCm: mtc},
		{TmeanM: hiTmean, DispT: 9000, LcfM: lcf, TpcTCm: tpc, MtcTmCm: mtc},
	})
}

func Test_solve_zero_deltas01(tst *testing.T) {
	chk.PrintTitle("solve_zero_deltas01: no usable tanks, gate already satisfied")

	table := flatTable(tst, 0, 10, 10, 100, 0)
	// a single blocked tank: no LP columns at all
	snapshot := []tanks.Tank{
		{ID: "FWB1.P", CapacityT: 100, XFromMidM: 50, CurrentT: 50, MinT: 50, MaxT: 50,
			Mode: tanks.Blocked, UseFlag: true, PumpRateTph: 100, PriorityWeight: 1},
	}
	cfg := gates.Config{FwdMaxM: 5, AftMinM: 2.0, FreeboardMinM: 0.2, VesselDepthM: 6, GuardBandM: 0.02}

	res := Solve(context.Background(), table, snapshot, 2.5, 2.36, cfg, gates.TideContext{}, false, DefaultParams())

	if res.State != Done {
		tst.Fatalf("expected Done, got %v (infeasibility=%v)", res.State, res.Infeasibility)
	}
	if res.Prediction.DeltaWT != 0 {
		tst.Fatalf("expected zero weight delta, got %v", res.Prediction.DeltaWT)
	}
	if res.Prediction.NewFwdM != 2.5 || res.Prediction.NewAftM != 2.36 {
		tst.Fatalf("expected unchanged drafts, got fwd=%v aft=%v", res.Prediction.NewFwdM, res.Prediction.NewAftM)
	}
	if res.Gates.CaptainGate != gates.OK {
		tst.Fatalf("expected captain gate OK, got %v", res.Gates.CaptainGate)
	}
}

func Test_solve_captain_gate01(tst *testing.T) {
	chk.PrintTitle("solve_captain_gate01: single aft tank closes the captain gate exactly")

	table := flatTable(tst, 0, 10, 10, 100, 0)
	snapshot := []tanks.Tank{
		{ID: "AFT1", CapacityT: 500, XFromMidM: 50, CurrentT: 0, MinT: 0, MaxT: 500,
			Mode: tanks.FillOnly, UseFlag: true, PumpRateTph: 100, PriorityWeight: 1},
	}
	cfg := gates.Config{FwdMaxM: 5, AftMinM: 2.5, FreeboardMinM: 0.2, VesselDepthM: 6, GuardBandM: 0.02}

	res := Solve(context.Background(), table, snapshot, 2.0, 2.0, cfg, gates.TideContext{}, false, DefaultParams())

	if res.State != Done {
		tst.Fatalf("expected Done, got %v (infeasibility=%v)", res.State, res.Infeasibility)
	}
	// the LP should pick exactly enough fill to sit on the captain bound:
	// D_aft = AFT_MIN - guard_band = 2.48
	if diff := res.Prediction.NewAftM - 2.48; diff > 1e-6 || diff < -1e-6 {
		tst.Fatalf("expected NewAftM≈2.48, got %v", res.Prediction.NewAftM)
	}
	if res.PerTankDeltaT["AFT1"] <= 0 {
		tst.Fatalf("expected a positive fill on AFT1, got %v", res.PerTankDeltaT["AFT1"])
	}
	if res.Gates.CaptainGate != gates.OK && res.Gates.CaptainGate != gates.Limit {
		tst.Fatalf("expected captain gate OK or LIMIT at the bound, got %v", res.Gates.CaptainGate)
	}
}

func Test_solve_cheapest_tank_preferred01(tst *testing.T) {
	chk.PrintTitle("solve_cheapest_tank_preferred01: identical leverage, solver fills the lower-cost tank")

	table := flatTable(tst, 0, 10, 10, 100, 0)
	snapshot := []tanks.Tank{
		// same longitudinal position, so identical per-ton leverage on D_aft;
		// TankB is the cheaper column (lower priority_weight / pump_rate)
		{ID: "TankA", CapacityT: 100, XFromMidM: 50, CurrentT: 0, MinT: 0, MaxT: 50,
			Mode: tanks.FillOnly, UseFlag: true, PumpRateTph: 10, PriorityWeight: 2},
		{ID: "TankB", CapacityT: 500, XFromMidM: 50, CurrentT: 0, MinT: 0, MaxT: 500,
			Mode: tanks.FillOnly, UseFlag: true, PumpRateTph: 10, PriorityWeight: 1},
	}
	cfg := gates.Config{FwdMaxM: 5, AftMinM: 2.5, FreeboardMinM: 0.2, VesselDepthM: 6, GuardBandM: 0.02}

	res := Solve(context.Background(), table, snapshot, 2.0, 2.0, cfg, gates.TideContext{}, false, DefaultParams())

	if res.State != Done {
		tst.Fatalf("expected Done, got %v (infeasibility=%v)", res.State, res.Infeasibility)
	}
	if res.PerTankDeltaT["TankA"] > 1e-6 {
		tst.Fatalf("expected TankA untouched (more expensive per ton), got %v", res.PerTankDeltaT["TankA"])
	}
	if res.PerTankDeltaT["TankB"] <= 100 {
		tst.Fatalf("expected TankB to carry the full fill, got %v", res.PerTankDeltaT["TankB"])
	}
}

func Test_solve_infeasible_mutual_gates01(tst *testing.T) {
	chk.PrintTitle("solve_infeasible_mutual_gates01: captain and charterer both unreachable with no tanks")

	table := flatTable(tst, 0, 10, 10, 100, 0)
	var snapshot []tanks.Tank // no tanks at all: zero LP columns

	cfg := gates.Config{FwdMaxM: 2.70, AftMinM: 2.70, FreeboardMinM: 0.2, VesselDepthM: 6, GuardBandM: 0.02}

	res := Solve(context.Background(), table, snapshot, 2.80, 2.50, cfg, gates.TideContext{}, true, DefaultParams())

	if res.State != Infeasible {
		tst.Fatalf("expected Infeasible, got %v", res.State)
	}
	if res.Infeasibility == nil {
		tst.Fatal("expected a non-nil infeasibility report")
	}
	if len(res.Infeasibility.Culprits) != 0 {
		tst.Fatalf("expected no single gate to be individually fixable, got culprits=%v", res.Infeasibility.Culprits)
	}
}

func Test_solve_timeout01(tst *testing.T) {
	chk.PrintTitle("solve_timeout01: an already-expired context is reported as SOLVER_TIMEOUT")

	table := flatTable(tst, 0, 10, 10, 100, 0)
	cfg := gates.Config{FwdMaxM: 5, AftMinM: 2.0, FreeboardMinM: 0.2, VesselDepthM: 6, GuardBandM: 0.02}

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // expire immediately

	res := Solve(ctx, table, nil, 2.5, 2.36, cfg, gates.TideContext{}, false, DefaultParams())

	if res.State != Infeasible || res.Infeasibility == nil || res.Infeasibility.Reason != "SOLVER_TIMEOUT" {
		tst.Fatalf("expected SOLVER_TIMEOUT infeasibility, got state=%v report=%v", res.State, res.Infeasibility)
	}
}
