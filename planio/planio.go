// Copyright 2026 The Ballastcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package planio writes the three run outputs of spec §6: the ballast
// plan, the stage summary, and the QA table. All three are CSV, the one
// boundary-I/O concern this repo carries on the standard library (no
// third-party CSV package appears anywhere in the retrieved pack).
package planio

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/cpmech/ballastcore/gates"
	"github.com/cpmech/ballastcore/stages"
)

// WriteBallastPlan writes one row per (stage, tank) with a non-zero
// delta: Stage, Tank, Action, Delta_t, PumpTime_h. pumpRateTph supplies
// the per-tank pump rate used to derive PumpTime_h.
func WriteBallastPlan(w io.Writer, results []stages.Result, pumpRateTph map[string]float64) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"Stage", "Tank", "Action", "Delta_t", "PumpTime_h"}); err != nil {
		return err
	}
	for _, res := range results {
		ids := make([]string, 0, len(res.PerTankDeltas))
		for id := range res.PerTankDeltas {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			d := res.PerTankDeltas[id]
			if d > -1e-9 && d < 1e-9 {
				continue
			}
			action := "Fill"
			if d < 0 {
				action = "Discharge"
			}
			rate := pumpRateTph[id]
			pumpTimeH := ""
			if rate > 0 {
				pumpTimeH = fmt.Sprintf("%.3f", absF(d)/rate)
			}
			row := []string{
				string(res.StageName), id, action,
				fmt.Sprintf("%.3f", d), pumpTimeH,
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	return cw.Error()
}

// WriteStageSummary writes one row per stage (spec §6).
func WriteStageSummary(w io.Writer, results []stages.Result) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{
		"Stage", "New_FWD_m", "New_AFT_m", "New_Trim_m", "ΔW_t",
		"Gate_FWD_Max", "Gate_AFT_Min", "Gate_Freeboard", "Gate_UKC",
		"Freeboard_Min_m", "UKC_Min_m", "Tide_Required_m", "Tide_Margin_m",
		"Tide_Verdict", "HardStop",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, res := range results {
		hardStop := ""
		if res.HardStopAny {
			hardStop = res.HardStopReason
		}
		row := []string{
			string(res.StageName),
			fmt.Sprintf("%.3f", res.NewFwdM), fmt.Sprintf("%.3f", res.NewAftM), fmt.Sprintf("%.3f", res.NewTrimM),
			fmt.Sprintf("%.3f", res.DeltaWT),
			res.Gates.ChartererGate.String(), res.Gates.CaptainGate.String(),
			res.Gates.FreeboardGate.String(), res.Gates.UkcGate.String(),
			fmt.Sprintf("%.3f", res.Gates.Derived.FreeboardMinM), fmt.Sprintf("%.3f", res.Gates.Derived.UkcMinM),
			fmt.Sprintf("%.3f", res.Gates.Derived.TideReqM), fmt.Sprintf("%.3f", res.Gates.Derived.TideMargin),
			res.Gates.TideVerdict.String(), hardStop,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return cw.Error()
}

// QARow is one row of the QA table (spec §6): raw vs post-solve drafts,
// every margin, and the two named split-gate statuses for the 2.70 m
// captain/charterer bound.
type QARow struct {
	StageName        stages.Name
	DraftSource      string // "raw" or "solver"
	FwdM, AftM       float64
	GateA2p70        gates.Outcome // AFT_MIN_2p70
	GateB2p70        gates.Outcome // FWD_MAX_2p70, critical only
}

// WriteQATable writes the QA table: spec §6 names the split-gate columns
// GateA_AFT_MIN_2p70_* / GateB_FWD_MAX_2p70_critical_only_*, preserved
// verbatim as headers since operators grep for them by name.
func WriteQATable(w io.Writer, rows []QARow) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{
		"Stage", "Draft_Source", "FWD_m", "AFT_m",
		"GateA_AFT_MIN_2p70_status", "GateB_FWD_MAX_2p70_critical_only_status",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		row := []string{
			string(r.StageName), r.DraftSource,
			fmt.Sprintf("%.3f", r.FwdM), fmt.Sprintf("%.3f", r.AftM),
			r.GateA2p70.String(), r.GateB2p70.String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return cw.Error()
}

// BuildQARows produces the two QA-table rows (raw, solver) per stage from
// a completed run's results, for WriteQATable.
func BuildQARows(results []stages.Result) []QARow {
	out := make([]QARow, 0, 2*len(results))
	for _, res := range results {
		out = append(out,
			QARow{
				StageName: res.StageName, DraftSource: "raw",
				FwdM: res.RawFwdM, AftM: res.RawAftM,
				GateA2p70: res.GatesRaw.CaptainGate, GateB2p70: res.GatesRaw.ChartererGate,
			},
			QARow{
				StageName: res.StageName, DraftSource: "solver",
				FwdM: res.NewFwdM, AftM: res.NewAftM,
				GateA2p70: res.Gates.CaptainGate, GateB2p70: res.Gates.ChartererGate,
			},
		)
	}
	return out
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
