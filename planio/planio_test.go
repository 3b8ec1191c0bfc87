// Copyright 2026 The Ballastcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package planio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cpmech/ballastcore/gates"
	"github.com/cpmech/ballastcore/stages"
	"github.com/cpmech/gosl/chk"
)

func Test_write_ballast_plan01(tst *testing.T) {
	chk.PrintTitle("write_ballast_plan01: only non-zero deltas are emitted")

	results := []stages.Result{
		{StageName: stages.Stage1, PerTankDeltas: map[string]float64{"AFT1": 56.81, "FWB1.S": -30.15, "ZERO": 0}},
	}
	var buf bytes.Buffer
	if err := WriteBallastPlan(&buf, results, map[string]float64{"AFT1": 100, "FWB1.S": 50}); err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "ZERO") {
		tst.Fatal("expected the zero-delta tank to be omitted")
	}
	if !strings.Contains(out, "Fill") || !strings.Contains(out, "Discharge") {
		tst.Fatalf("expected both Fill and Discharge actions, got:\n%s", out)
	}
}

func Test_write_stage_summary01(tst *testing.T) {
	chk.PrintTitle("write_stage_summary01: header and one row round-trip")

	results := []stages.Result{
		{StageName: stages.Stage1, NewFwdM: 3.20, NewAftM: 3.45, Gates: gates.Result{CaptainGate: gates.OK, ChartererGate: gates.NA}},
	}
	var buf bytes.Buffer
	if err := WriteStageSummary(&buf, results); err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		tst.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
}

func Test_write_qa_table01(tst *testing.T) {
	chk.PrintTitle("write_qa_table01: raw and solver rows both present")

	rows := []QARow{
		{StageName: stages.Stage1, DraftSource: "raw", FwdM: 3.20, AftM: 3.45, GateA2p70: gates.OK, GateB2p70: gates.NA},
		{StageName: stages.Stage1, DraftSource: "solver", FwdM: 3.20, AftM: 3.45, GateA2p70: gates.OK, GateB2p70: gates.NA},
	}
	var buf bytes.Buffer
	if err := WriteQATable(&buf, rows); err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if strings.Count(buf.String(), "\n") != 3 {
		tst.Fatalf("expected header + 2 rows = 3 lines, got:\n%s", buf.String())
	}
}

func Test_build_qa_rows01(tst *testing.T) {
	chk.PrintTitle("build_qa_rows01: one raw + one solver row per stage, drafts kept apart")

	results := []stages.Result{
		{
			StageName: stages.Stage1,
			RawFwdM:   3.20, RawAftM: 3.45,
			GatesRaw: gates.Result{CaptainGate: gates.OK, ChartererGate: gates.NA},
			NewFwdM:  3.20, NewAftM: 3.45,
			Gates:    gates.Result{CaptainGate: gates.OK, ChartererGate: gates.NA},
		},
		{
			StageName: stages.Stage6ACritical,
			RawFwdM:   1.66, RawAftM: 2.36,
			GatesRaw: gates.Result{CaptainGate: gates.Fail, ChartererGate: gates.OK},
			NewFwdM:  1.27, NewAftM: 2.70,
			Gates:    gates.Result{CaptainGate: gates.OK, ChartererGate: gates.OK},
		},
	}
	rows := BuildQARows(results)
	if len(rows) != 4 {
		tst.Fatalf("expected 2 stages * 2 rows = 4, got %d", len(rows))
	}
	if rows[0].DraftSource != "raw" || rows[1].DraftSource != "solver" {
		tst.Fatalf("expected raw then solver per stage, got %q then %q", rows[0].DraftSource, rows[1].DraftSource)
	}
	if rows[2].AftM != 2.36 || rows[2].GateA2p70 != gates.Fail {
		tst.Fatalf("expected the raw row to carry the pre-solve draft and gate, got %+v", rows[2])
	}
	if rows[3].AftM != 2.70 || rows[3].GateA2p70 != gates.OK {
		tst.Fatalf("expected the solver row to carry the post-solve draft and gate, got %+v", rows[3])
	}
}
