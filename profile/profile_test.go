// Copyright 2026 The Ballastcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package profile

import (
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_profile_load01(tst *testing.T) {
	chk.PrintTitle("profile_load01: recognised keys decode correctly")

	doc := `
fwd_max_m: 2.70
aft_min_m: 2.70
gate_guard_band_cm: 2.0
critical_stage_list: ["Stage 5_PreBallast", "Stage 6A_Critical"]
`
	p := Load(strings.NewReader(doc))
	if p.FwdMaxM == nil || *p.FwdMaxM != 2.70 {
		tst.Fatalf("expected fwd_max_m=2.70, got %v", p.FwdMaxM)
	}
	if len(p.CriticalStageList) != 2 {
		tst.Fatalf("expected 2 critical stages, got %v", p.CriticalStageList)
	}
}

func Test_profile_unknown_key01(tst *testing.T) {
	chk.PrintTitle("profile_unknown_key01: unrecognised top-level key panics")

	defer func() {
		if recover() == nil {
			tst.Fatal("expected a panic on an unrecognised top-level key")
		}
	}()
	Load(strings.NewReader("fwd_max_m: 2.70\nbogus_key: 1\n"))
}

func Test_profile_merge_precedence01(tst *testing.T) {
	chk.PrintTitle("profile_merge_precedence01: cli > profile > defaults")

	cliVal := 3.0
	profVal := 2.5
	cli := Profile{FwdMaxM: &cliVal}
	prof := Profile{FwdMaxM: &profVal, AftMinM: &profVal}

	merged := Merge(cli, prof)
	if *merged.FwdMaxM != 3.0 {
		tst.Fatalf("expected cli to win for fwd_max_m, got %v", *merged.FwdMaxM)
	}
	if *merged.AftMinM != 2.5 {
		tst.Fatalf("expected profile to win for aft_min_m (no cli value), got %v", *merged.AftMinM)
	}
	if merged.GateGuardBandCm == nil || *merged.GateGuardBandCm != 2.0 {
		tst.Fatalf("expected built-in default guard band of 2.0 cm, got %v", merged.GateGuardBandCm)
	}
}
