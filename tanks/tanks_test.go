// Copyright 2026 The Ballastcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tanks

import (
	"io"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/rs/zerolog"
)

func sampleRegistry() *Registry {
	return NewRegistry([]Tank{
		{ID: "FWB1.P", CapacityT: 80, XFromMidM: -25, CurrentT: 50.57, MinT: 0, MaxT: 80,
			Mode: FillDischarge, UseFlag: true, PumpRateTph: 100, PriorityWeight: 1},
		{ID: "FWB1.S", CapacityT: 80, XFromMidM: -25, CurrentT: 50.57, MinT: 0, MaxT: 80,
			Mode: FillDischarge, UseFlag: true, PumpRateTph: 100, PriorityWeight: 1},
		{ID: "AFT1.C", CapacityT: 200, XFromMidM: 22, CurrentT: 20, MinT: 0, MaxT: 200,
			Mode: FillDischarge, UseFlag: true, PumpRateTph: 150, PriorityWeight: 2},
	})
}

func Test_mode_allows01(tst *testing.T) {
	chk.PrintTitle("mode_allows01")
	if DischargeOnly.AllowsFill() {
		tst.Fatalf("DISCHARGE_ONLY must forbid fill")
	}
	if !DischargeOnly.AllowsDischarge() {
		tst.Fatalf("DISCHARGE_ONLY must allow discharge")
	}
	if FillOnly.AllowsDischarge() {
		tst.Fatalf("FILL_ONLY must forbid discharge")
	}
	if Blocked.AllowsFill() || Blocked.AllowsDischarge() {
		tst.Fatalf("BLOCKED must forbid both")
	}
	if Fixed.AllowsFill() || Fixed.AllowsDischarge() {
		tst.Fatalf("FIXED must forbid both")
	}
}

func Test_apply_deltas_atomic01(tst *testing.T) {
	chk.PrintTitle("apply_deltas_atomic01")
	r := sampleRegistry()

	// one delta is invalid (exceeds capacity): nothing should be applied
	err := r.ApplyDeltas(map[string]float64{
		"FWB1.P": -10,
		"FWB1.S": 1000, // invalid
	})
	if err == nil {
		tst.Fatalf("expected error for out-of-bounds delta")
	}
	tk, _ := r.Get("FWB1.P")
	chk.Scalar(tst, "FWB1.P unchanged after rejected batch", 1e-12, tk.CurrentT, 50.57)

	err = r.ApplyDeltas(map[string]float64{"FWB1.P": -10})
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	tk, _ = r.Get("FWB1.P")
	chk.Scalar(tst, "FWB1.P after valid delta", 1e-12, tk.CurrentT, 40.57)
}

func Test_override_resolution01(tst *testing.T) {
	chk.PrintTitle("override_resolution01")
	r := sampleRegistry()

	mode := DischargeOnly
	rate := 80.0
	r.ResolveOverrides([]Override{
		{Key: "FWB1", Mode: &mode},            // base match -> both P and S
		{Key: "FWB1.S", PumpRateTph: &rate},    // exact match -> S only
	})

	p, _ := r.Get("FWB1.P")
	s, _ := r.Get("FWB1.S")
	if p.Mode != DischargeOnly || s.Mode != DischargeOnly {
		tst.Fatalf("base override must apply symmetrically to both sides")
	}
	if s.PumpRateTph != 80 {
		tst.Fatalf("exact override must apply to FWB1.S")
	}
	if p.PumpRateTph == 80 {
		tst.Fatalf("exact override for FWB1.S must not leak to FWB1.P")
	}
}

func Test_sensor_fixed_rejected01(tst *testing.T) {
	chk.PrintTitle("sensor_fixed_rejected01")
	r := NewRegistry([]Tank{
		{ID: "FWB3.P", CapacityT: 50, CurrentT: 30, MinT: 30, MaxT: 30,
			Mode: Fixed, UseFlag: true, PumpRateTph: 50, PriorityWeight: 1},
	})
	log := zerolog.New(io.Discard)
	warnings := r.ApplySensorReadings([]SensorReading{{TankID: "FWB3.P", CurrentT: 35}}, ReplaceCurrent, log)
	if len(warnings) != 1 || warnings[0].Kind != "fixed_rejected" {
		tst.Fatalf("expected a fixed_rejected warning, got %+v", warnings)
	}
	tk, _ := r.Get("FWB3.P")
	chk.Scalar(tst, "FIXED tank unchanged", 1e-12, tk.CurrentT, 30)
}

func Test_sensor_clamp01(tst *testing.T) {
	chk.PrintTitle("sensor_clamp01")
	r := sampleRegistry()
	log := zerolog.New(io.Discard)
	warnings := r.ApplySensorReadings([]SensorReading{{TankID: "AFT1.C", CurrentT: 999}}, ReplaceCurrent, log)
	if len(warnings) != 1 || warnings[0].Kind != "clamped" {
		tst.Fatalf("expected a clamped warning, got %+v", warnings)
	}
	tk, _ := r.Get("AFT1.C")
	chk.Scalar(tst, "AFT1.C clamped to max_t", 1e-12, tk.CurrentT, 200)
}
