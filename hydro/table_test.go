// Copyright 2026 The Ballastcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hydro

import (
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func sampleTable() *Table {
	return NewTable([]Row{
		{TmeanM: 2.0, DispT: 1000, LcfM: -1.0, TpcTCm: 12.0, MtcTmCm: 60.0},
		{TmeanM: 3.0, DispT: 1200, LcfM: -0.8, TpcTCm: 12.5, MtcTmCm: 62.0},
		{TmeanM: 4.0, DispT: 1400, LcfM: -0.6, TpcTCm: 13.0, MtcTmCm: 64.0},
	})
}

func Test_interp_exact_row01(tst *testing.T) {
	chk.PrintTitle("interp_exact_row01")
	t := sampleTable()
	p := t.Interp(3.0)
	chk.Scalar(tst, "DispT", 1e-12, p.DispT, 1200)
	chk.Scalar(tst, "LcfM", 1e-12, p.LcfM, -0.8)
	if p.Clamped {
		tst.Fatalf("exact row query must not be marked clamped")
	}
}

func Test_interp_midpoint01(tst *testing.T) {
	chk.PrintTitle("interp_midpoint01")
	t := sampleTable()
	p := t.Interp(2.5)
	chk.Scalar(tst, "DispT", 1e-12, p.DispT, 1100)
	chk.Scalar(tst, "TpcTCm", 1e-12, p.TpcTCm, 12.25)
}

func Test_interp_clamp_below01(tst *testing.T) {
	chk.PrintTitle("interp_clamp_below01")
	t := sampleTable()
	p := t.Interp(0.5)
	chk.Scalar(tst, "DispT", 1e-12, p.DispT, 1000)
	if !p.Clamped {
		tst.Fatalf("below-range query must be clamped")
	}
}

func Test_interp_clamp_above01(tst *testing.T) {
	chk.PrintTitle("interp_clamp_above01")
	t := sampleTable()
	p := t.Interp(10.0)
	chk.Scalar(tst, "DispT", 1e-12, p.DispT, 1400)
	if !p.Clamped {
		tst.Fatalf("above-range query must be clamped")
	}
}

func Test_duplicate_rows_collapse01(tst *testing.T) {
	chk.PrintTitle("duplicate_rows_collapse01")
	t := NewTable([]Row{
		{TmeanM: 2.0, DispT: 1000},
		{TmeanM: 2.0, DispT: 9999}, // later duplicate must be dropped
		{TmeanM: 3.0, DispT: 1200},
	})
	chk.IntAssert(t.Len(), 2)
	p := t.Interp(2.0)
	chk.Scalar(tst, "DispT (earlier row kept)", 1e-12, p.DispT, 1000)
}

func Test_load_csv01(tst *testing.T) {
	chk.PrintTitle("load_csv01")
	csvData := "Tmean_m,Disp_t,TPC_t_per_cm,MTC_t_m_per_cm,LCF_m,KM_m,GM_min_m\n" +
		"2.0,1000,12.0,60.0,-1.0,5.0,0.3\n" +
		"3.0,1200,12.5,62.0,-0.8,5.1,0.3\n"
	t := LoadCSV(strings.NewReader(csvData))
	chk.IntAssert(t.Len(), 2)
	p := t.Interp(2.0)
	chk.Scalar(tst, "KmM", 1e-12, p.KmM, 5.0)
}

func Test_single_row_panics01(tst *testing.T) {
	chk.PrintTitle("single_row_panics01")
	defer func() {
		if r := recover(); r == nil {
			tst.Fatalf("expected panic for single-row table")
		}
	}()
	NewTable([]Row{{TmeanM: 2.0, DispT: 1000}})
}
