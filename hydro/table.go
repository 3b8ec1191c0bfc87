// Copyright 2026 The Ballastcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package hydro implements the hydrostatic interpolator (C1): an immutable,
// ascending-by-mean-draft table of hydrostatic particulars with piecewise
// linear interpolation. The operation is pure and total: queries outside
// the table range clamp to the nearest endpoint rather than fail.
package hydro

import (
	"sort"

	"github.com/cpmech/gosl/chk"
)

// Row is one row of the hydrostatic table, columns as read from the input
// table (spec §6, input 2). KM_m and GM_min_m are optional; the loader
// stores zero when they are not supplied, so a zero value cannot be told
// apart from an explicit zero.
type Row struct {
	TmeanM  float64 // Tmean_m
	DispT   float64 // Disp_t
	LcfM    float64 // LCF_m, AFT-positive, midship convention
	TpcTCm  float64 // TPC_t_per_cm
	MtcTmCm float64 // MTC_t·m_per_cm
	KmM     float64 // KM_m, optional
	GmMinM  float64 // GM_min_m, optional
}

// Point is the result of interpolating the table at a given mean draft.
type Point struct {
	TmeanM  float64 // the queried mean draft, m
	DispT   float64
	LcfM    float64
	TpcTCm  float64
	MtcTmCm float64
	KmM     float64
	GmMinM  float64
	Clamped bool // true if TmeanM fell outside the table range and was clamped
}

// Table is an immutable, ascending-by-TmeanM hydrostatic table.
type Table struct {
	rows []Row
}

// NewTable builds a Table from unsorted input rows. Rows are sorted
// ascending by TmeanM; duplicate TmeanM entries are collapsed by keeping the
// earlier (first-seen, pre-sort) row, per spec §4.1. A table with fewer
// than two distinct rows is rejected at load time via chk.Panic — this is
// an InputError, and input errors abort the run before any stage executes
// (spec §7).
func NewTable(rows []Row) *Table {
	if len(rows) == 0 {
		chk.Panic("hydro: table must have at least one row")
	}

	// stable sort preserves first-seen order among equal TmeanM, which is
	// what lets the duplicate-collapse step below keep the "earlier" row
	sorted := make([]Row, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].TmeanM < sorted[j].TmeanM })

	dedup := make([]Row, 0, len(sorted))
	for _, r := range sorted {
		if len(dedup) > 0 && dedup[len(dedup)-1].TmeanM == r.TmeanM {
			continue
		}
		dedup = append(dedup, r)
	}

	if len(dedup) < 2 {
		chk.Panic("hydro: table must have at least two distinct Tmean_m rows, got %d", len(dedup))
	}
	return &Table{rows: dedup}
}

// Len returns the number of distinct rows in the table.
func (t *Table) Len() int { return len(t.rows) }

// Row returns the i-th row (0-based, ascending TmeanM).
func (t *Table) Row(i int) Row { return t.rows[i] }

// Interp returns the linearly-interpolated hydrostatic point at tmeanM.
// Outside the table range, the nearest endpoint is returned with
// Clamped=true. The operation never fails.
func (t *Table) Interp(tmeanM float64) Point {

	n := len(t.rows)
	first, last := t.rows[0], t.rows[n-1]

	if tmeanM <= first.TmeanM {
		return rowToPoint(first, tmeanM, tmeanM < first.TmeanM)
	}
	if tmeanM >= last.TmeanM {
		return rowToPoint(last, tmeanM, tmeanM > last.TmeanM)
	}

	// bracket: find i such that rows[i].TmeanM <= tmeanM <= rows[i+1].TmeanM
	i := sort.Search(n, func(i int) bool { return t.rows[i].TmeanM >= tmeanM })
	if t.rows[i].TmeanM == tmeanM {
		return rowToPoint(t.rows[i], tmeanM, false)
	}
	lo, hi := t.rows[i-1], t.rows[i]
	frac := (tmeanM - lo.TmeanM) / (hi.TmeanM - lo.TmeanM)

	return Point{
		TmeanM:  tmeanM,
		DispT:   lerp(lo.DispT, hi.DispT, frac),
		LcfM:    lerp(lo.LcfM, hi.LcfM, frac),
		TpcTCm:  lerp(lo.TpcTCm, hi.TpcTCm, frac),
		MtcTmCm: lerp(lo.MtcTmCm, hi.MtcTmCm, frac),
		KmM:     lerp(lo.KmM, hi.KmM, frac),
		GmMinM:  lerp(lo.GmMinM, hi.GmMinM, frac),
		Clamped: false,
	}
}

// InRange reports whether disp falls within the table's displacement range.
// The gate evaluator uses this to raise HydroOutOfRange hard stops (spec §4.5).
func (t *Table) InRange(dispT float64) bool {
	lo, hi := t.rows[0].DispT, t.rows[len(t.rows)-1].DispT
	if lo > hi {
		lo, hi = hi, lo
	}
	return dispT >= lo && dispT <= hi
}

func lerp(a, b, frac float64) float64 { return a + (b-a)*frac }

func rowToPoint(r Row, queriedTmean float64, clamped bool) Point {
	return Point{
		TmeanM:  queriedTmean,
		DispT:   r.DispT,
		LcfM:    r.LcfM,
		TpcTCm:  r.TpcTCm,
		MtcTmCm: r.MtcTmCm,
		KmM:     r.KmM,
		GmMinM:  r.GmMinM,
		Clamped: clamped,
	}
}
