// Copyright 2026 The Ballastcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hydro

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/cpmech/gosl/chk"
)

// requiredColumns are the columns spec §6 input 2 mandates; KM_m and
// GM_min_m are optional and default to zero when the column is absent.
var requiredColumns = []string{"Tmean_m", "Disp_t", "TPC_t_per_cm", "MTC_t_m_per_cm", "LCF_m"}

// LoadCSV reads a hydrostatic table from r. Missing required columns or
// unparseable numeric fields are InputErrors and abort the run via
// chk.Panic, per spec §7.
func LoadCSV(r io.Reader) *Table {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		chk.Panic("hydro: cannot read header: %v", err)
	}
	col := indexHeader(header)
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			chk.Panic("hydro: missing required column %q", name)
		}
	}

	var rows []Row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			chk.Panic("hydro: malformed row: %v", err)
		}
		rows = append(rows, Row{
			TmeanM:  mustFloat(rec, col, "Tmean_m"),
			DispT:   mustFloat(rec, col, "Disp_t"),
			LcfM:    mustFloat(rec, col, "LCF_m"),
			TpcTCm:  mustFloat(rec, col, "TPC_t_per_cm"),
			MtcTmCm: mustFloat(rec, col, "MTC_t_m_per_cm"),
			KmM:     optFloat(rec, col, "KM_m"),
			GmMinM:  optFloat(rec, col, "GM_min_m"),
		})
	}
	return NewTable(rows)
}

func indexHeader(header []string) map[string]int {
	m := make(map[string]int, len(header))
	for i, h := range header {
		m[h] = i
	}
	return m
}

func mustFloat(rec []string, col map[string]int, name string) float64 {
	i, ok := col[name]
	if !ok || i >= len(rec) {
		chk.Panic("hydro: row missing column %q", name)
	}
	v, err := strconv.ParseFloat(rec[i], 64)
	if err != nil {
		chk.Panic("hydro: column %q: %v", name, err)
	}
	return v
}

func optFloat(rec []string, col map[string]int, name string) float64 {
	i, ok := col[name]
	if !ok || i >= len(rec) || rec[i] == "" {
		return 0
	}
	v, err := strconv.ParseFloat(rec[i], 64)
	if err != nil {
		chk.Panic("hydro: column %q: %v", name, err)
	}
	return v
}
