// Copyright 2026 The Ballastcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tanks

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/cpmech/gosl/chk"
)

var tankRegistryColumns = []string{
	"tank_id", "capacity_t", "x_from_mid_m", "current_t", "min_t", "max_t",
	"mode", "use_flag", "pump_rate_tph", "priority_weight",
}

// LoadCSV reads the tank registry table (spec §6, input 1): tank_id,
// capacity_t, x_from_mid_m, current_t, min_t, max_t, mode, use_flag,
// pump_rate_tph, priority_weight. Malformed rows abort the run via
// chk.Panic (InputError).
func LoadCSV(r io.Reader) []Tank {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		chk.Panic("tanks: cannot read registry CSV: %v", err)
	}
	if len(rows) < 1 {
		chk.Panic("tanks: registry CSV has no header row")
	}

	idx := make(map[string]int, len(tankRegistryColumns))
	for _, want := range tankRegistryColumns {
		found := -1
		for i, h := range rows[0] {
			if h == want {
				found = i
				break
			}
		}
		if found == -1 {
			chk.Panic("tanks: registry CSV missing required column %q", want)
		}
		idx[want] = found
	}

	out := make([]Tank, 0, len(rows)-1)
	for lineNo, row := range rows[1:] {
		t := Tank{
			ID:             row[idx["tank_id"]],
			CapacityT:      parseFloat(row[idx["capacity_t"]], "capacity_t", lineNo),
			XFromMidM:      parseFloat(row[idx["x_from_mid_m"]], "x_from_mid_m", lineNo),
			CurrentT:       parseFloat(row[idx["current_t"]], "current_t", lineNo),
			MinT:           parseFloat(row[idx["min_t"]], "min_t", lineNo),
			MaxT:           parseFloat(row[idx["max_t"]], "max_t", lineNo),
			Mode:           ParseMode(row[idx["mode"]]),
			UseFlag:        row[idx["use_flag"]] == "Y",
			PumpRateTph:    parseFloat(row[idx["pump_rate_tph"]], "pump_rate_tph", lineNo),
			PriorityWeight: parseFloat(row[idx["priority_weight"]], "priority_weight", lineNo),
		}
		t.Validate()
		out = append(out, t)
	}
	return out
}

func parseFloat(s, col string, lineNo int) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		chk.Panic("tanks: registry CSV row %d: bad %s value %q", lineNo+2, col, s)
	}
	return v
}
