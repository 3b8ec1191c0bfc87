// Copyright 2026 The Ballastcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stages

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/cpmech/ballastcore/gates"
	"github.com/cpmech/gosl/chk"
)

var requiredStageColumns = []string{
	"Stage", "Current_FWD_m", "Current_AFT_m", "FWD_MAX_m", "AFT_MIN_m", "D_vessel_m",
}

var optionalTideColumns = []string{
	"Forecast_Tide_m", "DepthRef_m", "DatumOffset_m", "UKC_Min_m", "Squat_m", "SafetyAllow_m",
}

// LoadCSV reads the stage table (spec §6, input 3): nine rows of
// load-transfer drafts and per-stage gate bounds, with an optional
// tide/UKC context block. freeboardMinM and guardBandM are run-wide
// values from the site profile, not per-row columns.
func LoadCSV(r io.Reader, freeboardMinM, guardBandM float64, trimAbsLimitM *float64) []Input {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		chk.Panic("stages: cannot read stage table CSV: %v", err)
	}
	if len(rows) < 1 {
		chk.Panic("stages: stage table CSV has no header row")
	}
	header := rows[0]

	idx := make(map[string]int)
	for _, h := range requiredStageColumns {
		pos := colIndex(header, h)
		if pos == -1 {
			chk.Panic("stages: stage table CSV missing required column %q", h)
		}
		idx[h] = pos
	}
	tideKnown := true
	for _, h := range optionalTideColumns {
		pos := colIndex(header, h)
		if pos == -1 {
			tideKnown = false
			break
		}
		idx[h] = pos
	}

	out := make([]Input, 0, len(rows)-1)
	for lineNo, row := range rows[1:] {
		in := Input{
			Name:          Name(row[idx["Stage"]]),
			CurrentFwdM:   parseF(row[idx["Current_FWD_m"]], "Current_FWD_m", lineNo),
			CurrentAftM:   parseF(row[idx["Current_AFT_m"]], "Current_AFT_m", lineNo),
			FwdMaxM:       parseF(row[idx["FWD_MAX_m"]], "FWD_MAX_m", lineNo),
			AftMinM:       parseF(row[idx["AFT_MIN_m"]], "AFT_MIN_m", lineNo),
			VesselDepthM:  parseF(row[idx["D_vessel_m"]], "D_vessel_m", lineNo),
			FreeboardMinM: freeboardMinM,
			GuardBandM:    guardBandM,
			TrimAbsLimitM: trimAbsLimitM,
		}
		if tideKnown {
			in.Tide = gates.TideContext{
				ForecastTideM: parseF(row[idx["Forecast_Tide_m"]], "Forecast_Tide_m", lineNo), ForecastTideKnown: true,
				DepthRefM: parseF(row[idx["DepthRef_m"]], "DepthRef_m", lineNo),
				DatumOffsetM: parseF(row[idx["DatumOffset_m"]], "DatumOffset_m", lineNo),
				UkcMinM: parseF(row[idx["UKC_Min_m"]], "UKC_Min_m", lineNo),
				SquatM: parseF(row[idx["Squat_m"]], "Squat_m", lineNo),
				SafetyAllowM: parseF(row[idx["SafetyAllow_m"]], "SafetyAllow_m", lineNo),
				UkcContextKnown: true,
			}
		}
		out = append(out, in)
	}
	return out
}

func colIndex(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}

func parseF(s, col string, lineNo int) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		chk.Panic("stages: stage table CSV row %d: bad %s value %q", lineNo+2, col, s)
	}
	return v
}
