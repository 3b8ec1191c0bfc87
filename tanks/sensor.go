// Copyright 2026 The Ballastcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tanks

import "github.com/rs/zerolog"

// SensorStrategy selects how a sensor reading combines with the existing
// current_t (spec §6, input 5).
type SensorStrategy int

const (
	ReplaceCurrent SensorStrategy = iota // replace current_t unconditionally
	FillMissing                         // only replace when current_t is zero
)

// SensorReading is one row of the optional current-sensor-readings table.
type SensorReading struct {
	TankID   string
	CurrentT float64
}

// Warning records a non-fatal event raised while applying sensor readings:
// a clamp to bounds, or a rejected FIXED-tank override (spec §9's
// resolution: reject, don't mutate, and log).
type Warning struct {
	TankID string
	Kind   string // "clamped" or "fixed_rejected"
	Detail string
}

// ApplySensorReadings applies readings to the registry under strategy,
// clamping any accepted value to [min_t, max_t] and logging every clamp and
// every rejected FIXED-tank mismatch through log. It returns the full list
// of warnings raised, in reading order.
func (r *Registry) ApplySensorReadings(readings []SensorReading, strategy SensorStrategy, log zerolog.Logger) []Warning {
	var warnings []Warning

	for _, rd := range readings {
		t, ok := r.byID[rd.TankID]
		if !ok {
			log.Warn().Str("tank", rd.TankID).Msg("sensor reading for unknown tank_id ignored")
			continue
		}

		if t.Mode == Fixed {
			if rd.CurrentT != t.CurrentT {
				w := Warning{TankID: rd.TankID, Kind: "fixed_rejected",
					Detail: "FIXED tank: sensor value rejected, contract preserved"}
				warnings = append(warnings, w)
				log.Warn().Str("tank", rd.TankID).Float64("sensor_t", rd.CurrentT).
					Float64("fixed_t", t.CurrentT).Msg(w.Detail)
			}
			continue
		}

		if strategy == FillMissing && t.CurrentT != 0 {
			continue
		}

		v := rd.CurrentT
		if v < t.MinT {
			warnings = append(warnings, Warning{TankID: rd.TankID, Kind: "clamped",
				Detail: "sensor value below min_t, clamped"})
			log.Info().Str("tank", rd.TankID).Float64("raw", v).Float64("clamped_to", t.MinT).Msg("sensor value clamped to min_t")
			v = t.MinT
		} else if v > t.MaxT {
			warnings = append(warnings, Warning{TankID: rd.TankID, Kind: "clamped",
				Detail: "sensor value above max_t, clamped"})
			log.Info().Str("tank", rd.TankID).Float64("raw", v).Float64("clamped_to", t.MaxT).Msg("sensor value clamped to max_t")
			v = t.MaxT
		}
		t.CurrentT = v
	}
	return warnings
}
