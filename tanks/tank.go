// Copyright 2026 The Ballastcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package tanks implements the tank registry (C2): per-tank capacity,
// longitudinal position, current mass, mode, pump rate and priority weight,
// plus the override-resolution and sensor-ingestion rules that sit on top
// of it.
package tanks

import "github.com/cpmech/gosl/chk"

// Mode is the tagged sum of operating modes a tank can be in. It is never
// compared by string in decision logic (spec §9) — call the Allows* methods
// instead.
type Mode int

const (
	FillDischarge Mode = iota // unrestricted fill or discharge
	FillOnly                  // fill only, no discharge
	DischargeOnly             // discharge only, no fill
	Blocked                   // neither fill nor discharge
	Fixed                     // neither, and min=max=current is asserted
)

// String renders the mode using the spec's column vocabulary.
func (m Mode) String() string {
	switch m {
	case FillDischarge:
		return "FILL_DISCHARGE"
	case FillOnly:
		return "FILL_ONLY"
	case DischargeOnly:
		return "DISCHARGE_ONLY"
	case Blocked:
		return "BLOCKED"
	case Fixed:
		return "FIXED"
	default:
		return "UNKNOWN"
	}
}

// ParseMode converts the spec's column vocabulary into a Mode, panicking
// (InputError, abort-at-load) on anything else.
func ParseMode(s string) Mode {
	switch s {
	case "FILL_DISCHARGE":
		return FillDischarge
	case "FILL_ONLY":
		return FillOnly
	case "DISCHARGE_ONLY":
		return DischargeOnly
	case "BLOCKED":
		return Blocked
	case "FIXED":
		return Fixed
	default:
		chk.Panic("tanks: unknown mode %q", s)
	}
	return FillDischarge
}

// AllowsFill reports whether the mode permits a positive delta (fill leg).
func (m Mode) AllowsFill() bool {
	return m == FillDischarge || m == FillOnly
}

// AllowsDischarge reports whether the mode permits a negative delta
// (discharge leg).
func (m Mode) AllowsDischarge() bool {
	return m == FillDischarge || m == DischargeOnly
}

// Tank is one row of the tank registry.
type Tank struct {
	ID             string  // tank_id, e.g. "FWB2.P"
	CapacityT      float64 // capacity_t > 0
	XFromMidM      float64 // x_from_mid_m, signed, AFT-positive
	CurrentT       float64 // mutable current_t in [0, capacity_t]
	MinT           float64 // operational lower bound within capacity
	MaxT           float64 // operational upper bound within capacity
	Mode           Mode
	UseFlag        bool    // use_flag: true=Y, false=N
	PumpRateTph    float64 // pump_rate_tph > 0
	PriorityWeight float64 // priority_weight > 0, smaller = preferred
}

// Validate enforces the §3 invariants for a single tank and panics
// (InputError) on violation.
func (t Tank) Validate() {
	if t.CapacityT <= 0 {
		chk.Panic("tank %s: capacity_t must be positive, got %v", t.ID, t.CapacityT)
	}
	if t.MinT > t.MaxT {
		chk.Panic("tank %s: min_t (%v) > max_t (%v)", t.ID, t.MinT, t.MaxT)
	}
	if t.CurrentT < t.MinT-1e-9 || t.CurrentT > t.MaxT+1e-9 {
		chk.Panic("tank %s: current_t (%v) outside [min_t,max_t] = [%v,%v]", t.ID, t.CurrentT, t.MinT, t.MaxT)
	}
	if t.PumpRateTph <= 0 {
		chk.Panic("tank %s: pump_rate_tph must be positive, got %v", t.ID, t.PumpRateTph)
	}
	if t.PriorityWeight <= 0 {
		chk.Panic("tank %s: priority_weight must be positive, got %v", t.ID, t.PriorityWeight)
	}
	if t.Mode == Fixed {
		if t.MinT != t.CurrentT || t.MaxT != t.CurrentT {
			chk.Panic("tank %s: FIXED mode asserts min_t=max_t=current_t", t.ID)
		}
	}
}

// FillUpperBound returns the maximum admissible fill leg p_i, respecting
// both capacity bounds and mode (spec §4.3).
func (t Tank) FillUpperBound() float64 {
	if !t.UseFlag || !t.Mode.AllowsFill() {
		return 0
	}
	ub := t.MaxT - t.CurrentT
	if ub < 0 {
		return 0
	}
	return ub
}

// DischargeUpperBound returns the maximum admissible discharge leg n_i.
func (t Tank) DischargeUpperBound() float64 {
	if !t.UseFlag || !t.Mode.AllowsDischarge() {
		return 0
	}
	ub := t.CurrentT - t.MinT
	if ub < 0 {
		return 0
	}
	return ub
}
