// Copyright 2026 The Ballastcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package profile loads the site profile (spec §6, input 4): an
// explicit, enumerated-field configuration record, not a free-form map.
// Unknown top-level keys are rejected at load time (spec §9's
// "Dynamic configuration objects" redesign flag), and three layers —
// CLI, profile, built-in defaults — merge in that priority order.
package profile

import (
	"io"

	"github.com/cpmech/gosl/chk"
	"gopkg.in/yaml.v3"
)

// TankOverride mirrors tanks.Override's on-disk shape; kept separate from
// the tanks package so profile has no dependency on tank-registry
// internals, matching the teacher's inp package keeping file schemas
// independent of the runtime model they populate.
type TankOverride struct {
	TankID         *string  `yaml:"tank_id,omitempty"`
	Mode           *string  `yaml:"mode,omitempty"`
	UseFlag        *bool    `yaml:"use_flag,omitempty"`
	MinT           *float64 `yaml:"min_t,omitempty"`
	MaxT           *float64 `yaml:"max_t,omitempty"`
	PumpRateTph    *float64 `yaml:"pump_rate_tph,omitempty"`
	PriorityWeight *float64 `yaml:"priority_weight,omitempty"`
}

// Profile is the full set of recognised site-profile options (spec §6).
type Profile struct {
	FwdMaxM            *float64       `yaml:"fwd_max_m,omitempty"`
	AftMinM            *float64       `yaml:"aft_min_m,omitempty"`
	TrimAbsLimitM      *float64       `yaml:"trim_abs_limit_m,omitempty"`
	FreeboardMinM      *float64       `yaml:"freeboard_min_m,omitempty"`
	GateGuardBandCm    *float64       `yaml:"gate_guard_band_cm,omitempty"`
	UkcMinM            *float64       `yaml:"ukc_min_m,omitempty"`
	CriticalStageRegex *string        `yaml:"critical_stage_regex,omitempty"`
	CriticalStageList  []string       `yaml:"critical_stage_list,omitempty"`
	TankOverrides      []TankOverride `yaml:"tank_overrides,omitempty"`
}

// recognisedKeys is the exhaustive top-level key set; anything else in the
// document is an input error, caught before any stage executes.
var recognisedKeys = map[string]bool{
	"fwd_max_m": true, "aft_min_m": true, "trim_abs_limit_m": true,
	"freeboard_min_m": true, "gate_guard_band_cm": true, "ukc_min_m": true,
	"critical_stage_regex": true, "critical_stage_list": true, "tank_overrides": true,
}

// Load parses a site-profile YAML document, rejecting any top-level key
// outside recognisedKeys via chk.Panic (InputError, abort-at-load).
func Load(r io.Reader) Profile {
	var root yaml.Node
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&root); err != nil {
		chk.Panic("profile: cannot parse site profile: %v", err)
	}
	if len(root.Content) == 0 {
		return Profile{}
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		chk.Panic("profile: site profile must be a top-level mapping")
	}
	for i := 0; i < len(doc.Content); i += 2 {
		key := doc.Content[i].Value
		if !recognisedKeys[key] {
			chk.Panic("profile: unrecognised site-profile key %q", key)
		}
	}

	var p Profile
	if err := doc.Decode(&p); err != nil {
		chk.Panic("profile: cannot decode site profile: %v", err)
	}
	return p
}

// Defaults are the built-in values used when neither CLI nor profile
// supplies one (spec §6: CLI > profile > defaults).
func Defaults() Profile {
	guard := 2.0 // cm
	return Profile{GateGuardBandCm: &guard}
}

// Merge layers cli over profile over Defaults(), returning the single
// resolved Profile a run uses. Each field is resolved independently: a
// cli value wins if set, else the profile value, else the default.
func Merge(cli, prof Profile) Profile {
	def := Defaults()
	out := Profile{}
	out.FwdMaxM = pick(cli.FwdMaxM, prof.FwdMaxM, def.FwdMaxM)
	out.AftMinM = pick(cli.AftMinM, prof.AftMinM, def.AftMinM)
	out.TrimAbsLimitM = pick(cli.TrimAbsLimitM, prof.TrimAbsLimitM, def.TrimAbsLimitM)
	out.FreeboardMinM = pick(cli.FreeboardMinM, prof.FreeboardMinM, def.FreeboardMinM)
	out.GateGuardBandCm = pick(cli.GateGuardBandCm, prof.GateGuardBandCm, def.GateGuardBandCm)
	out.UkcMinM = pick(cli.UkcMinM, prof.UkcMinM, def.UkcMinM)
	out.CriticalStageRegex = pickStr(cli.CriticalStageRegex, prof.CriticalStageRegex, def.CriticalStageRegex)

	out.CriticalStageList = cli.CriticalStageList
	if out.CriticalStageList == nil {
		out.CriticalStageList = prof.CriticalStageList
	}
	out.TankOverrides = append(append([]TankOverride{}, prof.TankOverrides...), cli.TankOverrides...)
	return out
}

func pick(cli, prof, def *float64) *float64 {
	switch {
	case cli != nil:
		return cli
	case prof != nil:
		return prof
	default:
		return def
	}
}

func pickStr(cli, prof, def *string) *string {
	switch {
	case cli != nil:
		return cli
	case prof != nil:
		return prof
	default:
		return def
	}
}
