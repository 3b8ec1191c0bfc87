// Copyright 2026 The Ballastcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tanks

import "strings"

// Override is a site-profile override for one tank or tank base-name.
// Every field is a pointer so that "not specified" (nil) is distinguishable
// from "explicitly set to the zero value" (spec §9: "Dynamic configuration
// objects" — explicit fields, not a free-form map).
type Override struct {
	Key            string // tank_id (exact, e.g. "FWB1.P") or base name (e.g. "FWB1")
	Mode           *Mode
	UseFlag        *bool
	PumpRateTph    *float64
	MinT           *float64
	MaxT           *float64
	PriorityWeight *float64
}

// baseName strips a trailing ".P", ".S" or ".C" side suffix, if present.
func baseName(tankID string) string {
	if i := strings.LastIndexByte(tankID, '.'); i >= 0 {
		suffix := tankID[i+1:]
		if suffix == "P" || suffix == "S" || suffix == "C" {
			return tankID[:i]
		}
	}
	return tankID
}

// ResolveOverrides applies overrides to every tank in the registry. Base-
// name overrides are applied first (distributing symmetrically across
// every tank sharing that base, e.g. both FWB1.P and FWB1.S), then exact
// tank_id overrides are applied on top — so an exact match always wins
// over, and can introduce explicit asymmetry against, a base match
// (spec §4.4).
func (r *Registry) ResolveOverrides(overrides []Override) {
	var baseOverrides, exactOverrides []Override
	for _, ov := range overrides {
		if _, isTank := r.byID[ov.Key]; isTank {
			exactOverrides = append(exactOverrides, ov)
		} else {
			baseOverrides = append(baseOverrides, ov)
		}
	}

	for _, ov := range baseOverrides {
		for _, id := range r.order {
			if baseName(id) == ov.Key {
				applyOverride(r.byID[id], ov)
			}
		}
	}
	for _, ov := range exactOverrides {
		applyOverride(r.byID[ov.Key], ov)
	}
}

func applyOverride(t *Tank, ov Override) {
	if ov.Mode != nil {
		t.Mode = *ov.Mode
	}
	if ov.UseFlag != nil {
		t.UseFlag = *ov.UseFlag
	}
	if ov.PumpRateTph != nil {
		t.PumpRateTph = *ov.PumpRateTph
	}
	if ov.MinT != nil {
		t.MinT = *ov.MinT
	}
	if ov.MaxT != nil {
		t.MaxT = *ov.MaxT
	}
	if ov.PriorityWeight != nil {
		t.PriorityWeight = *ov.PriorityWeight
	}
}
