// Copyright 2026 The Ballastcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ballast

import "github.com/cpmech/ballastcore/tanks"

// Objective selects one of the two scalarisations of spec §4.3.
type Objective int

const (
	TimePreferring Objective = iota // default: minimise pump time, weighted by priority
	MassPreferring                 // minimise total mass moved, weighted by priority
)

// buildObjective returns the per-column objective coefficients for vars,
// looking up each tank's pump rate and priority weight from the registry
// snapshot.
func buildObjective(vars []variable, snapshot []tanks.Tank, obj Objective) []float64 {
	byID := make(map[string]tanks.Tank, len(snapshot))
	for _, t := range snapshot {
		byID[t.ID] = t
	}
	c := make([]float64, len(vars))
	for j, v := range vars {
		t := byID[v.TankID]
		switch obj {
		case TimePreferring:
			c[j] = t.PriorityWeight / t.PumpRateTph
		case MassPreferring:
			c[j] = t.PriorityWeight
		}
	}
	return c
}
