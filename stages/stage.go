// Copyright 2026 The Ballastcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package stages implements the stage planner (C3): the fixed nine-stage
// sequence, critical-stage classification, carry-forward of tank state,
// and the forward-inventory pre-ballast policy that primes FWB1/FWB2
// ahead of the two critical stages.
package stages

// Name is a stage name. The constants below are the nine fixed stage
// names of spec §3, in run order.
type Name string

const (
	Stage1            Name = "Stage 1"
	Stage2            Name = "Stage 2"
	Stage3            Name = "Stage 3"
	Stage4            Name = "Stage 4"
	Stage5            Name = "Stage 5"
	Stage5PreBallast  Name = "Stage 5_PreBallast"
	Stage6ACritical   Name = "Stage 6A_Critical"
	Stage6C           Name = "Stage 6C"
	Stage7            Name = "Stage 7"
)

// FixedOrder returns the nine stages in run order. Planner.Run does not
// consult it: it executes the stage inputs it is given, in their order.
func FixedOrder() []Name {
	return []Name{Stage1, Stage2, Stage3, Stage4, Stage5, Stage5PreBallast, Stage6ACritical, Stage6C, Stage7}
}
