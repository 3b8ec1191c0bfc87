// Copyright 2026 The Ballastcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package gates implements the gate evaluator (C5): derived freeboard/UKC
// quantities, captain/charterer gate outcomes, and the hard-stop
// determination. Outcome is a tagged sum handled exhaustively — spec §9
// explicitly calls out "no string comparisons in the gate-decision logic".
package gates

// Outcome is the tagged sum of gate results.
type Outcome int

const (
	OK Outcome = iota
	Limit
	Fail
	Verify
	NA
)

func (o Outcome) String() string {
	switch o {
	case OK:
		return "OK"
	case Limit:
		return "LIMIT"
	case Fail:
		return "FAIL"
	case Verify:
		return "VERIFY"
	case NA:
		return "N/A"
	default:
		return "UNKNOWN"
	}
}

// evalMin resolves a "value must be >= bound" gate: OK if the strict bound
// holds, LIMIT if only the guard-banded (relaxed-downward) bound holds,
// FAIL otherwise.
func evalMin(value, bound, guardBand float64) Outcome {
	switch {
	case value >= bound:
		return OK
	case value >= bound-guardBand:
		return Limit
	default:
		return Fail
	}
}

// evalMax resolves a "value must be <= bound" gate: OK if the strict bound
// holds, LIMIT if only the guard-banded (relaxed-upward) bound holds, FAIL
// otherwise.
func evalMax(value, bound, guardBand float64) Outcome {
	switch {
	case value <= bound:
		return OK
	case value <= bound+guardBand:
		return Limit
	default:
		return Fail
	}
}
