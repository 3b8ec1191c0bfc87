// Copyright 2026 The Ballastcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ballast

// InfeasibilityReport names which gate class is responsible for an
// infeasible LP, per spec §4.3/§7: "report which gate(s) forced
// infeasibility, not just that the problem failed."
type InfeasibilityReport struct {
	Reason       string   // human-readable summary
	BlockingGate gateKind // first culprit in relaxOrder; zero value (gateCaptain) is meaningless unless Culprits is non-empty
	Culprits     []string // gate kinds whose removal alone would restore feasibility
}

// relaxFactor is the additive slack given to a row's RHS (toward
// feasibility) when probing whether that row's gate class is a culprit.
// A large relaxation, not an infinite one: it must still be possible for
// tank-bound rows (culprit-neutral, never relaxed) to bind the answer.
const relaxFactor = 1e6

// relaxOrder is the fixed operational-preference order in which gate
// classes are probed: try weakening the less-critical gate first (spec
// §7 — "ordered by operational preference"). The charterer gate is a
// commercial/contractual bound, softer than the captain gate's physical
// safety margin, which in turn is tried before freeboard/UKC/trim, the
// vessel-safety gates least preferable to relax.
var relaxOrder = []gateKind{gateCharterer, gateCaptain, gateFreeboard, gateUKC, gateTrim}

// diagnose re-solves the LP once per distinct non-tank-bound gate class
// present in rows, relaxing only that class's RHS to effective infinity
// each time, and reports every class whose relaxation alone turns the
// problem feasible. Tank-bound rows are never relaxed: a solver that
// proposes exceeding a tank's physical capacity is not a usable diagnosis.
// Classes are probed in relaxOrder, not map order, so Culprits is reported
// deterministically and in operational preference.
func diagnose(vars []variable, c []float64, in Input, rows []taggedRow) *InfeasibilityReport {
	present := make(map[gateKind]bool)
	for _, r := range rows {
		if r.Kind != gateTankBound {
			present[r.Kind] = true
		}
	}

	var culprits []string
	var culpritKinds []gateKind
	for _, kind := range relaxOrder {
		if !present[kind] {
			continue
		}
		relaxed := make([]row, len(rows))
		for i, r := range rows {
			relaxed[i] = r.row
			if r.Kind == kind {
				relaxed[i] = relax(r.row)
			}
		}
		res := solveLP(len(vars), c, relaxed)
		if res.Status == lpOptimal {
			culprits = append(culprits, kind.String())
			culpritKinds = append(culpritKinds, kind)
		}
	}

	if len(culprits) == 0 {
		return &InfeasibilityReport{
			Reason:   "infeasible: no single gate class relaxation restores feasibility — tank bounds or a combination of gates are binding",
			Culprits: nil,
		}
	}
	return &InfeasibilityReport{
		Reason:       "infeasible: relaxing " + joinComma(culprits) + " alone would restore feasibility",
		BlockingGate: culpritKinds[0],
		Culprits:     culprits,
	}
}

// relax loosens one row's RHS in the direction that can never tighten it,
// regardless of sign, so the row is effectively dropped from the problem.
func relax(r row) row {
	switch r.Op {
	case le:
		return row{Coeffs: r.Coeffs, Op: le, RHS: r.RHS + relaxFactor}
	case ge:
		return row{Coeffs: r.Coeffs, Op: ge, RHS: r.RHS - relaxFactor}
	default:
		return r
	}
}

func joinComma(ss []string) string {
	out := ""
	for i, s := range ss {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}
