// Copyright 2026 The Ballastcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ballast

import (
	"math"

	"github.com/cpmech/gosl/la"
)

// relOp is the relational operator of one linear constraint row.
type relOp int

const (
	le relOp = iota
	ge
	eq
)

// row is one linear constraint: Coeffs·x {<=,>=,=} RHS.
type row struct {
	Coeffs []float64
	Op     relOp
	RHS    float64
}

// lpStatus is the outcome of a simplex solve.
type lpStatus int

const (
	lpOptimal lpStatus = iota
	lpInfeasible
	lpUnbounded
)

// lpResult is the solution of one simplex solve.
type lpResult struct {
	Status lpStatus
	X      []float64 // length numVars, the original (structural) variables only
	Obj    float64
}

// bigM is the penalty applied to artificial variables. It must dominate
// any plausible objective value for this problem's scale (deltas in tons,
// priority weights are small positive multipliers), so 1e7 is generous.
const bigM = 1e7

const maxPivots = 2000

// solveLP minimizes c·x subject to rows, x >= 0, using the classic Big-M
// simplex tableau method. Spec §1 leaves the exact numeric algorithm
// unspecified, requiring only that the LP be "solvable to proven
// optimality or detectable infeasibility" — Big-M with Bland's anti-
// cycling pivot rule satisfies both.
func solveLP(numVars int, c []float64, rows []row) lpResult {

	// normalize rows to RHS >= 0
	norm := make([]row, len(rows))
	for i, r := range rows {
		rhs := r.RHS
		coeffs := append([]float64(nil), r.Coeffs...)
		op := r.Op
		if rhs < 0 {
			rhs = -rhs
			for j := range coeffs {
				coeffs[j] = -coeffs[j]
			}
			switch op {
			case le:
				op = ge
			case ge:
				op = le
			}
		}
		norm[i] = row{Coeffs: coeffs, Op: op, RHS: rhs}
	}

	nRows := len(norm)
	// count extra columns: one slack/surplus per row, one artificial per
	// ge/eq row
	nSlack := nRows
	artificialCol := make([]int, nRows) // -1 if row has no artificial
	nArt := 0
	for i, r := range norm {
		if r.Op == ge || r.Op == eq {
			artificialCol[i] = nArt
			nArt++
		} else {
			artificialCol[i] = -1
		}
	}

	totalCols := numVars + nSlack + nArt
	tab := la.MatAlloc(nRows+1, totalCols+1) // +1 objective row, +1 RHS column

	basis := make([]int, nRows)

	for i, r := range norm {
		for j := 0; j < numVars; j++ {
			tab[i][j] = r.Coeffs[j]
		}
		slackCol := numVars + i
		switch r.Op {
		case le:
			tab[i][slackCol] = 1
			basis[i] = slackCol
		case ge:
			tab[i][slackCol] = -1
			aCol := numVars + nSlack + artificialCol[i]
			tab[i][aCol] = 1
			basis[i] = aCol
		case eq:
			aCol := numVars + nSlack + artificialCol[i]
			tab[i][aCol] = 1
			basis[i] = aCol
		}
		tab[i][totalCols] = r.RHS
	}

	// objective row: minimize c·x + bigM·sum(artificials), stored as
	// (reduced-cost row) = c_j - z_j, so we seed it with c and then price
	// out the artificial basic variables with the standard row reductions.
	obj := tab[nRows]
	for j := 0; j < numVars; j++ {
		obj[j] = c[j]
	}
	for i := 0; i < nArt; i++ {
		obj[numVars+nSlack+i] = bigM
	}

	// price out the initial (artificial) basis from the objective row
	for i := 0; i < nRows; i++ {
		if norm[i].Op == ge || norm[i].Op == eq {
			cb := bigM
			for j := 0; j <= totalCols; j++ {
				obj[j] -= cb * tab[i][j]
			}
		}
	}

	for iter := 0; iter < maxPivots; iter++ {
		// Bland's rule: first column with negative reduced cost enters
		pivotCol := -1
		for j := 0; j < totalCols; j++ {
			if obj[j] < -1e-9 {
				pivotCol = j
				break
			}
		}
		if pivotCol == -1 {
			break // optimal
		}

		pivotRow := -1
		bestRatio := math.Inf(1)
		for i := 0; i < nRows; i++ {
			if tab[i][pivotCol] <= 1e-9 {
				continue
			}
			ratio := tab[i][totalCols] / tab[i][pivotCol]
			switch {
			case ratio < bestRatio-1e-12:
				bestRatio, pivotRow = ratio, i
			case ratio < bestRatio+1e-12 && pivotRow != -1 && basis[i] < basis[pivotRow]:
				// Bland's rule: among tied ratios, prefer the smallest basis index
				pivotRow = i
			}
		}
		if pivotRow == -1 {
			return lpResult{Status: lpUnbounded}
		}

		pivot(tab, pivotRow, pivotCol, nRows, totalCols)
		basis[pivotRow] = pivotCol
	}

	// infeasible if any artificial remains basic at a strictly positive value
	for i := 0; i < nRows; i++ {
		if basis[i] >= numVars+nSlack && tab[i][totalCols] > 1e-6 {
			return lpResult{Status: lpInfeasible}
		}
	}

	x := make([]float64, numVars)
	for i := 0; i < nRows; i++ {
		if basis[i] < numVars {
			x[basis[i]] = tab[i][totalCols]
		}
	}

	objVal := 0.0
	for j := 0; j < numVars; j++ {
		objVal += c[j] * x[j]
	}

	return lpResult{Status: lpOptimal, X: x, Obj: objVal}
}

// pivot performs one Gauss-Jordan elimination step around (pivotRow,pivotCol)
// across the full tableau (the nRows constraint rows plus the objective
// row stored immediately after them).
func pivot(tab [][]float64, pivotRow, pivotCol, nRows, totalCols int) {
	pv := tab[pivotRow][pivotCol]
	for j := 0; j <= totalCols; j++ {
		tab[pivotRow][j] /= pv
	}
	for i := 0; i <= nRows; i++ {
		if i == pivotRow {
			continue
		}
		factor := tab[i][pivotCol]
		if factor == 0 {
			continue
		}
		for j := 0; j <= totalCols; j++ {
			tab[i][j] -= factor * tab[pivotRow][j]
		}
	}
}
