package lp

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// ErrInfeasible indicates the program has no feasible solution.
var ErrInfeasible = errors.New("lp infeasible")

// ErrUnbounded indicates the objective can decrease without limit.
var ErrUnbounded = errors.New("lp unbounded")

// ErrUnsolved is returned when a value is read before a successful solve.
var ErrUnsolved = errors.New("lp not solved")

// simplexSolve points to the function running the simplex algorithm. It can
// be overridden in tests to simulate solver failures.
var simplexSolve = func(c []float64, a mat.Matrix, b []float64, tol float64) ([]float64, error) {
	_, x, err := lp.Simplex(c, a, b, tol, nil)
	return x, err
}

// Solve converts the constraint records to standard form and runs the
// simplex algorithm. tol is the solver pivot tolerance.
func (p *Program) Solve(tol float64) (*Solution, error) {
	n := len(p.vars)
	if n == 0 {
		return &Solution{}, nil
	}

	c := make([]float64, n)
	for _, t := range p.objective {
		c[t.Var] += t.Coeff
	}

	// Inequality rows: AtMost constraints plus finite variable bounds.
	var ineq, eq int
	for _, con := range p.constraints {
		if con.Kind == Equal {
			eq++
		} else {
			ineq++
		}
	}
	bounds := 0
	for _, v := range p.vars {
		if !math.IsInf(v.Lower, -1) {
			bounds++
		}
		if !math.IsInf(v.Upper, 1) {
			bounds++
		}
	}

	// Dense matrices need at least one row; an all-zero 0<=0 row stands in
	// when the inequality block is empty. Its slack column keeps the row
	// nonzero in standard form. An empty equality block is passed through
	// as nil instead, since the solver rejects an all-zero equality row.
	nIneq := ineq + bounds
	if nIneq == 0 {
		nIneq = 1
	}
	g := mat.NewDense(nIneq, n, nil)
	h := make([]float64, nIneq)

	var a *mat.Dense
	var b []float64
	if eq > 0 {
		a = mat.NewDense(eq, n, nil)
		b = make([]float64, eq)
	}

	gi, ai := 0, 0
	for _, con := range p.constraints {
		switch con.Kind {
		case Equal:
			for _, t := range con.Terms {
				a.Set(ai, int(t.Var), a.At(ai, int(t.Var))+t.Coeff)
			}
			b[ai] = con.RHS
			ai++
		case AtMost:
			for _, t := range con.Terms {
				g.Set(gi, int(t.Var), g.At(gi, int(t.Var))+t.Coeff)
			}
			h[gi] = con.RHS
			gi++
		}
	}
	for i, v := range p.vars {
		if !math.IsInf(v.Lower, -1) {
			g.Set(gi, i, -1)
			h[gi] = -v.Lower
			gi++
		}
		if !math.IsInf(v.Upper, 1) {
			g.Set(gi, i, 1)
			h[gi] = v.Upper
			gi++
		}
	}

	var aEq mat.Matrix
	if a != nil {
		aEq = a
	}
	cStd, aStd, bStd := lp.Convert(c, g, h, aEq, b)
	x, err := simplexSolve(cStd, aStd, bStd, tol)
	if err != nil {
		switch {
		case errors.Is(err, lp.ErrInfeasible):
			return nil, fmt.Errorf("%w: %v", ErrInfeasible, err)
		case errors.Is(err, lp.ErrUnbounded):
			return nil, fmt.Errorf("%w: %v", ErrUnbounded, err)
		default:
			return nil, fmt.Errorf("simplex: %w", err)
		}
	}

	// Convert splits each free variable into positive and negative parts;
	// the original value is their difference.
	vals := make([]float64, n)
	for i := 0; i < n; i++ {
		vals[i] = x[i] - x[n+i]
	}
	return &Solution{values: vals}, nil
}
