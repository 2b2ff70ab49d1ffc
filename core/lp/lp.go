// Package lp holds a linear program as plain records: variables with bounds,
// linear constraints and a minimization objective. Components append records
// during the define and load phases; Solve converts the records to standard
// form and runs a simplex solver.
package lp

import (
	"fmt"
	"math"
)

// VarID identifies a variable within a Program.
type VarID int

// Variable is a decision variable with simple bounds. Upper may be +Inf.
type Variable struct {
	Name  string
	Lower float64
	Upper float64
}

// Term is a single coefficient*variable entry of a linear expression.
type Term struct {
	Var   VarID
	Coeff float64
}

// Kind discriminates constraint records.
type Kind int

const (
	// Equal requires the expression to equal RHS.
	Equal Kind = iota
	// AtMost requires the expression to be <= RHS.
	AtMost
)

// Constraint is one linear constraint record.
type Constraint struct {
	Name  string
	Kind  Kind
	Terms []Term
	RHS   float64
}

// Program accumulates variables, constraints and the objective.
type Program struct {
	vars        []Variable
	constraints []Constraint
	objective   []Term
}

// New returns an empty program.
func New() *Program {
	return &Program{}
}

// AddVar registers a variable and returns its id.
func (p *Program) AddVar(name string, lower, upper float64) (VarID, error) {
	if lower > upper {
		return 0, fmt.Errorf("variable %s: lower bound %g exceeds upper %g", name, lower, upper)
	}
	p.vars = append(p.vars, Variable{Name: name, Lower: lower, Upper: upper})
	return VarID(len(p.vars) - 1), nil
}

// AddConstraint appends a constraint record.
func (p *Program) AddConstraint(c Constraint) error {
	for _, t := range c.Terms {
		if int(t.Var) < 0 || int(t.Var) >= len(p.vars) {
			return fmt.Errorf("constraint %s references unknown variable %d", c.Name, t.Var)
		}
	}
	p.constraints = append(p.constraints, c)
	return nil
}

// AddObjectiveTerm adds coeff*var to the minimized objective.
func (p *Program) AddObjectiveTerm(id VarID, coeff float64) {
	p.objective = append(p.objective, Term{Var: id, Coeff: coeff})
}

// NumVars returns the number of registered variables.
func (p *Program) NumVars() int { return len(p.vars) }

// NumConstraints returns the number of constraint records.
func (p *Program) NumConstraints() int { return len(p.constraints) }

// Var returns the variable record for id.
func (p *Program) Var(id VarID) Variable { return p.vars[id] }

// Constraints returns the accumulated constraint records.
func (p *Program) Constraints() []Constraint { return p.constraints }

// Solution carries solved variable values.
type Solution struct {
	values []float64
}

// Value returns the solved value of a variable.
func (s *Solution) Value(id VarID) (float64, error) {
	if s == nil || int(id) >= len(s.values) {
		return 0, ErrUnsolved
	}
	v := s.values[id]
	if math.IsNaN(v) {
		return 0, ErrUnsolved
	}
	return v, nil
}

// Eval evaluates a linear expression against the solution.
func (s *Solution) Eval(terms []Term) (float64, error) {
	var sum float64
	for _, t := range terms {
		v, err := s.Value(t.Var)
		if err != nil {
			return 0, err
		}
		sum += t.Coeff * v
	}
	return sum, nil
}
