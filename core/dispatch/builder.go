// Package dispatch builds the base generation-dispatch components of the
// model: one DispatchGen variable per (project, timepoint) pair with a
// dispatch ceiling, and a timepoint-weighted variable-cost objective.
// Policy extensions attach further components through the Builder.
package dispatch

import (
	"fmt"

	"github.com/jszinai/switch/core/lp"
	"github.com/jszinai/switch/core/model"
)

// Key identifies a (generation project, timepoint) pair.
type Key struct {
	Gen       string
	Timepoint string
}

// Builder owns the system sets and the linear program under construction.
// The define, load and policy phases all operate on the same Builder; no
// component mutates ambient state.
type Builder struct {
	Sys  *model.System
	Prog *lp.Program

	ceiling  map[Key]float64
	dispatch map[Key]lp.VarID
	pairs    []Key
	defined  bool
}

// NewBuilder wraps a populated system and an empty program.
func NewBuilder(sys *model.System, prog *lp.Program) *Builder {
	return &Builder{
		Sys:      sys,
		Prog:     prog,
		ceiling:  make(map[Key]float64),
		dispatch: make(map[Key]lp.VarID),
	}
}

// SetUpperLimit declares the dispatch ceiling for a pair. The pair set of
// the model is exactly the set of pairs given a ceiling.
func (b *Builder) SetUpperLimit(gen, tp string, mw float64) error {
	if b.defined {
		return fmt.Errorf("dispatch components already defined")
	}
	if _, ok := b.Sys.Generator(gen); !ok {
		return fmt.Errorf("dispatch ceiling references undeclared generator %s", gen)
	}
	if _, ok := b.Sys.Timepoint(tp); !ok {
		return fmt.Errorf("dispatch ceiling references undeclared timepoint %s", tp)
	}
	if mw < 0 {
		return fmt.Errorf("dispatch ceiling for (%s, %s) must be non-negative", gen, tp)
	}
	k := Key{Gen: gen, Timepoint: tp}
	if _, dup := b.ceiling[k]; dup {
		return fmt.Errorf("dispatch ceiling for (%s, %s) already declared", gen, tp)
	}
	b.ceiling[k] = mw
	b.pairs = append(b.pairs, k)
	return nil
}

// DefineComponents creates the DispatchGen variables and the variable-cost
// objective. It must run after the ceilings are loaded and before policy
// modules attach.
func (b *Builder) DefineComponents() error {
	if b.defined {
		return fmt.Errorf("dispatch components already defined")
	}
	for _, k := range b.pairs {
		g, _ := b.Sys.Generator(k.Gen)
		tp, _ := b.Sys.Timepoint(k.Timepoint)
		id, err := b.Prog.AddVar(fmt.Sprintf("DispatchGen[%s,%s]", k.Gen, k.Timepoint), 0, b.ceiling[k])
		if err != nil {
			return err
		}
		b.dispatch[k] = id
		b.Prog.AddObjectiveTerm(id, g.VariableOM*tp.WeightInYear)
	}
	b.defined = true
	return nil
}

// GenTPs returns the (project, timepoint) pairs in declaration order.
func (b *Builder) GenTPs() []Key { return b.pairs }

// DispatchVar returns the DispatchGen variable for a pair.
func (b *Builder) DispatchVar(k Key) (lp.VarID, bool) {
	id, ok := b.dispatch[k]
	return id, ok
}

// UpperLimit returns the dispatch ceiling for a pair.
func (b *Builder) UpperLimit(k Key) (float64, bool) {
	v, ok := b.ceiling[k]
	return v, ok
}

// CO2Intensity returns the summed CO2 intensity (tCO2/MWh) over all fuels
// usable by gen, and whether the project burns fuel at all.
func (b *Builder) CO2Intensity(gen string) (float64, bool) {
	g, ok := b.Sys.Generator(gen)
	if !ok || !g.UsesFuel {
		return 0, false
	}
	var sum float64
	for _, f := range b.Sys.FuelsFor(gen) {
		sum += f.CO2Intensity
	}
	return sum, true
}
