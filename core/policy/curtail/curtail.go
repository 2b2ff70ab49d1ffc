// Package curtail attaches curtailment accounting to the dispatch model.
// Every (project, timepoint) pair gets a non-negative Curtailment variable
// tied to dispatch by an equality with the dispatch ceiling, and each
// configured (period, energy source) pair gets a cap on its timepoint-
// weighted curtailment relative to the weighted ceiling.
//
// The original policy scheme this grew out of was described as a Renewable
// Portfolio Standard (a minimum energy share from eligible sources); what is
// implemented here is the curtailment-cap accounting.
//
// Unit commitment is not supported: attaching this module to a model that
// carries a commitment extension is an error.
package curtail

import (
	"errors"
	"fmt"
	"math"

	"github.com/jszinai/switch/core/dispatch"
	"github.com/jszinai/switch/core/lp"
	"github.com/jszinai/switch/core/model"
)

const (
	extensionName    = "policies.curtailment"
	commitExtension  = "generators.commit"
	defaultRateLimit = 1.0
)

// ErrCommitmentUnsupported is returned when the model carries a unit
// commitment extension.
var ErrCommitmentUnsupported = errors.New("curtailment policy does not support unit commitment")

// Key restricts which (period, energy source) pairs have an enforced cap.
type Key struct {
	Period       model.Period
	EnergySource string
}

// Module holds the curtailment components attached to a builder.
type Module struct {
	b *dispatch.Builder

	curtail map[dispatch.Key]lp.VarID

	keys   []Key
	keySet map[Key]struct{}
	rate   map[Key]float64
	cost   map[Key][]lp.Term
}

// Define attaches the Curtailment variables and the per-pair equality
// DispatchGen + Curtailment == DispatchUpperLimit. The dispatch components
// must already be defined. The per-key rate caps are built once the key set
// is populated by LoadInputs.
func Define(b *dispatch.Builder) (*Module, error) {
	if b.Sys.HasExtension(commitExtension) {
		return nil, ErrCommitmentUnsupported
	}
	if b.Sys.HasExtension(extensionName) {
		return nil, fmt.Errorf("curtailment policy already attached")
	}

	m := &Module{
		b:       b,
		curtail: make(map[dispatch.Key]lp.VarID),
		keySet:  make(map[Key]struct{}),
		rate:    make(map[Key]float64),
		cost:    make(map[Key][]lp.Term),
	}
	for _, k := range b.GenTPs() {
		dv, ok := b.DispatchVar(k)
		if !ok {
			return nil, fmt.Errorf("dispatch components must be defined before the curtailment policy")
		}
		ul, _ := b.UpperLimit(k)
		cv, err := b.Prog.AddVar(fmt.Sprintf("Curtailment[%s,%s]", k.Gen, k.Timepoint), 0, math.Inf(1))
		if err != nil {
			return nil, err
		}
		m.curtail[k] = cv
		err = b.Prog.AddConstraint(lp.Constraint{
			Name:  fmt.Sprintf("Dispatch_Curtailment[%s,%s]", k.Gen, k.Timepoint),
			Kind:  lp.Equal,
			Terms: []lp.Term{{Var: dv, Coeff: 1}, {Var: cv, Coeff: 1}},
			RHS:   ul,
		})
		if err != nil {
			return nil, err
		}
	}
	b.Sys.RegisterExtension(extensionName)
	return m, nil
}

// AddKey declares a (period, energy source) pair eligible for a cap. Both
// members must be declared in the system.
func (m *Module) AddKey(k Key) error {
	if !m.b.Sys.HasPeriod(k.Period) {
		return fmt.Errorf("curtailment key references undeclared period %s", k.Period)
	}
	if !m.b.Sys.HasEnergySource(k.EnergySource) {
		return fmt.Errorf("curtailment key references undeclared energy source %s", k.EnergySource)
	}
	if _, dup := m.keySet[k]; dup {
		return fmt.Errorf("curtailment key (%s, %s) already declared", k.Period, k.EnergySource)
	}
	m.keySet[k] = struct{}{}
	m.keys = append(m.keys, k)
	return nil
}

// SetRate sets the maximum curtailment fraction for a declared key.
func (m *Module) SetRate(k Key, rate float64) error {
	if _, ok := m.keySet[k]; !ok {
		return fmt.Errorf("curtailment rate for undeclared key (%s, %s)", k.Period, k.EnergySource)
	}
	if rate < 0 {
		return fmt.Errorf("curtailment rate for (%s, %s) must be non-negative", k.Period, k.EnergySource)
	}
	m.rate[k] = rate
	return nil
}

// Rate returns the maximum curtailment fraction for a key; keys without an
// explicit entry default to 1 (up to full curtailment allowed).
func (m *Module) Rate(k Key) float64 {
	if r, ok := m.rate[k]; ok {
		return r
	}
	return defaultRateLimit
}

// Keys returns the declared cap keys in declaration order.
func (m *Module) Keys() []Key { return m.keys }

// CurtailmentCost returns the expression summing curtailment over the pairs
// matching a key, or nil when the key is undeclared.
func (m *Module) CurtailmentCost(k Key) []lp.Term { return m.cost[k] }

// matchingPairs returns the (project, timepoint) pairs whose project uses
// the key's energy source and whose timepoint lies in the key's period.
func (m *Module) matchingPairs(k Key) []dispatch.Key {
	var pairs []dispatch.Key
	for _, p := range m.b.GenTPs() {
		g, _ := m.b.Sys.Generator(p.Gen)
		if g.EnergySource != k.EnergySource {
			continue
		}
		tp, _ := m.b.Sys.Timepoint(p.Timepoint)
		if tp.Period != k.Period {
			continue
		}
		pairs = append(pairs, p)
	}
	return pairs
}

// buildRateConstraints emits one weighted cap per declared key:
// sum(w*Curtailment) <= rate * sum(w*DispatchUpperLimit) over matching pairs.
func (m *Module) buildRateConstraints() error {
	for _, k := range m.keys {
		pairs := m.matchingPairs(k)
		if len(pairs) == 0 {
			continue
		}
		var terms []lp.Term
		var costTerms []lp.Term
		var ceilingSum float64
		for _, p := range pairs {
			tp, _ := m.b.Sys.Timepoint(p.Timepoint)
			ul, _ := m.b.UpperLimit(p)
			cv := m.curtail[p]
			terms = append(terms, lp.Term{Var: cv, Coeff: tp.WeightInYear})
			costTerms = append(costTerms, lp.Term{Var: cv, Coeff: 1})
			ceilingSum += ul * tp.WeightInYear
		}
		m.cost[k] = costTerms
		err := m.b.Prog.AddConstraint(lp.Constraint{
			Name:  fmt.Sprintf("Curtailment_Rate[%s,%s]", k.Period, k.EnergySource),
			Kind:  lp.AtMost,
			Terms: terms,
			RHS:   m.Rate(k) * ceilingSum,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// CurtailmentVar returns the Curtailment variable for a pair.
func (m *Module) CurtailmentVar(k dispatch.Key) (lp.VarID, bool) {
	id, ok := m.curtail[k]
	return id, ok
}
