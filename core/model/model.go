// Package model holds the static sets and attributes of the electricity
// system: planning periods, timepoints, energy sources, generation projects
// and the fuels each project can burn.
package model

import "fmt"

// Period names a multi-year planning horizon.
type Period string

// Timepoint is one dispatch interval within a period.
type Timepoint struct {
	ID           string
	Timestamp    string  // opaque label carried into reports
	WeightInYear float64 // hours represented per typical year
	Period       Period
}

// Generator describes a generation project.
type Generator struct {
	Name         string
	DBID         string
	Tech         string
	LoadZone     string
	EnergySource string
	UsesFuel     bool
	VariableOM   float64 // $/MWh
}

// Validate checks that the generator attributes are sound.
func (g Generator) Validate() error {
	if g.Name == "" {
		return fmt.Errorf("generator name is required")
	}
	if g.VariableOM < 0 {
		return fmt.Errorf("generator %s: variable O&M must be non-negative", g.Name)
	}
	return nil
}

// GenFuel is one fuel usable by a fuel-burning project.
type GenFuel struct {
	Fuel         string
	CO2Intensity float64 // tCO2 per MWh of dispatch on this fuel
}

// System is the collection of declared sets. Members are added once during
// the load phase and read-only afterwards.
type System struct {
	periods     map[Period]struct{}
	periodOrder []Period

	timepoints []Timepoint
	tpIndex    map[string]int

	sources     map[string]struct{}
	sourceOrder []string

	gens     []Generator
	genIndex map[string]int

	fuelsForGen map[string][]GenFuel

	extensions map[string]struct{}
}

// NewSystem returns an empty system.
func NewSystem() *System {
	return &System{
		periods:     make(map[Period]struct{}),
		tpIndex:     make(map[string]int),
		sources:     make(map[string]struct{}),
		genIndex:    make(map[string]int),
		fuelsForGen: make(map[string][]GenFuel),
		extensions:  make(map[string]struct{}),
	}
}

// AddPeriod declares a planning period.
func (s *System) AddPeriod(p Period) error {
	if _, ok := s.periods[p]; ok {
		return fmt.Errorf("period %s already declared", p)
	}
	s.periods[p] = struct{}{}
	s.periodOrder = append(s.periodOrder, p)
	return nil
}

// HasPeriod reports whether p is declared.
func (s *System) HasPeriod(p Period) bool {
	_, ok := s.periods[p]
	return ok
}

// Periods returns the periods in declaration order.
func (s *System) Periods() []Period { return s.periodOrder }

// AddTimepoint declares a timepoint; its period must exist.
func (s *System) AddTimepoint(tp Timepoint) error {
	if !s.HasPeriod(tp.Period) {
		return fmt.Errorf("timepoint %s references undeclared period %s", tp.ID, tp.Period)
	}
	if _, ok := s.tpIndex[tp.ID]; ok {
		return fmt.Errorf("timepoint %s already declared", tp.ID)
	}
	if tp.WeightInYear < 0 {
		return fmt.Errorf("timepoint %s: weight must be non-negative", tp.ID)
	}
	s.tpIndex[tp.ID] = len(s.timepoints)
	s.timepoints = append(s.timepoints, tp)
	return nil
}

// Timepoint returns the timepoint with the given id.
func (s *System) Timepoint(id string) (Timepoint, bool) {
	i, ok := s.tpIndex[id]
	if !ok {
		return Timepoint{}, false
	}
	return s.timepoints[i], true
}

// Timepoints returns all timepoints in declaration order.
func (s *System) Timepoints() []Timepoint { return s.timepoints }

// TimepointsInPeriod returns the timepoints belonging to p.
func (s *System) TimepointsInPeriod(p Period) []Timepoint {
	var tps []Timepoint
	for _, tp := range s.timepoints {
		if tp.Period == p {
			tps = append(tps, tp)
		}
	}
	return tps
}

// AddEnergySource declares an energy source.
func (s *System) AddEnergySource(name string) error {
	if _, ok := s.sources[name]; ok {
		return fmt.Errorf("energy source %s already declared", name)
	}
	s.sources[name] = struct{}{}
	s.sourceOrder = append(s.sourceOrder, name)
	return nil
}

// HasEnergySource reports whether name is declared.
func (s *System) HasEnergySource(name string) bool {
	_, ok := s.sources[name]
	return ok
}

// EnergySources returns the sources in declaration order.
func (s *System) EnergySources() []string { return s.sourceOrder }

// AddGenerator declares a generation project; its energy source must exist.
func (s *System) AddGenerator(g Generator) error {
	if err := g.Validate(); err != nil {
		return err
	}
	if !s.HasEnergySource(g.EnergySource) {
		return fmt.Errorf("generator %s references undeclared energy source %s", g.Name, g.EnergySource)
	}
	if _, ok := s.genIndex[g.Name]; ok {
		return fmt.Errorf("generator %s already declared", g.Name)
	}
	s.genIndex[g.Name] = len(s.gens)
	s.gens = append(s.gens, g)
	return nil
}

// Generator returns the project with the given name.
func (s *System) Generator(name string) (Generator, bool) {
	i, ok := s.genIndex[name]
	if !ok {
		return Generator{}, false
	}
	return s.gens[i], true
}

// Generators returns all projects in declaration order.
func (s *System) Generators() []Generator { return s.gens }

// AddGenFuel declares a fuel usable by gen. The project must be declared
// and flagged as fuel-burning.
func (s *System) AddGenFuel(gen string, f GenFuel) error {
	g, ok := s.Generator(gen)
	if !ok {
		return fmt.Errorf("fuel %s references undeclared generator %s", f.Fuel, gen)
	}
	if !g.UsesFuel {
		return fmt.Errorf("generator %s does not use fuel", gen)
	}
	s.fuelsForGen[gen] = append(s.fuelsForGen[gen], f)
	return nil
}

// FuelsFor returns the fuels usable by gen.
func (s *System) FuelsFor(gen string) []GenFuel { return s.fuelsForGen[gen] }

// RegisterExtension records that a policy extension is attached.
func (s *System) RegisterExtension(name string) {
	s.extensions[name] = struct{}{}
}

// HasExtension reports whether a policy extension is attached.
func (s *System) HasExtension(name string) bool {
	_, ok := s.extensions[name]
	return ok
}
