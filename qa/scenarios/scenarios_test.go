package scenarios

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/jszinai/switch/core/dispatch"
	"github.com/jszinai/switch/core/lp"
	"github.com/jszinai/switch/core/model"
	"github.com/jszinai/switch/core/policy/curtail"
)

const solarCap = `
name: solar-cap
description: one solar project, 20% curtailment allowed
periods: ["2030"]
timepoints:
  - {id: T1, timestamp: "2030-01-15-12", weight_in_year: 10, period: "2030"}
energy_sources: [Solar, Wind]
generators:
  - {name: G1, dbid: "1", tech: PV, load_zone: north, energy_source: Solar, uses_fuel: false, variable_om: 2}
ceilings:
  - {generator: G1, timepoint: T1, mw: 100}
caps:
  - {period: "2030", energy_source: Solar, max_rate: 0.2}
expected:
  curtailment:
    - {generator: G1, timepoint: T1, mw: 20}
`

const twoProjects = `
name: two-projects
description: caps bind per energy source across projects in a period
periods: ["2030"]
timepoints:
  - {id: T1, timestamp: "t1", weight_in_year: 10, period: "2030"}
  - {id: T2, timestamp: "t2", weight_in_year: 20, period: "2030"}
energy_sources: [Solar, Gas]
generators:
  - {name: G1, dbid: "1", tech: PV, load_zone: north, energy_source: Solar, uses_fuel: false, variable_om: 2}
  - {name: G2, dbid: "2", tech: CCGT, load_zone: north, energy_source: Gas, uses_fuel: true, variable_om: 4}
fuels:
  - {generator: G2, fuel: NaturalGas, co2_intensity: 0.4}
ceilings:
  - {generator: G1, timepoint: T1, mw: 100}
  - {generator: G1, timepoint: T2, mw: 80}
  - {generator: G2, timepoint: T1, mw: 50}
  - {generator: G2, timepoint: T2, mw: 50}
caps:
  - {period: "2030", energy_source: Gas, max_rate: 0}
`

func runScenario(t *testing.T, sc *Scenario) (*dispatch.Builder, *curtail.Module, *lp.Solution) {
	t.Helper()
	dir := t.TempDir()
	if err := sc.WriteInputs(dir); err != nil {
		t.Fatalf("write inputs: %v", err)
	}

	b := dispatch.NewBuilder(model.NewSystem(), lp.New())
	if err := b.LoadInputs(dir); err != nil {
		t.Fatalf("load base inputs: %v", err)
	}
	if err := b.DefineComponents(); err != nil {
		t.Fatalf("define dispatch: %v", err)
	}
	m, err := curtail.Define(b)
	if err != nil {
		t.Fatalf("define curtailment: %v", err)
	}
	if err := m.LoadInputs(dir); err != nil {
		t.Fatalf("load curtailment inputs: %v", err)
	}
	sol, err := b.Prog.Solve(1e-7)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	return b, m, sol
}

func checkExpectations(t *testing.T, sc *Scenario, b *dispatch.Builder, m *curtail.Module, sol *lp.Solution) {
	t.Helper()
	for _, exp := range sc.Expected.Curtailment {
		k := dispatch.Key{Gen: exp.Generator, Timepoint: exp.Timepoint}
		cv, ok := m.CurtailmentVar(k)
		if !ok {
			t.Fatalf("no curtailment variable for %v", k)
		}
		got, err := sol.Value(cv)
		if err != nil {
			t.Fatalf("curtailment value for %v: %v", k, err)
		}
		if math.Abs(got-exp.MW) > 1e-6 {
			t.Errorf("curtailment for %v: expected %v got %v", k, exp.MW, got)
		}
	}

	// Structural identity: dispatch plus curtailment equals the ceiling for
	// every pair, whatever the scenario.
	for _, k := range b.GenTPs() {
		dv, _ := b.DispatchVar(k)
		cv, _ := m.CurtailmentVar(k)
		d, err := sol.Value(dv)
		if err != nil {
			t.Fatalf("dispatch value for %v: %v", k, err)
		}
		c, err := sol.Value(cv)
		if err != nil {
			t.Fatalf("curtailment value for %v: %v", k, err)
		}
		ul, _ := b.UpperLimit(k)
		if math.Abs(d+c-ul) > 1e-6 {
			t.Errorf("identity violated for %v: %v + %v != %v", k, d, c, ul)
		}
	}
}

func TestScenario_SolarCap(t *testing.T) {
	sc, err := Parse([]byte(solarCap))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	b, m, sol := runScenario(t, sc)
	checkExpectations(t, sc, b, m, sol)
}

func TestScenario_ZeroRatePinsDispatchToCeiling(t *testing.T) {
	sc, err := Parse([]byte(twoProjects))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	b, m, sol := runScenario(t, sc)
	checkExpectations(t, sc, b, m, sol)

	// Gas is capped at rate 0, so both gas pairs dispatch at their ceiling.
	for _, tp := range []string{"T1", "T2"} {
		k := dispatch.Key{Gen: "G2", Timepoint: tp}
		dv, _ := b.DispatchVar(k)
		got, err := sol.Value(dv)
		if err != nil {
			t.Fatalf("dispatch value: %v", err)
		}
		if math.Abs(got-50) > 1e-6 {
			t.Errorf("expected gas dispatch 50 at %s got %v", tp, got)
		}
	}

	// Solar is uncapped and costly, so it is fully curtailed.
	cost, err := sol.Eval(m.CurtailmentCost(curtail.Key{Period: "2030", EnergySource: "Gas"}))
	if err != nil {
		t.Fatalf("cost expression: %v", err)
	}
	if math.Abs(cost) > 1e-6 {
		t.Errorf("expected zero gas curtailment cost got %v", cost)
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(solarCap), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	sc, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sc.Name != "solar-cap" || len(sc.Generators) != 1 {
		t.Fatalf("unexpected scenario: %+v", sc)
	}
}
