package dispatch

import (
	"math"
	"testing"

	"github.com/jszinai/switch/core/lp"
	"github.com/jszinai/switch/core/model"
)

func testSystem(t *testing.T) *model.System {
	t.Helper()
	sys := model.NewSystem()
	if err := sys.AddPeriod("2030"); err != nil {
		t.Fatalf("add period: %v", err)
	}
	if err := sys.AddTimepoint(model.Timepoint{ID: "T1", Timestamp: "2030-01-15-12", WeightInYear: 10, Period: "2030"}); err != nil {
		t.Fatalf("add timepoint: %v", err)
	}
	for _, src := range []string{"Solar", "Gas"} {
		if err := sys.AddEnergySource(src); err != nil {
			t.Fatalf("add source: %v", err)
		}
	}
	if err := sys.AddGenerator(model.Generator{
		Name: "G1", DBID: "1", Tech: "PV", LoadZone: "north",
		EnergySource: "Solar", VariableOM: 2,
	}); err != nil {
		t.Fatalf("add generator: %v", err)
	}
	return sys
}

func TestSetUpperLimit_Validation(t *testing.T) {
	b := NewBuilder(testSystem(t), lp.New())
	if err := b.SetUpperLimit("G9", "T1", 100); err == nil {
		t.Fatalf("expected undeclared generator error")
	}
	if err := b.SetUpperLimit("G1", "T9", 100); err == nil {
		t.Fatalf("expected undeclared timepoint error")
	}
	if err := b.SetUpperLimit("G1", "T1", -1); err == nil {
		t.Fatalf("expected negative ceiling error")
	}
	if err := b.SetUpperLimit("G1", "T1", 100); err != nil {
		t.Fatalf("set ceiling: %v", err)
	}
	if err := b.SetUpperLimit("G1", "T1", 50); err == nil {
		t.Fatalf("expected duplicate ceiling error")
	}
}

func TestDefineComponents(t *testing.T) {
	prog := lp.New()
	b := NewBuilder(testSystem(t), prog)
	if err := b.SetUpperLimit("G1", "T1", 100); err != nil {
		t.Fatalf("set ceiling: %v", err)
	}
	if err := b.DefineComponents(); err != nil {
		t.Fatalf("define: %v", err)
	}
	if prog.NumVars() != 1 {
		t.Fatalf("expected 1 variable got %d", prog.NumVars())
	}
	k := Key{Gen: "G1", Timepoint: "T1"}
	id, ok := b.DispatchVar(k)
	if !ok {
		t.Fatalf("missing dispatch variable")
	}
	v := prog.Var(id)
	if v.Lower != 0 || v.Upper != 100 {
		t.Fatalf("unexpected bounds: %+v", v)
	}
	if err := b.DefineComponents(); err == nil {
		t.Fatalf("expected redefinition error")
	}

	// With a positive O&M rate the cost-minimizing dispatch is zero.
	sol, err := prog.Solve(1e-7)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	got, err := sol.Value(id)
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if math.Abs(got) > 1e-6 {
		t.Fatalf("expected zero dispatch got %v", got)
	}
}

func TestCO2Intensity(t *testing.T) {
	sys := testSystem(t)
	if err := sys.AddGenerator(model.Generator{
		Name: "G2", DBID: "2", Tech: "CCGT", LoadZone: "north",
		EnergySource: "Gas", UsesFuel: true, VariableOM: 4,
	}); err != nil {
		t.Fatalf("add generator: %v", err)
	}
	if err := sys.AddGenFuel("G2", model.GenFuel{Fuel: "NaturalGas", CO2Intensity: 0.4}); err != nil {
		t.Fatalf("add fuel: %v", err)
	}
	b := NewBuilder(sys, lp.New())

	if _, usesFuel := b.CO2Intensity("G1"); usesFuel {
		t.Fatalf("G1 should not use fuel")
	}
	got, usesFuel := b.CO2Intensity("G2")
	if !usesFuel || got != 0.4 {
		t.Fatalf("unexpected intensity: %v %v", got, usesFuel)
	}
}
