// Package scenarios loads YAML test fixtures describing a small system and
// materializes them as a model inputs directory.
package scenarios

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type TimepointDef struct {
	ID           string  `yaml:"id"`
	Timestamp    string  `yaml:"timestamp"`
	WeightInYear float64 `yaml:"weight_in_year"`
	Period       string  `yaml:"period"`
}

type GeneratorDef struct {
	Name         string  `yaml:"name"`
	DBID         string  `yaml:"dbid"`
	Tech         string  `yaml:"tech"`
	LoadZone     string  `yaml:"load_zone"`
	EnergySource string  `yaml:"energy_source"`
	UsesFuel     bool    `yaml:"uses_fuel"`
	VariableOM   float64 `yaml:"variable_om"`
}

type FuelDef struct {
	Generator    string  `yaml:"generator"`
	Fuel         string  `yaml:"fuel"`
	CO2Intensity float64 `yaml:"co2_intensity"`
}

type CeilingDef struct {
	Generator string  `yaml:"generator"`
	Timepoint string  `yaml:"timepoint"`
	MW        float64 `yaml:"mw"`
}

type CapDef struct {
	Period       string  `yaml:"period"`
	EnergySource string  `yaml:"energy_source"`
	MaxRate      float64 `yaml:"max_rate"`
}

type ExpectedCurtailment struct {
	Generator string  `yaml:"generator"`
	Timepoint string  `yaml:"timepoint"`
	MW        float64 `yaml:"mw"`
}

type Expected struct {
	Curtailment []ExpectedCurtailment `yaml:"curtailment,omitempty"`
}

type Scenario struct {
	Name          string         `yaml:"name"`
	Description   string         `yaml:"description,omitempty"`
	Periods       []string       `yaml:"periods"`
	Timepoints    []TimepointDef `yaml:"timepoints"`
	EnergySources []string       `yaml:"energy_sources"`
	Generators    []GeneratorDef `yaml:"generators"`
	Fuels         []FuelDef      `yaml:"fuels,omitempty"`
	Ceilings      []CeilingDef   `yaml:"ceilings"`
	Caps          []CapDef       `yaml:"caps"`
	Expected      Expected       `yaml:"expected"`
}

// Load parses a scenario fixture.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Parse parses a scenario from in-memory YAML.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

// WriteInputs materializes the scenario as tab files in dir.
func (sc *Scenario) WriteInputs(dir string) error {
	var periods strings.Builder
	periods.WriteString("INVESTMENT_PERIOD\n")
	for _, p := range sc.Periods {
		fmt.Fprintf(&periods, "%s\n", p)
	}

	var tps strings.Builder
	tps.WriteString("timepoint_id\ttp_timestamp\ttp_weight_in_year_hrs\ttp_period\n")
	for _, tp := range sc.Timepoints {
		fmt.Fprintf(&tps, "%s\t%s\t%g\t%s\n", tp.ID, tp.Timestamp, tp.WeightInYear, tp.Period)
	}

	var sources strings.Builder
	sources.WriteString("energy_source\n")
	for _, s := range sc.EnergySources {
		fmt.Fprintf(&sources, "%s\n", s)
	}

	var gens strings.Builder
	gens.WriteString("GENERATION_PROJECT\tgen_dbid\tgen_tech\tgen_load_zone\tgen_energy_source\tgen_uses_fuel\tgen_variable_om\n")
	for _, g := range sc.Generators {
		uses := "0"
		if g.UsesFuel {
			uses = "1"
		}
		fmt.Fprintf(&gens, "%s\t%s\t%s\t%s\t%s\t%s\t%g\n",
			g.Name, g.DBID, g.Tech, g.LoadZone, g.EnergySource, uses, g.VariableOM)
	}

	var ceilings strings.Builder
	ceilings.WriteString("GENERATION_PROJECT\ttimepoint_id\tdispatch_upper_limit\n")
	for _, c := range sc.Ceilings {
		fmt.Fprintf(&ceilings, "%s\t%s\t%g\n", c.Generator, c.Timepoint, c.MW)
	}

	var caps strings.Builder
	caps.WriteString("Period\tEnergy_Source\tMax_Curtailment_Rate\n")
	for _, c := range sc.Caps {
		fmt.Fprintf(&caps, "%s\t%s\t%g\n", c.Period, c.EnergySource, c.MaxRate)
	}

	files := map[string]string{
		"periods.tab":                  periods.String(),
		"timepoints.tab":               tps.String(),
		"energy_sources.tab":           sources.String(),
		"generation_projects_info.tab": gens.String(),
		"dispatch_upper_limit.tab":     ceilings.String(),
		"curtailment_rate_max.tab":     caps.String(),
	}
	if len(sc.Fuels) > 0 {
		var fuels strings.Builder
		fuels.WriteString("GENERATION_PROJECT\tfuel\tco2_intensity\n")
		for _, f := range sc.Fuels {
			fmt.Fprintf(&fuels, "%s\t%s\t%g\n", f.Generator, f.Fuel, f.CO2Intensity)
		}
		files["gen_fuels.tab"] = fuels.String()
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			return err
		}
	}
	return nil
}
