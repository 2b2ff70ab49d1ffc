package dispatch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jszinai/switch/core/model"
	"github.com/jszinai/switch/infra/tabfile"
)

// LoadInputs populates the system sets and dispatch ceilings from the tab
// files in dir. All files except gen_fuels.tab are mandatory.
//
// Expected files:
//
//	periods.tab                  INVESTMENT_PERIOD
//	timepoints.tab               timepoint_id tp_timestamp tp_weight_in_year_hrs tp_period
//	energy_sources.tab           energy_source
//	generation_projects_info.tab GENERATION_PROJECT gen_dbid gen_tech
//	                             gen_load_zone gen_energy_source gen_uses_fuel
//	                             gen_variable_om
//	gen_fuels.tab                GENERATION_PROJECT fuel co2_intensity
//	dispatch_upper_limit.tab     GENERATION_PROJECT timepoint_id dispatch_upper_limit
func (b *Builder) LoadInputs(dir string) error {
	if err := b.loadPeriods(filepath.Join(dir, "periods.tab")); err != nil {
		return err
	}
	if err := b.loadTimepoints(filepath.Join(dir, "timepoints.tab")); err != nil {
		return err
	}
	if err := b.loadEnergySources(filepath.Join(dir, "energy_sources.tab")); err != nil {
		return err
	}
	if err := b.loadGenerators(filepath.Join(dir, "generation_projects_info.tab")); err != nil {
		return err
	}
	if err := b.loadGenFuels(filepath.Join(dir, "gen_fuels.tab")); err != nil {
		return err
	}
	return b.loadUpperLimits(filepath.Join(dir, "dispatch_upper_limit.tab"))
}

func (b *Builder) loadPeriods(path string) error {
	t, err := tabfile.Read(path)
	if err != nil {
		return fmt.Errorf("load periods: %w", err)
	}
	rows, err := t.Select("INVESTMENT_PERIOD")
	if err != nil {
		return err
	}
	for _, r := range rows {
		if err := b.Sys.AddPeriod(model.Period(r[0])); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) loadTimepoints(path string) error {
	t, err := tabfile.Read(path)
	if err != nil {
		return fmt.Errorf("load timepoints: %w", err)
	}
	rows, err := t.Select("timepoint_id", "tp_timestamp", "tp_weight_in_year_hrs", "tp_period")
	if err != nil {
		return err
	}
	for _, r := range rows {
		w, err := tabfile.Float(r[2])
		if err != nil {
			return fmt.Errorf("timepoint %s: %w", r[0], err)
		}
		tp := model.Timepoint{ID: r[0], Timestamp: r[1], WeightInYear: w, Period: model.Period(r[3])}
		if err := b.Sys.AddTimepoint(tp); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) loadEnergySources(path string) error {
	t, err := tabfile.Read(path)
	if err != nil {
		return fmt.Errorf("load energy sources: %w", err)
	}
	rows, err := t.Select("energy_source")
	if err != nil {
		return err
	}
	for _, r := range rows {
		if err := b.Sys.AddEnergySource(r[0]); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) loadGenerators(path string) error {
	t, err := tabfile.Read(path)
	if err != nil {
		return fmt.Errorf("load generators: %w", err)
	}
	rows, err := t.Select("GENERATION_PROJECT", "gen_dbid", "gen_tech",
		"gen_load_zone", "gen_energy_source", "gen_uses_fuel", "gen_variable_om")
	if err != nil {
		return err
	}
	for _, r := range rows {
		usesFuel, err := tabfile.Bool(r[5])
		if err != nil {
			return fmt.Errorf("generator %s: %w", r[0], err)
		}
		om, err := tabfile.Float(r[6])
		if err != nil {
			return fmt.Errorf("generator %s: %w", r[0], err)
		}
		g := model.Generator{
			Name:         r[0],
			DBID:         r[1],
			Tech:         r[2],
			LoadZone:     r[3],
			EnergySource: r[4],
			UsesFuel:     usesFuel,
			VariableOM:   om,
		}
		if err := b.Sys.AddGenerator(g); err != nil {
			return err
		}
	}
	return nil
}

// gen_fuels.tab is only needed when fuel-burning projects exist, so its
// absence is not an error.
func (b *Builder) loadGenFuels(path string) error {
	t, err := tabfile.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("load gen fuels: %w", err)
	}
	rows, err := t.Select("GENERATION_PROJECT", "fuel", "co2_intensity")
	if err != nil {
		return err
	}
	for _, r := range rows {
		co2, err := tabfile.Float(r[2])
		if err != nil {
			return fmt.Errorf("fuel %s for %s: %w", r[1], r[0], err)
		}
		if err := b.Sys.AddGenFuel(r[0], model.GenFuel{Fuel: r[1], CO2Intensity: co2}); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) loadUpperLimits(path string) error {
	t, err := tabfile.Read(path)
	if err != nil {
		return fmt.Errorf("load dispatch ceilings: %w", err)
	}
	rows, err := t.Select("GENERATION_PROJECT", "timepoint_id", "dispatch_upper_limit")
	if err != nil {
		return err
	}
	for _, r := range rows {
		mw, err := tabfile.Float(r[2])
		if err != nil {
			return fmt.Errorf("dispatch ceiling (%s, %s): %w", r[0], r[1], err)
		}
		if err := b.SetUpperLimit(r[0], r[1], mw); err != nil {
			return err
		}
	}
	return nil
}
