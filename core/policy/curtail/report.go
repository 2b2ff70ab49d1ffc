package curtail

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/jszinai/switch/core/lp"
	"github.com/jszinai/switch/core/model"
	"github.com/jszinai/switch/pkg/export"
)

// Record is one flattened (project, timepoint) row of the detail report.
// Emissions is nil for projects that do not burn fuel.
type Record struct {
	GenerationProject string
	Timestamp         string
	GenDBID           string
	GenTech           string
	GenLoadZone       string
	GenEnergySource   string
	TpWeightInYearHrs float64
	Period            model.Period

	DispatchMWIdeal    float64
	DispatchMWActual   float64
	EnergyGWhIdeal     float64
	EnergyGWhActual    float64
	VariableCostPerYr  float64
	EmissionsTCO2PerYr *float64
}

// SummaryRow aggregates records sharing (technology, energy source, period).
type SummaryRow struct {
	GenTech         string
	GenEnergySource string
	Period          model.Period

	EnergyGWhIdeal     float64
	EnergyGWhActual    float64
	VariableCostPerYr  float64
	EmissionsTCO2PerYr float64
}

// Records flattens the solved model into one row per (project, timepoint)
// pair. Any missing solved value is fatal.
func (m *Module) Records(sol *lp.Solution) ([]Record, error) {
	recs := make([]Record, 0, len(m.b.GenTPs()))
	for _, p := range m.b.GenTPs() {
		g, _ := m.b.Sys.Generator(p.Gen)
		tp, _ := m.b.Sys.Timepoint(p.Timepoint)
		ul, _ := m.b.UpperLimit(p)
		dv, _ := m.b.DispatchVar(p)
		actual, err := sol.Value(dv)
		if err != nil {
			return nil, fmt.Errorf("dispatch value for (%s, %s): %w", p.Gen, p.Timepoint, err)
		}

		w := tp.WeightInYear
		rec := Record{
			GenerationProject: g.Name,
			Timestamp:         tp.Timestamp,
			GenDBID:           g.DBID,
			GenTech:           g.Tech,
			GenLoadZone:       g.LoadZone,
			GenEnergySource:   g.EnergySource,
			TpWeightInYearHrs: w,
			Period:            tp.Period,
			DispatchMWIdeal:   ul,
			DispatchMWActual:  actual,
			EnergyGWhIdeal:    ul * w / 1000,
			EnergyGWhActual:   actual * w / 1000,
			VariableCostPerYr: ul * g.VariableOM * w,
		}
		if intensity, usesFuel := m.b.CO2Intensity(g.Name); usesFuel {
			em := actual * intensity * w
			rec.EmissionsTCO2PerYr = &em
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// Summarize aggregates records by (technology, energy source, period),
// summing the energy, cost and emissions columns. Nil emissions count as 0.
func Summarize(recs []Record) []SummaryRow {
	type groupKey struct {
		tech   string
		source string
		period model.Period
	}
	groups := make(map[groupKey]*SummaryRow)
	for _, r := range recs {
		k := groupKey{tech: r.GenTech, source: r.GenEnergySource, period: r.Period}
		row, ok := groups[k]
		if !ok {
			row = &SummaryRow{GenTech: k.tech, GenEnergySource: k.source, Period: k.period}
			groups[k] = row
		}
		row.EnergyGWhIdeal += r.EnergyGWhIdeal
		row.EnergyGWhActual += r.EnergyGWhActual
		row.VariableCostPerYr += r.VariableCostPerYr
		if r.EmissionsTCO2PerYr != nil {
			row.EmissionsTCO2PerYr += *r.EmissionsTCO2PerYr
		}
	}

	rows := make([]SummaryRow, 0, len(groups))
	for _, row := range groups {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].GenTech != rows[j].GenTech {
			return rows[i].GenTech < rows[j].GenTech
		}
		if rows[i].GenEnergySource != rows[j].GenEnergySource {
			return rows[i].GenEnergySource < rows[j].GenEnergySource
		}
		return rows[i].Period < rows[j].Period
	})
	return rows
}

var detailHeader = []string{
	"generation_project", "timestamp", "gen_dbid", "gen_tech", "gen_load_zone",
	"gen_energy_source", "tp_weight_in_year_hrs", "period",
	"DispatchGen_MW_ideal", "DispatchGen_MW_actual",
	"Energy_GWh_typical_yr_ideal", "Energy_GWh_typical_yr_actual",
	"VariableCost_per_yr", "DispatchEmissions_tCO2_per_typical_yr",
}

var summaryHeader = []string{
	"gen_tech", "gen_energy_source", "period",
	"Energy_GWh_typical_yr_ideal", "Energy_GWh_typical_yr_actual",
	"VariableCost_per_yr", "DispatchEmissions_tCO2_per_typical_yr",
}

// PostSolve writes dispatch.csv and Curtailment_energy.csv to outdir. All
// records are assembled before either file is created, so a missing solved
// value never leaves a partial report behind.
func (m *Module) PostSolve(sol *lp.Solution, outdir string) error {
	recs, err := m.Records(sol)
	if err != nil {
		return err
	}

	detail := make([][]string, len(recs))
	for i, r := range recs {
		emissions := ""
		if r.EmissionsTCO2PerYr != nil {
			emissions = export.Float(*r.EmissionsTCO2PerYr)
		}
		detail[i] = []string{
			r.GenerationProject, r.Timestamp, r.GenDBID, r.GenTech, r.GenLoadZone,
			r.GenEnergySource, export.Float(r.TpWeightInYearHrs), string(r.Period),
			export.Float(r.DispatchMWIdeal), export.Float(r.DispatchMWActual),
			export.Float(r.EnergyGWhIdeal), export.Float(r.EnergyGWhActual),
			export.Float(r.VariableCostPerYr), emissions,
		}
	}
	if err := writeCSV(filepath.Join(outdir, "dispatch.csv"), detailHeader, detail); err != nil {
		return err
	}

	summaryRows := Summarize(recs)
	summary := make([][]string, len(summaryRows))
	for i, r := range summaryRows {
		summary[i] = []string{
			r.GenTech, r.GenEnergySource, string(r.Period),
			export.Float(r.EnergyGWhIdeal), export.Float(r.EnergyGWhActual),
			export.Float(r.VariableCostPerYr), export.Float(r.EmissionsTCO2PerYr),
		}
	}
	return writeCSV(filepath.Join(outdir, "Curtailment_energy.csv"), summaryHeader, summary)
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := export.WriteCSV(f, header, rows); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
