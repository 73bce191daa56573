package sim

import (
	"github.com/mgrabovsky/electric-waltz/internal/config"
	"github.com/mgrabovsky/electric-waltz/internal/data"
	"github.com/mgrabovsky/electric-waltz/internal/grid"
)

// SourceTotal is one source's aggregate over a run.
type SourceTotal struct {
	Name      string  `json:"name"`
	EnergyMWh float64 `json:"energy_mwh"`
	Steps     int     `json:"steps"`
}

// Summary holds the aggregate energy accounting of one run.
type Summary struct {
	Name  string `json:"name,omitempty"`
	Steps int    `json:"steps"`

	NetConsumptionMWh float64 `json:"net_consumption_mwh"`

	TotalGenerationMWh      float64 `json:"total_generation_mwh"`
	InflexibleGenerationMWh float64 `json:"inflexible_generation_mwh"`
	FlexibleGenerationMWh   float64 `json:"flexible_generation_mwh"`

	Baseload     []SourceTotal `json:"baseload"`
	Intermittent []SourceTotal `json:"intermittent"`
	Flexible     []SourceTotal `json:"flexible"`

	ChargingMWh      float64 `json:"charging_mwh"`
	DischargingMWh   float64 `json:"discharging_mwh"`
	ChargingSteps    int     `json:"charging_steps"`
	DischargingSteps int     `json:"discharging_steps"`

	ExportMWh        float64 `json:"export_mwh"`
	ImportMWh        float64 `json:"import_mwh"`
	ImportBalanceMWh float64 `json:"import_balance_mwh"`
	ExportSteps      int     `json:"export_steps"`
	ImportSteps      int     `json:"import_steps"`

	DumpMWh       float64 `json:"dump_mwh"`
	ShortageMWh   float64 `json:"shortage_mwh"`
	DumpSteps     int     `json:"dump_steps"`
	ShortageSteps int     `json:"shortage_steps"`
}

func buildSummary(cfg *config.Config, world *data.World, run *grid.ScenarioRun) Summary {
	s := Summary{
		Name:  cfg.Name,
		Steps: run.Steps(),

		ChargingMWh:      run.ComputeTotalCharging(),
		DischargingMWh:   run.ComputeTotalDischarging(),
		ChargingSteps:    run.CountChargingSteps(),
		DischargingSteps: run.CountDischargingSteps(),

		ExportMWh:   run.ComputeTotalExport(),
		ImportMWh:   run.ComputeTotalImport(),
		ExportSteps: run.CountExportSteps(),
		ImportSteps: run.CountImportSteps(),

		DumpMWh:       run.ComputeTotalDump(),
		ShortageMWh:   run.ComputeTotalShortage(),
		DumpSteps:     run.CountDumpSteps(),
		ShortageSteps: run.CountShortageSteps(),
	}
	s.ImportBalanceMWh = s.ImportMWh - s.ExportMWh

	for _, load := range world.Load {
		s.NetConsumptionMWh += load
	}

	total := func(name string) SourceTotal {
		return SourceTotal{
			Name:      name,
			EnergyMWh: run.ComputeGeneration(name),
			Steps:     run.CountGenerationSteps(name),
		}
	}
	for _, sc := range cfg.Baseload {
		t := total(sc.Name)
		s.Baseload = append(s.Baseload, t)
		s.InflexibleGenerationMWh += t.EnergyMWh
	}
	for _, ic := range cfg.Intermittent {
		t := total(ic.Name)
		s.Intermittent = append(s.Intermittent, t)
		s.InflexibleGenerationMWh += t.EnergyMWh
	}
	for _, fc := range cfg.Flexible {
		t := total(fc.Name)
		s.Flexible = append(s.Flexible, t)
		s.FlexibleGenerationMWh += t.EnergyMWh
	}
	s.TotalGenerationMWh = s.InflexibleGenerationMWh + s.FlexibleGenerationMWh

	return s
}
