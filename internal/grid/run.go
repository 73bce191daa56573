package grid

// ScenarioRun collects per-step statistics over one scenario run: each
// resource's realized output, net cross-border import, and the step's residual
// shortage (positive) or dump (negative). It grows by exactly one entry per
// resource per step and is read-only once the run completes.
type ScenarioRun struct {
	powerSources []Source
	storageUnits []*EnergyStorage
	crossBorder  *CrossBorderTerminal

	steps            int
	sourceGeneration map[string][]float64
	storageOutput    map[string][]float64
	netImport        []float64
	shortage         []float64
}

func NewScenarioRun(powerSources []Source, storageUnits []*EnergyStorage, crossBorder *CrossBorderTerminal) *ScenarioRun {
	return &ScenarioRun{
		powerSources:     powerSources,
		storageUnits:     storageUnits,
		crossBorder:      crossBorder,
		sourceGeneration: make(map[string][]float64),
		storageOutput:    make(map[string][]float64),
	}
}

// Sweep records one step: a snapshot of every registered resource's current
// output plus the step's shortage/dump residual.
func (r *ScenarioRun) Sweep(shortage float64) {
	for _, source := range r.powerSources {
		name := source.Name()
		r.sourceGeneration[name] = append(r.sourceGeneration[name], source.NetGeneration())
	}
	for _, storage := range r.storageUnits {
		name := storage.Name()
		r.storageOutput[name] = append(r.storageOutput[name], storage.Output())
	}
	if r.crossBorder != nil {
		r.netImport = append(r.netImport, r.crossBorder.NetImport())
	}
	r.shortage = append(r.shortage, shortage)
	r.steps++
}

// Steps returns the number of recorded time steps.
func (r *ScenarioRun) Steps() int { return r.steps }

// SourceGeneration returns the recorded net-generation series for the named
// source, or nil if no such source was swept. The slice is owned by the run
// and must not be modified.
func (r *ScenarioRun) SourceGeneration(name string) []float64 {
	return r.sourceGeneration[name]
}

// StorageOutput returns the recorded output series for the named storage unit,
// or nil if no such unit was swept.
func (r *ScenarioRun) StorageOutput(name string) []float64 {
	return r.storageOutput[name]
}

// NetImports returns the recorded net-import series. Empty when the scenario
// has no cross-border terminal.
func (r *ScenarioRun) NetImports() []float64 { return r.netImport }

// Shortages returns the recorded shortage/dump series: positive entries are
// unmet load, negative entries are dumped surplus.
func (r *ScenarioRun) Shortages() []float64 { return r.shortage }

// ComputeGeneration returns the total net energy generated by the named source
// over the run in MWh.
func (r *ScenarioRun) ComputeGeneration(sourceName string) float64 {
	total := 0.0
	for _, generation := range r.sourceGeneration[sourceName] {
		total += generation
	}
	return total
}

// ComputeTotalCharging returns the total energy drawn from the grid by all
// storage units, as a positive number.
func (r *ScenarioRun) ComputeTotalCharging() float64 {
	total := 0.0
	for _, storage := range r.storageUnits {
		for _, output := range r.storageOutput[storage.Name()] {
			if output < 0 {
				total -= output
			}
		}
	}
	return total
}

// ComputeTotalDischarging returns the total energy delivered to the grid by
// all storage units.
func (r *ScenarioRun) ComputeTotalDischarging() float64 {
	total := 0.0
	for _, storage := range r.storageUnits {
		for _, output := range r.storageOutput[storage.Name()] {
			if output > 0 {
				total += output
			}
		}
	}
	return total
}

// ComputeTotalDump returns the total surplus energy left unabsorbed by storage
// and export, as a positive number.
func (r *ScenarioRun) ComputeTotalDump() float64 {
	total := 0.0
	for _, shortage := range r.shortage {
		if shortage < 0 {
			total -= shortage
		}
	}
	return total
}

// ComputeTotalExport returns the total exported energy as a positive number.
func (r *ScenarioRun) ComputeTotalExport() float64 {
	total := 0.0
	for _, netImport := range r.netImport {
		if netImport < 0 {
			total -= netImport
		}
	}
	return total
}

// ComputeTotalImport returns the total imported energy.
func (r *ScenarioRun) ComputeTotalImport() float64 {
	total := 0.0
	for _, netImport := range r.netImport {
		if netImport > 0 {
			total += netImport
		}
	}
	return total
}

// ComputeTotalShortage returns the total unmet load over the run.
func (r *ScenarioRun) ComputeTotalShortage() float64 {
	total := 0.0
	for _, shortage := range r.shortage {
		if shortage > 0 {
			total += shortage
		}
	}
	return total
}

// CountChargingSteps returns the number of steps in which at least one storage
// unit was charging.
func (r *ScenarioRun) CountChargingSteps() int {
	count := 0
	for step := 0; step < r.steps; step++ {
		for _, output := range r.storageOutput {
			if output[step] < 0 {
				count++
				break
			}
		}
	}
	return count
}

// CountDischargingSteps returns the number of steps in which at least one
// storage unit was discharging.
func (r *ScenarioRun) CountDischargingSteps() int {
	count := 0
	for step := 0; step < r.steps; step++ {
		for _, output := range r.storageOutput {
			if output[step] > 0 {
				count++
				break
			}
		}
	}
	return count
}

// CountDumpSteps returns the number of steps with dumped surplus.
func (r *ScenarioRun) CountDumpSteps() int {
	count := 0
	for _, shortage := range r.shortage {
		if shortage < 0 {
			count++
		}
	}
	return count
}

// CountExportSteps returns the number of steps with net export.
func (r *ScenarioRun) CountExportSteps() int {
	count := 0
	for _, netImport := range r.netImport {
		if netImport < 0 {
			count++
		}
	}
	return count
}

// CountGenerationSteps returns the number of steps in which the named source
// generated power.
func (r *ScenarioRun) CountGenerationSteps(sourceName string) int {
	count := 0
	for _, generation := range r.sourceGeneration[sourceName] {
		if generation > 0 {
			count++
		}
	}
	return count
}

// CountImportSteps returns the number of steps with net import.
func (r *ScenarioRun) CountImportSteps() int {
	count := 0
	for _, netImport := range r.netImport {
		if netImport > 0 {
			count++
		}
	}
	return count
}

// CountShortageSteps returns the number of steps with unmet load.
func (r *ScenarioRun) CountShortageSteps() int {
	count := 0
	for _, shortage := range r.shortage {
		if shortage > 0 {
			count++
		}
	}
	return count
}
