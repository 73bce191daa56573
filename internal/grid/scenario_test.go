package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScenarioValidation(t *testing.T) {
	pv, err := NewNonDispatchableSource("pv", 2000, 0)
	require.NoError(t, err)

	t.Run("empty scenario", func(t *testing.T) {
		s, err := NewScenario(ScenarioConfig{})
		require.NoError(t, err)
		assert.Equal(t, 0, s.NumSteps())
	})

	t.Run("matching series", func(t *testing.T) {
		s, err := NewScenario(ScenarioConfig{
			Load: []float64{111, 132, 145},
			IntermittentSources: []IntermittentSource{
				{Source: pv, CapacityFactors: []float64{0, 0.5, 0.4}},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 3, s.NumSteps())
	})

	t.Run("wrong series dimensions", func(t *testing.T) {
		_, err := NewScenario(ScenarioConfig{
			Load: []float64{111, 132, 145},
			IntermittentSources: []IntermittentSource{
				{Source: pv, CapacityFactors: []float64{0, 0}},
			},
		})
		assert.Error(t, err)
	})

	t.Run("capacity factor out of range", func(t *testing.T) {
		_, err := NewScenario(ScenarioConfig{
			Load: []float64{111, 132, 145},
			IntermittentSources: []IntermittentSource{
				{Source: pv, CapacityFactors: []float64{0, 0.1, 50}},
			},
		})
		assert.Error(t, err)
	})

	t.Run("negative load", func(t *testing.T) {
		_, err := NewScenario(ScenarioConfig{Load: []float64{100, -1}})
		assert.Error(t, err)
	})

	t.Run("grid losses out of range", func(t *testing.T) {
		_, err := NewScenario(ScenarioConfig{GridLosses: 1})
		assert.Error(t, err)
		_, err = NewScenario(ScenarioConfig{GridLosses: -0.1})
		assert.Error(t, err)
	})
}

func TestScenarioBaseloadOnly(t *testing.T) {
	nuclear, err := NewNonDispatchableSource("nuclear", 1000, 0)
	require.NoError(t, err)

	scenario, err := NewScenario(ScenarioConfig{
		Load:            []float64{500, 1000, 1500},
		BaseloadSources: []*NonDispatchableSource{nuclear},
	})
	require.NoError(t, err)

	run := scenario.Run()

	assert.Equal(t, 3, run.Steps())
	assert.Equal(t, []float64{-500, 0, 500}, run.Shortages())
	assert.Equal(t, 500.0, run.ComputeTotalShortage())
	assert.Equal(t, 500.0, run.ComputeTotalDump())
	assert.Equal(t, 1, run.CountShortageSteps())
	assert.Equal(t, 1, run.CountDumpSteps())

	// The plant generates at full tilt throughout; the energy actually
	// consumed is generation minus dump.
	assert.InDelta(t, 3000, run.ComputeGeneration("nuclear"), 1e-9)
	assert.InDelta(t, 2500, run.ComputeGeneration("nuclear")-run.ComputeTotalDump(), 1e-9)
}

func TestScenarioSurplusChargesThenExportsThenDumps(t *testing.T) {
	nuclear, err := NewNonDispatchableSource("nuclear", 1000, 0)
	require.NoError(t, err)
	battery, err := NewEnergyStorage("battery", 300, 1000, 1)
	require.NoError(t, err)
	terminal, err := NewCrossBorderTerminal(200)
	require.NoError(t, err)
	gas, err := NewDispatchableSource("gas", 500, 0)
	require.NoError(t, err)

	scenario, err := NewScenario(ScenarioConfig{
		Load:            []float64{200},
		BaseloadSources: []*NonDispatchableSource{nuclear},
		FlexibleSources: []Dispatchable{gas},
		StorageUnits:    []*EnergyStorage{battery},
		CrossBorder:     terminal,
	})
	require.NoError(t, err)

	run := scenario.Run()

	// 800 MW surplus: 300 into storage, 200 exported, 300 dumped. The flexible
	// source is preempted.
	assert.Equal(t, []float64{-300}, run.StorageOutput("battery"))
	assert.Equal(t, []float64{-200}, run.NetImports())
	assert.Equal(t, []float64{-300}, run.Shortages())
	assert.Equal(t, []float64{0}, run.SourceGeneration("gas"))
	assert.Equal(t, 300.0, run.ComputeTotalCharging())
	assert.Equal(t, 200.0, run.ComputeTotalExport())
	assert.Equal(t, 1, run.CountChargingSteps())
	assert.Equal(t, 1, run.CountExportSteps())
}

func TestScenarioDeficitPriorityOrder(t *testing.T) {
	nuclear, err := NewNonDispatchableSource("nuclear", 500, 0)
	require.NoError(t, err)
	battery, err := NewEnergyStorage("battery", 300, 1000, 1)
	require.NoError(t, err)
	gas, err := NewDispatchableSource("gas", 400, 0)
	require.NoError(t, err)
	terminal, err := NewCrossBorderTerminal(100)
	require.NoError(t, err)

	scenario, err := NewScenario(ScenarioConfig{
		Load:            []float64{200, 1000, 1400},
		BaseloadSources: []*NonDispatchableSource{nuclear},
		FlexibleSources: []Dispatchable{gas},
		StorageUnits:    []*EnergyStorage{battery},
		CrossBorder:     terminal,
	})
	require.NoError(t, err)

	run := scenario.Run()

	// Step 1: 300 MW surplus charges the battery.
	// Step 2: 500 MW deficit; the battery empties first (300), gas covers the
	// rest (200).
	// Step 3: 900 MW deficit; the battery is empty, gas saturates (400),
	// import saturates (100), 400 MW of load goes unmet.
	assert.Equal(t, []float64{-300, 300, 0}, run.StorageOutput("battery"))
	assert.Equal(t, []float64{0, 200, 400}, run.SourceGeneration("gas"))
	assert.Equal(t, []float64{0, 0, 100}, run.NetImports())
	assert.Equal(t, []float64{0, 0, 400}, run.Shortages())
}

func TestScenarioShutsDownFlexiblesWhenStorageCoversDeficit(t *testing.T) {
	nuclear, err := NewNonDispatchableSource("nuclear", 500, 0)
	require.NoError(t, err)
	battery, err := NewEnergyStorage("battery", 500, 1000, 1)
	require.NoError(t, err)
	gas, err := NewDispatchableSource("gas", 400, 0)
	require.NoError(t, err)

	scenario, err := NewScenario(ScenarioConfig{
		Load:            []float64{100, 600},
		BaseloadSources: []*NonDispatchableSource{nuclear},
		FlexibleSources: []Dispatchable{gas},
		StorageUnits:    []*EnergyStorage{battery},
	})
	require.NoError(t, err)

	run := scenario.Run()

	// Step 2's 100 MW deficit is covered entirely by storage; gas receives no
	// demand and is shut down explicitly.
	assert.Equal(t, []float64{-400, 100}, run.StorageOutput("battery"))
	assert.Equal(t, []float64{0, 0}, run.SourceGeneration("gas"))
	assert.Equal(t, []float64{0, 0}, run.Shortages())
}

func TestScenarioIntermittentUtilisationPushed(t *testing.T) {
	pv, err := NewNonDispatchableSource("pv", 1000, 0)
	require.NoError(t, err)
	gas, err := NewDispatchableSource("gas", 2000, 0)
	require.NoError(t, err)

	scenario, err := NewScenario(ScenarioConfig{
		Load:            []float64{800, 800, 800},
		FlexibleSources: []Dispatchable{gas},
		IntermittentSources: []IntermittentSource{
			{Source: pv, CapacityFactors: []float64{0, 0.5, 1}},
		},
	})
	require.NoError(t, err)

	run := scenario.Run()

	assert.Equal(t, []float64{0, 500, 1000}, run.SourceGeneration("pv"))
	assert.Equal(t, []float64{800, 300, 0}, run.SourceGeneration("gas"))
	// Full PV exceeds the load at step 3; with nothing to absorb it, the
	// excess is dumped.
	assert.Equal(t, []float64{0, 0, -200}, run.Shortages())
}

func TestScenarioGridLossesInflateConsumption(t *testing.T) {
	gas, err := NewDispatchableSource("gas", 2000, 0)
	require.NoError(t, err)

	scenario, err := NewScenario(ScenarioConfig{
		Load:            []float64{1000},
		FlexibleSources: []Dispatchable{gas},
		GridLosses:      0.06,
	})
	require.NoError(t, err)

	run := scenario.Run()

	assert.InDelta(t, 1060, run.ComputeGeneration("gas"), 1e-9)
}

// Per-step energy balance: everything supplied (inflexible + flexible +
// discharging + import) plus the signed residual must equal gross consumption
// plus everything absorbed (charging + export).
func TestScenarioEnergyBalance(t *testing.T) {
	nuclear, err := NewNonDispatchableSource("nuclear", 2000, 0.05)
	require.NoError(t, err)
	pv, err := NewNonDispatchableSource("pv", 3000, 0)
	require.NoError(t, err)
	wind, err := NewNonDispatchableSource("wind", 1500, 0.02)
	require.NoError(t, err)
	hydro, err := NewDispatchableSource("hydro", 500, 0)
	require.NoError(t, err)
	gas, err := NewThermalPowerPlant("gas", 1200, 0.1, ThermalPlantParams{
		MinLoad:     0.3,
		MinDowntime: 2,
		MinUptime:   3,
		StartupTime: 2,
	})
	require.NoError(t, err)
	battery, err := NewEnergyStorage("battery", 800, 3000, 0.85)
	require.NoError(t, err)
	terminal, err := NewCrossBorderTerminal(600)
	require.NoError(t, err)

	load := []float64{2500, 3000, 4200, 5100, 4800, 2100, 1500, 900, 2400, 3900, 5000, 4400}
	sun := []float64{0, 0.1, 0.4, 0.7, 0.6, 0.3, 0.1, 0, 0, 0.2, 0.5, 0.3}
	breeze := []float64{0.5, 0.4, 0.2, 0.1, 0.3, 0.6, 0.8, 0.9, 0.7, 0.4, 0.2, 0.1}

	scenario, err := NewScenario(ScenarioConfig{
		Load:            load,
		BaseloadSources: []*NonDispatchableSource{nuclear},
		FlexibleSources: []Dispatchable{hydro, gas},
		IntermittentSources: []IntermittentSource{
			{Source: pv, CapacityFactors: sun},
			{Source: wind, CapacityFactors: breeze},
		},
		StorageUnits: []*EnergyStorage{battery},
		CrossBorder:  terminal,
		GridLosses:   0.05,
	})
	require.NoError(t, err)

	run := scenario.Run()
	require.Equal(t, len(load), run.Steps())

	for step := 0; step < run.Steps(); step++ {
		gross := load[step] * 1.05

		supplied := run.SourceGeneration("nuclear")[step] +
			run.SourceGeneration("pv")[step] +
			run.SourceGeneration("wind")[step] +
			run.SourceGeneration("hydro")[step] +
			run.SourceGeneration("gas")[step]

		output := run.StorageOutput("battery")[step]
		netImport := run.NetImports()[step]
		residual := run.Shortages()[step]

		absorbed := 0.0
		if output < 0 {
			absorbed -= output
		} else {
			supplied += output
		}
		if netImport < 0 {
			absorbed -= netImport
		} else {
			supplied += netImport
		}

		assert.InDeltaf(t, gross+absorbed, supplied+residual, 1e-6,
			"energy balance violated at step %d", step)
	}
}
