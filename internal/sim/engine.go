package sim

import (
	"errors"
	"fmt"
	"time"

	"github.com/mgrabovsky/electric-waltz/internal/config"
	"github.com/mgrabovsky/electric-waltz/internal/data"
	"github.com/mgrabovsky/electric-waltz/internal/grid"
)

// Engine assembles a scenario from a configuration and world-state data, runs
// it, and derives the ledger and summary from the collected statistics.
type Engine struct{}

func New() *Engine { return &Engine{} }

// Result bundles everything a run produced.
type Result struct {
	Run *grid.ScenarioRun

	// SourceNames and StorageNames fix the resource column order for the
	// ledger: baseload, then intermittent, then flexible in merit order.
	SourceNames    []string
	StorageNames   []string
	HasCrossBorder bool

	Ledger  []LedgerRow
	Summary Summary
	Elapsed time.Duration
}

// Run executes one scenario over the given world state.
func (e *Engine) Run(cfg *config.Config, world *data.World) (*Result, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if world == nil {
		return nil, errors.New("world is nil")
	}
	if world.Steps() == 0 {
		return nil, errors.New("world has no time steps")
	}

	baseloads := make([]*grid.NonDispatchableSource, 0, len(cfg.Baseload))
	for _, sc := range cfg.Baseload {
		source, err := sc.ToSource()
		if err != nil {
			return nil, fmt.Errorf("build baseload source: %w", err)
		}
		baseloads = append(baseloads, source)
	}

	intermittents := make([]grid.IntermittentSource, 0, len(cfg.Intermittent))
	for _, ic := range cfg.Intermittent {
		source, err := ic.ToSource()
		if err != nil {
			return nil, fmt.Errorf("build intermittent source: %w", err)
		}
		factors, err := world.CapacityFactors(ic.CapacityFactorColumn)
		if err != nil {
			return nil, fmt.Errorf("source %q: %w", ic.Name, err)
		}
		intermittents = append(intermittents, grid.IntermittentSource{
			Source:          source,
			CapacityFactors: factors,
		})
	}

	flexibles := make([]grid.Dispatchable, 0, len(cfg.Flexible))
	for _, fc := range cfg.Flexible {
		source, err := fc.ToSource()
		if err != nil {
			return nil, fmt.Errorf("build flexible source: %w", err)
		}
		flexibles = append(flexibles, source)
	}

	storages := make([]*grid.EnergyStorage, 0, len(cfg.Storage))
	for _, st := range cfg.Storage {
		storage, err := st.ToStorage()
		if err != nil {
			return nil, fmt.Errorf("build storage: %w", err)
		}
		storages = append(storages, storage)
	}

	var terminal *grid.CrossBorderTerminal
	if cfg.CrossBorder != nil {
		var err error
		terminal, err = cfg.CrossBorder.ToTerminal()
		if err != nil {
			return nil, fmt.Errorf("build cross-border terminal: %w", err)
		}
	}

	scenario, err := grid.NewScenario(grid.ScenarioConfig{
		Load:                world.Load,
		BaseloadSources:     baseloads,
		FlexibleSources:     flexibles,
		IntermittentSources: intermittents,
		StorageUnits:        storages,
		CrossBorder:         terminal,
		GridLosses:          cfg.Consumption.GridLosses(),
	})
	if err != nil {
		return nil, err
	}

	start := time.Now()
	run := scenario.Run()
	elapsed := time.Since(start)

	result := &Result{
		Run:            run,
		SourceNames:    sourceNames(cfg),
		StorageNames:   storageNames(cfg),
		HasCrossBorder: cfg.CrossBorder != nil,
		Elapsed:        elapsed,
	}
	result.Ledger = buildLedger(result)
	result.Summary = buildSummary(cfg, world, run)
	return result, nil
}

func sourceNames(cfg *config.Config) []string {
	names := make([]string, 0, len(cfg.Baseload)+len(cfg.Intermittent)+len(cfg.Flexible))
	for _, sc := range cfg.Baseload {
		names = append(names, sc.Name)
	}
	for _, ic := range cfg.Intermittent {
		names = append(names, ic.Name)
	}
	for _, fc := range cfg.Flexible {
		names = append(names, fc.Name)
	}
	return names
}

func storageNames(cfg *config.Config) []string {
	names := make([]string, 0, len(cfg.Storage))
	for _, st := range cfg.Storage {
		names = append(names, st.Name)
	}
	return names
}
