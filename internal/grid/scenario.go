package grid

import "fmt"

// IntermittentSource pairs an inflexible source with the capacity-factor time
// series that drives its utilisation, one value per load step.
type IntermittentSource struct {
	Source          *NonDispatchableSource
	CapacityFactors []float64
}

// ScenarioConfig describes the full resource fleet and load of a scenario.
// The position of a source in FlexibleSources is its merit order: the first
// source is dispatched first whenever flexible generation is needed.
type ScenarioConfig struct {
	// Load is the time series of net load in MW, one value per step.
	Load []float64

	BaseloadSources     []*NonDispatchableSource
	FlexibleSources     []Dispatchable
	IntermittentSources []IntermittentSource
	StorageUnits        []*EnergyStorage

	// CrossBorder is an optional single export/import facility.
	CrossBorder *CrossBorderTerminal

	// GridLosses is the transmission and distribution loss as a portion of net
	// load, in [0, 1).
	GridLosses float64
}

// Scenario owns a resource fleet and advances the per-step balancing algorithm
// over the whole load time series. The dispatch priority within a step is
// fixed: inflexible generation, then storage, then flexible sources in merit
// order, then cross-border exchange.
type Scenario struct {
	cfg ScenarioConfig

	flexibles *SourceDispatcher
	storages  *StorageDispatcher
}

func NewScenario(cfg ScenarioConfig) (*Scenario, error) {
	if cfg.GridLosses < 0 || cfg.GridLosses >= 1 {
		return nil, fmt.Errorf("grid losses must be in [0, 1), got %v", cfg.GridLosses)
	}
	for i, load := range cfg.Load {
		if load < 0 {
			return nil, fmt.Errorf("load must be non-negative, got %v at step %d", load, i)
		}
	}
	for _, is := range cfg.IntermittentSources {
		if len(is.CapacityFactors) != len(cfg.Load) {
			return nil, fmt.Errorf(
				"wrong dimensions of capacity-factor time series for %q: expected %d values, got %d",
				is.Source.Name(), len(cfg.Load), len(is.CapacityFactors))
		}
		for i, f := range is.CapacityFactors {
			if f < 0 || f > 1 {
				return nil, fmt.Errorf(
					"invalid capacity factor %v for %q at step %d: must be in [0, 1]",
					f, is.Source.Name(), i)
			}
		}
	}

	return &Scenario{
		cfg:       cfg,
		flexibles: NewSourceDispatcher(cfg.FlexibleSources),
		storages:  NewStorageDispatcher(cfg.StorageUnits),
	}, nil
}

// NumSteps returns the number of discrete time steps in the scenario.
func (s *Scenario) NumSteps() int { return len(s.cfg.Load) }

// Run runs the scenario over the whole load time series and returns the
// collected per-step statistics.
func (s *Scenario) Run() *ScenarioRun {
	sources := make([]Source, 0,
		len(s.cfg.BaseloadSources)+len(s.cfg.IntermittentSources)+len(s.cfg.FlexibleSources))
	for _, src := range s.cfg.BaseloadSources {
		sources = append(sources, src)
	}
	for _, is := range s.cfg.IntermittentSources {
		sources = append(sources, is.Source)
	}
	for _, src := range s.cfg.FlexibleSources {
		sources = append(sources, src)
	}

	stats := NewScenarioRun(sources, s.cfg.StorageUnits, s.cfg.CrossBorder)

	for i := range s.cfg.Load {
		grossConsumption := s.cfg.Load[i] * (1 + s.cfg.GridLosses)

		// Pass the current capacity factors down to the intermittent sources.
		for _, is := range s.cfg.IntermittentSources {
			is.Source.SetUtilisation(is.CapacityFactors[i])
		}

		shortage := s.step(grossConsumption)
		stats.Sweep(shortage)
	}

	return stats
}

// step balances one time step and returns the residual: the amount of load not
// met by the grid (positive shortage) or the excess generation left unconsumed
// (negative dump).
func (s *Scenario) step(consumption float64) float64 {
	// Net power generated by inflexible sources (baseload + intermittents).
	inflexibleGeneration := 0.0
	for _, src := range s.cfg.BaseloadSources {
		inflexibleGeneration += src.NetGeneration()
	}
	for _, is := range s.cfg.IntermittentSources {
		inflexibleGeneration += is.Source.NetGeneration()
	}

	if inflexibleGeneration >= consumption {
		// Inflexible supply alone covers demand; preemptively turn off the
		// flexible sources.
		s.flexibles.ShutDownAll()

		surplus := inflexibleGeneration - consumption

		charging := s.storages.ChargeAt(surplus)
		// The subtraction may underflow slightly; clamp it.
		surplus = maxFloat(0, surplus-charging)

		exportPower := 0.0
		if s.cfg.CrossBorder != nil {
			exportPower = s.cfg.CrossBorder.ExportAt(surplus)
		}
		// Whatever neither storage nor export absorbed is dumped.
		return -maxFloat(0, surplus-exportPower)
	}

	deficit := consumption - inflexibleGeneration

	discharging := s.storages.DischargeAt(deficit)
	deficit = maxFloat(0, deficit-discharging)

	if deficit > 0 {
		flexibleGeneration := s.flexibles.DispatchAt(deficit)
		deficit = maxFloat(0, deficit-flexibleGeneration)
	} else {
		// No demand for flexible generation this step.
		s.flexibles.ShutDownAll()
	}

	importPower := 0.0
	if s.cfg.CrossBorder != nil {
		importPower = s.cfg.CrossBorder.ImportAt(deficit)
	}
	return maxFloat(0, deficit-importPower)
}
