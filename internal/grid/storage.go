package grid

import (
	"errors"
	"fmt"
)

// EnergyStorage models the aggregate storage capacity of one kind of storage
// (pumped hydro, batteries, power-to-gas, ...) as a bounded energy reservoir
// behind a power-limited terminal.
//
// Sign convention for output: negative while charging, positive while
// discharging, zero when idle. Charging loses (1 - efficiency) of the absorbed
// energy; discharging withdraws stored energy one to one.
type EnergyStorage struct {
	name       string
	nominal    float64 // MW
	maxStorage float64 // MWh
	efficiency float64

	energy float64 // MWh currently stored
	output float64 // MW, grid side
}

func NewEnergyStorage(name string, nominal, maxStorage, efficiency float64) (*EnergyStorage, error) {
	if name == "" {
		return nil, errors.New("storage name must not be empty")
	}
	if nominal <= 0 {
		return nil, fmt.Errorf("storage %q: nominal capacity must be > 0", name)
	}
	if maxStorage <= 0 {
		return nil, fmt.Errorf("storage %q: maximum stored energy must be > 0", name)
	}
	if efficiency <= 0 || efficiency > 1 {
		return nil, fmt.Errorf("storage %q: charging efficiency must be in (0, 1]", name)
	}
	return &EnergyStorage{
		name:       name,
		nominal:    nominal,
		maxStorage: maxStorage,
		efficiency: efficiency,
	}, nil
}

func (s *EnergyStorage) Name() string { return s.name }

// Energy returns the amount of energy currently stored in MWh.
func (s *EnergyStorage) Energy() float64 { return s.energy }

// Output returns the current grid-side power of the unit in MW: negative when
// charging, positive when discharging.
func (s *EnergyStorage) Output() float64 { return s.output }

// RemainingCapacity returns the amount of storage capacity left in MWh.
func (s *EnergyStorage) RemainingCapacity() float64 {
	return s.maxStorage - s.energy
}

// FullyCharged reports whether the reservoir holds its maximum energy.
func (s *EnergyStorage) FullyCharged() bool {
	return s.energy >= s.maxStorage
}

// ChargeAt requests charging with at most power MW from the grid and returns
// the power actually absorbed. The request is limited by the unit's nominal
// power and by the grid-side power whose stored remainder exactly fills the
// reservoir. Panics if power is negative.
func (s *EnergyStorage) ChargeAt(power float64) float64 {
	if power < 0 {
		panic(fmt.Sprintf("storage %q: negative charging request %v", s.name, power))
	}
	charging := minFloat(power, s.nominal)
	charging = minFloat(charging, s.RemainingCapacity()/s.efficiency)

	s.energy += charging * s.efficiency
	if s.energy > s.maxStorage {
		// Guard against accumulation drift.
		s.energy = s.maxStorage
	}
	s.output = -charging
	return charging
}

// DischargeAt requests discharging of at most power MW into the grid and
// returns the power actually delivered, limited by nominal power and by the
// energy left in the reservoir. Panics if power is negative.
func (s *EnergyStorage) DischargeAt(power float64) float64 {
	if power < 0 {
		panic(fmt.Sprintf("storage %q: negative discharging request %v", s.name, power))
	}
	discharging := minFloat(power, s.nominal)
	discharging = minFloat(discharging, s.energy)

	s.energy -= discharging
	if s.energy < 0 {
		s.energy = 0
	}
	s.output = discharging
	return discharging
}
