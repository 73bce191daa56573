package grid

import (
	"errors"
	"fmt"
)

// Source is the read side of any electricity-generating unit in the grid.
type Source interface {
	Name() string
	Generation() float64
	NetGeneration() float64
	Utilisation() float64
}

// Dispatchable is a source whose output can be adjusted by the balancing
// algorithm within a step.
type Dispatchable interface {
	Source

	// DispatchAt requests that the unit adjust its net generation to at most
	// power MW and returns the net generation actually realized. Panics if
	// power is negative.
	DispatchAt(power float64) float64

	// ShutDown forces the unit off immediately, regardless of any internal
	// constraints it might otherwise apply to a low dispatch request.
	ShutDown()
}

// PowerSource holds the physical parameters and utilisation state shared by
// every kind of power plant.
//
// Units:
// - nominal capacity: MW
// - self-consumption: fraction [0,1) of gross generation
// - utilisation: fraction [0,1] of nominal capacity
type PowerSource struct {
	name            string
	nominal         float64
	selfConsumption float64
	utilisation     float64
}

func newPowerSource(name string, nominal, selfConsumption float64) (PowerSource, error) {
	if name == "" {
		return PowerSource{}, errors.New("source name must not be empty")
	}
	if nominal <= 0 {
		return PowerSource{}, fmt.Errorf("source %q: nominal capacity must be > 0", name)
	}
	if selfConsumption < 0 || selfConsumption >= 1 {
		return PowerSource{}, fmt.Errorf("source %q: self-consumption must be in [0, 1)", name)
	}
	return PowerSource{
		name:            name,
		nominal:         nominal,
		selfConsumption: selfConsumption,
		// Baseload sources are never dispatched, so they construct at full
		// output.
		utilisation: 1,
	}, nil
}

func (s *PowerSource) Name() string { return s.name }

// Nominal returns the nameplate capacity of the source in MW.
func (s *PowerSource) Nominal() float64 { return s.nominal }

// Generation returns gross power generation in MW, i.e. nominal capacity
// times the current capacity factor.
func (s *PowerSource) Generation() float64 {
	return s.utilisation * s.nominal
}

// NetGeneration returns gross generation minus the source's own consumption.
func (s *PowerSource) NetGeneration() float64 {
	return s.Generation() * (1 - s.selfConsumption)
}

func (s *PowerSource) Utilisation() float64 { return s.utilisation }

// maxNetPower is the net generation at full utilisation.
func (s *PowerSource) maxNetPower() float64 {
	return s.nominal * (1 - s.selfConsumption)
}

func (s *PowerSource) setUtilisation(value float64) {
	if value < 0 || value > 1 {
		panic(fmt.Sprintf("source %q: utilisation %v out of [0, 1]", s.name, value))
	}
	s.utilisation = value
}

// NonDispatchableSource is an inflexible power plant. Its utilisation is
// pushed in each step by the simulation driver (typically from a weather-driven
// capacity-factor series); the balancing algorithm never dispatches it.
type NonDispatchableSource struct {
	PowerSource
}

func NewNonDispatchableSource(name string, nominal, selfConsumption float64) (*NonDispatchableSource, error) {
	base, err := newPowerSource(name, nominal, selfConsumption)
	if err != nil {
		return nil, err
	}
	return &NonDispatchableSource{PowerSource: base}, nil
}

// SetUtilisation pushes a new capacity factor into the source. Panics if value
// is outside [0, 1].
func (s *NonDispatchableSource) SetUtilisation(value float64) {
	s.setUtilisation(value)
}

// DispatchableSource is a flexible power plant with no start-up dynamics; it
// follows any dispatch request within its capacity immediately.
type DispatchableSource struct {
	PowerSource
}

func NewDispatchableSource(name string, nominal, selfConsumption float64) (*DispatchableSource, error) {
	base, err := newPowerSource(name, nominal, selfConsumption)
	if err != nil {
		return nil, err
	}
	return &DispatchableSource{PowerSource: base}, nil
}

// DispatchAt adjusts generation to at most power MW net, or to the maximum
// capacity if power exceeds it, and returns the realized net generation.
func (s *DispatchableSource) DispatchAt(power float64) float64 {
	if power < 0 {
		panic(fmt.Sprintf("source %q: negative dispatch request %v", s.name, power))
	}
	// Cap the capacity factor at 1.0 explicitly; the division may overshoot
	// slightly after ordinary floating-point manipulations.
	s.utilisation = minFloat(power/s.maxNetPower(), 1)
	return s.NetGeneration()
}

// ShutDown turns off all generation.
func (s *DispatchableSource) ShutDown() {
	s.utilisation = 0
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
