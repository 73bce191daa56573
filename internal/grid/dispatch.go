package grid

import "fmt"

// SourceDispatcher applies a fixed merit-order policy across a list of
// dispatchable sources. The order of units in the list is the merit order: the
// first unit is asked to cover the full residual demand, the next one whatever
// remains, and so on.
type SourceDispatcher struct {
	units []Dispatchable
}

func NewSourceDispatcher(units []Dispatchable) *SourceDispatcher {
	return &SourceDispatcher{units: units}
}

// DispatchAt requests a total of power MW net generation across all units and
// returns the aggregate net generation realized. Panics if power is negative.
func (d *SourceDispatcher) DispatchAt(power float64) float64 {
	if power < 0 {
		panic(fmt.Sprintf("source dispatcher: negative dispatch request %v", power))
	}
	generation := 0.0
	for _, unit := range d.units {
		generation += unit.DispatchAt(maxFloat(0, power-generation))
	}
	return generation
}

// ShutDownAll unconditionally shuts down every unit.
func (d *SourceDispatcher) ShutDownAll() {
	for _, unit := range d.units {
		unit.ShutDown()
	}
}

// NetGeneration returns the current aggregate net generation of all units.
func (d *SourceDispatcher) NetGeneration() float64 {
	total := 0.0
	for _, unit := range d.units {
		total += unit.NetGeneration()
	}
	return total
}

// StorageDispatcher spreads charge and discharge requests over a list of
// storage units in the given order, chasing the residual in the same way as
// the source dispatcher.
type StorageDispatcher struct {
	units []*EnergyStorage
}

func NewStorageDispatcher(units []*EnergyStorage) *StorageDispatcher {
	return &StorageDispatcher{units: units}
}

// ChargeAt tries to charge the units with a total of power MW and returns the
// aggregate charging power absorbed. Panics if power is negative.
func (d *StorageDispatcher) ChargeAt(power float64) float64 {
	if power < 0 {
		panic(fmt.Sprintf("storage dispatcher: negative charging request %v", power))
	}
	charging := 0.0
	for _, unit := range d.units {
		charging += unit.ChargeAt(maxFloat(0, power-charging))
	}
	return charging
}

// DischargeAt tries to discharge up to power MW from the units and returns the
// aggregate discharging power delivered. Panics if power is negative.
func (d *StorageDispatcher) DischargeAt(power float64) float64 {
	if power < 0 {
		panic(fmt.Sprintf("storage dispatcher: negative discharging request %v", power))
	}
	discharging := 0.0
	for _, unit := range d.units {
		discharging += unit.DischargeAt(maxFloat(0, power-discharging))
	}
	return discharging
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
