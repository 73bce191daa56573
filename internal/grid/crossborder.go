package grid

import "fmt"

// CrossBorderTerminal accounts for cross-border import and export of
// electricity through a single interconnection of bounded capacity. Only one
// direction is active within a step; a new request overwrites the previous
// step's value.
type CrossBorderTerminal struct {
	capacity  float64 // MW
	netImport float64 // MW, negative when export dominates
}

func NewCrossBorderTerminal(capacity float64) (*CrossBorderTerminal, error) {
	if capacity < 0 {
		return nil, fmt.Errorf("cross-border terminal capacity must be >= 0, got %v", capacity)
	}
	return &CrossBorderTerminal{capacity: capacity}, nil
}

// ExportAt requests export of at most power MW and returns the power actually
// exported. Panics if power is negative.
func (t *CrossBorderTerminal) ExportAt(power float64) float64 {
	if power < 0 {
		panic(fmt.Sprintf("cross-border terminal: negative export request %v", power))
	}
	t.netImport = -minFloat(t.capacity, power)
	return -t.netImport
}

// ImportAt requests import of at most power MW and returns the power actually
// imported. Panics if power is negative.
func (t *CrossBorderTerminal) ImportAt(power float64) float64 {
	if power < 0 {
		panic(fmt.Sprintf("cross-border terminal: negative import request %v", power))
	}
	t.netImport = minFloat(t.capacity, power)
	return t.netImport
}

// NetImport returns the net imported power for the current step. Negative
// values mean net export.
func (t *CrossBorderTerminal) NetImport() float64 { return t.netImport }
