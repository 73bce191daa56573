package grid

import "fmt"

// plantState tags the operating mode of a thermal plant. The meaning of the
// accompanying counter depends on the tag: steps spent shut down, steps into
// the startup ramp, or steps spent running.
type plantState int

const (
	plantShutDown plantState = iota
	plantStartingUp
	plantRunning
)

// ThermalPlantParams describes the commitment dynamics of a thermal plant on
// top of the usual source parameters.
type ThermalPlantParams struct {
	// MinLoad is the fraction of nominal capacity below which the plant will
	// not commit, in [0, 1].
	MinLoad float64
	// MinDowntime is the number of steps the plant must stay off before it may
	// start again.
	MinDowntime int
	// MinUptime is the number of steps the plant must stay committed before a
	// low dispatch request may shut it down.
	MinUptime int
	// StartupTime is the number of steps needed to ramp from cold to MinLoad.
	StartupTime int
}

// ThermalPowerPlant is a dispatchable source with startup and shutdown
// dynamics: it refuses requests below its minimum load, takes several steps to
// ramp up from cold, and honours minimum uptime and downtime constraints.
type ThermalPowerPlant struct {
	PowerSource
	params ThermalPlantParams

	state   plantState
	counter int
}

func NewThermalPowerPlant(name string, nominal, selfConsumption float64, params ThermalPlantParams) (*ThermalPowerPlant, error) {
	base, err := newPowerSource(name, nominal, selfConsumption)
	if err != nil {
		return nil, err
	}
	if params.MinLoad < 0 || params.MinLoad > 1 {
		return nil, fmt.Errorf("plant %q: minimum load must be in [0, 1]", name)
	}
	if params.MinDowntime < 0 || params.MinUptime < 0 || params.StartupTime < 0 {
		return nil, fmt.Errorf("plant %q: uptime/downtime/startup step counts must be >= 0", name)
	}
	base.utilisation = 0
	return &ThermalPowerPlant{
		PowerSource: base,
		params:      params,
		// Constructed already eligible to start.
		state:   plantShutDown,
		counter: params.MinDowntime,
	}, nil
}

// minLoadThreshold is the gross power below which a request does not justify
// keeping the plant committed.
func (p *ThermalPowerPlant) minLoadThreshold() float64 {
	return p.params.MinLoad * p.nominal
}

// holdAtMinLoad pins utilisation to the net-power equivalent of minimum load.
func (p *ThermalPowerPlant) holdAtMinLoad() {
	p.utilisation = minFloat(p.params.MinLoad/(1-p.selfConsumption), 1)
}

// DispatchAt advances the plant's state machine by one step in response to a
// request for at most power MW net, and returns the realized net generation.
// Panics if power is negative.
func (p *ThermalPowerPlant) DispatchAt(power float64) float64 {
	if power < 0 {
		panic(fmt.Sprintf("plant %q: negative dispatch request %v", p.name, power))
	}

	switch p.state {
	case plantShutDown:
		if power < p.minLoadThreshold() || p.counter < p.params.MinDowntime {
			// Not worth starting, or still cooling down.
			p.counter++
			p.utilisation = 0
			break
		}
		if p.params.StartupTime > 0 {
			p.state = plantStartingUp
			p.counter = 0
			p.utilisation = 0
		} else {
			p.state = plantRunning
			p.counter = 1
			p.utilisation = minFloat(power/p.maxNetPower(), 1)
		}

	case plantStartingUp:
		p.counter++
		if p.counter < p.params.StartupTime {
			// Linear ramp towards the net-power equivalent of minimum load.
			ramp := float64(p.counter) / float64(p.params.StartupTime)
			p.utilisation = minFloat(ramp*p.params.MinLoad/(1-p.selfConsumption), 1)
			break
		}
		// Ramp complete; the plant commits this step.
		p.state = plantRunning
		p.counter = 1
		if power < p.minLoadThreshold() {
			if p.params.MinUptime == 0 {
				p.shutDownNaturally()
			} else {
				p.holdAtMinLoad()
			}
		} else {
			p.utilisation = minFloat(power/p.maxNetPower(), 1)
		}

	case plantRunning:
		p.counter++
		if power < p.minLoadThreshold() {
			if p.counter >= p.params.MinUptime {
				p.shutDownNaturally()
			} else {
				p.holdAtMinLoad()
			}
		} else {
			p.utilisation = minFloat(power/p.maxNetPower(), 1)
		}
	}

	return p.NetGeneration()
}

// shutDownNaturally is the demand-driven shutdown path, taken once the
// minimum-uptime constraint allows it.
func (p *ThermalPowerPlant) shutDownNaturally() {
	p.state = plantShutDown
	p.counter = 1
	p.utilisation = 0
}

// ShutDown forces the plant off from any state, bypassing the minimum-uptime
// rule. Used by merit-order preemption when inflexible supply already covers
// demand.
func (p *ThermalPowerPlant) ShutDown() {
	p.state = plantShutDown
	p.counter = 1
	p.utilisation = 0
}
