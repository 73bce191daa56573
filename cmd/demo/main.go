package main

import (
	"flag"
	"fmt"
	"math"

	"github.com/mgrabovsky/electric-waltz/internal/config"
	"github.com/mgrabovsky/electric-waltz/internal/data"
	"github.com/mgrabovsky/electric-waltz/internal/sim"
)

// Demo:
// - Build a small scenario in code: nuclear baseload, solar, a gas plant with
//   commitment constraints, a battery and a cross-border link
// - Run it over one synthetic day of load
// - Print the per-step ledger to show how the pieces fit together
func main() {
	n := flag.Int("n", 24, "Number of steps to simulate")
	outCSV := flag.String("out", "", "Optional path to write ledger CSV (e.g. results/output.csv)")
	flag.Parse()

	cfg := &config.Config{
		Name: "demo day",
		Baseload: []config.SourceConfig{
			{Name: "nuclear", NominalMW: 1000, SelfConsumption: 0.05},
		},
		Intermittent: []config.IntermittentConfig{
			{
				SourceConfig:         config.SourceConfig{Name: "pv", NominalMW: 1200},
				CapacityFactorColumn: "solar_util",
			},
		},
		Flexible: []config.FlexibleConfig{
			{
				SourceConfig: config.SourceConfig{Name: "gas", NominalMW: 800},
				Thermal: &config.ThermalConfig{
					MinLoad:     0.3,
					MinUptime:   3,
					MinDowntime: 2,
					StartupTime: 1,
				},
			},
		},
		Storage: []config.StorageConfig{
			{Name: "battery", PowerMW: 300, MaxEnergyMWh: 1200, Efficiency: 0.9},
		},
		CrossBorder: &config.CrossBorderConfig{CapacityMW: 400},
	}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	world := syntheticDay(*n)

	res, err := sim.New().Run(cfg, world)
	if err != nil {
		panic(err)
	}

	fmt.Printf("Scenario %q over %d steps\n\n", cfg.Name, world.Steps())
	for _, r := range res.Ledger {
		fmt.Printf(
			"%02d:00  load=%7.1f  nuclear=%7.1f  pv=%7.1f  gas=%7.1f  battery=%7.1f  import=%7.1f  shortage=%7.1f\n",
			r.Index,
			world.Load[r.Index],
			r.Sources["nuclear"],
			r.Sources["pv"],
			r.Sources["gas"],
			r.Storage["battery"],
			r.NetImport,
			r.Shortage,
		)
	}

	if *outCSV != "" {
		if err := sim.WriteLedgerCSV(*outCSV, res); err != nil {
			panic(err)
		}
		fmt.Printf("\nWrote CSV: %s\n", *outCSV)
	}

	s := res.Summary
	fmt.Printf("\nDone. Generation=%.0f MWh  Import balance=%.0f MWh  Shortage=%.0f MWh\n",
		s.TotalGenerationMWh, s.ImportBalanceMWh, s.ShortageMWh)
}

// syntheticDay fabricates a single day of hourly load with a morning and an
// evening peak, plus a midday solar bell curve.
func syntheticDay(steps int) *data.World {
	world := &data.World{Series: map[string][]float64{"solar_util": nil}}
	for h := 0; h < steps; h++ {
		hour := float64(h % 24)
		load := 1400 +
			400*math.Sin((hour-6)/24*2*math.Pi) +
			300*math.Exp(-math.Pow(hour-19, 2)/8)
		world.Load = append(world.Load, load)

		solar := math.Exp(-math.Pow(hour-13, 2) / 12)
		if hour < 6 || hour > 20 {
			solar = 0
		}
		world.Series["solar_util"] = append(world.Series["solar_util"], solar)
	}
	return world
}
