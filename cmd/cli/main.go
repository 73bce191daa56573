package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mgrabovsky/electric-waltz/internal/config"
	"github.com/mgrabovsky/electric-waltz/internal/data"
	"github.com/mgrabovsky/electric-waltz/internal/sim"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "simulate":
		cmdSimulate(os.Args[2:])
	case "validate":
		cmdValidate(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli simulate --config examples/scenarios/cz-2030.yaml --world examples/datasets/world.csv --out results/output.csv")
	fmt.Println("  cli validate --config examples/scenarios/cz-2030.yaml")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - simulate prints an energy accounting report and optionally writes a per-step CSV ledger")
	fmt.Println("  - validate checks a scenario configuration without running it")
}

func cmdSimulate(args []string) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML scenario config")
	worldPath := fs.String("world", "", "Path to world-state CSV")
	year := fs.Int("year", 0, "Optional: restrict the world data to a single year")
	outPath := fs.String("out", "", "Optional: output CSV path for the per-step ledger")
	n := fs.Int("n", 0, "Optional: limit to first N steps (0=all)")
	_ = fs.Parse(args)

	if *cfgPath == "" || *worldPath == "" {
		fmt.Println("--config and --world are required")
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}

	world, err := data.LoadWorldCSV(*worldPath)
	if err != nil {
		panic(err)
	}
	if *year != 0 {
		world, err = world.FilterYear(*year)
		if err != nil {
			panic(err)
		}
	}
	if *n > 0 {
		world = world.Limit(*n)
	}

	res, err := sim.New().Run(cfg, world)
	if err != nil {
		panic(err)
	}

	printReport(res)

	if *outPath != "" {
		if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
			panic(err)
		}
		if err := sim.WriteLedgerCSV(*outPath, res); err != nil {
			panic(err)
		}
		fmt.Printf("Model output written to %q\n", *outPath)
	}

	fmt.Printf("Calculation took %.1f ms\n", float64(res.Elapsed.Microseconds())/1000)
}

func cmdValidate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML scenario config")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Printf("Configuration invalid: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Configuration OK: %s\n", cfg.Name)
	fmt.Printf("  baseload sources:     %d\n", len(cfg.Baseload))
	fmt.Printf("  intermittent sources: %d\n", len(cfg.Intermittent))
	fmt.Printf("  flexible sources:     %d\n", len(cfg.Flexible))
	fmt.Printf("  storage units:        %d\n", len(cfg.Storage))
	if cfg.CrossBorder != nil {
		fmt.Printf("  cross-border:         %.0f MW\n", cfg.CrossBorder.CapacityMW)
	}
}

// printReport writes the energy accounting of a finished run to stdout.
func printReport(res *sim.Result) {
	s := res.Summary

	inflexible := make([]sim.SourceTotal, 0, len(s.Baseload)+len(s.Intermittent))
	inflexible = append(inflexible, s.Baseload...)
	inflexible = append(inflexible, s.Intermittent...)

	fmt.Printf("%-29s%12.0f MWh\n", "Total net generation", s.TotalGenerationMWh)
	fmt.Printf("%-29s%12.0f\n", "├─ Total inflexible", s.InflexibleGenerationMWh)
	printSourceGroup(inflexible, "│  ")
	fmt.Printf("%-29s%12.0f\n", "└─ Total flexible", s.FlexibleGenerationMWh)
	printSourceGroup(s.Flexible, "   ")

	fmt.Printf("\n%-29s%12.0f MWh %6d hrs\n", "Total charging consumption", s.ChargingMWh, s.ChargingSteps)
	fmt.Printf("%-29s%12.0f     %6d hrs\n", "Total discharging", s.DischargingMWh, s.DischargingSteps)

	fmt.Printf("\n%-29s%12.0f     %6d hrs\n", "Total export", s.ExportMWh, s.ExportSteps)
	fmt.Printf("%-29s%12.0f     %6d hrs\n", "Total import", s.ImportMWh, s.ImportSteps)
	fmt.Printf("%-29s%12.0f\n", "Import balance", s.ImportBalanceMWh)

	fmt.Printf("\n%-29s%12.0f     %6d hrs\n", "Total surplus/dump", s.DumpMWh, s.DumpSteps)
	fmt.Printf("%-29s%12.0f     %6d hrs\n", "Total shortage (EENS/LOLE)", s.ShortageMWh, s.ShortageSteps)

	fmt.Printf("\n%-29s%12.0f MWh\n\n", "Total net consumption", s.NetConsumptionMWh)
}

func printSourceGroup(sources []sim.SourceTotal, prefix string) {
	for i, source := range sources {
		glyph := "├─"
		if i == len(sources)-1 {
			glyph = "└─"
		}
		fmt.Printf("%-29s%12.0f\n", fmt.Sprintf("%s%s %s", prefix, glyph, source.Name), source.EnergyMWh)
	}
}
