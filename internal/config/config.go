package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/mgrabovsky/electric-waltz/internal/grid"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk scenario configuration shape (YAML). It describes the
// physical parameters of every resource in the grid; the load and
// capacity-factor time series come separately from a world-state file.
type Config struct {
	Name         string               `yaml:"name" json:"name"`
	Consumption  ConsumptionConfig    `yaml:"consumption" json:"consumption"`
	Baseload     []SourceConfig       `yaml:"baseload" json:"baseload"`
	Intermittent []IntermittentConfig `yaml:"intermittent" json:"intermittent"`
	Flexible     []FlexibleConfig     `yaml:"flexible" json:"flexible"`
	Storage      []StorageConfig      `yaml:"storage" json:"storage"`
	CrossBorder  *CrossBorderConfig   `yaml:"cross_border" json:"cross_border"`
}

// ConsumptionConfig holds the loss fractions applied on top of net load.
type ConsumptionConfig struct {
	TransmissionLoss float64 `yaml:"transmission_loss" json:"transmission_loss"`
	DistributionLoss float64 `yaml:"distribution_loss" json:"distribution_loss"`
}

// GridLosses returns the combined loss fraction.
func (c ConsumptionConfig) GridLosses() float64 {
	return c.TransmissionLoss + c.DistributionLoss
}

type SourceConfig struct {
	Name            string  `yaml:"name" json:"name"`
	NominalMW       float64 `yaml:"nominal_mw" json:"nominal_mw"`
	SelfConsumption float64 `yaml:"self_consumption" json:"self_consumption"`
}

// IntermittentConfig adds the name of the world-state column that drives the
// source's utilisation.
type IntermittentConfig struct {
	SourceConfig         `yaml:",inline"`
	CapacityFactorColumn string `yaml:"capacity_factor_column" json:"capacity_factor_column"`
}

// ThermalConfig holds the startup/shutdown dynamics of a thermal plant. A
// flexible source without this block follows dispatch requests instantly.
type ThermalConfig struct {
	MinLoad     float64 `yaml:"min_load" json:"min_load"`
	MinUptime   int     `yaml:"min_uptime" json:"min_uptime"`
	MinDowntime int     `yaml:"min_downtime" json:"min_downtime"`
	StartupTime int     `yaml:"startup_time" json:"startup_time"`
}

// FlexibleConfig describes one dispatchable source. The order of flexible
// sources in the config file is the merit order of dispatch.
type FlexibleConfig struct {
	SourceConfig `yaml:",inline"`
	Thermal      *ThermalConfig `yaml:"thermal" json:"thermal,omitempty"`
}

type StorageConfig struct {
	Name         string  `yaml:"name" json:"name"`
	PowerMW      float64 `yaml:"power_mw" json:"power_mw"`
	MaxEnergyMWh float64 `yaml:"max_energy_mwh" json:"max_energy_mwh"`
	Efficiency   float64 `yaml:"efficiency" json:"efficiency"`
}

type CrossBorderConfig struct {
	CapacityMW float64 `yaml:"capacity_mw" json:"capacity_mw"`
}

// Load reads and validates a scenario configuration file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}

// Parse decodes and validates a scenario configuration document.
func Parse(raw []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the configuration by constructing every grid object it
// describes, so the validity rules live in one place (the model).
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	seen := make(map[string]bool)
	checkName := func(name string) error {
		if seen[name] {
			return fmt.Errorf("duplicate resource name %q", name)
		}
		seen[name] = true
		return nil
	}

	for _, sc := range c.Baseload {
		if _, err := sc.ToSource(); err != nil {
			return fmt.Errorf("baseload config invalid: %w", err)
		}
		if err := checkName(sc.Name); err != nil {
			return err
		}
	}
	for _, ic := range c.Intermittent {
		if _, err := ic.ToSource(); err != nil {
			return fmt.Errorf("intermittent config invalid: %w", err)
		}
		if ic.CapacityFactorColumn == "" {
			return fmt.Errorf("intermittent source %q: capacity_factor_column is required", ic.Name)
		}
		if err := checkName(ic.Name); err != nil {
			return err
		}
	}
	for _, fc := range c.Flexible {
		if _, err := fc.ToSource(); err != nil {
			return fmt.Errorf("flexible config invalid: %w", err)
		}
		if err := checkName(fc.Name); err != nil {
			return err
		}
	}
	for _, st := range c.Storage {
		if _, err := st.ToStorage(); err != nil {
			return fmt.Errorf("storage config invalid: %w", err)
		}
		if err := checkName(st.Name); err != nil {
			return err
		}
	}
	if c.CrossBorder != nil {
		if _, err := c.CrossBorder.ToTerminal(); err != nil {
			return fmt.Errorf("cross-border config invalid: %w", err)
		}
	}

	losses := c.Consumption.GridLosses()
	if losses < 0 || losses >= 1 {
		return fmt.Errorf("combined grid losses must be in [0, 1), got %v", losses)
	}
	return nil
}

func (s SourceConfig) ToSource() (*grid.NonDispatchableSource, error) {
	return grid.NewNonDispatchableSource(s.Name, s.NominalMW, s.SelfConsumption)
}

func (s IntermittentConfig) ToSource() (*grid.NonDispatchableSource, error) {
	return grid.NewNonDispatchableSource(s.Name, s.NominalMW, s.SelfConsumption)
}

func (f FlexibleConfig) ToSource() (grid.Dispatchable, error) {
	if f.Thermal != nil {
		return grid.NewThermalPowerPlant(f.Name, f.NominalMW, f.SelfConsumption, grid.ThermalPlantParams{
			MinLoad:     f.Thermal.MinLoad,
			MinUptime:   f.Thermal.MinUptime,
			MinDowntime: f.Thermal.MinDowntime,
			StartupTime: f.Thermal.StartupTime,
		})
	}
	return grid.NewDispatchableSource(f.Name, f.NominalMW, f.SelfConsumption)
}

func (s StorageConfig) ToStorage() (*grid.EnergyStorage, error) {
	return grid.NewEnergyStorage(s.Name, s.PowerMW, s.MaxEnergyMWh, s.Efficiency)
}

func (c CrossBorderConfig) ToTerminal() (*grid.CrossBorderTerminal, error) {
	return grid.NewCrossBorderTerminal(c.CapacityMW)
}
