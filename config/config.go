// Package config loads and validates run configuration from YAML or JSON.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/backsim/strategies"
)

// Config represents a complete backtest run configuration.
type Config struct {
	Account  AccountConfig  `json:"account" yaml:"account"`
	Strategy StrategyConfig `json:"strategy" yaml:"strategy"`
	Data     DataConfig     `json:"data" yaml:"data"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
}

// AccountConfig contains account initialization parameters.
type AccountConfig struct {
	InitialCapital float64 `json:"initial_capital" yaml:"initial_capital"`
	Commission     float64 `json:"commission" yaml:"commission"` // fractional, per leg
}

// StrategyConfig names the strategy variant and carries both variant
// parameter blocks; only the named one is used.
type StrategyConfig struct {
	Name          string                         `json:"name" yaml:"name"`
	Crossover     strategies.CrossoverConfig     `json:"crossover" yaml:"crossover"`
	MeanReversion strategies.MeanReversionConfig `json:"mean_reversion" yaml:"mean_reversion"`
}

// DataConfig selects the bar source: a CSV dataset or synthetic bars.
type DataConfig struct {
	CSV       string           `json:"csv,omitempty" yaml:"csv,omitempty"`
	Synthetic *SyntheticConfig `json:"synthetic,omitempty" yaml:"synthetic,omitempty"`
}

// SyntheticConfig parameterizes the seeded random-walk generator.
type SyntheticConfig struct {
	Bars       int     `json:"bars" yaml:"bars"`
	Seed       int64   `json:"seed" yaml:"seed"`
	StartPrice float64 `json:"start_price" yaml:"start_price"`
}

// JournalConfig contains journaling parameters.
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	EquityFile string `json:"equity_file,omitempty" yaml:"equity_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile loads configuration from a file (YAML or JSON based on
// content) and validates it.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if err2 := json.Unmarshal(data, cfg); err2 != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration before any bar is processed; an error
// here aborts the run.
func (c *Config) Validate() error {
	if c.Account.InitialCapital <= 0 {
		return fmt.Errorf("account.initial_capital must be positive, got %v", c.Account.InitialCapital)
	}
	if c.Account.Commission < 0 || c.Account.Commission >= 1 {
		return fmt.Errorf("account.commission must be in [0,1), got %v", c.Account.Commission)
	}

	switch strings.ToLower(strings.TrimSpace(c.Strategy.Name)) {
	case "noop", "none":
	case "crossover", "sma-cross":
		if err := c.Strategy.Crossover.Validate(); err != nil {
			return err
		}
	case "mean-reversion", "meanrev":
		if err := c.Strategy.MeanReversion.Validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown strategy %q", c.Strategy.Name)
	}

	if c.Data.CSV == "" && c.Data.Synthetic == nil {
		return fmt.Errorf("data: either csv or synthetic is required")
	}
	if c.Data.CSV != "" && c.Data.Synthetic != nil {
		return fmt.Errorf("data: csv and synthetic are mutually exclusive")
	}
	if s := c.Data.Synthetic; s != nil {
		if s.Bars <= 0 {
			return fmt.Errorf("data.synthetic.bars must be positive, got %d", s.Bars)
		}
		if s.StartPrice < 0 {
			return fmt.Errorf("data.synthetic.start_price must not be negative, got %v", s.StartPrice)
		}
	}

	switch c.Journal.Type {
	case "", "none":
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.EquityFile == "" {
			return fmt.Errorf("journal trades_file and equity_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}

	return nil
}

// Default returns a configuration with sensible defaults: the stock
// crossover over a year of synthetic data, no journaling.
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			InitialCapital: 10_000,
			Commission:     0.001,
		},
		Strategy: StrategyConfig{
			Name:          "crossover",
			Crossover:     strategies.CrossoverDefaults(),
			MeanReversion: strategies.MeanReversionDefaults(),
		},
		Data: DataConfig{
			Synthetic: &SyntheticConfig{
				Bars:       365,
				Seed:       42,
				StartPrice: 100,
			},
		},
		Journal: JournalConfig{
			Type: "none",
		},
	}
}
