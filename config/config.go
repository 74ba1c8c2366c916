package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete simulation configuration
type Config struct {
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`
	Journal    JournalConfig    `json:"journal" yaml:"journal"`
	Log        LogConfig        `json:"log" yaml:"log"`
}

// SimulationConfig contains the parameters of one run
type SimulationConfig struct {
	Symbol           string  `json:"symbol" yaml:"symbol"`
	DataFile         string  `json:"data_file" yaml:"data_file"`
	StartDate        string  `json:"start_date" yaml:"start_date"` // YYYY-MM-DD
	PeriodDays       int     `json:"period_days" yaml:"period_days"`
	InitialCash      float64 `json:"initial_cash" yaml:"initial_cash"`
	TradeNotional    float64 `json:"trade_notional" yaml:"trade_notional"`
	MaxOpenPositions int     `json:"max_open_positions" yaml:"max_open_positions"`
}

// ParseStartDate converts the start date string to a time.Time
func (sc SimulationConfig) ParseStartDate() (time.Time, error) {
	s := strings.ReplaceAll(sc.StartDate, "/", "-")
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad start_date %q: %w", sc.StartDate, err)
	}
	return t, nil
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "csv", "sqlite" or "none"
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	EquityFile string `json:"equity_file,omitempty" yaml:"equity_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LogConfig contains logging parameters
type LogConfig struct {
	Level string `json:"level" yaml:"level"`
	File  string `json:"file,omitempty" yaml:"file,omitempty"`
}

// LoadFromFile loads configuration from a file (JSON or YAML based on content)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Simulation.Symbol == "" {
		return fmt.Errorf("simulation.symbol is required")
	}
	if c.Simulation.DataFile == "" {
		return fmt.Errorf("simulation.data_file is required")
	}
	if _, err := c.Simulation.ParseStartDate(); err != nil {
		return err
	}
	if c.Simulation.PeriodDays <= 0 {
		return fmt.Errorf("simulation.period_days must be positive")
	}
	if c.Simulation.InitialCash <= 0 {
		return fmt.Errorf("simulation.initial_cash must be positive")
	}
	if c.Simulation.TradeNotional <= 0 {
		return fmt.Errorf("simulation.trade_notional must be positive")
	}
	if c.Simulation.MaxOpenPositions < 1 {
		return fmt.Errorf("simulation.max_open_positions must be at least 1")
	}
	switch c.Journal.Type {
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.EquityFile == "" {
			return fmt.Errorf("journal trades_file and equity_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	case "none", "":
	default:
		return fmt.Errorf("journal.type must be 'csv', 'sqlite' or 'none'")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			Symbol:           "7203",
			DataFile:         "./data/7203.csv",
			StartDate:        "2024-01-04",
			PeriodDays:       60,
			InitialCash:      1000000,
			TradeNotional:    200000,
			MaxOpenPositions: 8,
		},
		Journal: JournalConfig{
			Type:       "csv",
			TradesFile: "./trades.csv",
			EquityFile: "./equity.csv",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
