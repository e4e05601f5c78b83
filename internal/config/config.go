// Package config loads calculator settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/shopspring/decimal"

	"go-decimal-calculator/internal/calcerr"
)

// Config holds all calculator settings. Values come from environment
// variables (optionally via a .env file loaded by the caller); file and
// directory paths default relative to BaseDir when not set explicitly.
type Config struct {
	BaseDir        string          `env:"CALCULATOR_BASE_DIR"`
	MaxHistorySize int             `env:"CALCULATOR_MAX_HISTORY_SIZE" envDefault:"1000"`
	AutoSave       bool            `env:"CALCULATOR_AUTO_SAVE" envDefault:"true"`
	Precision      int             `env:"CALCULATOR_PRECISION" envDefault:"10"`
	MaxInputValue  decimal.Decimal `env:"CALCULATOR_MAX_INPUT_VALUE" envDefault:"1e999"`

	LogDir      string `env:"CALCULATOR_LOG_DIR"`
	LogFile     string `env:"CALCULATOR_LOG_FILE"`
	HistoryDir  string `env:"CALCULATOR_HISTORY_DIR"`
	HistoryFile string `env:"CALCULATOR_HISTORY_FILE"`
}

// Load parses the environment, fills derived path defaults and validates
// the result.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.BaseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve base dir: %w", err)
		}
		cfg.BaseDir = wd
	}
	if cfg.LogDir == "" {
		cfg.LogDir = filepath.Join(cfg.BaseDir, "logs")
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(cfg.LogDir, "calculator.log")
	}
	if cfg.HistoryDir == "" {
		cfg.HistoryDir = filepath.Join(cfg.BaseDir, "history")
	}
	if cfg.HistoryFile == "" {
		cfg.HistoryFile = filepath.Join(cfg.HistoryDir, "calculator_history.csv")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects non-positive limits.
func (c *Config) Validate() error {
	if c.MaxHistorySize <= 0 {
		return calcerr.NewConfiguration("max history size must be positive, got %d", c.MaxHistorySize)
	}
	if c.Precision <= 0 {
		return calcerr.NewConfiguration("precision must be positive, got %d", c.Precision)
	}
	if c.MaxInputValue.Sign() <= 0 {
		return calcerr.NewConfiguration("max input value must be positive, got %s", c.MaxInputValue)
	}
	return nil
}
