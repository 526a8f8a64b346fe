package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/Manum-dev/analyze-tracker/analysis"
)

const (
	storeJSON   = "json"
	storeSQLite = "sqlite"
)

type Config struct {
	Text  string
	File  string
	Debug bool

	Model         string
	APIKey        string
	BaseURL       string
	Timeout       time.Duration
	MaxInputChars int
	LocalCounts   bool
	Offline       bool

	Store       string
	HistoryPath string
	NoSave      bool
}

// Validate checks flag values only. Input selection (-text vs -file) is checked when the input
// is read, so that it surfaces as an input error.
func (c Config) Validate() error {
	if c.Model == "" {
		return errors.New("missing -model")
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be > 0")
	}
	if c.MaxInputChars <= 0 {
		return errors.New("max-input-chars must be > 0")
	}
	switch c.Store {
	case storeJSON, storeSQLite:
	default:
		return fmt.Errorf("store must be %q or %q, got %q", storeJSON, storeSQLite, c.Store)
	}
	return nil
}

func defaultConfig() Config {
	return Config{
		Model:         analysis.DefaultModel,
		Timeout:       analysis.DefaultTimeout,
		MaxInputChars: analysis.DefaultMaxInputChars,
		Store:         storeJSON,
	}
}
