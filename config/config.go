// Package config defines the YAML-backed run configuration, modeled on
// utils/config/{config,type}.go from the reference implementation.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// defaultParallelThreshold is the per-street vehicle count above which the
// IDM pass splits work per vehicle instead of running the whole street
// sequentially.
const defaultParallelThreshold = 100

// RuntimeConfig is the validated, defaulted form of Config a simulation
// run actually uses.
type RuntimeConfig struct {
	All     Config
	Control Control
}

// Load reads and parses a YAML config file at path, strictly (unknown
// keys are an error), then validates it and fills in defaults through
// NewRuntimeConfig.
func Load(path string) (*RuntimeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	var c Config
	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return NewRuntimeConfig(c)
}

// NewRuntimeConfig validates c and fills in defaults, returning the
// runtime form a simulation actually consumes.
func NewRuntimeConfig(c Config) (*RuntimeConfig, error) {
	if c.Control.Step <= 0 {
		return nil, fmt.Errorf("config: control.step must be positive")
	}
	if c.Control.ParallelThreshold <= 0 {
		c.Control.ParallelThreshold = defaultParallelThreshold
	}
	switch c.Control.StoreKind {
	case "":
		c.Control.StoreKind = StoreNaive
	case StoreNaive, StoreBucket:
	default:
		return nil, fmt.Errorf("config: unknown control.store_kind %q", c.Control.StoreKind)
	}
	switch c.Control.SignalStrategy {
	case "":
		c.Control.SignalStrategy = SignalWeighted
	case SignalWeighted, SignalMaxPressure:
	default:
		return nil, fmt.Errorf("config: unknown control.signal_strategy %q", c.Control.SignalStrategy)
	}
	return &RuntimeConfig{All: c, Control: c.Control}, nil
}
