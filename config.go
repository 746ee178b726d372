package dispatchz

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultCapacity is the queue size used when none is configured.
	DefaultCapacity = 5000
	// DefaultWarningInterval is the minimum gap between overflow warnings.
	DefaultWarningInterval = 10 * time.Second
)

// Config holds the dispatcher settings.
type Config struct {
	// Capacity is the maximum number of outstanding records.
	Capacity int
	// WarningInterval is the minimum time between overflow warnings.
	// Zero warns on every drop.
	WarningInterval time.Duration
	// DrainOnStop delivers every queued record before Stop returns.
	// When false only the in-flight record is finished.
	DrainOnStop bool
}

// DefaultConfig returns the default settings.
func DefaultConfig() Config {
	return Config{
		Capacity:        DefaultCapacity,
		WarningInterval: DefaultWarningInterval,
	}
}

// Validate checks the settings.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("capacity %d: %w", c.Capacity, ErrInvalidCapacity)
	}
	if c.WarningInterval < 0 {
		return fmt.Errorf("warning interval %s: %w", c.WarningInterval, ErrInvalidWarningInterval)
	}
	return nil
}

// fileConfig is the on-disk shape. Pointers distinguish unset keys from zero.
type fileConfig struct {
	Capacity          *int  `yaml:"capacity"`
	WarningIntervalMs *int  `yaml:"warning_interval_ms"`
	DrainOnStop       *bool `yaml:"drain_on_stop"`
}

// ParseConfig decodes YAML on top of DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("failed to parse dispatcher config: %w", err)
	}

	if fc.Capacity != nil {
		cfg.Capacity = *fc.Capacity
	}
	if fc.WarningIntervalMs != nil {
		cfg.WarningInterval = time.Duration(*fc.WarningIntervalMs) * time.Millisecond
	}
	if fc.DrainOnStop != nil {
		cfg.DrainOnStop = *fc.DrainOnStop
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read dispatcher config %q: %w", path, err)
	}
	return ParseConfig(data)
}
