// Package config loads chaoslab.yaml. Every field has a default, so a missing
// file is not an error.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"chaoslab/internal/chaos"
	cerrors "chaoslab/internal/errors"

	"gopkg.in/yaml.v3"
)

const DefaultFile = "chaoslab.yaml"

type Config struct {
	Chaos   ChaosConfig   `yaml:"chaos"`
	Codegen CodegenConfig `yaml:"codegen"`
}

type ChaosConfig struct {
	Enabled            bool     `yaml:"enabled"`
	Seed               int64    `yaml:"seed"` // 0 = time-derived
	Passes             []string `yaml:"passes"`
	MaxNewInstructions int      `yaml:"max_new_instructions"`
	Intensity          string   `yaml:"intensity,omitempty"` // low, medium or high; empty = no plan
}

type CodegenConfig struct {
	Comments bool `yaml:"comments"`
}

func Default() *Config {
	return &Config{
		Chaos: ChaosConfig{
			Passes:             chaos.DefaultPassNames(),
			MaxNewInstructions: chaos.DefaultMaxNewInstructions,
		},
		Codegen: CodegenConfig{Comments: true},
	}
}

// InvalidError is returned for a configuration that cannot be used. It
// carries the E0900 tooling code.
type InvalidError struct {
	Code string
	Err  error
}

func invalid(format string, args ...any) *InvalidError {
	return &InvalidError{Code: cerrors.ErrorInvalidConfig, Err: fmt.Errorf(format, args...)}
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("error[%s]: invalid config: %v", e.Code, e.Err)
}

func (e *InvalidError) Unwrap() error {
	return e.Err
}

// Load reads path on top of the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML from r on top of the defaults and validates the result.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, invalid("%w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Chaos.MaxNewInstructions < 0 {
		return invalid("chaos.max_new_instructions must not be negative, got %d", c.Chaos.MaxNewInstructions)
	}
	if _, err := chaos.PassesByName(c.Chaos.Passes); err != nil {
		return invalid("chaos.passes: %w", err)
	}
	if _, err := chaos.ParseIntensity(c.Chaos.Intensity); err != nil {
		return invalid("chaos.intensity: %w", err)
	}
	return nil
}

// ChaosOptions turns the chaos section into transformer options.
func (c *Config) ChaosOptions() ([]chaos.Option, error) {
	passes, err := chaos.PassesByName(c.Chaos.Passes)
	if err != nil {
		return nil, err
	}
	intensity, err := chaos.ParseIntensity(c.Chaos.Intensity)
	if err != nil {
		return nil, err
	}
	return []chaos.Option{
		chaos.WithSeed(c.Chaos.Seed),
		chaos.WithPasses(passes...),
		chaos.WithMaxNewInstructions(c.Chaos.MaxNewInstructions),
		chaos.WithIntensity(intensity),
	}, nil
}

// Marshal renders the configuration as YAML
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
