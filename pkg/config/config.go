// Package config loads the dashboard configuration from YAML.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Default file names probed when no explicit path is given.
const (
	DefaultFile = "config.yaml"
	ExampleFile = "config.yaml.example"
)

// Config holds the dashboard configuration.
type Config struct {
	Log struct {
		Level   string `yaml:"level" validate:"oneof=trace debug info warn error"`
		Console bool   `yaml:"console"`
	} `yaml:"log"`

	Simulation struct {
		TickMs int   `yaml:"tick_ms" validate:"gte=100,lte=10000"`
		Seed   int64 `yaml:"seed"`
	} `yaml:"simulation"`

	Navigation struct {
		StartLat   float64 `yaml:"start_lat" validate:"gte=-90,lte=90"`
		StartLon   float64 `yaml:"start_lon" validate:"gte=-180,lte=180"`
		StartAlt   float64 `yaml:"start_alt"`
		SpeedKmh   float64 `yaml:"speed_kmh" validate:"gte=0"`
		HeadingDeg float64 `yaml:"heading_deg" validate:"gte=0,lt=360"`
		Satellites int     `yaml:"satellites" validate:"gte=0"`
		AccuracyM  float64 `yaml:"accuracy_m" validate:"gte=0"`
	} `yaml:"navigation"`

	Feed struct {
		Serial string `yaml:"serial"`
		Baud   int    `yaml:"baud" validate:"gte=0"`
		Replay string `yaml:"replay"`
	} `yaml:"feed"`
}

// Default returns the built-in configuration: a one second simulation
// tick and a start fix in Los Angeles.
func Default() Config {
	var c Config
	c.Log.Level = "info"
	c.Log.Console = true
	c.Simulation.TickMs = 1000
	c.Navigation.StartLat = 34.0522
	c.Navigation.StartLon = -118.2437
	c.Navigation.StartAlt = 100.0
	c.Navigation.SpeedKmh = 60.0
	c.Navigation.HeadingDeg = 45.0
	c.Navigation.Satellites = 8
	c.Navigation.AccuracyM = 3.5
	c.Feed.Baud = 9600
	return c
}

// Load reads the configuration from path. With an empty path it probes
// config.yaml, then config.yaml.example, and falls back to the built-in
// defaults when neither exists. An explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := read(path)
	if err != nil {
		return cfg, err
	}
	if data != nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func read(path string) ([]byte, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		return data, nil
	}

	if data, err := os.ReadFile(DefaultFile); err == nil {
		return data, nil
	}
	if data, err := os.ReadFile(ExampleFile); err == nil {
		return data, nil
	}
	return nil, nil
}

// Validate checks the configuration against its field constraints.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
