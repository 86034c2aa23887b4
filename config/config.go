// Package config loads lwg settings from a YAML file.
//
//	max_steps: 1000000
//	verbose: false
//	color: auto        # auto, always or never
//	vars:
//	  x0: 5
package config

import (
	"fmt"
	"os"

	"github.com/jpeter96/langInterpreterTranslator/scanner"
	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable pointing at a config file.
const EnvVar = "LWG_CONFIG"

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds settings shared by every lwg command. Command-line flags
// override file values.
type Config struct {
	MaxSteps uint64            `yaml:"max_steps"`
	Verbose  bool              `yaml:"verbose"`
	Color    string            `yaml:"color"`
	Vars     map[string]uint64 `yaml:"vars"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{Color: ColorAuto}
}

// Load reads the config file at path. An empty path falls back to the
// LWG_CONFIG environment variable; when both are empty Default is returned.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML config data on top of Default.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	switch cfg.Color {
	case "":
		cfg.Color = ColorAuto
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return nil, fmt.Errorf("color must be auto, always or never, got %q", cfg.Color)
	}
	for name := range cfg.Vars {
		if !scanner.IsIdent(name) {
			return nil, fmt.Errorf("vars: invalid variable name %q", name)
		}
	}
	return cfg, nil
}
