package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Runtime RuntimeConfig `yaml:"runtime"`
	Sim     SimConfig     `yaml:"sim"`
}

// RuntimeConfig locates the external agent runtime.
type RuntimeConfig struct {
	URL string `yaml:"url"`
}

// SimConfig configures the local stand-in runtime (cmd/fakeruntime).
type SimConfig struct {
	Listen string `yaml:"listen"`
}

func defaults() Config {
	return Config{
		Runtime: RuntimeConfig{
			URL: "ws://127.0.0.1:9847",
		},
		Sim: SimConfig{
			Listen: "127.0.0.1:9847",
		},
	}
}

func Load() (*Config, error) {
	cfg := defaults()

	path := os.Getenv("AGENTDECK_CONFIG")
	if path == "" {
		path = "config/agentdeck.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// Config file not found, use defaults + env
	} else {
		// Expand environment variables in YAML
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	applyEnv(&cfg)

	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("AGENTDECK_RUNTIME_URL"); v != "" {
		cfg.Runtime.URL = v
	}
	if v := os.Getenv("AGENTDECK_SIM_LISTEN"); v != "" {
		cfg.Sim.Listen = v
	}
}
