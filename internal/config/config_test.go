package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := defaults()

	if cfg.Runtime.URL != "ws://127.0.0.1:9847" {
		t.Errorf("expected default runtime url ws://127.0.0.1:9847, got %s", cfg.Runtime.URL)
	}
	if cfg.Sim.Listen != "127.0.0.1:9847" {
		t.Errorf("expected default sim listen 127.0.0.1:9847, got %s", cfg.Sim.Listen)
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	// Point config to a non-existent file so we use defaults
	t.Setenv("AGENTDECK_CONFIG", "/nonexistent/config.yaml")
	t.Setenv("AGENTDECK_RUNTIME_URL", "ws://10.0.0.5:9000")
	t.Setenv("AGENTDECK_SIM_LISTEN", "0.0.0.0:9000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Runtime.URL != "ws://10.0.0.5:9000" {
		t.Errorf("expected runtime url ws://10.0.0.5:9000, got %s", cfg.Runtime.URL)
	}
	if cfg.Sim.Listen != "0.0.0.0:9000" {
		t.Errorf("expected sim listen 0.0.0.0:9000, got %s", cfg.Sim.Listen)
	}
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	yaml := `
runtime:
  url: "ws://localhost:7000"
sim:
  listen: "localhost:7000"
`
	if err := os.WriteFile(cfgPath, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("AGENTDECK_CONFIG", cfgPath)
	// Clear any env overrides
	t.Setenv("AGENTDECK_RUNTIME_URL", "")
	t.Setenv("AGENTDECK_SIM_LISTEN", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Runtime.URL != "ws://localhost:7000" {
		t.Errorf("expected ws://localhost:7000, got %s", cfg.Runtime.URL)
	}
	if cfg.Sim.Listen != "localhost:7000" {
		t.Errorf("expected localhost:7000, got %s", cfg.Sim.Listen)
	}
}
