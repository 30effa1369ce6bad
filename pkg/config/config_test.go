package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "environment: test\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Logger.Level != "info" {
		t.Fatalf("logger level = %q, want info", cfg.Logger.Level)
	}
	if cfg.Simulation.MaxPaths != 10000 {
		t.Fatalf("max paths = %d, want 10000", cfg.Simulation.MaxPaths)
	}
	if cfg.Solver.MaxRuntime != 5*time.Second {
		t.Fatalf("max runtime = %v, want 5s", cfg.Solver.MaxRuntime)
	}
	if cfg.BlackLitterman.Tau != 0.05 {
		t.Fatalf("tau = %v, want 0.05", cfg.BlackLitterman.Tau)
	}
	if cfg.Market.DefaultCorrelation != 0.5 {
		t.Fatalf("default correlation = %v, want 0.5", cfg.Market.DefaultCorrelation)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `environment: production
simulation:
  max_paths: 5000
black_litterman:
  tau: 0.025
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Simulation.MaxPaths != 5000 {
		t.Fatalf("max paths = %d, want 5000", cfg.Simulation.MaxPaths)
	}
	if cfg.BlackLitterman.Tau != 0.025 {
		t.Fatalf("tau = %v, want 0.025", cfg.BlackLitterman.Tau)
	}
}

func TestLoadRejectsMissingEnvironment(t *testing.T) {
	path := writeConfig(t, "logger:\n  level: debug\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("Load() expected error for missing environment")
	}
}

func TestLoadRejectsBadCorrelation(t *testing.T) {
	path := writeConfig(t, "environment: test\nmarket:\n  default_correlation: 1.5\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("Load() expected error for out-of-range correlation")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, "environment: test\n")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RISK_FREE_RATE", "0.07")

	cfg, err := LoadWithEnv(path)
	if err != nil {
		t.Fatalf("LoadWithEnv() error = %v", err)
	}
	if cfg.Logger.Level != "debug" {
		t.Fatalf("logger level = %q, want debug from env", cfg.Logger.Level)
	}
	if cfg.Market.RiskFreeRate != 0.07 {
		t.Fatalf("risk free rate = %v, want 0.07 from env", cfg.Market.RiskFreeRate)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("Load() expected error for missing file")
	}
}
