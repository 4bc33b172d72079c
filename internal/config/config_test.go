package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Scan.Mode != ScanModePattern || cfg.Probe.Engine != EngineHTTP {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Logic.Timeout() != 30*time.Second || cfg.Logic.MaxRedirects != 5 {
		t.Fatalf("unexpected logic defaults: %+v", cfg.Logic)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Fatalf("expected default log level, got %q", cfg.LogLevel)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
dir: /exports
log_level: debug
logic:
  timeout_sec: 5
  delay_ms: 250
  max_redirects: 0
  user_agent: test-agent
  fail_fast: true
scan:
  mode: markup
  probe_original: true
probe:
  engine: colly
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Dir != "/exports" || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected top-level values: %+v", cfg)
	}
	if cfg.Logic.Timeout() != 5*time.Second || cfg.Logic.Delay() != 250*time.Millisecond {
		t.Fatalf("unexpected durations: %+v", cfg.Logic)
	}
	if cfg.Logic.MaxRedirects != 0 || cfg.Logic.UserAgent != "test-agent" || !cfg.Logic.FailFast {
		t.Fatalf("unexpected logic: %+v", cfg.Logic)
	}
	if cfg.Scan.Mode != ScanModeMarkup || !cfg.Scan.ProbeOriginal || cfg.Probe.Engine != EngineColly {
		t.Fatalf("unexpected scan/probe: %+v %+v", cfg.Scan, cfg.Probe)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestLoadConfigPartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "logic:\n  delay_ms: 10\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Logic.TimeoutSec != 30 || cfg.Logic.MaxRedirects != 5 || cfg.Scan.Mode != ScanModePattern {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
	if _, err := LoadConfig(writeConfig(t, "logic: [unclosed")); err == nil {
		t.Fatal("expected error for invalid yaml")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ValidatorConfig)
		wantErr bool
	}{
		{name: "ok", mutate: func(c *ValidatorConfig) {}},
		{name: "bad mode", mutate: func(c *ValidatorConfig) { c.Scan.Mode = "dom" }, wantErr: true},
		{name: "bad engine", mutate: func(c *ValidatorConfig) { c.Probe.Engine = "curl" }, wantErr: true},
		{name: "negative timeout", mutate: func(c *ValidatorConfig) { c.Logic.TimeoutSec = -1 }, wantErr: true},
		{name: "negative delay", mutate: func(c *ValidatorConfig) { c.Logic.DelayMS = -1 }, wantErr: true},
		{name: "negative redirects", mutate: func(c *ValidatorConfig) { c.Logic.MaxRedirects = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Dir = "/exports"
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateMissingDir(t *testing.T) {
	if err := Default().Validate(); !errors.Is(err, ErrMissingDir) {
		t.Fatalf("expected ErrMissingDir, got %v", err)
	}
}
