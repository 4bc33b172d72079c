package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	ScanModePattern = "pattern"
	ScanModeMarkup  = "markup"

	EngineHTTP  = "http"
	EngineColly = "colly"

	DefaultLogLevel = "warn"
)

var ErrMissingDir = errors.New("You must specify a directory in which to find XML files.")

type LogicConfig struct {
	TimeoutSec   int    `yaml:"timeout_sec"`
	DelayMS      int    `yaml:"delay_ms"`
	MaxRedirects int    `yaml:"max_redirects"`
	UserAgent    string `yaml:"user_agent"`
	FailFast     bool   `yaml:"fail_fast"`
}

type ScanConfig struct {
	Mode          string `yaml:"mode"`
	ProbeOriginal bool   `yaml:"probe_original"`
}

type ProbeConfig struct {
	Engine string `yaml:"engine"`
}

type ValidatorConfig struct {
	Dir      string      `yaml:"dir"`
	LogLevel string      `yaml:"log_level"`
	Logic    LogicConfig `yaml:"logic"`
	Scan     ScanConfig  `yaml:"scan"`
	Probe    ProbeConfig `yaml:"probe"`
}

func Default() *ValidatorConfig {
	return &ValidatorConfig{
		LogLevel: DefaultLogLevel,
		Logic: LogicConfig{
			TimeoutSec:   30,
			MaxRedirects: 5,
		},
		Scan: ScanConfig{
			Mode: ScanModePattern,
		},
		Probe: ProbeConfig{
			Engine: EngineHTTP,
		},
	}
}

// LoadConfig reads path on top of the defaults. An empty path yields the
// defaults alone.
func LoadConfig(path string) (*ValidatorConfig, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *ValidatorConfig) Validate() error {
	if c.Dir == "" {
		return ErrMissingDir
	}
	switch c.Scan.Mode {
	case ScanModePattern, ScanModeMarkup:
	default:
		return fmt.Errorf("invalid scan mode %q (want %s or %s)", c.Scan.Mode, ScanModePattern, ScanModeMarkup)
	}
	switch c.Probe.Engine {
	case EngineHTTP, EngineColly:
	default:
		return fmt.Errorf("invalid probe engine %q (want %s or %s)", c.Probe.Engine, EngineHTTP, EngineColly)
	}
	if c.Logic.TimeoutSec < 0 {
		return fmt.Errorf("timeout_sec must not be negative, got %d", c.Logic.TimeoutSec)
	}
	if c.Logic.DelayMS < 0 {
		return fmt.Errorf("delay_ms must not be negative, got %d", c.Logic.DelayMS)
	}
	if c.Logic.MaxRedirects < 0 {
		return fmt.Errorf("max_redirects must not be negative, got %d", c.Logic.MaxRedirects)
	}
	return nil
}

func (l LogicConfig) Timeout() time.Duration {
	return time.Duration(l.TimeoutSec) * time.Second
}

func (l LogicConfig) Delay() time.Duration {
	return time.Duration(l.DelayMS) * time.Millisecond
}
