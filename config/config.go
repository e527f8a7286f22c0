// Package config holds the user-editable configuration of the fieldscript
// runner, persisted as YAML with environment variables as read-only runtime
// overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// PageConfig sets the default page geometry of documents the runner builds.
// Values are points.
type PageConfig struct {
	TrimWidth  float64 `yaml:"trim_width"`
	TrimHeight float64 `yaml:"trim_height"`
	Bleed      float64 `yaml:"bleed"`
}

// LoggingConfig mirrors observability.SlogOptions.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// ScriptConfig bounds script execution.
type ScriptConfig struct {
	TimeoutMs int `yaml:"timeout_ms"`
}

// Config is the root document.
type Config struct {
	Page    PageConfig    `yaml:"page"`
	Logging LoggingConfig `yaml:"logging"`
	Script  ScriptConfig  `yaml:"script"`
}

// Defaults returns the runner defaults: US Letter trim with an eighth-inch
// bleed, info logging and a five second script budget.
func Defaults() Config {
	return Config{
		Page:    PageConfig{TrimWidth: 612, TrimHeight: 792, Bleed: 9},
		Logging: LoggingConfig{Level: "info", Format: "console"},
		Script:  ScriptConfig{TimeoutMs: 5000},
	}
}

// Environment override names.
const (
	EnvLogLevel      = "FIELDKIT_LOG_LEVEL"
	EnvLogFormat     = "FIELDKIT_LOG_FORMAT"
	EnvLogFile       = "FIELDKIT_LOG_FILE"
	EnvScriptTimeout = "FIELDKIT_SCRIPT_TIMEOUT_MS"
)

// Load reads the YAML file at path on top of the defaults, then applies env
// overrides. A missing file is not an error; defaults plus env apply.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// fall through to defaults
		default:
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

// Save writes the configuration as YAML.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// ScriptTimeout returns the configured execution budget as a duration.
func (c Config) ScriptTimeout() time.Duration {
	if c.Script.TimeoutMs <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.Script.TimeoutMs) * time.Millisecond
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvScriptTimeout)); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cfg.Script.TimeoutMs = ms
		}
	}
}
