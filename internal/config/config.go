package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexanderramin/ironplan/internal/llm"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	HTTP     HTTPConfig     `yaml:"http"`
	Log      LogConfig      `yaml:"log"`
	Units    UnitsConfig    `yaml:"units"`
	LLM      llm.Config     `yaml:"llm"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

type LogConfig struct {
	Level    string `yaml:"level"`
	UseCases bool   `yaml:"use_cases"`
}

type UnitsConfig struct {
	// Weight is "lb" or "kg". Stored weights are unitless; this only
	// labels output.
	Weight string `yaml:"weight"`
}

// DefaultConfig places the database under ~/.ironplan.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{Path: filepath.Join(homeDir(), ".ironplan", "ironplan.db")},
		HTTP:     HTTPConfig{Addr: "127.0.0.1:8088"},
		Log:      LogConfig{Level: "warn"},
		Units:    UnitsConfig{Weight: "lb"},
		LLM:      llm.DefaultConfig(),
	}
}

// DefaultPath is $IRONPLAN_CONFIG, else ~/.ironplan/config.yaml.
func DefaultPath() string {
	if v := os.Getenv("IRONPLAN_CONFIG"); v != "" {
		return v
	}
	return filepath.Join(homeDir(), ".ironplan", "config.yaml")
}

// Load reads config from a YAML file over the defaults, then applies
// environment variable overrides. A missing file is not an error.
// Env vars use the prefix IRONPLAN_:
//
//	IRONPLAN_DB, IRONPLAN_HTTP_ADDR, IRONPLAN_LOG_LEVEL,
//	IRONPLAN_LOG_USE_CASES, IRONPLAN_WEIGHT_UNIT,
//	IRONPLAN_LLM_ENABLED, IRONPLAN_LLM_LOG_CALLS, IRONPLAN_LLM_ENDPOINT,
//	IRONPLAN_LLM_MODEL, IRONPLAN_LLM_TIMEOUT_MS, IRONPLAN_LLM_MAX_RETRIES
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("IRONPLAN_DB"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("IRONPLAN_HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("IRONPLAN_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("IRONPLAN_LOG_USE_CASES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Log.UseCases = b
		}
	}
	if v := os.Getenv("IRONPLAN_WEIGHT_UNIT"); v != "" {
		cfg.Units.Weight = v
	}
	if v := os.Getenv("IRONPLAN_LLM_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LLM.Enabled = b
		}
	}
	if v := os.Getenv("IRONPLAN_LLM_LOG_CALLS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LLM.LogCalls = b
		}
	}
	if v := os.Getenv("IRONPLAN_LLM_ENDPOINT"); v != "" {
		cfg.LLM.Endpoint = v
	}
	if v := os.Getenv("IRONPLAN_LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("IRONPLAN_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.LLM.TimeoutMs = n
		}
	}
	if v := os.Getenv("IRONPLAN_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.LLM.MaxRetries = n
		}
	}
}

func (c *Config) validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.HTTP.Addr == "" {
		return fmt.Errorf("http.addr is required")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	switch strings.ToLower(c.Units.Weight) {
	case "lb", "kg":
	default:
		return fmt.Errorf("units.weight must be lb or kg, got %q", c.Units.Weight)
	}
	if c.LLM.Enabled {
		if c.LLM.Endpoint == "" {
			return fmt.Errorf("llm.endpoint is required when llm is enabled")
		}
		if c.LLM.Model == "" {
			return fmt.Errorf("llm.model is required when llm is enabled")
		}
	}
	return nil
}

// SlogLevel maps log.level onto a slog.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// WeightUnit is the normalized label for weights.
func (c *Config) WeightUnit() string {
	return strings.ToLower(c.Units.Weight)
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
