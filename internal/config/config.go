// Package config holds session settings: defaults, an optional YAML file
// overlay, and EXUMBRIS_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig marks a configuration that fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all session settings.
type Config struct {
	Seed         int64         `yaml:"seed" json:"seed"`
	Hubs         int           `yaml:"hubs" json:"hubs"`
	Agents       int           `yaml:"agents" json:"agents"`
	Turns        uint64        `yaml:"turns" json:"turns"`                 // 0 runs until interrupted
	TurnInterval time.Duration `yaml:"turn_interval" json:"turn_interval"` // Pause between turns
	EpochLength  uint64        `yaml:"epoch_length" json:"epoch_length"`
	RouteChance  float64       `yaml:"route_chance" json:"route_chance"`
	NamesPath    string        `yaml:"names_path" json:"names_path"`
	TraitsPath   string        `yaml:"traits_path" json:"traits_path"`
	RecordPath   string        `yaml:"record_path" json:"record_path"` // Empty disables recording
	LogLevel     string        `yaml:"log_level" json:"log_level"`
}

// Default returns the standard session settings.
func Default() Config {
	return Config{
		Seed:        42,
		Hubs:        8,
		Agents:      200,
		Turns:       1000,
		EpochLength: 100,
		RouteChance: 0.1,
		NamesPath:   "data/names.yaml",
		TraitsPath:  "data/traits.yaml",
		LogLevel:    "info",
	}
}

// Load reads a YAML file over the defaults. Keys absent from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from EXUMBRIS_* environment variables.
// Malformed values are logged and ignored.
func (c *Config) ApplyEnv() {
	envInt64("EXUMBRIS_SEED", &c.Seed)
	envInt("EXUMBRIS_HUBS", &c.Hubs)
	envInt("EXUMBRIS_AGENTS", &c.Agents)
	envUint64("EXUMBRIS_TURNS", &c.Turns)
	envUint64("EXUMBRIS_EPOCH_LENGTH", &c.EpochLength)
	envFloat("EXUMBRIS_ROUTE_CHANCE", &c.RouteChance)
	envString("EXUMBRIS_NAMES_PATH", &c.NamesPath)
	envString("EXUMBRIS_TRAITS_PATH", &c.TraitsPath)
	envString("EXUMBRIS_RECORD_PATH", &c.RecordPath)
	envString("EXUMBRIS_LOG_LEVEL", &c.LogLevel)
	if v := os.Getenv("EXUMBRIS_TURN_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			slog.Warn("ignoring malformed env override", "key", "EXUMBRIS_TURN_INTERVAL", "value", v)
			return
		}
		c.TurnInterval = d
	}
}

// Validate checks ranges the generator and spawner would otherwise reject.
func (c Config) Validate() error {
	switch {
	case c.Hubs <= 0:
		return fmt.Errorf("%w: hubs must be positive, got %d", ErrInvalidConfig, c.Hubs)
	case c.Agents <= 0:
		return fmt.Errorf("%w: agents must be positive, got %d", ErrInvalidConfig, c.Agents)
	case c.RouteChance < 0 || c.RouteChance > 1:
		return fmt.Errorf("%w: route_chance %v outside [0,1]", ErrInvalidConfig, c.RouteChance)
	case c.TurnInterval < 0:
		return fmt.Errorf("%w: negative turn_interval", ErrInvalidConfig)
	}
	return nil
}

// Level maps LogLevel onto a slog level, defaulting to Info.
func (c Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func envString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(key string, dst *int) {
	var n int64
	if envInt64(key, &n) {
		*dst = int(n)
	}
}

func envInt64(key string, dst *int64) bool {
	v := os.Getenv(key)
	if v == "" {
		return false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		slog.Warn("ignoring malformed env override", "key", key, "value", v)
		return false
	}
	*dst = n
	return true
}

func envUint64(key string, dst *uint64) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		slog.Warn("ignoring malformed env override", "key", key, "value", v)
		return
	}
	*dst = n
}

func envFloat(key string, dst *float64) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		slog.Warn("ignoring malformed env override", "key", key, "value", v)
		return
	}
	*dst = f
}
