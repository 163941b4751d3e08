// Package daemon manages the Vita runtime lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all runtime configuration.
type Config struct {
	API     APIConfig     `toml:"api"`
	Storage StorageConfig `toml:"storage"`
	Goals   GoalsConfig   `toml:"goals"`
	Ingest  IngestConfig  `toml:"ingest"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host           string `toml:"host"`
	Port           int    `toml:"port"`
	MetricsEnabled bool   `toml:"metrics_enabled"`
}

// StorageConfig controls where state lives.
type StorageConfig struct {
	Dir string `toml:"dir"`
}

// GoalsConfig holds the per-domain daily thresholds that make a day count
// toward a streak.
type GoalsConfig struct {
	WaterML          float64 `toml:"water_ml"`
	SleepHours       float64 `toml:"sleep_hours"`
	WorkoutSessions  int     `toml:"workout_sessions"`
	MoodLevel        float64 `toml:"mood_level"`
	NutritionEntries int     `toml:"nutrition_entries"`
}

// IngestConfig controls the ingestion boundary.
type IngestConfig struct {
	// ClockSkewSeconds tolerates events stamped slightly in the future by a
	// drifting device clock. Default 0: future events are rejected outright.
	ClockSkewSeconds int `toml:"clock_skew_seconds"`
}

// DefaultConfig returns sensible defaults: localhost API, stock daily goals.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			Host:           "127.0.0.1",
			Port:           7799,
			MetricsEnabled: true,
		},
		Storage: StorageConfig{
			Dir: vitaHome(),
		},
		Goals: GoalsConfig{
			WaterML:          2000,
			SleepHours:       8,
			WorkoutSessions:  1,
			MoodLevel:        4,
			NutritionEntries: 1,
		},
		Ingest: IngestConfig{
			ClockSkewSeconds: 0,
		},
	}
}

// LoadConfig reads config from ~/.vita/config.toml, falling back to defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(vitaHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // No config file yet — use defaults
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes the config to ~/.vita/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(vitaHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// vitaHome returns the Vita data directory.
func vitaHome() string {
	if env := os.Getenv("VITA_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".vita")
}

// VitaHome is exported for use by other packages.
func VitaHome() string {
	return vitaHome()
}
