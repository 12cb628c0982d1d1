// Package config loads the optional on-disk tuning file for the
// battle core. CLI flags (spec §6.5) always take precedence over
// values loaded here. The search-time, parallelism and log-level flags
// carry their own defaults, so they replace the file's values even when
// the operator does not pass them; the file's other values are used as
// loaded.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root of battlecore.toml.
type Config struct {
	Search    SearchConfig    `toml:"search"`
	Dataset   DatasetConfig   `toml:"dataset"`
	Logging   LoggingConfig   `toml:"logging"`
	Inference InferenceConfig `toml:"inference"`
}

// SearchConfig tunes the search driver (spec §4.3).
type SearchConfig struct {
	TimeMs           int `toml:"time_ms"`           // per-decision wall-clock budget
	Parallelism      int `toml:"parallelism"`       // configured worker count
	GraceMs          int `toml:"grace_ms"`           // extra time allowed past TimeMs before falling back
	MinSamples       int `toml:"min_samples"`
}

// DatasetConfig configures the three set-dataset backends (spec §6.3).
type DatasetConfig struct {
	CacheDir         string `toml:"cache_dir"`          // content-addressed stats cache directory
	StatsHostTmpl    string `toml:"stats_host_template"` // URL template parameterized by year-month
	RandomBattleDir  string `toml:"random_battle_dir"`
	TeamDatasetDir   string `toml:"team_dataset_dir"`
}

// LoggingConfig selects the zap encoder, console or JSON.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// InferenceConfig holds the damage-roll tolerance constants (spec §4.2,
// §9), one flat value each for every generation.
type InferenceConfig struct {
	DamageRollLowerMult      float64 `toml:"damage_roll_lower_mult"`      // 0.85 * 0.975
	DamageRollUpperMult      float64 `toml:"damage_roll_upper_mult"`      // 1.025
	DamageRollSlack          float64 `toml:"damage_roll_slack"`           // +/- 5
	DamageRollCritMultiplier float64 `toml:"damage_roll_crit_multiplier"` // scales the non-crit roll bound when the observed hit was a critical
}

func defaults() *Config {
	return &Config{
		Search: SearchConfig{
			TimeMs:      100,
			Parallelism: 1,
			GraceMs:     250,
			MinSamples:  1,
		},
		Dataset: DatasetConfig{
			CacheDir:        "cache/stats",
			StatsHostTmpl:   "https://www.smogon.com/stats/%s/%s-0.json",
			RandomBattleDir: "data/random-battles",
			TeamDatasetDir:  "data/team-datasets",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Inference: InferenceConfig{
			DamageRollLowerMult:      0.85 * 0.975,
			DamageRollUpperMult:      1.025,
			DamageRollSlack:          5,
			DamageRollCritMultiplier: 1.5,
		},
	}
}

// Load reads path if it exists, merging onto defaults(). A missing
// file is not an error — the config file is optional (SPEC_FULL.md
// ambient-stack section); everything else still needs defaults.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// SearchBudget returns the configured per-decision time budget.
func (c *Config) SearchBudget() time.Duration {
	return time.Duration(c.Search.TimeMs) * time.Millisecond
}

// SearchGrace returns the configured grace period past the budget.
func (c *Config) SearchGrace() time.Duration {
	return time.Duration(c.Search.GraceMs) * time.Millisecond
}
