/*
Package config manages TOML configuration for the fldic engine.

InitConfig handles automatic config file creation and loading with fallback
to defaults: a DefaultConfig, a LoadConfig/SaveConfig pair for direct file
access, and an Update method for targeted, persisted changes.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// Config holds the entire engine configuration.
type Config struct {
	Fuzzy    FuzzyConfig    `toml:"fuzzy"`
	Dict     DictConfig     `toml:"dict"`
	Session  SessionConfig  `toml:"session"`
	HotCache HotCacheConfig `toml:"hot_cache"`
}

// FuzzyConfig holds the edit-distance cost model.
type FuzzyConfig struct {
	InsertCost      int `toml:"insert_cost"`
	DeleteCost      int `toml:"delete_cost"`
	SubstituteNear  int `toml:"substitute_near_cost"`
	SubstituteFar   int `toml:"substitute_far_cost"`
	TransposeCost   int `toml:"transpose_cost"`
	MaxCostCeiling  int `toml:"max_cost_ceiling"`
	MinCostFloor    int `toml:"min_cost_floor"`
}

// DictConfig holds dictionary-level limits.
type DictConfig struct {
	MaxWordCountValidation int `toml:"max_word_count_validation"`
	ScoreSaturationMargin  int `toml:"score_saturation_margin"`
}

// SessionConfig holds request-handling defaults for the session layer.
type SessionConfig struct {
	DefaultMaxSuggestionCount int `toml:"default_max_suggestion_count"`
	SpellMaxSuggestionCount   int `toml:"spell_max_suggestion_count"`
	AutoCommitMinConfidence   int `toml:"auto_commit_min_confidence_pct"`
	AutoCommitMaxEditDistance int `toml:"auto_commit_max_edit_distance"`
	RecommendedMinConfidence  int `toml:"recommended_min_confidence_pct"`
}

// HotCacheConfig holds sizing for the hot-cache acceleration layer.
type HotCacheConfig struct {
	Enabled  bool `toml:"enabled"`
	MaxWords int  `toml:"max_words"`
}

// DefaultConfig returns a Config with the engine's baseline cost model and
// ranking thresholds.
func DefaultConfig() *Config {
	return &Config{
		Fuzzy: FuzzyConfig{
			InsertCost:     2,
			DeleteCost:     2,
			SubstituteNear: 1,
			SubstituteFar:  2,
			TransposeCost:  1,
			MaxCostCeiling: 8,
			MinCostFloor:   2,
		},
		Dict: DictConfig{
			MaxWordCountValidation: 1_000_000,
			ScoreSaturationMargin:  128,
		},
		Session: SessionConfig{
			DefaultMaxSuggestionCount: 10,
			SpellMaxSuggestionCount:   5,
			AutoCommitMinConfidence:   50,
			AutoCommitMaxEditDistance: 1,
			RecommendedMinConfidence:  70,
		},
		HotCache: HotCacheConfig{
			Enabled:  true,
			MaxWords: 2000,
		},
	}
}

// InitConfig loads config from file or creates the default one if missing.
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, err
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := SaveConfig(cfg, configPath); err != nil {
			return nil, err
		}
		log.Debugf("Created default config file at: ( %s )", configPath)
		return cfg, nil
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config, using defaults: %v", err)
		return DefaultConfig(), nil
	}
	return cfg, nil
}

// LoadConfig loads from a TOML file.
func LoadConfig(configPath string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(configPath, &cfg); err != nil {
		log.Errorf("Failed to decode config file: %v", err)
		return nil, err
	}
	return &cfg, nil
}

// SaveConfig saves into a TOML file.
func SaveConfig(cfg *Config, configPath string) error {
	file, err := os.Create(configPath)
	if err != nil {
		log.Errorf("Failed to create config file: %v", err)
		return err
	}
	defer file.Close()
	encoder := toml.NewEncoder(file)
	return encoder.Encode(cfg)
}

// Update changes select config values and saves to file.
func (c *Config) Update(configPath string, maxSuggestionCount *int, hotCacheEnabled *bool) error {
	if maxSuggestionCount != nil {
		c.Session.DefaultMaxSuggestionCount = *maxSuggestionCount
	}
	if hotCacheEnabled != nil {
		c.HotCache.Enabled = *hotCacheEnabled
	}
	return SaveConfig(c, configPath)
}
