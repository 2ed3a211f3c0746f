// Package config loads aiscope configuration. Values resolve from (highest
// to lowest priority):
// 1. Command-line flags
// 2. Environment variables (AISCOPE_*)
// 3. Project config (.aiscope/config.yaml in cwd)
// 4. Home config (~/.aiscope/config.yaml)
// 5. Defaults
package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all aiscope configuration.
type Config struct {
	// Output is the default output format (table, json).
	Output string `yaml:"output" json:"output"`

	// DBPath is the SQLite database location.
	DBPath string `yaml:"db_path" json:"db_path"`

	// Verbose enables verbose output.
	Verbose bool `yaml:"verbose" json:"verbose"`

	// Level is the developer experience tier (junior, mid, senior) that
	// seeds the threshold policy.
	Level string `yaml:"level" json:"level"`

	// Thresholds optionally overrides individual policy fields on top of
	// the tier defaults. Zero fields are left at the tier default.
	Thresholds ThresholdOverrides `yaml:"thresholds" json:"thresholds"`
}

// ThresholdOverrides carries per-field policy overrides. Each set field is
// applied through the threshold manager's clamping setters.
type ThresholdOverrides struct {
	BlindApprovalTimeMs int `yaml:"blind_approval_time_ms" json:"blind_approval_time_ms"`
	MaxAIPercentage     int `yaml:"max_ai_percentage" json:"max_ai_percentage"`
	MinReviewTimeMs     int `yaml:"min_review_time_ms" json:"min_review_time_ms"`
	StreakThreshold     int `yaml:"streak_threshold" json:"streak_threshold"`
}

const (
	defaultOutput = "table"
	defaultDBPath = ".aiscope/aiscope.db"
	defaultLevel  = "mid"
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Output: defaultOutput,
		DBPath: defaultDBPath,
		Level:  defaultLevel,
	}
}

// Load resolves configuration with proper precedence.
// Priority: flags > env > project > home > defaults.
func Load(flagOverrides *Config) (*Config, error) {
	cfg := Default()

	homeConfig, _ := loadFromPath(homeConfigPath())
	if homeConfig != nil {
		cfg = merge(cfg, homeConfig)
	}

	projectConfig, _ := loadFromPath(projectConfigPath())
	if projectConfig != nil {
		cfg = merge(cfg, projectConfig)
	}

	cfg = applyEnv(cfg)

	if flagOverrides != nil {
		cfg = merge(cfg, flagOverrides)
	}

	return cfg, nil
}

func homeConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".aiscope", "config.yaml")
}

func projectConfigPath() string {
	if override := strings.TrimSpace(os.Getenv("AISCOPE_CONFIG")); override != "" {
		return override
	}
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return filepath.Join(cwd, ".aiscope", "config.yaml")
}

func loadFromPath(path string) (*Config, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnv applies environment variable overrides.
func applyEnv(cfg *Config) *Config {
	if v := os.Getenv("AISCOPE_OUTPUT"); v != "" {
		cfg.Output = v
	}
	if v := os.Getenv("AISCOPE_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("AISCOPE_LEVEL"); v != "" {
		cfg.Level = v
	}
	if v := os.Getenv("AISCOPE_VERBOSE"); v == "true" || v == "1" {
		cfg.Verbose = true
	}
	return cfg
}

// mergeStr overwrites dst with src when src is non-empty.
func mergeStr(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

// mergeInt overwrites dst with src when src is non-zero.
func mergeInt(dst *int, src int) {
	if src != 0 {
		*dst = src
	}
}

// merge merges src into dst, with src values taking precedence.
func merge(dst, src *Config) *Config {
	mergeStr(&dst.Output, src.Output)
	mergeStr(&dst.DBPath, src.DBPath)
	mergeStr(&dst.Level, src.Level)
	if src.Verbose {
		dst.Verbose = true
	}
	mergeInt(&dst.Thresholds.BlindApprovalTimeMs, src.Thresholds.BlindApprovalTimeMs)
	mergeInt(&dst.Thresholds.MaxAIPercentage, src.Thresholds.MaxAIPercentage)
	mergeInt(&dst.Thresholds.MinReviewTimeMs, src.Thresholds.MinReviewTimeMs)
	mergeInt(&dst.Thresholds.StreakThreshold, src.Thresholds.StreakThreshold)
	return dst
}
