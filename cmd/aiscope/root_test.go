package main

import (
	"testing"
	"time"

	"github.com/halcyon-ops/aiscope/internal/config"
	"github.com/halcyon-ops/aiscope/internal/threshold"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		want    time.Duration
	}{
		{"days", "7d", false, 7 * 24 * time.Hour},
		{"days 30", "30d", false, 30 * 24 * time.Hour},
		{"weeks", "1w", false, 7 * 24 * time.Hour},
		{"weeks multiple", "4w", false, 4 * 7 * 24 * time.Hour},
		{"hours", "48h", false, 48 * time.Hour},
		{"whitespace", " 7d ", false, 7 * 24 * time.Hour},
		{"invalid", "invalid", true, 0},
		{"empty", "", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDuration(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseDuration(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if err == nil && got != tt.want {
				t.Errorf("parseDuration(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := map[string]bool{
		"ingest":     false,
		"report":     false,
		"score":      false,
		"thresholds": false,
		"version":    false,
	}
	for _, cmd := range rootCmd.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestThresholdsSubcommands(t *testing.T) {
	want := map[string]bool{
		"show": false, "set": false, "suggest": false, "export": false, "import": false,
	}
	for _, cmd := range thresholdsCmd.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("thresholds subcommand %q not registered", name)
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	for _, name := range []string{"verbose", "output", "config", "db"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("--%s flag not found", name)
		}
	}
}

func TestNewThresholdManagerAppliesOverrides(t *testing.T) {
	cfg := &config.Config{
		Level: "senior",
		Thresholds: config.ThresholdOverrides{
			BlindApprovalTimeMs: 99999, // clamped to the ceiling
			StreakThreshold:     7,
		},
	}

	mgr := newThresholdManager(cfg)

	if got := mgr.Level(); got != threshold.LevelSenior {
		t.Errorf("Level = %q, want senior", got)
	}
	policy := mgr.Config()
	if policy.BlindApprovalTimeMs != 10000 {
		t.Errorf("BlindApprovalTimeMs = %d, want clamped 10000", policy.BlindApprovalTimeMs)
	}
	if policy.StreakThreshold != 7 {
		t.Errorf("StreakThreshold = %d, want 7", policy.StreakThreshold)
	}
	// Fields without overrides keep the senior defaults.
	if policy.MaxAIPercentage != 80 {
		t.Errorf("MaxAIPercentage = %d, want senior default 80", policy.MaxAIPercentage)
	}
}
