package config

import (
	"os"
	"path/filepath"
	"testing"
)

// isolate points every config source at an empty temp location so tests do
// not read the developer's real config.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("AISCOPE_CONFIG", filepath.Join(dir, "does-not-exist.yaml"))
	t.Setenv("AISCOPE_OUTPUT", "")
	t.Setenv("AISCOPE_DB", "")
	t.Setenv("AISCOPE_LEVEL", "")
	t.Setenv("AISCOPE_VERBOSE", "")
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Output != "table" {
		t.Errorf("Output = %q, want table", cfg.Output)
	}
	if cfg.DBPath != ".aiscope/aiscope.db" {
		t.Errorf("DBPath = %q, want .aiscope/aiscope.db", cfg.DBPath)
	}
	if cfg.Level != "mid" {
		t.Errorf("Level = %q, want mid", cfg.Level)
	}
	if cfg.Verbose {
		t.Error("Verbose = true, want false")
	}
}

func TestLoadProjectConfig(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, "config.yaml")
	content := `output: json
level: senior
thresholds:
  min_review_time_ms: 3000
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("AISCOPE_CONFIG", path)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Output != "json" {
		t.Errorf("Output = %q, want json", cfg.Output)
	}
	if cfg.Level != "senior" {
		t.Errorf("Level = %q, want senior", cfg.Level)
	}
	if cfg.Thresholds.MinReviewTimeMs != 3000 {
		t.Errorf("Thresholds.MinReviewTimeMs = %d, want 3000", cfg.Thresholds.MinReviewTimeMs)
	}
	// Untouched fields keep their defaults.
	if cfg.DBPath != ".aiscope/aiscope.db" {
		t.Errorf("DBPath = %q, want default", cfg.DBPath)
	}
}

func TestLoadEnvBeatsFile(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("level: junior\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("AISCOPE_CONFIG", path)
	t.Setenv("AISCOPE_LEVEL", "senior")
	t.Setenv("AISCOPE_VERBOSE", "1")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Level != "senior" {
		t.Errorf("Level = %q, want senior from env", cfg.Level)
	}
	if !cfg.Verbose {
		t.Error("Verbose = false, want true from env")
	}
}

func TestLoadFlagsBeatEverything(t *testing.T) {
	isolate(t)
	t.Setenv("AISCOPE_OUTPUT", "json")

	cfg, err := Load(&Config{Output: "table", DBPath: "/tmp/other.db"})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Output != "table" {
		t.Errorf("Output = %q, want table from flag", cfg.Output)
	}
	if cfg.DBPath != "/tmp/other.db" {
		t.Errorf("DBPath = %q, want /tmp/other.db from flag", cfg.DBPath)
	}
}

func TestMergeLeavesZeroFields(t *testing.T) {
	dst := Default()
	got := merge(dst, &Config{})

	if *got != *Default() {
		t.Errorf("merge with empty overrides = %+v, want defaults %+v", got, Default())
	}
}
