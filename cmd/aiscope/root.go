package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/halcyon-ops/aiscope/internal/config"
	"github.com/halcyon-ops/aiscope/internal/store"
	"github.com/halcyon-ops/aiscope/internal/threshold"
)

var (
	// Global flags
	verbose bool
	output  string
	cfgFile string
	dbPath  string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "aiscope",
	Short: "AI usage observability for your editor sessions",
	Long: `aiscope ingests AI-assist tracking events exported by editor plugins,
classifies every event into a usage mode (agent, inline, chat-paste), and
scores how thoroughly each accepted suggestion was reviewed.

Core Commands:
  ingest      Load tracker export files into the local database
  report      Usage-mode breakdown for a time window
  score       Review-quality scores for accepted suggestions
  thresholds  Inspect and tune the review policy
  version     Show version information`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		syncConfigFlagToEnv()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags available to all commands
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "Output format (table, json)")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: .aiscope/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database path (default: .aiscope/aiscope.db)")
}

// syncConfigFlagToEnv makes --config visible to the config loader, which
// resolves the project config path through AISCOPE_CONFIG.
func syncConfigFlagToEnv() {
	if cfgFile != "" {
		os.Setenv("AISCOPE_CONFIG", cfgFile)
	}
}

// loadConfig resolves configuration with the global flags layered on top.
func loadConfig() (*config.Config, error) {
	overrides := &config.Config{
		Output:  output,
		DBPath:  dbPath,
		Verbose: verbose,
	}
	return config.Load(overrides)
}

// openStore opens the configured database.
func openStore(cfg *config.Config) (*store.Store, error) {
	return store.Open(cfg.DBPath)
}

// newThresholdManager builds the policy manager from the configured tier and
// applies any per-field overrides through the clamping setters.
func newThresholdManager(cfg *config.Config) *threshold.Manager {
	mgr := threshold.NewManager(threshold.Level(cfg.Level))
	if v := cfg.Thresholds.BlindApprovalTimeMs; v != 0 {
		mgr.SetBlindApprovalTime(v)
	}
	if v := cfg.Thresholds.MaxAIPercentage; v != 0 {
		mgr.SetMaxAIPercentage(v)
	}
	if v := cfg.Thresholds.MinReviewTimeMs; v != 0 {
		mgr.SetMinReviewTime(v)
	}
	if v := cfg.Thresholds.StreakThreshold; v != 0 {
		mgr.SetStreakThreshold(v)
	}
	return mgr
}

// VerbosePrintf prints only when verbose mode is enabled.
func VerbosePrintf(format string, args ...interface{}) {
	if verbose {
		fmt.Printf(format, args...)
	}
}

// parseDuration parses durations like "7d", "30d", "1w", falling back to
// time.ParseDuration for anything else.
func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)

	if strings.HasSuffix(s, "d") {
		var days int
		_, err := fmt.Sscanf(s, "%dd", &days)
		if err != nil {
			return 0, fmt.Errorf("invalid days format: %s", s)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}

	if strings.HasSuffix(s, "w") {
		var weeks int
		_, err := fmt.Sscanf(s, "%dw", &weeks)
		if err != nil {
			return 0, fmt.Errorf("invalid weeks format: %s", s)
		}
		return time.Duration(weeks) * 7 * 24 * time.Hour, nil
	}

	return time.ParseDuration(s)
}
