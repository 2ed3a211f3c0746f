package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/halcyon-ops/aiscope/internal/formatter"
	"github.com/halcyon-ops/aiscope/internal/threshold"
)

var (
	setLevel         string
	setBlindApproval int
	setMaxAIPct      int
	setMinReview     int
	setStreak        int

	exportPath string
)

var thresholdsCmd = &cobra.Command{
	Use:   "thresholds",
	Short: "Inspect and tune the review policy",
	Long: `The review policy is seeded from your experience tier (junior, mid,
senior) and can be adjusted field by field. Every adjustment is clamped into
a safe range rather than rejected.

Policy persists through your config file: put adjusted values under a
"thresholds:" key in .aiscope/config.yaml, or use export/import to move a
policy between machines.`,
}

var thresholdsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active policy",
	RunE:  runThresholdsShow,
}

var thresholdsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Preview a policy adjustment",
	Long: `Apply one or more field adjustments on top of the active policy and
print the clamped result. Copy the values you want to keep into the
"thresholds:" section of your config file.

Examples:
  aiscope thresholds set --level senior
  aiscope thresholds set --blind-approval-ms 2500 --streak 6`,
	RunE: runThresholdsSet,
}

var thresholdsSuggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Propose a blind-approval allowance from recent history",
	RunE:  runThresholdsSuggest,
}

var thresholdsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the active policy as YAML",
	RunE:  runThresholdsExport,
}

var thresholdsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Load a policy from YAML and print the clamped result",
	Args:  cobra.ExactArgs(1),
	RunE:  runThresholdsImport,
}

func init() {
	rootCmd.AddCommand(thresholdsCmd)
	thresholdsCmd.AddCommand(thresholdsShowCmd)
	thresholdsCmd.AddCommand(thresholdsSetCmd)
	thresholdsCmd.AddCommand(thresholdsSuggestCmd)
	thresholdsCmd.AddCommand(thresholdsExportCmd)
	thresholdsCmd.AddCommand(thresholdsImportCmd)

	thresholdsSetCmd.Flags().StringVar(&setLevel, "level", "", "Experience tier (junior, mid, senior)")
	thresholdsSetCmd.Flags().IntVar(&setBlindApproval, "blind-approval-ms", 0, "Blind-approval allowance in ms")
	thresholdsSetCmd.Flags().IntVar(&setMaxAIPct, "max-ai-percentage", 0, "Daily AI-share cap")
	thresholdsSetCmd.Flags().IntVar(&setMinReview, "min-review-ms", 0, "Review-time floor in ms")
	thresholdsSetCmd.Flags().IntVar(&setStreak, "streak", 0, "Quick-acceptance streak length")

	thresholdsExportCmd.Flags().StringVar(&exportPath, "file", "", "Write to file instead of stdout")
}

func runThresholdsShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	mgr := newThresholdManager(cfg)
	return printPolicy(cfg.Output, mgr)
}

func runThresholdsSet(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	mgr := newThresholdManager(cfg)
	if setLevel != "" {
		mgr.SetLevel(threshold.Level(setLevel))
	}
	if setBlindApproval != 0 {
		mgr.SetBlindApprovalTime(setBlindApproval)
	}
	if setMaxAIPct != 0 {
		mgr.SetMaxAIPercentage(setMaxAIPct)
	}
	if setMinReview != 0 {
		mgr.SetMinReviewTime(setMinReview)
	}
	if setStreak != 0 {
		mgr.SetStreakThreshold(setStreak)
	}
	return printPolicy(cfg.Output, mgr)
}

func runThresholdsSuggest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	recent, err := st.RecentDailyMetrics(7)
	if err != nil {
		return err
	}

	mgr := newThresholdManager(cfg)
	suggestion := mgr.SuggestAdaptiveThreshold(recent)

	if cfg.Output == "json" {
		return formatter.JSON(os.Stdout, suggestion)
	}

	if suggestion.Changed {
		fmt.Printf("suggest blind-approval allowance %s -> %s\n",
			dimStyle.Render(fmt.Sprintf("%dms", mgr.Config().BlindApprovalTimeMs)),
			headStyle.Render(fmt.Sprintf("%dms", suggestion.BlindApprovalTimeMs)))
	} else {
		fmt.Printf("keeping blind-approval allowance at %dms\n", suggestion.BlindApprovalTimeMs)
	}
	fmt.Println(suggestion.Reason)
	return nil
}

func runThresholdsExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(newThresholdManager(cfg).Export())
	if err != nil {
		return fmt.Errorf("marshal policy: %w", err)
	}

	if exportPath == "" {
		fmt.Print(string(data))
		return nil
	}
	if err := os.WriteFile(exportPath, data, 0o644); err != nil {
		return fmt.Errorf("write policy: %w", err)
	}
	fmt.Printf("wrote policy to %s\n", exportPath)
	return nil
}

func runThresholdsImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	var policy threshold.Config
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return fmt.Errorf("parse policy: %w", err)
	}

	mgr := newThresholdManager(cfg)
	mgr.Import(policy)
	return printPolicy(cfg.Output, mgr)
}

func printPolicy(format string, mgr *threshold.Manager) error {
	policy := mgr.Config()

	if format == "json" {
		return formatter.JSON(os.Stdout, struct {
			Level  threshold.Level  `json:"level"`
			Policy threshold.Config `json:"policy"`
		}{mgr.Level(), policy})
	}

	fmt.Printf("%s %s\n\n", headStyle.Render("Tier:"), mgr.Level())
	table := formatter.NewTable(os.Stdout, "FIELD", "VALUE", "RANGE")
	table.Row("blind_approval_time_ms", fmt.Sprintf("%d", policy.BlindApprovalTimeMs),
		fmt.Sprintf("[%d, %d]", threshold.MinBlindApprovalMs, threshold.MaxBlindApprovalMs))
	table.Row("max_ai_percentage", fmt.Sprintf("%d", policy.MaxAIPercentage),
		fmt.Sprintf("[%d, %d]", threshold.MinAIPercentage, threshold.MaxAIPercentage))
	table.Row("min_review_time_ms", fmt.Sprintf("%d", policy.MinReviewTimeMs),
		fmt.Sprintf("[%d, %d]", threshold.MinReviewMs, threshold.MaxReviewMs))
	table.Row("streak_threshold", fmt.Sprintf("%d", policy.StreakThreshold),
		fmt.Sprintf("[%d, %d]", threshold.MinStreak, threshold.MaxStreak))
	return table.Flush()
}
