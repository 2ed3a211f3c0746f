package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/halcyon-ops/aiscope/internal/classify"
	"github.com/halcyon-ops/aiscope/internal/formatter"
)

var reportSince string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Usage-mode breakdown for a time window",
	Long: `Classify every stored event in the window into its usage mode and
show per-mode lines, events, and share of AI-attributed lines. The agent
bucket also reports review coverage of files the agent modified while they
were closed.

Examples:
  aiscope report
  aiscope report --since 30d
  aiscope report --since 1w -o json`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVar(&reportSince, "since", "7d", "Time window (e.g., 7d, 30d, 1w)")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	dur, err := parseDuration(reportSince)
	if err != nil {
		return err
	}
	since := time.Now().Add(-dur)

	events, err := st.ListEventsSince(since)
	if err != nil {
		return err
	}

	agg := classify.ClassifyWindow(events)

	reviews, err := st.ListFileReviewsSince(since.UTC().Format(time.DateOnly))
	if err != nil {
		return err
	}
	classify.ApplyFileReviews(&agg, reviews)

	if cfg.Output == "json" {
		return formatter.JSON(os.Stdout, agg)
	}
	return printReportTable(agg, len(events))
}

func printReportTable(agg classify.Aggregate, totalEvents int) error {
	fmt.Println(headStyle.Render(fmt.Sprintf("AI usage over the last %s (%d events)", reportSince, totalEvents)))
	fmt.Println()

	table := formatter.NewTable(os.Stdout, "MODE", "LINES", "EVENTS", "SHARE", "DETAIL")
	table.Row(
		modeLabel(classify.ModeAgent),
		fmt.Sprintf("%d", agg.Agent.Lines),
		fmt.Sprintf("%d", agg.Agent.Events),
		fmt.Sprintf("%d%%", agg.Agent.Percentage),
		agentDetail(agg.Agent),
	)
	table.Row(
		modeLabel(classify.ModeInline),
		fmt.Sprintf("%d", agg.Inline.Lines),
		fmt.Sprintf("%d", agg.Inline.Events),
		fmt.Sprintf("%d%%", agg.Inline.Percentage),
		inlineDetail(agg.Inline),
	)
	table.Row(
		modeLabel(classify.ModeChatPaste),
		fmt.Sprintf("%d", agg.ChatPaste.Lines),
		fmt.Sprintf("%d", agg.ChatPaste.Events),
		fmt.Sprintf("%d%%", agg.ChatPaste.Percentage),
		"",
	)
	return table.Flush()
}

func agentDetail(s classify.AgentStats) string {
	if s.TotalFiles == 0 {
		return ""
	}
	detail := fmt.Sprintf("%d/%d closed files reviewed", s.ReviewedFiles, s.TotalFiles)
	if s.ReviewedFiles < s.TotalFiles {
		return warnStyle.Render(detail)
	}
	return goodStyle.Render(detail)
}

func inlineDetail(s classify.InlineStats) string {
	if s.Acceptances == 0 {
		return ""
	}
	return fmt.Sprintf("%d acceptances (%d quick)", s.Acceptances, s.QuickAcceptances)
}
