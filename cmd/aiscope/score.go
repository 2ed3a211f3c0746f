package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/halcyon-ops/aiscope/internal/formatter"
	"github.com/halcyon-ops/aiscope/internal/review"
	"github.com/halcyon-ops/aiscope/internal/threshold"
	"github.com/halcyon-ops/aiscope/internal/tracking"
)

var scoreSince string

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Review-quality scores for accepted suggestions",
	Long: `Score every accepted AI suggestion in the window on how thoroughly it
was reviewed before acceptance. Each acceptance gets a 0-100 score from
timing, change complexity, the recent acceptance pattern, and context, plus
a category (thorough, light, none) and insight notes.

The summary also checks today's aggregate metrics against the active
threshold policy.

Examples:
  aiscope score
  aiscope score --since 30d -o json`,
	RunE: runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)
	scoreCmd.Flags().StringVar(&scoreSince, "since", "7d", "Time window (e.g., 7d, 30d, 1w)")
}

// scoredAcceptance pairs an analysis with the event facts worth showing.
type scoredAcceptance struct {
	Timestamp time.Time       `json:"timestamp"`
	Lines     int             `json:"lines"`
	Language  string          `json:"language"`
	Analysis  review.Analysis `json:"analysis"`
}

// scoreResult is the JSON output shape.
type scoreResult struct {
	Acceptances []scoredAcceptance    `json:"acceptances"`
	Stats       review.Stats          `json:"stats"`
	Checks      threshold.MetricFlags `json:"checks"`
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	dur, err := parseDuration(scoreSince)
	if err != nil {
		return err
	}

	events, err := st.ListEventsSince(time.Now().Add(-dur))
	if err != nil {
		return err
	}

	mgr := newThresholdManager(cfg)
	analyzer := review.NewAnalyzer(mgr)

	var scored []scoredAcceptance
	for _, ev := range events {
		if ev.Source != tracking.SourceAI || ev.EventType != tracking.EventSuggestionAccepted {
			continue
		}
		ctx := &review.Context{
			FileOpen:       ev.FileWasOpen,
			AgentMode:      ev.AgentMode,
			AgentSessionID: ev.AgentSessionID,
		}
		scored = append(scored, scoredAcceptance{
			Timestamp: ev.Timestamp,
			Lines:     ev.LinesOfCode,
			Language:  ev.Language,
			Analysis:  analyzer.Analyze(ev, ctx),
		})
	}

	today := time.Now().UTC().Format(time.DateOnly)
	daily, _, err := st.GetDailyMetrics(today)
	if err != nil {
		return err
	}

	result := scoreResult{
		Acceptances: scored,
		Stats:       analyzer.Stats(),
		Checks:      mgr.CheckMetrics(daily),
	}

	if cfg.Output == "json" {
		return formatter.JSON(os.Stdout, result)
	}
	return printScoreTable(result)
}

func printScoreTable(result scoreResult) error {
	if len(result.Acceptances) == 0 {
		fmt.Println("no accepted AI suggestions in the window")
		return nil
	}

	table := formatter.NewTable(os.Stdout, "WHEN", "LINES", "LANGUAGE", "SCORE", "REVIEW", "NOTE")
	for _, a := range result.Acceptances {
		note := ""
		if len(a.Analysis.Insights) > 0 {
			note = formatter.Truncate(a.Analysis.Insights[0], 60)
		}
		table.Row(
			a.Timestamp.Local().Format("Jan 02 15:04"),
			fmt.Sprintf("%d", a.Lines),
			a.Language,
			fmt.Sprintf("%d", a.Analysis.Score),
			categoryLabel(a.Analysis.Category),
			note,
		)
	}
	if err := table.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("%s  %d scored, mean %.1f (%d thorough / %d light / %d none)\n",
		headStyle.Render("Window:"), result.Stats.Analyzed, result.Stats.MeanScore,
		result.Stats.Thorough, result.Stats.Light, result.Stats.None)
	fmt.Printf("%s  AI share %s, review time %s\n",
		headStyle.Render("Today: "),
		checkLabel(result.Checks.AIPercentageExceeded),
		checkLabel(result.Checks.ReviewTimeBelowMinimum))
	return nil
}
