package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/halcyon-ops/aiscope/internal/classify"
	"github.com/halcyon-ops/aiscope/internal/tracking"
	"github.com/halcyon-ops/aiscope/internal/worker"
)

var ingestConcurrency int

var ingestCmd = &cobra.Command{
	Use:   "ingest <file>...",
	Short: "Load tracker export files into the local database",
	Long: `Parse one or more JSONL export files produced by an editor tracking
plugin and store their events. Daily aggregate metrics are recomputed for
every day the batch touches.

Each line of an export file is one tracking event as JSON. Blank and
malformed lines are skipped.

Examples:
  aiscope ingest events.jsonl
  aiscope ingest exports/*.jsonl --concurrency 8`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	ingestCmd.Flags().IntVar(&ingestConcurrency, "concurrency", 0, "Parallel file parsers (default: NumCPU)")
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	results := worker.Map(args, ingestConcurrency, parseEventFile)

	var events []tracking.TrackingEvent
	for _, r := range results {
		if r.Err != nil {
			return fmt.Errorf("parse %s: %w", args[r.Index], r.Err)
		}
		VerbosePrintf("parsed %s: %d events\n", args[r.Index], len(r.Value))
		events = append(events, r.Value...)
	}

	days := make(map[string]bool)
	for _, ev := range events {
		if _, err := st.InsertEvent(ev); err != nil {
			return err
		}
		days[ev.Timestamp.UTC().Format(time.DateOnly)] = true
	}

	if err := recomputeDays(st, days); err != nil {
		return err
	}

	fmt.Printf("ingested %d events across %d days\n", len(events), len(days))
	return nil
}

// parseEventFile reads one JSONL export. Lines that do not parse are skipped
// rather than failing the file; trackers crash mid-write too.
func parseEventFile(path string) ([]tracking.TrackingEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var events []tracking.TrackingEvent
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var ev tracking.TrackingEvent
		if err := json.Unmarshal(line, &ev); err != nil {
			continue
		}
		events = append(events, ev)
	}
	return events, scanner.Err()
}

// recomputeDays rebuilds the daily aggregate row for each touched day from
// the full stored event set, so repeated ingests stay idempotent.
func recomputeDays(st storeIface, days map[string]bool) error {
	if len(days) == 0 {
		return nil
	}

	earliest := ""
	for day := range days {
		if earliest == "" || day < earliest {
			earliest = day
		}
	}
	since, err := time.Parse(time.DateOnly, earliest)
	if err != nil {
		return fmt.Errorf("parse day %q: %w", earliest, err)
	}

	stored, err := st.ListEventsSince(since)
	if err != nil {
		return err
	}

	byDay := make(map[string][]tracking.TrackingEvent)
	for _, ev := range stored {
		day := ev.Timestamp.UTC().Format(time.DateOnly)
		if days[day] {
			byDay[day] = append(byDay[day], ev)
		}
	}

	for day, evs := range byDay {
		if err := st.UpsertDailyMetrics(aggregateDay(day, evs)); err != nil {
			return err
		}
	}
	return nil
}

// storeIface is the slice of the store that ingest aggregation needs.
type storeIface interface {
	ListEventsSince(since time.Time) ([]tracking.TrackingEvent, error)
	UpsertDailyMetrics(m tracking.DailyMetrics) error
}

// aggregateDay folds one day's events into its metrics row. AI lines come
// from the mode classifier so agent deletions are counted the same way the
// report command counts them; manual lines come straight from the events.
func aggregateDay(day string, events []tracking.TrackingEvent) tracking.DailyMetrics {
	agg := classify.ClassifyWindow(events)
	aiLines := agg.Agent.Lines + agg.Inline.Lines + agg.ChatPaste.Lines

	manualLines := 0
	acceptances := 0
	var reviewSum int64
	var reviewed int
	for _, ev := range events {
		if ev.Source == tracking.SourceManual {
			manualLines += ev.LinesOfCode
			continue
		}
		if ev.EventType == tracking.EventSuggestionAccepted {
			acceptances++
			if ev.AcceptanceTimeMs > 0 {
				reviewSum += ev.AcceptanceTimeMs
				reviewed++
			}
		}
	}

	m := tracking.DailyMetrics{
		Day:         day,
		TotalLines:  aiLines + manualLines,
		AILines:     aiLines,
		Events:      len(events),
		Acceptances: acceptances,
	}
	if m.TotalLines > 0 {
		m.AIPercentage = float64(aiLines) / float64(m.TotalLines) * 100
	}
	if reviewed > 0 {
		m.AvgReviewTimeMs = float64(reviewSum) / float64(reviewed)
	}
	return m
}
