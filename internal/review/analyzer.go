// Package review scores how well each accepted AI suggestion was reviewed
// before acceptance. Every acceptance gets a 0-100 score from four weighted
// factors (timing on a sigmoid curve, size/language complexity, the recent
// behavioral pattern, and acceptance context), a category, and a list of
// human-readable insights. The only state is a bounded FIFO of recent
// acceptances feeding the pattern factor.
package review

import (
	"math"
	"sync"

	"github.com/halcyon-ops/aiscope/internal/threshold"
	"github.com/halcyon-ops/aiscope/internal/tracking"
)

// Category buckets an overall score.
type Category string

const (
	// CategoryThorough: score 70 and above.
	CategoryThorough Category = "thorough"

	// CategoryLight: score 40-69.
	CategoryLight Category = "light"

	// CategoryNone: score below 40.
	CategoryNone Category = "none"
)

// Categorize maps a score to its category. Exhaustive and mutually exclusive.
func Categorize(score int) Category {
	switch {
	case score >= 70:
		return CategoryThorough
	case score >= 40:
		return CategoryLight
	default:
		return CategoryNone
	}
}

// Context carries per-acceptance facts supplied by the session tracker.
type Context struct {
	// FileOpen records whether the file was open at acceptance.
	FileOpen tracking.TriBool

	// AgentMode is set when the acceptance happened while an agent was
	// driving the editor.
	AgentMode bool

	// AgentSessionID links the acceptance to an agent session, when known.
	AgentSessionID string
}

// Factors are the four sub-scores, each 0-100.
type Factors struct {
	TimeScore       int `json:"time_score"`
	ComplexityScore int `json:"complexity_score"`
	PatternScore    int `json:"pattern_score"`
	ContextScore    int `json:"context_score"`
}

// Analysis is the scoring output for one acceptance.
type Analysis struct {
	// Score is the weighted overall quality, an integer in [0, 100].
	Score int `json:"score"`

	// Category buckets the score.
	Category Category `json:"category"`

	// Factors are the sub-scores behind Score.
	Factors Factors `json:"factors"`

	// ExpectedReviewTimeMs is the target review time for this change.
	ExpectedReviewTimeMs int64 `json:"expected_review_time_ms"`

	// ActualReviewTimeMs is the observed review time; zero when unknown.
	ActualReviewTimeMs int64 `json:"actual_review_time_ms"`

	// Insights are ordered human-readable notes. Factors sitting in their
	// mid range produce no note; absence of comment means unremarkable.
	Insights []string `json:"insights"`
}

// Analyzer scores acceptances and maintains the rolling history behind the
// pattern factor. The window is mutex-guarded so concurrent callers cannot
// interleave push and evict.
type Analyzer struct {
	mu         sync.Mutex
	thresholds *threshold.Manager
	window     eventWindow
}

// NewAnalyzer creates an analyzer reading its review-time floor from the
// given threshold manager.
func NewAnalyzer(thresholds *threshold.Manager) *Analyzer {
	return &Analyzer{thresholds: thresholds}
}

// Analyze scores one acceptance. The event joins the rolling window before
// the pattern factor is computed, so the factor goes data-driven on the
// third call. Total over all inputs: missing data degrades to neutral
// defaults, never to an error.
func (a *Analyzer) Analyze(ev tracking.TrackingEvent, ctx *Context) Analysis {
	a.mu.Lock()
	defer a.mu.Unlock()

	cfg := a.thresholds.Config()
	a.window.push(ev)
	return a.score(ev, ctx, cfg)
}

// score computes an analysis without touching the window. Callers hold a.mu.
func (a *Analyzer) score(ev tracking.TrackingEvent, ctx *Context, cfg threshold.Config) Analysis {
	actual := float64(ev.AcceptanceTimeMs)
	expected := expectedReviewMs(ev.LinesOfCode, ev.Language, cfg.MinReviewTimeMs)

	timeScore := timeFactor(actual, expected)
	complexityScore := complexityFactor(ev.LinesOfCode, ev.Language, actual, cfg.MinReviewTimeMs)
	patternScore := patternFactor(a.window.events(), cfg.MinReviewTimeMs)
	contextScore := contextFactor(ctx)

	overall := timeScore*weightTime +
		complexityScore*weightComplexity +
		patternScore*weightPattern +
		contextScore*weightContext
	score := int(clampScore(math.Round(overall)))

	analysis := Analysis{
		Score:    score,
		Category: Categorize(score),
		Factors: Factors{
			TimeScore:       int(math.Round(timeScore)),
			ComplexityScore: int(math.Round(complexityScore)),
			PatternScore:    int(math.Round(patternScore)),
			ContextScore:    int(math.Round(contextScore)),
		},
		ExpectedReviewTimeMs: int64(expected),
		ActualReviewTimeMs:   ev.AcceptanceTimeMs,
	}
	analysis.Insights = buildInsights(ev, ctx, analysis)
	return analysis
}

// Reset empties the rolling window; the pattern factor returns to neutral
// until three new acceptances accumulate.
func (a *Analyzer) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.window.reset()
}

// WindowLen reports how many acceptances the rolling window currently holds.
func (a *Analyzer) WindowLen() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.window.len()
}

// Stats summarizes the current window for telemetry.
type Stats struct {
	Analyzed  int     `json:"analyzed"`
	Thorough  int     `json:"thorough"`
	Light     int     `json:"light"`
	None      int     `json:"none"`
	MeanScore float64 `json:"mean_score"`
}

// Stats re-scores every event in the rolling window and returns category
// counts plus the mean score. Retained events carry no acceptance context,
// so the context factor is neutral here. A self-check summary only; nothing
// inside the analyzer reads it.
func (a *Analyzer) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()

	cfg := a.thresholds.Config()
	events := a.window.events()

	stats := Stats{Analyzed: len(events)}
	if len(events) == 0 {
		return stats
	}

	var sum int
	for _, ev := range events {
		analysis := a.score(ev, nil, cfg)
		sum += analysis.Score
		switch analysis.Category {
		case CategoryThorough:
			stats.Thorough++
		case CategoryLight:
			stats.Light++
		case CategoryNone:
			stats.None++
		}
	}
	stats.MeanScore = float64(sum) / float64(len(events))
	return stats
}
