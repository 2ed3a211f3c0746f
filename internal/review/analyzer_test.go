package review

import (
	"strings"
	"testing"

	"github.com/halcyon-ops/aiscope/internal/threshold"
	"github.com/halcyon-ops/aiscope/internal/tracking"
)

// newTestAnalyzer pins the review floor at 500ms so factor math in these
// tests is not coupled to tier defaults.
func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	mgr := threshold.NewManager(threshold.LevelMid)
	mgr.SetMinReviewTime(500)
	return NewAnalyzer(mgr)
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		score int
		want  Category
	}{
		{100, CategoryThorough},
		{70, CategoryThorough},
		{69, CategoryLight},
		{40, CategoryLight},
		{39, CategoryNone},
		{0, CategoryNone},
	}

	for _, tt := range tests {
		if got := Categorize(tt.score); got != tt.want {
			t.Errorf("Categorize(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestAnalyzeThoroughReview(t *testing.T) {
	a := newTestAnalyzer(t)

	got := a.Analyze(tracking.TrackingEvent{
		LinesOfCode:      10,
		Language:         "go",
		AcceptanceTimeMs: 20000,
	}, &Context{FileOpen: tracking.TriTrue})

	if got.Category != CategoryThorough {
		t.Errorf("Category = %q (score %d), want thorough", got.Category, got.Score)
	}
	if got.Score < 80 || got.Score > 100 {
		t.Errorf("Score = %d, want in [80, 100]", got.Score)
	}
	if got.ExpectedReviewTimeMs != 7000 {
		t.Errorf("ExpectedReviewTimeMs = %d, want 7000", got.ExpectedReviewTimeMs)
	}
	if got.ActualReviewTimeMs != 20000 {
		t.Errorf("ActualReviewTimeMs = %d, want 20000", got.ActualReviewTimeMs)
	}
}

func TestAnalyzeBlindAcceptance(t *testing.T) {
	a := newTestAnalyzer(t)

	got := a.Analyze(tracking.TrackingEvent{
		LinesOfCode:      100,
		Language:         "rust",
		AcceptanceTimeMs: 1000,
	}, &Context{FileOpen: tracking.TriFalse, AgentMode: true})

	if got.Category != CategoryNone {
		t.Errorf("Category = %q (score %d), want none", got.Category, got.Score)
	}
	if got.Score >= 40 {
		t.Errorf("Score = %d, want < 40", got.Score)
	}
	if got.ExpectedReviewTimeMs != 100000 {
		t.Errorf("ExpectedReviewTimeMs = %d, want 100000", got.ExpectedReviewTimeMs)
	}
}

func TestAnalyzeMissingDataIsNeutral(t *testing.T) {
	a := newTestAnalyzer(t)

	got := a.Analyze(tracking.TrackingEvent{}, nil)

	if got.Factors.TimeScore != 50 {
		t.Errorf("TimeScore = %d, want neutral 50", got.Factors.TimeScore)
	}
	if got.Factors.ComplexityScore != 50 {
		t.Errorf("ComplexityScore = %d, want neutral 50", got.Factors.ComplexityScore)
	}
	if got.Factors.ContextScore != 50 {
		t.Errorf("ContextScore = %d, want neutral 50", got.Factors.ContextScore)
	}
	if got.Score != 50 {
		t.Errorf("Score = %d, want 50 when every factor is neutral", got.Score)
	}
	if got.Category != CategoryLight {
		t.Errorf("Category = %q, want light", got.Category)
	}
}

func TestAnalyzeScoreBounds(t *testing.T) {
	a := newTestAnalyzer(t)

	events := []tracking.TrackingEvent{
		{},
		{LinesOfCode: 1, AcceptanceTimeMs: 1},
		{LinesOfCode: 10000, Language: "rust", AcceptanceTimeMs: 1},
		{LinesOfCode: 1, Language: "go", AcceptanceTimeMs: 1 << 40},
		{LinesOfCode: -5, AcceptanceTimeMs: -100},
	}
	for _, ev := range events {
		got := a.Analyze(ev, nil)
		if got.Score < 0 || got.Score > 100 {
			t.Errorf("Analyze(%+v).Score = %d, out of [0, 100]", ev, got.Score)
		}
	}
}

func TestAnalyzePatternWarmup(t *testing.T) {
	a := newTestAnalyzer(t)
	good := tracking.TrackingEvent{LinesOfCode: 10, AcceptanceTimeMs: 6000}

	// The pattern factor stays neutral until the window holds three events.
	// The scored event itself joins the window first, so the third call is
	// the first data-driven one.
	first := a.Analyze(good, nil)
	if first.Factors.PatternScore != 50 {
		t.Errorf("first PatternScore = %d, want neutral 50", first.Factors.PatternScore)
	}
	second := a.Analyze(good, nil)
	if second.Factors.PatternScore != 50 {
		t.Errorf("second PatternScore = %d, want neutral 50", second.Factors.PatternScore)
	}
	third := a.Analyze(good, nil)
	if third.Factors.PatternScore != 100 {
		t.Errorf("third PatternScore = %d, want 100", third.Factors.PatternScore)
	}

	// Stays at 100 through the sixth well-reviewed acceptance.
	var sixth Analysis
	for i := 0; i < 3; i++ {
		sixth = a.Analyze(good, nil)
	}
	if sixth.Factors.PatternScore != 100 {
		t.Errorf("sixth PatternScore = %d, want 100", sixth.Factors.PatternScore)
	}
	if a.WindowLen() != 6 {
		t.Errorf("WindowLen = %d, want 6", a.WindowLen())
	}
}

func TestAnalyzeWindowBounded(t *testing.T) {
	a := newTestAnalyzer(t)
	for i := 0; i < 25; i++ {
		a.Analyze(tracking.TrackingEvent{LinesOfCode: 5, AcceptanceTimeMs: 3000}, nil)
	}
	if a.WindowLen() != 10 {
		t.Errorf("WindowLen = %d, want capped at 10", a.WindowLen())
	}

	a.Reset()
	if a.WindowLen() != 0 {
		t.Errorf("WindowLen after Reset = %d, want 0", a.WindowLen())
	}
}

func TestAnalyzeInsights(t *testing.T) {
	a := newTestAnalyzer(t)

	got := a.Analyze(tracking.TrackingEvent{
		LinesOfCode:      80,
		Language:         "python",
		AcceptanceTimeMs: 2000,
	}, &Context{FileOpen: tracking.TriFalse, AgentMode: true})

	if len(got.Insights) == 0 {
		t.Fatal("no insights for a blind 80-line acceptance")
	}

	wantFragments := []string{
		"little or no review",
		"80 lines accepted with less review",
		"agent mode",
		"not open in the editor",
		"large change (80 lines) accepted in under 10 seconds",
	}
	for _, frag := range wantFragments {
		if !containsInsight(got.Insights, frag) {
			t.Errorf("insights missing %q; got %q", frag, got.Insights)
		}
	}
}

func TestAnalyzeQuietWhenUnremarkable(t *testing.T) {
	a := newTestAnalyzer(t)

	// Neutral everything: the only note is the category verdict.
	got := a.Analyze(tracking.TrackingEvent{}, nil)
	if len(got.Insights) != 1 {
		t.Errorf("Insights = %q, want only the verdict line", got.Insights)
	}
}

func TestStats(t *testing.T) {
	a := newTestAnalyzer(t)

	if got := a.Stats(); got.Analyzed != 0 || got.MeanScore != 0 {
		t.Errorf("Stats on empty analyzer = %+v, want zeros", got)
	}

	a.Analyze(tracking.TrackingEvent{LinesOfCode: 10, Language: "go", AcceptanceTimeMs: 20000}, nil)
	a.Analyze(tracking.TrackingEvent{LinesOfCode: 100, Language: "rust", AcceptanceTimeMs: 1000}, nil)

	got := a.Stats()
	if got.Analyzed != 2 {
		t.Errorf("Analyzed = %d, want 2", got.Analyzed)
	}
	if got.Thorough+got.Light+got.None != 2 {
		t.Errorf("category counts %d/%d/%d do not sum to 2", got.Thorough, got.Light, got.None)
	}
	if got.MeanScore < 0 || got.MeanScore > 100 {
		t.Errorf("MeanScore = %v, out of [0, 100]", got.MeanScore)
	}
}

func containsInsight(insights []string, fragment string) bool {
	for _, in := range insights {
		if strings.Contains(in, fragment) {
			return true
		}
	}
	return false
}
