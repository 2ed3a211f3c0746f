package threshold

import (
	"testing"

	"github.com/halcyon-ops/aiscope/internal/tracking"
)

func TestCheckMetrics(t *testing.T) {
	// Mid defaults: cap 60%, floor 2000ms.
	m := NewManager(LevelMid)

	tests := []struct {
		name  string
		daily tracking.DailyMetrics
		want  MetricFlags
	}{
		{
			"all clear",
			tracking.DailyMetrics{AIPercentage: 40, AvgReviewTimeMs: 3000},
			MetricFlags{},
		},
		{
			"ai share over cap",
			tracking.DailyMetrics{AIPercentage: 75, AvgReviewTimeMs: 3000},
			MetricFlags{AIPercentageExceeded: true},
		},
		{
			"ai share exactly at cap does not trip",
			tracking.DailyMetrics{AIPercentage: 60, AvgReviewTimeMs: 3000},
			MetricFlags{},
		},
		{
			"review time under floor",
			tracking.DailyMetrics{AIPercentage: 10, AvgReviewTimeMs: 1200},
			MetricFlags{ReviewTimeBelowMinimum: true},
		},
		{
			"unknown review time never trips",
			tracking.DailyMetrics{AIPercentage: 10, AvgReviewTimeMs: 0},
			MetricFlags{},
		},
		{
			"both trip",
			tracking.DailyMetrics{AIPercentage: 90, AvgReviewTimeMs: 100},
			MetricFlags{AIPercentageExceeded: true, ReviewTimeBelowMinimum: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.CheckMetrics(tt.daily)
			if got != tt.want {
				t.Errorf("CheckMetrics(%+v) = %+v, want %+v", tt.daily, got, tt.want)
			}
			if got.BlindApprovalStreak {
				t.Error("BlindApprovalStreak must stay false; the live check is disabled")
			}
		})
	}
}

func TestSuggestAdaptiveThresholdNoHistory(t *testing.T) {
	m := NewManager(LevelMid)

	got := m.SuggestAdaptiveThreshold([]tracking.DailyMetrics{
		{AvgReviewTimeMs: 0},
		{AvgReviewTimeMs: 0},
	})

	if got.Changed {
		t.Error("Changed = true with no usable history")
	}
	if got.BlindApprovalTimeMs != 2000 {
		t.Errorf("BlindApprovalTimeMs = %d, want current 2000", got.BlindApprovalTimeMs)
	}
}

func TestSuggestAdaptiveThresholdWithinRange(t *testing.T) {
	// Mid floor is 2000ms; average 3000ms is under the 2x bar.
	m := NewManager(LevelMid)

	got := m.SuggestAdaptiveThreshold([]tracking.DailyMetrics{
		{AvgReviewTimeMs: 3000},
		{AvgReviewTimeMs: 3000},
	})

	if got.Changed {
		t.Errorf("Changed = true for in-range pace: %+v", got)
	}
}

func TestSuggestAdaptiveThresholdSlowReviews(t *testing.T) {
	// Average 5000ms is over double the 2000ms floor. Current allowance is
	// 2000ms, so +500 beats 1.5x (3000) and the proposal is 2500.
	m := NewManager(LevelMid)

	got := m.SuggestAdaptiveThreshold([]tracking.DailyMetrics{
		{AvgReviewTimeMs: 5000},
		{AvgReviewTimeMs: 5000},
		{AvgReviewTimeMs: 0}, // ignored
	})

	if !got.Changed {
		t.Fatalf("Changed = false, want proposal: %+v", got)
	}
	if got.BlindApprovalTimeMs != 2500 {
		t.Errorf("BlindApprovalTimeMs = %d, want 2500", got.BlindApprovalTimeMs)
	}
}

func TestSuggestAdaptiveThresholdScaledBeatsIncrement(t *testing.T) {
	// With a 600ms allowance, 1.5x (900) is smaller than +500 (1100).
	m := NewManager(LevelMid)
	m.SetBlindApprovalTime(600)

	got := m.SuggestAdaptiveThreshold([]tracking.DailyMetrics{
		{AvgReviewTimeMs: 9000},
	})

	if got.BlindApprovalTimeMs != 900 {
		t.Errorf("BlindApprovalTimeMs = %d, want 900", got.BlindApprovalTimeMs)
	}
}

func TestSuggestAdaptiveThresholdClampsAtCeiling(t *testing.T) {
	m := NewManager(LevelMid)
	m.SetBlindApprovalTime(10000)

	got := m.SuggestAdaptiveThreshold([]tracking.DailyMetrics{
		{AvgReviewTimeMs: 9999},
	})

	if got.BlindApprovalTimeMs != 10000 {
		t.Errorf("BlindApprovalTimeMs = %d, want clamped 10000", got.BlindApprovalTimeMs)
	}
	if got.Changed {
		t.Error("Changed = true when the proposal clamps back to the current value")
	}
}
