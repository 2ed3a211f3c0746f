package threshold

import (
	"github.com/halcyon-ops/aiscope/internal/tracking"
)

// MetricFlags reports which policy checks a day's metrics tripped.
type MetricFlags struct {
	// AIPercentageExceeded is set when the day's AI share of written lines
	// is above the configured cap.
	AIPercentageExceeded bool `json:"ai_percentage_exceeded"`

	// ReviewTimeBelowMinimum is set when the day's average review time is
	// known and under the configured floor.
	ReviewTimeBelowMinimum bool `json:"review_time_below_minimum"`

	// BlindApprovalStreak is retained for compatibility with older readers
	// of this shape. The live check is disabled; it is always false.
	BlindApprovalStreak bool `json:"blind_approval_streak"`
}

// CheckMetrics evaluates a day's aggregate metrics against the active policy.
// An unknown (zero) average review time never trips the review-time check.
func (m *Manager) CheckMetrics(daily tracking.DailyMetrics) MetricFlags {
	cfg := m.Config()

	flags := MetricFlags{
		AIPercentageExceeded: daily.AIPercentage > float64(cfg.MaxAIPercentage),
	}
	if daily.AvgReviewTimeMs > 0 && daily.AvgReviewTimeMs < float64(cfg.MinReviewTimeMs) {
		flags.ReviewTimeBelowMinimum = true
	}
	return flags
}

// Suggestion is the outcome of an adaptive-threshold proposal.
type Suggestion struct {
	// BlindApprovalTimeMs is the proposed allowance. Equal to the current
	// value when Changed is false.
	BlindApprovalTimeMs int `json:"blind_approval_time_ms"`

	// Changed reports whether the proposal differs from the current value.
	Changed bool `json:"changed"`

	// Reason explains the proposal in one line.
	Reason string `json:"reason"`
}

// SuggestAdaptiveThreshold proposes a new blind-approval allowance from
// recent daily metrics. The heuristic is deliberately one-directional: when
// reviews are consistently slow (average more than double the configured
// review floor) it proposes raising the allowance by the smaller of +500ms
// or 1.5x, and it never tightens anything on its own.
func (m *Manager) SuggestAdaptiveThreshold(recent []tracking.DailyMetrics) Suggestion {
	cfg := m.Config()
	current := cfg.BlindApprovalTimeMs

	var sum float64
	var days int
	for _, d := range recent {
		if d.AvgReviewTimeMs > 0 {
			sum += d.AvgReviewTimeMs
			days++
		}
	}
	if days == 0 {
		return Suggestion{
			BlindApprovalTimeMs: current,
			Reason:              "no recent review-time history; keeping current threshold",
		}
	}

	avg := sum / float64(days)
	if avg <= 2*float64(cfg.MinReviewTimeMs) {
		return Suggestion{
			BlindApprovalTimeMs: current,
			Reason:              "recent review pace is within the expected range",
		}
	}

	proposed := current + 500
	if scaled := current * 3 / 2; scaled < proposed {
		proposed = scaled
	}
	proposed = clamp(proposed, MinBlindApprovalMs, MaxBlindApprovalMs)

	return Suggestion{
		BlindApprovalTimeMs: proposed,
		Changed:             proposed != current,
		Reason:              "reviews are consistently slower than the floor; allowing more time before flagging blind approvals",
	}
}
