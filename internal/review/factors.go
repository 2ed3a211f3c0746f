package review

import (
	"math"

	"github.com/halcyon-ops/aiscope/internal/tracking"
)

// Per-line review estimate. A 10-line suggestion in a plain language is
// expected to take about 5 seconds to read.
const perLineReviewMs = 500

// Neutral score for factors with missing inputs: never penalize for data the
// tracker could not capture.
const neutralScore = 50

// patternMinSamples is how many acceptances the window needs before the
// pattern factor goes data-driven.
const patternMinSamples = 3

// Factor weights. Fixed; timing dominates, context is a nudge.
const (
	weightTime       = 0.40
	weightComplexity = 0.30
	weightPattern    = 0.20
	weightContext    = 0.10
)

// expectedReviewMs is the review-time target for an acceptance: lines times
// the per-line estimate, scaled by the graduated language table, floored at
// the configured minimum.
func expectedReviewMs(lines int, language string, minReviewMs int) float64 {
	expected := float64(lines) * perLineReviewMs * complexityFactorFor(language)
	if expected < float64(minReviewMs) {
		expected = float64(minReviewMs)
	}
	return expected
}

// minimumReviewMs is the review-time floor used by the complexity factor:
// same line-count base, but a flat multiplier applied only to the complex
// language set, again floored at the configured minimum.
func minimumReviewMs(lines int, language string, minReviewMs int) float64 {
	minimum := float64(lines) * perLineReviewMs
	if isComplexLanguage(language) {
		minimum *= complexLanguageMultiplier
	}
	if minimum < float64(minReviewMs) {
		minimum = float64(minReviewMs)
	}
	return minimum
}

// timeFactor scores actual against expected review time on a sigmoid response
// curve: ratio 1.0 lands at 50, well past expected approaches 100, well under
// approaches 0. Unknown timing is neutral.
func timeFactor(actualMs, expectedMs float64) float64 {
	if actualMs <= 0 || expectedMs <= 0 {
		return neutralScore
	}
	ratio := actualMs / expectedMs
	return clampScore(100 / (1 + math.Exp(-3*(ratio-1))))
}

// complexityFactor scores whether the acceptance got the review its size and
// language call for. With no line count it is neutral; with no timing it
// falls back to a size heuristic (small changes are probably fine, large ones
// probably not); otherwise it compares actual time against the minimum floor.
func complexityFactor(lines int, language string, actualMs float64, minReviewMs int) float64 {
	if lines <= 0 {
		return neutralScore
	}
	if actualMs <= 0 {
		switch {
		case lines < 20:
			return 70
		case lines < 50:
			return 50
		default:
			return 30
		}
	}

	minimum := minimumReviewMs(lines, language, minReviewMs)
	if actualMs >= minimum {
		return 100
	}
	return clampScore(actualMs / minimum * 100)
}

// patternFactor scores the rolling window: the fraction of recent acceptances
// whose review time reached at least half of that event's own expected time.
// Neutral until the window holds three events.
func patternFactor(window []tracking.TrackingEvent, minReviewMs int) float64 {
	if len(window) < patternMinSamples {
		return neutralScore
	}

	reviewed := 0
	for _, ev := range window {
		expected := expectedReviewMs(ev.LinesOfCode, ev.Language, minReviewMs)
		if float64(ev.AcceptanceTimeMs) >= expected/2 {
			reviewed++
		}
	}
	return clampScore(float64(reviewed) / float64(len(window)) * 100)
}

// contextFactor scores the acceptance's surroundings. Starts neutral, moves
// up for an open file, down for a known-closed file, and down further for
// agent mode; the clamp happens once at the end, not per adjustment.
func contextFactor(ctx *Context) float64 {
	if ctx == nil {
		return neutralScore
	}

	score := float64(neutralScore)
	switch ctx.FileOpen {
	case tracking.TriTrue:
		score += 30
	case tracking.TriFalse:
		score -= 30
	}
	if ctx.AgentMode {
		score -= 40
	}
	return clampScore(score)
}

// clampScore pulls a factor score into [0, 100].
func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
