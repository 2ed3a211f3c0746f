package review

import (
	"fmt"

	"github.com/halcyon-ops/aiscope/internal/tracking"
)

// Factor levels below/above which a note is worth generating. Mid-range
// factors stay silent.
const (
	insightLowScore  = 40
	insightHighScore = 80
)

// largeChangeLines and fastAcceptMs define the "large change accepted fast"
// note: more than 50 lines taken in under 10 seconds.
const (
	largeChangeLines = 50
	fastAcceptMs     = 10000
)

// buildInsights assembles the ordered note list for one analysis. Order is
// fixed: verdict, timing, complexity, pattern, then context notes.
func buildInsights(ev tracking.TrackingEvent, ctx *Context, analysis Analysis) []string {
	insights := []string{verdictLine(analysis.Category)}

	if analysis.Factors.TimeScore < insightLowScore {
		insights = append(insights, fmt.Sprintf(
			"accepted in %.1fs where roughly %.1fs of review was expected",
			float64(analysis.ActualReviewTimeMs)/1000,
			float64(analysis.ExpectedReviewTimeMs)/1000))
	} else if analysis.Factors.TimeScore > insightHighScore {
		insights = append(insights, fmt.Sprintf(
			"review time comfortably exceeded the expected %.1fs",
			float64(analysis.ExpectedReviewTimeMs)/1000))
	}

	if analysis.Factors.ComplexityScore < insightLowScore {
		insights = append(insights, fmt.Sprintf(
			"%d lines accepted with less review than their complexity calls for",
			ev.LinesOfCode))
	}

	if analysis.Factors.PatternScore < insightLowScore {
		insights = append(insights, "recent acceptances show a pattern of skipped review")
	} else if analysis.Factors.PatternScore > insightHighScore {
		insights = append(insights, "recent acceptances are consistently well reviewed")
	}

	if ctx != nil && ctx.AgentMode {
		insights = append(insights, "accepted in agent mode; agent output warrants a closer look")
	}
	if ctx != nil && ctx.FileOpen == tracking.TriFalse {
		insights = append(insights, "the file was not open in the editor when the change landed")
	}

	if ev.LinesOfCode > largeChangeLines &&
		ev.AcceptanceTimeMs > 0 && ev.AcceptanceTimeMs < fastAcceptMs {
		insights = append(insights, fmt.Sprintf(
			"large change (%d lines) accepted in under 10 seconds", ev.LinesOfCode))
	}

	return insights
}

// verdictLine is the category-keyed opening note.
func verdictLine(category Category) string {
	switch category {
	case CategoryThorough:
		return "suggestions are getting thorough review before acceptance"
	case CategoryLight:
		return "review before acceptance is light; larger suggestions deserve a slower pass"
	default:
		return "suggestions appear to be accepted with little or no review"
	}
}
