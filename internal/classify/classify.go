// Package classify assigns each tracked AI-influenced event to exactly one
// usage mode: agent, inline completion, or chat/paste. Classification is a
// strict priority list evaluated top to bottom with the first matching rule
// winning; the order is load-bearing, since a large-paste event lands in two
// different modes depending on whether the file was open, and that check has
// to happen before the broader agent-signal rule.
package classify

import (
	"math"

	"github.com/halcyon-ops/aiscope/internal/tracking"
)

// Mode is a usage-mode bucket.
type Mode string

const (
	// ModeAgent is AI activity attributed to an autonomous agent editing
	// files, including files that were closed at the time.
	ModeAgent Mode = "agent"

	// ModeInline is real-time, suggestion-as-you-type completion.
	ModeInline Mode = "inline"

	// ModeChatPaste is AI-originated code pasted in bulk from outside the
	// editor's live-completion path.
	ModeChatPaste Mode = "chat-paste"

	// ModeNone means the event contributes to no bucket.
	ModeNone Mode = ""
)

// Acceptances faster than this count as quick.
const quickAcceptanceMs = 2000

// Classification is the outcome for a single event.
type Classification struct {
	// Mode is the bucket the event landed in, or ModeNone.
	Mode Mode

	// Lines is the AI activity attributed to the event. Agent-mode events
	// count deletions as well as additions, since agents delete code too.
	Lines int

	// Acceptance is set for suggestion-accepted events.
	Acceptance bool

	// QuickAcceptance is set for acceptances faster than 2000ms.
	QuickAcceptance bool
}

// Classify assigns one event to one mode. Stateless; safe for concurrent use.
func Classify(ev tracking.TrackingEvent) Classification {
	// Rule 1: manual changes contribute to neither mode nor any total.
	if ev.Source == tracking.SourceManual {
		return Classification{Mode: ModeNone}
	}

	// Rule 2: the completion API reported it, or it is an explicit
	// suggestion acceptance. Inline; additions only.
	if ev.DetectionMethod == tracking.DetectInlineCompletion ||
		ev.EventType == tracking.EventSuggestionAccepted {
		c := Classification{Mode: ModeInline, Lines: ev.LinesOfCode}
		if ev.EventType == tracking.EventSuggestionAccepted {
			c.Acceptance = true
			if ev.AcceptanceTimeMs > 0 && ev.AcceptanceTimeMs < quickAcceptanceMs {
				c.QuickAcceptance = true
			}
		}
		return c
	}

	// Rules 3 and 4: large pastes. Into an open (or unknown) file this is
	// agent activity; into a file known to be closed it is chat/paste.
	if ev.DetectionMethod == tracking.DetectLargePaste {
		if ev.FileWasOpen != tracking.TriFalse {
			return Classification{Mode: ModeAgent, Lines: ev.LinesOfCode + ev.LinesRemoved}
		}
		return Classification{Mode: ModeChatPaste, Lines: ev.LinesOfCode}
	}

	// Rule 5: explicit agent signals.
	if ev.DetectionMethod == tracking.DetectExternalFileChange ||
		ev.ClosedFileModification ||
		ev.AgentMode ||
		ev.AgentSessionID != "" ||
		ev.AgentGenerated ||
		ev.Tool == tracking.ToolClaudeCode {
		return Classification{Mode: ModeAgent, Lines: ev.LinesOfCode + ev.LinesRemoved}
	}

	// Change-velocity detections cannot be separated from inline acceptance
	// reliably; misclassifying them is worse than dropping them.
	if ev.DetectionMethod == tracking.DetectChangeVelocity {
		return Classification{Mode: ModeNone}
	}

	// Rule 6: an AI-sourced event with no recognized detection method is
	// more likely an unlogged agent action than an unlogged completion.
	if ev.LinesOfCode > 0 {
		return Classification{Mode: ModeAgent, Lines: ev.LinesOfCode + ev.LinesRemoved}
	}

	return Classification{Mode: ModeNone}
}

// ModeStats holds the per-mode counters shared by all three buckets.
type ModeStats struct {
	Lines      int `json:"lines"`
	Events     int `json:"events"`
	Percentage int `json:"percentage"`
}

// InlineStats adds the inline-only acceptance counters.
type InlineStats struct {
	ModeStats
	Acceptances      int `json:"acceptances"`
	QuickAcceptances int `json:"quick_acceptances"`
}

// AgentStats adds the agent-only file review counters, filled from the
// store's file-review list rather than from the event stream.
type AgentStats struct {
	ModeStats
	TotalFiles    int `json:"total_files"`
	ReviewedFiles int `json:"reviewed_files"`
}

// Aggregate is one reporting window's totals across the three buckets.
// Derived value; recomputed each time a window is classified.
type Aggregate struct {
	Agent     AgentStats  `json:"agent"`
	Inline    InlineStats `json:"inline"`
	ChatPaste ModeStats   `json:"chat_paste"`
}

// ClassifyWindow classifies every event in a window and accumulates per-mode
// totals, then fills each mode's share of all AI-attributed lines as an
// integer percentage (0 when no lines were attributed at all).
func ClassifyWindow(events []tracking.TrackingEvent) Aggregate {
	var agg Aggregate

	for _, ev := range events {
		c := Classify(ev)
		switch c.Mode {
		case ModeAgent:
			agg.Agent.Lines += c.Lines
			agg.Agent.Events++
		case ModeInline:
			agg.Inline.Lines += c.Lines
			agg.Inline.Events++
			if c.Acceptance {
				agg.Inline.Acceptances++
			}
			if c.QuickAcceptance {
				agg.Inline.QuickAcceptances++
			}
		case ModeChatPaste:
			agg.ChatPaste.Lines += c.Lines
			agg.ChatPaste.Events++
		}
	}

	total := agg.Agent.Lines + agg.Inline.Lines + agg.ChatPaste.Lines
	agg.Agent.Percentage = percentage(agg.Agent.Lines, total)
	agg.Inline.Percentage = percentage(agg.Inline.Lines, total)
	agg.ChatPaste.Percentage = percentage(agg.ChatPaste.Lines, total)

	return agg
}

// ApplyFileReviews fills the agent bucket's file counters from the review
// status list, counting only files that were closed while the agent touched
// them (open files were in front of the developer already).
func ApplyFileReviews(agg *Aggregate, reviews []tracking.FileReviewStatus) {
	for _, r := range reviews {
		if r.WasFileOpen {
			continue
		}
		agg.Agent.TotalFiles++
		if r.Reviewed {
			agg.Agent.ReviewedFiles++
		}
	}
}

func percentage(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
