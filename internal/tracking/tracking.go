// Package tracking defines the event vocabulary shared by the usage-mode
// classifier, the review-quality analyzer, and the store: what the editor
// tracker observed, how it decided the change was AI-influenced, and the
// derived daily rows the reporting commands read back.
package tracking

import (
	"bytes"
	"time"
)

// Source indicates whether a change was typed by the developer or produced
// by an AI tool.
type Source string

const (
	// SourceManual marks a change typed by the developer with no AI involvement.
	SourceManual Source = "manual"

	// SourceAI marks a change attributed to an AI tool.
	SourceAI Source = "ai"
)

// DetectionMethod describes which heuristic identified an event as
// AI-influenced.
type DetectionMethod string

const (
	// DetectInlineCompletion means the editor's completion API reported the
	// change directly.
	DetectInlineCompletion DetectionMethod = "inline-completion-api"

	// DetectLargePaste means a bulk insertion too large to have been typed.
	DetectLargePaste DetectionMethod = "large-paste"

	// DetectExternalFileChange means a file changed on disk outside the
	// editor's own edit path.
	DetectExternalFileChange DetectionMethod = "external-file-change"

	// DetectChangeVelocity means text appeared faster than typing speed.
	// Medium confidence only; the classifier drops these events entirely.
	DetectChangeVelocity DetectionMethod = "change-velocity"

	// DetectNone means no heuristic fired.
	DetectNone DetectionMethod = "none"
)

// EventType identifies what kind of interaction produced the event.
type EventType string

const (
	// EventSuggestionAccepted is the acceptance of a displayed AI suggestion.
	EventSuggestionAccepted EventType = "suggestion-accepted"

	// EventFileEdit is a generic tracked edit.
	EventFileEdit EventType = "file-edit"

	// EventAgentAction is a change applied by an autonomous agent.
	EventAgentAction EventType = "agent-action"
)

// Tool identifies an AI coding tool.
type Tool string

const (
	ToolClaudeCode Tool = "claude-code"
	ToolCursor     Tool = "cursor"
	ToolCopilot    Tool = "copilot"
	ToolAider      Tool = "aider"
	ToolCodex      Tool = "codex"
)

// TriBool is a three-valued flag for facts the tracker may not know,
// such as whether a file was open in the editor when a change landed.
type TriBool int

const (
	// TriUnknown means the tracker could not determine the value.
	TriUnknown TriBool = iota

	// TriTrue means the fact was observed to hold.
	TriTrue

	// TriFalse means the fact was observed not to hold.
	TriFalse
)

// MarshalJSON encodes TriTrue/TriFalse as JSON booleans and TriUnknown as null.
func (t TriBool) MarshalJSON() ([]byte, error) {
	switch t {
	case TriTrue:
		return []byte("true"), nil
	case TriFalse:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts true, false, or null; anything else maps to unknown.
func (t *TriBool) UnmarshalJSON(data []byte) error {
	switch {
	case bytes.Equal(data, []byte("true")):
		*t = TriTrue
	case bytes.Equal(data, []byte("false")):
		*t = TriFalse
	default:
		*t = TriUnknown
	}
	return nil
}

// TrackingEvent is a single observed code change, attributable (or not) to AI
// assistance. Events are immutable once captured; the classifier and the
// analyzer read them and never write back.
type TrackingEvent struct {
	// ID uniquely identifies the event. The store assigns one at ingest if
	// the tracker did not.
	ID string `json:"id,omitempty"`

	// Timestamp is when the change was observed.
	Timestamp time.Time `json:"timestamp"`

	// LinesOfCode is the number of lines added by the change.
	LinesOfCode int `json:"lines_of_code"`

	// LinesRemoved is the number of lines deleted by the change.
	LinesRemoved int `json:"lines_removed,omitempty"`

	// Language is the file's language as reported by the editor.
	// Free-form; consumers lower-case it for lookups.
	Language string `json:"language,omitempty"`

	// AcceptanceTimeMs is the time between a suggestion being displayed and
	// accepted, in milliseconds. Zero means unknown.
	AcceptanceTimeMs int64 `json:"acceptance_time_ms,omitempty"`

	// DetectionMethod is the heuristic that flagged the event.
	DetectionMethod DetectionMethod `json:"detection_method,omitempty"`

	// Source is manual or ai.
	Source Source `json:"source"`

	// EventType is the interaction kind.
	EventType EventType `json:"event_type,omitempty"`

	// AgentSessionID links the event to an agent session, when known.
	AgentSessionID string `json:"agent_session_id,omitempty"`

	// AgentMode is set when the change arrived while an agent was driving.
	AgentMode bool `json:"agent_mode,omitempty"`

	// AgentGenerated is set when the tracker's metadata marked the change
	// as produced by an agent.
	AgentGenerated bool `json:"agent_generated,omitempty"`

	// ClosedFileModification is set when the tracker's metadata flagged a
	// modification to a file that was not open in the editor.
	ClosedFileModification bool `json:"closed_file_modification,omitempty"`

	// FileWasOpen records whether the file was open at acceptance time.
	FileWasOpen TriBool `json:"file_was_open,omitempty"`

	// Tool is the AI tool the change is attributed to, when identified.
	Tool Tool `json:"tool,omitempty"`
}

// DailyMetrics is one day's aggregate row, recomputed at ingest and read by
// the threshold checks and the reporting commands.
type DailyMetrics struct {
	// Day in YYYY-MM-DD form.
	Day string `json:"day"`

	// TotalLines counts all lines written that day, AI and manual.
	TotalLines int `json:"total_lines"`

	// AILines counts lines the classifier attributed to any AI mode.
	AILines int `json:"ai_lines"`

	// AIPercentage is AILines over TotalLines, 0-100.
	AIPercentage float64 `json:"ai_percentage"`

	// AvgReviewTimeMs is the mean acceptance delta across the day's
	// acceptances with a known delta. Zero means unknown.
	AvgReviewTimeMs float64 `json:"avg_review_time_ms"`

	// Events is the number of tracked events that day.
	Events int `json:"events"`

	// Acceptances is the number of suggestion acceptances that day.
	Acceptances int `json:"acceptances"`
}

// FileReviewStatus records whether a file touched by an agent was later
// opened and reviewed by the developer.
type FileReviewStatus struct {
	Day         string `json:"day"`
	Path        string `json:"path"`
	WasFileOpen bool   `json:"was_file_open"`
	Reviewed    bool   `json:"reviewed"`
}
