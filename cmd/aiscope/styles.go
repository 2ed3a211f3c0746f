package main

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/halcyon-ops/aiscope/internal/classify"
	"github.com/halcyon-ops/aiscope/internal/review"
)

// Terminal styles shared by the table renderers.
var (
	goodStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	badStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	headStyle = lipgloss.NewStyle().Bold(true)
)

// categoryLabel renders a review category with its severity color.
func categoryLabel(c review.Category) string {
	switch c {
	case review.CategoryThorough:
		return goodStyle.Render(string(c))
	case review.CategoryLight:
		return warnStyle.Render(string(c))
	default:
		return badStyle.Render(string(c))
	}
}

// modeLabel renders a usage mode. Agent activity gets the warning color since
// it is the mode most likely to land unreviewed code.
func modeLabel(m classify.Mode) string {
	switch m {
	case classify.ModeAgent:
		return warnStyle.Render(string(m))
	case classify.ModeInline:
		return goodStyle.Render(string(m))
	case classify.ModeChatPaste:
		return dimStyle.Render(string(m))
	default:
		return string(m)
	}
}

// checkLabel renders a policy check outcome.
func checkLabel(tripped bool) string {
	if tripped {
		return badStyle.Render("FLAGGED")
	}
	return goodStyle.Render("ok")
}
