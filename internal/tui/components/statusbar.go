package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/notetime/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar. todayMinutes is the rounded
// focus total for the current date; recording marks a live session.
func RenderStatusBar(width, todayMinutes int, recording bool, dataAge string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted)

	recStyle := lipgloss.NewStyle().
		Foreground(t.Green).
		Bold(true)

	left := " [?]help  [q]uit"

	right := fmt.Sprintf("Today: %dm ", todayMinutes)
	if dataAge != "" {
		right = fmt.Sprintf("Data: %s  %s", dataAge, right)
	}

	rec := ""
	if recording {
		rec = recStyle.Render("● rec") + "  "
	}

	// Pad middle
	padding := width - lipgloss.Width(left) - lipgloss.Width(rec) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return style.Render(left+strings.Repeat(" ", padding)) + rec + style.Render(right)
}
