package components

import (
	"fmt"

	"github.com/theirongolddev/notetime/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// goalColor picks the fill color for goal progress: orange while barely
// started, accent on the way, green once the goal is met.
func goalColor(pct float64) string {
	t := theme.Active
	switch {
	case pct >= 1.0:
		return string(t.Green)
	case pct >= 0.5:
		return string(t.Accent)
	default:
		return string(t.Orange)
	}
}

// GoalBar renders a labeled progress bar for the daily focus goal with the
// current/goal durations after it.
func GoalBar(label string, doneMin, goalMin, labelW, barWidth int) string {
	t := theme.Active

	pct := 0.0
	if goalMin > 0 {
		pct = float64(doneMin) / float64(goalMin)
	}
	if pct < 0 {
		pct = 0
	}
	display := pct
	if display > 1 {
		display = 1
	}

	bar := progress.New(
		progress.WithSolidFill(goalColor(pct)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(goalColor(pct))).Background(t.Surface).Bold(true)
	sumStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(display) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%3.0f%%", pct*100)) +
		spaceStyle.Render("  ") +
		sumStyle.Render(fmt.Sprintf("%dm of %dm", doneMin, goalMin))
}
