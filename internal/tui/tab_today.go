package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/theirongolddev/notetime/internal/cli"
	"github.com/theirongolddev/notetime/internal/timelog"
	"github.com/theirongolddev/notetime/internal/tui/components"
	"github.com/theirongolddev/notetime/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderTodayTab(cw int) string {
	t := theme.Active
	var b strings.Builder

	// Row 1: metric cards
	sessionVal := "idle"
	sessionDetail := ""
	if a.recording() {
		sessionVal = cli.FormatDuration(a.status.SessionMs)
		sessionDetail = "since " + cli.FormatClock(a.status.Summary.SessionStart)
	}

	activeVal := "—"
	if a.recording() && a.status.Summary.ActiveNote != "" {
		activeVal = truncStr(shortNote(a.status.Summary.ActiveNote), 18)
	}

	watchVal := "offline"
	watchDetail := "run: notetime watch"
	if a.live {
		watchVal = "live"
		watchDetail = a.addr
	}

	cards := []components.Metric{
		{Label: "Focused today", Value: cli.FormatDuration(a.todayMs), Detail: fmt.Sprintf("%dm on %s", a.todayMinutes(), a.todayKey)},
		{Label: "Active note", Value: activeVal, Detail: truncStr(watchDetail, 24)},
		{Label: "Session", Value: sessionVal, Detail: sessionDetail},
		{Label: "Watch", Value: watchVal, Detail: fmt.Sprintf("%d notes today", len(a.notes))},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Row 2: daily goal progress, when a goal is configured
	if a.goalMin > 0 {
		innerW := components.CardInnerWidth(cw)
		barW := innerW - 30
		if barW < 10 {
			barW = 10
		}
		b.WriteString(components.ContentCard(
			"Daily Goal",
			components.GoalBar("Focus", a.todayMinutes(), a.goalMin, 6, barW),
			cw,
		))
		b.WriteString("\n")
	}

	// Row 3: the note donut with its legend
	slices := donutSlices(a.notes, t)
	centerText := fmt.Sprintf("%dm", a.todayMinutes())

	if a.isCompactLayout() {
		b.WriteString(components.ContentCard(
			"Focus by Note",
			components.DonutBarList(slices, components.CardInnerWidth(cw)),
			cw,
		))
		return b.String()
	}

	halves := components.SplitWidths(cw, 2)

	donut := components.Donut(slices, 11, centerText)
	donutCard := components.ContentCard(
		"Focus by Note",
		lipgloss.PlaceHorizontal(components.CardInnerWidth(halves[0]), lipgloss.Center, donut,
			lipgloss.WithWhitespaceBackground(t.Surface)),
		halves[0],
	)

	legendCard := components.ContentCard(
		"Notes",
		a.renderDonutLegend(slices, components.CardInnerWidth(halves[1])),
		halves[1],
	)

	b.WriteString(components.CardRow([]string{donutCard, legendCard}))
	return b.String()
}

// renderDonutLegend caps the legend at the top entries, folding the tail
// into a dim summary line. The donut itself still draws every slice.
func (a App) renderDonutLegend(slices []components.DonutSlice, width int) string {
	const maxRows = 9
	if len(slices) <= maxRows {
		return components.DonutLegend(slices, width)
	}

	t := theme.Active
	rest := 0
	for _, s := range slices[maxRows:] {
		rest += s.Minutes
	}
	legend := components.DonutLegend(slices[:maxRows], width)
	more := lipgloss.NewStyle().Foreground(t.TextDim).Render(
		fmt.Sprintf("  + %d more (%dm)", len(slices)-maxRows, rest))
	return legend + "\n" + more
}

// donutSlices maps today's per-note totals onto donut arcs, one per note,
// sized by whole minutes.
func donutSlices(notes []timelog.NoteTime, t theme.Theme) []components.DonutSlice {
	cycle := t.ChartCycle()
	slices := make([]components.DonutSlice, 0, len(notes))
	for i, n := range notes {
		slices = append(slices, components.DonutSlice{
			Label:   shortNote(n.Note),
			Minutes: timelog.Minutes(n.Ms),
			Color:   cycle[i%len(cycle)],
		})
	}
	return slices
}

// shortNote reduces a note path to its file name for display.
func shortNote(path string) string {
	base := filepath.Base(path)
	if base == "." || base == "/" || base == "" {
		return path
	}
	return base
}
