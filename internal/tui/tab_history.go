package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/notetime/internal/cli"
	"github.com/theirongolddev/notetime/internal/timelog"
	"github.com/theirongolddev/notetime/internal/tui/components"
	"github.com/theirongolddev/notetime/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const historyDays = 30

func (a App) renderHistoryTab(cw int) string {
	t := theme.Active
	var b strings.Builder

	// Row 1: daily focus chart over the trailing window, zero-filled so
	// idle days show as gaps rather than vanishing.
	vals, labels := a.dailySeries(historyDays)
	chartH := 10
	if a.isCompactLayout() {
		chartH = 6
	}
	b.WriteString(components.ContentCard(
		fmt.Sprintf("Daily Focus (%dd)", historyDays),
		components.BarChart(vals, labels, t.Blue, components.CardInnerWidth(cw), chartH),
		cw,
	))
	b.WriteString("\n")

	// Row 2: recent day table
	rows := a.days
	limit := 14
	if a.isCompactLayout() {
		limit = 10
	}
	if len(rows) > limit {
		rows = rows[:limit]
	}

	b.WriteString(components.ContentCard(
		"Recent Days",
		a.renderDayRows(rows, components.CardInnerWidth(cw)),
		cw,
	))

	return b.String()
}

// dailySeries builds a chronological minute series for the trailing n
// calendar days, with month-aware axis labels.
func (a App) dailySeries(n int) ([]float64, []string) {
	vals := make([]float64, n)
	labels := make([]string, n)

	today := time.Now()
	prevMonth := time.Month(0)
	for i := 0; i < n; i++ {
		d := today.AddDate(0, 0, -(n - 1 - i))
		key := timelog.DateKey(d)
		vals[i] = float64(a.log.Total(key)) / 60000.0

		switch {
		case i == 0:
			labels[i] = d.Format("Jan")
		case d.Month() != prevMonth:
			labels[i] = d.Format("Jan")
		default:
			labels[i] = strconv.Itoa(d.Day())
		}
		prevMonth = d.Month()
	}
	return vals, labels
}

func (a App) renderDayRows(rows []timelog.DayTotal, innerW int) string {
	t := theme.Active

	if len(rows) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Render("no focus recorded yet")
	}

	dateStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	dowStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	notesStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	durStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)
	barStyle := lipgloss.NewStyle().Foreground(t.Accent)

	var maxMs int64
	for _, r := range rows {
		if r.Ms > maxMs {
			maxMs = r.Ms
		}
	}
	if maxMs == 0 {
		maxMs = 1
	}

	// date(10) + dow(5) + notes(9) + duration(9) + spacing
	barMax := innerW - 36
	if barMax < 4 {
		barMax = 4
	}

	var b strings.Builder
	for i, r := range rows {
		dow := "???"
		if d, err := timelog.ParseDateKey(r.Date); err == nil {
			dow = cli.FormatDayOfWeek(int(d.Weekday()))
		}
		barLen := int(r.Ms * int64(barMax) / maxMs)

		b.WriteString(dateStyle.Render(r.Date))
		b.WriteString(dowStyle.Render(fmt.Sprintf("  %s", dow)))
		b.WriteString(notesStyle.Render(fmt.Sprintf("  %2d notes", r.Notes)))
		b.WriteString(durStyle.Render(fmt.Sprintf("  %-8s", cli.FormatDuration(r.Ms))))
		b.WriteString(barStyle.Render(strings.Repeat("█", barLen)))
		if i < len(rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
