// Package components provides reusable TUI widgets for the notetime dashboard.
package components

import (
	"strings"

	"github.com/theirongolddev/notetime/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Metric is one label/value pair for the dashboard's top row, with an
// optional detail line under the value.
type Metric struct {
	Label  string
	Value  string
	Detail string
}

// cardFrame is the shared bordered box every card variant renders into.
// outerWidth includes the border cells.
func cardFrame(outerWidth int) lipgloss.Style {
	t := theme.Active
	w := outerWidth - 2
	if w < 10 {
		w = 10
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Width(w).
		Padding(0, 1)
}

// MetricCard renders one Metric in its own card.
func MetricCard(m Metric, outerWidth int) string {
	t := theme.Active

	lines := []string{
		lipgloss.NewStyle().Foreground(t.TextMuted).Render(m.Label),
		lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true).Render(m.Value),
	}
	if m.Detail != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(t.TextDim).Render(m.Detail))
	}

	return cardFrame(outerWidth).Render(strings.Join(lines, "\n"))
}

// MetricCardRow lays the metrics out side by side, dividing totalWidth
// between them.
func MetricCardRow(metrics []Metric, totalWidth int) string {
	if len(metrics) == 0 {
		return ""
	}

	widths := SplitWidths(totalWidth, len(metrics))
	cards := make([]string, len(metrics))
	for i, m := range metrics {
		cards[i] = MetricCard(m, widths[i])
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

// SplitWidths divides total into n column widths that sum to exactly total,
// with the leftmost columns absorbing the remainder.
func SplitWidths(total, n int) []int {
	if n <= 0 {
		return nil
	}
	widths := make([]int, n)
	for i := range widths {
		widths[i] = total / n
		if i < total%n {
			widths[i]++
		}
	}
	return widths
}

// ContentCard renders body in a bordered card, with a bold muted title line
// when title is non-empty.
func ContentCard(title, body string, outerWidth int) string {
	t := theme.Active

	content := body
	if title != "" {
		content = lipgloss.NewStyle().Foreground(t.TextMuted).Bold(true).Render(title) + "\n" + body
	}
	return cardFrame(outerWidth).Render(content)
}

// CardRow joins pre-rendered cards horizontally, top-aligned.
func CardRow(cards []string) string {
	if len(cards) == 0 {
		return ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

// CardInnerWidth returns the usable text width inside a card: the outer
// width less two border cells and two padding cells.
func CardInnerWidth(outerWidth int) int {
	w := outerWidth - 4
	if w < 10 {
		w = 10
	}
	return w
}
