package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Flexoki Dark, matching the TUI theme.
var (
	colorBorder    = lipgloss.Color("#282726")
	colorTextDim   = lipgloss.Color("#575653")
	colorTextMuted = lipgloss.Color("#6F6E69")
	colorText      = lipgloss.Color("#FFFCF0")
	colorAccent    = lipgloss.Color("#3AA99F")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorText).Align(lipgloss.Center)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	valueStyle  = lipgloss.NewStyle().Foreground(colorText)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorTextMuted)
	dimStyle    = lipgloss.NewStyle().Foreground(colorTextDim)
)

// Table is a bordered text table for CLI output. A row of exactly
// []string{"---"} renders as a horizontal rule.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // optional column widths, auto-calculated if nil
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return box.Render(titleStyle.Render(title))
}

// RenderTable renders t with rounded borders. The first column is
// left-aligned, the rest right-aligned.
func RenderTable(t Table) string {
	widths := t.colWidths()
	if len(widths) == 0 {
		return ""
	}

	lines := make([]string, 0, len(t.Rows)+5)
	if t.Title != "" {
		lines = append(lines, "  "+headerStyle.Render(t.Title))
	}

	lines = append(lines, ruleRow(widths, "╭", "┬", "╮"))
	if len(t.Headers) > 0 {
		lines = append(lines, cellRow(t.Headers, widths, headerStyle, false))
		lines = append(lines, ruleRow(widths, "├", "┼", "┤"))
	}
	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			lines = append(lines, ruleRow(widths, "├", "┼", "┤"))
			continue
		}
		lines = append(lines, cellRow(row, widths, valueStyle, true))
	}
	lines = append(lines, ruleRow(widths, "╰", "┴", "╯"))

	return strings.Join(lines, "\n") + "\n"
}

func (t Table) colWidths() []int {
	n := len(t.Headers)
	if n == 0 && len(t.Rows) > 0 {
		n = len(t.Rows[0])
	}
	widths := make([]int, n)
	if t.Widths != nil {
		copy(widths, t.Widths)
		return widths
	}
	for i, h := range t.Headers {
		if len(h) > widths[i] {
			widths[i] = len(h)
		}
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < n && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	return widths
}

// ruleRow draws one horizontal border line: left, a ─-run per column
// joined by join, then right.
func ruleRow(widths []int, left, join, right string) string {
	runs := make([]string, len(widths))
	for i, w := range widths {
		runs[i] = strings.Repeat("─", w+2)
	}
	return dimStyle.Render(left + strings.Join(runs, join) + right)
}

// cellRow draws one padded content line. Missing cells render empty.
func cellRow(cells []string, widths []int, style lipgloss.Style, numeric bool) string {
	sep := dimStyle.Render("│")

	var b strings.Builder
	b.WriteString(sep)
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if numeric && i > 0 {
			b.WriteString(style.Render(fmt.Sprintf(" %*s ", w, cell)))
		} else {
			b.WriteString(style.Render(fmt.Sprintf(" %-*s ", w, cell)))
		}
		b.WriteString(sep)
	}
	return b.String()
}

// RenderSparkline draws values as one row of unstyled block characters.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	ramp := []rune("▁▂▃▄▅▆▇█")
	peak := 0.0
	for _, v := range values {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	out := make([]rune, len(values))
	for i, v := range values {
		idx := int(v / peak * float64(len(ramp)-1))
		if idx < 0 {
			idx = 0
		} else if idx >= len(ramp) {
			idx = len(ramp) - 1
		}
		out[i] = ramp[idx]
	}
	return string(out)
}

// RenderHorizontalBar renders a share bar scaled to maxWidth cells.
func RenderHorizontalBar(value, maxValue float64, maxWidth int) string {
	if maxValue <= 0 || maxWidth <= 0 {
		return ""
	}
	n := int(value / maxValue * float64(maxWidth))
	if n < 0 {
		n = 0
	}
	if n > maxWidth {
		n = maxWidth
	}
	return mutedStyle.Render(strings.Repeat("█", n))
}
