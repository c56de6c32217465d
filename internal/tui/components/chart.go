package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/notetime/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders values as a single row of block characters, scaled to
// the series peak.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}

	peak := 0.0
	for _, v := range values {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	runes := make([]rune, len(values))
	for i, v := range values {
		idx := int(v / peak * float64(len(sparkBlocks)-1))
		if idx < 0 {
			idx = 0
		}
		if idx > len(sparkBlocks)-1 {
			idx = len(sparkBlocks) - 1
		}
		runes[i] = sparkBlocks[idx]
	}

	return lipgloss.NewStyle().Foreground(color).Background(theme.Active.Surface).Render(string(runes))
}

// BarChart draws per-day focus minutes as a bar chart with a duration-scaled
// Y axis. The last bar is today and gets the bright accent. Bars shrink and
// then drop their gaps as width tightens; if the area still cannot hold the
// whole series, the oldest days fall off. Degenerate areas fall back to a
// sparkline.
func BarChart(values []float64, labels []string, color lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(values, color)
	}

	t := theme.Active

	maxVal := 0.0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	// Y axis: duration-boundary ticks, roughly one per two rows.
	step := durationTickStep(maxVal, height/2)
	ceiling := math.Ceil(maxVal/step) * step
	yLabelW := len(minutesLabel(ceiling)) + 1
	if yLabelW < 4 {
		yLabelW = 4
	}

	plotW := width - yLabelW - 1
	if plotW < 5 {
		plotW = 5
	}

	// Bar sizing: try 1-cell gaps first, then gapless, then trim the series
	// to the most recent days that fit.
	n := len(values)
	gap := 1
	barW := (plotW - (n - 1)) / n
	if barW < 2 {
		gap = 0
		barW = plotW / n
	}
	if barW < 1 {
		barW = 1
		keep := plotW
		values = values[n-keep:]
		if len(labels) == n {
			labels = labels[n-keep:]
		}
		n = keep
	}
	if barW > 6 {
		barW = 6
	}
	axisLen := n*barW + (n-1)*gap

	// Bar heights in eighth-row cells; render resolves each row from these.
	levels := make([]int, n)
	for i, v := range values {
		levels[i] = int(math.Round(v / ceiling * float64(height) * 8))
	}

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	fillStyle := lipgloss.NewStyle().Background(t.Surface)
	barStyles := make([]lipgloss.Style, n)
	for i := range barStyles {
		c := color
		if i == n-1 {
			c = t.AccentBright // today
		}
		barStyles[i] = lipgloss.NewStyle().Foreground(c).Background(t.Surface)
	}

	// Tick labels keyed by row, counted from the bottom.
	ticks := make(map[int]string)
	for v := step; v <= ceiling+step/2; v += step {
		row := int(math.Round(v / ceiling * float64(height)))
		if row >= 1 && row <= height {
			ticks[row] = minutesLabel(v)
		}
	}

	var b strings.Builder
	for row := height; row >= 1; row-- {
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, ticks[row])))
		b.WriteString(axisStyle.Render("│"))

		floor := (row - 1) * 8
		for i := range values {
			if i > 0 && gap > 0 {
				b.WriteString(fillStyle.Render(" "))
			}
			var cell string
			switch {
			case levels[i] >= floor+8:
				cell = "█"
			case levels[i] > floor:
				cell = string(sparkBlocks[levels[i]-floor-1])
			default:
				cell = " "
			}
			if cell == " " {
				b.WriteString(fillStyle.Render(strings.Repeat(" ", barW)))
			} else {
				b.WriteString(barStyles[i].Render(strings.Repeat(cell, barW)))
			}
		}
		b.WriteString("\n")
	}

	// Baseline with the zero mark.
	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, "0")))
	b.WriteString(axisStyle.Render("└"))
	b.WriteString(axisStyle.Render(strings.Repeat("─", axisLen)))

	if len(labels) == n {
		b.WriteString("\n")
		b.WriteString(fillStyle.Render(strings.Repeat(" ", yLabelW+1)))
		b.WriteString(axisStyle.Render(axisLabels(labels, n, barW, gap, axisLen)))
	}

	return b.String()
}

// axisLabels lays the day labels under their bars, skipping any label that
// would collide with the one before it.
func axisLabels(labels []string, n, barW, gap, axisLen int) string {
	row := make([]byte, axisLen)
	for i := range row {
		row[i] = ' '
	}

	nextFree := 0
	for i, lbl := range labels {
		if lbl == "" {
			continue
		}
		pos := i * (barW + gap)
		if pos < nextFree || pos+len(lbl) > axisLen {
			continue
		}
		copy(row[pos:], lbl)
		nextFree = pos + len(lbl) + 1
	}
	return strings.TrimRight(string(row), " ")
}

// durationTickStep picks a Y-axis interval in whole minutes that lands on
// natural duration boundaries.
func durationTickStep(maxVal float64, maxTicks int) float64 {
	if maxTicks < 2 {
		maxTicks = 2
	}
	if maxVal <= 0 {
		return 5
	}
	rough := maxVal / float64(maxTicks)
	for _, s := range []float64{5, 10, 15, 30, 60, 120, 180, 240, 360, 480, 720} {
		if s >= rough {
			return s
		}
	}
	// Past 12h per tick, keep doubling.
	s := 720.0
	for s < rough {
		s *= 2
	}
	return s
}

// minutesLabel renders a minute count compactly ("45m", "2h", "1.5h").
func minutesLabel(mins float64) string {
	if mins < 60 {
		return fmt.Sprintf("%.0fm", mins)
	}
	h := mins / 60
	if h == math.Trunc(h) {
		return fmt.Sprintf("%.0fh", h)
	}
	return fmt.Sprintf("%.1fh", h)
}
