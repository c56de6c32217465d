package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/notetime/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// DonutSlice is one arc of the note donut: a note label and its rounded
// minute total for the day.
type DonutSlice struct {
	Label   string
	Minutes int
	Color   lipgloss.Color
}

const donutInnerRadius = 0.52

// Donut renders a ring chart with one colored arc per slice, proportional to
// its minutes, and centerText placed in the hole. size is the diameter in
// terminal rows; the ring spans size*2 columns to stay visually round. Falls
// back to a horizontal bar list when the diameter is too small to read.
func Donut(slices []DonutSlice, size int, centerText string) string {
	slices = nonEmptySlices(slices)
	if size < 7 {
		return DonutBarList(slices, size*2*3)
	}

	t := theme.Active

	total := 0
	for _, s := range slices {
		total += s.Minutes
	}

	rows := size
	cols := size * 2

	holeStyle := lipgloss.NewStyle().Background(t.Surface)
	centerStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	emptyRing := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	// Arc boundaries as cumulative fractions of the full turn.
	bounds := make([]float64, len(slices)+1)
	cum := 0
	for i, s := range slices {
		cum += s.Minutes
		bounds[i+1] = float64(cum) / float64(total)
	}

	// Center text cells on the middle row.
	centerRow := rows / 2
	centerStart := (cols - len(centerText)) / 2

	var b strings.Builder
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			// Map the cell to [-1,1] on both axes. Columns count double so
			// the 2:1 cell aspect comes out circular.
			dx := (float64(x)+0.5)/float64(cols)*2 - 1
			dy := (float64(y)+0.5)/float64(rows)*2 - 1
			r := math.Sqrt(dx*dx + dy*dy)

			if r > 1 {
				b.WriteString(holeStyle.Render(" "))
				continue
			}
			if r < donutInnerRadius {
				// Inside the hole: carry the center label, otherwise blank.
				if y == centerRow && centerText != "" && x >= centerStart && x < centerStart+len(centerText) {
					b.WriteString(centerStyle.Render(string(centerText[x-centerStart])))
				} else {
					b.WriteString(holeStyle.Render(" "))
				}
				continue
			}

			if total == 0 {
				b.WriteString(emptyRing.Render("·"))
				continue
			}

			// Angle measured clockwise from 12 o'clock, as a fraction of a turn.
			ang := math.Atan2(dx, -dy)
			if ang < 0 {
				ang += 2 * math.Pi
			}
			frac := ang / (2 * math.Pi)

			idx := len(slices) - 1
			for i := 0; i < len(slices); i++ {
				if frac < bounds[i+1] {
					idx = i
					break
				}
			}
			style := lipgloss.NewStyle().Foreground(slices[idx].Color).Background(t.Surface)
			b.WriteString(style.Render("█"))
		}
		if y < rows-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

// DonutLegend renders one line per slice: a colored swatch, the label, the
// minute total, and the share of the day. Labels are truncated to fit width.
func DonutLegend(slices []DonutSlice, width int) string {
	slices = nonEmptySlices(slices)
	if len(slices) == 0 {
		return lipgloss.NewStyle().Foreground(theme.Active.TextDim).Render("no focus recorded")
	}

	t := theme.Active
	total := 0
	for _, s := range slices {
		total += s.Minutes
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	minStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	pctStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	// swatch(2) + label + minutes(6) + pct(6)
	labelW := width - 14
	if labelW < 8 {
		labelW = 8
	}

	var b strings.Builder
	for i, s := range slices {
		share := 0.0
		if total > 0 {
			share = float64(s.Minutes) / float64(total) * 100
		}
		swatch := lipgloss.NewStyle().Foreground(s.Color).Render("■ ")
		b.WriteString(swatch)
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", labelW, truncLabel(s.Label, labelW))))
		b.WriteString(minStyle.Render(fmt.Sprintf("%5dm", s.Minutes)))
		b.WriteString(pctStyle.Render(fmt.Sprintf("%5.0f%%", share)))
		if i < len(slices)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// DonutBarList is the small-terminal stand-in for the ring: a proportional
// horizontal bar per slice.
func DonutBarList(slices []DonutSlice, width int) string {
	slices = nonEmptySlices(slices)
	if len(slices) == 0 {
		return lipgloss.NewStyle().Foreground(theme.Active.TextDim).Render("no focus recorded")
	}

	t := theme.Active
	maxMin := 0
	for _, s := range slices {
		if s.Minutes > maxMin {
			maxMin = s.Minutes
		}
	}
	if maxMin == 0 {
		maxMin = 1
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	minStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	labelW := width / 3
	if labelW < 8 {
		labelW = 8
	}
	barMax := width - labelW - 8
	if barMax < 4 {
		barMax = 4
	}

	var b strings.Builder
	for i, s := range slices {
		barLen := s.Minutes * barMax / maxMin
		bar := lipgloss.NewStyle().Foreground(s.Color).Render(strings.Repeat("█", barLen))
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", labelW, truncLabel(s.Label, labelW))))
		b.WriteString(" ")
		b.WriteString(bar)
		b.WriteString(minStyle.Render(fmt.Sprintf(" %dm", s.Minutes)))
		if i < len(slices)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func nonEmptySlices(slices []DonutSlice) []DonutSlice {
	out := slices[:0:0]
	for _, s := range slices {
		if s.Minutes > 0 {
			out = append(out, s)
		}
	}
	return out
}

func truncLabel(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
