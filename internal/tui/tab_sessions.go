package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/notetime/internal/cli"
	"github.com/theirongolddev/notetime/internal/tracker"
	"github.com/theirongolddev/notetime/internal/tui/components"
	"github.com/theirongolddev/notetime/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// sessionsState tracks the sessions tab state.
type sessionsState struct {
	cursor int
	offset int // scroll offset for the list
}

func (a App) renderSessionsTab(cw, h int) string {
	t := theme.Active

	if len(a.sessions) == 0 {
		hint := "No sessions recorded"
		if !a.live {
			hint += " · start the watcher with: notetime watch"
		}
		return components.ContentCard("Sessions", lipgloss.NewStyle().Foreground(t.TextMuted).Render(hint), cw)
	}

	if a.isCompactLayout() {
		return a.renderSessionList(cw, h, true)
	}

	leftW := cw / 3
	if leftW < 30 {
		leftW = 30
	}
	rightW := cw - leftW

	leftCard := a.renderSessionList(leftW, h, false)

	sel := a.sessions[a.sessState.cursor]
	rightCard := components.ContentCard(
		fmt.Sprintf("Session %s", shortID(sel.ID)),
		a.renderSessionDetail(sel, components.CardInnerWidth(rightW)),
		rightW,
	)

	return components.CardRow([]string{leftCard, rightCard})
}

func (a App) renderSessionList(outerW, h int, compact bool) string {
	t := theme.Active
	ss := a.sessState
	inner := components.CardInnerWidth(outerW)

	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	selectedStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	visible := h - 6 // card border (2) + title row (2) + footer hint (2)
	if visible < 5 {
		visible = 5
	}

	offset := ss.offset
	if ss.cursor < offset {
		offset = ss.cursor
	}
	if ss.cursor >= offset+visible {
		offset = ss.cursor - visible + 1
	}

	end := offset + visible
	if end > len(a.sessions) {
		end = len(a.sessions)
	}

	var body strings.Builder
	for i := offset; i < end; i++ {
		s := a.sessions[i]
		startStr := s.Start.Local().Format("Jan 02 15:04")
		dur := cli.FormatDuration(s.Ms)

		line := fmt.Sprintf("%-13s %-7s", startStr, dur)
		if compact {
			line += " " + shortNote(s.Note)
		}
		line = truncStr(line, inner)

		if i == ss.cursor {
			body.WriteString(selectedStyle.Render("▸ " + line))
		} else {
			body.WriteString(rowStyle.Render("  " + line))
		}
		body.WriteString("\n")
	}

	body.WriteString(mutedStyle.Render(fmt.Sprintf("%d/%d", ss.cursor+1, len(a.sessions))))

	return components.ContentCard("Sessions", body.String(), outerW)
}

func (a App) renderSessionDetail(s tracker.Session, w int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	durStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)

	var b strings.Builder
	b.WriteString(labelStyle.Render("Note:     "))
	b.WriteString(valueStyle.Render(truncStr(s.Note, w-10)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Date:     "))
	b.WriteString(valueStyle.Render(s.Date))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Started:  "))
	b.WriteString(valueStyle.Render(s.Start.Local().Format("15:04:05")))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Ended:    "))
	b.WriteString(valueStyle.Render(s.End.Local().Format("15:04:05")))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Focused:  "))
	b.WriteString(durStyle.Render(cli.FormatDuration(s.Ms)))
	return b.String()
}

// shortID trims a session UUID down to its first group for titles.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
