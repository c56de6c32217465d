package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/notetime/internal/cli"
	"github.com/theirongolddev/notetime/internal/config"
	"github.com/theirongolddev/notetime/internal/tui/components"
	"github.com/theirongolddev/notetime/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldTheme = iota
	settingsFieldGoal
	settingsFieldListenAddr
	settingsFieldFlushInterval
	settingsFieldRefreshInterval
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab: which row the cursor is on and the
// in-place editor when a row is being edited.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message briefly
	saveErr error // non-nil if last save failed
}

func themeNames() []string {
	names := make([]string, len(theme.All))
	for i, t := range theme.All {
		names[i] = t.Name
	}
	return names
}

// editSeed returns the initial editor value and placeholder for the field
// under the cursor.
func (a App) editSeed(cfg config.Config) (value, placeholder string) {
	switch a.settings.cursor {
	case settingsFieldTheme:
		return cfg.Appearance.Theme, strings.Join(themeNames(), ", ")
	case settingsFieldGoal:
		if cfg.General.DailyGoalMin > 0 {
			value = strconv.Itoa(cfg.General.DailyGoalMin)
		}
		return value, "120 (minutes, 0 to disable)"
	case settingsFieldListenAddr:
		return cfg.Watch.ListenAddr, config.DefaultConfig().Watch.ListenAddr
	case settingsFieldFlushInterval:
		return strconv.Itoa(cfg.Watch.FlushIntervalSec), "60 (seconds)"
	case settingsFieldRefreshInterval:
		return strconv.Itoa(int(a.refreshInterval.Seconds())), "2 (seconds)"
	}
	return "", ""
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	a.settings.editing = true
	a.settings.saved = false

	ti := textinput.New()
	ti.CharLimit = 128
	ti.Width = 40
	value, placeholder := a.editSeed(loadConfigOrDefault())
	ti.SetValue(value)
	ti.Placeholder = placeholder
	ti.Focus()

	a.settings.input = ti
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.applySetting()
		a.settings.editing = false
		a.settings.saved = a.settings.saveErr == nil
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

// applySetting validates the editor value, folds it into the config and the
// running app state, and persists. Invalid input leaves the field unchanged
// but still rewrites the file, so a save error always surfaces.
func (a *App) applySetting() {
	cfg := loadConfigOrDefault()
	val := strings.TrimSpace(a.settings.input.Value())

	switch a.settings.cursor {
	case settingsFieldTheme:
		if theme.ByName(val).Name == val {
			cfg.Appearance.Theme = val
			theme.SetActive(val)
		}
	case settingsFieldGoal:
		if val == "" {
			cfg.General.DailyGoalMin = 0
			a.goalMin = 0
		} else if g, err := strconv.Atoi(val); err == nil && g >= 0 {
			cfg.General.DailyGoalMin = g
			a.goalMin = g
		}
	case settingsFieldListenAddr:
		if val != "" {
			cfg.Watch.ListenAddr = val
			a.addr = config.ListenAddr(cfg)
		}
	case settingsFieldFlushInterval:
		if sec, err := strconv.Atoi(val); err == nil && sec > 0 {
			cfg.Watch.FlushIntervalSec = sec
		}
	case settingsFieldRefreshInterval:
		if sec, err := strconv.Atoi(val); err == nil && sec > 0 {
			cfg.Appearance.RefreshIntervalSec = sec
			a.refreshInterval = time.Duration(sec) * time.Second
		}
	}

	a.settings.saveErr = config.Save(cfg)
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	cfg := loadConfigOrDefault()
	innerW := components.CardInnerWidth(cw)

	goal := "(not set)"
	if cfg.General.DailyGoalMin > 0 {
		goal = fmt.Sprintf("%dm", cfg.General.DailyGoalMin)
	}

	rows := [][2]string{
		{"Theme", cfg.Appearance.Theme},
		{"Daily Goal", goal},
		{"Listen Addr", config.ListenAddr(cfg)},
		{"Flush Interval", fmt.Sprintf("%ds", int(config.FlushInterval(cfg).Seconds()))},
		{"Refresh Interval", fmt.Sprintf("%ds", int(a.refreshInterval.Seconds()))},
	}

	lines := make([]string, 0, len(rows)+4)
	for i, row := range rows {
		switch {
		case a.settings.editing && i == a.settings.cursor:
			lines = append(lines, a.editorRow(row[0], t))
		case i == a.settings.cursor:
			lines = append(lines, selectedRow(row[0], row[1], innerW, t))
		default:
			lines = append(lines, idleRow(row[0], row[1], t))
		}
	}

	switch {
	case a.settings.saveErr != nil:
		fail := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		lines = append(lines, "", fail.Render(fmt.Sprintf("Save failed: %s", a.settings.saveErr)))
	case a.settings.saved:
		ok := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
		lines = append(lines, "", ok.Render("Saved!"))
	}

	hint := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	lines = append(lines, "", hint.Render("[j/k] navigate  [Enter] edit  [Esc] cancel"))

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", strings.Join(lines, "\n"), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("General", a.renderPathsInfo(t), cw))
	return b.String()
}

// editorRow is the row under edit: marker, label, then the live text input.
func (a App) editorRow(label string, t theme.Theme) string {
	marker := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright).Render("▸ ")
	lbl := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Render(fmt.Sprintf("%-18s ", label))
	return marker + lbl + a.settings.input.View()
}

// selectedRow highlights the cursor row across the full card width.
func selectedRow(label, value string, innerW int, t theme.Theme) string {
	marker := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright).Render("▸ ")
	lbl := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true).Render(fmt.Sprintf("%-18s ", label+":"))
	val := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true).Render(value)

	row := marker + lbl + val
	if pad := innerW - lipgloss.Width(row); pad > 0 {
		row += lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", pad))
	}
	return row
}

func idleRow(label, value string, t theme.Theme) string {
	indent := lipgloss.NewStyle().Background(t.Surface).Render("  ")
	lbl := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render(fmt.Sprintf("%-18s ", label+":"))
	val := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Render(value)
	return indent + lbl + val
}

// renderPathsInfo lists where the tracker keeps its files and how much it
// has recorded.
func (a App) renderPathsInfo(t theme.Theme) string {
	label := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	info := [][2]string{
		{"Snapshot", a.snapshotPath},
		{"Ledger", a.ledgerPath},
		{"Sessions", cli.FormatNumber(int64(len(a.sessions)))},
		{"Config", config.ConfigPath()},
	}

	lines := make([]string, len(info))
	for i, kv := range info {
		lines[i] = label.Render(fmt.Sprintf("%-9s  ", kv[0]+":")) + value.Render(kv[1])
	}
	return strings.Join(lines, "\n")
}
