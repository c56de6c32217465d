// Package tui provides the interactive Bubble Tea dashboard for notetime.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/notetime/internal/config"
	"github.com/theirongolddev/notetime/internal/store"
	"github.com/theirongolddev/notetime/internal/timelog"
	"github.com/theirongolddev/notetime/internal/tracker"
	"github.com/theirongolddev/notetime/internal/tui/components"
	"github.com/theirongolddev/notetime/internal/tui/theme"
	"github.com/theirongolddev/notetime/internal/watch"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// DataLoadedMsg carries the result of the initial data fetch.
type DataLoadedMsg struct {
	Log      timelog.Log
	Sessions []tracker.Session
	Status   *watch.Status
	Live     bool
	LoadTime time.Duration
}

// RefreshDataMsg carries the result of a background refresh.
type RefreshDataMsg struct {
	Log      timelog.Log
	Sessions []tracker.Session
	Status   *watch.Status
	Live     bool
	LoadTime time.Duration
}

// App is the root Bubble Tea model.
type App struct {
	// Data
	log      timelog.Log
	sessions []tracker.Session
	status   *watch.Status
	live     bool
	loaded   bool
	loadTime time.Duration

	// Refresh state
	refreshInterval time.Duration
	lastRefresh     time.Time
	refreshing      bool

	// Projections recomputed after every data change
	todayKey string
	todayMs  int64
	notes    []timelog.NoteTime
	days     []timelog.DayTotal

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Per-tab state
	sessState sessionsState
	settings  settingsState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals setupValues
	needSetup bool

	// Loading
	spinner spinner.Model

	// Daily goal in minutes, 0 when unset
	goalMin int

	// Data sources
	addr         string
	snapshotPath string
	ledgerPath   string
}

const (
	minTerminalWidth = 60
	compactWidth     = 100
	maxContentWidth  = 160

	minContentHeight = 5
)

// loadConfigOrDefault loads config, falling back to defaults on error so
// the TUI can always start.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// NewApp creates the TUI app model for the given configuration.
func NewApp(cfg config.Config) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		needSetup:       !config.Exists(),
		refreshInterval: config.RefreshInterval(cfg),
		goalMin:         cfg.General.DailyGoalMin,
		spinner:         sp,
		addr:            config.ListenAddr(cfg),
		snapshotPath:    config.SnapshotPath(cfg),
		ledgerPath:      config.LedgerPath(cfg),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.addr, a.snapshotPath, a.ledgerPath),
		a.spinner.Tick,
		tickCmd(),
	)
}

// recompute refreshes the per-render projections after the log, status, or
// session list changed. The date key follows the daemon when live so both
// agree across midnight.
func (a *App) recompute() {
	a.todayKey = timelog.DateKey(time.Now())
	if a.live && a.status != nil {
		a.todayKey = a.status.Summary.DateKey
	}

	a.todayMs = a.log.Total(a.todayKey)
	a.notes = a.log.Day(a.todayKey).Notes()
	a.days = a.log.Days()

	if a.sessState.cursor >= len(a.sessions) {
		a.sessState.cursor = len(a.sessions) - 1
	}
	if a.sessState.cursor < 0 {
		a.sessState.cursor = 0
	}
}

// todayMinutes is the rounded folded total for the current date.
func (a App) todayMinutes() int {
	if a.live && a.status != nil {
		return a.status.Summary.TodayMinutes
	}
	return timelog.Minutes(a.todayMs)
}

func (a App) recording() bool {
	return a.live && a.status != nil && a.status.Summary.Running
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		return a.handleMouse(msg)

	case tea.KeyMsg:
		return a.handleKey(msg)

	case DataLoadedMsg:
		a.log = msg.Log
		a.sessions = msg.Sessions
		a.status = msg.Status
		a.live = msg.Live
		a.loaded = true
		a.loadTime = msg.LoadTime
		a.lastRefresh = time.Now()
		a.recompute()

		// The setup wizard waits for data so its defaults can reflect
		// what is already on disk.
		if a.needSetup {
			a.setupVals = defaultSetupValues()
			a.setupForm = newSetupForm(&a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}

		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd()}
		if a.loaded && !a.refreshing && time.Since(a.lastRefresh) >= a.refreshInterval {
			a.refreshing = true
			cmds = append(cmds, refreshDataCmd(a.addr, a.snapshotPath, a.ledgerPath))
		}
		return a, tea.Batch(cmds...)

	case RefreshDataMsg:
		a.refreshing = false
		a.lastRefresh = time.Now()
		if msg.Log != nil {
			a.log = msg.Log
			a.sessions = msg.Sessions
			a.status = msg.Status
			a.live = msg.Live
			a.loadTime = msg.LoadTime
			a.recompute()
		}
		return a, nil
	}

	// Anything else (cursor blinks and friends) belongs to the setup form
	// while it is up.
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	return a, nil
}

func (a App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !a.loaded || a.showHelp || (a.needSetup && a.setupForm != nil) {
		return a, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if a.activeTab == 2 && a.sessState.cursor > 0 {
			a.sessState.cursor--
		}
	case tea.MouseButtonWheelDown:
		if a.activeTab == 2 && a.sessState.cursor < len(a.sessions)-1 {
			a.sessState.cursor++
		}
	case tea.MouseButtonLeft:
		// The tab bar is the first row.
		if msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 && tab < len(components.Tabs) {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}
	if !a.loaded {
		return a, nil
	}

	// Modal surfaces swallow everything else first: the setup wizard,
	// then an in-progress settings edit, then the help overlay.
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.activeTab == 3 && a.settings.editing {
		return a.updateSettingsInput(msg)
	}
	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	// List navigation on the Sessions tab.
	if a.activeTab == 2 {
		switch key {
		case "j", "down":
			if a.sessState.cursor < len(a.sessions)-1 {
				a.sessState.cursor++
			}
			return a, nil
		case "k", "up":
			if a.sessState.cursor > 0 {
				a.sessState.cursor--
			}
			return a, nil
		case "g":
			a.sessState.cursor = 0
			a.sessState.offset = 0
			return a, nil
		case "G":
			a.sessState.cursor = len(a.sessions) - 1
			if a.sessState.cursor < 0 {
				a.sessState.cursor = 0
			}
			return a, nil
		}
	}

	// Field navigation on the Settings tab.
	if a.activeTab == 3 {
		switch key {
		case "j", "down":
			if a.settings.cursor < settingsFieldCount-1 {
				a.settings.cursor++
			}
			return a, nil
		case "k", "up":
			if a.settings.cursor > 0 {
				a.settings.cursor--
			}
			return a, nil
		case "enter":
			return a.settingsStartEdit()
		}
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "r":
		if !a.refreshing {
			a.refreshing = true
			return a, refreshDataCmd(a.addr, a.snapshotPath, a.ledgerPath)
		}
		return a, nil
	case "t":
		a.activeTab = 0
	case "h":
		a.activeTab = 1
	case "s":
		a.activeTab = 2
	case "x":
		a.activeTab = 3
	case "left":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
	case "right":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
	}
	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		a.saveSetupConfig()
		a.recompute()
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

func (a App) contentWidth() int {
	if a.width > maxContentWidth {
		return maxContentWidth
	}
	return a.width
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	switch {
	case a.width == 0:
		return ""
	case a.width < minTerminalWidth:
		return a.viewTooNarrow()
	case !a.loaded:
		return a.viewLoading()
	case a.needSetup && a.setupForm != nil:
		return a.setupForm.View()
	case a.showHelp:
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  notetime needs at least %d columns.\n",
		a.width, minTerminalWidth,
	)
	return fitHeight(msg, h)
}

func (a App) viewLoading() string {
	t := theme.Active

	onSurface := lipgloss.NewStyle().Background(t.Surface)
	line1 := onSurface.Foreground(t.AccentBright).Bold(true).Render("◆ notetime") +
		onSurface.Foreground(t.TextMuted).Render(" · Note Focus Time")
	line2 := onSurface.Foreground(t.Accent).Render(a.spinner.View()) +
		onSurface.Foreground(t.TextMuted).Render(" Reading time log...")

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4).
		Render(line1 + "\n\n" + line2)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	sections := []struct {
		name  string
		binds [][2]string
	}{
		{"Navigation", [][2]string{
			{"t h s x", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"j k", "Navigate lists"},
			{"g G", "First / Last entry"},
		}},
		{"Actions", [][2]string{
			{"Enter", "Edit setting"},
			{"Esc", "Cancel edit"},
			{"r", "Refresh now"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true).
		Render("◆ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.name))
		b.WriteString("\n")
		for _, bind := range sec.binds {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind[0])),
				descStyle.Render(bind[1]))
		}
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).
		Render("Press any key to close"))

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3).
		Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()

	// Header: tab bar plus a data-source pill on its own row.
	pill := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	var source string
	if a.live {
		source = lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface).Bold(true).Render(" ● live") +
			pill.Render(" · "+a.addr+" ")
	} else {
		source = lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Bold(true).Render(" ○ offline") +
			pill.Render(" · snapshot ")
	}
	header := components.RenderTabBar(a.activeTab, w) + "\n" +
		lipgloss.NewStyle().Background(t.Surface).Width(w).Render(source)

	statusBar := components.RenderStatusBar(w, a.todayMinutes(), a.recording(), ageLabel(time.Since(a.lastRefresh)))

	// Content gets whatever rows remain between header and status bar.
	contentH := a.height - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case 0:
		content = a.renderTodayTab(cw)
	case 1:
		content = a.renderHistoryTab(cw)
	case 2:
		content = a.renderSessionsTab(cw, contentH)
	case 3:
		content = a.renderSettingsTab(cw)
	}

	// Normalize the content zone: exact height, every row painted to full
	// width so gaps between cards keep the background color. Then center
	// it when the terminal is wider than the content cap.
	content = fillBackground(fitHeight(content, contentH), cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, a.height, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Data loading ───────────────────────────────────────────────

type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// fetchData pulls the log from the watch service when it is up, falling
// back to the on-disk snapshot, and lists recent ledger sessions.
func fetchData(addr, snapshotPath, ledgerPath string) (timelog.Log, []tracker.Session, *watch.Status, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var lg timelog.Log
	var st *watch.Status
	live := false

	client := watch.NewClient(addr)
	if client.Healthy(ctx) {
		if l, err := client.Log(ctx); err == nil {
			lg = l
			live = true
		}
		if s, err := client.Status(ctx); err == nil {
			st = &s
		}
	}

	if lg == nil {
		snap, err := store.NewSnapshot(snapshotPath).Load()
		if err != nil {
			snap = timelog.New()
		}
		lg = snap
	}

	var sessions []tracker.Session
	if ledger, err := store.OpenLedger(ledgerPath); err == nil {
		sessions, _ = ledger.ListRecent(200)
		_ = ledger.Close()
	}

	return lg, sessions, st, live
}

func loadDataCmd(addr, snapshotPath, ledgerPath string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		lg, sessions, st, live := fetchData(addr, snapshotPath, ledgerPath)
		return DataLoadedMsg{
			Log:      lg,
			Sessions: sessions,
			Status:   st,
			Live:     live,
			LoadTime: time.Since(start),
		}
	}
}

func refreshDataCmd(addr, snapshotPath, ledgerPath string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		lg, sessions, st, live := fetchData(addr, snapshotPath, ledgerPath)
		return RefreshDataMsg{
			Log:      lg,
			Sessions: sessions,
			Status:   st,
			Live:     live,
			LoadTime: time.Since(start),
		}
	}
}

// ─── Layout helpers ─────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

// fitHeight trims or pads s to exactly h lines.
func fitHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > h {
		return strings.Join(lines[:h], "\n")
	}
	if len(lines) < h {
		return s + strings.Repeat("\n", h-len(lines))
	}
	return s
}

// ageLabel renders how stale the data is, second granularity.
func ageLabel(d time.Duration) string {
	switch {
	case d < time.Second:
		return "now"
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	default:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
}

// fillBackground pads every line of s to width w with bg-colored cells, so
// rows shorter than the content zone do not punch holes in the theme.
func fillBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}

// ─── Mouse support ──────────────────────────────────────────────

// tabAtX returns the tab index rendered at column x, or -1. Hitboxes are
// derived from the same width rules RenderTabBar draws with.
func (a App) tabAtX(x int) int {
	pos := 1 // leading space before the first tab
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW
		if i < len(components.Tabs)-1 {
			pos += 2 // separator columns
		}
	}
	return -1
}
