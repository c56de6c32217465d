package components

import (
	"strings"

	"github.com/theirongolddev/notetime/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab is one entry in the dashboard's tab bar.
type Tab struct {
	Name   string
	Key    rune
	KeyPos int // position of the shortcut letter in the name (-1 if not in name)
}

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Name: "Today", Key: 't', KeyPos: 0},
	{Name: "History", Key: 'h', KeyPos: 0},
	{Name: "Sessions", Key: 's', KeyPos: 0},
	{Name: "Settings", Key: 'x', KeyPos: -1}, // x is not in "Settings"
}

// RenderTabBar renders the tab bar with the given active index.
func RenderTabBar(activeIdx int, width int) string {
	parts := make([]string, len(Tabs))
	for i, tab := range Tabs {
		parts[i] = renderTab(tab, i == activeIdx)
	}
	return " " + strings.Join(parts, "  ")
}

// renderTab draws one label. The active tab is plain bold accent; inactive
// tabs mark their shortcut with brackets, either around the matching letter
// in the name or appended as [k] when the key is not part of the name.
func renderTab(tab Tab, active bool) string {
	t := theme.Active
	if active {
		return lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Render(tab.Name)
	}

	name := lipgloss.NewStyle().Foreground(t.TextMuted)
	key := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	bracket := lipgloss.NewStyle().Foreground(t.TextDim)

	if tab.KeyPos >= 0 && tab.KeyPos < len(tab.Name) {
		return name.Render(tab.Name[:tab.KeyPos]) +
			bracket.Render("[") + key.Render(string(tab.Name[tab.KeyPos])) + bracket.Render("]") +
			name.Render(tab.Name[tab.KeyPos+1:])
	}
	return name.Render(tab.Name) +
		bracket.Render("[") + key.Render(string(tab.Key)) + bracket.Render("]")
}

// TabVisualWidth returns the rendered width of a tab label. Mouse hitboxes in
// the app must match this exactly, so any change to renderTab's layout has
// to be mirrored here.
func TabVisualWidth(tab Tab, active bool) int {
	if active {
		return len(tab.Name)
	}
	if tab.KeyPos >= 0 && tab.KeyPos < len(tab.Name) {
		return len(tab.Name) + 2
	}
	return len(tab.Name) + 3
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
