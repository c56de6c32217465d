package tui

import (
	"testing"

	"github.com/theirongolddev/notetime/internal/tui/components"
)

func TestTabAtXMatchesTabWidths(t *testing.T) {
	n := len(components.Tabs)
	for active := 0; active < n; active++ {
		a := App{activeTab: active}
		pos := 1 // leading space before the first tab

		for i := 0; i < n; i++ {
			w := tabWidthForTest(i, active)
			x := pos + w/2 // midpoint inside this tab
			if got := a.tabAtX(x); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, x, got, i)
			}
			pos += w
			if i < n-1 {
				pos += 2 // separator
			}
		}
	}
}

func TestTabAtXMissesGutter(t *testing.T) {
	a := App{}
	if got := a.tabAtX(0); got != -1 {
		t.Fatalf("tabAtX(0) = %d, want -1 (leading space)", got)
	}
	if got := a.tabAtX(500); got != -1 {
		t.Fatalf("tabAtX(500) = %d, want -1", got)
	}
}

func tabWidthForTest(tabIdx, activeIdx int) int {
	names := []string{"Today", "History", "Sessions", "Settings"}

	w := len(names[tabIdx])
	if tabIdx == activeIdx {
		return w
	}
	if tabIdx == len(names)-1 {
		return w + 3 // inactive Settings appends "[x]"
	}
	return w + 2 // shortcut brackets wrap a letter of the name
}
