package components

import (
	"strings"
	"testing"

	"github.com/theirongolddev/notetime/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func TestContentCardWidth(t *testing.T) {
	theme.SetActive("flexoki-dark")

	card := ContentCard("Focus", "some body text", 30)
	for i, line := range strings.Split(card, "\n") {
		if w := lipgloss.Width(line); w != 30 {
			t.Errorf("line %d width = %d, want 30", i, w)
		}
	}
}

func TestCardRowPadsToTallestCard(t *testing.T) {
	theme.SetActive("flexoki-dark")

	short := ContentCard("Short", "one line", 22)
	tall := ContentCard("Tall", "a\nb\nc\nd\ne", 22)
	if lipgloss.Height(short) >= lipgloss.Height(tall) {
		t.Fatalf("short card (%d rows) should be shorter than tall card (%d rows)",
			lipgloss.Height(short), lipgloss.Height(tall))
	}

	row := CardRow([]string{tall, short})
	if got, want := lipgloss.Height(row), lipgloss.Height(tall); got != want {
		t.Errorf("joined row height = %d, want %d (the tallest card)", got, want)
	}
	if got, want := lipgloss.Width(row), 44; got != want {
		t.Errorf("joined row width = %d, want %d", got, want)
	}
}

func TestMetricCardDetailAddsARow(t *testing.T) {
	theme.SetActive("flexoki-dark")

	bare := MetricCard(Metric{Label: "Session", Value: "12m"}, 24)
	full := MetricCard(Metric{Label: "Session", Value: "12m", Detail: "since 09:15"}, 24)
	if got, want := lipgloss.Height(full), lipgloss.Height(bare)+1; got != want {
		t.Errorf("card with detail = %d rows, want %d", got, want)
	}
}

func TestSplitWidths(t *testing.T) {
	cases := []struct {
		total, n int
		want     []int
	}{
		{120, 4, []int{30, 30, 30, 30}},
		{10, 3, []int{4, 3, 3}},
		{7, 2, []int{4, 3}},
		{5, 0, nil},
	}
	for _, c := range cases {
		got := SplitWidths(c.total, c.n)
		if len(got) != len(c.want) {
			t.Errorf("SplitWidths(%d, %d) = %v, want %v", c.total, c.n, got, c.want)
			continue
		}
		sum := 0
		for i := range got {
			sum += got[i]
			if got[i] != c.want[i] {
				t.Errorf("SplitWidths(%d, %d) = %v, want %v", c.total, c.n, got, c.want)
				break
			}
		}
		if c.n > 0 && sum != c.total {
			t.Errorf("SplitWidths(%d, %d) sums to %d", c.total, c.n, sum)
		}
	}
}

func TestCardInnerWidth(t *testing.T) {
	if got := CardInnerWidth(30); got != 26 {
		t.Errorf("CardInnerWidth(30) = %d, want 26", got)
	}
	if got := CardInnerWidth(8); got != 10 {
		t.Errorf("CardInnerWidth(8) = %d, want the floor of 10", got)
	}
}
