package timelog

import (
	"testing"
	"time"
)

func TestFoldAccumulates(t *testing.T) {
	l := New()
	l.Fold("2026-08-25", "notes/alpha.md", 30000)
	l.Fold("2026-08-25", "notes/alpha.md", 30000)

	if got := l["2026-08-25"]["notes/alpha.md"]; got != 60000 {
		t.Fatalf("alpha = %d, want 60000", got)
	}
}

func TestFoldAllocatesDayBuckets(t *testing.T) {
	l := New()
	l.Fold("2026-08-24", "a.md", 1000)
	l.Fold("2026-08-25", "a.md", 2000)
	l.Fold("2026-08-25", "b.md", 3000)

	if len(l) != 2 {
		t.Fatalf("days = %d, want 2", len(l))
	}
	if len(l["2026-08-25"]) != 2 {
		t.Fatalf("notes on 2026-08-25 = %d, want 2", len(l["2026-08-25"]))
	}
}

func TestFoldIgnoresInvalid(t *testing.T) {
	l := New()
	l.Fold("2026-08-25", "", 5000)
	l.Fold("2026-08-25", "a.md", 0)
	l.Fold("2026-08-25", "a.md", -100)

	if len(l) != 0 {
		t.Fatalf("log = %v, want empty", l)
	}
}

func TestMinutes(t *testing.T) {
	tests := []struct {
		name string
		ms   int64
		want int
	}{
		{"zero", 0, 0},
		{"below half minute", 29999, 0},
		{"exactly half minute", 30000, 1},
		{"one minute", 60000, 1},
		{"just under one and a half", 89999, 1},
		{"one and a half", 90000, 2},
		{"two minutes", 120000, 2},
		{"negative clamps to zero", -60000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Minutes(tt.ms); got != tt.want {
				t.Errorf("Minutes(%d) = %d, want %d", tt.ms, got, tt.want)
			}
		})
	}
}

func TestTotal(t *testing.T) {
	l := New()
	l.Fold("2026-08-25", "a.md", 120000)
	l.Fold("2026-08-25", "b.md", 30000)
	l.Fold("2026-08-24", "a.md", 999999)

	if got := l.Total("2026-08-25"); got != 150000 {
		t.Fatalf("Total = %d, want 150000", got)
	}
	if got := l.Total("2026-01-01"); got != 0 {
		t.Fatalf("Total for absent day = %d, want 0", got)
	}
}

func TestDatesSorted(t *testing.T) {
	l := New()
	l.Fold("2026-08-25", "a.md", 1)
	l.Fold("2026-01-02", "a.md", 1)
	l.Fold("2026-03-15", "a.md", 1)

	got := l.Dates()
	want := []string{"2026-01-02", "2026-03-15", "2026-08-25"}
	if len(got) != len(want) {
		t.Fatalf("Dates = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Dates[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDaysMostRecentFirst(t *testing.T) {
	l := New()
	l.Fold("2026-08-23", "a.md", 1000)
	l.Fold("2026-08-25", "a.md", 2000)
	l.Fold("2026-08-25", "b.md", 3000)
	l.Fold("2026-08-24", "a.md", 4000)

	days := l.Days()
	if len(days) != 3 {
		t.Fatalf("days = %d, want 3", len(days))
	}
	if days[0].Date != "2026-08-25" || days[0].Ms != 5000 || days[0].Notes != 2 {
		t.Fatalf("days[0] = %+v, want 2026-08-25/5000ms/2 notes", days[0])
	}
	if days[2].Date != "2026-08-23" {
		t.Fatalf("days[2].Date = %q, want 2026-08-23", days[2].Date)
	}
}

func TestCloneIsDeep(t *testing.T) {
	l := New()
	l.Fold("2026-08-25", "a.md", 1000)

	c := l.Clone()
	c.Fold("2026-08-25", "a.md", 9000)
	c.Fold("2026-08-26", "b.md", 1)

	if got := l["2026-08-25"]["a.md"]; got != 1000 {
		t.Fatalf("original mutated through clone: a.md = %d, want 1000", got)
	}
	if _, ok := l["2026-08-26"]; ok {
		t.Fatal("original grew a day added to the clone")
	}
}

func TestNotesSorted(t *testing.T) {
	d := DayLog{
		"c.md": 5000,
		"a.md": 9000,
		"b.md": 5000,
	}

	notes := d.Notes()
	want := []NoteTime{
		{Note: "a.md", Ms: 9000},
		{Note: "b.md", Ms: 5000},
		{Note: "c.md", Ms: 5000},
	}
	if len(notes) != len(want) {
		t.Fatalf("notes = %v, want %v", notes, want)
	}
	for i := range want {
		if notes[i] != want[i] {
			t.Fatalf("notes[%d] = %+v, want %+v", i, notes[i], want[i])
		}
	}
}

func TestDateKey(t *testing.T) {
	instant := time.Date(2026, 8, 25, 23, 30, 0, 0, time.UTC)

	key := DateKey(instant)
	if len(key) != 10 || key[4] != '-' || key[7] != '-' {
		t.Fatalf("DateKey = %q, want YYYY-MM-DD shape", key)
	}

	// Same instant expressed in a different zone must bucket identically,
	// since keys are always derived from local time.
	other := instant.In(time.FixedZone("weird", 11*3600))
	if got := DateKey(other); got != key {
		t.Fatalf("DateKey differs across zone representations: %q vs %q", got, key)
	}
}
