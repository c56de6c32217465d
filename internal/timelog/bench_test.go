package timelog

import (
	"fmt"
	"testing"
)

func BenchmarkFold(b *testing.B) {
	l := New()
	notes := make([]string, 50)
	for i := range notes {
		notes[i] = fmt.Sprintf("notes/daily/2026-08-%02d.md", i%28+1)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.Fold("2026-08-25", notes[i%len(notes)], 1500)
	}
}

func BenchmarkNotes(b *testing.B) {
	day := make(DayLog, 200)
	for i := 0; i < 200; i++ {
		day[fmt.Sprintf("notes/topic-%03d.md", i)] = int64(i * 7919)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = day.Notes()
	}
}

func BenchmarkClone(b *testing.B) {
	l := New()
	for d := 1; d <= 30; d++ {
		date := fmt.Sprintf("2026-08-%02d", d)
		for n := 0; n < 40; n++ {
			l.Fold(date, fmt.Sprintf("notes/topic-%02d.md", n), int64(n+1)*1000)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = l.Clone()
	}
}
