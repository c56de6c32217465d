// Package timelog defines the daily time log: per-day, per-note focus durations.
package timelog

import (
	"sort"
	"time"
)

// DayLog maps a note path to its accumulated focus time in milliseconds.
type DayLog map[string]int64

// Log is the full time log: date key -> per-note millisecond totals.
// A note appears at most once per day; its value is the sum of every
// completed focus session on that note that day.
type Log map[string]DayLog

// NoteTime pairs a note path with its accumulated milliseconds.
type NoteTime struct {
	Note string
	Ms   int64
}

// DayTotal summarizes one day of the log.
type DayTotal struct {
	Date  string
	Notes int
	Ms    int64
}

// DateKey returns the calendar-day bucket key for t in local time.
func DateKey(t time.Time) string {
	return t.Local().Format("2006-01-02")
}

// ParseDateKey parses a date key back into a local midnight timestamp.
func ParseDateKey(key string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", key, time.Local)
}

// Minutes converts milliseconds to whole minutes, rounding half up.
// Status bar, chart slices, and tables all share this one rounding rule.
func Minutes(ms int64) int {
	if ms < 0 {
		return 0
	}
	return int((ms + 30000) / 60000)
}

// New returns an empty log.
func New() Log {
	return make(Log)
}

// Fold adds ms to the note's total under the given date key, allocating
// the day bucket on first touch. Non-positive durations and empty note
// paths are ignored.
func (l Log) Fold(date, note string, ms int64) {
	if note == "" || ms <= 0 {
		return
	}
	day, ok := l[date]
	if !ok {
		day = make(DayLog)
		l[date] = day
	}
	day[note] += ms
}

// Day returns the per-note totals for a date key, or nil if the day has
// no entries.
func (l Log) Day(date string) DayLog {
	return l[date]
}

// Total returns the sum of all note totals recorded under a date key.
func (l Log) Total(date string) int64 {
	var total int64
	for _, ms := range l[date] {
		total += ms
	}
	return total
}

// Dates returns all date keys in ascending order.
func (l Log) Dates() []string {
	dates := make([]string, 0, len(l))
	for d := range l {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// Days returns per-day summaries, most recent first.
func (l Log) Days() []DayTotal {
	days := make([]DayTotal, 0, len(l))
	for date, day := range l {
		dt := DayTotal{Date: date, Notes: len(day)}
		for _, ms := range day {
			dt.Ms += ms
		}
		days = append(days, dt)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date > days[j].Date
	})
	return days
}

// Clone returns a deep copy of the log. Snapshots handed to readers are
// always clones; the live map never leaves its owner.
func (l Log) Clone() Log {
	out := make(Log, len(l))
	for date, day := range l {
		cd := make(DayLog, len(day))
		for note, ms := range day {
			cd[note] = ms
		}
		out[date] = cd
	}
	return out
}

// Notes returns the day's entries sorted by accumulated time descending,
// note path ascending on ties.
func (d DayLog) Notes() []NoteTime {
	notes := make([]NoteTime, 0, len(d))
	for note, ms := range d {
		notes = append(notes, NoteTime{Note: note, Ms: ms})
	}
	sort.Slice(notes, func(i, j int) bool {
		if notes[i].Ms != notes[j].Ms {
			return notes[i].Ms > notes[j].Ms
		}
		return notes[i].Note < notes[j].Note
	})
	return notes
}
