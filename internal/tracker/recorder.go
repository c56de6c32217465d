// Package tracker implements the focus session recorder, the state machine
// that turns focus, blur, and note-switch events into per-day accumulated
// durations.
package tracker

import (
	"time"

	"github.com/theirongolddev/notetime/internal/timelog"
)

// Clock supplies the current time. Production code uses SystemClock;
// tests substitute a fake so event timing is exact.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// Session is one completed contiguous focus interval on a note. Ms is the
// total folded into the log for this session, which can be less than
// End.Sub(Start) when a fold cap clamped a suspended interval. Date is the
// key of the day the session started.
type Session struct {
	ID    string
	Note  string
	Start time.Time
	End   time.Time
	Ms    int64
	Date  string
}

// Recorder tracks the active note and the running session, folding
// completed intervals into the log it was given. It performs no I/O and
// is not safe for concurrent use; callers serialize events (the watch
// service runs it on a single loop goroutine).
type Recorder struct {
	clock   Clock
	log     timelog.Log
	foldCap time.Duration

	activeNote   string
	sessionStart time.Time // zero when no session is running
	openedAt     time.Time // when the running session began; survives flushes
	foldedMs     int64     // folded so far in the running session
}

// New returns a Recorder folding completed sessions into log. A nil clock
// uses the system clock.
func New(log timelog.Log, clock Clock) *Recorder {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Recorder{clock: clock, log: log}
}

// SetFoldCap clamps any single fold to at most d. Zero disables the cap.
// With periodic flushing enabled, a fold much longer than the flush
// interval means the process was suspended in between, so the watch
// service caps folds at twice its flush interval.
func (r *Recorder) SetFoldCap(d time.Duration) {
	r.foldCap = d
}

// FocusGained starts a session on the active note at the current time.
// No-op when no note is active. A second focus without an intervening
// blur restarts the session; the last focus wins.
func (r *Recorder) FocusGained() {
	if r.activeNote == "" {
		return
	}
	now := r.clock.Now()
	r.sessionStart = now
	r.openedAt = now
	r.foldedMs = 0
}

// FocusLost ends the running session: the elapsed interval is folded into
// the log under the current date key and the completed Session is
// returned. No-op (false) when no note is active or no session is
// running.
func (r *Recorder) FocusLost() (Session, bool) {
	if r.activeNote == "" || r.sessionStart.IsZero() {
		return Session{}, false
	}
	now := r.clock.Now()
	r.fold(now)

	s := Session{
		Note:  r.activeNote,
		Start: r.openedAt,
		End:   now,
		Ms:    r.foldedMs,
		Date:  timelog.DateKey(r.openedAt),
	}
	r.sessionStart = time.Time{}
	r.openedAt = time.Time{}
	r.foldedMs = 0
	return s, true
}

// SetActiveNote switches the active note. A differing note first closes
// the running session (returned as with FocusLost), then the new note
// becomes active, then a fresh session starts if the note is non-empty.
// An empty note means no active document: the prior session still closes,
// and nothing new starts. Same note is a no-op.
func (r *Recorder) SetActiveNote(note string) (Session, bool) {
	if note == r.activeNote {
		return Session{}, false
	}
	ended, ok := r.FocusLost()
	r.activeNote = note
	if note != "" {
		r.FocusGained()
	}
	return ended, ok
}

// Flush is the periodic checkpoint: it folds the elapsed interval so far
// and advances the session start to now without ending the session, so
// the log stays fresh between real blurs. Returns the folded
// milliseconds, 0 when no session is running.
func (r *Recorder) Flush() int64 {
	if r.activeNote == "" || r.sessionStart.IsZero() {
		return 0
	}
	now := r.clock.Now()
	ms := r.fold(now)
	r.sessionStart = now
	return ms
}

// CloseOut ends any running session on shutdown, exactly as a blur would.
func (r *Recorder) CloseOut() (Session, bool) {
	return r.FocusLost()
}

// Active returns the active note path, empty when none.
func (r *Recorder) Active() string { return r.activeNote }

// Running reports whether a session is in progress.
func (r *Recorder) Running() bool { return !r.sessionStart.IsZero() }

// StartedAt returns when the running session began, zero when idle.
func (r *Recorder) StartedAt() time.Time { return r.openedAt }

// Elapsed returns how long the running session has been open, across any
// intermediate flushes. Zero when idle.
func (r *Recorder) Elapsed() time.Duration {
	if r.sessionStart.IsZero() {
		return 0
	}
	return r.clock.Now().Sub(r.openedAt)
}

// Pending returns the not-yet-folded tail of the running session. Zero
// when idle. The log plus Pending is the up-to-the-instant total.
func (r *Recorder) Pending() time.Duration {
	if r.sessionStart.IsZero() {
		return 0
	}
	return r.clamp(r.clock.Now().Sub(r.sessionStart))
}

// fold accumulates the interval from sessionStart to now into the log
// under now's date key and returns the folded milliseconds.
func (r *Recorder) fold(now time.Time) int64 {
	ms := r.clamp(now.Sub(r.sessionStart)).Milliseconds()
	r.log.Fold(timelog.DateKey(now), r.activeNote, ms)
	r.foldedMs += ms
	return ms
}

func (r *Recorder) clamp(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	if r.foldCap > 0 && d > r.foldCap {
		return r.foldCap
	}
	return d
}
