package watch

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/notetime/internal/store"
	"github.com/theirongolddev/notetime/internal/timelog"
)

var testBase = time.Date(2026, 8, 25, 12, 0, 0, 0, time.Local)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) set(ms int64) {
	c.now = testBase.Add(time.Duration(ms) * time.Millisecond)
}

func newTestService(t *testing.T) (*Service, *fakeClock) {
	t.Helper()
	dir := t.TempDir()
	clock := &fakeClock{now: testBase}

	s := New(Config{
		SnapshotPath:  filepath.Join(dir, "timelog.json"),
		LedgerPath:    filepath.Join(dir, "sessions.db"),
		Addr:          "127.0.0.1:0",
		FlushInterval: time.Minute,
		FoldCap:       -1, // uncapped so the arithmetic below is exact
		Clock:         clock,
	})
	s.bootstrap()
	t.Cleanup(func() {
		if s.ledger != nil {
			_ = s.ledger.Close()
		}
	})
	return s, clock
}

func TestApplyFocusBlurFoldsAndSaves(t *testing.T) {
	s, clock := newTestService(t)
	today := timelog.DateKey(testBase)

	s.apply(Event{Type: EventSwitch, Note: "A"})
	clock.set(120000)
	s.apply(Event{Type: EventBlur})

	if got := s.log[today]["A"]; got != 120000 {
		t.Fatalf("log[%s][A] = %d, want 120000", today, got)
	}

	// The blur must have written the snapshot synchronously.
	onDisk, err := store.NewSnapshot(s.cfg.SnapshotPath).Load()
	if err != nil {
		t.Fatal(err)
	}
	if got := onDisk[today]["A"]; got != 120000 {
		t.Fatalf("snapshot on disk [%s][A] = %d, want 120000", today, got)
	}

	// And a ledger row for the completed session.
	n, err := s.ledger.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("ledger rows = %d, want 1", n)
	}
}

func TestApplySwitchSequence(t *testing.T) {
	s, clock := newTestService(t)
	today := timelog.DateKey(testBase)

	s.apply(Event{Type: EventSwitch, Note: "A"})
	clock.set(60000)
	s.apply(Event{Type: EventSwitch, Note: "B"})
	clock.set(90000)
	s.apply(Event{Type: EventBlur})

	if got := s.log[today]["A"]; got != 60000 {
		t.Fatalf("log[%s][A] = %d, want 60000", today, got)
	}
	if got := s.log[today]["B"]; got != 30000 {
		t.Fatalf("log[%s][B] = %d, want 30000", today, got)
	}
}

func TestApplyBlurWithoutSessionChangesNothing(t *testing.T) {
	s, clock := newTestService(t)

	clock.set(5000)
	s.apply(Event{Type: EventBlur})

	if len(s.log) != 0 {
		t.Fatalf("log = %v, want empty", s.log)
	}
	// Only the bootstrap snapshot update should exist; a no-op blur
	// publishes nothing.
	if len(s.updates) != 1 {
		t.Fatalf("updates = %d, want 1 (bootstrap only)", len(s.updates))
	}
}

func TestApplySwitchEmptyNoteClosesSession(t *testing.T) {
	s, clock := newTestService(t)
	today := timelog.DateKey(testBase)

	s.apply(Event{Type: EventSwitch, Note: "A"})
	clock.set(40000)
	s.apply(Event{Type: EventSwitch, Note: ""})

	if got := s.log[today]["A"]; got != 40000 {
		t.Fatalf("log[%s][A] = %d, want 40000", today, got)
	}
	if s.rec.Running() || s.rec.Active() != "" {
		t.Fatalf("recorder = active %q running %v, want idle", s.rec.Active(), s.rec.Running())
	}
}

func TestCheckpointKeepsSessionRunning(t *testing.T) {
	s, clock := newTestService(t)
	today := timelog.DateKey(testBase)

	s.apply(Event{Type: EventSwitch, Note: "A"})
	clock.set(60000)
	s.checkpoint()

	if got := s.log[today]["A"]; got != 60000 {
		t.Fatalf("log[%s][A] = %d, want 60000 after checkpoint", today, got)
	}
	if !s.rec.Running() {
		t.Fatal("checkpoint ended the session")
	}
	last := s.updates[len(s.updates)-1]
	if last.Type != "checkpoint" {
		t.Fatalf("last update type = %q, want checkpoint", last.Type)
	}

	// No ledger row yet: the session has not ended.
	n, err := s.ledger.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("ledger rows = %d, want 0 while the session runs", n)
	}
}

func TestCloseOutWritesFinalState(t *testing.T) {
	s, clock := newTestService(t)
	today := timelog.DateKey(testBase)

	s.apply(Event{Type: EventSwitch, Note: "A"})
	clock.set(25000)
	s.closeOut()

	onDisk, err := store.NewSnapshot(s.cfg.SnapshotPath).Load()
	if err != nil {
		t.Fatal(err)
	}
	if got := onDisk[today]["A"]; got != 25000 {
		t.Fatalf("final snapshot [%s][A] = %d, want 25000", today, got)
	}
	if s.rec.Running() {
		t.Fatal("session still running after close-out")
	}
}

func TestPublishSwapsReaderClone(t *testing.T) {
	s, clock := newTestService(t)
	today := timelog.DateKey(testBase)

	s.apply(Event{Type: EventSwitch, Note: "A"})
	clock.set(30000)
	s.apply(Event{Type: EventBlur})

	s.mu.RLock()
	published := s.published
	s.mu.RUnlock()

	// Mutating the live log must not show through the published clone.
	s.log.Fold(today, "A", 99999)
	if got := published.Total(today); got != 30000 {
		t.Fatalf("published total = %d, want 30000 unaffected by later folds", got)
	}
}

func TestPublishUpdateRingBuffer(t *testing.T) {
	s, _ := newTestService(t)
	s.cfg.UpdatesBuffer = 2

	s.publish("focus")
	s.publish("blur")
	s.publish("focus")

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.updates) != 2 {
		t.Fatalf("updates len = %d, want 2", len(s.updates))
	}
	if s.updates[0].ID >= s.updates[1].ID {
		t.Fatalf("updates out of order: IDs [%d, %d]", s.updates[0].ID, s.updates[1].ID)
	}
}

func TestStatusAfterMidnightShowsFreshDay(t *testing.T) {
	s, clock := newTestService(t)
	today := timelog.DateKey(testBase)

	s.apply(Event{Type: EventSwitch, Note: "A"})
	clock.set(60000)
	s.apply(Event{Type: EventBlur})

	st := s.currentStatus()
	if st.Summary.TodayMs != 60000 || st.Summary.DateKey != today {
		t.Fatalf("status = %dms on %s, want 60000 on %s", st.Summary.TodayMs, st.Summary.DateKey, today)
	}

	clock.now = testBase.Add(24 * time.Hour)
	st = s.currentStatus()
	if st.Summary.TodayMs != 0 {
		t.Fatalf("next-day status TodayMs = %d, want 0", st.Summary.TodayMs)
	}
	if st.Summary.DateKey == today {
		t.Fatal("status date key did not roll over")
	}
}

func TestHandleEventValidation(t *testing.T) {
	s, _ := newTestService(t)

	w := httptest.NewRecorder()
	s.handleEvent(w, httptest.NewRequest(http.MethodPost, "/v1/event", strings.NewReader(`{"type":"resize"}`)))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown type status = %d, want 400", w.Code)
	}

	w = httptest.NewRecorder()
	s.handleEvent(w, httptest.NewRequest(http.MethodGet, "/v1/event", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET status = %d, want 405", w.Code)
	}

	w = httptest.NewRecorder()
	s.handleEvent(w, httptest.NewRequest(http.MethodPost, "/v1/event", strings.NewReader(`{"type":"focus"}`)))
	if w.Code != http.StatusAccepted {
		t.Fatalf("valid event status = %d, want 202", w.Code)
	}
	select {
	case ev := <-s.events:
		if ev.Type != EventFocus {
			t.Fatalf("queued event = %+v, want focus", ev)
		}
	default:
		t.Fatal("accepted event never reached the queue")
	}
}

func TestHandleLogFiltersByDate(t *testing.T) {
	s, clock := newTestService(t)
	today := timelog.DateKey(testBase)

	s.apply(Event{Type: EventSwitch, Note: "A"})
	clock.set(60000)
	s.apply(Event{Type: EventBlur})

	w := httptest.NewRecorder()
	s.handleLog(w, httptest.NewRequest(http.MethodGet, "/v1/log?date="+today, nil))

	var day map[string]int64
	if err := json.Unmarshal(w.Body.Bytes(), &day); err != nil {
		t.Fatalf("decoding day: %v", err)
	}
	if day["A"] != 60000 {
		t.Fatalf("day[A] = %d, want 60000", day["A"])
	}

	w = httptest.NewRecorder()
	s.handleLog(w, httptest.NewRequest(http.MethodGet, "/v1/log?date=1999-01-01", nil))
	var empty map[string]int64
	if err := json.Unmarshal(w.Body.Bytes(), &empty); err != nil {
		t.Fatalf("decoding empty day: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("absent day = %v, want empty object", empty)
	}
}

func TestBootstrapLoadsExistingLog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "timelog.json")

	seed := timelog.New()
	seed.Fold("2026-08-24", "old.md", 120000)
	if err := store.NewSnapshot(path).Save(seed); err != nil {
		t.Fatal(err)
	}

	s := New(Config{SnapshotPath: path, Clock: &fakeClock{now: testBase}})
	s.bootstrap()

	if got := s.log.Total("2026-08-24"); got != 120000 {
		t.Fatalf("restored total = %d, want 120000", got)
	}
}
