// Package watch provides the long-running focus tracking service. It
// owns the recorder and the time log; editors and hooks feed it focus
// events over a loopback HTTP endpoint.
package watch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/notetime/internal/store"
	"github.com/theirongolddev/notetime/internal/timelog"
	"github.com/theirongolddev/notetime/internal/tracker"
)

// Config controls the watch service runtime behavior.
type Config struct {
	SnapshotPath  string
	LedgerPath    string
	Addr          string
	FlushInterval time.Duration
	FoldCap       time.Duration // 0 derives 2x FlushInterval, negative disables
	QueueSize     int
	UpdatesBuffer int
	Clock         tracker.Clock // nil uses the system clock
}

// Summary is the compact tracking state carried in status and update
// payloads.
type Summary struct {
	DateKey      string    `json:"date_key"`
	ActiveNote   string    `json:"active_note,omitempty"`
	Running      bool      `json:"running"`
	SessionStart time.Time `json:"session_start"`
	TodayMs      int64     `json:"today_ms"`
	TodayMinutes int       `json:"today_minutes"`
}

// Update is published to stream subscribers whenever tracking state
// changes. Type is the event that caused it, or snapshot, checkpoint,
// close.
type Update struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Summary   Summary   `json:"summary"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt        time.Time `json:"started_at"`
	FlushIntervalSec int       `json:"flush_interval_sec"`
	SnapshotPath     string    `json:"snapshot_path"`
	EventCount       int64     `json:"event_count"`
	LastSaveAt       time.Time `json:"last_save_at"`
	LastError        string    `json:"last_error,omitempty"`
	SubscriberCount  int       `json:"subscriber_count"`
	SessionMs        int64     `json:"session_ms"`
	Summary          Summary   `json:"summary"`
}

// Service provides the watch runtime and HTTP API. A single loop
// goroutine owns the recorder and the live log; events are applied in
// arrival order, one at a time. Readers only ever see published clones.
type Service struct {
	cfg    Config
	events chan Event

	// Owned by the run loop, never touched by handlers.
	rec      *tracker.Recorder
	log      timelog.Log
	snapshot *store.Snapshot
	ledger   *store.Ledger

	mu           sync.RWMutex
	startedAt    time.Time
	published    timelog.Log // clone swapped wholesale on every publish
	summary      Summary
	lastSaveAt   time.Time
	lastError    string
	eventCount   int64
	nextUpdateID int64
	updates      []Update

	nextSubID int
	subs      map[int]chan Update
}

// New returns a new watch service with the provided config.
func New(cfg Config) *Service {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:48632"
	}
	if cfg.FlushInterval < time.Second {
		cfg.FlushInterval = 60 * time.Second
	}
	if cfg.FoldCap == 0 {
		cfg.FoldCap = 2 * cfg.FlushInterval
	}
	if cfg.QueueSize < 1 {
		cfg.QueueSize = 64
	}
	if cfg.UpdatesBuffer < 1 {
		cfg.UpdatesBuffer = 200
	}
	if cfg.Clock == nil {
		cfg.Clock = tracker.SystemClock{}
	}

	return &Service{
		cfg:       cfg,
		events:    make(chan Event, cfg.QueueSize),
		snapshot:  store.NewSnapshot(cfg.SnapshotPath),
		startedAt: cfg.Clock.Now(),
		subs:      make(map[int]chan Update),
	}
}

// Run starts HTTP endpoints and the event loop until ctx is canceled.
// Shutdown closes out any open session and writes a final snapshot.
func (s *Service) Run(ctx context.Context) error {
	s.bootstrap()

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/event", s.handleEvent)
	mux.HandleFunc("/v1/status", s.handleStatus)
	mux.HandleFunc("/v1/log", s.handleLog)
	mux.HandleFunc("/v1/updates", s.handleUpdates)
	mux.HandleFunc("/v1/stream", s.handleStream)

	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	ticker := time.NewTicker(s.cfg.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return s.shutdown(server)
		case ev := <-s.events:
			s.apply(ev)
		case <-ticker.C:
			s.checkpoint()
		case err := <-errCh:
			s.closeOut()
			return fmt.Errorf("watch http server: %w", err)
		}
	}
}

// bootstrap loads persisted state and publishes the initial snapshot so
// status is useful immediately. Failures degrade to empty state;
// tracking starts regardless.
func (s *Service) bootstrap() {
	tl, err := s.snapshot.Load()
	if err != nil {
		s.setError(fmt.Errorf("loading time log: %w", err))
		tl = timelog.New()
	}
	s.log = tl
	s.rec = tracker.New(tl, s.cfg.Clock)
	if s.cfg.FoldCap > 0 {
		s.rec.SetFoldCap(s.cfg.FoldCap)
	}

	if s.cfg.LedgerPath != "" {
		ledger, err := store.OpenLedger(s.cfg.LedgerPath)
		if err != nil {
			s.setError(fmt.Errorf("opening session ledger: %w", err))
		} else {
			s.ledger = ledger
		}
	}

	s.publish("snapshot")
}

// apply runs one event through the recorder and persists and publishes
// whatever it changed.
func (s *Service) apply(ev Event) {
	s.mu.Lock()
	s.eventCount++
	s.mu.Unlock()

	switch ev.Type {
	case EventFocus:
		s.rec.FocusGained()
		if s.rec.Running() {
			s.publish(EventFocus)
		}
	case EventBlur:
		if sess, ok := s.rec.FocusLost(); ok {
			s.recordSession(sess)
			s.publish(EventBlur)
		}
	case EventSwitch:
		prev := s.rec.Active()
		sess, ok := s.rec.SetActiveNote(ev.Note)
		if ok {
			s.recordSession(sess)
		}
		if ok || prev != ev.Note {
			s.publish(EventSwitch)
		}
	}
}

// checkpoint folds the running session's elapsed time without ending it,
// keeping the snapshot fresh between real blurs.
func (s *Service) checkpoint() {
	if ms := s.rec.Flush(); ms > 0 {
		s.save()
		s.publish("checkpoint")
	}
}

// recordSession persists a completed session: a ledger row and a fresh
// snapshot of the log it was folded into.
func (s *Service) recordSession(sess tracker.Session) {
	sess.ID = uuid.NewString()
	if s.ledger != nil {
		if err := s.ledger.Append(sess); err != nil {
			s.setError(fmt.Errorf("recording session: %w", err))
		}
	}
	s.save()
}

// save writes the full log snapshot. Failures are logged and tracking
// continues; the next fold retries naturally.
func (s *Service) save() {
	if err := s.snapshot.Save(s.log); err != nil {
		s.setError(fmt.Errorf("saving time log: %w", err))
		return
	}
	s.mu.Lock()
	s.lastSaveAt = s.cfg.Clock.Now()
	s.lastError = ""
	s.mu.Unlock()
}

func (s *Service) setError(err error) {
	s.mu.Lock()
	s.lastError = err.Error()
	s.mu.Unlock()
	log.Printf("notetime watch: %v", err)
}

// publish swaps the readers' log clone and fans an update out to stream
// subscribers. Slow subscribers miss updates rather than block the loop.
func (s *Service) publish(typ string) {
	now := s.cfg.Clock.Now()
	key := timelog.DateKey(now)
	sum := Summary{
		DateKey:      key,
		ActiveNote:   s.rec.Active(),
		Running:      s.rec.Running(),
		SessionStart: s.rec.StartedAt(),
		TodayMs:      s.log.Total(key),
	}
	sum.TodayMinutes = timelog.Minutes(sum.TodayMs)

	s.mu.Lock()
	s.published = s.log.Clone()
	s.summary = sum
	s.nextUpdateID++
	up := Update{ID: s.nextUpdateID, Type: typ, Timestamp: now, Summary: sum}
	s.updates = append(s.updates, up)
	if len(s.updates) > s.cfg.UpdatesBuffer {
		s.updates = s.updates[len(s.updates)-s.cfg.UpdatesBuffer:]
	}
	for _, ch := range s.subs {
		select {
		case ch <- up:
		default:
		}
	}
	s.mu.Unlock()
}

// shutdown stops intake, drains queued events, and closes out.
func (s *Service) shutdown(server *http.Server) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := server.Shutdown(shutdownCtx)

	for drained := false; !drained; {
		select {
		case ev := <-s.events:
			s.apply(ev)
		default:
			drained = true
		}
	}

	s.closeOut()
	return err
}

// closeOut ends any open session as if the window blurred and writes the
// final snapshot synchronously.
func (s *Service) closeOut() {
	if sess, ok := s.rec.CloseOut(); ok {
		s.recordSession(sess)
		s.publish("close")
	} else {
		s.save()
	}
	if s.ledger != nil {
		_ = s.ledger.Close()
	}
}

// currentStatus recomputes the live view from published state, so the
// date key and today's total stay correct across midnight even when no
// fold has happened yet.
func (s *Service) currentStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.cfg.Clock.Now()
	st := Status{
		StartedAt:        s.startedAt,
		FlushIntervalSec: int(s.cfg.FlushInterval.Seconds()),
		SnapshotPath:     s.cfg.SnapshotPath,
		EventCount:       s.eventCount,
		LastSaveAt:       s.lastSaveAt,
		LastError:        s.lastError,
		SubscriberCount:  len(s.subs),
		Summary:          s.summary,
	}
	key := timelog.DateKey(now)
	st.Summary.DateKey = key
	st.Summary.TodayMs = s.published.Total(key)
	st.Summary.TodayMinutes = timelog.Minutes(st.Summary.TodayMs)
	if st.Summary.Running {
		st.SessionMs = now.Sub(st.Summary.SessionStart).Milliseconds()
	}
	return st
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ev, err := DecodeEvent(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	select {
	case s.events <- ev:
		w.WriteHeader(http.StatusAccepted)
	case <-r.Context().Done():
	}
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.currentStatus())
}

// handleLog serves a read-only snapshot of the whole log, or one day of
// it with ?date=YYYY-MM-DD.
func (s *Service) handleLog(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	snap := s.published
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	if date := r.URL.Query().Get("date"); date != "" {
		day := snap.Day(date)
		if day == nil {
			day = timelog.DayLog{}
		}
		_ = json.NewEncoder(w).Encode(day)
		return
	}
	_ = json.NewEncoder(w).Encode(snap)
}

func (s *Service) handleUpdates(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	updates := make([]Update, len(s.updates))
	copy(updates, s.updates)
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(updates)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Update, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current state immediately.
	current := Update{
		Type:      "snapshot",
		Timestamp: s.cfg.Clock.Now(),
		Summary:   s.currentStatus().Summary,
	}
	writeSSE(w, current)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case up := <-ch:
			writeSSE(w, up)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, up Update) {
	data, err := json.Marshal(up)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", up.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Update) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
