package store

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/theirongolddev/notetime/internal/timelog"
)

func TestSnapshotLoadAbsent(t *testing.T) {
	s := NewSnapshot(filepath.Join(t.TempDir(), "timelog.json"))

	log, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if log == nil || len(log) != 0 {
		t.Fatalf("log = %v, want empty", log)
	}
}

func TestSnapshotLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timelog.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	log, err := NewSnapshot(path).Load()
	if err != nil {
		t.Fatalf("Load on corrupt file: %v, want nil; tracking restarts instead", err)
	}
	if len(log) != 0 {
		t.Fatalf("log = %v, want empty", log)
	}
}

func TestSnapshotLoadNullDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timelog.json")
	if err := os.WriteFile(path, []byte("null"), 0o644); err != nil {
		t.Fatal(err)
	}

	log, err := NewSnapshot(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if log == nil {
		t.Fatal("log is nil, want usable empty map")
	}
	log.Fold("2026-08-25", "a.md", 1000)
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := NewSnapshot(filepath.Join(t.TempDir(), "timelog.json"))

	log := timelog.New()
	log.Fold("2026-08-24", "notes/alpha.md", 120000)
	log.Fold("2026-08-25", "notes/alpha.md", 60000)
	log.Fold("2026-08-25", "notes/beta.md", 30000)

	if err := s.Save(log); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, log) {
		t.Fatalf("round trip = %v, want %v", got, log)
	}
}

func TestSnapshotSaveOverwrites(t *testing.T) {
	s := NewSnapshot(filepath.Join(t.TempDir(), "timelog.json"))

	first := timelog.New()
	first.Fold("2026-08-24", "old.md", 99999)
	if err := s.Save(first); err != nil {
		t.Fatal(err)
	}

	second := timelog.New()
	second.Fold("2026-08-25", "new.md", 1000)
	if err := s.Save(second); err != nil {
		t.Fatal(err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, second) {
		t.Fatalf("log = %v, want the second snapshot only; saves replace, never merge", got)
	}
}

func TestSnapshotSaveLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	s := NewSnapshot(filepath.Join(dir, "timelog.json"))

	log := timelog.New()
	log.Fold("2026-08-25", "a.md", 1000)
	if err := s.Save(log); err != nil {
		t.Fatal(err)
	}

	leftovers, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	if err != nil {
		t.Fatal(err)
	}
	if len(leftovers) != 0 {
		t.Fatalf("temp files left behind: %v", leftovers)
	}
}

func TestSnapshotSaveCreatesDataDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "timelog.json")
	s := NewSnapshot(path)

	if err := s.Save(timelog.New()); err != nil {
		t.Fatalf("Save into missing dir: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("snapshot file missing: %v", err)
	}
}
