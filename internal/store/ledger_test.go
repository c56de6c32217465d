package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/notetime/internal/timelog"
	"github.com/theirongolddev/notetime/internal/tracker"
)

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := OpenLedger(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func testSession(note string, start time.Time, d time.Duration) tracker.Session {
	return tracker.Session{
		ID:    uuid.NewString(),
		Note:  note,
		Start: start,
		End:   start.Add(d),
		Ms:    d.Milliseconds(),
		Date:  timelog.DateKey(start),
	}
}

func TestLedgerAppendAndListRecent(t *testing.T) {
	l := newTestLedger(t)
	base := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)

	oldest := testSession("a.md", base, time.Minute)
	middle := testSession("b.md", base.Add(time.Hour), 2*time.Minute)
	newest := testSession("c.md", base.Add(2*time.Hour), 30*time.Second)
	for _, s := range []tracker.Session{oldest, middle, newest} {
		require.NoError(t, l.Append(s))
	}

	list, err := l.ListRecent(2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newest.ID, list[0].ID)
	assert.Equal(t, middle.ID, list[1].ID)
}

func TestLedgerRoundTrip(t *testing.T) {
	l := newTestLedger(t)
	start := time.Date(2026, 8, 25, 14, 30, 0, 0, time.UTC)

	s := testSession("notes/alpha.md", start, 90*time.Second)
	require.NoError(t, l.Append(s))

	list, err := l.ListRecent(1)
	require.NoError(t, err)
	require.Len(t, list, 1)

	got := list[0]
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, "notes/alpha.md", got.Note)
	assert.Equal(t, s.Date, got.Date)
	assert.Equal(t, int64(90000), got.Ms)
	assert.True(t, got.Start.Equal(s.Start), "start = %v, want %v", got.Start, s.Start)
	assert.True(t, got.End.Equal(s.End), "end = %v, want %v", got.End, s.End)
}

func TestLedgerListByDate(t *testing.T) {
	l := newTestLedger(t)

	monday := time.Date(2026, 8, 24, 10, 0, 0, 0, time.Local)
	tuesday := time.Date(2026, 8, 25, 10, 0, 0, 0, time.Local)
	require.NoError(t, l.Append(testSession("a.md", monday, time.Minute)))
	require.NoError(t, l.Append(testSession("b.md", tuesday, time.Minute)))
	require.NoError(t, l.Append(testSession("c.md", tuesday.Add(time.Hour), time.Minute)))

	list, err := l.ListByDate(timelog.DateKey(tuesday))
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "c.md", list[0].Note)
	assert.Equal(t, "b.md", list[1].Note)
}

func TestLedgerCount(t *testing.T) {
	l := newTestLedger(t)

	n, err := l.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, l.Append(testSession("a.md", time.Now(), time.Minute)))
	n, err = l.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestLedgerReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.db")

	l, err := OpenLedger(path)
	require.NoError(t, err)
	require.NoError(t, l.Append(testSession("a.md", time.Now(), time.Minute)))
	require.NoError(t, l.Close())

	reopened, err := OpenLedger(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	n, err := reopened.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n, "sessions must survive reopen")
}
