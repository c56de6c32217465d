package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:48632", cfg.Watch.ListenAddr)
	assert.Equal(t, 60, cfg.Watch.FlushIntervalSec)
	assert.Equal(t, "flexoki-dark", cfg.Appearance.Theme)
	assert.False(t, Exists())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.General.DataDir = "/tmp/notetime-test"
	cfg.Watch.FlushIntervalSec = 15
	cfg.Appearance.Theme = "paper"

	require.NoError(t, Save(cfg))
	assert.True(t, Exists())

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestDataDirResolution(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/xdg/data")

	cfg := DefaultConfig()
	assert.Equal(t, filepath.Join("/xdg/data", "notetime"), DataDir(cfg))

	cfg.General.DataDir = "/custom/dir"
	assert.Equal(t, "/custom/dir", DataDir(cfg))
	assert.Equal(t, filepath.Join("/custom/dir", "timelog.json"), SnapshotPath(cfg))
	assert.Equal(t, filepath.Join("/custom/dir", "sessions.db"), LedgerPath(cfg))
}

func TestListenAddrPrecedence(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Watch.ListenAddr = "127.0.0.1:9999"

	t.Setenv("NOTETIME_ADDR", "")
	assert.Equal(t, "127.0.0.1:9999", ListenAddr(cfg))

	t.Setenv("NOTETIME_ADDR", "127.0.0.1:1234")
	assert.Equal(t, "127.0.0.1:1234", ListenAddr(cfg))

	t.Setenv("NOTETIME_ADDR", "")
	cfg.Watch.ListenAddr = ""
	assert.Equal(t, DefaultConfig().Watch.ListenAddr, ListenAddr(cfg))
}

func TestIntervalFallbacks(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 60*time.Second, FlushInterval(cfg))
	assert.Equal(t, 2*time.Second, RefreshInterval(cfg))

	cfg.Watch.FlushIntervalSec = -5
	cfg.Appearance.RefreshIntervalSec = 0
	assert.Equal(t, 60*time.Second, FlushInterval(cfg))
	assert.Equal(t, 2*time.Second, RefreshInterval(cfg))

	cfg.Watch.FlushIntervalSec = 10
	cfg.Appearance.RefreshIntervalSec = 5
	assert.Equal(t, 10*time.Second, FlushInterval(cfg))
	assert.Equal(t, 5*time.Second, RefreshInterval(cfg))
}
