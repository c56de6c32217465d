// Package config loads and saves notetime settings from a TOML file in
// the XDG config directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all notetime configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Watch      WatchConfig      `toml:"watch"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DataDir      string `toml:"data_dir,omitempty"`
	DailyGoalMin int    `toml:"daily_goal_min,omitempty"` // 0 disables the goal bar
}

// WatchConfig holds settings for the watch daemon.
type WatchConfig struct {
	ListenAddr       string `toml:"listen_addr"`
	FlushIntervalSec int    `toml:"flush_interval_sec"`
}

// AppearanceConfig holds theme and TUI settings.
type AppearanceConfig struct {
	Theme              string `toml:"theme"`
	RefreshIntervalSec int    `toml:"refresh_interval_sec"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Watch: WatchConfig{
			ListenAddr:       "127.0.0.1:48632",
			FlushIntervalSec: 60,
		},
		Appearance: AppearanceConfig{
			Theme:              "flexoki-dark",
			RefreshIntervalSec: 2,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "notetime")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "notetime")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// DataDir returns the directory holding the time log and session ledger:
// the configured override, or the XDG data directory.
func DataDir(cfg Config) string {
	if cfg.General.DataDir != "" {
		return cfg.General.DataDir
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "notetime")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "notetime")
}

// SnapshotPath returns the full path to the time log snapshot.
func SnapshotPath(cfg Config) string {
	return filepath.Join(DataDir(cfg), "timelog.json")
}

// LedgerPath returns the full path to the session ledger database.
func LedgerPath(cfg Config) string {
	return filepath.Join(DataDir(cfg), "sessions.db")
}

// ListenAddr returns the watch daemon address from the NOTETIME_ADDR env
// var or config, in that order.
func ListenAddr(cfg Config) string {
	if addr := os.Getenv("NOTETIME_ADDR"); addr != "" {
		return addr
	}
	if cfg.Watch.ListenAddr != "" {
		return cfg.Watch.ListenAddr
	}
	return DefaultConfig().Watch.ListenAddr
}

// FlushInterval returns the checkpoint interval, falling back to the
// default for zero or negative settings.
func FlushInterval(cfg Config) time.Duration {
	if cfg.Watch.FlushIntervalSec <= 0 {
		return time.Duration(DefaultConfig().Watch.FlushIntervalSec) * time.Second
	}
	return time.Duration(cfg.Watch.FlushIntervalSec) * time.Second
}

// RefreshInterval returns the TUI poll cadence, falling back to the
// default for zero or negative settings.
func RefreshInterval(cfg Config) time.Duration {
	if cfg.Appearance.RefreshIntervalSec <= 0 {
		return time.Duration(DefaultConfig().Appearance.RefreshIntervalSec) * time.Second
	}
	return time.Duration(cfg.Appearance.RefreshIntervalSec) * time.Second
}
