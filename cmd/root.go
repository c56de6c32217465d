package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/theirongolddev/notetime/internal/config"
	"github.com/theirongolddev/notetime/internal/store"
	"github.com/theirongolddev/notetime/internal/timelog"
	"github.com/theirongolddev/notetime/internal/watch"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	flagDataDir string
	flagAddr    string
)

var rootCmd = &cobra.Command{
	Use:   "notetime",
	Short: "Note Focus Time Tracker",
	Long:  "Track how long each note holds editor focus: per-day totals, sessions, and a live dashboard.",
	RunE:  runRoot,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Data directory (default: XDG data dir)")
	rootCmd.PersistentFlags().StringVar(&flagAddr, "addr", "", "Watch daemon address (default: from config)")
}

// runRoot opens the dashboard on a terminal and falls back to the today
// table when output is piped.
func runRoot(cmd *cobra.Command, args []string) error {
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return runTUI(cmd, args)
	}
	return runToday(cmd, args)
}

// loadConfig is the shared settings path used by all commands. A broken
// config file is reported but never fatal.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "  Config unreadable (%v), using defaults\n", err)
	}
	if flagDataDir != "" {
		cfg.General.DataDir = flagDataDir
	}
	return cfg
}

// watchAddr resolves the daemon address: the --addr flag beats the
// NOTETIME_ADDR env var, which beats the config file.
func watchAddr(cfg config.Config) string {
	if flagAddr != "" {
		return flagAddr
	}
	return config.ListenAddr(cfg)
}

// loadLog is the shared data loading path used by the table commands.
// Prefers the live daemon so in-progress folds are visible, falling back
// to the snapshot file when the watcher is down.
func loadLog(cfg config.Config) (timelog.Log, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	client := watch.NewClient(watchAddr(cfg))
	if client.Healthy(ctx) {
		if lg, err := client.Log(ctx); err == nil {
			return lg, true
		}
	}

	lg, err := store.NewSnapshot(config.SnapshotPath(cfg)).Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "  Snapshot unreadable (%v), starting empty\n", err)
		return timelog.New(), false
	}
	return lg, false
}
