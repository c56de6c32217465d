package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/theirongolddev/notetime/internal/config"
	"github.com/theirongolddev/notetime/internal/store"
	"github.com/theirongolddev/notetime/internal/timelog"
	"github.com/theirongolddev/notetime/internal/watch"

	"github.com/spf13/cobra"
)

// ErrWatchNotRunning reports a status probe that had to fall back to the
// snapshot file. Callers get a non-zero exit so scripts can tell live
// figures from stale ones.
var ErrWatchNotRunning = errors.New("watch daemon is not running (start with: notetime watch --detach)")

var flagStatusJSON bool

var statusCmd = &cobra.Command{
	Use:          "status",
	Short:        "One-line tracking status",
	RunE:         runStatus,
	SilenceUsage: true,
}

func init() {
	statusCmd.Flags().BoolVar(&flagStatusJSON, "json", false, "Machine-readable output")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	client := watch.NewClient(watchAddr(cfg))
	if st, err := client.Status(ctx); err == nil {
		return printLiveStatus(st)
	}

	// Daemon down: report what the snapshot knows, then exit non-zero.
	lg, err := store.NewSnapshot(config.SnapshotPath(cfg)).Load()
	if err != nil {
		return fmt.Errorf("reading snapshot: %w", err)
	}

	todayKey := timelog.DateKey(time.Now())
	total := lg.Total(todayKey)

	if flagStatusJSON {
		out := struct {
			DateKey      string `json:"date_key"`
			TodayMs      int64  `json:"today_ms"`
			TodayMinutes int    `json:"today_minutes"`
			Running      bool   `json:"running"`
			Watch        string `json:"watch"`
		}{todayKey, total, timelog.Minutes(total), false, "offline"}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return err
		}
		return ErrWatchNotRunning
	}

	fmt.Printf("☰ %dm today · watch offline\n", timelog.Minutes(total))
	return ErrWatchNotRunning
}

func printLiveStatus(st watch.Status) error {
	if flagStatusJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	}

	line := fmt.Sprintf("☰ %dm today", st.Summary.TodayMinutes)
	if st.Summary.Running && st.Summary.ActiveNote != "" {
		line += fmt.Sprintf(" · editing %s (%s)", st.Summary.ActiveNote, formatSessionMs(st.SessionMs))
	} else if st.Summary.Running {
		line += fmt.Sprintf(" · focused (%s)", formatSessionMs(st.SessionMs))
	}
	if !st.StartedAt.IsZero() {
		line += fmt.Sprintf(" · watch up %s", formatSessionMs(time.Since(st.StartedAt).Milliseconds()))
	}
	fmt.Println(line)
	return nil
}

// formatSessionMs keeps sub-minute live figures readable where the table
// formatter would round them away.
func formatSessionMs(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	secs := ms / 1000
	if secs < 60 {
		return fmt.Sprintf("%ds", secs)
	}
	if secs < 3600 {
		return fmt.Sprintf("%dm %ds", secs/60, secs%60)
	}
	return fmt.Sprintf("%dh %dm", secs/3600, (secs%3600)/60)
}
