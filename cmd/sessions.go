package cmd

import (
	"fmt"

	"github.com/theirongolddev/notetime/internal/cli"
	"github.com/theirongolddev/notetime/internal/config"
	"github.com/theirongolddev/notetime/internal/store"
	"github.com/theirongolddev/notetime/internal/timelog"
	"github.com/theirongolddev/notetime/internal/tracker"

	"github.com/spf13/cobra"
)

var (
	sessionsLimit int
	sessionsDate  string
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Recent focus sessions from the ledger",
	RunE:  runSessions,
}

func init() {
	sessionsCmd.Flags().IntVarP(&sessionsLimit, "limit", "l", 20, "Number of sessions to show")
	sessionsCmd.Flags().StringVar(&sessionsDate, "date", "", "Only sessions from one day (YYYY-MM-DD)")
	rootCmd.AddCommand(sessionsCmd)
}

func runSessions(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()

	ledger, err := store.OpenLedger(config.LedgerPath(cfg))
	if err != nil {
		return fmt.Errorf("opening session ledger: %w", err)
	}
	defer ledger.Close()

	var sessions []tracker.Session
	if sessionsDate != "" {
		if _, err := timelog.ParseDateKey(sessionsDate); err != nil {
			return fmt.Errorf("invalid --date %q (want YYYY-MM-DD)", sessionsDate)
		}
		sessions, err = ledger.ListByDate(sessionsDate)
	} else {
		sessions, err = ledger.ListRecent(sessionsLimit)
	}
	if err != nil {
		return fmt.Errorf("reading session ledger: %w", err)
	}

	if len(sessions) == 0 {
		if sessionsDate != "" {
			fmt.Printf("\n  No sessions recorded on %s.\n\n", sessionsDate)
		} else {
			fmt.Println("\n  No sessions recorded yet.")
			fmt.Println("  Start the watcher with: notetime watch --detach")
			fmt.Println()
		}
		return nil
	}

	fmt.Println()
	if sessionsDate != "" {
		fmt.Println(cli.RenderTitle(fmt.Sprintf("SESSIONS  %s", sessionsDate)))
	} else {
		fmt.Println(cli.RenderTitle(fmt.Sprintf("SESSIONS  Most recent %d", len(sessions))))
	}
	fmt.Println()

	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		startStr := ""
		if !s.Start.IsZero() {
			startStr = s.Start.Local().Format("Jan 02 15:04")
		}
		endStr := ""
		if !s.End.IsZero() {
			endStr = s.End.Local().Format("15:04")
		}

		rows = append(rows, []string{
			startStr,
			endStr,
			truncate(s.Note, 32),
			cli.FormatDuration(s.Ms),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Start", "End", "Note", "Focused"},
		Rows:    rows,
	}))

	return nil
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + "…"
}
