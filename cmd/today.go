package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/notetime/internal/cli"
	"github.com/theirongolddev/notetime/internal/timelog"

	"github.com/spf13/cobra"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Today's focus time by note",
	RunE:  runToday,
}

func init() {
	rootCmd.AddCommand(todayCmd)
}

func runToday(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	lg, live := loadLog(cfg)

	todayKey := timelog.DateKey(time.Now())
	day := lg.Day(todayKey)
	total := lg.Total(todayKey)

	if len(day) == 0 {
		fmt.Println("\n  No focus time recorded today.")
		if !live {
			fmt.Println("  Start the watcher with: notetime watch --detach")
		}
		fmt.Println()
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("TODAY  %s", todayKey)))
	fmt.Println()

	notes := day.Notes()
	rows := make([][]string, 0, len(notes)+2)
	for _, n := range notes {
		rows = append(rows, []string{
			truncate(n.Note, 40),
			fmt.Sprintf("%dm", timelog.Minutes(n.Ms)),
			cli.FormatDuration(n.Ms),
			cli.FormatShare(n.Ms, total),
		})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{
		"TOTAL",
		fmt.Sprintf("%dm", timelog.Minutes(total)),
		cli.FormatDuration(total),
		"",
	})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Note", "Minutes", "Time", "Share"},
		Rows:    rows,
	}))

	// Yesterday comparison
	prevTotal := lg.Total(timelog.DateKey(time.Now().AddDate(0, 0, -1)))
	if prevTotal > 0 {
		maxMs := total
		if prevTotal > maxMs {
			maxMs = prevTotal
		}
		fmt.Printf("  Today      %s  %s\n",
			cli.RenderHorizontalBar(float64(total), float64(maxMs), 30),
			cli.FormatDuration(total))
		fmt.Printf("  Yesterday  %s  %s\n\n",
			cli.RenderHorizontalBar(float64(prevTotal), float64(maxMs), 30),
			cli.FormatDuration(prevTotal))
	}

	if !live {
		fmt.Println("  Totals are from the last snapshot; the watcher is not running.")
		fmt.Println()
	}

	return nil
}
