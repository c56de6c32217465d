package cmd

import (
	"fmt"

	"github.com/theirongolddev/notetime/internal/cli"
	"github.com/theirongolddev/notetime/internal/timelog"

	"github.com/spf13/cobra"
)

var flagDailyDays int

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Daily focus totals",
	RunE:  runDaily,
}

func init() {
	dailyCmd.Flags().IntVarP(&flagDailyDays, "days", "n", 14, "Number of recorded days to show")
	rootCmd.AddCommand(dailyCmd)
}

func runDaily(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	lg, live := loadLog(cfg)

	days := lg.Days()
	if len(days) == 0 {
		fmt.Println("\n  No focus time recorded yet.")
		if !live {
			fmt.Println("  Start the watcher with: notetime watch --detach")
		}
		fmt.Println()
		return nil
	}

	if flagDailyDays > 0 && len(days) > flagDailyDays {
		days = days[:flagDailyDays]
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("DAILY FOCUS  Last %d recorded days", len(days))))
	fmt.Println()

	// Days come most recent first; the trend reads oldest to newest.
	series := make([]float64, 0, len(days))
	for i := len(days) - 1; i >= 0; i-- {
		series = append(series, float64(timelog.Minutes(days[i].Ms)))
	}
	fmt.Printf("  Trend  %s\n\n", cli.RenderSparkline(series))

	rows := make([][]string, 0, len(days))
	for _, d := range days {
		weekday := ""
		if t, err := timelog.ParseDateKey(d.Date); err == nil {
			weekday = cli.FormatDayOfWeek(int(t.Weekday()))
		}
		rows = append(rows, []string{
			d.Date,
			weekday,
			cli.FormatNumber(int64(d.Notes)),
			fmt.Sprintf("%dm", timelog.Minutes(d.Ms)),
			cli.FormatDuration(d.Ms),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Day", "Notes", "Minutes", "Time"},
		Rows:    rows,
	}))

	return nil
}
