package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/theirongolddev/notetime/internal/config"
	"github.com/theirongolddev/notetime/internal/store"
	"github.com/theirongolddev/notetime/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()

	fmt.Println()
	fmt.Println("  Welcome to notetime!")

	// Stat first: opening the ledger would create it.
	if _, err := os.Stat(config.LedgerPath(cfg)); err == nil {
		if ledger, err := store.OpenLedger(config.LedgerPath(cfg)); err == nil {
			if n, err := ledger.Count(); err == nil && n > 0 {
				fmt.Printf("  %d focus sessions recorded so far.\n", n)
			}
			_ = ledger.Close()
		}
	}
	fmt.Println()

	themeName := cfg.Appearance.Theme
	goal := ""
	if cfg.General.DailyGoalMin > 0 {
		goal = strconv.Itoa(cfg.General.DailyGoalMin)
	}
	dataDir := cfg.General.DataDir
	addr := cfg.Watch.ListenAddr
	flush := strconv.Itoa(cfg.Watch.FlushIntervalSec)

	themeOptions := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOptions = append(themeOptions, huh.NewOption(t.Name, t.Name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOptions...).
				Value(&themeName),
			huh.NewInput().
				Title("Daily focus goal in minutes").
				Placeholder("120 (blank or 0 to disable)").
				Validate(optionalNumber(0)).
				Value(&goal),
			huh.NewInput().
				Title("Data directory").
				Placeholder(config.DataDir(cfg)).
				Value(&dataDir),
			huh.NewInput().
				Title("Watch listen address").
				Placeholder(config.DefaultConfig().Watch.ListenAddr).
				Value(&addr),
			huh.NewInput().
				Title("Snapshot flush interval in seconds").
				Placeholder("60").
				Validate(optionalNumber(1)).
				Value(&flush),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup canceled, nothing saved.")
			return nil
		}
		return err
	}

	cfg.Appearance.Theme = themeName
	cfg.General.DailyGoalMin = 0
	if n, err := strconv.Atoi(strings.TrimSpace(goal)); err == nil && n > 0 {
		cfg.General.DailyGoalMin = n
	}
	cfg.General.DataDir = strings.TrimSpace(dataDir)
	if a := strings.TrimSpace(addr); a != "" {
		cfg.Watch.ListenAddr = a
	}
	if n, err := strconv.Atoi(strings.TrimSpace(flush)); err == nil && n > 0 {
		cfg.Watch.FlushIntervalSec = n
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `notetime setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}

// optionalNumber validates a blank-or-integer field with a lower bound.
func optionalNumber(min int) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < min {
			return fmt.Errorf("enter a whole number >= %d", min)
		}
		return nil
	}
}
