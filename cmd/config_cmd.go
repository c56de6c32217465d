// Package cmd implements the notetime CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/theirongolddev/notetime/internal/config"

	"github.com/spf13/cobra"
)

var flagConfigEdit bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigEdit, "edit", false, "Open the config file in $EDITOR")
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	if flagConfigEdit {
		return editConfig()
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Data directory: %s\n", config.DataDir(cfg))
	if cfg.General.DailyGoalMin > 0 {
		fmt.Printf("    Daily goal:     %dm\n", cfg.General.DailyGoalMin)
	} else {
		fmt.Println("    Daily goal:     not set")
	}
	fmt.Println()

	fmt.Println("  [Watch]")
	fmt.Printf("    Listen address: %s\n", config.ListenAddr(cfg))
	fmt.Printf("    Flush interval: %s\n", config.FlushInterval(cfg))
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme:            %s\n", cfg.Appearance.Theme)
	fmt.Printf("    Refresh interval: %s\n", config.RefreshInterval(cfg))
	fmt.Println()

	fmt.Println("  [Files]")
	fmt.Printf("    Snapshot: %s\n", config.SnapshotPath(cfg))
	fmt.Printf("    Ledger:   %s\n", config.LedgerPath(cfg))
	fmt.Println()

	fmt.Println("  Run `notetime setup` to reconfigure.")
	return nil
}

// editConfig opens the config file in the user's editor, seeding it with
// the current effective settings first so there is something to edit.
func editConfig() error {
	if !config.Exists() {
		cfg, _ := config.Load()
		if err := config.Save(cfg); err != nil {
			return fmt.Errorf("seeding config file: %w", err)
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		return errors.New("$EDITOR is not set")
	}

	edit := exec.Command(editor, config.ConfigPath())
	edit.Stdin = os.Stdin
	edit.Stdout = os.Stdout
	edit.Stderr = os.Stderr
	return edit.Run()
}
