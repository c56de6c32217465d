package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/notetime/internal/config"
	"github.com/theirongolddev/notetime/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// setupValues collects the first-run wizard answers.
type setupValues struct {
	theme string
	goal  string
	addr  string
}

func defaultSetupValues() setupValues {
	return setupValues{
		theme: theme.Active.Name,
		addr:  config.DefaultConfig().Watch.ListenAddr,
	}
}

// newSetupForm builds the first-run wizard shown when no config file
// exists yet.
func newSetupForm(vals *setupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.theme),
			huh.NewInput().
				Title("Daily focus goal (minutes, blank for none)").
				Placeholder("120").
				Value(&vals.goal).
				Validate(validateOptionalMinutes),
			huh.NewInput().
				Title("Watch listen address").
				Placeholder(config.DefaultConfig().Watch.ListenAddr).
				Value(&vals.addr),
		),
	)
}

func validateOptionalMinutes(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return fmt.Errorf("enter a whole number of minutes")
	}
	return nil
}

// saveSetupConfig persists the wizard answers and applies them to the
// running app. Saving is best-effort; the settings still apply for this
// session if the write fails.
func (a *App) saveSetupConfig() {
	cfg := loadConfigOrDefault()

	if a.setupVals.theme != "" {
		cfg.Appearance.Theme = a.setupVals.theme
		theme.SetActive(a.setupVals.theme)
	}

	if goal := strings.TrimSpace(a.setupVals.goal); goal != "" {
		if n, err := strconv.Atoi(goal); err == nil && n > 0 {
			cfg.General.DailyGoalMin = n
			a.goalMin = n
		}
	}

	if addr := strings.TrimSpace(a.setupVals.addr); addr != "" {
		cfg.Watch.ListenAddr = addr
		a.addr = config.ListenAddr(cfg)
	}

	_ = config.Save(cfg)
}
