package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/bear-tower/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the main menu",
	Long: `Start the main menu with the tower, the records board and settings.

Settings changed in the menu are saved to ~/.bear-tower/settings.toml.
Turning on debug mode lists the debug map in the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Q            - Quit

Examples:
  tower menu
  tower menu --fps 30
  tower menu --db ./runs.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := openLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	settings, settingsPath := loadSettings(logger)
	env, err := loadEnv("", "", logger)
	if err != nil {
		return err
	}

	deps := tui.Deps{
		Settings:     settings,
		SettingsPath: settingsPath,
		Logger:       logger,
	}
	if a := startAudio(logger, settings); a != nil {
		defer a.Close()
		env.Sound = a
		deps.Audio = a
	}
	deps.Env = env

	deps.Store = openStore(logger)
	if deps.Store != nil {
		defer deps.Store.Close()
	}

	return tui.RunSession(deps, terminalConfig(settings))
}
