package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bear-tower/internal/config"
	"github.com/vovakirdan/bear-tower/internal/i18n"
)

var (
	flagBGM       int
	flagSE        int
	flagLanguage  string
	flagSetDiff   string
	flagDebugMode bool
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change saved preferences",
	Long: `Print the saved preferences, or change them with flags.
Preferences live in ~/.bear-tower/settings.toml.

Examples:
  tower settings
  tower settings --bgm 40 --se 80
  tower settings --lang en --difficulty hard
  tower settings --debug`,
	Args: cobra.NoArgs,
	RunE: runSettings,
}

func init() {
	settingsCmd.Flags().IntVar(&flagBGM, "bgm", 0, "Background music volume (0-100)")
	settingsCmd.Flags().IntVar(&flagSE, "se", 0, "Sound effect volume (0-100)")
	settingsCmd.Flags().StringVar(&flagLanguage, "lang", "", "HUD language (en, ko, ja)")
	settingsCmd.Flags().StringVar(&flagSetDiff, "difficulty", "", "Default difficulty: easy, normal, hard")
	settingsCmd.Flags().BoolVar(&flagDebugMode, "debug", false, "Show the debug map and overlay")
}

func runSettings(cmd *cobra.Command, _ []string) error {
	path := config.DefaultSettingsPath()
	s, err := config.LoadSettings(path)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	changed := false
	if flags.Changed("bgm") {
		s.BGMVolume, changed = flagBGM, true
	}
	if flags.Changed("se") {
		s.SEVolume, changed = flagSE, true
	}
	if flags.Changed("lang") {
		if !slices.Contains(i18n.Supported(), flagLanguage) {
			return fmt.Errorf("unsupported language %q (want one of %v)", flagLanguage, i18n.Supported())
		}
		s.Language, changed = flagLanguage, true
	}
	if flags.Changed("difficulty") {
		preset, err := config.ParseDifficultyPreset(flagSetDiff)
		if err != nil {
			return err
		}
		s.Difficulty, changed = string(preset), true
	}
	if flags.Changed("debug") {
		s.Debug, changed = flagDebugMode, true
	}

	if changed {
		if err := config.SaveSettings(path, s); err != nil {
			return err
		}
		s = s.Normalize()
	}

	fmt.Printf("Settings (%s)\n\n", path)
	fmt.Printf("  bgm_volume  %d\n", s.BGMVolume)
	fmt.Printf("  se_volume   %d\n", s.SEVolume)
	fmt.Printf("  language    %s\n", s.Language)
	fmt.Printf("  difficulty  %s\n", s.Difficulty)
	fmt.Printf("  debug       %t\n", s.Debug)
	return nil
}
