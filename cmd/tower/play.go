package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bear-tower/internal/config"
	"github.com/vovakirdan/bear-tower/internal/platform/tui"
	"github.com/vovakirdan/bear-tower/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagStagesDir  string
	flagDumpConfig bool
)

var playCmd = &cobra.Command{
	Use:   "play [stage]",
	Short: "Climb a stage",
	Long: `Start climbing the specified stage (default: tower).

Controls:
  ←/→ or A/D        - Walk
  Space/Up (hold)   - Charge, release to jump
  P/Esc             - Pause
  R                 - Restart
  F3                - Debug overlay
  B                 - Back (while paused or after clearing)
  Q/Ctrl+C          - Quit

Difficulty options:
  easy    - Slower emitters, shorter hit stun, lazier missiles
  normal  - As configured
  hard    - Faster emitters, longer hit stun, sharper missiles

Examples:
  tower play
  tower play debug
  tower play --difficulty hard
  tower play --config ./my-tower.yaml --stages ./my-stages
  tower play --print-config > my-tower.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tower config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().StringVar(&flagStagesDir, "stages", "", "Directory with stages.yaml and segment files")
	playCmd.Flags().BoolVar(&flagDumpConfig, "print-config", false, "Print the default tower config YAML and exit")
}

func runPlay(cmd *cobra.Command, args []string) error {
	if flagDumpConfig {
		_, err := cmd.OutOrStdout().Write(config.DefaultYAML())
		return err
	}

	stageID := "tower"
	if len(args) > 0 {
		stageID = args[0]
	}
	if !registry.Exists(stageID) {
		return fmt.Errorf("unknown stage %q, run 'tower list' to see available stages", stageID)
	}

	logger, closeLog, err := openLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	settings, _ := loadSettings(logger)
	if flagDifficulty != "" {
		preset, err := config.ParseDifficultyPreset(flagDifficulty)
		if err != nil {
			return err
		}
		// Only for this run; saved settings stay as they are.
		settings.Difficulty = string(preset)
	}

	env, err := loadEnv(flagConfig, flagStagesDir, logger)
	if err != nil {
		return err
	}
	if a := startAudio(logger, settings); a != nil {
		defer a.Close()
		env.Sound = a
	}

	game, err := registry.Create(stageID, tui.GameEnv(env, settings))
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	logger.Info("play", "stage", stageID, "difficulty", settings.Difficulty)
	return tui.Run(game, store, terminalConfig(settings), logger)
}
