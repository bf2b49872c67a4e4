package main

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/bear-tower/internal/audio"
	"github.com/vovakirdan/bear-tower/internal/config"
	"github.com/vovakirdan/bear-tower/internal/core"
	"github.com/vovakirdan/bear-tower/internal/registry"
	"github.com/vovakirdan/bear-tower/internal/stage"
	"github.com/vovakirdan/bear-tower/internal/storage"
)

// openLogger opens the log file. The TUI owns the terminal, so local
// commands never log to stderr.
func openLogger() (*log.Logger, func(), error) {
	path := flagLogPath
	if path == "" {
		dir := config.UserDir()
		if dir == "" {
			return log.New(os.Stderr), func() {}, nil
		}
		path = filepath.Join(dir, "tower.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "tower",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, func() { f.Close() }, nil
}

// openStore opens the runs database. Play continues without records when it fails.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		logger.Warn("could not open runs database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

// loadSettings reads saved preferences, falling back to defaults.
func loadSettings(logger *log.Logger) (config.Settings, string) {
	path := config.DefaultSettingsPath()
	s, err := config.LoadSettings(path)
	if err != nil {
		logger.Warn("could not load settings", "path", path, "err", err)
	}
	return s, path
}

// loadEnv builds the game environment from a config file and stage directory.
// Empty paths select the search order and the built-in stages.
func loadEnv(configPath, stagesDir string, logger *log.Logger) (registry.Env, error) {
	cfg, err := config.LoadTower(configPath)
	if err != nil {
		return registry.Env{}, err
	}
	env := registry.Env{Config: cfg, Logger: logger}
	if stagesDir != "" {
		env.Stages = stage.NewLoader(stagesDir)
		env.Stages.Logger = logger
	}
	return env.WithDefaults(), nil
}

// startAudio opens the speaker. Nil means play stays silent.
func startAudio(logger *log.Logger, s config.Settings) *audio.Manager {
	m := audio.NewManager(logger, s.SEVolume, s.BGMVolume)
	if err := m.Initialize(); err != nil {
		logger.Warn("audio unavailable", "err", err)
		return nil
	}
	m.StartMusic()
	return m
}

// terminalConfig returns the runtime config for the local terminal.
func terminalConfig(s config.Settings) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.TickRate = flagFPS
	cfg.Language = s.Language
	cfg.Debug = s.Debug
	cfg.Difficulty = s.Difficulty
	cfg.Player = playerName()
	return cfg
}

func playerName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "player"
}
