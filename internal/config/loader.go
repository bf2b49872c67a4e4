package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppDir is the per-user directory holding configs, settings, logs and the run database.
const AppDir = ".bear-tower"

// LoadTower loads the tower configuration.
// Search order: customPath -> ~/.bear-tower/configs/tower.yaml -> ./configs/tower.yaml -> embedded default.
// Files are decoded over the hardcoded defaults, so partial files are valid.
func LoadTower(customPath string) (TowerConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultTowerConfig(), fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := ParseTower(data)
		if err != nil {
			return DefaultTowerConfig(), fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("tower.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseTower(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "tower.yaml")); err == nil {
		if cfg, err := ParseTower(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseTower(defaultTowerYAML)
	if err != nil {
		return DefaultTowerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseTower decodes YAML over DefaultTowerConfig.
func ParseTower(data []byte) (TowerConfig, error) {
	cfg := DefaultTowerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultTowerConfig(), err
	}
	if err := cfg.Validate(); err != nil {
		return DefaultTowerConfig(), err
	}
	return cfg, nil
}

// Validate rejects values the simulation cannot run with.
func (cfg TowerConfig) Validate() error {
	switch {
	case cfg.Player.Width <= 0 || cfg.Player.Height <= 0:
		return fmt.Errorf("player size must be positive")
	case cfg.Player.MaxChargeTime <= 0:
		return fmt.Errorf("player.max_charge_time must be positive")
	case cfg.Player.MaxJumpPower < cfg.Player.MinJumpPower:
		return fmt.Errorf("player.max_jump_power below min_jump_power")
	case cfg.Clock.MaxDelta <= 0:
		return fmt.Errorf("clock.max_delta must be positive")
	case cfg.Stage.SegmentHeight <= 0:
		return fmt.Errorf("stage.segment_height must be positive")
	}
	if _, err := ParseDifficultyPreset(string(cfg.Difficulty.Preset)); err != nil {
		return err
	}
	return nil
}

// UserDir returns ~/.bear-tower, or empty if home is unavailable.
func UserDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, AppDir)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := UserDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}
