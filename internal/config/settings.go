package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Settings are the player preferences persisted between runs.
type Settings struct {
	BGMVolume  int    `toml:"bgm_volume"` // 0-100
	SEVolume   int    `toml:"se_volume"`  // 0-100
	Language   string `toml:"language"`
	Debug      bool   `toml:"debug"`
	Difficulty string `toml:"difficulty"`
}

// DefaultSettings returns the out-of-box preferences.
func DefaultSettings() Settings {
	return Settings{
		BGMVolume:  70,
		SEVolume:   70,
		Language:   "ko",
		Difficulty: string(DifficultyNormal),
	}
}

// DefaultSettingsPath returns ~/.bear-tower/settings.toml, or a relative
// settings.toml if home is unavailable.
func DefaultSettingsPath() string {
	dir := UserDir()
	if dir == "" {
		return "settings.toml"
	}
	return filepath.Join(dir, "settings.toml")
}

// LoadSettings reads settings from path. A missing file yields the defaults.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("settings: read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &s); err != nil {
		return DefaultSettings(), fmt.Errorf("settings: parse %s: %w", path, err)
	}
	return s.Normalize(), nil
}

// SaveSettings writes settings to path, creating the parent directory.
func SaveSettings(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("settings: create dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("settings: create %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(s.Normalize()); err != nil {
		return fmt.Errorf("settings: encode: %w", err)
	}
	return nil
}

// Normalize clamps volumes and replaces unknown values with defaults.
func (s Settings) Normalize() Settings {
	def := DefaultSettings()
	s.BGMVolume = clampVolume(s.BGMVolume)
	s.SEVolume = clampVolume(s.SEVolume)
	if s.Language == "" {
		s.Language = def.Language
	}
	if p, err := ParseDifficultyPreset(s.Difficulty); err != nil || p == "" {
		s.Difficulty = def.Difficulty
	}
	return s
}

func clampVolume(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
