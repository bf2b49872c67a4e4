package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var fromYAML TowerConfig
	if err := yaml.Unmarshal(defaultTowerYAML, &fromYAML); err != nil {
		t.Fatalf("embedded tower.yaml does not parse: %v", err)
	}
	if fromYAML != DefaultTowerConfig() {
		t.Errorf("embedded tower.yaml differs from DefaultTowerConfig()\nyaml: %+v\ngo:   %+v", fromYAML, DefaultTowerConfig())
	}
}

func TestParseTowerPartialFile(t *testing.T) {
	data := []byte(`
physics:
  gravity: 1800
player:
  max_jump_power: 1600
`)
	cfg, err := ParseTower(data)
	if err != nil {
		t.Fatalf("ParseTower() failed: %v", err)
	}

	tests := []struct {
		name     string
		got      float64
		expected float64
	}{
		{"overridden gravity", cfg.Physics.Gravity, 1800},
		{"overridden max jump", cfg.Player.MaxJumpPower, 1600},
		{"default min jump", cfg.Player.MinJumpPower, 500},
		{"default max fall", cfg.Physics.MaxFallSpeed, 1500},
		{"default ice friction", cfg.Obstacles.Ice.Friction, 0.99},
	}
	for _, tc := range tests {
		if tc.got != tc.expected {
			t.Errorf("%s = %v, expected %v", tc.name, tc.got, tc.expected)
		}
	}
}

func TestParseTowerRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad yaml", "physics: [1, 2"},
		{"zero charge time", "player:\n  max_charge_time: 0\n"},
		{"inverted jump range", "player:\n  min_jump_power: 900\n  max_jump_power: 100\n"},
		{"unknown preset", "difficulty:\n  preset: brutal\n"},
		{"zero segment height", "stage:\n  segment_height: 0\n"},
	}
	for _, tc := range tests {
		if _, err := ParseTower([]byte(tc.data)); err == nil {
			t.Errorf("%s: ParseTower() expected error", tc.name)
		}
	}
}

func TestLoadTowerCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tower.yaml")
	if err := os.WriteFile(path, []byte("camera:\n  follow_speed: 8\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadTower(path)
	if err != nil {
		t.Fatalf("LoadTower() failed: %v", err)
	}
	if cfg.Camera.FollowSpeed != 8 {
		t.Errorf("FollowSpeed = %v, expected 8", cfg.Camera.FollowSpeed)
	}
	if cfg.Camera.OffsetY != -200 {
		t.Errorf("OffsetY = %v, expected default -200", cfg.Camera.OffsetY)
	}

	if _, err := LoadTower(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadTower() with a missing custom path should fail")
	}
}

func TestDifficultyPresets(t *testing.T) {
	tests := []struct {
		in       string
		expected DifficultyPreset
		wantErr  bool
	}{
		{"", "", false},
		{"easy", DifficultyEasy, false},
		{" HARD ", DifficultyHard, false},
		{"normal", DifficultyNormal, false},
		{"nightmare", "", true},
	}
	for _, tc := range tests {
		got, err := ParseDifficultyPreset(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseDifficultyPreset(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.expected {
			t.Errorf("ParseDifficultyPreset(%q) = %q, expected %q", tc.in, got, tc.expected)
		}
	}
}

func TestEffectiveAppliesScales(t *testing.T) {
	cfg := DefaultTowerConfig()
	ApplyTowerPreset(&cfg, DifficultyHard)
	eff := cfg.Effective()

	if eff.Obstacles.Emitter.FireInterval != 1.5 {
		t.Errorf("emitter interval = %v, expected 1.5", eff.Obstacles.Emitter.FireInterval)
	}
	if eff.Obstacles.Homing.TurnRate != 180*1.4 {
		t.Errorf("turn rate = %v, expected %v", eff.Obstacles.Homing.TurnRate, 180*1.4)
	}
	if eff.Player.HitDuration != 1.3 {
		t.Errorf("hit duration = %v, expected 1.3", eff.Player.HitDuration)
	}

	// Folding twice must not compound.
	again := eff.Effective()
	if again.Obstacles.Emitter.FireInterval != eff.Obstacles.Emitter.FireInterval {
		t.Error("Effective() is not idempotent")
	}

	unchanged := DefaultTowerConfig()
	ApplyTowerPreset(&unchanged, "")
	if unchanged != DefaultTowerConfig() {
		t.Error("ApplyTowerPreset with empty preset should not modify config")
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.toml")

	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings() on missing file failed: %v", err)
	}
	if s != DefaultSettings() {
		t.Errorf("LoadSettings() = %+v, expected defaults", s)
	}

	s.BGMVolume = 150
	s.SEVolume = 20
	s.Language = "ja"
	s.Debug = true
	s.Difficulty = "bogus"
	if err := SaveSettings(path, s); err != nil {
		t.Fatalf("SaveSettings() failed: %v", err)
	}

	got, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings() failed: %v", err)
	}
	expected := Settings{BGMVolume: 100, SEVolume: 20, Language: "ja", Debug: true, Difficulty: "normal"}
	if got != expected {
		t.Errorf("LoadSettings() = %+v, expected %+v", got, expected)
	}
}

func TestLoadSettingsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	if err := os.WriteFile(path, []byte("bgm_volume = \"loud\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadSettings(path)
	if err == nil {
		t.Error("LoadSettings() expected a parse error")
	}
	if s != DefaultSettings() {
		t.Errorf("LoadSettings() on error = %+v, expected defaults", s)
	}
}
