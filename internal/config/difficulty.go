package config

import (
	"fmt"
	"strings"
)

// ParseDifficultyPreset maps a CLI or settings value to a preset.
// An empty string means "keep the config's own preset".
func ParseDifficultyPreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return "", nil
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyHard:
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ScalesForPreset returns the interval, hit and turn multipliers of a preset.
func ScalesForPreset(preset DifficultyPreset) (interval, hit, turn float64) {
	switch preset {
	case DifficultyEasy:
		return 1.5, 0.6, 0.75
	case DifficultyHard:
		return 0.75, 1.3, 1.4
	default:
		return 1.0, 1.0, 1.0
	}
}

// ApplyTowerPreset rewrites the difficulty scaling of cfg for a preset.
// An empty preset leaves cfg untouched.
func ApplyTowerPreset(cfg *TowerConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	cfg.Difficulty.Preset = preset
	cfg.Difficulty.IntervalScale, cfg.Difficulty.HitScale, cfg.Difficulty.TurnScale = ScalesForPreset(preset)
}

// Effective returns a copy of cfg with the difficulty scaling folded into the
// obstacle and player parameters the simulation reads.
func (cfg TowerConfig) Effective() TowerConfig {
	d := cfg.Difficulty
	out := cfg
	out.Obstacles.Emitter.FireInterval = scaled(cfg.Obstacles.Emitter.FireInterval, d.IntervalScale)
	out.Obstacles.Homing.FireInterval = scaled(cfg.Obstacles.Homing.FireInterval, d.IntervalScale)
	out.Obstacles.Homing.TurnRate = scaled(cfg.Obstacles.Homing.TurnRate, d.TurnScale)
	out.Player.HitDuration = scaled(cfg.Player.HitDuration, d.HitScale)
	out.Difficulty.IntervalScale, out.Difficulty.HitScale, out.Difficulty.TurnScale = 1, 1, 1
	return out
}

// scaled multiplies v by scale; a zero or negative scale means "unset".
func scaled(v, scale float64) float64 {
	if scale <= 0 {
		return v
	}
	return v * scale
}
