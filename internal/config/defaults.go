package config

import (
	_ "embed"
)

//go:embed defaults/tower.yaml
var defaultTowerYAML []byte

// DefaultTowerConfig returns the hardcoded tower configuration.
// It mirrors defaults/tower.yaml and backs every field a partial file omits.
func DefaultTowerConfig() TowerConfig {
	return TowerConfig{
		Physics: TowerPhysics{
			Gravity:        2500,
			MaxFallSpeed:   1500,
			GroundFriction: 0.7,
			AirFriction:    0.99,
			StopSpeed:      0.1,
		},
		Player: TowerPlayer{
			Width:             48,
			Height:            73,
			Speed:             300,
			AirSpeed:          40,
			AccelScale:        30,
			AirSpeedCap:       1.6,
			ChargeSpeedFactor: 0.1,
			ChargeDamping:     0.9,
			MaxChargeTime:     1.5,
			MinJumpPower:      500,
			MaxJumpPower:      1400,
			HitDuration:       1.0,
		},
		Obstacles: TowerObstacles{
			Default: Size{Width: 64, Height: 64},
			Hazard: HazardConfig{
				KnockbackAngle: -60,
				KnockbackForce: 800,
			},
			Emitter: EmitterConfig{
				Size:           Size{Width: 64, Height: 64},
				FireInterval:   2.0,
				BulletSpeed:    600,
				BulletSize:     16,
				KnockbackRatio: 0.5,
			},
			Bounce: BounceConfig{
				Force:     800,
				Damping:   0.5,
				Lift:      0.5,
				Length:    80,
				Thickness: 10,
			},
			Carrier: CarrierConfig{
				Speed:    100,
				Distance: 200,
			},
			Homing: HomingConfig{
				Size:            Size{Width: 64, Height: 64},
				FireInterval:    3.0,
				Speed:           400,
				TurnRate:        180,
				ExplosionRadius: 80,
				Impulse:         1000,
				Lifetime:        10,
				MissileWidth:    24,
				MissileHeight:   12,
			},
			Ice:    IceConfig{Friction: 0.99},
			Switch: Size{Width: 80, Height: 30},
			Door:   Size{Width: 40, Height: 200},
			Goal:   Size{Width: 96, Height: 96},
		},
		Collision: TowerCollision{
			LandingEpsilon: 5,
			WallMaxWidth:   20,
			WallMinHeight:  1000,
		},
		Camera: TowerCamera{
			FollowSpeed: 5.0,
			OffsetY:     -200,
			ViewWidth:   1920,
			ViewHeight:  1080,
			CullMargin:  200,
		},
		Clock: TowerClock{
			MaxDelta:  0.1,
			TimeScale: 1.0,
		},
		Stage: TowerStage{
			SegmentHeight: 3000,
			SpawnX:        100,
			SpawnY:        500,
			FallLimit:     2000,
		},
		Animation: TowerAnimation{
			Idle:           AnimationClip{Start: 0, End: 5, Speed: 0.1},
			Rise:           AnimationClip{Start: 6, End: 8, Speed: 0.05},
			Fall:           AnimationClip{Start: 9, End: 11, Speed: 0.05},
			Run:            AnimationClip{Start: 12, End: 24, Speed: 0.2},
			Hit:            AnimationClip{Start: 25, End: 29, Speed: 0.15},
			SpeedReference: 500,
		},
		Difficulty: DifficultyConfig{
			Preset:        DifficultyNormal,
			IntervalScale: 1.0,
			HitScale:      1.0,
			TurnScale:     1.0,
		},
	}
}

// DefaultYAML returns the embedded default tower.yaml, a starting point for
// custom config files.
func DefaultYAML() []byte {
	return defaultTowerYAML
}
