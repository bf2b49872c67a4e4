// Package config provides YAML-based game configuration loading, difficulty
// presets and persisted player settings for the tower.
package config

// TowerConfig contains all tunables of the climbing simulation.
type TowerConfig struct {
	Physics    TowerPhysics     `yaml:"physics"`
	Player     TowerPlayer      `yaml:"player"`
	Obstacles  TowerObstacles   `yaml:"obstacles"`
	Collision  TowerCollision   `yaml:"collision"`
	Camera     TowerCamera      `yaml:"camera"`
	Clock      TowerClock       `yaml:"clock"`
	Stage      TowerStage       `yaml:"stage"`
	Animation  TowerAnimation   `yaml:"animation"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// TowerPhysics defines world-wide physics parameters.
// Speeds are world units per second, accelerations units per second squared.
type TowerPhysics struct {
	Gravity        float64 `yaml:"gravity"`
	MaxFallSpeed   float64 `yaml:"max_fall_speed"`
	GroundFriction float64 `yaml:"ground_friction"` // Used when a surface has no friction of its own
	AirFriction    float64 `yaml:"air_friction"`
	StopSpeed      float64 `yaml:"stop_speed"` // |vx| below this snaps to 0
}

// TowerPlayer defines the player body and controller tuning.
type TowerPlayer struct {
	Width             float64 `yaml:"width"`
	Height            float64 `yaml:"height"`
	Speed             float64 `yaml:"speed"`
	AirSpeed          float64 `yaml:"air_speed"`
	AccelScale        float64 `yaml:"accel_scale"`
	AirSpeedCap       float64 `yaml:"air_speed_cap"`       // Multiple of Speed
	ChargeSpeedFactor float64 `yaml:"charge_speed_factor"` // Multiple of Speed while charging
	ChargeDamping     float64 `yaml:"charge_damping"`
	MaxChargeTime     float64 `yaml:"max_charge_time"`
	MinJumpPower      float64 `yaml:"min_jump_power"`
	MaxJumpPower      float64 `yaml:"max_jump_power"`
	HitDuration       float64 `yaml:"hit_duration"`
}

// TowerObstacles groups per-variant obstacle defaults.
type TowerObstacles struct {
	Default Size          `yaml:"default"`
	Hazard  HazardConfig  `yaml:"hazard"`
	Emitter EmitterConfig `yaml:"emitter"`
	Bounce  BounceConfig  `yaml:"bounce"`
	Carrier CarrierConfig `yaml:"carrier"`
	Homing  HomingConfig  `yaml:"homing"`
	Ice     IceConfig     `yaml:"ice"`
	Switch  Size          `yaml:"switch"`
	Door    Size          `yaml:"door"`
	Goal    Size          `yaml:"goal"`
}

// Size is a width/height pair used for defaults.
type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// HazardConfig tunes the knockback of hazard surfaces.
type HazardConfig struct {
	KnockbackAngle float64 `yaml:"knockback_angle"` // Degrees, negative is upward
	KnockbackForce float64 `yaml:"knockback_force"`
}

// EmitterConfig tunes periodic linear emitters and their projectiles.
type EmitterConfig struct {
	Size           `yaml:",inline"`
	FireInterval   float64 `yaml:"fire_interval"` // Seconds
	BulletSpeed    float64 `yaml:"bullet_speed"`
	BulletSize     float64 `yaml:"bullet_size"`
	KnockbackRatio float64 `yaml:"knockback_ratio"` // Share of bullet velocity given to the player
}

// BounceConfig tunes bounce pads.
type BounceConfig struct {
	Force     float64 `yaml:"force"`
	Damping   float64 `yaml:"damping"` // Orthogonal velocity multiplier for vertical pads
	Lift      float64 `yaml:"lift"`    // Upward share of force for horizontal pads
	Length    float64 `yaml:"length"`
	Thickness float64 `yaml:"thickness"`
}

// CarrierConfig tunes moving platforms.
type CarrierConfig struct {
	Speed    float64 `yaml:"speed"`
	Distance float64 `yaml:"distance"`
}

// HomingConfig tunes homing emitters and missiles.
type HomingConfig struct {
	Size            `yaml:",inline"`
	FireInterval    float64 `yaml:"fire_interval"`
	Speed           float64 `yaml:"speed"`
	TurnRate        float64 `yaml:"turn_rate"` // Degrees per second
	ExplosionRadius float64 `yaml:"explosion_radius"`
	Impulse         float64 `yaml:"impulse"`
	Lifetime        float64 `yaml:"lifetime"` // Seconds before a missile fizzles
	MissileWidth    float64 `yaml:"missile_width"`
	MissileHeight   float64 `yaml:"missile_height"`
}

// IceConfig tunes ice-flavored surfaces.
type IceConfig struct {
	Friction float64 `yaml:"friction"`
}

// TowerCollision holds resolver tolerances.
type TowerCollision struct {
	LandingEpsilon float64 `yaml:"landing_epsilon"`
	// Untagged platforms thinner than WallMaxWidth and taller than
	// WallMinHeight resolve as walls.
	WallMaxWidth  float64 `yaml:"wall_max_width"`
	WallMinHeight float64 `yaml:"wall_min_height"`
}

// TowerCamera defines the follow camera and the simulated view window.
type TowerCamera struct {
	FollowSpeed float64 `yaml:"follow_speed"`
	OffsetY     float64 `yaml:"offset_y"`
	ViewWidth   float64 `yaml:"view_width"`
	ViewHeight  float64 `yaml:"view_height"`
	CullMargin  float64 `yaml:"cull_margin"` // Projectiles beyond view+margin deactivate
}

// TowerClock bounds the per-tick delta.
type TowerClock struct {
	MaxDelta  float64 `yaml:"max_delta"`
	TimeScale float64 `yaml:"time_scale"`
}

// TowerStage holds stage composition defaults.
type TowerStage struct {
	SegmentHeight float64 `yaml:"segment_height"`
	SpawnX        float64 `yaml:"spawn_x"`
	SpawnY        float64 `yaml:"spawn_y"`
	FallLimit     float64 `yaml:"fall_limit"` // Distance below the lowest segment that triggers a respawn
}

// AnimationClip is an inclusive frame range and seconds per frame.
type AnimationClip struct {
	Start int     `yaml:"start"`
	End   int     `yaml:"end"`
	Speed float64 `yaml:"speed"`
}

// TowerAnimation maps player states to frame clips.
type TowerAnimation struct {
	Idle           AnimationClip `yaml:"idle"`
	Run            AnimationClip `yaml:"run"`
	Rise           AnimationClip `yaml:"rise"`
	Fall           AnimationClip `yaml:"fall"`
	Hit            AnimationClip `yaml:"hit"`
	SpeedReference float64       `yaml:"speed_reference"` // |vx| at which frames cycle twice as fast
}

// DifficultyConfig scales obstacle pressure and player forgiveness.
type DifficultyConfig struct {
	Preset        DifficultyPreset `yaml:"preset"`
	IntervalScale float64          `yaml:"interval_scale"` // Multiplies emitter fire intervals
	HitScale      float64          `yaml:"hit_scale"`      // Multiplies hit stun duration
	TurnScale     float64          `yaml:"turn_scale"`     // Multiplies missile turn rate
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)
