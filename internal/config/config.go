// Package config provides YAML-based configuration loading, the difficulty
// curve and config hot reloading for the runner.
package config

// RunnerConfig contains all tuning for Moon Runner. World values are in
// world units (a 540-wide playfield); the renderer scales them
// onto the terminal.
type RunnerConfig struct {
	World      WorldConfig      `yaml:"world"`
	Player     PlayerConfig     `yaml:"player"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Encounter  EncounterConfig  `yaml:"encounter"`
	Obstacles  ObstacleConfig   `yaml:"obstacles"`
	Render     RenderConfig     `yaml:"render"`
}

// WorldConfig describes the playfield.
type WorldConfig struct {
	ViewportWidth float64 `yaml:"viewport_width"`
	GroundY       float64 `yaml:"ground_y"`     // Ground line, y grows downward
	SpawnMargin   float64 `yaml:"spawn_margin"` // Obstacles appear at viewport_width + spawn_margin
}

// PlayerConfig defines the player footprint.
type PlayerConfig struct {
	X      float64 `yaml:"x"` // Horizontal center, fixed during a run
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PhysicsConfig defines kinematics for the player body.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`       // Units per second squared
	JumpVelocity float64 `yaml:"jump_velocity"` // Negative = up
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
}

// DifficultyConfig defines the speed and spawn interval ramps.
type DifficultyConfig struct {
	BaseSpeed          float64 `yaml:"base_speed"`           // Units per second at t=0
	MaxSpeed           float64 `yaml:"max_speed"`            // Speed saturation
	SpeedRamp          float64 `yaml:"speed_ramp"`           // Speed gained per second
	SpawnIntervalStart float64 `yaml:"spawn_interval_start"` // Milliseconds at t=0
	SpawnIntervalMin   float64 `yaml:"spawn_interval_min"`   // Milliseconds floor
	SpawnIntervalRamp  float64 `yaml:"spawn_interval_ramp"`  // Milliseconds lost per second
}

// SpawnConfig defines the encounter throttling and fairness tunables.
type SpawnConfig struct {
	SegmentWidth        float64 `yaml:"segment_width"`         // Scroll distance between spawn decisions
	FairnessWindow      float64 `yaml:"fairness_window"`       // Reaction window ahead of the player
	AirCooldownSegments int     `yaml:"air_cooldown_segments"` // Encounters between airborne hazards
	MaxAttempts         int     `yaml:"max_attempts"`          // Rejection sampling budget
	AirSpeedFactor      float64 `yaml:"air_speed_factor"`      // Airborne obstacles move slower
}

// ChanceCurve is a probability that ramps linearly with elapsed seconds.
type ChanceCurve struct {
	Base float64 `yaml:"base"`
	Ramp float64 `yaml:"ramp"` // Added per second
	Max  float64 `yaml:"max"`
}

// GroundMix holds relative weights of ground hazard kinds.
type GroundMix struct {
	RockSmall float64 `yaml:"rock_small"`
	RockBig   float64 `yaml:"rock_big"`
	Crater    float64 `yaml:"crater"`
}

// AirMix holds relative weights of airborne lanes.
type AirMix struct {
	High float64 `yaml:"high"`
	Mid  float64 `yaml:"mid"`
	Low  float64 `yaml:"low"`
}

// EncounterConfig defines the random draws of the encounter generator.
type EncounterConfig struct {
	GroundChance ChanceCurve `yaml:"ground_chance"`
	AirChance    ChanceCurve `yaml:"air_chance"`
	GroundMix    GroundMix   `yaml:"ground_mix"`
	AirMix       AirMix      `yaml:"air_mix"`
}

// Size is a width/height pair in world units.
type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Lanes maps airborne lanes to fixed center y-coordinates.
type Lanes struct {
	High float64 `yaml:"high"`
	Mid  float64 `yaml:"mid"`
	Low  float64 `yaml:"low"`
}

// ObstacleConfig defines obstacle footprints and meteor altitudes.
type ObstacleConfig struct {
	RockSmall Size  `yaml:"rock_small"`
	RockBig   Size  `yaml:"rock_big"`
	Crater    Size  `yaml:"crater"`
	Meteor    Size  `yaml:"meteor"`
	Lanes     Lanes `yaml:"lanes"`
}

// RenderConfig controls how the world maps onto terminal rows.
type RenderConfig struct {
	WorldTop     float64 `yaml:"world_top"`     // World y shown on the first playfield row
	GroundOffset int     `yaml:"ground_offset"` // Rows kept below the ground line
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown values return "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}
