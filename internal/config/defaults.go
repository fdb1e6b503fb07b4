package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the built-in Moon Runner configuration.
// It mirrors defaults/runner.yaml and backs it up if the embed is unreadable.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		World: WorldConfig{
			ViewportWidth: 540,
			GroundY:       820,
			SpawnMargin:   80,
		},
		Player: PlayerConfig{
			X:      120,
			Width:  64,
			Height: 96,
		},
		Physics: PhysicsConfig{
			Gravity:      1400,
			JumpVelocity: -620,
			MaxFallSpeed: 1200,
		},
		Difficulty: DifficultyConfig{
			BaseSpeed:          500,
			MaxSpeed:           900,
			SpeedRamp:          10,
			SpawnIntervalStart: 1200,
			SpawnIntervalMin:   550,
			SpawnIntervalRamp:  6,
		},
		Spawn: SpawnConfig{
			SegmentWidth:        260,
			FairnessWindow:      320,
			AirCooldownSegments: 2,
			MaxAttempts:         6,
			AirSpeedFactor:      0.9,
		},
		Encounter: EncounterConfig{
			GroundChance: ChanceCurve{Base: 0.35, Ramp: 0.003, Max: 0.75},
			AirChance:    ChanceCurve{Base: 0.18, Ramp: 0.0015, Max: 0.4},
			GroundMix:    GroundMix{RockSmall: 0.55, RockBig: 0.30, Crater: 0.15},
			AirMix:       AirMix{High: 0.40, Mid: 0.35, Low: 0.25},
		},
		Obstacles: ObstacleConfig{
			RockSmall: Size{Width: 44, Height: 32},
			RockBig:   Size{Width: 78, Height: 56},
			Crater:    Size{Width: 120, Height: 70},
			Meteor:    Size{Width: 56, Height: 28},
			Lanes:     Lanes{High: 560, Mid: 660, Low: 760},
		},
		Render: RenderConfig{
			WorldTop:     480,
			GroundOffset: 2,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}
