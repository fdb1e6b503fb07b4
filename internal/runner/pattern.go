// Package runner implements the simulation core of Moon Runner: the fair
// encounter generator, the pooled obstacle lifecycle manager and the run
// controller that composes them with the difficulty curve once per tick.
//
// The package performs no I/O. Physics, rendering and score persistence are
// collaborators supplied by the caller (see Physics, Scene and
// core.ScoreReporter).
package runner

// GroundHazard is the ground half of an encounter.
type GroundHazard int

const (
	GroundNone GroundHazard = iota
	GroundRockSmall
	GroundRockBig
	GroundCrater
)

// String returns the hazard name used in logs.
func (g GroundHazard) String() string {
	switch g {
	case GroundNone:
		return "NONE"
	case GroundRockSmall:
		return "ROCK_SMALL"
	case GroundRockBig:
		return "ROCK_BIG"
	case GroundCrater:
		return "CRATER"
	default:
		return "UNKNOWN"
	}
}

// AirHazard is the airborne half of an encounter. Values other than
// AirNone double as lane identifiers.
type AirHazard int

const (
	AirNone AirHazard = iota
	AirHigh
	AirMid
	AirLow
)

// String returns the lane name used in logs.
func (a AirHazard) String() string {
	switch a {
	case AirNone:
		return "NONE"
	case AirHigh:
		return "HIGH"
	case AirMid:
		return "MID"
	case AirLow:
		return "LOW"
	default:
		return "UNKNOWN"
	}
}

// EncounterPattern is one spawn decision: zero or one ground hazard plus
// zero or one airborne hazard. Patterns are values; the fields are fixed
// at construction.
type EncounterPattern struct {
	ground       GroundHazard
	air          AirHazard
	requiresJump bool
}

// NewPattern builds a pattern and derives whether it forces a jump.
func NewPattern(ground GroundHazard, air AirHazard) EncounterPattern {
	return EncounterPattern{
		ground:       ground,
		air:          air,
		requiresJump: ground != GroundNone || air == AirLow,
	}
}

// Ground returns the ground hazard.
func (p EncounterPattern) Ground() GroundHazard { return p.ground }

// Air returns the airborne hazard lane.
func (p EncounterPattern) Air() AirHazard { return p.air }

// RequiresJump reports whether the player must jump to survive the pattern.
func (p EncounterPattern) RequiresJump() bool { return p.requiresJump }

// IsEmpty reports whether the pattern spawns nothing.
func (p EncounterPattern) IsEmpty() bool {
	return p.ground == GroundNone && p.air == AirNone
}
