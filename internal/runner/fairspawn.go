package runner

import (
	"github.com/vovakirdan/moonrunner/internal/config"
)

// historySize is how many emitted patterns the anti-clustering rule sees.
const historySize = 2

// maxForcedInHistory is the number of recent forced-jump patterns after
// which another forced jump is rejected.
const maxForcedInHistory = 2

// GeneratorStats counts generator outcomes over a run.
type GeneratorStats struct {
	Generated int // Patterns returned, fallbacks included
	Fallbacks int // Times every attempt was rejected
	Rejected  int // Individual rejected attempts
}

// Generator produces encounter patterns by rejection sampling, balancing
// randomness against fairness rules: no unavoidable ground+low-air
// combinations, no three forced jumps in a row, no stacked airborne hazards
// inside one reaction window, and a cooldown between airborne hazards.
//
// Only pattern metadata is retained: the last two patterns and the
// cooldown counter. Physical placement is delegated to the caller's
// predicate.
type Generator struct {
	cfg         config.EncounterConfig
	cooldown    int
	maxAttempts int
	rng         Rand

	history          []EncounterPattern
	segmentsSinceAir int
	stats            GeneratorStats
}

// NewGenerator creates a generator. A maxAttempts below one is treated as
// one; a negative cooldown as zero.
func NewGenerator(cfg *config.RunnerConfig, rng Rand) *Generator {
	g := &Generator{
		cfg:         cfg.Encounter,
		cooldown:    max(cfg.Spawn.AirCooldownSegments, 0),
		maxAttempts: max(cfg.Spawn.MaxAttempts, 1),
		rng:         rng,
		history:     make([]EncounterPattern, 0, historySize),
	}
	g.Reset()
	return g
}

// Reset clears the history and restores the cooldown counter to its
// initial value, which allows an airborne hazard on the first encounter.
func (g *Generator) Reset() {
	g.history = g.history[:0]
	g.segmentsSinceAir = g.cooldown
	g.stats = GeneratorStats{}
}

// SetRand replaces the random source, e.g. to reseed between runs.
func (g *Generator) SetRand(rng Rand) {
	g.rng = rng
}

// Next returns the next pattern. canPlaceAir is consulted for every
// candidate with an airborne hazard and must be side-effect free.
// When all attempts are rejected the empty pattern is returned; it is
// still recorded in the history and cooldown bookkeeping.
func (g *Generator) Next(elapsedSeconds float64, canPlaceAir func() bool) EncounterPattern {
	groundChance := g.cfg.GroundChance.At(elapsedSeconds)
	airChance := g.cfg.AirChance.At(elapsedSeconds)
	if g.segmentsSinceAir < g.cooldown {
		airChance = 0
	}

	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		p := NewPattern(g.pickGround(groundChance), g.pickAir(airChance))

		if p.Air() != AirNone && canPlaceAir != nil && !canPlaceAir() {
			g.stats.Rejected++
			continue
		}
		if !g.allowed(p) {
			g.stats.Rejected++
			continue
		}

		g.register(p)
		return p
	}

	fallback := NewPattern(GroundNone, AirNone)
	g.stats.Fallbacks++
	g.register(fallback)
	return fallback
}

// allowed applies the structural fairness rules.
func (g *Generator) allowed(p EncounterPattern) bool {
	// A crater or a tall rock under a low meteor cannot be cleared with
	// one jump timing.
	if p.Air() == AirLow && (p.Ground() == GroundCrater || p.Ground() == GroundRockBig) {
		return false
	}

	forced := 0
	for _, h := range g.history {
		if h.RequiresJump() {
			forced++
		}
	}
	// Never three forced jumps in a row. A low meteor is forced by
	// definition, so it is covered by the same check.
	if forced >= maxForcedInHistory && p.RequiresJump() {
		return false
	}
	return true
}

func (g *Generator) register(p EncounterPattern) {
	if len(g.history) == historySize {
		copy(g.history, g.history[1:])
		g.history = g.history[:historySize-1]
	}
	g.history = append(g.history, p)

	if p.Air() != AirNone {
		g.segmentsSinceAir = 0
	} else {
		g.segmentsSinceAir++
	}
	g.stats.Generated++
}

func (g *Generator) pickGround(chance float64) GroundHazard {
	if g.rng.Float64() >= chance {
		return GroundNone
	}

	mix := g.cfg.GroundMix
	roll := g.rng.Float64() * (mix.RockSmall + mix.RockBig + mix.Crater)
	switch {
	case roll < mix.RockSmall:
		return GroundRockSmall
	case roll < mix.RockSmall+mix.RockBig:
		return GroundRockBig
	default:
		return GroundCrater
	}
}

func (g *Generator) pickAir(chance float64) AirHazard {
	if g.rng.Float64() >= chance {
		return AirNone
	}

	mix := g.cfg.AirMix
	roll := g.rng.Float64() * (mix.High + mix.Mid + mix.Low)
	switch {
	case roll < mix.High:
		return AirHigh
	case roll < mix.High+mix.Mid:
		return AirMid
	default:
		return AirLow
	}
}

// History returns a copy of the most recent patterns, oldest first.
func (g *Generator) History() []EncounterPattern {
	out := make([]EncounterPattern, len(g.history))
	copy(out, g.history)
	return out
}

// SegmentsSinceAirHazard returns the cooldown counter.
func (g *Generator) SegmentsSinceAirHazard() int {
	return g.segmentsSinceAir
}

// Cooldown returns the configured airborne cooldown in encounters.
func (g *Generator) Cooldown() int {
	return g.cooldown
}

// Stats returns outcome counters since the last Reset.
func (g *Generator) Stats() GeneratorStats {
	return g.stats
}
