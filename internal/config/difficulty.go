package config

import "math"

// DifficultyCurve maps elapsed run time to scroll speed and spawn interval.
// It holds no state beyond its configuration; every query is a pure
// function of elapsed seconds.
type DifficultyCurve struct {
	cfg DifficultyConfig
}

// NewDifficultyCurve creates a curve, clamping degenerate bounds
// (max below base, min interval above start, negative ramps).
func NewDifficultyCurve(cfg DifficultyConfig) DifficultyCurve {
	if cfg.MaxSpeed < cfg.BaseSpeed {
		cfg.MaxSpeed = cfg.BaseSpeed
	}
	if cfg.SpawnIntervalMin > cfg.SpawnIntervalStart {
		cfg.SpawnIntervalMin = cfg.SpawnIntervalStart
	}
	cfg.SpeedRamp = math.Max(cfg.SpeedRamp, 0)
	cfg.SpawnIntervalRamp = math.Max(cfg.SpawnIntervalRamp, 0)
	return DifficultyCurve{cfg: cfg}
}

// Speed returns the scroll speed in units per second.
// Monotonically non-decreasing, saturates at MaxSpeed.
func (d DifficultyCurve) Speed(elapsedSeconds float64) float64 {
	raw := d.cfg.BaseSpeed + math.Max(elapsedSeconds, 0)*d.cfg.SpeedRamp
	return clampF(raw, d.cfg.BaseSpeed, d.cfg.MaxSpeed)
}

// SpawnInterval returns the minimum milliseconds between encounters.
// Monotonically non-increasing, saturates at SpawnIntervalMin.
func (d DifficultyCurve) SpawnInterval(elapsedSeconds float64) float64 {
	raw := d.cfg.SpawnIntervalStart - math.Max(elapsedSeconds, 0)*d.cfg.SpawnIntervalRamp
	return clampF(raw, d.cfg.SpawnIntervalMin, d.cfg.SpawnIntervalStart)
}

// Level returns how far along the speed ramp the run is, from 0 to 1.
func (d DifficultyCurve) Level(elapsedSeconds float64) float64 {
	span := d.cfg.MaxSpeed - d.cfg.BaseSpeed
	if span <= 0 {
		return 0
	}
	return (d.Speed(elapsedSeconds) - d.cfg.BaseSpeed) / span
}

// Config returns the (clamped) configuration backing the curve.
func (d DifficultyCurve) Config() DifficultyConfig {
	return d.cfg
}

// At evaluates a chance curve at the given elapsed time.
func (c ChanceCurve) At(elapsedSeconds float64) float64 {
	return clampF(c.Base+math.Max(elapsedSeconds, 0)*c.Ramp, c.Base, c.Max)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
