package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickSeconds returns the fixed simulation step in seconds.
func (c RuntimeConfig) TickSeconds() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int     // Current score (floored)
	Best     int     // Best score known to the persistence collaborator
	GameOver bool    // Whether the game has ended
	Paused   bool    // Whether the game is paused
	Started  bool    // Whether the run has left the NotStarted state
	Cause    string  // What ended the run ("collision", "fall"), empty while running
	Elapsed  float64 // Seconds of running time
	Distance float64 // World units scrolled
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}

// ScoreReporter receives the final score of a run and returns the best
// score known so far. It is called exactly once per finished run.
type ScoreReporter interface {
	ReportScore(final int) (best int)
}

// MemoryReporter keeps the best score in memory. Used when no persistent
// store is available.
type MemoryReporter struct {
	best int
}

// ReportScore implements ScoreReporter.
func (m *MemoryReporter) ReportScore(final int) int {
	if final > m.best {
		m.best = final
	}
	return m.best
}

// Best returns the best score reported so far.
func (m *MemoryReporter) Best() int {
	return m.best
}

// RunRecord describes a finished run for the history table.
type RunRecord struct {
	Seed       int64
	Score      int
	Elapsed    float64 // Seconds
	Distance   float64 // World units
	Encounters int
	Cause      string
}
