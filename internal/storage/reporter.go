package storage

import (
	"io"

	"github.com/charmbracelet/log"
)

// Reporter adapts a Store to the core.ScoreReporter collaborator: it saves
// the final score of a run and answers with the best score of the game.
// A nil store or a failing database degrades to an in-memory best.
type Reporter struct {
	store  *Store
	gameID string
	logger *log.Logger
	best   int
}

// NewReporter creates a reporter for one game id. The best score is
// preloaded from the store.
func NewReporter(store *Store, gameID string, logger *log.Logger) *Reporter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	r := &Reporter{store: store, gameID: gameID, logger: logger}
	if store != nil {
		best, err := store.HighScore(gameID)
		if err != nil {
			logger.Warn("cannot load high score", "game", gameID, "err", err)
		}
		r.best = best
	}
	return r
}

// ReportScore implements core.ScoreReporter. Zero scores are not saved.
func (r *Reporter) ReportScore(final int) int {
	if final > r.best {
		r.best = final
	}
	if r.store == nil || final <= 0 {
		return r.best
	}

	if _, err := r.store.SaveScore(r.gameID, final); err != nil {
		r.logger.Warn("cannot save score", "game", r.gameID, "err", err)
		return r.best
	}
	if best, err := r.store.HighScore(r.gameID); err == nil && best > r.best {
		r.best = best
	}
	r.logger.Debug("score saved", "game", r.gameID, "score", final, "best", r.best)
	return r.best
}

// Best returns the best score known to the reporter.
func (r *Reporter) Best() int {
	return r.best
}
