package engine

import (
	"errors"
	"polis/experiments/metrics"
	"polis/game"
)

var (
	ErrIllegalMove     = errors.New("illegal move")
	ErrScriptExhausted = errors.New("script exhausted")
	ErrNoLegalMoves    = errors.New("no legal moves")
)

type Engine interface {
	// Run plays until there's a winner, a stall or a max number of turns is reached
	Run() (winner game.Team, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}

// Agent picks the next move for the side to move in gs. gs is a copy and may
// be kept.
type Agent interface {
	FindMove(gs *game.GameState) (game.GameMove, error)
}
