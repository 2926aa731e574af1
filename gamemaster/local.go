package gamemaster

import (
	"errors"
	"fmt"
	"polis/game"
	"polis/utils"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrGameOver    = errors.New("game is over - no moves allowed")
	ErrIllegalMove = errors.New("illegal move")
	ErrNotStarted  = errors.New("game not started")
)

// UpdateGetter returns the next played move and the state it produced, or
// ok=false when there is nothing new. Every update is returned once.
type UpdateGetter func() (move game.GameMove, state *game.GameState, ok bool)

type Engine interface {
	Init() (game.State, UpdateGetter)
	Play(game.GameMove) error
}

type update struct {
	move  game.GameMove
	state *game.GameState
}

// LocalEngine is an in-process game session for a UI or controller. It
// validates every move against the rules before applying it.
type LocalEngine struct {
	ID      uuid.UUID
	mu      sync.Mutex
	board   *game.Board
	first   game.Team
	state   *game.GameState
	stalled bool
	gen     int
	pending []update
}

var _ Engine = (*LocalEngine)(nil)

// NewLocalEngine prepares a session that will start from b with first to move.
func NewLocalEngine(b *game.Board, first game.Team) *LocalEngine {
	return &LocalEngine{
		ID:    uuid.New(),
		board: b.Copy(),
		first: first,
	}
}

// Init (re)starts the game and returns a copy of the initial state. Getters
// returned by an earlier Init report nothing from then on.
func (e *LocalEngine) Init() (game.State, UpdateGetter) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state = game.NewGameState(e.board, e.first)
	e.pending = nil
	e.gen++
	log.Info().Msgf("game %s started, team %s to move", e.ID, e.first)
	e.checkStall()

	gen := e.gen
	return e.state.Copy(), func() (game.GameMove, *game.GameState, bool) {
		return e.nextUpdate(gen)
	}
}

func (e *LocalEngine) nextUpdate(gen int) (game.GameMove, *game.GameState, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.gen || len(e.pending) == 0 {
		return game.GameMove{}, nil, false
	}
	u := e.pending[0]
	e.pending = e.pending[1:]
	return u.move, u.state.Copy(), true
}

// Play applies move for the side to move.
func (e *LocalEngine) Play(move game.GameMove) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == nil {
		return ErrNotStarted
	}
	if e.state.Winner() != game.NoTeam || e.stalled {
		return ErrGameOver
	}

	legalMoves := e.state.LegalMoves()
	if utils.FindIndex(legalMoves, move) < 0 {
		return fmt.Errorf("%w: %s", ErrIllegalMove, move)
	}

	e.state = e.state.Apply(move)
	e.pending = append(e.pending, update{move: move, state: e.state})

	if winner := e.state.Winner(); winner != game.NoTeam {
		log.Info().Msgf("game %s won by team %s after %d moves", e.ID, winner, e.state.Turn)
	} else {
		e.checkStall()
	}
	return nil
}

// checkStall ends the game when the side to move has nothing to play.
func (e *LocalEngine) checkStall() {
	e.stalled = e.state.Winner() == game.NoTeam && len(e.state.LegalMoves()) == 0
	if e.stalled {
		log.Info().Msgf("game %s stalled, team %s has no legal moves after %d moves", e.ID, e.state.Player(), e.state.Turn)
	}
}

// Result reports whether the game is over and who won. The winner is
// game.NoTeam when the game ended in a stall.
func (e *LocalEngine) Result() (winner game.Team, over bool, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == nil {
		return game.NoTeam, false, ErrNotStarted
	}
	winner = e.state.Winner()
	return winner, winner != game.NoTeam || e.stalled, nil
}

// State returns a copy of the current state.
func (e *LocalEngine) State() (*game.GameState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == nil {
		return nil, ErrNotStarted
	}
	return e.state.Copy(), nil
}

// Preview simulates move on a copy and reports what it would do. ok is false
// when the move is not legal for the side to move.
func (e *LocalEngine) Preview(move game.GameMove) (outcome game.Outcome, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == nil || !e.state.IsLegal(move) {
		return game.Outcome{}, false
	}
	return e.state.Apply(move).LastOutcome, true
}

// ValidMoves lists the destinations of the piece at pos if it belongs to the
// side to move.
func (e *LocalEngine) ValidMoves(pos game.Position) []game.Position {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == nil || e.state.Winner() != game.NoTeam || e.stalled {
		return nil
	}
	pc := e.state.Board.At(pos)
	if pc == nil || pc.Team != e.state.Player() {
		return nil
	}
	return game.ValidMoves(e.state.Board, pos)
}
