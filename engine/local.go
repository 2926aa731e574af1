package engine

import (
	"errors"
	"fmt"
	"polis/experiments/metrics"
	"polis/game"
	"polis/meta"
	"polis/utils"
	"time"

	"github.com/rs/zerolog/log"
)

var _ Engine = (*LocalEngine)(nil)

type Option func(e *LocalEngine)

// MoveCheck is called after every move with the state before it, the move and
// the resulting state. A non-nil error stops the game.
type MoveCheck func(before *game.GameState, move game.GameMove, after *game.GameState) error

type LocalEngine struct {
	State     *game.GameState
	Agents    map[game.Team]Agent
	maxTurns  int
	metrics   metrics.Collector
	checks    []MoveCheck
	endReason metrics.EndReason
}

func WithMaxTurns(turns int) Option {
	return func(e *LocalEngine) {
		if turns > 0 {
			e.maxTurns = turns
		}
	}
}

func WithMetrics() Option {
	return func(e *LocalEngine) {
		e.metrics = metrics.NewCollector()
	}
}

func WithMoveCheck(check MoveCheck) Option {
	return func(e *LocalEngine) {
		if check != nil {
			e.checks = append(e.checks, check)
		}
	}
}

// NewLocalEngine starts a game on a copy of b. Both teams need an agent; the
// same agent may serve both.
func NewLocalEngine(b *game.Board, first game.Team, agents map[game.Team]Agent, options ...Option) *LocalEngine {
	if first != game.TeamA && first != game.TeamB {
		panic("first team must be A or B")
	}
	if agents[game.TeamA] == nil || agents[game.TeamB] == nil {
		panic("need an agent for each team")
	}

	e := &LocalEngine{ // Default values
		State:    game.NewGameState(b, first),
		Agents:   agents,
		maxTurns: meta.MAX_TURNS,
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run executes the game loop until a winner, a stall, a script running out or
// the turn limit.
func (e *LocalEngine) Run() (game.Team, metrics.GameMetric, []metrics.MoveMetric, error) {
	log.Info().Msgf("team %s is starting", e.State.Player())
	e.metrics.Start(e.State.Player())

	var moveMetrics []metrics.MoveMetric
	finish := func(reason metrics.EndReason) (game.Team, metrics.GameMetric, []metrics.MoveMetric, error) {
		e.endReason = reason
		return e.State.Winner(), e.metrics.Complete(e.State.Winner(), reason), moveMetrics, nil
	}

	for {
		if winner := e.State.Winner(); winner != game.NoTeam {
			log.Info().Msgf("team %s wins after %d moves", winner, e.State.Turn)
			return finish(metrics.EndWin)
		}
		if e.State.Turn >= e.maxTurns {
			log.Info().Msgf("stopped after %d turns (no winner yet)", e.State.Turn)
			return finish(metrics.EndMaxTurns)
		}

		team := e.State.Player()
		legalMoves := e.State.LegalMoves()
		if len(legalMoves) == 0 {
			log.Info().Msgf("team %s has no legal moves after %d turns", team, e.State.Turn)
			return finish(metrics.EndStall)
		}

		start := time.Now()
		move, err := e.Agents[team].FindMove(e.State.Copy())
		took := time.Since(start)
		if errors.Is(err, ErrScriptExhausted) {
			log.Info().Msgf("script ran out after %d turns", e.State.Turn)
			return finish(metrics.EndScriptExhausted)
		}
		if err != nil {
			return game.NoTeam, metrics.GameMetric{}, moveMetrics, fmt.Errorf("team %s could not find a move: %w", team, err)
		}

		if utils.FindIndex(legalMoves, move) < 0 {
			return game.NoTeam, metrics.GameMetric{}, moveMetrics, fmt.Errorf("%w: team %s played %s on turn %d", ErrIllegalMove, team, move, e.State.Turn+1)
		}

		before := e.State
		e.State = e.State.Apply(move)
		log.Debug().Msgf("turn %d: team %s played %s, %d hops, %d captures", e.State.Turn, team, move, len(e.State.LastOutcome.Hops), len(e.State.LastOutcome.Captured))

		for _, check := range e.checks {
			if err := check(before, move, e.State); err != nil {
				return game.NoTeam, metrics.GameMetric{}, moveMetrics, fmt.Errorf("turn %d %s: %w", e.State.Turn, move, err)
			}
		}

		moveMetrics = append(moveMetrics, e.metrics.AddMove(e.State.Turn, team, move, took, e.State))
	}
}

// EndReason is set once Run returns without an error.
func (e *LocalEngine) EndReason() metrics.EndReason {
	return e.endReason
}
