package metrics

import (
	"polis/game"
	"sync/atomic"
	"time"
)

// EndReason records why a game stopped.
type EndReason string

const (
	EndWin             EndReason = "win"
	EndStall           EndReason = "stall"     // Side to move had no legal moves
	EndMaxTurns        EndReason = "max_turns" // meta.MAX_TURNS reached
	EndScriptExhausted EndReason = "script_exhausted"
)

type MoveMetric struct {
	Step     int
	Team     game.Team
	Move     game.GameMove
	Duration time.Duration // Time the agent took to pick the move
	Hops     int
	Captures int
	Stunned  int // Stunned carriers on the board after the move
}

type GameMetric struct {
	StartingTeam game.Team
	Winner       game.Team
	Reason       EndReason
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
	TotalMoves   int
	Hops         int
	Captures     int
}

type Collector interface {
	Start(first game.Team)
	AddMove(step int, team game.Team, move game.GameMove, took time.Duration, state *game.GameState) MoveMetric
	Complete(winner game.Team, reason EndReason) GameMetric
}

type collector struct {
	first     game.Team
	startTime time.Time
	moves     atomic.Int32
	hops      atomic.Int32
	captures  atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(first game.Team) {
	m.startTime = time.Now()
	m.first = first
	m.moves.Store(0)
	m.hops.Store(0)
	m.captures.Store(0)
}

func (m *collector) AddMove(step int, team game.Team, move game.GameMove, took time.Duration, state *game.GameState) MoveMetric {
	out := state.LastOutcome
	m.moves.Add(1)
	m.hops.Add(int32(len(out.Hops)))
	m.captures.Add(int32(len(out.Captured)))

	return MoveMetric{
		Step:     step,
		Team:     team,
		Move:     move,
		Duration: took,
		Hops:     len(out.Hops),
		Captures: len(out.Captured),
		Stunned:  len(game.StunnedCarriers(state.Board)),
	}
}

func (m *collector) Complete(winner game.Team, reason EndReason) GameMetric {
	end := time.Now()
	return GameMetric{
		StartingTeam: m.first,
		Winner:       winner,
		Reason:       reason,
		StartTime:    m.startTime,
		EndTime:      end,
		Duration:     end.Sub(m.startTime),
		TotalMoves:   int(m.moves.Load()),
		Hops:         int(m.hops.Load()),
		Captures:     int(m.captures.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(first game.Team) {}
func (m *dummyCollector) AddMove(step int, team game.Team, move game.GameMove, took time.Duration, state *game.GameState) MoveMetric {
	return MoveMetric{}
}
func (m *dummyCollector) Complete(winner game.Team, reason EndReason) GameMetric {
	return GameMetric{Winner: winner, Reason: reason}
}
