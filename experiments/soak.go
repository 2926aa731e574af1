package experiments

import (
	"errors"
	"fmt"
	"polis/engine"
	"polis/experiments/metrics"
	"polis/game"
	"polis/meta"
	"reflect"
	"sync"

	"github.com/rs/zerolog/log"
)

var ErrInvariant = errors.New("invariant violated")

type SoakConfig struct {
	Games      int
	Seed       uint64
	Layout     string // Starting position, meta.DEFAULT_LAYOUT if empty
	MaxTurns   int
	Goroutines int
	Writer     *metrics.Writer // Optional
}

type SoakReport struct {
	Games    int
	Wins     map[game.Team]int
	Reasons  map[metrics.EndReason]int
	Moves    int
	Captures int
	Failures []error
}

type soakGame struct {
	metric      metrics.GameMetric
	moveMetrics []metrics.MoveMetric
	err         error
}

// RunSoak plays seeded random games and checks the rules' invariants after
// every move. Game i uses seeds Seed+2i and Seed+2i+1 for its two agents, so
// a run is reproducible regardless of scheduling.
func RunSoak(cfg SoakConfig) (SoakReport, error) {
	if cfg.Games <= 0 {
		cfg.Games = meta.SOAK_GAMES
	}
	if cfg.Layout == "" {
		cfg.Layout = meta.DEFAULT_LAYOUT
	}
	if cfg.MaxTurns <= 0 {
		cfg.MaxTurns = meta.MAX_TURNS
	}
	if cfg.Goroutines <= 0 {
		cfg.Goroutines = meta.GO_ROUTINES
	}
	board, err := game.DecodeLayout(cfg.Layout)
	if err != nil {
		return SoakReport{}, err
	}

	log.Info().Msgf("starting soak of %d games with seed %d...", cfg.Games, cfg.Seed)

	task := make(chan int, cfg.Games)
	for i := 0; i < cfg.Games; i++ {
		task <- i
	}
	close(task)

	games := make([]soakGame, cfg.Games)
	var wg sync.WaitGroup
	for i := 0; i < cfg.Goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for i := range task {
				games[i] = playSoakGame(board, cfg.Seed+2*uint64(i), cfg.MaxTurns)
			}
		}()
	}
	wg.Wait()

	report := SoakReport{
		Games:   cfg.Games,
		Wins:    map[game.Team]int{},
		Reasons: map[metrics.EndReason]int{},
	}
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	for i, g := range games {
		if g.err != nil {
			report.Failures = append(report.Failures, fmt.Errorf("game %d: %w", i+1, g.err))
			continue
		}
		report.Wins[g.metric.Winner]++
		report.Reasons[g.metric.Reason]++
		report.Moves += g.metric.TotalMoves
		report.Captures += g.metric.Captures

		gameRecords = append(gameRecords, metrics.GameRecord{
			ID:         i + 1,
			Name:       fmt.Sprintf("seed-%d", cfg.Seed+2*uint64(i)),
			GameMetric: g.metric,
		})
		for _, mm := range g.moveMetrics {
			moveRecords = append(moveRecords, metrics.MoveRecord{Game: i + 1, MoveMetric: mm})
		}
	}

	log.Info().Msgf("completed soak: A won %d, B won %d, %d stalls, %d unfinished, %d failures",
		report.Wins[game.TeamA], report.Wins[game.TeamB], report.Reasons[metrics.EndStall], report.Reasons[metrics.EndMaxTurns], len(report.Failures))

	if cfg.Writer != nil {
		if err := storeRecords(cfg.Writer, gameRecords, moveRecords); err != nil {
			return report, err
		}
	}
	return report, errors.Join(report.Failures...)
}

func playSoakGame(board *game.Board, seed uint64, maxTurns int) soakGame {
	agents := map[game.Team]engine.Agent{
		game.TeamA: engine.NewRandomAgent(seed),
		game.TeamB: engine.NewRandomAgent(seed + 1),
	}
	e := engine.NewLocalEngine(board, game.TeamA, agents,
		engine.WithMetrics(),
		engine.WithMaxTurns(maxTurns),
		engine.WithMoveCheck(CheckInvariants),
	)
	_, metric, moveMetrics, err := e.Run()
	return soakGame{metric: metric, moveMetrics: moveMetrics, err: err}
}

// CheckInvariants verifies what must hold after any legal move.
func CheckInvariants(before *game.GameState, move game.GameMove, after *game.GameState) error {
	layout, stunned := game.EncodeLayout(before.Board), game.StunnedCarriers(before.Board)
	legal := game.IsMoveLegal(before.Board, move.From, move.To)
	if game.EncodeLayout(before.Board) != layout || !reflect.DeepEqual(game.StunnedCarriers(before.Board), stunned) {
		return fmt.Errorf("%w: legality check changed the board", ErrInvariant)
	}
	if !legal {
		return fmt.Errorf("%w: move was played but is not legal on %s", ErrInvariant, layout)
	}

	restunned := after.Board.Copy()
	game.UpdateStun(restunned)
	if !reflect.DeepEqual(game.StunnedCarriers(restunned), game.StunnedCarriers(after.Board)) {
		return fmt.Errorf("%w: stun flags are stale after the move", ErrInvariant)
	}

	if want := before.Board.Count(game.NoTeam) - len(after.LastOutcome.Captured); after.Board.Count(game.NoTeam) != want {
		return fmt.Errorf("%w: %d pieces on the board, want %d", ErrInvariant, after.Board.Count(game.NoTeam), want)
	}

	mover := after.Board.At(move.To)
	if mover == nil || mover.Team != before.Player() || mover.Incapacitated() {
		return fmt.Errorf("%w: mover not standing free on %s", ErrInvariant, move.To)
	}

	if w := game.CheckWin(after.Board); w != after.Winner() {
		return fmt.Errorf("%w: winner %q recorded, board says %q", ErrInvariant, after.Winner(), w)
	}
	return nil
}
