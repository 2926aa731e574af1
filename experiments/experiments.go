package experiments

import (
	"errors"
	"fmt"
	"polis/engine"
	"polis/experiments/metrics"
	"polis/game"

	"github.com/rs/zerolog/log"
)

var ErrMismatch = errors.New("replay does not match expectation")

// ReplayResult is the outcome of one transcript.
type ReplayResult struct {
	Path   string
	Name   string
	Winner game.Team
	Game   metrics.GameMetric
	Err    error // Setup, engine or expectation failure
}

// RunReplays plays every transcript through the engine and checks its
// expectations. Records are written with writer when it is not nil. The
// returned error joins every failing transcript.
func RunReplays(paths []string, writer *metrics.Writer) ([]ReplayResult, error) {
	log.Info().Msgf("starting replay of %d transcripts...", len(paths))

	results := make([]ReplayResult, 0, len(paths))
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	var errs []error

	for i, path := range paths {
		result, moveMetrics := replayFile(path)
		results = append(results, result)
		if result.Err != nil {
			log.Error().Err(result.Err).Msgf("transcript %s failed", path)
			errs = append(errs, fmt.Errorf("%s: %w", path, result.Err))
		} else {
			log.Info().Msgf("transcript %q passed with winner: %s (%s)", result.Name, result.Winner, result.Game.Reason)
		}

		gameRecords = append(gameRecords, metrics.GameRecord{
			ID:         i + 1,
			Name:       result.Name,
			GameMetric: result.Game,
		})
		for _, mm := range moveMetrics {
			moveRecords = append(moveRecords, metrics.MoveRecord{
				Game:       i + 1,
				MoveMetric: mm,
			})
		}
	}

	log.Info().Msgf("completed replay: %d of %d passed", len(paths)-len(errs), len(paths))

	if writer != nil {
		if err := storeRecords(writer, gameRecords, moveRecords); err != nil {
			return results, err
		}
	}
	return results, errors.Join(errs...)
}

func replayFile(path string) (ReplayResult, []metrics.MoveMetric) {
	result := ReplayResult{Path: path, Name: path}

	tr, err := LoadTranscript(path)
	if err != nil {
		result.Err = err
		return result, nil
	}
	if tr.Name != "" {
		result.Name = tr.Name
	}

	winner, gameMetric, moveMetrics, err := Replay(tr)
	result.Winner = winner
	result.Game = gameMetric
	result.Err = err
	return result, moveMetrics
}

// Replay runs a single transcript and checks its expectations.
func Replay(tr *Transcript) (game.Team, metrics.GameMetric, []metrics.MoveMetric, error) {
	board, first, moves, err := tr.Setup()
	if err != nil {
		return game.NoTeam, metrics.GameMetric{}, nil, err
	}

	script := engine.NewScriptedAgent(moves)
	e := engine.NewLocalEngine(board, first, map[game.Team]engine.Agent{
		game.TeamA: script,
		game.TeamB: script,
	}, engine.WithMetrics(), engine.WithMaxTurns(len(moves)+1))

	winner, gameMetric, moveMetrics, err := e.Run()
	if err != nil {
		return winner, gameMetric, moveMetrics, err
	}
	if script.Remaining() > 0 {
		return winner, gameMetric, moveMetrics, fmt.Errorf("%w: game ended (%s) with %d moves left", ErrMismatch, gameMetric.Reason, script.Remaining())
	}

	return winner, gameMetric, moveMetrics, checkExpect(tr.Expect, e.State, gameMetric)
}

func checkExpect(expect Expect, gs *game.GameState, gameMetric metrics.GameMetric) error {
	var errs []error

	want, ok, err := expect.ExpectedWinner()
	if err != nil {
		return err
	}
	if ok && want != gs.Winner() {
		errs = append(errs, fmt.Errorf("%w: winner %q, want %q", ErrMismatch, gs.Winner(), want))
	}

	if expect.Reason != "" && metrics.EndReason(expect.Reason) != gameMetric.Reason {
		errs = append(errs, fmt.Errorf("%w: end reason %s, want %s", ErrMismatch, gameMetric.Reason, expect.Reason))
	}

	wantBoard, err := expect.ExpectedBoard()
	if err != nil {
		return err
	}
	if wantBoard != nil {
		if got, want := game.EncodeLayout(gs.Board), game.EncodeLayout(wantBoard); got != want {
			errs = append(errs, fmt.Errorf("%w: board %s, want %s", ErrMismatch, got, want))
		}
	}

	if expect.Captures != nil && *expect.Captures != gameMetric.Captures {
		errs = append(errs, fmt.Errorf("%w: %d captures, want %d", ErrMismatch, gameMetric.Captures, *expect.Captures))
	}

	return errors.Join(errs...)
}

func storeRecords(writer *metrics.Writer, gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord) error {
	err := writer.WriteGameRecords(gameRecords)
	if err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	err = writer.WriteMoveRecords(moveRecords)
	if err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")
	return nil
}
