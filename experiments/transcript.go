package experiments

import (
	"errors"
	"fmt"
	"os"
	"polis/game"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrTranscript = errors.New("invalid transcript")

// Transcript is a recorded game: a starting position, the moves played and
// what the game should look like afterwards.
//
//	name: hop to win
//	first: B
//	board:
//	  - "........"
//	  - ...
//	moves: ["6,4-6,3"]
//	expect:
//	  winner: A
type Transcript struct {
	Name   string   `yaml:"name"`
	First  string   `yaml:"first"`
	Layout string   `yaml:"layout,omitempty"` // Compact form, alternative to Board
	Board  []string `yaml:"board,omitempty"`
	Moves  []string `yaml:"moves"`
	Expect Expect   `yaml:"expect"`
}

type Expect struct {
	Winner   string   `yaml:"winner,omitempty"` // "A", "B" or "none"
	Reason   string   `yaml:"reason,omitempty"` // metrics.EndReason
	Layout   string   `yaml:"layout,omitempty"`
	Board    []string `yaml:"board,omitempty"`
	Captures *int     `yaml:"captures,omitempty"` // Total over the game
}

// LoadTranscript reads a YAML transcript from path.
func LoadTranscript(path string) (*Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript: %w", err)
	}
	return ParseTranscript(data)
}

func ParseTranscript(data []byte) (*Transcript, error) {
	var tr Transcript
	if err := yaml.Unmarshal(data, &tr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTranscript, err)
	}
	return &tr, nil
}

// Setup decodes the starting board, the first team and the move list.
func (tr *Transcript) Setup() (*game.Board, game.Team, []game.GameMove, error) {
	board, err := decodeBoard(tr.Layout, tr.Board)
	if err != nil {
		return nil, game.NoTeam, nil, err
	}

	first := game.TeamA
	if tr.First != "" {
		first, err = game.ParseTeam(tr.First)
		if err != nil {
			return nil, game.NoTeam, nil, fmt.Errorf("%w: %v", ErrTranscript, err)
		}
	}

	moves := make([]game.GameMove, 0, len(tr.Moves))
	for i, s := range tr.Moves {
		m, err := game.ParseMove(s)
		if err != nil {
			return nil, game.NoTeam, nil, fmt.Errorf("%w: move %d: %w", ErrTranscript, i+1, err)
		}
		moves = append(moves, m)
	}
	return board, first, moves, nil
}

// ExpectedBoard returns the expected final board, or nil if none is given.
func (e Expect) ExpectedBoard() (*game.Board, error) {
	if e.Layout == "" && len(e.Board) == 0 {
		return nil, nil
	}
	return decodeBoard(e.Layout, e.Board)
}

// ExpectedWinner returns the expected winner and whether one was specified.
func (e Expect) ExpectedWinner() (game.Team, bool, error) {
	switch strings.ToLower(e.Winner) {
	case "":
		return game.NoTeam, false, nil
	case "none", "-":
		return game.NoTeam, true, nil
	}
	team, err := game.ParseTeam(e.Winner)
	if err != nil {
		return game.NoTeam, false, fmt.Errorf("%w: %v", ErrTranscript, err)
	}
	return team, true, nil
}

func decodeBoard(layout string, rows []string) (*game.Board, error) {
	switch {
	case layout != "" && len(rows) > 0:
		return nil, fmt.Errorf("%w: both layout and board given", ErrTranscript)
	case layout != "":
		return game.DecodeLayout(layout)
	case len(rows) > 0:
		return game.ParseRows(rows)
	}
	return nil, fmt.Errorf("%w: no board", ErrTranscript)
}
