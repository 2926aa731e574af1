package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidMove = errors.New("invalid move")

// GameMove represents a single step of one piece.
type GameMove struct {
	From Position
	To   Position
}

func (m GameMove) String() string {
	return m.From.String() + "-" + m.To.String()
}

// Outcome is what a move did to the board besides relocating the mover.
type Outcome struct {
	Hops     []Hop
	Captured []Position
}

// Execute plays from->to on b and returns the hops and captures it caused.
// The move must already be known to be a single step onto an empty cell; use
// IsMoveLegal first. The order is fixed: relocate, stun, hop, stun, capture,
// stun.
func Execute(b *Board, from, to Position) Outcome {
	b.Set(to, b.At(from))
	b.Clear(from)
	UpdateStun(b)

	hops := ResolveHops(b, to)
	UpdateStun(b)

	captured := ComputeCaptures(b)
	RemovePieces(b, captured)
	UpdateStun(b)

	return Outcome{Hops: hops, Captured: captured}
}

// ExecuteMove plays from->to and returns the captured positions.
func ExecuteMove(b *Board, from, to Position) []Position {
	return Execute(b, from, to).Captured
}

// ParsePosition parses "row,col".
func ParsePosition(s string) (Position, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 {
		return Position{}, fmt.Errorf("%w: position %q", ErrInvalidMove, s)
	}
	r, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Position{}, fmt.Errorf("%w: row in %q", ErrInvalidMove, s)
	}
	c, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Position{}, fmt.Errorf("%w: column in %q", ErrInvalidMove, s)
	}
	p := Position{Row: r, Col: c}
	if !p.InBounds() {
		return Position{}, fmt.Errorf("%w: %s is off the board", ErrInvalidMove, p)
	}
	return p, nil
}

// ParseMove parses "row,col-row,col".
func ParseMove(s string) (GameMove, error) {
	from, to, ok := strings.Cut(s, "-")
	if !ok {
		return GameMove{}, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}
	f, err := ParsePosition(from)
	if err != nil {
		return GameMove{}, err
	}
	t, err := ParsePosition(to)
	if err != nil {
		return GameMove{}, err
	}
	return GameMove{From: f, To: t}, nil
}
