package game

import "fmt"

// Team is one of the two sides.
type Team int8

const (
	NoTeam Team = iota
	TeamA       // wins on row 7
	TeamB       // wins on row 0
)

func (t Team) String() string {
	switch t {
	case TeamA:
		return "A"
	case TeamB:
		return "B"
	default:
		return ""
	}
}

// Opponent returns the other team, or NoTeam for NoTeam.
func (t Team) Opponent() Team {
	switch t {
	case TeamA:
		return TeamB
	case TeamB:
		return TeamA
	default:
		return NoTeam
	}
}

// FarRank is the row a carrier of this team must reach to win.
func (t Team) FarRank() int {
	if t == TeamB {
		return 0
	}
	return Rows - 1
}

// ParseTeam accepts "A" or "B" (case-insensitive).
func ParseTeam(s string) (Team, error) {
	switch s {
	case "A", "a":
		return TeamA, nil
	case "B", "b":
		return TeamB, nil
	}
	return NoTeam, fmt.Errorf("unknown team %q", s)
}

type Kind int8

const (
	Runner Kind = iota
	Carrier
)

func (k Kind) String() string {
	if k == Carrier {
		return "carrier"
	}
	return "runner"
}

// Piece is a single game piece. Team and Kind are fixed at creation; Stunned
// is derived from the board by UpdateStun and is only ever true for carriers.
type Piece struct {
	Team    Team
	Kind    Kind
	Stunned bool
}

func NewPiece(team Team, kind Kind) *Piece {
	return &Piece{Team: team, Kind: kind}
}

// Incapacitated reports whether the piece is a stunned carrier.
func (p *Piece) Incapacitated() bool {
	return p != nil && p.Kind == Carrier && p.Stunned
}

func (p *Piece) String() string {
	if p == nil {
		return "empty"
	}
	s := fmt.Sprintf("%s-%s", p.Team, p.Kind)
	if p.Incapacitated() {
		s += " (stunned)"
	}
	return s
}

type Position struct {
	Row int
	Col int
}

func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < Rows && p.Col >= 0 && p.Col < Cols
}

// Step returns the position n steps along d. The result may be off the board.
func (p Position) Step(d Direction, n int) Position {
	return Position{Row: p.Row + n*d.DR, Col: p.Col + n*d.DC}
}

// Distance is the Chebyshev distance between two positions.
func (p Position) Distance(o Position) int {
	return max(abs(p.Row-o.Row), abs(p.Col-o.Col))
}

func (p Position) String() string {
	return fmt.Sprintf("%d,%d", p.Row, p.Col)
}

// Board is the fixed 8x8 grid. A nil cell is empty.
type Board struct {
	cells [Rows][Cols]*Piece
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{}
}

// At returns the piece at p, or nil if p is empty or off the board.
func (b *Board) At(p Position) *Piece {
	if !p.InBounds() {
		return nil
	}
	return b.cells[p.Row][p.Col]
}

// Set places pc at p (nil clears the cell). Off-board positions are ignored.
func (b *Board) Set(p Position, pc *Piece) {
	if !p.InBounds() {
		return
	}
	b.cells[p.Row][p.Col] = pc
}

// Place puts a new piece on the board and returns it.
func (b *Board) Place(p Position, team Team, kind Kind) *Piece {
	pc := NewPiece(team, kind)
	b.Set(p, pc)
	return pc
}

func (b *Board) Clear(p Position) {
	b.Set(p, nil)
}

func (b *Board) Empty(p Position) bool {
	return p.InBounds() && b.cells[p.Row][p.Col] == nil
}

// Copy returns a deep copy: the new board shares no pieces with b.
func (b *Board) Copy() *Board {
	nb := &Board{}
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			if pc := b.cells[r][c]; pc != nil {
				cp := *pc
				nb.cells[r][c] = &cp
			}
		}
	}
	return nb
}

// Each calls fn for every occupied cell in row-major order.
func (b *Board) Each(fn func(Position, *Piece)) {
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			if pc := b.cells[r][c]; pc != nil {
				fn(Position{Row: r, Col: c}, pc)
			}
		}
	}
}

// Count returns the number of pieces of the given team (NoTeam counts all).
func (b *Board) Count(team Team) int {
	n := 0
	b.Each(func(_ Position, pc *Piece) {
		if team == NoTeam || pc.Team == team {
			n++
		}
	})
	return n
}
