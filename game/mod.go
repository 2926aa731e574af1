package game

const (
	Rows = 8
	Cols = 8
)

type StateHash uint64

// State should be immutable - operations on State always return a new copy
type State interface {
	Player() Team
	LegalMoves() []GameMove
	Play(GameMove) State
	Hash() StateHash
	Winner() Team
}

// Direction is a unit offset between neighbouring cells.
type Direction struct {
	DR, DC int
}

// Directions lists the 8 Chebyshev neighbours, row-major.
var Directions = [8]Direction{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Axes are the four opposite-direction pairs used by stun and capture:
// horizontal, vertical, diagonal ↘ and diagonal ↙. Each axis is checked as
// +d and -d.
var Axes = [4]Direction{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
