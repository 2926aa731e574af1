package game

import (
	"encoding/binary"
	"hash/fnv"
)

// GameState is a position plus whose turn it is. Play never mutates the
// receiver.
type GameState struct {
	Board       *Board   // Current board, stun flags up to date
	CurrentTeam Team     // Side to move
	Turn        int      // Number of moves played so far
	LastMove    GameMove // The last move made
	LastOutcome Outcome  // Hops and captures of the last move
	Won         Team     // Winner, NoTeam while the game is running
}

// NewGameState starts a game on a copy of b with first to move.
func NewGameState(b *Board, first Team) *GameState {
	board := b.Copy()
	UpdateStun(board)
	return &GameState{
		Board:       board,
		CurrentTeam: first,
		Won:         CheckWin(board),
	}
}

func (gs GameState) Copy() *GameState {
	return &GameState{
		Board:       gs.Board.Copy(),
		CurrentTeam: gs.CurrentTeam,
		Turn:        gs.Turn,
		LastMove:    gs.LastMove,
		LastOutcome: gs.LastOutcome, // Hop pieces point into the previous board
		Won:         gs.Won,
	}
}

func (gs GameState) Player() Team {
	return gs.CurrentTeam
}

// LegalMoves returns every legal move of the side to move, by source cell in
// row-major order. There are none once the game has a winner.
func (gs GameState) LegalMoves() []GameMove {
	if gs.Won != NoTeam {
		return nil
	}
	var moves []GameMove
	gs.Board.Each(func(from Position, pc *Piece) {
		if pc.Team != gs.CurrentTeam {
			return
		}
		for _, to := range ValidMoves(gs.Board, from) {
			moves = append(moves, GameMove{From: from, To: to})
		}
	})
	return moves
}

// IsLegal reports whether m is one of LegalMoves.
func (gs GameState) IsLegal(m GameMove) bool {
	if gs.Won != NoTeam {
		return false
	}
	pc := gs.Board.At(m.From)
	if pc == nil || pc.Team != gs.CurrentTeam || pc.Incapacitated() {
		return false
	}
	return IsMoveLegal(gs.Board, m.From, m.To)
}

// Play applies m, which must be legal, and returns the resulting state.
func (gs GameState) Play(m GameMove) State {
	return gs.Apply(m)
}

// Apply is Play with a concrete return type.
func (gs GameState) Apply(m GameMove) *GameState {
	newGs := gs.Copy()
	newGs.LastOutcome = Execute(newGs.Board, m.From, m.To)
	newGs.LastMove = m
	newGs.Turn++
	newGs.Won = CheckWin(newGs.Board)
	newGs.CurrentTeam = gs.CurrentTeam.Opponent()
	return newGs
}

func (gs GameState) Winner() Team {
	return gs.Won
}

func (gs GameState) Hash() StateHash {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, int8(gs.CurrentTeam))

	var cell [3]int8
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			cell = [3]int8{}
			if pc := gs.Board.At(Position{Row: r, Col: c}); pc != nil {
				cell[0] = int8(pc.Team)
				cell[1] = int8(pc.Kind)
				if pc.Stunned {
					cell[2] = 1
				}
			}
			binary.Write(hasher, binary.LittleEndian, cell)
		}
	}

	return StateHash(hasher.Sum64())
}
