package engine

import (
	"polis/game"

	"golang.org/x/exp/rand"
)

// ScriptedAgent plays a fixed list of moves in order. One script can be shared
// by both teams to replay a whole game.
type ScriptedAgent struct {
	moves []game.GameMove
	next  int
}

func NewScriptedAgent(moves []game.GameMove) *ScriptedAgent {
	return &ScriptedAgent{moves: moves}
}

func (a *ScriptedAgent) FindMove(gs *game.GameState) (game.GameMove, error) {
	if a.next >= len(a.moves) {
		return game.GameMove{}, ErrScriptExhausted
	}
	move := a.moves[a.next]
	a.next++
	return move, nil
}

// Remaining returns the number of moves not yet played.
func (a *ScriptedAgent) Remaining() int {
	return len(a.moves) - a.next
}

// RandomAgent picks uniformly among the legal moves.
type RandomAgent struct {
	rng *rand.Rand
}

func NewRandomAgent(seed uint64) *RandomAgent {
	return &RandomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *RandomAgent) FindMove(gs *game.GameState) (game.GameMove, error) {
	moves := gs.LegalMoves()
	if len(moves) == 0 {
		return game.GameMove{}, ErrNoLegalMoves
	}
	return moves[a.rng.Intn(len(moves))], nil
}
