package game

// IsMoveLegal reports whether from->to may be played. The move must be a
// single step from an occupied cell onto an empty in-bounds cell, and after
// simulating the whole move on a copy of b the mover must still stand on to
// and, if it is a carrier, must not be stunned. What happens to other pieces
// does not matter. b is not modified.
func IsMoveLegal(b *Board, from, to Position) bool {
	if !from.InBounds() || !to.InBounds() {
		return false
	}
	if b.At(from) == nil || b.At(to) != nil {
		return false
	}
	if from.Distance(to) != 1 {
		return false
	}

	sim := b.Copy()
	Execute(sim, from, to)
	moved := sim.At(to)
	if moved == nil {
		return false
	}
	return !moved.Incapacitated()
}

// ValidMoves returns every legal destination for the piece at pos, in
// Directions order. Empty cells and stunned carriers have none.
func ValidMoves(b *Board, pos Position) []Position {
	pc := b.At(pos)
	if pc == nil || pc.Incapacitated() {
		return nil
	}
	var moves []Position
	for _, d := range Directions {
		to := pos.Step(d, 1)
		if b.Empty(to) && IsMoveLegal(b, pos, to) {
			moves = append(moves, to)
		}
	}
	return moves
}
