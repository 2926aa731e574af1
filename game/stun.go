package game

// UpdateStun recomputes the Stunned flag of every piece from the board alone.
// A carrier is stunned when some axis has an enemy piece on both sides; the
// kind or stun state of those enemies does not matter. Runners are never
// stunned. The previous flag values are ignored.
func UpdateStun(b *Board) {
	b.Each(func(pos Position, pc *Piece) {
		pc.Stunned = pc.Kind == Carrier && IsStunnedAt(b, pos)
	})
}

// IsStunnedAt reports whether the carrier at pos is flanked by enemies on
// some axis. It returns false for empty cells and runners.
func IsStunnedAt(b *Board, pos Position) bool {
	pc := b.At(pos)
	if pc == nil || pc.Kind != Carrier {
		return false
	}
	enemy := pc.Team.Opponent()
	for _, axis := range Axes {
		p1, p2 := pos.Step(axis, 1), pos.Step(axis, -1)
		if !p1.InBounds() || !p2.InBounds() {
			continue
		}
		e1, e2 := b.At(p1), b.At(p2)
		if e1 != nil && e1.Team == enemy && e2 != nil && e2.Team == enemy {
			return true
		}
	}
	return false
}

// StunnedCarriers lists the positions of stunned carriers, row-major.
func StunnedCarriers(b *Board) []Position {
	var out []Position
	b.Each(func(pos Position, pc *Piece) {
		if pc.Incapacitated() {
			out = append(out, pos)
		}
	})
	return out
}
