package game

// ComputeCaptures returns every runner flanked on some axis by two enemies,
// in row-major order. A stunned enemy carrier does not count as a flanker.
// Carriers are never captured. Stun flags must be current.
func ComputeCaptures(b *Board) []Position {
	var captured []Position
	b.Each(func(pos Position, pc *Piece) {
		if pc.Kind == Carrier {
			return
		}
		enemy := pc.Team.Opponent()
		for _, axis := range Axes {
			p1, p2 := pos.Step(axis, 1), pos.Step(axis, -1)
			if !p1.InBounds() || !p2.InBounds() {
				continue
			}
			if flanks(b.At(p1), enemy) && flanks(b.At(p2), enemy) {
				captured = append(captured, pos)
				return
			}
		}
	})
	return captured
}

func flanks(pc *Piece, enemy Team) bool {
	return pc != nil && pc.Team == enemy && !pc.Incapacitated()
}

// RemovePieces clears every listed position.
func RemovePieces(b *Board, positions []Position) {
	for _, p := range positions {
		b.Clear(p)
	}
}
