package game

import "fmt"

// Hop is a forced relocation computed against one board snapshot.
type Hop struct {
	From  Position
	To    Position
	Piece *Piece
}

func (h Hop) String() string {
	return fmt.Sprintf("%s %s>%s", h.Piece, h.From, h.To)
}

// ComputeHops returns the hops triggered by the piece that has just arrived at
// dest. For each direction the neighbour at dest+d is pushed to the mirror cell
// dest-d when:
//   - both cells are on the board,
//   - the neighbour exists and is not a stunned carrier,
//   - the mirror cell is empty,
//   - for an enemy neighbour only, no piece of the neighbour's team sits at
//     dest+2d behind it (defense).
//
// Every direction is judged on the same board, so the result does not depend
// on iteration order. The board is not modified.
func ComputeHops(b *Board, dest Position) []Hop {
	mover := b.At(dest)
	if mover == nil {
		return nil
	}
	var hops []Hop
	for _, d := range Directions {
		from, to := dest.Step(d, 1), dest.Step(d, -1)
		if !from.InBounds() || !to.InBounds() {
			continue
		}
		neighbor := b.At(from)
		if neighbor == nil || neighbor.Incapacitated() {
			continue
		}
		if b.At(to) != nil {
			continue
		}
		if neighbor.Team != mover.Team {
			if def := b.At(dest.Step(d, 2)); def != nil && def.Team == neighbor.Team {
				continue
			}
		}
		hops = append(hops, Hop{From: from, To: to, Piece: neighbor})
	}
	return hops
}

// ApplyHops performs hops in two phases: every source is vacated before any
// piece is placed, so no hop sees another hop's source as occupied.
func ApplyHops(b *Board, hops []Hop) {
	pieces := make([]*Piece, len(hops))
	for i, h := range hops {
		pieces[i] = b.At(h.From)
		b.Clear(h.From)
	}
	for i, h := range hops {
		b.Set(h.To, pieces[i])
	}
}

// ResolveHops computes and applies the hops triggered by an arrival at dest.
// Hopped pieces do not trigger further hops.
func ResolveHops(b *Board, dest Position) []Hop {
	hops := ComputeHops(b, dest)
	ApplyHops(b, hops)
	return hops
}
