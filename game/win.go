package game

// CheckWin returns the team with a carrier on its far rank, or NoTeam.
// Columns are scanned left to right and Team A's rank is checked first in each
// column.
func CheckWin(b *Board) Team {
	for c := 0; c < Cols; c++ {
		if pc := b.At(Position{Row: TeamA.FarRank(), Col: c}); pc != nil && pc.Kind == Carrier && pc.Team == TeamA {
			return TeamA
		}
		if pc := b.At(Position{Row: TeamB.FarRank(), Col: c}); pc != nil && pc.Kind == Carrier && pc.Team == TeamB {
			return TeamB
		}
	}
	return NoTeam
}
