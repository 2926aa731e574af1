package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckWin(t *testing.T) {
	tests := []struct {
		name   string
		pieces func(b *Board)
		want   Team
	}{
		{
			name:   "empty board",
			pieces: func(b *Board) {},
			want:   NoTeam,
		},
		{
			name:   "A carrier on row 7",
			pieces: func(b *Board) { b.Place(at(7, 5), TeamA, Carrier) },
			want:   TeamA,
		},
		{
			name:   "B carrier on row 0",
			pieces: func(b *Board) { b.Place(at(0, 0), TeamB, Carrier) },
			want:   TeamB,
		},
		{
			name:   "runners do not win",
			pieces: func(b *Board) { b.Place(at(7, 1), TeamA, Runner); b.Place(at(0, 1), TeamB, Runner) },
			want:   NoTeam,
		},
		{
			name:   "own home rank does not win",
			pieces: func(b *Board) { b.Place(at(0, 4), TeamA, Carrier); b.Place(at(7, 4), TeamB, Carrier) },
			want:   NoTeam,
		},
		{
			name:   "leftmost column decides",
			pieces: func(b *Board) { b.Place(at(7, 5), TeamA, Carrier); b.Place(at(0, 2), TeamB, Carrier) },
			want:   TeamB,
		},
		{
			name:   "A first within a column",
			pieces: func(b *Board) { b.Place(at(7, 3), TeamA, Carrier); b.Place(at(0, 3), TeamB, Carrier) },
			want:   TeamA,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard()
			tt.pieces(b)
			require.Equal(t, tt.want, CheckWin(b))
		})
	}
}

func TestStunnedCarrierStillWins(t *testing.T) {
	b := mustRows(t,
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"..rCr...",
	)
	require.True(t, b.At(at(7, 3)).Stunned)
	require.Equal(t, TeamA, CheckWin(b))
}

func TestWinByHop(t *testing.T) {
	// The B runner steps next to the A carrier and pushes it onto row 7.
	b := mustRows(t,
		"........",
		"........",
		"........",
		"........",
		"........",
		"...C....",
		"....r...",
		"........",
	)
	require.True(t, IsMoveLegal(b, at(6, 4), at(6, 3)))

	Execute(b, at(6, 4), at(6, 3))

	requirePiece(t, b, at(7, 3), TeamA, Carrier)
	require.Equal(t, TeamA, CheckWin(b))
}
