package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func at(r, c int) Position {
	return Position{Row: r, Col: c}
}

// mustRows builds a board from 8 layout rows.
func mustRows(t *testing.T, rows ...string) *Board {
	t.Helper()
	b, err := ParseRows(rows)
	require.NoError(t, err)
	return b
}

func requirePiece(t *testing.T, b *Board, p Position, team Team, kind Kind, msgAndArgs ...interface{}) {
	t.Helper()
	pc := b.At(p)
	require.NotNil(t, pc, msgAndArgs...)
	require.Equal(t, team, pc.Team, msgAndArgs...)
	require.Equal(t, kind, pc.Kind, msgAndArgs...)
}

func requireEmpty(t *testing.T, b *Board, p Position, msgAndArgs ...interface{}) {
	t.Helper()
	require.Nil(t, b.At(p), msgAndArgs...)
}

// sameBoard compares occupancy and stun flags.
func sameBoard(t *testing.T, want, got *Board) {
	t.Helper()
	require.Equal(t, EncodeLayout(want), EncodeLayout(got))
	require.Equal(t, StunnedCarriers(want), StunnedCarriers(got))
}
