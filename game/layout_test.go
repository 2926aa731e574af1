package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeLayout(t *testing.T) {
	b := mustRows(t,
		"RR......",
		"R.......",
		"..r.....",
		"........",
		"........",
		"........",
		"........",
		"...cC..r",
	)
	require.Equal(t, "RR6/R7/2r5/8/8/8/8/3cC2r", EncodeLayout(b))
}

func TestLayoutRoundTrip(t *testing.T) {
	layouts := []string{
		"8/8/8/8/8/8/8/8",
		"RRRRRRRR/8/3C4/8/8/4c3/8/rrrrrrrr",
		"R6r/1C4c1/8/2rR4/4Rr2/8/1c4C1/r6R",
	}
	for _, s := range layouts {
		t.Run(s, func(t *testing.T) {
			b, err := DecodeLayout(s)
			require.NoError(t, err)
			require.Equal(t, s, EncodeLayout(b))

			again, err := ParseRows(b.Rows())
			require.NoError(t, err)
			sameBoard(t, b, again)
		})
	}
}

func TestDecodeLayoutExpandsDigits(t *testing.T) {
	b, err := DecodeLayout("1R6/8/8/8/8/8/8/c7")
	require.NoError(t, err)
	requireEmpty(t, b, at(0, 0))
	requirePiece(t, b, at(0, 1), TeamA, Runner)
	requirePiece(t, b, at(7, 0), TeamB, Carrier)
	require.Equal(t, 2, b.Count(NoTeam))
}

func TestLayoutErrors(t *testing.T) {
	tests := []struct {
		name   string
		layout string
	}{
		{name: "too few rows", layout: "8/8/8"},
		{name: "too many rows", layout: "8/8/8/8/8/8/8/8/8"},
		{name: "short row", layout: "7/8/8/8/8/8/8/8"},
		{name: "long row", layout: "9/8/8/8/8/8/8/8"},
		{name: "unknown piece", layout: "X7/8/8/8/8/8/8/8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeLayout(tt.layout)
			require.ErrorIs(t, err, ErrInvalidLayout)
		})
	}

	_, err := ParseRows([]string{"........"})
	require.ErrorIs(t, err, ErrInvalidLayout)
}

func TestParseRowsEvaluatesStun(t *testing.T) {
	b := mustRows(t,
		"........",
		"...r....",
		"...C....",
		"...r....",
		"........",
		"........",
		"........",
		"........",
	)
	require.True(t, b.At(at(2, 3)).Stunned)
}

func TestBoardString(t *testing.T) {
	b := mustRows(t,
		"R.......",
		"........",
		"........",
		"..rCr...",
		"........",
		"........",
		"........",
		".......c",
	)
	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")

	require.Len(t, lines, Rows+1)
	require.Equal(t, "  0 1 2 3 4 5 6 7", lines[0])
	require.Equal(t, "0 R . . . . . . .", lines[1])
	require.Equal(t, "3 . . r*C r . . .", lines[4])
	require.Equal(t, "7 . . . . . . . c", lines[8])
}
