package game

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidLayout = errors.New("invalid layout")

// Cell letters: upper case is Team A, lower case Team B.
const (
	emptyCell        = '.'
	runnerA          = 'R'
	carrierA         = 'C'
	runnerB          = 'r'
	carrierB         = 'c'
	stunnedCarrierMk = '*'
)

func pieceToChar(pc *Piece) byte {
	if pc == nil {
		return emptyCell
	}
	switch {
	case pc.Team == TeamA && pc.Kind == Runner:
		return runnerA
	case pc.Team == TeamA:
		return carrierA
	case pc.Kind == Runner:
		return runnerB
	default:
		return carrierB
	}
}

func charToPiece(ch rune) (*Piece, bool) {
	switch ch {
	case runnerA:
		return NewPiece(TeamA, Runner), true
	case carrierA:
		return NewPiece(TeamA, Carrier), true
	case runnerB:
		return NewPiece(TeamB, Runner), true
	case carrierB:
		return NewPiece(TeamB, Carrier), true
	}
	return nil, false
}

// ParseRows builds a board from 8 rows of 8 cells, row 0 first. Stun is
// evaluated on the result.
func ParseRows(rows []string) (*Board, error) {
	if len(rows) != Rows {
		return nil, fmt.Errorf("%w: want %d rows, got %d", ErrInvalidLayout, Rows, len(rows))
	}
	b := NewBoard()
	for r, row := range rows {
		row = strings.TrimSpace(row)
		if len(row) != Cols {
			return nil, fmt.Errorf("%w: row %d has %d cells", ErrInvalidLayout, r, len(row))
		}
		for c, ch := range row {
			if ch == emptyCell {
				continue
			}
			pc, ok := charToPiece(ch)
			if !ok {
				return nil, fmt.Errorf("%w: unknown piece %q at %d,%d", ErrInvalidLayout, ch, r, c)
			}
			b.Set(Position{Row: r, Col: c}, pc)
		}
	}
	UpdateStun(b)
	return b, nil
}

// DecodeLayout parses the compact form produced by EncodeLayout: rows joined
// by '/', with digits standing for runs of empty cells.
func DecodeLayout(s string) (*Board, error) {
	rows := strings.Split(strings.TrimSpace(s), "/")
	if len(rows) != Rows {
		return nil, fmt.Errorf("%w: want %d rows, got %d", ErrInvalidLayout, Rows, len(rows))
	}
	expanded := make([]string, Rows)
	for r, row := range rows {
		var sb strings.Builder
		for _, ch := range row {
			if ch >= '1' && ch <= '8' {
				sb.WriteString(strings.Repeat(string(emptyCell), int(ch-'0')))
				continue
			}
			sb.WriteRune(ch)
		}
		expanded[r] = sb.String()
	}
	return ParseRows(expanded)
}

// EncodeLayout writes b in compact form, e.g. "RR6/8/.../8".
func EncodeLayout(b *Board) string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for c := 0; c < Cols; c++ {
			pc := b.At(Position{Row: r, Col: c})
			if pc == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(pieceToChar(pc))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}
	return sb.String()
}

// Rows returns the board as 8 strings of cell letters, row 0 first.
func (b *Board) Rows() []string {
	out := make([]string, Rows)
	for r := 0; r < Rows; r++ {
		row := make([]byte, Cols)
		for c := 0; c < Cols; c++ {
			row[c] = pieceToChar(b.At(Position{Row: r, Col: c}))
		}
		out[r] = string(row)
	}
	return out
}

// String renders the board with coordinates. Stunned carriers are preceded by
// '*'.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("  0 1 2 3 4 5 6 7\n")
	for r := 0; r < Rows; r++ {
		sb.WriteByte(byte('0' + r))
		for c := 0; c < Cols; c++ {
			pc := b.At(Position{Row: r, Col: c})
			sep := byte(' ')
			if pc.Incapacitated() {
				sep = stunnedCarrierMk
			}
			sb.WriteByte(sep)
			sb.WriteByte(pieceToChar(pc))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
