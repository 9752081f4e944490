package chess

import (
	"fmt"
	"strings"

	"github.com/lgbarn/schach-go/internal/errors"
)

// BoardSize is the number of rows and columns on the board.
const BoardSize = 8

// Position is a square on the board. Row 0 is the rank nearest White and
// col 0 is file a, so (0, 0) is a1 and (7, 0) is a8.
//
// Positions outside [0, BoardSize) are only produced transiently while
// stepping along a line and must be checked with InBounds before use.
type Position struct {
	Row int8 `json:"row"`
	Col int8 `json:"col"`
}

// Offset is a (row, col) step between two positions.
type Offset struct {
	Row int8
	Col int8
}

// Pos is shorthand for Position{Row: row, Col: col}.
func Pos(row, col int8) Position {
	return Position{Row: row, Col: col}
}

// InBounds reports whether p lies on the board.
func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < BoardSize && p.Col >= 0 && p.Col < BoardSize
}

// Add returns p shifted by off.
func (p Position) Add(off Offset) Position {
	return Position{Row: p.Row + off.Row, Col: p.Col + off.Col}
}

// String returns the algebraic name of the square, e.g. "e2".
// Off-board positions render as their raw coordinates.
func (p Position) String() string {
	if !p.InBounds() {
		return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
	}
	return string([]byte{byte('a' + p.Col), byte('1' + p.Row)})
}

// ParsePosition parses an algebraic square name such as "e2" or "E2".
func ParsePosition(s string) (Position, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 {
		return Position{}, fmt.Errorf("square %q: want file and rank: %w", s, errors.ErrInvalidPosition)
	}
	col, row := s[0], s[1]
	if col < 'a' || col > 'h' || row < '1' || row > '8' {
		return Position{}, fmt.Errorf("square %q: out of range a1-h8: %w", s, errors.ErrInvalidPosition)
	}
	return Position{Row: int8(row - '1'), Col: int8(col - 'a')}, nil
}

// MustParsePosition is ParsePosition for literals known to be valid.
func MustParsePosition(s string) Position {
	p, err := ParsePosition(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Direction sets used by the sliding pieces and the king.
var (
	OrthogonalDirs = []Offset{{-1, 0}, {1, 0}, {0, 1}, {0, -1}}
	DiagonalDirs   = []Offset{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	AllDirs        = append(append([]Offset{}, OrthogonalDirs...), DiagonalDirs...)
)
