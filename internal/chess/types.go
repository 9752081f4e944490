// Package chess provides the core value types of the game: colours, piece
// kinds, pieces and board positions.
package chess

import "fmt"

// Colour represents the colour of a piece or player.
type Colour int8

const (
	White Colour = iota
	Black
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// Forward returns the row direction pawns of this colour advance in:
// +1 for White, -1 for Black.
func (c Colour) Forward() int8 {
	if c == White {
		return 1
	}
	return -1
}

// Kind represents a chess piece type.
type Kind int8

const (
	NoKind Kind = iota // Empty square
	King
	Queen
	Rook
	Bishop
	Knight
	Pawn
)

// AllKinds lists every kind a piece can have, in back-rank importance order.
var AllKinds = []Kind{King, Queen, Rook, Bishop, Knight, Pawn}

// String returns the string representation of a kind.
func (k Kind) String() string {
	names := []string{"None", "King", "Queen", "Rook", "Bishop", "Knight", "Pawn"}
	if k >= 0 && int(k) < len(names) {
		return names[k]
	}
	return fmt.Sprintf("Kind(%d)", int8(k))
}

// Letter returns the single letter representation of a kind (uppercase).
func (k Kind) Letter() byte {
	letters := []byte{' ', 'K', 'Q', 'R', 'B', 'N', 'P'}
	if k >= 0 && int(k) < len(letters) {
		return letters[k]
	}
	return '?'
}

// KindFromLetter converts a piece letter of either case to a kind.
// It returns NoKind for anything else.
func KindFromLetter(c byte) Kind {
	switch c {
	case 'K', 'k':
		return King
	case 'Q', 'q':
		return Queen
	case 'R', 'r':
		return Rook
	case 'B', 'b':
		return Bishop
	case 'N', 'n':
		return Knight
	case 'P', 'p':
		return Pawn
	default:
		return NoKind
	}
}

// Piece is a coloured piece. The zero value is an empty square.
//
// Moved only has meaning for pawns: it is set the first time the pawn is
// relocated and gates the two-square advance. It is never cleared.
type Piece struct {
	Colour Colour
	Kind   Kind
	Moved  bool
}

// NewPiece creates an unmoved piece.
func NewPiece(colour Colour, kind Kind) Piece {
	return Piece{Colour: colour, Kind: kind}
}

// W creates a white piece.
func W(kind Kind) Piece {
	return NewPiece(White, kind)
}

// B creates a black piece.
func B(kind Kind) Piece {
	return NewPiece(Black, kind)
}

// IsEmpty reports whether p is the empty-square value.
func (p Piece) IsEmpty() bool {
	return p.Kind == NoKind
}

// Letter returns the FEN letter for the piece: uppercase for White,
// lowercase for Black.
func (p Piece) Letter() byte {
	l := p.Kind.Letter()
	if p.Colour == Black && l >= 'A' && l <= 'Z' {
		l += 'a' - 'A'
	}
	return l
}

// String returns e.g. "White Knight".
func (p Piece) String() string {
	if p.IsEmpty() {
		return "empty"
	}
	return p.Colour.String() + " " + p.Kind.String()
}
