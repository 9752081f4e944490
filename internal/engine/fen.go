package engine

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/lgbarn/schach-go/internal/chess"
	"github.com/lgbarn/schach-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
// Castling and en passant are not part of this rule set, so those fields
// are always "-".
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"

// NewGameStateFromFEN creates a game from the placement and side-to-move
// fields of a FEN string. Remaining fields are accepted and ignored.
//
// A pawn that is not on its colour's starting row is treated as having
// moved. The placement must contain exactly one king of each colour, and
// the side that just moved must not be left in check.
func NewGameStateFromFEN(fen string) (*GameState, error) {
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return nil, fmt.Errorf("empty FEN string: %w", errors.ErrInvalidFEN)
	}

	g := NewEmptyGameState(chess.White)

	if err := parsePiecePositions(g, parts[0]); err != nil {
		return nil, err
	}
	if err := parseSideToMove(g, parts); err != nil {
		return nil, err
	}
	if err := checkKings(g); err != nil {
		return nil, err
	}
	if g.IsInCheck(g.currPlayer.Opposite()) {
		return nil, fmt.Errorf("%v to move can capture the %v king: %w",
			g.currPlayer, g.currPlayer.Opposite(), errors.ErrInvalidFEN)
	}
	return g, nil
}

// MustFEN is NewGameStateFromFEN for literals known to be valid.
func MustFEN(fen string) *GameState {
	g, err := NewGameStateFromFEN(fen)
	if err != nil {
		panic(err)
	}
	return g
}

// parsePiecePositions parses the piece placement field of a FEN string.
func parsePiecePositions(g *GameState, placement string) error {
	rows := strings.Split(placement, "/")
	if len(rows) != chess.BoardSize {
		return fmt.Errorf("want %d ranks, got %d: %w", chess.BoardSize, len(rows), errors.ErrInvalidFEN)
	}

	for i, rowText := range rows {
		row := int8(chess.BoardSize - 1 - i)
		col := int8(0)
		for _, c := range rowText {
			switch {
			case c > unicode.MaxASCII:
				return fmt.Errorf("invalid piece character: %c: %w", c, errors.ErrInvalidFEN)
			case c >= '1' && c <= '8':
				if int(col)+int(c-'0') > chess.BoardSize {
					return fmt.Errorf("rank %d overflows: %w", row+1, errors.ErrInvalidFEN)
				}
				col += int8(c - '0')
			default:
				kind := chess.KindFromLetter(byte(c))
				if kind == chess.NoKind {
					return fmt.Errorf("invalid piece character: %c: %w", c, errors.ErrInvalidFEN)
				}
				if col >= chess.BoardSize {
					return fmt.Errorf("rank %d overflows: %w", row+1, errors.ErrInvalidFEN)
				}
				colour := chess.White
				if unicode.IsLower(c) {
					colour = chess.Black
				}
				piece := chess.NewPiece(colour, kind)
				if kind == chess.Pawn {
					piece.Moved = row != pawnStartRow(colour)
				}
				g.Set(chess.Pos(row, col), piece)
				col++
			}
		}
		if col != chess.BoardSize {
			return fmt.Errorf("rank %d has %d files: %w", row+1, col, errors.ErrInvalidFEN)
		}
	}
	return nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(g *GameState, parts []string) error {
	if len(parts) < 2 {
		return nil
	}
	switch parts[1] {
	case "w":
		g.currPlayer = chess.White
	case "b":
		g.currPlayer = chess.Black
	default:
		return fmt.Errorf("invalid side to move: %s: %w", parts[1], errors.ErrInvalidFEN)
	}
	return nil
}

// checkKings enforces one king per colour.
func checkKings(g *GameState) error {
	var kings [2]int
	for piece := range g.Pieces() {
		if piece.Kind == chess.King {
			kings[piece.Colour]++
		}
	}
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		if kings[colour] != 1 {
			return fmt.Errorf("%d %v kings: %w", kings[colour], colour, errors.ErrInvalidFEN)
		}
	}
	return nil
}

func pawnStartRow(colour chess.Colour) int8 {
	if colour == chess.White {
		return 1
	}
	return chess.BoardSize - 2
}

// FEN converts the state to a FEN string.
func (g *GameState) FEN() string {
	var sb strings.Builder

	writePiecePositions(&sb, g)
	sb.WriteByte(' ')
	if g.currPlayer == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteString(" - - 0 1")

	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, g *GameState) {
	for row := int8(chess.BoardSize - 1); row >= 0; row-- {
		emptyCount := 0
		for col := int8(0); col < chess.BoardSize; col++ {
			piece, ok := g.Get(chess.Pos(row, col))
			if !ok {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(piece.Letter())
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if row > 0 {
			sb.WriteByte('/')
		}
	}
}
