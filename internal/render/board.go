// Package render draws a game as a text board, coloured for terminals.
package render

import (
	"io"
	"slices"
	"strings"

	"github.com/fatih/color"

	"github.com/lgbarn/schach-go/internal/chess"
	"github.com/lgbarn/schach-go/internal/engine"
)

// Options controls what is marked on the board.
type Options struct {
	// Highlights are legal destinations to mark
	Highlights []chess.Position

	// Selected is the square of the picked piece, if any
	Selected *chess.Position

	// Plain disables colour. Marks are then drawn with brackets instead.
	Plain bool
}

// Square backgrounds. Dark squares are those where row+col is even, so a1
// is dark.
var (
	darkSquare      = color.BgBlack
	lightSquare     = color.BgWhite
	highlightSquare = color.BgGreen
	selectedSquare  = color.BgRed

	whitePiece = color.FgHiWhite
	blackPiece = color.FgHiBlue
)

// Dark reports whether pos is a dark square.
func Dark(pos chess.Position) bool {
	return (pos.Row+pos.Col)%2 == 0
}

// Board returns g drawn as text with rank 8 on top.
func Board(g *engine.GameState, opts Options) string {
	var sb strings.Builder
	for row := int8(chess.BoardSize - 1); row >= 0; row-- {
		sb.WriteByte(byte('1' + row))
		sb.WriteByte(' ')
		for col := int8(0); col < chess.BoardSize; col++ {
			sb.WriteString(cell(g, chess.Pos(row, col), opts))
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   a  b  c  d  e  f  g  h\n")
	return sb.String()
}

// Write writes the board to w.
func Write(w io.Writer, g *engine.GameState, opts Options) error {
	_, err := io.WriteString(w, Board(g, opts))
	return err
}

// cell renders one square three characters wide.
func cell(g *engine.GameState, pos chess.Position, opts Options) string {
	piece, occupied := g.Get(pos)
	letter := "."
	if occupied {
		letter = string(piece.Letter())
	}

	selected := opts.Selected != nil && *opts.Selected == pos
	highlighted := slices.Contains(opts.Highlights, pos)

	if opts.Plain {
		switch {
		case selected:
			return "[" + letter + "]"
		case highlighted && !occupied:
			return " * "
		case highlighted:
			return "(" + letter + ")"
		default:
			return " " + letter + " "
		}
	}

	bg := lightSquare
	switch {
	case selected:
		bg = selectedSquare
	case highlighted:
		bg = highlightSquare
	case Dark(pos):
		bg = darkSquare
	}
	c := color.New(bg)
	if occupied {
		fg := whitePiece
		if piece.Colour == chess.Black {
			fg = blackPiece
		}
		c.Add(fg, color.Bold)
	} else {
		letter = " "
	}
	c.EnableColor()
	return c.Sprint(" " + letter + " ")
}
