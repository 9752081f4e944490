package engine

import (
	"slices"

	"github.com/lgbarn/schach-go/internal/chess"
	"github.com/lgbarn/schach-go/internal/errors"
)

// KingPosition returns the square of colour's king. Every reachable state
// has one king per colour, so a missing king panics.
func (g *GameState) KingPosition(colour chess.Colour) chess.Position {
	for piece, pos := range g.Pieces() {
		if piece.Kind == chess.King && piece.Colour == colour {
			return pos
		}
	}
	panic(errors.Precondition("find king", "", "no %v king on the board", colour))
}

// IsInCheck returns true if the given colour's king is among the capture
// squares of any opposing piece.
func (g *GameState) IsInCheck(colour chess.Colour) bool {
	kingPos := g.KingPosition(colour)
	for piece, pos := range g.Pieces() {
		if piece.Colour == colour {
			continue
		}
		// Check is about capture squares only.
		_, captures := g.PseudoMovesAndCaptures(piece, pos)
		if slices.Contains(captures, kingPos) {
			return true
		}
	}
	return false
}
