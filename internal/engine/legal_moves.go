package engine

import "github.com/lgbarn/schach-go/internal/chess"

// MovesAndCaptures returns the legal destinations of piece standing on pos:
// the pseudo moves and captures that do not leave the mover's own king in
// check.
//
// Each candidate is tried on a copy of the whole state, so the cost grows
// with the number of candidates times a full board scan. That is fine for
// interactive play.
func (g *GameState) MovesAndCaptures(piece chess.Piece, pos chess.Position) (moves, captures []chess.Position) {
	pseudoMoves, pseudoCaptures := g.PseudoMovesAndCaptures(piece, pos)
	return g.keepSafe(piece.Colour, pos, pseudoMoves), g.keepSafe(piece.Colour, pos, pseudoCaptures)
}

// keepSafe filters targets down to those that leave colour's king safe.
func (g *GameState) keepSafe(colour chess.Colour, from chess.Position, targets []chess.Position) []chess.Position {
	var out []chess.Position
	for _, to := range targets {
		if g.leavesKingSafe(colour, from, to) {
			out = append(out, to)
		}
	}
	return out
}

// leavesKingSafe plays from-to on a copy of the state and reports whether
// colour's king is out of check afterwards.
func (g *GameState) leavesKingSafe(colour chess.Colour, from, to chess.Position) bool {
	sim := g.Clone()
	sim.ApplyMovement(from, to)
	sim.AdvanceTurn()
	return !sim.IsInCheck(colour)
}

// NoLegalMoves reports whether the side to move has no legal move or
// capture with any of its pieces.
func (g *GameState) NoLegalMoves() bool {
	for piece, pos := range g.Pieces() {
		if piece.Colour != g.currPlayer {
			continue
		}
		moves, captures := g.MovesAndCaptures(piece, pos)
		if len(moves) > 0 || len(captures) > 0 {
			return false
		}
	}
	return true
}
