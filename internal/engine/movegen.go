package engine

import (
	"github.com/lgbarn/schach-go/internal/chess"
	"github.com/lgbarn/schach-go/internal/errors"
)

// candidates accumulates destination squares while generating moves for
// one piece. Quiet moves and captures are kept apart.
type candidates struct {
	moves    []chess.Position
	captures []chess.Position
}

// PseudoMovesAndCaptures returns the squares piece can reach from pos by its
// movement rules and board occupancy alone. Moves land on empty squares,
// captures on enemy pieces. Whether the move leaves the mover's own king in
// check is not considered.
func (g *GameState) PseudoMovesAndCaptures(piece chess.Piece, pos chess.Position) (moves, captures []chess.Position) {
	var c candidates

	switch piece.Kind {
	case chess.King:
		for _, dir := range chess.AllDirs {
			g.probe(&c, piece.Colour, pos.Add(dir))
		}

	case chess.Queen:
		g.castLines(&c, piece.Colour, pos, chess.AllDirs)

	case chess.Rook:
		g.castLines(&c, piece.Colour, pos, chess.OrthogonalDirs)

	case chess.Bishop:
		g.castLines(&c, piece.Colour, pos, chess.DiagonalDirs)

	case chess.Knight:
		// Each diagonal step extended along one axis gives the two
		// L-shaped squares on that side.
		for _, dir := range chess.DiagonalDirs {
			g.probe(&c, piece.Colour, pos.Add(chess.Offset{Row: 2 * dir.Row, Col: dir.Col}))
			g.probe(&c, piece.Colour, pos.Add(chess.Offset{Row: dir.Row, Col: 2 * dir.Col}))
		}

	case chess.Pawn:
		g.pawnMoves(&c, piece, pos)

	default:
		panic(errors.Precondition("generate moves", pos.String(), "no movement rule for %v", piece.Kind))
	}

	return c.moves, c.captures
}

// probe classifies a single destination square: empty squares are moves,
// enemy pieces are captures, friendly pieces and off-board squares are
// dropped.
func (g *GameState) probe(c *candidates, colour chess.Colour, to chess.Position) {
	if !to.InBounds() {
		return
	}
	target, occupied := g.Get(to)
	switch {
	case !occupied:
		c.moves = append(c.moves, to)
	case target.Colour != colour:
		c.captures = append(c.captures, to)
	}
}

// castLines walks from pos along each direction one square at a time. A ray
// stops at the first piece it meets; an enemy piece there is a capture.
func (g *GameState) castLines(c *candidates, colour chess.Colour, pos chess.Position, dirs []chess.Offset) {
	for _, dir := range dirs {
		for to := pos.Add(dir); to.InBounds(); to = to.Add(dir) {
			target, occupied := g.Get(to)
			if !occupied {
				c.moves = append(c.moves, to)
				continue
			}
			if target.Colour != colour {
				c.captures = append(c.captures, to)
			}
			break // Blocked
		}
	}
}

// pawnMoves adds the forward pushes and diagonal captures of a pawn.
func (g *GameState) pawnMoves(c *candidates, piece chess.Piece, pos chess.Position) {
	fwd := chess.Offset{Row: piece.Colour.Forward()}

	one := pos.Add(fwd)
	if one.InBounds() && g.isEmpty(one) {
		c.moves = append(c.moves, one)

		two := one.Add(fwd)
		if !piece.Moved && two.InBounds() && g.isEmpty(two) {
			c.moves = append(c.moves, two)
		}
	}

	for _, side := range []int8{-1, 1} {
		to := pos.Add(chess.Offset{Row: fwd.Row, Col: side})
		if target, ok := g.Get(to); ok && target.Colour != piece.Colour {
			c.captures = append(c.captures, to)
		}
	}
}

func (g *GameState) isEmpty(pos chess.Position) bool {
	_, occupied := g.Get(pos)
	return !occupied
}
