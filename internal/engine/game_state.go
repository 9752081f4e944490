// Package engine provides the chess rules: board state, move generation,
// legality filtering and game-over detection.
package engine

import (
	"iter"

	"github.com/lgbarn/schach-go/internal/chess"
	"github.com/lgbarn/schach-go/internal/errors"
)

// backRank is the piece order on each side's first row, from file a to h.
var backRank = [chess.BoardSize]chess.Kind{
	chess.Rook, chess.Knight, chess.Bishop, chess.Queen,
	chess.King, chess.Bishop, chess.Knight, chess.Rook,
}

// GameState is the complete rules-engine state: the board, whose turn it is
// and whether the game has ended.
//
// GameState is a plain value. Copying it (or calling Clone) yields an
// independent board, which is what legality filtering relies on.
type GameState struct {
	// board[row][col]; the zero Piece marks an empty square.
	board [chess.BoardSize][chess.BoardSize]chess.Piece

	currPlayer chess.Colour

	gameOver GameOver
	over     bool
}

// NewGameState creates a game in the standard starting position with
// White to move.
func NewGameState() *GameState {
	g := NewEmptyGameState(chess.White)
	for col := int8(0); col < chess.BoardSize; col++ {
		g.board[0][col] = chess.W(backRank[col])
		g.board[1][col] = chess.W(chess.Pawn)
		g.board[6][col] = chess.B(chess.Pawn)
		g.board[7][col] = chess.B(backRank[col])
	}
	return g
}

// NewEmptyGameState creates a game with an empty board and the given side
// to move. Callers are expected to place both kings before querying it.
func NewEmptyGameState(toMove chess.Colour) *GameState {
	return &GameState{currPlayer: toMove}
}

// Clone returns an independent copy of the state.
func (g *GameState) Clone() *GameState {
	c := *g
	return &c
}

// CurrentPlayer returns the colour whose turn it is.
func (g *GameState) CurrentPlayer() chess.Colour {
	return g.currPlayer
}

// GameOver returns the stored game-over classification, if any.
func (g *GameState) GameOver() (GameOver, bool) {
	return g.gameOver, g.over
}

// Get returns the piece at pos. The boolean is false both for empty squares
// and for positions off the board.
func (g *GameState) Get(pos chess.Position) (chess.Piece, bool) {
	if !pos.InBounds() {
		return chess.Piece{}, false
	}
	p := g.board[pos.Row][pos.Col]
	return p, !p.IsEmpty()
}

// Set replaces the occupant of pos with piece and returns the previous
// occupant. Passing the zero Piece empties the square. Off-board positions
// are ignored and report no previous occupant.
func (g *GameState) Set(pos chess.Position, piece chess.Piece) (chess.Piece, bool) {
	if !pos.InBounds() {
		return chess.Piece{}, false
	}
	prev := g.board[pos.Row][pos.Col]
	g.board[pos.Row][pos.Col] = piece
	return prev, !prev.IsEmpty()
}

// ApplyMovement moves the piece on from to to and returns the piece that
// was captured on to, if any. A pawn is marked as moved.
//
// Both squares must be on the board and from must be occupied. Violations
// are caller bugs and panic with an error wrapping errors.ErrPrecondition.
func (g *GameState) ApplyMovement(from, to chess.Position) (chess.Piece, bool) {
	const op = "apply movement"
	if !from.InBounds() {
		panic(errors.Precondition(op, from.String(), "source is off the board"))
	}
	if !to.InBounds() {
		panic(errors.Precondition(op, to.String(), "target is off the board"))
	}
	piece, ok := g.Get(from)
	if !ok {
		panic(errors.Precondition(op, from.String(), "no piece on source square"))
	}
	if piece.Kind == chess.Pawn {
		piece.Moved = true
	}
	g.Set(from, chess.Piece{})
	return g.Set(to, piece)
}

// AdvanceTurn passes the move to the other player.
func (g *GameState) AdvanceTurn() {
	g.currPlayer = g.currPlayer.Opposite()
}

// Pieces yields every piece on the board with its position, scanning rows
// from 0 upward and columns within a row from a to h. The sequence can be
// ranged over any number of times.
func (g *GameState) Pieces() iter.Seq2[chess.Piece, chess.Position] {
	return func(yield func(chess.Piece, chess.Position) bool) {
		for row := int8(0); row < chess.BoardSize; row++ {
			for col := int8(0); col < chess.BoardSize; col++ {
				p := g.board[row][col]
				if p.IsEmpty() {
					continue
				}
				if !yield(p, chess.Pos(row, col)) {
					return
				}
			}
		}
	}
}
