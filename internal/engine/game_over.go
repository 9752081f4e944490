package engine

import "github.com/lgbarn/schach-go/internal/chess"

// Ending is the way a game finished.
type Ending int8

const (
	Checkmate Ending = iota + 1
	Stalemate
)

// String returns the string representation of an ending.
func (e Ending) String() string {
	switch e {
	case Checkmate:
		return "Checkmate"
	case Stalemate:
		return "Stalemate"
	default:
		return "None"
	}
}

// GameOver describes a finished game. Winner is only meaningful for
// checkmate.
type GameOver struct {
	Ending Ending
	Winner chess.Colour
}

// String returns e.g. "Checkmate, White wins" or "Stalemate".
func (o GameOver) String() string {
	if o.Ending == Checkmate {
		return "Checkmate, " + o.Winner.String() + " wins"
	}
	return o.Ending.String()
}

// Classify decides whether the side to move is checkmated or stalemated.
// It does not modify the state.
func (g *GameState) Classify() (GameOver, bool) {
	if !g.NoLegalMoves() {
		return GameOver{}, false
	}
	if g.IsInCheck(g.currPlayer) {
		return GameOver{Ending: Checkmate, Winner: g.currPlayer.Opposite()}, true
	}
	return GameOver{Ending: Stalemate}, true
}

// EvaluateGameOver classifies the position and records the result the
// first time the game is found to be over. Once recorded the result is
// returned as-is without re-evaluating.
func (g *GameState) EvaluateGameOver() (GameOver, bool) {
	if g.over {
		return g.gameOver, true
	}
	over, ok := g.Classify()
	if ok {
		g.gameOver, g.over = over, true
	}
	return over, ok
}
