package turn

import (
	"fmt"

	"github.com/lgbarn/schach-go/internal/chess"
	"github.com/lgbarn/schach-go/internal/engine"
)

// Status is what a status display shows: whose turn it is, or how the game
// ended.
type Status struct {
	ToMove chess.Colour
	Ending engine.Ending // zero while the game is running
	Winner chess.Colour  // only meaningful for checkmate
}

func statusOf(g *engine.GameState) Status {
	if over, ok := g.GameOver(); ok {
		return Status{ToMove: g.CurrentPlayer(), Ending: over.Ending, Winner: over.Winner}
	}
	return Status{ToMove: g.CurrentPlayer()}
}

// Over reports whether the game has ended.
func (s Status) Over() bool {
	return s.Ending != 0
}

// String returns the status line text.
func (s Status) String() string {
	switch s.Ending {
	case engine.Checkmate:
		return fmt.Sprintf("CHECKMATE!\n%v wins!", s.Winner)
	case engine.Stalemate:
		return "STALEMATE"
	default:
		return fmt.Sprintf("%v to move", s.ToMove)
	}
}
