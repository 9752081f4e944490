// Package turn drives one game through its turns: picking a piece, showing
// its legal destinations, committing a move, waiting for the move to be
// animated, resolving the capture and handing over to the other player.
package turn

import (
	"slices"

	"github.com/lgbarn/schach-go/internal/chess"
	"github.com/lgbarn/schach-go/internal/engine"
)

// State is a step of the turn cycle.
type State int8

const (
	CheckForGameOver State = iota
	SelectPiece
	ShowHighlights
	SelectTarget
	AnimateMove
	CheckCapture
	EndTurn
)

// String returns the string representation of a state.
func (s State) String() string {
	names := []string{
		"CheckForGameOver", "SelectPiece", "ShowHighlights", "SelectTarget",
		"AnimateMove", "CheckCapture", "EndTurn",
	}
	if s >= 0 && int(s) < len(names) {
		return names[s]
	}
	return "Unknown"
}

// Controller is the turn state machine for one game. It is not safe for
// concurrent use; callers serialize Tick and the accessors.
type Controller struct {
	game   *engine.GameState
	roster *Roster
	sink   Sink

	state State

	// Transient selection, cleared at EndTurn.
	selected   chess.Position
	movePiece  PieceID
	hasPiece   bool
	moveTarget chess.Position
	captured   PieceID
	hasCapture bool

	highlights []chess.Position
	status     Status
	reported   bool
}

// NewController creates a controller for game. Effects are delivered to
// sink; a nil sink discards them.
func NewController(game *engine.GameState, sink Sink) *Controller {
	if sink == nil {
		sink = NopSink{}
	}
	return &Controller{
		game:   game,
		roster: NewRoster(game),
		sink:   sink,
		state:  CheckForGameOver,
		status: statusOf(game),
	}
}

// Game returns the rules state the controller mutates. Callers must not
// modify it.
func (c *Controller) Game() *engine.GameState { return c.game }

// Roster returns the piece identities the controller maintains.
func (c *Controller) Roster() *Roster { return c.roster }

// State returns the current step of the turn cycle.
func (c *Controller) State() State { return c.state }

// Status returns the last status reported to the sink.
func (c *Controller) Status() Status { return c.status }

// Highlights returns the legal destinations currently shown.
func (c *Controller) Highlights() []chess.Position {
	return slices.Clone(c.highlights)
}

// Selected returns the square of the piece picked this turn, if any.
func (c *Controller) Selected() (chess.Position, bool) {
	return c.selected, c.hasPiece
}

// Moving returns the piece being animated while the controller waits in
// AnimateMove.
func (c *Controller) Moving() (PieceMovedEvent, bool) {
	if c.state != AnimateMove {
		return PieceMovedEvent{}, false
	}
	return PieceMovedEvent{Piece: c.movePiece, Source: c.selected, Target: c.moveTarget}, true
}

// Tick runs the machine until it needs input it does not have. Selections
// are consumed in order while a piece or target is awaited; completions
// while a move is being animated. Events that arrive in any other state are
// dropped. Once the game is over Tick does nothing.
func (c *Controller) Tick(selections []SquareSelectedEvent, completions []AnimationCompleteEvent) {
	if _, over := c.game.GameOver(); over {
		return
	}

	for {
		switch c.state {
		case CheckForGameOver:
			_, over := c.game.EvaluateGameOver()
			c.report(statusOf(c.game))
			if over {
				return
			}
			c.state = SelectPiece

		case SelectPiece:
			ev, ok := next(&selections)
			if !ok {
				return
			}
			c.selectPiece(ev)

		case ShowHighlights:
			piece, _ := c.game.Get(c.selected)
			moves, captures := c.game.MovesAndCaptures(piece, c.selected)
			c.setHighlights(append(moves, captures...))
			c.state = SelectTarget

		case SelectTarget:
			ev, ok := next(&selections)
			if !ok {
				return
			}
			c.selectTarget(ev)

		case AnimateMove:
			selections = nil
			if !c.awaitAnimation(&completions) {
				return
			}
			c.state = CheckCapture

		case CheckCapture:
			if c.hasCapture {
				c.roster.Remove(c.captured)
				c.sink.PieceRemoved(PieceRemovedEvent{Piece: c.captured, Square: c.moveTarget})
			}
			c.state = EndTurn

		case EndTurn:
			c.clearSelection()
			c.game.AdvanceTurn()
			c.state = CheckForGameOver
		}
	}
}

// next pops the first event off queue.
func next(queue *[]SquareSelectedEvent) (SquareSelectedEvent, bool) {
	if len(*queue) == 0 {
		return SquareSelectedEvent{}, false
	}
	ev := (*queue)[0]
	*queue = (*queue)[1:]
	return ev, true
}

// ownPiece reports whether ev picked a piece of the side to move.
func (c *Controller) ownPiece(ev SquareSelectedEvent) bool {
	if ev.Position == nil {
		return false
	}
	piece, ok := c.game.Get(*ev.Position)
	return ok && piece.Colour == c.game.CurrentPlayer()
}

func (c *Controller) selectPiece(ev SquareSelectedEvent) {
	if ev.Button != Primary {
		return
	}
	if c.ownPiece(ev) {
		c.pick(*ev.Position)
		return
	}
	c.clearSelection()
}

func (c *Controller) selectTarget(ev SquareSelectedEvent) {
	if ev.Button != Primary {
		return
	}
	switch {
	case c.ownPiece(ev):
		c.pick(*ev.Position)
	case ev.Position != nil && slices.Contains(c.highlights, *ev.Position):
		c.commit(*ev.Position)
	default:
		c.clearSelection()
		c.setHighlights(nil)
		c.state = SelectPiece
	}
}

// pick remembers the piece on pos as the one to move.
func (c *Controller) pick(pos chess.Position) {
	id, _ := c.roster.At(pos)
	c.selected, c.movePiece, c.hasPiece = pos, id, true
	c.state = ShowHighlights
}

// commit plays the selected piece to target on the engine and starts the
// animation. The captured piece stays displayed until CheckCapture.
func (c *Controller) commit(target chess.Position) {
	c.moveTarget = target
	if id, ok := c.roster.At(target); ok {
		c.captured, c.hasCapture = id, true
	}
	c.game.ApplyMovement(c.selected, target)
	c.roster.Move(c.movePiece, target)

	c.sink.PieceMoved(PieceMovedEvent{Piece: c.movePiece, Source: c.selected, Target: target})
	c.setHighlights(nil)
	c.state = AnimateMove
}

// awaitAnimation consumes completions up to the one matching the moving
// piece. Non-matching completions are dropped.
func (c *Controller) awaitAnimation(completions *[]AnimationCompleteEvent) bool {
	for i, done := range *completions {
		if done.Piece == c.movePiece {
			*completions = (*completions)[i+1:]
			return true
		}
	}
	*completions = nil
	return false
}

func (c *Controller) clearSelection() {
	c.selected, c.movePiece, c.hasPiece = chess.Position{}, 0, false
	c.moveTarget = chess.Position{}
	c.captured, c.hasCapture = 0, false
}

func (c *Controller) setHighlights(squares []chess.Position) {
	if len(squares) == 0 && len(c.highlights) == 0 {
		return
	}
	c.highlights = squares
	c.sink.HighlightsChanged(slices.Clone(squares))
}

// report forwards status to the sink when it differs from the last one.
func (c *Controller) report(status Status) {
	if c.reported && status == c.status {
		return
	}
	c.status, c.reported = status, true
	c.sink.StatusChanged(status)
}
