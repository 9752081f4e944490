package turn

import "github.com/lgbarn/schach-go/internal/chess"

// PieceID identifies one piece for display collaborators across moves.
// The zero value identifies no piece.
type PieceID int

// Button is the pointer button that produced a selection.
type Button int8

const (
	Primary Button = iota
	Secondary
	Tertiary
)

// String returns the string representation of a button.
func (b Button) String() string {
	switch b {
	case Primary:
		return "primary"
	case Secondary:
		return "secondary"
	case Tertiary:
		return "tertiary"
	default:
		return "unknown"
	}
}

// SquareSelectedEvent is a click on the board. A nil Position means the
// click hit the background or nothing pickable.
type SquareSelectedEvent struct {
	Button   Button
	Position *chess.Position
}

// Click returns a primary-button selection of pos.
func Click(pos chess.Position) SquareSelectedEvent {
	return SquareSelectedEvent{Button: Primary, Position: &pos}
}

// BackgroundClick returns a primary-button selection that hit no square.
func BackgroundClick() SquareSelectedEvent {
	return SquareSelectedEvent{Button: Primary}
}

// AnimationCompleteEvent reports that the move animation of Piece finished.
type AnimationCompleteEvent struct {
	Piece PieceID
}

// PieceMovedEvent tells display collaborators to start animating Piece
// from Source to Target.
type PieceMovedEvent struct {
	Piece  PieceID
	Source chess.Position
	Target chess.Position
}

// PieceRemovedEvent tells display collaborators that a captured piece is
// gone. Square is where it was captured.
type PieceRemovedEvent struct {
	Piece  PieceID
	Square chess.Position
}

// Sink receives the controller's outbound effects. Calls are made
// synchronously from Tick.
type Sink interface {
	PieceMoved(PieceMovedEvent)
	PieceRemoved(PieceRemovedEvent)
	HighlightsChanged(squares []chess.Position)
	StatusChanged(Status)
}

// NopSink discards every effect. Useful for collaborators that poll the
// controller instead.
type NopSink struct{}

func (NopSink) PieceMoved(PieceMovedEvent) {}
func (NopSink) PieceRemoved(PieceRemovedEvent) {}
func (NopSink) HighlightsChanged([]chess.Position) {}
func (NopSink) StatusChanged(Status) {}
