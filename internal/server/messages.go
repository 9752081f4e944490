package server

import (
	"fmt"

	"github.com/lgbarn/schach-go/internal/chess"
	"github.com/lgbarn/schach-go/internal/errors"
	"github.com/lgbarn/schach-go/internal/turn"
)

// Message types exchanged with browser clients.
const (
	// Client to server
	TypeSelect            = "select"
	TypeAnimationComplete = "animationComplete"

	// Server to client
	TypeSnapshot   = "snapshot"
	TypeMoved      = "moved"
	TypeRemoved    = "removed"
	TypeHighlights = "highlights"
	TypeStatus     = "status"
	TypeError      = "error"
)

// Message is one JSON frame on the socket. Which fields are set depends
// on Type. Squares are algebraic names such as "e2".
type Message struct {
	Type string `json:"type"`

	// select
	Button string `json:"button,omitempty"`
	Square string `json:"square,omitempty"` // empty means the background

	// animationComplete, moved, removed
	Piece  turn.PieceID `json:"piece,omitempty"`
	Source string       `json:"source,omitempty"`
	Target string       `json:"target,omitempty"`

	// highlights
	Squares []string `json:"squares,omitempty"`

	// status, snapshot
	Status string      `json:"status,omitempty"`
	Over   bool        `json:"over,omitempty"`
	State  string      `json:"state,omitempty"`
	GameID string      `json:"gameID,omitempty"`
	FEN    string      `json:"fen,omitempty"`
	Pieces []PieceView `json:"pieces,omitempty"`

	// error
	Error string `json:"error,omitempty"`
}

// PieceView is a piece as a client draws it.
type PieceView struct {
	Piece  turn.PieceID `json:"piece"`
	Colour string       `json:"colour"`
	Kind   string       `json:"kind"`
	Square string       `json:"square"`
}

var buttons = map[string]turn.Button{
	"":          turn.Primary,
	"primary":   turn.Primary,
	"secondary": turn.Secondary,
	"tertiary":  turn.Tertiary,
}

// decode turns a client message into controller input. Exactly one of the
// results is non-nil on success.
func decode(m Message) (*turn.SquareSelectedEvent, *turn.AnimationCompleteEvent, error) {
	switch m.Type {
	case TypeSelect:
		button, ok := buttons[m.Button]
		if !ok {
			return nil, nil, fmt.Errorf("unknown button %q: %w", m.Button, errors.ErrInvalidMessage)
		}
		sel := turn.SquareSelectedEvent{Button: button}
		if m.Square != "" {
			pos, err := chess.ParsePosition(m.Square)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: %w", err, errors.ErrInvalidMessage)
			}
			sel.Position = &pos
		}
		return &sel, nil, nil

	case TypeAnimationComplete:
		if m.Piece == 0 {
			return nil, nil, fmt.Errorf("animation complete without piece: %w", errors.ErrInvalidMessage)
		}
		return nil, &turn.AnimationCompleteEvent{Piece: m.Piece}, nil

	default:
		return nil, nil, fmt.Errorf("unknown message type %q: %w", m.Type, errors.ErrInvalidMessage)
	}
}

func squareNames(squares []chess.Position) []string {
	names := make([]string, len(squares))
	for i, sq := range squares {
		names[i] = sq.String()
	}
	return names
}

func errorMessage(err error) Message {
	return Message{Type: TypeError, Error: err.Error()}
}
