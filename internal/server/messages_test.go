package server

import (
	"testing"

	"github.com/lgbarn/schach-go/internal/chess"
	"github.com/lgbarn/schach-go/internal/errors"
	"github.com/lgbarn/schach-go/internal/testutil"
	"github.com/lgbarn/schach-go/internal/turn"
)

func TestDecode(t *testing.T) {
	sel, done, err := decode(Message{Type: TypeSelect, Square: "E2"})
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, done == nil)
	testutil.AssertEqual(t, sel.Button, turn.Primary, "button defaults to primary")
	testutil.AssertEqual(t, *sel.Position, chess.MustParsePosition("e2"))

	sel, _, err = decode(Message{Type: TypeSelect, Button: "secondary"})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sel.Button, turn.Secondary)
	testutil.AssertTrue(t, sel.Position == nil, "no square is a background click")

	sel, done, err = decode(Message{Type: TypeAnimationComplete, Piece: 13})
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, sel == nil)
	testutil.AssertEqual(t, *done, turn.AnimationCompleteEvent{Piece: 13})
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
	}{
		{"unknown type", Message{Type: "resign"}},
		{"missing type", Message{}},
		{"bad button", Message{Type: TypeSelect, Button: "left"}},
		{"bad square", Message{Type: TypeSelect, Square: "z9"}},
		{"completion without piece", Message{Type: TypeAnimationComplete}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := decode(tt.msg)
			if !errors.Is(err, errors.ErrInvalidMessage) {
				t.Errorf("decode() error = %v; want ErrInvalidMessage", err)
			}
		})
	}
}

func TestDecode_BadSquareKeepsCause(t *testing.T) {
	_, _, err := decode(Message{Type: TypeSelect, Square: "i1"})
	testutil.AssertTrue(t, errors.Is(err, errors.ErrInvalidMessage))
	testutil.AssertTrue(t, errors.Is(err, errors.ErrInvalidPosition))
}
