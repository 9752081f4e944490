package engine

import (
	"testing"

	"github.com/lgbarn/schach-go/internal/chess"
	"github.com/lgbarn/schach-go/internal/errors"
	"github.com/lgbarn/schach-go/internal/testutil"
)

func sq(name string) chess.Position {
	return chess.MustParsePosition(name)
}

func TestNewGameState(t *testing.T) {
	g := NewGameState()

	if g.CurrentPlayer() != chess.White {
		t.Errorf("CurrentPlayer() = %v; want White", g.CurrentPlayer())
	}
	if _, over := g.GameOver(); over {
		t.Error("new game should not be over")
	}

	tests := []struct {
		square string
		piece  chess.Piece
	}{
		{"a1", chess.W(chess.Rook)},
		{"b1", chess.W(chess.Knight)},
		{"c1", chess.W(chess.Bishop)},
		{"d1", chess.W(chess.Queen)},
		{"e1", chess.W(chess.King)},
		{"e2", chess.W(chess.Pawn)},
		{"d8", chess.B(chess.Queen)},
		{"e8", chess.B(chess.King)},
		{"h7", chess.B(chess.Pawn)},
	}
	for _, tt := range tests {
		got, ok := g.Get(sq(tt.square))
		if !ok || got != tt.piece {
			t.Errorf("Get(%s) = %v, %v; want %v", tt.square, got, ok, tt.piece)
		}
	}

	for _, name := range []string{"a3", "d4", "e5", "h6"} {
		if _, ok := g.Get(sq(name)); ok {
			t.Errorf("Get(%s) reports a piece on an empty square", name)
		}
	}
}

func TestGet_OffBoardLooksEmpty(t *testing.T) {
	g := NewGameState()
	for _, pos := range []chess.Position{chess.Pos(-1, 0), chess.Pos(0, 8), chess.Pos(8, 8)} {
		if p, ok := g.Get(pos); ok || !p.IsEmpty() {
			t.Errorf("Get(%v) = %v, %v; want empty, false", pos, p, ok)
		}
	}
}

func TestSet(t *testing.T) {
	g := NewEmptyGameState(chess.White)

	if prev, ok := g.Set(sq("d4"), chess.W(chess.Queen)); ok {
		t.Errorf("Set on empty square returned previous %v", prev)
	}
	prev, ok := g.Set(sq("d4"), chess.B(chess.Rook))
	if !ok || prev != chess.W(chess.Queen) {
		t.Errorf("Set returned %v, %v; want White Queen, true", prev, ok)
	}
	if got, _ := g.Get(sq("d4")); got != chess.B(chess.Rook) {
		t.Errorf("Get(d4) = %v; want Black Rook", got)
	}

	if _, ok := g.Set(chess.Pos(9, 0), chess.W(chess.King)); ok {
		t.Error("Set off the board should be a no-op")
	}

	g.Set(sq("d4"), chess.Piece{})
	if _, ok := g.Get(sq("d4")); ok {
		t.Error("setting the zero piece should empty the square")
	}
}

func TestApplyMovement_PawnOpening(t *testing.T) {
	g := NewGameState()

	captured, ok := g.ApplyMovement(sq("e2"), sq("e4"))
	if ok {
		t.Errorf("ApplyMovement(e2, e4) captured %v; want nothing", captured)
	}

	pawn, ok := g.Get(sq("e4"))
	if !ok || pawn.Kind != chess.Pawn || !pawn.Moved {
		t.Fatalf("Get(e4) = %+v; want moved White Pawn", pawn)
	}
	if _, ok := g.Get(sq("e2")); ok {
		t.Error("e2 should be empty after the move")
	}

	moves, captures := g.MovesAndCaptures(pawn, sq("e4"))
	testutil.AssertSquares(t, moves, testutil.Squares("e5"), "moves from e4")
	testutil.AssertSquares(t, captures, nil, "captures from e4")
}

func TestApplyMovement_ReturnsCapturedPiece(t *testing.T) {
	g := MustFEN("4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")

	captured, ok := g.ApplyMovement(sq("e4"), sq("d5"))
	if !ok || captured.Kind != chess.Pawn || captured.Colour != chess.Black {
		t.Errorf("ApplyMovement(e4, d5) = %v, %v; want Black Pawn, true", captured, ok)
	}
	if got, _ := g.Get(sq("d5")); got.Colour != chess.White {
		t.Errorf("d5 holds %v; want the White pawn", got)
	}
}

func TestApplyMovement_RoundTripKeepsMovedFlag(t *testing.T) {
	g := NewGameState()
	g.ApplyMovement(sq("e2"), sq("e4"))
	g.ApplyMovement(sq("e4"), sq("e2"))

	pawn, ok := g.Get(sq("e2"))
	if !ok || pawn.Kind != chess.Pawn {
		t.Fatalf("Get(e2) = %v, %v; want White Pawn", pawn, ok)
	}
	if !pawn.Moved {
		t.Error("moved flag must not be reset by moving back")
	}
	if _, ok := g.Get(sq("e4")); ok {
		t.Error("e4 should be empty after moving back")
	}

	knight := NewGameState()
	knight.ApplyMovement(sq("g1"), sq("f3"))
	knight.ApplyMovement(sq("f3"), sq("g1"))
	if knight.FEN() != NewGameState().FEN() {
		t.Errorf("knight round trip FEN = %q; want starting position", knight.FEN())
	}
}

func TestApplyMovement_Preconditions(t *testing.T) {
	tests := []struct {
		name     string
		from, to chess.Position
	}{
		{"empty source", sq("e4"), sq("e5")},
		{"source off board", chess.Pos(-1, 4), sq("e5")},
		{"target off board", sq("e2"), chess.Pos(8, 4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGameState()
			before := g.FEN()

			recovered := testutil.ExpectPanic(t, func() { g.ApplyMovement(tt.from, tt.to) })
			err, ok := recovered.(error)
			if !ok || !errors.Is(err, errors.ErrPrecondition) {
				t.Errorf("panic value = %v; want error wrapping ErrPrecondition", recovered)
			}
			if g.FEN() != before {
				t.Error("failed ApplyMovement must not change the board")
			}
		})
	}
}

func TestAdvanceTurn(t *testing.T) {
	g := NewGameState()
	g.AdvanceTurn()
	if g.CurrentPlayer() != chess.Black {
		t.Errorf("CurrentPlayer() = %v; want Black", g.CurrentPlayer())
	}
	g.AdvanceTurn()
	if g.CurrentPlayer() != chess.White {
		t.Errorf("CurrentPlayer() = %v; want White", g.CurrentPlayer())
	}
}

func TestClone_IsIndependent(t *testing.T) {
	g := NewGameState()
	c := g.Clone()
	c.ApplyMovement(sq("e2"), sq("e4"))
	c.AdvanceTurn()

	if g.FEN() == c.FEN() {
		t.Error("mutating the clone changed the original")
	}
	if p, _ := g.Get(sq("e2")); p.Moved {
		t.Error("clone shares piece state with the original")
	}
}

func TestPieces_ScanOrder(t *testing.T) {
	g := NewGameState()

	var got []chess.Position
	for _, pos := range g.Pieces() {
		got = append(got, pos)
	}
	if len(got) != 32 {
		t.Fatalf("Pieces() yielded %d pieces; want 32", len(got))
	}
	for i := 1; i < len(got); i++ {
		prev, cur := got[i-1], got[i]
		if cur.Row < prev.Row || (cur.Row == prev.Row && cur.Col <= prev.Col) {
			t.Fatalf("Pieces() yielded %v after %v; want row-major order", cur, prev)
		}
	}
	if got[0] != sq("a1") || got[31] != sq("h8") {
		t.Errorf("Pieces() spans %v..%v; want a1..h8", got[0], got[31])
	}
}

func TestPieces_Restartable(t *testing.T) {
	g := NewGameState()
	seq := g.Pieces()

	count := func() int {
		n := 0
		for range seq {
			n++
		}
		return n
	}
	if a, b := count(), count(); a != b || a != 32 {
		t.Errorf("ranging twice gave %d and %d pieces; want 32 both times", a, b)
	}

	// Early exit must be honoured.
	n := 0
	for range seq {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Errorf("break after 3 pieces yielded %d", n)
	}
}
