package term

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nsf/termbox-go"

	"github.com/lgbarn/schach-go/internal/chess"
	"github.com/lgbarn/schach-go/internal/config"
	"github.com/lgbarn/schach-go/internal/engine"
	"github.com/lgbarn/schach-go/internal/testutil"
	"github.com/lgbarn/schach-go/internal/turn"
)

// grid is an in-memory canvas.
type grid struct {
	cells map[[2]int]rune
	bgs   map[[2]int]termbox.Attribute
}

func newGrid() *grid {
	return &grid{cells: make(map[[2]int]rune), bgs: make(map[[2]int]termbox.Attribute)}
}

func (g *grid) SetCell(x, y int, ch rune, _, bg termbox.Attribute) {
	g.cells[[2]int{x, y}] = ch
	g.bgs[[2]int{x, y}] = bg
}

func (g *grid) line(y, width int) string {
	var sb strings.Builder
	for x := 0; x < width; x++ {
		if r, ok := g.cells[[2]int{x, y}]; ok {
			sb.WriteRune(r)
		} else {
			sb.WriteByte(' ')
		}
	}
	return strings.TrimSpace(sb.String())
}

func newTestApp(t *testing.T, fen string) (*App, *bytes.Buffer) {
	t.Helper()
	log := &bytes.Buffer{}
	cfg := config.NewConfigBuilder().
		WithTicksPerSquare(1).
		WithLog(log).
		WithVerbosity(config.Commentary).
		Build()
	return New(cfg, engine.MustFEN(fen)), log
}

func (a *App) clickAt(t *testing.T, square string, key termbox.Key) termbox.Event {
	t.Helper()
	pos := chess.MustParsePosition(square)
	x, y := a.layout.Centre(float64(pos.Row), float64(pos.Col))
	return termbox.Event{Type: termbox.EventMouse, Key: key, MouseX: x, MouseY: y}
}

func TestTranslate(t *testing.T) {
	a, _ := newTestApp(t, engine.InitialFEN)

	sel, ok := a.translate(a.clickAt(t, "e2", termbox.MouseLeft))
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, sel.Button, turn.Primary)
	testutil.AssertEqual(t, *sel.Position, chess.MustParsePosition("e2"))

	sel, ok = a.translate(a.clickAt(t, "a8", termbox.MouseRight))
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, sel.Button, turn.Secondary)

	sel, ok = a.translate(termbox.Event{Type: termbox.EventMouse, Key: termbox.MouseMiddle, MouseX: 0, MouseY: 0})
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, sel.Button, turn.Tertiary)
	testutil.AssertTrue(t, sel.Position == nil, "click beside the board hits the background")

	_, ok = a.translate(a.clickAt(t, "e2", termbox.MouseRelease))
	testutil.AssertFalse(t, ok, "release is not a selection")

	drag := a.clickAt(t, "e2", termbox.MouseLeft)
	drag.Mod = termbox.ModMotion
	_, ok = a.translate(drag)
	testutil.AssertFalse(t, ok, "drag is not a selection")

	_, ok = a.translate(termbox.Event{Type: termbox.EventKey, Ch: 'e'})
	testutil.AssertFalse(t, ok)
}

func TestHandle(t *testing.T) {
	a, _ := newTestApp(t, engine.InitialFEN)
	var pending []turn.SquareSelectedEvent

	testutil.AssertFalse(t, a.handle(a.clickAt(t, "e2", termbox.MouseLeft), &pending))
	testutil.AssertEqual(t, len(pending), 1)
	testutil.AssertTrue(t, a.hover != nil && *a.hover == chess.MustParsePosition("e2"))

	testutil.AssertFalse(t, a.handle(termbox.Event{Type: termbox.EventResize, Width: 120, Height: 50}, &pending))
	testutil.AssertEqual(t, a.layout, NewLayout(120, 50))

	testutil.AssertTrue(t, a.handle(termbox.Event{Type: termbox.EventKey, Ch: 'q'}, &pending))
	testutil.AssertTrue(t, a.handle(termbox.Event{Type: termbox.EventKey, Key: termbox.KeyEsc}, &pending))
}

func TestApp_PlaysAMove(t *testing.T) {
	a, log := newTestApp(t, engine.InitialFEN)
	a.step(nil)

	var pending []turn.SquareSelectedEvent
	a.handle(a.clickAt(t, "e2", termbox.MouseLeft), &pending)
	a.handle(a.clickAt(t, "e4", termbox.MouseLeft), &pending)
	a.step(pending)

	testutil.AssertEqual(t, a.Controller().State(), turn.AnimateMove)
	testutil.AssertTrue(t, a.anim.Busy())
	testutil.AssertEqual(t, a.Plies(), 1)

	for i := 0; i < 2; i++ {
		a.step(nil)
	}
	testutil.AssertEqual(t, a.Controller().State(), turn.SelectPiece)
	testutil.AssertEqual(t, a.Controller().Game().CurrentPlayer(), chess.Black)
	testutil.AssertContains(t, log.String(), "ply 1: piece 13 e2-e4")
}

func TestApp_GameOverCallback(t *testing.T) {
	a, log := newTestApp(t, "7k/8/6K1/8/8/8/8/1Q6 w - - 0 1")
	var got engine.GameOver
	var plies int
	a.OnGameOver(func(over engine.GameOver, n int) { got, plies = over, n })

	a.step(nil)
	a.step([]turn.SquareSelectedEvent{
		turn.Click(chess.MustParsePosition("b1")),
		turn.Click(chess.MustParsePosition("b8")),
	})
	for i := 0; i < 8 && a.anim.Busy(); i++ {
		a.step(nil)
	}
	a.step(nil)

	testutil.AssertEqual(t, got, engine.GameOver{Ending: engine.Checkmate, Winner: chess.White})
	testutil.AssertEqual(t, plies, 1)
	testutil.AssertContains(t, log.String(), "game over after 1 plies")
}

func TestDraw(t *testing.T) {
	a, _ := newTestApp(t, engine.InitialFEN)
	a.step(nil)
	a.step([]turn.SquareSelectedEvent{turn.Click(chess.MustParsePosition("g1"))})

	g := newGrid()
	a.draw(g)

	at := func(square string) [2]int {
		pos := chess.MustParsePosition(square)
		x, y := a.layout.Centre(float64(pos.Row), float64(pos.Col))
		return [2]int{x, y}
	}
	testutil.AssertEqual(t, g.cells[at("e1")], 'K')
	testutil.AssertEqual(t, g.cells[at("d8")], 'Q')
	testutil.AssertEqual(t, g.cells[at("e4")], ' ')
	testutil.AssertEqual(t, g.bgs[at("g1")], selectedSquare)
	testutil.AssertEqual(t, g.bgs[at("f3")], highlightSquare)
	testutil.AssertEqual(t, g.bgs[at("a1")], darkSquare)
	testutil.AssertEqual(t, g.bgs[at("b1")], lightSquare)

	testutil.AssertEqual(t, g.line(a.layout.StatusY(), a.width), "White to move")
	testutil.AssertEqual(t, g.line(a.layout.StatusY()+1, a.width), help)
}

func TestDraw_MovingPieceLeavesTarget(t *testing.T) {
	a, _ := newTestApp(t, "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	a.cfg.UI.TicksPerSquare = 4
	a.anim = NewAnimator(4)
	a.step(nil)
	a.step([]turn.SquareSelectedEvent{
		turn.Click(chess.MustParsePosition("e4")),
		turn.Click(chess.MustParsePosition("d5")),
	})

	g := newGrid()
	a.draw(g)
	pos := chess.MustParsePosition("d5")
	x, y := a.layout.Centre(float64(pos.Row), float64(pos.Col))
	testutil.AssertEqual(t, g.cells[[2]int{x, y}], 'P', "captured pawn shown until the mover arrives")
	pos = chess.MustParsePosition("e4")
	x, y = a.layout.Centre(float64(pos.Row), float64(pos.Col))
	testutil.AssertEqual(t, g.cells[[2]int{x, y}], 'P', "mover drawn at its start")
}

func TestDraw_HoverHiddenWhileMoving(t *testing.T) {
	a, _ := newTestApp(t, engine.InitialFEN)
	a.step(nil)

	var pending []turn.SquareSelectedEvent
	at := a.clickAt(t, "a3", termbox.MouseRelease)
	a.handle(at, &pending)
	testutil.AssertEqual(t, len(pending), 0)

	g := newGrid()
	a.draw(g)
	testutil.AssertEqual(t, g.bgs[[2]int{at.MouseX, at.MouseY}], hoveredSquare)

	a.step([]turn.SquareSelectedEvent{
		turn.Click(chess.MustParsePosition("e2")),
		turn.Click(chess.MustParsePosition("e4")),
	})
	testutil.AssertTrue(t, a.anim.Busy())
	g = newGrid()
	a.draw(g)
	testutil.AssertEqual(t, g.bgs[[2]int{at.MouseX, at.MouseY}], darkSquare)
}

func TestDraw_Checkmate(t *testing.T) {
	a, _ := newTestApp(t, "7k/6Q1/6K1/8/8/8/8/8 b - - 0 1")
	a.step(nil)

	g := newGrid()
	a.draw(g)
	testutil.AssertEqual(t, g.line(a.layout.StatusY(), a.width), "CHECKMATE!")
	testutil.AssertEqual(t, g.line(a.layout.StatusY()+1, a.width), "White wins!")
}
