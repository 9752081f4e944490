package term

import (
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/nsf/termbox-go"

	"github.com/lgbarn/schach-go/internal/chess"
	"github.com/lgbarn/schach-go/internal/turn"
)

// statusLines is the height reserved for the status text.
const statusLines = 2

const help = "click a piece, then its destination; q quits"

// Square and piece colours.
const (
	lightSquare     = termbox.ColorYellow
	darkSquare      = termbox.ColorGreen
	hoveredSquare   = termbox.ColorMagenta
	selectedSquare  = termbox.ColorRed
	highlightSquare = termbox.ColorCyan

	whitePiece = termbox.ColorWhite | termbox.AttrBold
	blackPiece = termbox.ColorBlack | termbox.AttrBold
	labelFg    = termbox.ColorDefault
)

// canvas is the drawing surface. The terminal implements it through
// termbox; tests use a grid.
type canvas interface {
	SetCell(x, y int, ch rune, fg, bg termbox.Attribute)
}

// screen draws to the termbox back buffer.
type screen struct{}

func (screen) SetCell(x, y int, ch rune, fg, bg termbox.Attribute) {
	termbox.SetCell(x, y, ch, fg, bg)
}

// draw paints the board, the pieces and the status text. Clicks are not
// taken while a piece moves, so hover is not shown then.
func (a *App) draw(c canvas) {
	selected, hasSelection := a.ctrl.Selected()
	highlights := a.ctrl.Highlights()

	background := func(pos chess.Position) termbox.Attribute {
		switch {
		case hasSelection && pos == selected:
			return selectedSquare
		case slices.Contains(highlights, pos):
			return highlightSquare
		case a.hover != nil && *a.hover == pos && !a.anim.Busy():
			return hoveredSquare
		case (pos.Row+pos.Col)%2 == 0:
			return darkSquare
		default:
			return lightSquare
		}
	}

	for row := int8(0); row < chess.BoardSize; row++ {
		for col := int8(0); col < chess.BoardSize; col++ {
			pos := chess.Pos(row, col)
			x0, y0 := a.layout.Origin(float64(row), float64(col))
			bg := background(pos)
			for y := y0; y < y0+cellHeight; y++ {
				for x := x0; x < x0+cellWidth; x++ {
					c.SetCell(x, y, ' ', labelFg, bg)
				}
			}
		}
		_, y := a.layout.Centre(float64(row), 0)
		c.SetCell(a.layout.X-2, y, rune('1'+row), labelFg, termbox.ColorDefault)
	}
	for col := int8(0); col < chess.BoardSize; col++ {
		x, _ := a.layout.Centre(0, float64(col))
		c.SetCell(x, a.layout.Y+boardHeight, rune('a'+col), labelFg, termbox.ColorDefault)
	}

	// Resting pieces first so moving ones are drawn over them.
	var moving []turn.RosterEntry
	for _, entry := range a.ctrl.Roster().Entries() {
		if _, _, ok := a.anim.Where(entry.ID); ok {
			moving = append(moving, entry)
			continue
		}
		x, y := a.layout.Centre(float64(entry.Position.Row), float64(entry.Position.Col))
		drawPiece(c, x, y, entry.Piece, background(entry.Position))
	}
	for _, entry := range moving {
		row, col, _ := a.anim.Where(entry.ID)
		x, y := a.layout.Centre(row, col)
		bg := lightSquare
		if pos, ok := a.layout.SquareAt(x, y); ok {
			bg = background(pos)
		}
		drawPiece(c, x, y, entry.Piece, bg)
	}

	lines := strings.Split(a.status.String(), "\n")
	lines = append(lines, help)
	for i, line := range lines {
		a.drawCentred(c, a.layout.StatusY()+i, line)
	}
}

func drawPiece(c canvas, x, y int, piece chess.Piece, bg termbox.Attribute) {
	fg := whitePiece
	if piece.Colour == chess.Black {
		fg = blackPiece
	}
	c.SetCell(x, y, rune(piece.Kind.Letter()), fg, bg)
}

// drawCentred writes text centred under the board, cut to the screen width.
func (a *App) drawCentred(c canvas, y int, text string) {
	text = runewidth.Truncate(text, a.width, "...")
	x := a.layout.X + (boardWidth-runewidth.StringWidth(text))/2
	x = max(x, 0)
	for _, r := range text {
		c.SetCell(x, y, r, labelFg, termbox.ColorDefault)
		x += runewidth.RuneWidth(r)
	}
}
