package term

import "github.com/lgbarn/schach-go/internal/chess"

// Square size in terminal cells. Cells are about twice as tall as wide.
const (
	cellWidth  = 6
	cellHeight = 3
)

// Layout places the board on the screen. Rank 8 is drawn at the top.
type Layout struct {
	X, Y int // top-left corner of a8
}

// boardWidth and boardHeight exclude the rank and file labels.
const (
	boardWidth  = chess.BoardSize * cellWidth
	boardHeight = chess.BoardSize * cellHeight
)

// NewLayout centres the board on a screen of the given size, leaving room
// for the file labels and the status lines below it.
func NewLayout(screenW, screenH int) Layout {
	x := (screenW - boardWidth) / 2
	y := (screenH - boardHeight - statusLines - 1) / 2
	return Layout{X: max(x, 2), Y: max(y, 0)}
}

// SquareAt returns the square under screen cell (x, y).
func (l Layout) SquareAt(x, y int) (chess.Position, bool) {
	if x < l.X || y < l.Y || x >= l.X+boardWidth || y >= l.Y+boardHeight {
		return chess.Position{}, false
	}
	col := (x - l.X) / cellWidth
	row := chess.BoardSize - 1 - (y-l.Y)/cellHeight
	return chess.Pos(int8(row), int8(col)), true
}

// Origin returns the top-left screen cell of pos. Fractional board
// coordinates are allowed so moving pieces can be placed between squares.
func (l Layout) Origin(row, col float64) (x, y int) {
	x = l.X + int(col*cellWidth+0.5)
	y = l.Y + int((chess.BoardSize-1-row)*cellHeight+0.5)
	return x, y
}

// Centre returns the screen cell a piece letter is drawn on.
func (l Layout) Centre(row, col float64) (x, y int) {
	x, y = l.Origin(row, col)
	return x + cellWidth/2, y + cellHeight/2
}

// StatusY returns the first screen row below the board and its labels.
func (l Layout) StatusY() int {
	return l.Y + boardHeight + 2
}
