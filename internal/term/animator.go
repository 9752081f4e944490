package term

import (
	"sort"

	"github.com/lgbarn/schach-go/internal/turn"
)

// glide is one piece moving in a straight line between two squares.
type glide struct {
	move  turn.PieceMovedEvent
	tick  int
	total int
}

// Animator moves pieces across the board one tick at a time and reports
// when each arrives.
type Animator struct {
	ticksPerSquare int
	glides         map[turn.PieceID]*glide
}

// NewAnimator creates an animator that spends ticksPerSquare ticks on
// each square travelled.
func NewAnimator(ticksPerSquare int) *Animator {
	return &Animator{
		ticksPerSquare: max(ticksPerSquare, 1),
		glides:         make(map[turn.PieceID]*glide),
	}
}

// Start begins moving a piece. A piece that is already moving is
// restarted from the new source.
func (a *Animator) Start(ev turn.PieceMovedEvent) {
	dist := max(abs(int(ev.Target.Row-ev.Source.Row)), abs(int(ev.Target.Col-ev.Source.Col)))
	a.glides[ev.Piece] = &glide{move: ev, total: max(dist, 1) * a.ticksPerSquare}
}

// Step advances every glide by one tick and returns the pieces that
// arrived, ordered by id.
func (a *Animator) Step() []turn.AnimationCompleteEvent {
	var done []turn.AnimationCompleteEvent
	for id, g := range a.glides {
		g.tick++
		if g.tick >= g.total {
			done = append(done, turn.AnimationCompleteEvent{Piece: id})
			delete(a.glides, id)
		}
	}
	sort.Slice(done, func(i, j int) bool { return done[i].Piece < done[j].Piece })
	return done
}

// Busy reports whether any piece is moving.
func (a *Animator) Busy() bool {
	return len(a.glides) > 0
}

// Where returns the fractional board coordinates of a moving piece.
func (a *Animator) Where(id turn.PieceID) (row, col float64, ok bool) {
	g, ok := a.glides[id]
	if !ok {
		return 0, 0, false
	}
	f := float64(g.tick) / float64(g.total)
	return lerp(g.move.Source.Row, g.move.Target.Row, f), lerp(g.move.Source.Col, g.move.Target.Col, f), true
}

func lerp(from, to int8, f float64) float64 {
	return float64(from) + (float64(to)-float64(from))*f
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
