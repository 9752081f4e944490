// Package term is the terminal front end: it draws the board with termbox,
// turns mouse clicks into square selections and animates moves.
package term

import (
	"context"
	"time"

	"github.com/nsf/termbox-go"

	"github.com/lgbarn/schach-go/internal/chess"
	"github.com/lgbarn/schach-go/internal/config"
	"github.com/lgbarn/schach-go/internal/engine"
	"github.com/lgbarn/schach-go/internal/errors"
	"github.com/lgbarn/schach-go/internal/turn"
)

// App runs one game in the terminal. All of its state is owned by the
// goroutine calling Run.
type App struct {
	cfg  *config.Config
	ctrl *turn.Controller
	anim *Animator

	layout        Layout
	width, height int
	hover         *chess.Position

	status turn.Status
	plies  int
	onOver func(engine.GameOver, int)
}

// New creates the front end for game. It does not touch the terminal
// until Run.
func New(cfg *config.Config, game *engine.GameState) *App {
	a := &App{
		cfg:  cfg,
		anim: NewAnimator(cfg.UI.TicksPerSquare),
	}
	a.ctrl = turn.NewController(game, a)
	a.resize(80, 40)
	return a
}

// OnGameOver registers fn to be called once when the game ends, with the
// number of half-moves played.
func (a *App) OnGameOver(fn func(over engine.GameOver, plies int)) {
	a.onOver = fn
}

// Controller returns the turn state machine.
func (a *App) Controller() *turn.Controller { return a.ctrl }

// Plies returns the number of half-moves played so far.
func (a *App) Plies() int { return a.plies }

// PieceMoved starts animating a committed move.
func (a *App) PieceMoved(ev turn.PieceMovedEvent) {
	a.plies++
	a.anim.Start(ev)
	a.cfg.Logf(config.Commentary, "ply %d: piece %d %v-%v", a.plies, ev.Piece, ev.Source, ev.Target)
}

// PieceRemoved logs a capture. The piece disappears from the roster.
func (a *App) PieceRemoved(ev turn.PieceRemovedEvent) {
	a.cfg.Logf(config.Commentary, "piece %d captured on %v", ev.Piece, ev.Square)
}

// HighlightsChanged does nothing; highlights are read back when drawing.
func (a *App) HighlightsChanged([]chess.Position) {}

// StatusChanged records the status line and reports the end of the game.
func (a *App) StatusChanged(s turn.Status) {
	a.status = s
	if !s.Over() {
		return
	}
	over, _ := a.ctrl.Game().GameOver()
	a.cfg.Logf(config.Summary, "game over after %d plies: %v", a.plies, over)
	if a.onOver != nil {
		a.onOver(over, a.plies)
	}
}

func (a *App) resize(w, h int) {
	a.width, a.height = w, h
	a.layout = NewLayout(w, h)
}

// step is one tick: advance animations, then feed the controller.
func (a *App) step(selections []turn.SquareSelectedEvent) {
	a.ctrl.Tick(selections, a.anim.Step())
}

// translate turns a mouse press into a selection. Key presses, releases
// and drags are not selections.
func (a *App) translate(ev termbox.Event) (turn.SquareSelectedEvent, bool) {
	if ev.Type != termbox.EventMouse || ev.Mod&termbox.ModMotion != 0 {
		return turn.SquareSelectedEvent{}, false
	}
	var sel turn.SquareSelectedEvent
	switch ev.Key {
	case termbox.MouseLeft:
		sel.Button = turn.Primary
	case termbox.MouseRight:
		sel.Button = turn.Secondary
	case termbox.MouseMiddle:
		sel.Button = turn.Tertiary
	default:
		return turn.SquareSelectedEvent{}, false
	}
	if pos, ok := a.layout.SquareAt(ev.MouseX, ev.MouseY); ok {
		sel.Position = &pos
	}
	return sel, true
}

// handle applies one terminal event. It returns true when the user asked
// to quit.
func (a *App) handle(ev termbox.Event, pending *[]turn.SquareSelectedEvent) bool {
	switch ev.Type {
	case termbox.EventKey:
		return ev.Key == termbox.KeyEsc || ev.Key == termbox.KeyCtrlC || ev.Ch == 'q'
	case termbox.EventResize:
		a.resize(ev.Width, ev.Height)
	case termbox.EventMouse:
		if pos, ok := a.layout.SquareAt(ev.MouseX, ev.MouseY); ok {
			a.hover = &pos
		} else {
			a.hover = nil
		}
		if sel, ok := a.translate(ev); ok {
			*pending = append(*pending, sel)
		}
	}
	return false
}

// Run takes over the terminal and plays until the user quits or ctx is
// done.
func (a *App) Run(ctx context.Context) error {
	if err := termbox.Init(); err != nil {
		return errors.Wrap(err, "initialising terminal")
	}
	defer termbox.Close()
	mode := termbox.InputEsc
	if a.cfg.UI.Mouse {
		mode |= termbox.InputMouse
	}
	termbox.SetInputMode(mode)
	a.resize(termbox.Size())

	events := make(chan termbox.Event)
	done := make(chan struct{})
	defer close(done)
	go poll(events, done)

	ticker := time.NewTicker(time.Duration(a.cfg.UI.TickInterval))
	defer ticker.Stop()

	var pending []turn.SquareSelectedEvent
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if ev.Type == termbox.EventError {
				return errors.Wrap(ev.Err, "reading terminal input")
			}
			if a.handle(ev, &pending) {
				return nil
			}
		case <-ticker.C:
			a.step(pending)
			pending = nil
			if err := a.render(); err != nil {
				return err
			}
		}
	}
}

func (a *App) render() error {
	if err := termbox.Clear(termbox.ColorDefault, termbox.ColorDefault); err != nil {
		return errors.Wrap(err, "clearing screen")
	}
	a.draw(screen{})
	return termbox.Flush()
}

// poll forwards terminal events until done is closed. PollEvent blocks, so
// it runs on its own goroutine.
func poll(events chan<- termbox.Event, done <-chan struct{}) {
	for {
		ev := termbox.PollEvent()
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}
