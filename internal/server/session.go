package server

import (
	"sync"

	"github.com/gorilla/websocket"
	uuid "github.com/satori/go.uuid"

	"github.com/lgbarn/schach-go/internal/chess"
	"github.com/lgbarn/schach-go/internal/engine"
	"github.com/lgbarn/schach-go/internal/turn"
)

// Session is one hosted game and the sockets watching it. The mutex
// serializes every controller tick and every socket write.
type Session struct {
	ID       uuid.UUID
	StartFEN string

	mu     sync.Mutex
	ctrl   *turn.Controller
	subs   map[*websocket.Conn]struct{}
	outbox []Message
	plies  int
	done   bool

	// finished is called once, with the lock held, when the game ends.
	finished func(*Session, engine.GameOver)
}

func newSession(id uuid.UUID, startFEN string, game *engine.GameState, finished func(*Session, engine.GameOver)) *Session {
	s := &Session{
		ID:       id,
		StartFEN: startFEN,
		subs:     make(map[*websocket.Conn]struct{}),
		finished: finished,
	}
	s.ctrl = turn.NewController(game, s)
	s.ctrl.Tick(nil, nil)
	s.outbox = nil
	return s
}

// PieceMoved queues a move for the subscribers.
func (s *Session) PieceMoved(ev turn.PieceMovedEvent) {
	s.plies++
	s.outbox = append(s.outbox, Message{
		Type:   TypeMoved,
		Piece:  ev.Piece,
		Source: ev.Source.String(),
		Target: ev.Target.String(),
	})
}

// PieceRemoved queues a capture for the subscribers.
func (s *Session) PieceRemoved(ev turn.PieceRemovedEvent) {
	s.outbox = append(s.outbox, Message{Type: TypeRemoved, Piece: ev.Piece, Square: ev.Square.String()})
}

// HighlightsChanged queues the new highlight set.
func (s *Session) HighlightsChanged(squares []chess.Position) {
	s.outbox = append(s.outbox, Message{Type: TypeHighlights, Squares: squareNames(squares)})
}

// StatusChanged queues the status line and reports the end of the game.
func (s *Session) StatusChanged(status turn.Status) {
	s.outbox = append(s.outbox, Message{Type: TypeStatus, Status: status.String(), Over: status.Over()})
	if status.Over() && !s.done {
		s.done = true
		if s.finished != nil {
			over, _ := s.ctrl.Game().GameOver()
			s.finished(s, over)
		}
	}
}

// Apply feeds one client message to the controller and broadcasts the
// resulting effects.
func (s *Session) Apply(m Message) error {
	sel, complete, err := decode(m)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case sel != nil:
		s.ctrl.Tick([]turn.SquareSelectedEvent{*sel}, nil)
	case complete != nil:
		s.ctrl.Tick(nil, []turn.AnimationCompleteEvent{*complete})
	}
	s.flush()
	return nil
}

// Snapshot returns the full game view.
func (s *Session) Snapshot() Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Session) snapshot() Message {
	status := s.ctrl.Status()
	m := Message{
		Type:    TypeSnapshot,
		GameID:  s.ID.String(),
		FEN:     s.ctrl.Game().FEN(),
		State:   s.ctrl.State().String(),
		Status:  status.String(),
		Over:    status.Over(),
		Squares: squareNames(s.ctrl.Highlights()),
	}
	for _, entry := range s.ctrl.Roster().Entries() {
		m.Pieces = append(m.Pieces, PieceView{
			Piece:  entry.ID,
			Colour: entry.Piece.Colour.String(),
			Kind:   entry.Piece.Kind.String(),
			Square: entry.Position.String(),
		})
	}
	if moving, ok := s.ctrl.Moving(); ok {
		m.Piece = moving.Piece
		m.Source = moving.Source.String()
		m.Target = moving.Target.String()
	}
	return m
}

// Plies returns the number of half-moves played.
func (s *Session) Plies() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plies
}

// subscribe adds conn and sends it the current snapshot.
func (s *Session) subscribe(conn *websocket.Conn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := conn.WriteJSON(s.snapshot()); err != nil {
		return err
	}
	s.subs[conn] = struct{}{}
	return nil
}

func (s *Session) unsubscribe(conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, conn)
}

// reply sends m to one subscriber.
func (s *Session) reply(conn *websocket.Conn, m Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return conn.WriteJSON(m)
}

// flush writes the queued effects to every subscriber. Subscribers that
// fail a write are dropped.
func (s *Session) flush() {
	for conn := range s.subs {
		for _, m := range s.outbox {
			if err := conn.WriteJSON(m); err != nil {
				conn.Close()
				delete(s.subs, conn)
				break
			}
		}
	}
	s.outbox = nil
}

// close disconnects every subscriber.
func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.subs {
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "game closed"))
		conn.Close()
		delete(s.subs, conn)
	}
}
