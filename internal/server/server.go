// Package server hosts games for browser clients. Clicks and animation
// completions arrive over a websocket; moves, captures, highlights and
// status go back the same way.
package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	uuid "github.com/satori/go.uuid"

	"github.com/lgbarn/schach-go/internal/config"
	"github.com/lgbarn/schach-go/internal/engine"
	"github.com/lgbarn/schach-go/internal/errors"
	"github.com/lgbarn/schach-go/internal/results"
)

// Recorder stores finished games.
type Recorder interface {
	Record(r *results.GameResult) error
	Recent(limit int) ([]results.GameResult, error)
	Find(gameID uuid.UUID) (results.GameResult, bool, error)
}

// Console colours.
var (
	infoColour = color.New(color.FgCyan)
	overColour = color.New(color.FgGreen, color.Bold)
	warnColour = color.New(color.FgYellow)
)

const defaultResultsLimit = 20

// Server hosts game sessions.
type Server struct {
	cfg      *config.Config
	recorder Recorder
	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

// New creates a server. recorder may be nil, in which case results are
// not kept.
func New(cfg *config.Config, recorder Recorder) *Server {
	s := &Server{
		cfg:      cfg,
		recorder: recorder,
		sessions: make(map[uuid.UUID]*Session),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	return s
}

// Handler returns the routed API wrapped in CORS, recovery and, at full
// verbosity, request logging.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.Handle("/game", http.HandlerFunc(s.createGame)).Methods("POST")
	router.Handle("/game/{id}", http.HandlerFunc(s.getGame)).Methods("GET")
	router.Handle("/game/{id}", http.HandlerFunc(s.deleteGame)).Methods("DELETE")
	router.Handle("/game/{id}/events", http.HandlerFunc(s.postEvents)).Methods("POST")
	router.Handle("/socket/{id}", http.HandlerFunc(s.socket)).Methods("GET")
	router.Handle("/results", http.HandlerFunc(s.listResults)).Methods("GET")
	router.Handle("/results/{id}", http.HandlerFunc(s.getResult)).Methods("GET")

	var h http.Handler = router
	if s.cfg.Verbosity >= config.Commentary {
		h = handlers.LoggingHandler(s.cfg.LogFile, h)
	}
	h = handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{s}))(h)
	return handlers.CORS(
		handlers.AllowedHeaders([]string{"X-Requested-With", "Content-Type", "Authorization"}),
		handlers.AllowedMethods([]string{"GET", "POST", "DELETE", "HEAD", "OPTIONS"}),
		handlers.AllowedOrigins(s.cfg.Server.AllowedOrigins),
	)(h)
}

// ListenAndServe serves until ctx is done, then shuts down and closes
// every socket.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{Addr: s.cfg.Server.Addr(), Handler: s.Handler()}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logf(infoColour, config.Summary, "Listening on %s", srv.Addr)

	select {
	case err := <-errc:
		return errors.Wrap(err, "serving")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.closeAll()
	return srv.Shutdown(shutdownCtx)
}

// NewSession starts hosting a game from fen. An empty fen starts from the
// configured start position, or the standard one when none is configured.
func (s *Server) NewSession(fen string) (*Session, error) {
	if fen == "" {
		fen = s.cfg.StartFEN
	}
	game := engine.NewGameState()
	if fen != "" {
		var err error
		if game, err = engine.NewGameStateFromFEN(fen); err != nil {
			return nil, err
		}
	} else {
		fen = engine.InitialFEN
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if limit := s.cfg.Server.MaxSessions; limit > 0 && len(s.sessions) >= limit {
		return nil, errTooManySessions
	}
	sess := newSession(uuid.NewV4(), fen, game, s.finished)
	s.sessions[sess.ID] = sess
	s.logf(infoColour, config.Summary, "Game %s started", sess.ID)
	return sess, nil
}

var errTooManySessions = errors.New("too many games in progress")

// Session returns a hosted game.
func (s *Server) Session(id uuid.UUID) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, &errors.SessionError{Err: errors.ErrUnknownSession, Session: id.String()}
	}
	return sess, nil
}

// EndSession stops hosting a game and disconnects its sockets.
func (s *Server) EndSession(id uuid.UUID) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return &errors.SessionError{Err: errors.ErrUnknownSession, Session: id.String()}
	}
	sess.close()
	return nil
}

func (s *Server) closeAll() {
	s.mu.Lock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.Unlock()
	for _, sess := range sessions {
		sess.close()
	}
}

// finished records the result of a game. It runs with the session locked.
func (s *Server) finished(sess *Session, over engine.GameOver) {
	s.logf(overColour, config.Summary, "Game %s: %v after %d plies", sess.ID, over, sess.plies)
	if s.recorder == nil {
		return
	}
	r := results.NewGameResult(sess.ID, over, sess.StartFEN, sess.ctrl.Game(), sess.plies)
	if err := s.recorder.Record(&r); err != nil {
		s.logf(warnColour, config.Summary, "Recording game %s: %v", sess.ID, err)
	}
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	allowed := s.cfg.Server.AllowedOrigins
	return slices.Contains(allowed, "*") || slices.Contains(allowed, origin)
}

// createGame handles POST /game. The body may name a starting FEN.
func (s *Server) createGame(w http.ResponseWriter, r *http.Request) {
	var body struct {
		FEN string `json:"fen"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && err != io.EOF {
		s.writeError(w, http.StatusBadRequest, errors.Wrapf(errors.ErrInvalidMessage, "%v", err))
		return
	}

	sess, err := s.NewSession(body.FEN)
	switch {
	case errors.Is(err, errors.ErrInvalidFEN):
		s.writeError(w, http.StatusBadRequest, err)
		return
	case err != nil:
		s.writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, sess.Snapshot())
}

// getGame handles GET /game/{id}.
func (s *Server) getGame(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, sess.Snapshot())
}

// deleteGame handles DELETE /game/{id}.
func (s *Server) deleteGame(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	if err := s.EndSession(sess.ID); err != nil {
		s.writeError(w, http.StatusNotFound, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// postEvents handles POST /game/{id}/events: a JSON array of client
// messages applied in order, for clients without a socket. The reply is
// the resulting snapshot.
func (s *Server) postEvents(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var msgs []Message
	if err := json.NewDecoder(r.Body).Decode(&msgs); err != nil {
		s.writeError(w, http.StatusBadRequest, errors.Wrapf(errors.ErrInvalidMessage, "%v", err))
		return
	}
	for _, m := range msgs {
		if err := sess.Apply(m); err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
	}
	s.writeJSON(w, http.StatusOK, sess.Snapshot())
}

// socket handles GET /socket/{id}. The client gets a snapshot, then every
// effect of every tick of the game.
func (s *Server) socket(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied.
		s.logf(warnColour, config.Commentary, "Upgrading %s: %v", r.RemoteAddr, err)
		return
	}
	defer conn.Close()

	if err := sess.subscribe(conn); err != nil {
		return
	}
	defer sess.unsubscribe(conn)
	s.logf(infoColour, config.Commentary, "Socket %s joined game %s", r.RemoteAddr, sess.ID)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logf(warnColour, config.Commentary, "Socket %s: %v", r.RemoteAddr, err)
			}
			return
		}
		var m Message
		if err := json.Unmarshal(data, &m); err != nil {
			err = errors.Wrapf(errors.ErrInvalidMessage, "%v", err)
			if sess.reply(conn, errorMessage(err)) != nil {
				return
			}
			continue
		}
		if err := sess.Apply(m); err != nil {
			if sess.reply(conn, errorMessage(err)) != nil {
				return
			}
		}
	}
}

// listResults handles GET /results?limit=N.
func (s *Server) listResults(w http.ResponseWriter, r *http.Request) {
	if s.recorder == nil {
		s.writeError(w, http.StatusNotFound, errors.New("results are not recorded"))
		return
	}
	limit := defaultResultsLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.writeError(w, http.StatusBadRequest, errors.New("limit must be a positive integer"))
			return
		}
		limit = n
	}
	list, err := s.recorder.Recent(limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if list == nil {
		list = []results.GameResult{}
	}
	s.writeJSON(w, http.StatusOK, list)
}

// getResult handles GET /results/{id}.
func (s *Server) getResult(w http.ResponseWriter, r *http.Request) {
	if s.recorder == nil {
		s.writeError(w, http.StatusNotFound, errors.New("results are not recorded"))
		return
	}
	id, err := uuid.FromString(mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, http.StatusBadRequest, errors.New("bad game ID"))
		return
	}
	result, ok, err := s.recorder.Find(id)
	switch {
	case err != nil:
		s.writeError(w, http.StatusInternalServerError, err)
	case !ok:
		s.writeError(w, http.StatusNotFound, errors.New("no result for game "+id.String()))
	default:
		s.writeJSON(w, http.StatusOK, result)
	}
}

// lookup resolves the {id} route variable, replying with an error when it
// names no hosted game.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	id, err := uuid.FromString(mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, http.StatusBadRequest, errors.New("bad game ID"))
		return nil, false
	}
	sess, err := s.Session(id)
	if err != nil {
		s.writeError(w, http.StatusNotFound, err)
		return nil, false
	}
	return sess, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logf(warnColour, config.Commentary, "Writing response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorMessage(err))
}

// logf writes a coloured console line when Verbosity is at least level.
func (s *Server) logf(c *color.Color, level int, format string, args ...interface{}) {
	if s.cfg.Verbosity < level || s.cfg.LogFile == nil {
		return
	}
	c.Fprintf(s.cfg.LogFile, format+"\n", args...)
}

// recoveryLogger reports handler panics on the console.
type recoveryLogger struct{ s *Server }

func (l recoveryLogger) Println(args ...interface{}) {
	if l.s.cfg.LogFile != nil {
		warnColour.Fprintln(l.s.cfg.LogFile, args...)
	}
}
