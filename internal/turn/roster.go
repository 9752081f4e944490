package turn

import (
	"sort"

	"github.com/lgbarn/schach-go/internal/chess"
	"github.com/lgbarn/schach-go/internal/engine"
)

// Roster gives every piece a stable identity and tracks where its display
// representation stands. It mirrors the engine's board: a move is recorded
// as soon as it is committed, a capture only once the captured piece is
// removed, so for the length of an animation two identities can share a
// square. At reports the one that arrived last.
type Roster struct {
	pieces    map[PieceID]chess.Piece
	positions map[PieceID]chess.Position
	squares   map[chess.Position]PieceID
	next      PieceID
}

// RosterEntry is one identified piece and its square. Piece is the piece
// as it stood when identities were assigned.
type RosterEntry struct {
	ID       PieceID
	Piece    chess.Piece
	Position chess.Position
}

// NewRoster assigns identities to the pieces of g in scan order, starting
// at 1.
func NewRoster(g *engine.GameState) *Roster {
	r := &Roster{
		pieces:    make(map[PieceID]chess.Piece),
		positions: make(map[PieceID]chess.Position),
		squares:   make(map[chess.Position]PieceID),
	}
	for piece, pos := range g.Pieces() {
		r.next++
		r.pieces[r.next] = piece
		r.positions[r.next] = pos
		r.squares[pos] = r.next
	}
	return r
}

// At returns the identity of the piece displayed on pos.
func (r *Roster) At(pos chess.Position) (PieceID, bool) {
	id, ok := r.squares[pos]
	return id, ok
}

// Position returns where id is displayed.
func (r *Roster) Position(id PieceID) (chess.Position, bool) {
	pos, ok := r.positions[id]
	return pos, ok
}

// Move records id as standing on to. Any identity already on to keeps its
// own entry until it is removed.
func (r *Roster) Move(id PieceID, to chess.Position) {
	from, ok := r.positions[id]
	if !ok {
		return
	}
	if r.squares[from] == id {
		delete(r.squares, from)
	}
	r.positions[id] = to
	r.squares[to] = id
}

// Remove forgets id.
func (r *Roster) Remove(id PieceID) {
	pos, ok := r.positions[id]
	if !ok {
		return
	}
	delete(r.positions, id)
	delete(r.pieces, id)
	if r.squares[pos] == id {
		delete(r.squares, pos)
	}
}

// Len returns the number of identified pieces.
func (r *Roster) Len() int {
	return len(r.positions)
}

// Entries returns every identified piece ordered by id.
func (r *Roster) Entries() []RosterEntry {
	entries := make([]RosterEntry, 0, len(r.positions))
	for id, pos := range r.positions {
		entries = append(entries, RosterEntry{ID: id, Piece: r.pieces[id], Position: pos})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries
}
