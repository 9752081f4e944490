package results

import (
	"testing"

	uuid "github.com/satori/go.uuid"

	"github.com/lgbarn/schach-go/internal/chess"
	"github.com/lgbarn/schach-go/internal/config"
	"github.com/lgbarn/schach-go/internal/engine"
	"github.com/lgbarn/schach-go/internal/testutil"
)

func openMemory(t *testing.T) *Store {
	t.Helper()
	cfg := config.NewResultsConfig()
	cfg.Enabled = true
	cfg.DbConnectionStr = ":memory:"
	s, err := Open(cfg)
	testutil.AssertNoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewGameResult(t *testing.T) {
	g := engine.MustFEN("7k/6Q1/6K1/8/8/8/8/8 b - - 0 1")
	id := uuid.NewV4()

	mate := NewGameResult(id, engine.GameOver{Ending: engine.Checkmate, Winner: chess.White}, engine.InitialFEN, g, 31)
	testutil.AssertEqual(t, mate.Outcome, "checkmate")
	testutil.AssertEqual(t, mate.Winner, "White")
	testutil.AssertEqual(t, mate.Plies, 31)
	testutil.AssertEqual(t, mate.FinalFEN, "7k/6Q1/6K1/8/8/8/8/8 b - - 0 1")

	stale := NewGameResult(id, engine.GameOver{Ending: engine.Stalemate}, engine.InitialFEN, g, 10)
	testutil.AssertEqual(t, stale.Outcome, "stalemate")
	testutil.AssertEqual(t, stale.Winner, "")
}

func TestStore_RecordAndFind(t *testing.T) {
	s := openMemory(t)
	g := engine.NewGameState()
	id := uuid.NewV4()

	r := NewGameResult(id, engine.GameOver{Ending: engine.Checkmate, Winner: chess.Black}, engine.InitialFEN, g, 4)
	testutil.AssertNoError(t, s.Record(&r))
	testutil.AssertTrue(t, r.ID != 0, "ID assigned")

	got, ok, err := s.Find(id)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, got.GameID, id)
	testutil.AssertEqual(t, got.Winner, "Black")
	testutil.AssertEqual(t, got.Plies, 4)

	_, ok, err = s.Find(uuid.NewV4())
	testutil.AssertNoError(t, err)
	testutil.AssertFalse(t, ok)
}

func TestStore_Recent(t *testing.T) {
	s := openMemory(t)
	g := engine.NewGameState()

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		r := NewGameResult(uuid.NewV4(), engine.GameOver{Ending: engine.Stalemate}, engine.InitialFEN, g, i)
		testutil.AssertNoError(t, s.Record(&r))
		ids = append(ids, r.GameID)
	}

	got, err := s.Recent(2)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(got), 2)
	testutil.AssertEqual(t, got[0].GameID, ids[2])
	testutil.AssertEqual(t, got[1].GameID, ids[1])
}

func TestOpen_UnknownDialect(t *testing.T) {
	cfg := config.NewResultsConfig()
	cfg.DbType = "nosuchdb"
	_, err := Open(cfg)
	testutil.AssertError(t, err)
}
