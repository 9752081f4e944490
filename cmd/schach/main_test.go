package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lgbarn/schach-go/internal/config"
	"github.com/lgbarn/schach-go/internal/engine"
	"github.com/lgbarn/schach-go/internal/errors"
	"github.com/lgbarn/schach-go/internal/term"
	"github.com/lgbarn/schach-go/internal/testutil"
)

func TestNewGame(t *testing.T) {
	g, err := newGame(config.NewConfig())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, g.FEN(), engine.InitialFEN)

	cfg := config.NewConfigBuilder().WithStartFEN("4k3/8/8/8/8/8/8/4K3 b - - 0 1").Build()
	g, err = newGame(cfg)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, g.FEN(), "4k3/8/8/8/8/8/8/4K3 b - - 0 1")

	_, err = newGame(config.NewConfigBuilder().WithStartFEN("8/8/8/8/8/8/8/8 w").Build())
	testutil.AssertTrue(t, errors.Is(err, errors.ErrInvalidFEN))
}

func TestStartFEN(t *testing.T) {
	testutil.AssertEqual(t, startFEN(config.NewConfig()), engine.InitialFEN)
	cfg := config.NewConfigBuilder().WithStartFEN("4k3/8/8/8/8/8/8/4K3 w").Build()
	testutil.AssertEqual(t, startFEN(cfg), "4k3/8/8/8/8/8/8/4K3 w")
}

func TestSetupLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schach.log")
	cfg := config.NewConfig()
	cfg.LogPath = path

	closeLog := setupLogFile(cfg)
	cfg.Logf(config.Summary, "hello")
	closeLog()

	data, err := os.ReadFile(path)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, strings.TrimSpace(string(data)), "hello")
}

func TestSetupLogFile_ServerKeepsStderr(t *testing.T) {
	cfg := config.NewConfigBuilder().WithMode(config.ServerMode).Build()
	closeLog := setupLogFile(cfg)
	defer closeLog()
	testutil.AssertTrue(t, cfg.LogFile == os.Stderr)
}

func TestOpenResults(t *testing.T) {
	testutil.AssertTrue(t, openResults(config.NewConfig()) == nil, "disabled ledger")

	cfg := config.NewConfigBuilder().WithResults(":memory:").WithVerbosity(config.Silent).Build()
	store := openResults(cfg)
	testutil.AssertTrue(t, store != nil)
	defer store.Close()

	over := engine.GameOver{Ending: engine.Stalemate}
	app := term.New(cfg, engine.NewGameState())
	recordTerminalGame(cfg, app, store)(over, 7)

	list, err := store.Recent(5)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(list), 1)
	testutil.AssertEqual(t, list[0].Outcome, "stalemate")
	testutil.AssertEqual(t, list[0].Plies, 7)
	testutil.AssertEqual(t, list[0].StartFEN, engine.InitialFEN)
}
