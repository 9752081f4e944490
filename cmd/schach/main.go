// schach is a two-player chess game played in the terminal or hosted for
// browser clients.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	uuid "github.com/satori/go.uuid"

	"github.com/lgbarn/schach-go/internal/config"
	"github.com/lgbarn/schach-go/internal/engine"
	"github.com/lgbarn/schach-go/internal/render"
	"github.com/lgbarn/schach-go/internal/results"
	"github.com/lgbarn/schach-go/internal/server"
	"github.com/lgbarn/schach-go/internal/term"
)

const programVersion = "0.1.0"

// defaultTermLog receives log output in terminal mode, where stderr would
// scribble over the board.
const defaultTermLog = "schach.log"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("schach version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := loadConfig()

	game, err := newGame(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading start position: %v\n", err)
		os.Exit(1)
	}

	if *printOnly {
		if err := render.Write(os.Stdout, game, render.Options{Plain: *plain}); err != nil {
			fmt.Fprintf(os.Stderr, "Error printing board: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	closeLog := setupLogFile(cfg)
	defer closeLog()

	store := openResults(cfg)
	if store != nil {
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cfg.Mode {
	case config.ServerMode:
		err = runServer(ctx, cfg, store)
	default:
		err = runTerminal(ctx, cfg, game, store)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// loadConfig builds the configuration from defaults, the -config file and
// the command line, exiting on any error.
func loadConfig() *config.Config {
	cfg := config.NewConfig()
	if *configFile != "" {
		if err := cfg.LoadFile(*configFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error in configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// newGame creates the game to play from the configured start position.
func newGame(cfg *config.Config) (*engine.GameState, error) {
	if cfg.StartFEN == "" {
		return engine.NewGameState(), nil
	}
	return engine.NewGameStateFromFEN(cfg.StartFEN)
}

// startFEN returns the FEN a game started from, for the results ledger.
func startFEN(cfg *config.Config) string {
	if cfg.StartFEN == "" {
		return engine.InitialFEN
	}
	return cfg.StartFEN
}

// setupLogFile points cfg.LogFile at the configured log file. Terminal
// mode logs to defaultTermLog when nothing else is configured. The
// returned function closes the file.
func setupLogFile(cfg *config.Config) func() {
	path := cfg.LogPath
	if path == "" && cfg.Mode == config.TerminalMode && cfg.Verbosity > config.Silent {
		path = defaultTermLog
	}
	if path == "" {
		return func() {}
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file %s: %v\n", path, err)
		os.Exit(1)
	}
	cfg.SetLog(file)
	return func() { file.Close() }
}

// openResults opens the results ledger when it is enabled.
func openResults(cfg *config.Config) *results.Store {
	if !cfg.Results.Enabled {
		return nil
	}
	store, err := results.Open(cfg.Results)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	cfg.Logf(config.Commentary, "Recording results in %s", cfg.Results.DbConnectionStr)
	return store
}

// runTerminal plays one game in the terminal.
func runTerminal(ctx context.Context, cfg *config.Config, game *engine.GameState, store *results.Store) error {
	app := term.New(cfg, game)
	app.OnGameOver(recordTerminalGame(cfg, app, store))
	cfg.Logf(config.Summary, "Game started from %s", startFEN(cfg))
	return app.Run(ctx)
}

// recordTerminalGame returns the game-over callback for the terminal front
// end. Without a store it only logs.
func recordTerminalGame(cfg *config.Config, app *term.App, store *results.Store) func(engine.GameOver, int) {
	return func(over engine.GameOver, plies int) {
		if store == nil {
			return
		}
		r := results.NewGameResult(uuid.NewV4(), over, startFEN(cfg), app.Controller().Game(), plies)
		if err := store.Record(&r); err != nil {
			cfg.Logf(config.Summary, "Recording result: %v", err)
		}
	}
}

// runServer hosts games until ctx is done.
func runServer(ctx context.Context, cfg *config.Config, store *results.Store) error {
	var recorder server.Recorder
	if store != nil {
		recorder = store
	}
	return server.New(cfg, recorder).ListenAndServe(ctx)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: schach [options]\n\n")
	fmt.Fprintf(os.Stderr, "Two-player chess in the terminal, or hosted for browser clients.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nModes (-mode):\n")
	fmt.Fprintf(os.Stderr, "  term   Play with the mouse in this terminal (default)\n")
	fmt.Fprintf(os.Stderr, "  serve  Host games over HTTP and websockets\n")
	fmt.Fprintf(os.Stderr, "\nIn the terminal, press q or Esc to quit.\n")
}
