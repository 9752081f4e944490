// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"strings"

	"github.com/lgbarn/schach-go/internal/config"
)

var (
	// General options
	configFile = flag.String("config", "", "JSON configuration file")
	mode       = flag.String("mode", "", "Front end: term or serve (default: term)")
	startFEN   = flag.String("fen", "", "Starting position as FEN (default: standard position)")
	printOnly  = flag.Bool("print", false, "Print the starting board and exit")
	plain      = flag.Bool("plain", false, "Print without colour")

	// Terminal options
	tickInterval   = flag.Duration("tick", 0, "Terminal tick interval (0 = keep configured)")
	ticksPerSquare = flag.Int("ticks", 0, "Animation ticks per square moved (0 = keep configured)")
	noMouse        = flag.Bool("nomouse", false, "Ignore mouse input")

	// Server options
	port    = flag.Int("port", 0, "HTTP port (0 = keep configured)")
	origins = flag.String("origins", "", "Allowed CORS origins, comma-separated")

	// Results ledger
	keepResults = flag.Bool("results", false, "Record finished games")
	dbPath      = flag.String("db", "", "Results database file (implies -results)")

	// Logging
	logFile = flag.String("log", "", "Write log output to this file")
	verbose = flag.Bool("v", false, "Log every move and event")
	quiet   = flag.Bool("q", false, "Log nothing")

	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags applies command-line flags to the configuration. Flags left at
// their zero value keep what the configuration file set.
func applyFlags(cfg *config.Config) {
	applyGeneralFlags(cfg)
	applyTerminalFlags(cfg)
	applyServerFlags(cfg)
	applyResultsFlags(cfg)

	if *logFile != "" {
		cfg.LogPath = *logFile
	}
	switch {
	case *quiet:
		cfg.Verbosity = config.Silent
	case *verbose:
		cfg.Verbosity = config.Commentary
	}
}

// applyGeneralFlags configures the front end and the starting position.
func applyGeneralFlags(cfg *config.Config) {
	if *mode != "" {
		cfg.Mode = config.Mode(*mode)
	}
	if *startFEN != "" {
		cfg.StartFEN = strings.TrimSpace(*startFEN)
	}
}

// applyTerminalFlags configures the terminal front end.
func applyTerminalFlags(cfg *config.Config) {
	if *tickInterval > 0 {
		cfg.UI.TickInterval = config.Duration(*tickInterval)
	}
	if *ticksPerSquare > 0 {
		cfg.UI.TicksPerSquare = *ticksPerSquare
	}
	if *noMouse {
		cfg.UI.Mouse = false
	}
}

// applyServerFlags configures the render bridge.
func applyServerFlags(cfg *config.Config) {
	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *origins != "" {
		cfg.Server.AllowedOrigins = splitList(*origins)
	}
}

// applyResultsFlags configures the results ledger.
func applyResultsFlags(cfg *config.Config) {
	if *keepResults {
		cfg.Results.Enabled = true
	}
	if *dbPath != "" {
		cfg.Results.Enabled = true
		cfg.Results.DbConnectionStr = *dbPath
	}
}

// splitList splits a comma-separated flag value, dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
