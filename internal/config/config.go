// Package config provides configuration for schach.
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lgbarn/schach-go/internal/errors"
)

// Mode selects the front end that drives the game.
type Mode string

const (
	TerminalMode Mode = "term"  // termbox board in the current terminal
	ServerMode   Mode = "serve" // HTTP and websocket render bridge
)

// Verbosity levels.
const (
	Silent     = 0 // nothing
	Summary    = 1 // game starts and results
	Commentary = 2 // every move and event
)

// Config holds all program configuration. It can be loaded from a JSON
// file and is then overridden by command-line flags.
type Config struct {
	Mode     Mode   `json:"mode"`
	StartFEN string `json:"startFEN"` // empty means the standard position

	UI      *UIConfig      `json:"ui"`
	Server  *ServerConfig  `json:"server"`
	Results *ResultsConfig `json:"results"`

	Verbosity int    `json:"verbosity"` // 0=nothing, 1=summary, 2=running commentary
	LogPath   string `json:"logFile"`   // empty means LogFile as set

	// LogFile receives log output. NewConfig points it at stderr; the
	// terminal front end replaces it since it owns the screen.
	LogFile io.Writer `json:"-"`
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Mode:      TerminalMode,
		UI:        NewUIConfig(),
		Server:    NewServerConfig(),
		Results:   NewResultsConfig(),
		Verbosity: Summary,
		LogFile:   os.Stderr,
	}
}

// LoadFile overlays the JSON file at path onto cfg. Keys missing from the
// file keep their current values.
func (cfg *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading config %s", path)
	}
	return cfg.Load(data)
}

// Load overlays JSON-encoded configuration onto cfg.
func (cfg *Config) Load(data []byte) error {
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("%v: %w", err, errors.ErrInvalidConfig)
	}
	// An explicit null drops a section; fall back to its defaults.
	if cfg.UI == nil {
		cfg.UI = NewUIConfig()
	}
	if cfg.Server == nil {
		cfg.Server = NewServerConfig()
	}
	if cfg.Results == nil {
		cfg.Results = NewResultsConfig()
	}
	return nil
}

// SetLog sets the log stream.
func (cfg *Config) SetLog(w io.Writer) {
	cfg.LogFile = w
}

// Validate checks the whole configuration.
func (cfg *Config) Validate() error {
	switch cfg.Mode {
	case TerminalMode, ServerMode:
	default:
		return fmt.Errorf("unknown mode %q: %w", cfg.Mode, errors.ErrInvalidConfig)
	}
	if cfg.Verbosity < Silent || cfg.Verbosity > Commentary {
		return fmt.Errorf("verbosity %d out of range: %w", cfg.Verbosity, errors.ErrInvalidConfig)
	}
	if strings.TrimSpace(cfg.StartFEN) != cfg.StartFEN {
		return fmt.Errorf("start FEN has surrounding space: %w", errors.ErrInvalidConfig)
	}
	if err := cfg.UI.Validate(); err != nil {
		return err
	}
	if err := cfg.Server.Validate(); err != nil {
		return err
	}
	return cfg.Results.Validate()
}

// Logf writes a line to LogFile when Verbosity is at least level.
func (cfg *Config) Logf(level int, format string, args ...interface{}) {
	if cfg.Verbosity < level || cfg.LogFile == nil {
		return
	}
	fmt.Fprintf(cfg.LogFile, format+"\n", args...)
}
