package config

import (
	"io"
	"time"
)

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithMode sets the front end.
func (b *ConfigBuilder) WithMode(mode Mode) *ConfigBuilder {
	b.cfg.Mode = mode
	return b
}

// WithStartFEN sets the starting position.
func (b *ConfigBuilder) WithStartFEN(fen string) *ConfigBuilder {
	b.cfg.StartFEN = fen
	return b
}

// WithTickInterval sets the terminal tick interval.
func (b *ConfigBuilder) WithTickInterval(d time.Duration) *ConfigBuilder {
	b.cfg.UI.TickInterval = Duration(d)
	return b
}

// WithTicksPerSquare sets the animation speed.
func (b *ConfigBuilder) WithTicksPerSquare(n int) *ConfigBuilder {
	b.cfg.UI.TicksPerSquare = n
	return b
}

// WithPort sets the server port.
func (b *ConfigBuilder) WithPort(port int) *ConfigBuilder {
	b.cfg.Server.Port = port
	return b
}

// WithAllowedOrigins sets the CORS origins.
func (b *ConfigBuilder) WithAllowedOrigins(origins ...string) *ConfigBuilder {
	b.cfg.Server.AllowedOrigins = origins
	return b
}

// WithResults enables the results ledger at dsn.
func (b *ConfigBuilder) WithResults(dsn string) *ConfigBuilder {
	b.cfg.Results.Enabled = true
	b.cfg.Results.DbConnectionStr = dsn
	return b
}

// WithLog sets the log writer.
func (b *ConfigBuilder) WithLog(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}
