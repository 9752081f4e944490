package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/lgbarn/schach-go/internal/errors"
)

// ServerConfig holds settings for the HTTP render bridge.
type ServerConfig struct {
	// Port to listen on, all interfaces
	Port int `json:"port"`

	// Host restricts listening to one interface (optional)
	Host string `json:"host"`

	// AllowedOrigins is the CORS origin list; "*" allows any
	AllowedOrigins []string `json:"allowedOrigins"`

	// MaxSessions caps the number of games hosted at once (0 = no limit)
	MaxSessions int `json:"maxSessions"`
}

// NewServerConfig creates a ServerConfig with default values.
func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:           8080,
		AllowedOrigins: []string{"*"},
		MaxSessions:    64,
	}
}

// Addr returns the listen address.
func (s *ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, fmt.Sprint(s.Port))
}

// Validate checks that the server configuration is valid.
func (s *ServerConfig) Validate() error {
	if s.Port < 0 || s.Port > 65535 {
		return fmt.Errorf("port %d out of range: %w", s.Port, errors.ErrInvalidConfig)
	}
	if s.MaxSessions < 0 {
		return fmt.Errorf("max sessions %d is negative: %w", s.MaxSessions, errors.ErrInvalidConfig)
	}
	for _, origin := range s.AllowedOrigins {
		if strings.TrimSpace(origin) == "" {
			return fmt.Errorf("empty allowed origin: %w", errors.ErrInvalidConfig)
		}
	}
	return nil
}
