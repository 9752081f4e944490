package config

import (
	"fmt"

	"github.com/lgbarn/schach-go/internal/errors"
)

// ResultsConfig holds settings for the finished-game ledger.
type ResultsConfig struct {
	// Enabled turns result recording on
	Enabled bool `json:"enabled"`

	// DbType is the gorm dialect; only "sqlite3" is linked in
	DbType string `json:"dbType"`

	// DbConnectionStr is the dialect's data source, a file path for sqlite
	DbConnectionStr string `json:"dbConnectionStr"`
}

// NewResultsConfig creates a ResultsConfig with default values.
func NewResultsConfig() *ResultsConfig {
	return &ResultsConfig{
		DbType:          "sqlite3",
		DbConnectionStr: "schach.db",
	}
}

// Validate checks that the results configuration is valid.
func (r *ResultsConfig) Validate() error {
	if !r.Enabled {
		return nil
	}
	if r.DbType != "sqlite3" {
		return fmt.Errorf("unsupported database type %q: %w", r.DbType, errors.ErrInvalidConfig)
	}
	if r.DbConnectionStr == "" {
		return fmt.Errorf("empty database connection string: %w", errors.ErrInvalidConfig)
	}
	return nil
}
