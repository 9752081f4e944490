// Package results keeps a ledger of finished games in a SQL database.
package results

import (
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite" // sqlite3 dialect
	uuid "github.com/satori/go.uuid"

	"github.com/lgbarn/schach-go/internal/config"
	"github.com/lgbarn/schach-go/internal/engine"
	"github.com/lgbarn/schach-go/internal/errors"
)

// Model that hides bookkeeping fields in json
type Model struct {
	ID        uint       `json:"-" gorm:"primary_key"`
	CreatedAt time.Time  `json:"finishedAt"`
	UpdatedAt time.Time  `json:"-"`
	DeletedAt *time.Time `json:"-" sql:"index"`
}

// GameResult is how one game ended. Moves are not kept.
type GameResult struct {
	Model
	GameID   uuid.UUID `json:"gameID" gorm:"index"`
	Outcome  string    `json:"outcome"` // "checkmate" or "stalemate"
	Winner   string    `json:"winner"`  // empty for stalemate
	Plies    int       `json:"plies"`
	StartFEN string    `json:"startFEN"`
	FinalFEN string    `json:"finalFEN"`
}

// NewGameResult describes a finished game g that took plies half-moves
// from start.
func NewGameResult(gameID uuid.UUID, over engine.GameOver, start string, g *engine.GameState, plies int) GameResult {
	r := GameResult{
		GameID:   gameID,
		Plies:    plies,
		StartFEN: start,
		FinalFEN: g.FEN(),
	}
	switch over.Ending {
	case engine.Checkmate:
		r.Outcome = "checkmate"
		r.Winner = over.Winner.String()
	case engine.Stalemate:
		r.Outcome = "stalemate"
	}
	return r
}

// Store records results.
type Store struct {
	db *gorm.DB
}

// Open connects to the database described by cfg and migrates the schema.
func Open(cfg *config.ResultsConfig) (*Store, error) {
	db, err := gorm.Open(cfg.DbType, cfg.DbConnectionStr)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s results database", cfg.DbType)
	}
	// In-memory sqlite databases exist per connection.
	db.DB().SetMaxOpenConns(1)

	if err := db.AutoMigrate(&GameResult{}).Error; err != nil {
		db.Close()
		return nil, errors.Wrap(err, "migrating results schema")
	}
	return &Store{db: db}, nil
}

// Record stores r. Its ID and timestamps are filled in.
func (s *Store) Record(r *GameResult) error {
	if err := s.db.Create(r).Error; err != nil {
		return errors.Wrapf(err, "recording game %s", r.GameID)
	}
	return nil
}

// Recent returns up to limit results, newest first.
func (s *Store) Recent(limit int) ([]GameResult, error) {
	var out []GameResult
	err := s.db.Order("created_at desc").Order("id desc").Limit(limit).Find(&out).Error
	if err != nil {
		return nil, errors.Wrap(err, "listing results")
	}
	return out, nil
}

// Find returns the result of one game.
func (s *Store) Find(gameID uuid.UUID) (GameResult, bool, error) {
	var r GameResult
	err := s.db.Where("game_id = ?", gameID).First(&r).Error
	if gorm.IsRecordNotFoundError(err) {
		return GameResult{}, false, nil
	}
	if err != nil {
		return GameResult{}, false, errors.Wrapf(err, "finding game %s", gameID)
	}
	return r, true, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
