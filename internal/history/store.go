package history

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/mfreitas/clima-api/internal/model"
)

const defaultRecentLimit = 20

// Store keeps the lookup history of the current session
type Store struct {
	db *sqlx.DB
}

// NewStore creates a history store on an opened database
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Record appends one completed lookup
func (s *Store) Record(ctx context.Context, rec model.LookupRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO lookups (location, source, temperature, condition) VALUES (?, ?, ?, ?)`,
		rec.Location, rec.Source, rec.Temperature, rec.Condition,
	)
	return err
}

// Recent returns the most recent lookups, newest first
func (s *Store) Recent(ctx context.Context, limit int) ([]model.LookupRecord, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	records := []model.LookupRecord{}
	err := s.db.SelectContext(ctx, &records,
		`SELECT id, location, source, temperature, condition, looked_up_at
		 FROM lookups ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Count returns the total number of lookups this session
func (s *Store) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM lookups`); err != nil {
		return 0, err
	}
	return count, nil
}

// TopLocations returns the most looked-up locations of the session
func (s *Store) TopLocations(ctx context.Context, limit int) ([]LocationCount, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	results := []LocationCount{}
	err := s.db.SelectContext(ctx, &results,
		`SELECT location, COUNT(*) AS lookups
		 FROM lookups GROUP BY location ORDER BY lookups DESC, location LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// LocationCount pairs a location with its lookup count
type LocationCount struct {
	Location string `json:"location" db:"location"`
	Lookups  int64  `json:"lookups" db:"lookups"`
}
