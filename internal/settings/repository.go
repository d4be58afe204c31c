package settings

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Repository persists ScoringSettings records in a `scoring_settings`
// table keyed by name, with an `active` flag and the record body stored as
// JSON. This mirrors the teacher's settings repository idiom (scoped
// logger, INSERT ... ON CONFLICT DO UPDATE) applied to named records
// instead of flat key-value pairs, since §4.1's resolution order needs
// record identity ("the active record named default") rather than a bag
// of scalar keys.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a settings repository backed by db.
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repository", "settings").Logger(),
	}
}

// EnsureSchema creates the scoring_settings table if it does not exist.
func (r *Repository) EnsureSchema() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS scoring_settings (
			name TEXT PRIMARY KEY,
			active INTEGER NOT NULL DEFAULT 0,
			data TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create scoring_settings table: %w", err)
	}
	return nil
}

// GetActiveDefault returns the persisted record named "default" and
// flagged active, if one exists.
func (r *Repository) GetActiveDefault() (*ScoringSettings, error) {
	return r.queryOne(`SELECT data FROM scoring_settings WHERE name = 'default' AND active = 1`)
}

// GetAnyActive returns any persisted record flagged active, if one exists.
func (r *Repository) GetAnyActive() (*ScoringSettings, error) {
	return r.queryOne(`SELECT data FROM scoring_settings WHERE active = 1 ORDER BY updated_at DESC LIMIT 1`)
}

func (r *Repository) queryOne(query string) (*ScoringSettings, error) {
	var raw string
	err := r.db.QueryRow(query).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query scoring settings: %w", err)
	}

	var settings ScoringSettings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		r.log.Warn().Err(err).Msg("Failed to decode scoring settings record; ignoring")
		return nil, nil
	}
	return &settings, nil
}

// Put inserts or replaces the named record.
func (r *Repository) Put(s ScoringSettings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode scoring settings: %w", err)
	}

	active := 0
	if s.Active {
		active = 1
	}

	_, err = r.db.Exec(`
		INSERT INTO scoring_settings (name, active, data, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			active = excluded.active,
			data = excluded.data,
			updated_at = excluded.updated_at
	`, s.Name, active, string(data), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to store scoring settings %s: %w", s.Name, err)
	}
	return nil
}
