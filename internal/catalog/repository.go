package catalog

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/georisk/internal/domain"
)

// Repository persists the theme catalog, one JSON-encoded row per theme,
// following the same scoped-logger and table-per-concern idiom as
// internal/settings.Repository.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a catalog repository backed by db.
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{db: db, log: log.With().Str("repository", "catalog").Logger()}
}

// EnsureSchema creates the themes table if it does not exist.
func (r *Repository) EnsureSchema() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS themes (
			name TEXT PRIMARY KEY,
			active INTEGER NOT NULL DEFAULT 1,
			data TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create themes table: %w", err)
	}
	return nil
}

// ListActive returns every active theme definition in the store, or nil if
// no row is flagged active (an empty store and a store whose rows are all
// inactive both yield nil, and Provider falls back to DefaultThemes for
// either).
func (r *Repository) ListActive() ([]domain.ThemeDefinition, error) {
	rows, err := r.db.Query(`SELECT data FROM themes WHERE active = 1`)
	if err != nil {
		return nil, fmt.Errorf("failed to query themes: %w", err)
	}
	defer rows.Close()

	var themes []domain.ThemeDefinition
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			r.log.Warn().Err(err).Msg("failed to scan theme row")
			continue
		}
		var theme domain.ThemeDefinition
		if err := json.Unmarshal([]byte(raw), &theme); err != nil {
			r.log.Warn().Err(err).Msg("failed to decode theme row")
			continue
		}
		themes = append(themes, theme)
	}
	return themes, rows.Err()
}

// Count returns how many rows (active or not) exist in the store.
func (r *Repository) Count() (int, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM themes`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count themes: %w", err)
	}
	return n, nil
}

// Put inserts or replaces a theme definition.
func (r *Repository) Put(theme domain.ThemeDefinition) error {
	data, err := json.Marshal(theme)
	if err != nil {
		return fmt.Errorf("failed to encode theme %s: %w", theme.Name, err)
	}
	active := 0
	if theme.Active {
		active = 1
	}
	_, err = r.db.Exec(`
		INSERT INTO themes (name, active, data) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET active = excluded.active, data = excluded.data
	`, theme.Name, active, string(data))
	if err != nil {
		return fmt.Errorf("failed to store theme %s: %w", theme.Name, err)
	}
	return nil
}

// Seed populates the store with DefaultThemes if it is currently empty.
func (r *Repository) Seed() error {
	count, err := r.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, theme := range DefaultThemes() {
		if err := r.Put(theme); err != nil {
			return err
		}
	}
	return nil
}
