// Package corpus implements the local signal corpus store and the
// filtered read operations described in SPEC_FULL.md §4.6: queryGlobalItems
// and querySnapshots. Both operations must tolerate store failure by
// returning an empty result and logging a warning rather than propagating
// the failure to the pipeline.
package corpus

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/aristath/georisk/internal/domain"
)

// Store wraps the corpus's two tables (global_items, country_snapshots).
type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewStore creates a corpus store backed by db.
func NewStore(db *sql.DB, log zerolog.Logger) *Store {
	return &Store{db: db, log: log.With().Str("component", "corpus_store").Logger()}
}

// EnsureSchema creates the corpus tables and indexes if they do not exist.
func (s *Store) EnsureSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS corpus_watermark (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			refreshed_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS global_items (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			summary TEXT NOT NULL,
			source_name TEXT,
			source_url TEXT,
			url TEXT UNIQUE,
			published_at TEXT,
			topic TEXT,
			countries TEXT NOT NULL DEFAULT '[]',
			country_ids TEXT NOT NULL DEFAULT '[]',
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_global_items_created_at ON global_items(created_at)`,
		`CREATE TABLE IF NOT EXISTS country_snapshots (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			activity_level TEXT NOT NULL,
			updated_at TEXT,
			events BLOB,
			signals INTEGER DEFAULT 0,
			disputes INTEGER DEFAULT 0,
			confidence REAL DEFAULT 0,
			updated_at_db INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_country_snapshots_activity ON country_snapshots(activity_level)`,
		`CREATE INDEX IF NOT EXISTS idx_country_snapshots_updated_at_db ON country_snapshots(updated_at_db)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply corpus schema: %w", err)
		}
	}
	return nil
}

// PutGlobalItem inserts or replaces a corpus news item, assigning it an ID
// if it doesn't have one.
func (s *Store) PutGlobalItem(item domain.GlobalItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	countries, err := json.Marshal(item.Countries)
	if err != nil {
		return fmt.Errorf("failed to encode countries: %w", err)
	}
	countryIDs, err := json.Marshal(item.CountryIDs)
	if err != nil {
		return fmt.Errorf("failed to encode country ids: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO global_items (id, title, summary, source_name, source_url, url, published_at, topic, countries, country_ids, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			title = excluded.title, summary = excluded.summary, published_at = excluded.published_at
	`, item.ID, item.Title, item.Summary, item.SourceName, item.SourceURL, item.URL, item.PublishedAt, item.Topic,
		string(countries), string(countryIDs), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to store global item: %w", err)
	}
	return nil
}

// TouchWatermark records the current time as the corpus's last-refreshed
// timestamp. The ingestion collaborator calls this after every refresh
// cycle; it has no effect on query results but gives operators a signal
// for how stale the corpus is.
func (s *Store) TouchWatermark() error {
	_, err := s.db.Exec(`
		INSERT INTO corpus_watermark (id, refreshed_at) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET refreshed_at = excluded.refreshed_at
	`, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to touch corpus watermark: %w", err)
	}
	return nil
}

// Watermark returns the last-refreshed timestamp, or the zero time if the
// corpus has never been refreshed.
func (s *Store) Watermark() (time.Time, error) {
	var unix int64
	err := s.db.QueryRow(`SELECT refreshed_at FROM corpus_watermark WHERE id = 1`).Scan(&unix)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read corpus watermark: %w", err)
	}
	return time.Unix(unix, 0).UTC(), nil
}

// PutSnapshot inserts or replaces a country snapshot.
func (s *Store) PutSnapshot(snap domain.CountrySnapshot) error {
	if snap.ID == "" {
		snap.ID = uuid.NewString()
	}
	events, err := msgpack.Marshal(snap.Events)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot events: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO country_snapshots (id, name, activity_level, updated_at, events, signals, disputes, confidence, updated_at_db)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			activity_level = excluded.activity_level, updated_at = excluded.updated_at,
			events = excluded.events, signals = excluded.signals, disputes = excluded.disputes,
			confidence = excluded.confidence, updated_at_db = excluded.updated_at_db
	`, snap.ID, snap.Name, snap.ActivityLevel, snap.UpdatedAt, events,
		snap.Stats.Signals, snap.Stats.Disputes, snap.Stats.Confidence, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to store country snapshot: %w", err)
	}
	return nil
}
