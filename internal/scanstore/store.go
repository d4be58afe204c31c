// Package scanstore persists completed scans so GET
// /api/georisk/scans/{scanID} can serve a result after the request that
// produced it has finished. This is separate from internal/archive's S3
// upload: the archive is an optional off-box copy, this store is the
// on-box lookup the HTTP API depends on directly.
package scanstore

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/aristath/georisk/internal/domain"
)

// Store wraps a single scan_results table, following the same
// scoped-logger, msgpack-blob-column shape as internal/corpus.Store.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewStore creates a scan store backed by db.
func NewStore(db *sql.DB, log zerolog.Logger) *Store {
	return &Store{db: db, log: log.With().Str("component", "scan_store").Logger()}
}

// EnsureSchema creates the scan_results table if it does not exist.
func (s *Store) EnsureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS scan_results (
			id TEXT PRIMARY KEY,
			payload BLOB NOT NULL,
			created_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create scan_results table: %w", err)
	}
	return nil
}

// Put persists result under result.ScanID.
func (s *Store) Put(result domain.DetailedResult) error {
	payload, err := msgpack.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode scan %s: %w", result.ScanID, err)
	}
	_, err = s.db.Exec(`
		INSERT INTO scan_results (id, payload, created_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, created_at = excluded.created_at
	`, result.ScanID, payload, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to store scan %s: %w", result.ScanID, err)
	}
	return nil
}

// Get returns the scan stored under scanID, or ok=false if no such scan
// has been recorded.
func (s *Store) Get(scanID string) (domain.DetailedResult, bool, error) {
	var payload []byte
	err := s.db.QueryRow(`SELECT payload FROM scan_results WHERE id = ?`, scanID).Scan(&payload)
	if err == sql.ErrNoRows {
		return domain.DetailedResult{}, false, nil
	}
	if err != nil {
		return domain.DetailedResult{}, false, fmt.Errorf("failed to read scan %s: %w", scanID, err)
	}

	var result domain.DetailedResult
	if err := msgpack.Unmarshal(payload, &result); err != nil {
		return domain.DetailedResult{}, false, fmt.Errorf("failed to decode scan %s: %w", scanID, err)
	}
	return result, true, nil
}
