package corpus

import (
	"encoding/json"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/aristath/georisk/internal/domain"
)

const (
	globalItemsCap = 200
	snapshotsCap   = 50
)

var activityPriority = map[string]int{
	"Critical": 3,
	"High":     2,
	"Medium":   1,
}

// QueryGlobalItems filters the corpus by profile.Country, falling back to
// an unfiltered read if the country filter yields nothing, then post-
// filters by publishedAt within lookbackDays. Any persistence failure
// yields an empty list and a warning log, never an error to the caller.
func (s *Store) QueryGlobalItems(profile domain.AssetProfile, lookbackDays int) []domain.GlobalItem {
	items, err := s.readGlobalItems(profile.Country)
	if err != nil {
		s.log.Warn().Err(err).Msg("corpus query failed; returning no global items")
		return nil
	}

	if len(items) == 0 && profile.Country != "" {
		items, err = s.readGlobalItems("")
		if err != nil {
			s.log.Warn().Err(err).Msg("corpus fallback query failed; returning no global items")
			return nil
		}
	}

	cutoff := time.Now().AddDate(0, 0, -lookbackDays)
	var filtered []domain.GlobalItem
	for _, item := range items {
		published, err := time.Parse(time.RFC3339, item.PublishedAt)
		if err != nil {
			published, err = time.Parse("2006-01-02", item.PublishedAt)
		}
		if err == nil && published.Before(cutoff) {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}

func (s *Store) readGlobalItems(country string) ([]domain.GlobalItem, error) {
	query := `SELECT id, title, summary, source_name, source_url, url, published_at, topic, countries, country_ids, created_at
		FROM global_items`
	args := []any{}
	if country != "" {
		query += ` WHERE countries LIKE ?`
		args = append(args, "%\""+country+"\"%")
	}
	query += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, globalItemsCap)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.GlobalItem
	for rows.Next() {
		var item domain.GlobalItem
		var countriesJSON, countryIDsJSON string
		var createdAtUnix int64
		if err := rows.Scan(&item.ID, &item.Title, &item.Summary, &item.SourceName, &item.SourceURL,
			&item.URL, &item.PublishedAt, &item.Topic, &countriesJSON, &countryIDsJSON, &createdAtUnix); err != nil {
			continue
		}
		_ = json.Unmarshal([]byte(countriesJSON), &item.Countries)
		_ = json.Unmarshal([]byte(countryIDsJSON), &item.CountryIDs)
		item.CreatedAt = time.Unix(createdAtUnix, 0).UTC()
		items = append(items, item)
	}
	return items, rows.Err()
}

// QuerySnapshots filters country snapshots by a country substring and
// activity level, falling back to an unfiltered-by-country read if needed.
// Persistence failures yield an empty list and a warning log.
func (s *Store) QuerySnapshots(profile domain.AssetProfile, lookbackDays int) []domain.CountrySnapshot {
	snaps, err := s.readSnapshots(profile.Country)
	if err != nil {
		s.log.Warn().Err(err).Msg("corpus snapshot query failed; returning no snapshots")
		return nil
	}
	if len(snaps) == 0 && profile.Country != "" {
		snaps, err = s.readSnapshots("")
		if err != nil {
			s.log.Warn().Err(err).Msg("corpus snapshot fallback query failed; returning no snapshots")
			return nil
		}
	}
	return snaps
}

func (s *Store) readSnapshots(country string) ([]domain.CountrySnapshot, error) {
	query := `SELECT id, name, activity_level, updated_at, events, signals, disputes, confidence, updated_at_db
		FROM country_snapshots WHERE activity_level IN ('Critical','High','Medium')`
	args := []any{}
	if country != "" {
		query += ` AND name LIKE ?`
		args = append(args, "%"+country+"%")
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []domain.CountrySnapshot
	for rows.Next() {
		var snap domain.CountrySnapshot
		var eventsBlob []byte
		var updatedAtUnix int64
		if err := rows.Scan(&snap.ID, &snap.Name, &snap.ActivityLevel, &snap.UpdatedAt, &eventsBlob,
			&snap.Stats.Signals, &snap.Stats.Disputes, &snap.Stats.Confidence, &updatedAtUnix); err != nil {
			continue
		}
		_ = msgpack.Unmarshal(eventsBlob, &snap.Events)
		snap.UpdatedAtDB = time.Unix(updatedAtUnix, 0).UTC()
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sortSnapshotsByActivityThenRecency(snaps)
	if len(snaps) > snapshotsCap {
		snaps = snaps[:snapshotsCap]
	}
	return snaps, nil
}

func sortSnapshotsByActivityThenRecency(snaps []domain.CountrySnapshot) {
	for i := 1; i < len(snaps); i++ {
		for j := i; j > 0; j-- {
			a, b := snaps[j-1], snaps[j]
			if activityPriority[a.ActivityLevel] < activityPriority[b.ActivityLevel] ||
				(activityPriority[a.ActivityLevel] == activityPriority[b.ActivityLevel] && a.UpdatedAtDB.Before(b.UpdatedAtDB)) {
				snaps[j-1], snaps[j] = snaps[j], snaps[j-1]
				continue
			}
			break
		}
	}
}
