// Package cache provides persistent caching of scored results keyed by
// score ID. Results are stored as JSON blobs with expiration timestamps.
package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// DefaultTTL is how long a cached score stays fresh. Scores are
// deterministic for a given input and config version, so the TTL only
// bounds table growth, not correctness.
const DefaultTTL = time.Hour

const schema = `
CREATE TABLE IF NOT EXISTS score_cache (
    score_id   TEXT PRIMARY KEY,
    data       TEXT NOT NULL,
    expires_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_score_cache_expires ON score_cache(expires_at);
`

// Repository provides cache operations for scored results.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a score cache repository and ensures its schema.
func NewRepository(db *sql.DB) (*Repository, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create score_cache schema: %w", err)
	}
	return &Repository{db: db}, nil
}

// Store saves a result with expiration = now + ttl, upserting by score ID.
func (r *Repository) Store(scoreID string, result interface{}, ttl time.Duration) error {
	jsonData, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	expiresAt := time.Now().Add(ttl).Unix()

	_, err = r.db.Exec(
		"INSERT OR REPLACE INTO score_cache (score_id, data, expires_at) VALUES (?, ?, ?)",
		scoreID, string(jsonData), expiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to store score %s: %w", scoreID, err)
	}
	return nil
}

// GetIfFresh returns the cached result only if it has not expired.
// Returns nil, nil when the score ID is unknown or stale.
func (r *Repository) GetIfFresh(scoreID string) (json.RawMessage, error) {
	now := time.Now().Unix()

	var data string
	err := r.db.QueryRow(
		"SELECT data FROM score_cache WHERE score_id = ? AND expires_at > ?",
		scoreID, now,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get score %s: %w", scoreID, err)
	}
	return json.RawMessage(data), nil
}

// Delete removes one cached result.
func (r *Repository) Delete(scoreID string) error {
	_, err := r.db.Exec("DELETE FROM score_cache WHERE score_id = ?", scoreID)
	if err != nil {
		return fmt.Errorf("failed to delete score %s: %w", scoreID, err)
	}
	return nil
}

// DeleteExpired removes all stale rows and reports how many went.
func (r *Repository) DeleteExpired() (int64, error) {
	now := time.Now().Unix()

	result, err := r.db.Exec("DELETE FROM score_cache WHERE expires_at < ?", now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired scores: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return deleted, nil
}

// Count returns the number of cached rows, fresh or stale.
func (r *Repository) Count() (int64, error) {
	var n int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM score_cache").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count score cache: %w", err)
	}
	return n, nil
}
