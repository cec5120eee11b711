package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"tunegrab/internal/core"
)

const historySchema = `
CREATE TABLE IF NOT EXISTS fetched_tracks (
	track_id      TEXT PRIMARY KEY,
	title         TEXT NOT NULL,
	confidence    INTEGER NOT NULL,
	duration_secs INTEGER NOT NULL,
	fetched_at    TIMESTAMP NOT NULL
);
`

// History persists fetch outcomes in a SQLite database so dedup state
// survives restarts.
type History struct {
	db *sql.DB
}

// OpenHistory opens (creating if necessary) the history database at path.
func OpenHistory(path string) (*History, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	if _, err := db.Exec(historySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing history schema: %w", err)
	}

	return &History{db: db}, nil
}

// Record upserts a fetched track into the history.
func (h *History) Record(ctx context.Context, entry core.HistoryEntry) error {
	fetchedAt := entry.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now().UTC()
	}

	_, err := h.db.ExecContext(ctx, `
		INSERT INTO fetched_tracks (track_id, title, confidence, duration_secs, fetched_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(track_id) DO UPDATE SET
			title = excluded.title,
			confidence = excluded.confidence,
			duration_secs = excluded.duration_secs,
			fetched_at = excluded.fetched_at`,
		entry.TrackID, entry.Title, entry.Confidence, entry.Duration, fetchedAt)
	if err != nil {
		return fmt.Errorf("recording fetched track: %w", err)
	}
	return nil
}

// TrackIDs returns the IDs of all tracks ever fetched, oldest first.
func (h *History) TrackIDs(ctx context.Context) ([]string, error) {
	rows, err := h.db.QueryContext(ctx,
		`SELECT track_id FROM fetched_tracks ORDER BY fetched_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying fetched tracks: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning track ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating fetched tracks: %w", err)
	}
	return ids, nil
}

// Close closes the underlying database.
func (h *History) Close() error {
	return h.db.Close()
}
