package pagestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned by Get when no snapshot exists for the key.
var ErrNotFound = errors.New("page not found")

const schema = `
CREATE TABLE IF NOT EXISTS pages (
	collection TEXT NOT NULL,
	id         TEXT NOT NULL,
	url        TEXT NOT NULL,
	fetched_at TEXT NOT NULL,
	body       BLOB NOT NULL,
	PRIMARY KEY (collection, id)
);
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	collection  TEXT NOT NULL,
	started_at  TEXT NOT NULL,
	finished_at TEXT,
	pages       INTEGER NOT NULL DEFAULT 0
);
`

// Store holds raw page snapshots. It is safe for one writer and
// concurrent readers.
type Store struct {
	db *sql.DB
}

// Open opens the snapshot database at path, creating the file, its parent
// directory, and the schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	for _, pragma := range []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("configuring database: %w", err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores a snapshot unless one already exists for (collection, id).
// It reports whether the page was stored.
func (s *Store) Put(ctx context.Context, collection, id, url string, body []byte) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO pages (collection, id, url, fetched_at, body) VALUES (?, ?, ?, ?, ?)`,
		collection, id, url, time.Now().UTC().Format(time.RFC3339), body)
	if err != nil {
		return false, fmt.Errorf("storing page %s/%s: %w", collection, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storing page %s/%s: %w", collection, id, err)
	}
	return n > 0, nil
}

// Has reports whether a snapshot exists for (collection, id).
func (s *Store) Has(ctx context.Context, collection, id string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM pages WHERE collection = ? AND id = ?`, collection, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("looking up page %s/%s: %w", collection, id, err)
	}
	return true, nil
}

// Get returns the stored body for (collection, id), or ErrNotFound.
func (s *Store) Get(ctx context.Context, collection, id string) ([]byte, error) {
	var body []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT body FROM pages WHERE collection = ? AND id = ?`, collection, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("page %s/%s: %w", collection, id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading page %s/%s: %w", collection, id, err)
	}
	return body, nil
}

// ForEach visits every snapshot in a collection in id order. A non-nil
// error from fn stops the walk and is returned unchanged.
func (s *Store) ForEach(ctx context.Context, collection string, fn func(id string, body []byte) error) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, body FROM pages WHERE collection = ? ORDER BY id`, collection)
	if err != nil {
		return fmt.Errorf("walking collection %s: %w", collection, err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id   string
			body []byte
		)
		if err := rows.Scan(&id, &body); err != nil {
			return fmt.Errorf("walking collection %s: %w", collection, err)
		}
		if err := fn(id, body); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("walking collection %s: %w", collection, err)
	}
	return nil
}

// BeginRun records the start of a scrape over a collection and returns
// the run id.
func (s *Store) BeginRun(ctx context.Context, collection string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, collection, started_at) VALUES (?, ?, ?)`,
		id, collection, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("recording run start: %w", err)
	}
	return id, nil
}

// FinishRun stamps a run's finish time and the number of pages it stored.
func (s *Store) FinishRun(ctx context.Context, runID string, pages int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, pages = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339), pages, runID)
	if err != nil {
		return fmt.Errorf("recording run finish: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("recording run finish: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("recording run finish: no run with id %s", runID)
	}
	return nil
}
