package searchlog

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"reelfind/models"
)

// Store persists a per-term search counter. It is the only durable state
// the application owns; the result pipeline treats it as fire-and-forget
// and never depends on it.
type Store struct {
	db       *sql.DB
	dbPath   string
	dataPath string
}

func NewStore(dataPath string) *Store {
	return &Store{
		dbPath:   filepath.Join(dataPath, "reelfind.db"),
		dataPath: dataPath,
	}
}

// Initialize opens the database and brings the schema up to date.
func (s *Store) Initialize() error {
	if err := os.MkdirAll(s.dataPath, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", s.dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	s.db = db

	if err := runMigrations(s.db); err != nil {
		return err
	}

	log.Printf("[searchlog] database ready at %s", s.dbPath)
	return nil
}

// Record increments the counter for a search term, creating the row on
// first sight. The top-ranked hit's ID and poster are kept so trending
// terms can render artwork without another catalog round trip.
func (s *Store) Record(ctx context.Context, term string, top *models.ContentItem) error {
	var (
		contentID  int64
		posterPath string
	)
	if top != nil {
		contentID = top.ID
		posterPath = top.PosterPath
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO searches (term, count, content_id, poster_path, updated_at)
		VALUES (?, 1, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(term) DO UPDATE SET
			count = count + 1,
			content_id = excluded.content_id,
			poster_path = excluded.poster_path,
			updated_at = CURRENT_TIMESTAMP
	`, term, contentID, posterPath)
	if err != nil {
		return fmt.Errorf("record search %q: %w", term, err)
	}
	return nil
}

// Trending returns the most-searched terms, highest count first.
func (s *Store) Trending(ctx context.Context, limit int) ([]models.TrendingSearch, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT term, count, content_id, poster_path
		FROM searches
		ORDER BY count DESC, updated_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query trending searches: %w", err)
	}
	defer rows.Close()

	var out []models.TrendingSearch
	for rows.Next() {
		var ts models.TrendingSearch
		if err := rows.Scan(&ts.Term, &ts.Count, &ts.ContentID, &ts.PosterPath); err != nil {
			return nil, fmt.Errorf("scan trending search: %w", err)
		}
		out = append(out, ts)
	}
	return out, rows.Err()
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
