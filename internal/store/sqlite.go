package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dataSourceName string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err = store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS feedback (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        text TEXT NOT NULL,
        source TEXT NOT NULL DEFAULT 'unknown',
        sentiment TEXT NOT NULL CHECK (sentiment IN ('positive', 'neutral', 'negative')),
        created_at DATETIME NOT NULL
    );

    CREATE INDEX IF NOT EXISTS idx_feedback_created_at ON feedback (created_at DESC);
    `
	_, err := s.db.Exec(schema)
	return err
}

// Insert appends a feedback record and fills in the store-assigned id.
// Records are never updated or deleted afterwards.
func (s *SQLiteStore) Insert(fb *Feedback) error {
	stmt, err := s.db.Prepare("INSERT INTO feedback (text, source, sentiment, created_at) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare feedback insert: %w", err)
	}
	defer stmt.Close()

	res, err := stmt.Exec(fb.Text, fb.Source, string(fb.Sentiment), fb.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to execute feedback insert: %w", err)
	}
	fb.ID, _ = res.LastInsertId()
	return nil
}

// ListRecent returns the latest records, newest first.
func (s *SQLiteStore) ListRecent(limit int) ([]Feedback, error) {
	query := `
        SELECT id, text, source, sentiment, created_at
        FROM feedback
        ORDER BY created_at DESC
        LIMIT ?
    `
	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent feedback: %w", err)
	}
	defer rows.Close()

	return scanFeedbackRows(rows)
}

// ListFiltered returns records matching the filter, newest first. A set
// sentiment is an exact match; a set keyword is a case-insensitive substring
// match on text. Both are optional and compose with AND.
func (s *SQLiteStore) ListFiltered(filter QueryFilter, limit int) ([]Feedback, error) {
	query := "SELECT id, text, source, sentiment, created_at FROM feedback WHERE 1=1"
	args := []any{}

	if filter.Sentiment != nil {
		query += " AND sentiment = ?"
		args = append(args, string(*filter.Sentiment))
	}
	if filter.Keyword != nil {
		query += " AND LOWER(text) LIKE '%' || LOWER(?) || '%'"
		args = append(args, *filter.Keyword)
	}

	query += " ORDER BY created_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query filtered feedback: %w", err)
	}
	defer rows.Close()

	return scanFeedbackRows(rows)
}

// CountBySentiment returns counts for all three sentiment categories,
// reporting zero for categories with no records.
func (s *SQLiteStore) CountBySentiment() (map[Sentiment]int64, error) {
	counts := map[Sentiment]int64{
		SentimentPositive: 0,
		SentimentNeutral:  0,
		SentimentNegative: 0,
	}

	rows, err := s.db.Query("SELECT sentiment, COUNT(*) FROM feedback GROUP BY sentiment")
	if err != nil {
		return nil, fmt.Errorf("failed to query sentiment counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sentiment string
		var count int64
		if err := rows.Scan(&sentiment, &count); err != nil {
			return nil, fmt.Errorf("failed to scan sentiment count row: %w", err)
		}
		counts[Sentiment(sentiment)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sentiment counts: %w", err)
	}
	return counts, nil
}

func scanFeedbackRows(rows *sql.Rows) ([]Feedback, error) {
	var records []Feedback
	for rows.Next() {
		var fb Feedback
		var sentiment string
		if err := rows.Scan(&fb.ID, &fb.Text, &fb.Source, &sentiment, &fb.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback row: %w", err)
		}
		fb.Sentiment = Sentiment(sentiment)
		records = append(records, fb)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate feedback rows: %w", err)
	}
	return records, nil
}
