package store

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*SQLiteStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &SQLiteStore{db: db}, mock
}

func TestInsertPropagatesEngineFailure(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectPrepare("INSERT INTO feedback").
		ExpectExec().
		WillReturnError(errors.New("disk I/O error"))

	fb := Feedback{Text: "text", Source: "web", Sentiment: SentimentNeutral, CreatedAt: time.Now().UTC()}
	err := s.Insert(&fb)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to execute feedback insert")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertPropagatesMissingSchema(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectPrepare("INSERT INTO feedback").
		WillReturnError(errors.New("no such table: feedback"))

	fb := Feedback{Text: "text", Source: "web", Sentiment: SentimentNeutral, CreatedAt: time.Now().UTC()}
	err := s.Insert(&fb)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to prepare feedback insert")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRecentPropagatesEngineFailure(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery("SELECT id, text, source, sentiment, created_at").
		WillReturnError(errors.New("database is locked"))

	_, err := s.ListRecent(20)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to query recent feedback")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountBySentimentPropagatesEngineFailure(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery("SELECT sentiment, COUNT").
		WillReturnError(errors.New("database is locked"))

	_, err := s.CountBySentiment()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to query sentiment counts")
	assert.NoError(t, mock.ExpectationsWereMet())
}
