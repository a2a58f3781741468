package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"voxpop.io/feedback-service/internal/store"
)

const (
	// RecentFeedLimit bounds the unfiltered recent feed.
	RecentFeedLimit = 20
	// FilteredFeedLimit bounds filtered listings.
	FilteredFeedLimit = 50

	// DefaultSource labels records submitted without an origin channel.
	DefaultSource = "unknown"
)

// FeedbackStore is the durable, append-only record collection the service
// writes to and reads from. *store.SQLiteStore satisfies it.
type FeedbackStore interface {
	Insert(fb *store.Feedback) error
	ListRecent(limit int) ([]store.Feedback, error)
	ListFiltered(filter store.QueryFilter, limit int) ([]store.Feedback, error)
	CountBySentiment() (map[store.Sentiment]int64, error)
}

type FeedbackService struct {
	dbStore    FeedbackStore
	classifier Classifier
}

func NewFeedbackService(db FeedbackStore, classifier Classifier) *FeedbackService {
	return &FeedbackService{
		dbStore:    db,
		classifier: classifier,
	}
}

// Ingest validates the submission, classifies its sentiment, and persists
// the record. Each step is terminal on failure: nothing is written unless
// validation and classification both succeed, and no retries are performed.
func (s *FeedbackService) Ingest(ctx context.Context, text, source string) (*store.Feedback, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: feedback text must not be empty", ErrValidation)
	}
	if strings.TrimSpace(source) == "" {
		source = DefaultSource
	}

	results, err := s.classifier.Classify(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassification, err)
	}

	fb := &store.Feedback{
		Text:      text,
		Source:    source,
		Sentiment: normalizeSentiment(results),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.dbStore.Insert(fb); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return fb, nil
}

// RecentFeedback returns the latest records, newest first.
func (s *FeedbackService) RecentFeedback() ([]store.Feedback, error) {
	records, err := s.dbStore.ListRecent(RecentFeedLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return records, nil
}

// FilteredFeedback returns records matching the filter, newest first. An
// invalid sentiment value is rejected; keywords are capped before they reach
// the store.
func (s *FeedbackService) FilteredFeedback(filter store.QueryFilter) ([]store.Feedback, error) {
	if filter.Sentiment != nil && !filter.Sentiment.Valid() {
		return nil, fmt.Errorf("%w: invalid sentiment %q", ErrValidation, *filter.Sentiment)
	}
	if filter.Keyword != nil {
		keyword := *filter.Keyword
		if len(keyword) > maxKeywordLength {
			keyword = keyword[:maxKeywordLength]
			filter.Keyword = &keyword
		}
	}

	records, err := s.dbStore.ListFiltered(filter, FilteredFeedLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return records, nil
}

// SentimentCounts aggregates record counts per sentiment, always covering
// all three categories.
func (s *FeedbackService) SentimentCounts() (map[store.Sentiment]int64, error) {
	counts, err := s.dbStore.CountBySentiment()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return counts, nil
}

// InterpretQuery translates a free-text question into a structured filter.
func (s *FeedbackService) InterpretQuery(query string) (store.QueryFilter, error) {
	return InterpretQuery(query)
}
