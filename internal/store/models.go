package store

import "time"

// Sentiment is the normalized three-way classification attached to every
// stored feedback record.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Valid reports whether s is one of the three enumerated values.
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	}
	return false
}

type Feedback struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Source    string    `json:"source"`
	Sentiment Sentiment `json:"sentiment"`
	CreatedAt time.Time `json:"created_at"`
}

// QueryFilter narrows a feedback listing. Both fields are optional;
// when both are set they compose with AND semantics.
type QueryFilter struct {
	Sentiment *Sentiment `json:"sentiment"`
	Keyword   *string    `json:"keyword"`
}
