package core

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"voxpop.io/feedback-service/internal/store"
)

func TestInterpretQuerySentimentAndKeyword(t *testing.T) {
	filter, err := InterpretQuery("show me negative feedback about bugs")
	require.NoError(t, err)

	require.NotNil(t, filter.Sentiment)
	assert.Equal(t, store.SentimentNegative, *filter.Sentiment)
	require.NotNil(t, filter.Keyword)
	assert.Equal(t, "bugs", *filter.Keyword)
}

func TestInterpretQuerySentimentOnly(t *testing.T) {
	filter, err := InterpretQuery("great job")
	require.NoError(t, err)

	require.NotNil(t, filter.Sentiment)
	assert.Equal(t, store.SentimentPositive, *filter.Sentiment)
	assert.Nil(t, filter.Keyword)
}

func TestInterpretQueryFallsBackToFullQueryKeyword(t *testing.T) {
	filter, err := InterpretQuery("slow loading times")
	require.NoError(t, err)

	assert.Nil(t, filter.Sentiment)
	require.NotNil(t, filter.Keyword)
	assert.Equal(t, "slow loading times", *filter.Keyword)
}

func TestInterpretQuerySentimentPriorityOrder(t *testing.T) {
	// "good" (positive) and "bug" (negative) both appear; positive rules
	// are checked first.
	filter, err := InterpretQuery("good riddance to that bug")
	require.NoError(t, err)

	require.NotNil(t, filter.Sentiment)
	assert.Equal(t, store.SentimentPositive, *filter.Sentiment)
}

func TestInterpretQueryNeutralMarker(t *testing.T) {
	filter, err := InterpretQuery("any neutral comments lately")
	require.NoError(t, err)

	require.NotNil(t, filter.Sentiment)
	assert.Equal(t, store.SentimentNeutral, *filter.Sentiment)
}

func TestInterpretQueryWithPhrase(t *testing.T) {
	filter, err := InterpretQuery("feedback with checkout")
	require.NoError(t, err)

	require.NotNil(t, filter.Keyword)
	assert.Equal(t, "checkout", *filter.Keyword)
}

func TestInterpretQueryAboutTakesPrecedenceOverWith(t *testing.T) {
	filter, err := InterpretQuery("issues with billing about refunds")
	require.NoError(t, err)

	require.NotNil(t, filter.Keyword)
	assert.Equal(t, "refunds", *filter.Keyword)
}

func TestInterpretQueryIsCaseInsensitive(t *testing.T) {
	filter, err := InterpretQuery("Show Me NEGATIVE Feedback ABOUT Bugs")
	require.NoError(t, err)

	require.NotNil(t, filter.Sentiment)
	assert.Equal(t, store.SentimentNegative, *filter.Sentiment)
	require.NotNil(t, filter.Keyword)
	assert.Equal(t, "bugs", *filter.Keyword)
}

func TestInterpretQueryTruncatesLongKeyword(t *testing.T) {
	long := strings.Repeat("x", 80)
	filter, err := InterpretQuery("about " + long)
	require.NoError(t, err)

	require.NotNil(t, filter.Keyword)
	assert.Len(t, *filter.Keyword, maxKeywordLength)

	// The full-query fallback is capped the same way.
	filter, err = InterpretQuery(long)
	require.NoError(t, err)
	require.NotNil(t, filter.Keyword)
	assert.Len(t, *filter.Keyword, maxKeywordLength)
}

func TestInterpretQueryRejectsEmptyQuery(t *testing.T) {
	for _, query := range []string{"", "   ", "\t\n"} {
		_, err := InterpretQuery(query)
		assert.True(t, errors.Is(err, ErrValidation), "query %q should fail validation", query)
	}
}
