package core

import (
	"fmt"
	"regexp"
	"strings"

	"voxpop.io/feedback-service/internal/store"
)

const maxKeywordLength = 50

type sentimentRule struct {
	sentiment store.Sentiment
	markers   []string
}

// sentimentRules is checked in order; the first rule with a matching marker
// wins, so positive markers shadow negative ones and so on.
var sentimentRules = []sentimentRule{
	{store.SentimentPositive, []string{"positive", "good", "great", "excellent"}},
	{store.SentimentNegative, []string{"negative", "bad", "issue", "problem", "bug"}},
	{store.SentimentNeutral, []string{"neutral"}},
}

// keywordPatterns is checked in order; each captures the token run following
// a marker word ("about bugs" -> "bugs").
var keywordPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\babout\s+(\S+)`),
	regexp.MustCompile(`\bwith\s+(\S+)`),
}

// InterpretQuery maps a free-text question to a structured filter using the
// fixed rule tables above. This is deliberate substring matching, not NLP.
func InterpretQuery(query string) (store.QueryFilter, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return store.QueryFilter{}, fmt.Errorf("%w: query must not be empty", ErrValidation)
	}
	lowered := strings.ToLower(trimmed)

	var filter store.QueryFilter
	for _, rule := range sentimentRules {
		if containsAny(lowered, rule.markers) {
			sentiment := rule.sentiment
			filter.Sentiment = &sentiment
			break
		}
	}

	for _, pattern := range keywordPatterns {
		if m := pattern.FindStringSubmatch(lowered); m != nil {
			keyword := truncateKeyword(m[1])
			filter.Keyword = &keyword
			return filter, nil
		}
	}

	// Without a sentiment or a marker phrase the whole query is the keyword.
	if filter.Sentiment == nil {
		keyword := truncateKeyword(lowered)
		filter.Keyword = &keyword
	}
	return filter, nil
}

func containsAny(s string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}

func truncateKeyword(keyword string) string {
	if len(keyword) > maxKeywordLength {
		return keyword[:maxKeywordLength]
	}
	return keyword
}
