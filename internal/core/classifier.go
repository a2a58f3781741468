package core

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
	"voxpop.io/feedback-service/internal/config"
	"voxpop.io/feedback-service/internal/store"
)

const (
	defaultClassifierModelName = "gemini-1.5-flash-latest"

	// The model only distinguishes POSITIVE from NEGATIVE; low-confidence
	// results are mapped to neutral during normalization.
	confidenceThreshold = 0.6

	classifierSystemInstruction = "You are a sentiment classification model for user feedback. " +
		"Given a piece of feedback, respond with a JSON array of objects of the form " +
		"{\"label\": string, \"score\": number} ranked by score descending. " +
		"Use only the labels POSITIVE and NEGATIVE, with scores between 0 and 1 that sum to 1. " +
		"Respond with the JSON array only, no prose and no code fences."
)

// Classification is one ranked result from the external classifier.
type Classification struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classifier is the external sentiment model capability. Implementations
// return results ranked by score descending.
type Classifier interface {
	Classify(ctx context.Context, text string) ([]Classification, error)
}

// normalizeSentiment reduces ranked classifier output to the three-way
// sentiment. Missing top result, missing label, or a score below the
// confidence threshold all yield neutral; otherwise POSITIVE (any case)
// yields positive and every other label yields negative.
func normalizeSentiment(results []Classification) store.Sentiment {
	if len(results) == 0 {
		return store.SentimentNeutral
	}
	top := results[0]
	if top.Label == "" || top.Score < confidenceThreshold {
		return store.SentimentNeutral
	}
	if strings.EqualFold(top.Label, "POSITIVE") {
		return store.SentimentPositive
	}
	return store.SentimentNegative
}

type GeminiClassifier struct {
	client *genai.Client
}

func NewGeminiClassifier() *GeminiClassifier {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(config.AppConfig.GeminiAPIKey))
	if err != nil {
		log.Fatalf("Failed to create GenAI client: %v", err)
	}

	return &GeminiClassifier{
		client: client,
	}
}

func (c *GeminiClassifier) Close() {
	if c.client != nil {
		if err := c.client.Close(); err != nil {
			log.Printf("Error closing GenAI client: %v", err)
		} else {
			log.Println("GenAI client closed.")
		}
	}
}

func (c *GeminiClassifier) Classify(ctx context.Context, text string) ([]Classification, error) {
	model := c.client.GenerativeModel(defaultClassifierModelName)

	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(classifierSystemInstruction)},
	}

	temp := float32(0.0)
	maxTokens := int32(128)
	model.GenerationConfig = genai.GenerationConfig{
		MaxOutputTokens: &maxTokens,
		Temperature:     &temp,
	}

	resp, err := model.GenerateContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("gemini classification request failed: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no classification data received from gemini")
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			responseText.WriteString(string(txt))
		} else {
			log.Printf("Gemini classification response part was not text: %T", part)
		}
	}

	results, err := parseClassifierResponse(responseText.String())
	if err != nil {
		return nil, fmt.Errorf("failed to parse classifier response: %w", err)
	}
	return results, nil
}

// parseClassifierResponse decodes the model's JSON output, tolerating the
// code fences some models wrap JSON in despite instructions.
func parseClassifierResponse(raw string) ([]Classification, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var results []Classification
	if err := json.Unmarshal([]byte(cleaned), &results); err != nil {
		return nil, fmt.Errorf("invalid classification JSON %q: %w", cleaned, err)
	}
	return results, nil
}
