package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"voxpop.io/feedback-service/internal/core"
	"voxpop.io/feedback-service/internal/store"
)

type APIHandler struct {
	feedbackService *core.FeedbackService
}

func NewAPIHandler(fs *core.FeedbackService) *APIHandler {
	return &APIHandler{feedbackService: fs}
}

type SubmitFeedbackRequest struct {
	Text   string `json:"text"`
	Source string `json:"source,omitempty"`
}

func (h *APIHandler) SubmitFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	var req SubmitFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, fmt.Errorf("%w: invalid request body: %v", core.ErrMalformedQuery, err))
		return
	}

	if _, err := h.feedbackService.Ingest(r.Context(), req.Text, req.Source); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *APIHandler) RecentFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	records, err := h.feedbackService.RecentFeedback()
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, feedbackResponse{Feedback: nonNil(records)})
}

func (h *APIHandler) FilteredFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	filter := filterFromParams(r)

	records, err := h.feedbackService.FilteredFeedback(filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, feedbackResponse{Feedback: nonNil(records)})
}

type insightsResponse struct {
	Filters  store.QueryFilter `json:"filters"`
	Feedback []store.Feedback  `json:"feedback"`
}

func (h *APIHandler) InsightsHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, r, fmt.Errorf("%w: query parameter 'q' is required", core.ErrValidation))
		return
	}

	filter, err := h.feedbackService.InterpretQuery(query)
	if err != nil {
		writeError(w, r, err)
		return
	}

	records, err := h.feedbackService.FilteredFeedback(filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, insightsResponse{
		Filters:  filter,
		Feedback: nonNil(records),
	})
}

type feedbackResponse struct {
	Feedback []store.Feedback `json:"feedback"`
}

func filterFromParams(r *http.Request) store.QueryFilter {
	var filter store.QueryFilter
	if value := r.URL.Query().Get("sentiment"); value != "" {
		sentiment := store.Sentiment(value)
		filter.Sentiment = &sentiment
	}
	if value := r.URL.Query().Get("keyword"); value != "" {
		filter.Keyword = &value
	}
	return filter
}

// nonNil keeps empty listings serializing as [] instead of null.
func nonNil(records []store.Feedback) []store.Feedback {
	if records == nil {
		return []store.Feedback{}
	}
	return records
}
