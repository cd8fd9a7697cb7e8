package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/eviction-cares/internal/engine"
)

// SuggestionsHandler serves the proximity suggestion queue
type SuggestionsHandler struct {
	Engine Suggestions
	Logger *zap.Logger
}

// SuggestionsResponse is the full review queue
type SuggestionsResponse struct {
	Suggestions         []engine.SuggestionGroup `json:"suggestions"`
	ArchivedSuggestions []engine.SuggestionGroup `json:"archivedSuggestions"`
	NumSuggestions      int                      `json:"numSuggestions"`
}

// PairRequest names one eviction/property pair
type PairRequest struct {
	CaresID int64  `json:"caresId"`
	CaseID  string `json:"caseID"`
}

// ListSuggestions returns open suggestions, past decisions and the count
func (h *SuggestionsHandler) ListSuggestions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	open, err := h.Engine.List(ctx)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	archived, err := h.Engine.ListArchived(ctx)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	resp := SuggestionsResponse{
		Suggestions:         nonNil(open),
		ArchivedSuggestions: nonNil(archived),
	}
	for _, g := range open {
		resp.NumSuggestions += len(g.Suggestions)
	}
	writeJSON(w, http.StatusOK, resp)
}

// CountSuggestions returns the number of open suggestions
func (h *SuggestionsHandler) CountSuggestions(w http.ResponseWriter, r *http.Request) {
	n, err := h.Engine.Count(r.Context())
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": n})
}

// GetLocations returns both points of a pair for map verification
func (h *SuggestionsHandler) GetLocations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	propertyID, err := strconv.ParseInt(query.Get("caresId"), 10, 64)
	if err != nil {
		writeError(w, h.Logger, badRequest("caresId", "must be an integer"))
		return
	}
	caseID := strings.TrimSpace(query.Get("caseID"))
	if caseID == "" {
		writeError(w, h.Logger, badRequest("caseID", "is required"))
		return
	}

	locs, err := h.Engine.Locations(r.Context(), propertyID, caseID)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, locs)
}

// Confirm records a manual match
func (h *SuggestionsHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.classify(w, r, h.Engine.Confirm, "confirmed")
}

// Reject records a manual rejection
func (h *SuggestionsHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.classify(w, r, h.Engine.Reject, "rejected")
}

// Undo removes a manual decision
func (h *SuggestionsHandler) Undo(w http.ResponseWriter, r *http.Request) {
	h.classify(w, r, h.Engine.Undo, "undone")
}

type pairAction func(ctx context.Context, propertyID int64, caseID string) error

func (h *SuggestionsHandler) classify(w http.ResponseWriter, r *http.Request, action pairAction, status string) {
	var req PairRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.Logger, badRequest("body", "invalid JSON"))
		return
	}
	req.CaseID = strings.TrimSpace(req.CaseID)
	if req.CaseID == "" {
		writeError(w, h.Logger, badRequest("caseID", "is required"))
		return
	}

	if err := action(r.Context(), req.CaresID, req.CaseID); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  status,
		"caresId": req.CaresID,
		"caseID":  req.CaseID,
	})
}

func nonNil(groups []engine.SuggestionGroup) []engine.SuggestionGroup {
	if groups == nil {
		return []engine.SuggestionGroup{}
	}
	return groups
}
