// Package handlers adapts the linkage engine to HTTP. Handlers decode the
// request, call one engine operation and encode its result; no matching
// logic lives here.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eviction-cares/internal/audit"
	"github.com/eviction-cares/internal/engine"
	"github.com/eviction-cares/internal/models"
)

// Suggestions is the part of the suggestion engine the API exposes
type Suggestions interface {
	Count(ctx context.Context) (int, error)
	List(ctx context.Context) ([]engine.SuggestionGroup, error)
	ListArchived(ctx context.Context) ([]engine.SuggestionGroup, error)
	Confirm(ctx context.Context, propertyID int64, caseID string) error
	Reject(ctx context.Context, propertyID int64, caseID string) error
	Undo(ctx context.Context, propertyID int64, caseID string) error
	Locations(ctx context.Context, propertyID int64, caseID string) (*engine.MapLocations, error)
	Property(ctx context.Context, propertyID int64) (*models.PropertyRecord, error)
}

// Ingestor runs an upload through the pipeline
type Ingestor interface {
	Run(ctx context.Context, up engine.Upload) (*engine.RunReport, error)
}

// Runs looks up ingestion runs
type Runs interface {
	Get(ctx context.Context, runID uuid.UUID) (*engine.IngestRun, error)
}

// History reads the manual decision ledger
type History interface {
	History(ctx context.Context, caseID string) ([]audit.Entry, error)
}

// ErrorResponse is the body of every non-2xx reply
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps engine errors onto status codes. Unexpected errors are
// logged and reported without detail.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, models.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, models.ErrConflict):
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		logger.Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

func badRequest(field, reason string) error {
	return &models.ValidationError{Field: field, Reason: reason}
}
