package handlers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/eviction-cares/internal/audit"
)

// RecordsHandler serves single-record lookups
type RecordsHandler struct {
	Engine Suggestions
	Audit  History
	Runs   Runs
	Logger *zap.Logger
}

// GetProperty returns one property with its linked eviction count
func (h *RecordsHandler) GetProperty(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, h.Logger, badRequest("id", "must be an integer"))
		return
	}

	property, err := h.Engine.Property(r.Context(), id)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, property)
}

// GetHistory returns the manual decisions recorded for a case
func (h *RecordsHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Audit.History(r.Context(), mux.Vars(r)["caseID"])
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	if entries == nil {
		entries = []audit.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// GetRun returns an ingestion run and its report
func (h *RecordsHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	runID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, h.Logger, badRequest("id", "must be a run id"))
		return
	}

	run, err := h.Runs.Get(r.Context(), runID)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}
