package handlers

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/eviction-cares/internal/engine"
	"github.com/eviction-cares/internal/ingest"
)

// PreviewRows is how many rows the preview returns
const PreviewRows = 5

// UploadHandler accepts eviction files
type UploadHandler struct {
	Pipeline Ingestor
	MaxBytes int64
	Logger   *zap.Logger
}

// PreviewResponse shows an upload's columns before the operator maps them
type PreviewResponse struct {
	Columns []string            `json:"columns"`
	Rows    map[string][]string `json:"rows"`
}

// Preview returns the header and first rows of an uploaded file
func (h *UploadHandler) Preview(w http.ResponseWriter, r *http.Request) {
	file, header, err := h.openFile(w, r)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	defer file.Close()

	table, err := engine.Preview(header.Filename, file, PreviewRows)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, PreviewResponse{Columns: table.Columns, Rows: table.ByColumn()})
}

// Confirm ingests an uploaded file with the operator's column mapping, sent
// as a JSON object of source column to required column in the cols field
func (h *UploadHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	file, header, err := h.openFile(w, r)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	defer file.Close()

	var mapping ingest.ColumnMapping
	if cols := strings.TrimSpace(r.FormValue("cols")); cols != "" {
		if err := json.Unmarshal([]byte(cols), &mapping); err != nil {
			writeError(w, h.Logger, badRequest("cols", "must be a JSON object of column names"))
			return
		}
	}

	table, err := ingest.ReadTable(header.Filename, file)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	h.Logger.Info("upload received",
		zap.String("file", header.Filename),
		zap.Int("rows", len(table.Rows)),
		zap.String("mapping", mapping.String()))

	report, err := h.Pipeline.Run(r.Context(), engine.Upload{
		Name:    header.Filename,
		Table:   table,
		Mapping: mapping,
	})
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *UploadHandler) openFile(w http.ResponseWriter, r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxBytes)
	if err := r.ParseMultipartForm(h.MaxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, nil, badRequest("file", "upload too large")
		}
		return nil, nil, badRequest("file", "expected a multipart form")
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, nil, badRequest("file", "is required")
	}
	return file, header, nil
}
