package engine

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/eviction-cares/internal/models"
)

// Run statuses
const (
	RunStaging  = "staging"
	RunPromoted = "promoted"
	RunFailed   = "failed"
)

// IngestRun is one row of the run registry
type IngestRun struct {
	RunID      uuid.UUID  `json:"runId"`
	SourceName string     `json:"sourceName"`
	Status     string     `json:"status"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
	Report     *RunReport `json:"report,omitempty"`
	Error      string     `json:"error,omitempty"`
}

// RunRegistry records ingestion runs. Staging rows reference their run.
type RunRegistry struct {
	db *sql.DB
}

// NewRunRegistry creates a run registry
func NewRunRegistry(conn *sql.DB) *RunRegistry {
	return &RunRegistry{db: conn}
}

// Start registers a new run and returns its id
func (r *RunRegistry) Start(ctx context.Context, sourceName string) (uuid.UUID, error) {
	runID := uuid.New()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ingest_run (run_id, source_name, status)
		VALUES ($1, $2, $3)
	`, runID, sourceName, RunStaging)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create ingest run: %w", err)
	}
	return runID, nil
}

// Finish stores the final status and report of a run
func (r *RunRegistry) Finish(ctx context.Context, runID uuid.UUID, status string, report *RunReport, runErr error) error {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal run report: %w", err)
	}
	var errText sql.NullString
	if runErr != nil {
		errText = sql.NullString{String: runErr.Error(), Valid: true}
	}

	_, err = r.db.ExecContext(ctx, `
		UPDATE ingest_run
		SET status = $2, finished_at = now(), report = $3, error = $4
		WHERE run_id = $1
	`, runID, status, reportJSON, errText)
	if err != nil {
		return fmt.Errorf("failed to complete ingest run: %w", err)
	}
	return nil
}

// Get returns one run
func (r *RunRegistry) Get(ctx context.Context, runID uuid.UUID) (*IngestRun, error) {
	run := &IngestRun{RunID: runID}
	var source, errText sql.NullString
	var reportJSON []byte
	var finished sql.NullTime

	err := r.db.QueryRowContext(ctx, `
		SELECT source_name, status, started_at, finished_at, report, error
		FROM ingest_run
		WHERE run_id = $1
	`, runID).Scan(&source, &run.Status, &run.StartedAt, &finished, &reportJSON, &errText)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &models.NotFoundError{Kind: "ingest run", ID: runID.String()}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query ingest run %s: %w", runID, err)
	}

	run.SourceName = source.String
	run.Error = errText.String
	if finished.Valid {
		run.FinishedAt = &finished.Time
	}
	if len(reportJSON) > 0 && string(reportJSON) != "null" {
		run.Report = &RunReport{}
		if err := json.Unmarshal(reportJSON, run.Report); err != nil {
			return nil, fmt.Errorf("failed to decode run report: %w", err)
		}
	}
	return run, nil
}
