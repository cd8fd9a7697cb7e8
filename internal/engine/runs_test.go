package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eviction-cares/internal/models"
)

func TestRunRegistryStart(t *testing.T) {
	conn, mock := newMock(t)

	mock.ExpectExec(`INSERT INTO ingest_run \(run_id, source_name, status\)`).
		WithArgs(sqlmock.AnyArg(), "upload.xlsx", RunStaging).
		WillReturnResult(sqlmock.NewResult(0, 1))

	runID, err := NewRunRegistry(conn).Start(context.Background(), "upload.xlsx")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, runID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunRegistryFinish(t *testing.T) {
	conn, mock := newMock(t)
	runID := uuid.New()

	mock.ExpectExec(`UPDATE ingest_run\s+SET status = \$2, finished_at = now\(\), report = \$3, error = \$4`).
		WithArgs(runID, RunFailed, []byte(`{"runId":"`+runID.String()+`","received":2,"dropped":0,"duplicates":0,"staged":2,"badDates":0,"exactMatched":0,"exactRelationships":0,"unresolved":0,"geocoded":0,"geocodeFailed":0,"nearProperty":0,"promoted":0,"skippedExisting":0}`), "boom").
		WillReturnResult(sqlmock.NewResult(0, 1))

	report := &RunReport{RunID: runID, Received: 2, Staged: 2}
	err := NewRunRegistry(conn).Finish(context.Background(), runID, RunFailed, report, errors.New("boom"))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunRegistryGet(t *testing.T) {
	conn, mock := newMock(t)
	runID := uuid.New()
	started := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	finished := started.Add(time.Minute)

	mock.ExpectQuery(`FROM ingest_run\s+WHERE run_id = \$1`).
		WithArgs(runID).
		WillReturnRows(sqlmock.NewRows([]string{"source_name", "status", "started_at", "finished_at", "report", "error"}).
			AddRow("upload.csv", RunPromoted, started, finished, []byte(`{"received":5,"promoted":4}`), nil))

	run, err := NewRunRegistry(conn).Get(context.Background(), runID)
	require.NoError(t, err)
	assert.Equal(t, "upload.csv", run.SourceName)
	assert.Equal(t, RunPromoted, run.Status)
	require.NotNil(t, run.FinishedAt)
	assert.Equal(t, finished, *run.FinishedAt)
	require.NotNil(t, run.Report)
	assert.Equal(t, 5, run.Report.Received)
	assert.Equal(t, 4, run.Report.Promoted)
	assert.Empty(t, run.Error)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunRegistryGetUnknown(t *testing.T) {
	conn, mock := newMock(t)

	mock.ExpectQuery(`FROM ingest_run`).
		WillReturnRows(sqlmock.NewRows([]string{"source_name", "status", "started_at", "finished_at", "report", "error"}))

	_, err := NewRunRegistry(conn).Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
