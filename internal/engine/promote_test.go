package engine

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPromote(t *testing.T) {
	conn, mock := newMock(t)
	runID := uuid.New()
	tx := beginTx(t, conn, mock)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM staged_eviction WHERE run_id = \$1`).
		WithArgs(runID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`INSERT INTO evictions .+ FROM staged_eviction\s+WHERE run_id = \$1\s+ON CONFLICT \(case_id\) DO NOTHING\s+RETURNING case_id`).
		WithArgs(runID).
		WillReturnRows(sqlmock.NewRows([]string{"case_id"}).AddRow("A1").AddRow("B2"))
	mock.ExpectExec(`INSERT INTO eviction_cares .+ WHERE run_id = \$1 AND eviction_id = ANY\(\$2\)`).
		WithArgs(runID, `{"A1","B2"}`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM staged_relationship WHERE run_id = \$1`).WithArgs(runID).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM staged_eviction WHERE run_id = \$1`).WithArgs(runID).WillReturnResult(sqlmock.NewResult(0, 3))

	result, err := NewPromoter(zap.NewNop()).Promote(context.Background(), tx, runID)
	require.NoError(t, err)
	assert.Equal(t, &PromoteResult{Evictions: 2, Relationships: 1, SkippedExisting: 1}, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPromoteFailureLeavesStaging(t *testing.T) {
	conn, mock := newMock(t)
	runID := uuid.New()
	tx := beginTx(t, conn, mock)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM staged_eviction`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO evictions`).WillReturnError(assert.AnError)

	_, err := NewPromoter(zap.NewNop()).Promote(context.Background(), tx, runID)
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDiscard(t *testing.T) {
	conn, mock := newMock(t)
	runID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM staged_relationship`).WithArgs(runID).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM staged_eviction`).WithArgs(runID).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	require.NoError(t, NewPromoter(zap.NewNop()).Discard(context.Background(), conn, runID))
	assert.NoError(t, mock.ExpectationsWereMet())
}
