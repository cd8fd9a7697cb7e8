package audit

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eviction-cares/internal/models"
)

func TestRecordUsesActorFromContext(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO relationship_audit").
		WithArgs("confirm", "A1", int64(7), "MANUAL_MATCH", "analyst", "10.0.0.1").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	ctx := WithActor(context.Background(), "analyst", "10.0.0.1")
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, NewTracker(db).Record(ctx, tx, Entry{
		Action:     ActionConfirm,
		EvictionID: "A1",
		CaresID:    7,
		Type:       models.ManualMatch,
	}))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordWithoutActor(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO relationship_audit").
		WithArgs("undo", "A1", int64(7), "MANUAL_REJECT", nil, nil).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = NewTracker(db).Record(context.Background(), db, Entry{
		Action: ActionUndo, EvictionID: "A1", CaresID: 7, Type: models.ManualReject,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistory(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "action", "eviction_id", "cares_id", "relationship_type", "actor", "client_info", "created_at"}).
		AddRow(2, "undo", "A1", 7, "MANUAL_MATCH", "analyst", nil, now).
		AddRow(1, "confirm", "A1", 7, "MANUAL_MATCH", nil, nil, now.Add(-time.Hour))
	mock.ExpectQuery("SELECT (.+) FROM relationship_audit").WithArgs("A1").WillReturnRows(rows)

	history, err := NewTracker(db).History(context.Background(), "A1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, ActionUndo, history[0].Action)
	assert.Equal(t, models.ManualMatch, history[0].Type)
	assert.Equal(t, "analyst", history[0].Actor)
	assert.Equal(t, "", history[1].Actor)
	assert.Equal(t, now, history[0].CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}
