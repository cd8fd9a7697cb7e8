package engine

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eviction-cares/internal/normalize"
)

func TestStandardizeMissing(t *testing.T) {
	conn, mock := newMock(t)

	mock.ExpectQuery(`FROM cares\s+WHERE standardized_address IS NULL`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "address", "city"}).
			AddRow(int64(1), "100 Peachtree Street NW", "Atlanta").
			AddRow(int64(2), "55 Ponce De Leon Av", ""))
	mock.ExpectBegin()
	prep := mock.ExpectPrepare(`UPDATE cares SET standardized_address = \$2 WHERE id = \$1`)
	prep.ExpectExec().WithArgs(int64(1), "100 peachtree st nw").WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WithArgs(int64(2), "55 ponce de leon ave").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	n, err := NewProperties(conn, normalize.NewStandardizer(nil), zap.NewNop()).StandardizeMissing(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStandardizeMissingNothingToDo(t *testing.T) {
	conn, mock := newMock(t)

	mock.ExpectQuery(`WHERE standardized_address IS NULL`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "address", "city"}))

	n, err := NewProperties(conn, normalize.NewStandardizer(nil), zap.NewNop()).StandardizeMissing(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
