package engine

import (
	"context"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eviction-cares/internal/geocode"
	"github.com/eviction-cares/internal/ingest"
	"github.com/eviction-cares/internal/models"
	"github.com/eviction-cares/internal/normalize"
)

func newTestPipeline(t *testing.T, geocoder Geocoder) (*Pipeline, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock := newMock(t)
	logger := zap.NewNop()
	p := NewPipeline(conn,
		ingest.NewStager(normalize.NewStandardizer(nil), logger),
		NewExactLinker(logger),
		NewGeocodeStep(geocoder, "GA", logger),
		NewPromoter(logger),
		NewRunRegistry(conn),
		0,
		logger,
	)
	return p, mock
}

func sampleUpload() Upload {
	return Upload{
		Name: "january.csv",
		Table: &ingest.Table{
			Columns: []string{"fileDate", "caseID", "plaintiff", "plaintiffAddress", "plaintiffCity", "Address", "defendantCity1"},
			Rows: [][]string{
				{"1/5/23", "A1", "Acme LLC", "", "", "1 Oak Street", "Atlanta, GA 30303"},
				{"1/6/23", "B2", "Acme LLC", "", "", "9 Elm St", "Decatur, GA 30030"},
				{"1/7/23", "", "Acme LLC", "", "", "10 Pine Rd", "Atlanta"},
			},
		},
		Mapping: ingest.ColumnMapping{"Address": "defendantAddress1"},
	}
}

func expectStaging(mock sqlmock.Sqlmock, exact int) {
	mock.ExpectExec(`INSERT INTO ingest_run`).
		WithArgs(sqlmock.AnyArg(), "january.csv", RunStaging).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(`INSERT INTO staged_eviction`)
	prep.ExpectExec().
		WithArgs(sqlmock.AnyArg(), "A1", sqlmock.AnyArg(), "Acme LLC", nil, nil, "1 Oak Street", "Atlanta, GA 30303", "1 oak st").
		WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().
		WithArgs(sqlmock.AnyArg(), "B2", sqlmock.AnyArg(), "Acme LLC", nil, nil, "9 Elm St", "Decatur, GA 30030", "9 elm st").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO staged_relationship`).WillReturnResult(sqlmock.NewResult(0, int64(exact)))
	mock.ExpectQuery(`SELECT COUNT\(DISTINCT eviction_id\)`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(exact))
	mock.ExpectQuery(`AND NOT EXISTS`).
		WillReturnRows(sqlmock.NewRows([]string{"case_id", "standardized_address", "defendant_city"}).
			AddRow("B2", "9 elm st", "Decatur, GA 30030"))
	mock.ExpectCommit()
}

func TestPipelineRun(t *testing.T) {
	fake := &fakeGeocoder{outcome: &geocode.Outcome{
		Results: []geocode.BatchResult{
			{ID: "B2", MatchStatus: geocode.StatusMatch, Location: &models.Point{Lon: -84.29, Lat: 33.77}},
		},
		Requests: 1,
	}}
	p, mock := newTestPipeline(t, fake)

	expectStaging(mock, 1)

	mock.ExpectBegin()
	mock.ExpectExec(`SET location = ST_SetSRID`).
		WithArgs(sqlmock.AnyArg(), `{"B2"}`, "{-84.29}", "{33.77}").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`SET closest_cares_distance`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`closest_cares_distance <= \$2`).
		WithArgs(sqlmock.AnyArg(), DefaultSuggestionRadius).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM staged_eviction WHERE run_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`INSERT INTO evictions`).
		WillReturnRows(sqlmock.NewRows([]string{"case_id"}).AddRow("A1").AddRow("B2"))
	mock.ExpectExec(`INSERT INTO eviction_cares`).
		WithArgs(sqlmock.AnyArg(), `{"A1","B2"}`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM staged_relationship`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM staged_eviction`).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	mock.ExpectExec(`UPDATE ingest_run`).
		WithArgs(sqlmock.AnyArg(), RunPromoted, sqlmock.AnyArg(), nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	report, err := p.Run(context.Background(), sampleUpload())
	require.NoError(t, err)

	assert.Equal(t, 3, report.Received)
	assert.Equal(t, 1, report.Dropped)
	assert.Equal(t, 2, report.Staged)
	assert.Equal(t, 1, report.ExactMatched)
	assert.Equal(t, 1, report.Unresolved)
	assert.Equal(t, 1, report.Geocoded)
	assert.Equal(t, 1, report.NearProperty)
	assert.Equal(t, 2, report.Promoted)
	assert.Equal(t, 0, report.SkippedExisting)

	require.Len(t, fake.got, 1)
	assert.Equal(t, geocode.BatchInput{ID: "B2", Street: "9 elm st", State: "GA", Zip: "30030"}, fake.got[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPipelineRunPromotesWhenGeocodingFails(t *testing.T) {
	fake := &fakeGeocoder{outcome: &geocode.Outcome{
		Failed:       []string{"B2"},
		FailedChunks: 1,
		Requests:     1,
	}}
	p, mock := newTestPipeline(t, fake)

	expectStaging(mock, 1)

	mock.ExpectBegin()
	mock.ExpectExec(`SET closest_cares_distance`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`closest_cares_distance <= \$2`).
		WithArgs(sqlmock.AnyArg(), DefaultSuggestionRadius).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM staged_eviction WHERE run_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`INSERT INTO evictions`).
		WillReturnRows(sqlmock.NewRows([]string{"case_id"}).AddRow("A1").AddRow("B2"))
	mock.ExpectExec(`INSERT INTO eviction_cares`).
		WithArgs(sqlmock.AnyArg(), `{"A1","B2"}`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM staged_relationship`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM staged_eviction`).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	mock.ExpectExec(`UPDATE ingest_run`).
		WithArgs(sqlmock.AnyArg(), RunPromoted, sqlmock.AnyArg(), nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	report, err := p.Run(context.Background(), sampleUpload())
	require.NoError(t, err)

	assert.Equal(t, 1, report.ExactMatched)
	assert.Equal(t, 1, report.Unresolved)
	assert.Equal(t, 1, report.GeocodeFailed)
	assert.Equal(t, 0, report.Geocoded)
	assert.Equal(t, 0, report.NearProperty)
	assert.Equal(t, 2, report.Promoted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPipelineRunDiscardsOnFailure(t *testing.T) {
	p, mock := newTestPipeline(t, &fakeGeocoder{err: context.Canceled})

	expectStaging(mock, 1)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM staged_relationship`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM staged_eviction`).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()
	mock.ExpectExec(`UPDATE ingest_run`).
		WithArgs(sqlmock.AnyArg(), RunFailed, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err := p.Run(context.Background(), sampleUpload())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPipelineRunValidatesBeforeWriting(t *testing.T) {
	p, mock := newTestPipeline(t, &fakeGeocoder{})

	up := sampleUpload()
	up.Mapping = nil

	_, err := p.Run(context.Background(), up)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Contains(t, err.Error(), "defendantAddress1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPreview(t *testing.T) {
	csv := "caseID,defendantAddress1\nA1,1 Oak St\nB2,9 Elm St\nC3,3 Pine Rd\n"

	table, err := Preview("upload.csv", strings.NewReader(csv), 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"caseID", "defendantAddress1"}, table.Columns)
	assert.Len(t, table.Rows, 2)
}
