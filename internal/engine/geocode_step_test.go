package engine

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eviction-cares/internal/geocode"
	"github.com/eviction-cares/internal/models"
)

type fakeGeocoder struct {
	got     []geocode.BatchInput
	outcome *geocode.Outcome
	err     error
}

func (f *fakeGeocoder) GeocodeAll(ctx context.Context, inputs []geocode.BatchInput) (*geocode.Outcome, error) {
	f.got = inputs
	if f.err != nil {
		return nil, f.err
	}
	return f.outcome, nil
}

func TestGeocodeStepInputs(t *testing.T) {
	step := NewGeocodeStep(&fakeGeocoder{}, "GA", zap.NewNop())
	inputs := step.Inputs([]models.EvictionRecord{
		{CaseID: "B2", StandardizedAddress: "9 elm st", DefendantCity: "Decatur, GA 30030"},
		{CaseID: "D4", StandardizedAddress: "4 pine rd", DefendantCity: "Atlanta"},
	})

	assert.Equal(t, []geocode.BatchInput{
		{ID: "B2", Street: "9 elm st", State: "GA", Zip: "30030"},
		{ID: "D4", Street: "4 pine rd", State: "GA"},
	}, inputs)
}

func TestGeocodeStepSkipsEmptyInput(t *testing.T) {
	fake := &fakeGeocoder{}
	outcome, err := NewGeocodeStep(fake, "GA", zap.NewNop()).Geocode(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, outcome.Results)
	assert.Nil(t, fake.got)
}

func TestGeocodeStepApply(t *testing.T) {
	conn, mock := newMock(t)
	runID := uuid.New()
	tx := beginTx(t, conn, mock)

	mock.ExpectExec(`UPDATE staged_eviction e\s+SET location = ST_SetSRID\(ST_MakePoint\(v.lon, v.lat\), 4326\)::geography\s+FROM unnest`).
		WithArgs(runID, `{"B2"}`, "{-84.39}", "{33.75}").
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := NewGeocodeStep(&fakeGeocoder{}, "GA", zap.NewNop()).Apply(context.Background(), tx, runID, []geocode.BatchResult{
		{ID: "B2", MatchStatus: geocode.StatusMatch, Location: &models.Point{Lon: -84.39, Lat: 33.75}},
		{ID: "X9", MatchStatus: geocode.StatusMatch},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGeocodeStepAnnotateDistance(t *testing.T) {
	conn, mock := newMock(t)
	runID := uuid.New()
	tx := beginTx(t, conn, mock)

	mock.ExpectExec(`SET closest_cares_distance = \(\s+SELECT e.location <-> c.location`).
		WithArgs(runID).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectQuery(`WHERE run_id = \$1 AND closest_cares_distance <= \$2`).
		WithArgs(runID, 160.0).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	near, err := NewGeocodeStep(&fakeGeocoder{}, "GA", zap.NewNop()).AnnotateDistance(context.Background(), tx, runID, 160)
	require.NoError(t, err)
	assert.Equal(t, 1, near)
	assert.NoError(t, mock.ExpectationsWereMet())
}
