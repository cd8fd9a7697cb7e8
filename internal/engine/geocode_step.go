package engine

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/eviction-cares/internal/geocode"
	"github.com/eviction-cares/internal/models"
	"github.com/eviction-cares/internal/normalize"
)

// Geocoder resolves batches of addresses to points
type Geocoder interface {
	GeocodeAll(ctx context.Context, inputs []geocode.BatchInput) (*geocode.Outcome, error)
}

// GeocodeStep runs the geocoding tier for the evictions the exact tier left
// unresolved and writes the points back onto the staged rows.
type GeocodeStep struct {
	geocoder Geocoder
	state    string
	logger   *zap.Logger
}

// NewGeocodeStep creates the geocoding tier. state is sent with every row.
func NewGeocodeStep(geocoder Geocoder, state string, logger *zap.Logger) *GeocodeStep {
	return &GeocodeStep{geocoder: geocoder, state: state, logger: logger}
}

// Inputs builds batch rows from unresolved evictions. The city is left for
// the service to infer; the zip comes from the defendant city text.
func (s *GeocodeStep) Inputs(records []models.EvictionRecord) []geocode.BatchInput {
	inputs := make([]geocode.BatchInput, 0, len(records))
	for _, r := range records {
		inputs = append(inputs, geocode.BatchInput{
			ID:     r.CaseID,
			Street: r.StandardizedAddress,
			State:  s.state,
			Zip:    normalize.ExtractZip(r.DefendantCity),
		})
	}
	return inputs
}

// Geocode sends the unresolved evictions to the geocoder
func (s *GeocodeStep) Geocode(ctx context.Context, records []models.EvictionRecord) (*geocode.Outcome, error) {
	if len(records) == 0 {
		return &geocode.Outcome{}, nil
	}
	outcome, err := s.geocoder.GeocodeAll(ctx, s.Inputs(records))
	if err != nil {
		return nil, err
	}
	s.logger.Info("successfully geocoded records",
		zap.Int("count", len(outcome.Results)),
		zap.Int("failed", len(outcome.Failed)))
	return outcome, nil
}

// Apply writes geocoded points onto the run's staged evictions in one
// statement and returns the number of rows updated.
func (s *GeocodeStep) Apply(ctx context.Context, tx *sql.Tx, runID uuid.UUID, results []geocode.BatchResult) (int, error) {
	if len(results) == 0 {
		return 0, nil
	}

	caseIDs := make([]string, 0, len(results))
	lons := make([]float64, 0, len(results))
	lats := make([]float64, 0, len(results))
	for _, r := range results {
		if r.Location == nil {
			continue
		}
		caseIDs = append(caseIDs, r.ID)
		lons = append(lons, r.Location.Lon)
		lats = append(lats, r.Location.Lat)
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE staged_eviction e
		SET location = ST_SetSRID(ST_MakePoint(v.lon, v.lat), 4326)::geography
		FROM unnest($2::text[], $3::float8[], $4::float8[]) AS v(case_id, lon, lat)
		WHERE e.run_id = $1 AND e.case_id = v.case_id
	`, runID, pq.Array(caseIDs), pq.Array(lons), pq.Array(lats))
	if err != nil {
		return 0, fmt.Errorf("failed to write geocoded locations: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count geocoded locations: %w", err)
	}
	return int(n), nil
}

// AnnotateDistance stores the distance to the nearest property on each
// geocoded staged eviction and returns how many are within radius. The
// distance is informational; no relationship is created from it.
func (s *GeocodeStep) AnnotateDistance(ctx context.Context, tx *sql.Tx, runID uuid.UUID, radius float64) (int, error) {
	_, err := tx.ExecContext(ctx, `
		UPDATE staged_eviction e
		SET closest_cares_distance = (
			SELECT e.location <-> c.location
			FROM cares c
			WHERE c.location IS NOT NULL
			ORDER BY e.location <-> c.location
			LIMIT 1
		)
		WHERE e.run_id = $1 AND e.location IS NOT NULL
	`, runID)
	if err != nil {
		return 0, fmt.Errorf("failed to annotate closest property distance: %w", err)
	}

	var near int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM staged_eviction
		WHERE run_id = $1 AND closest_cares_distance <= $2
	`, runID, radius).Scan(&near)
	if err != nil {
		return 0, fmt.Errorf("failed to count evictions near a property: %w", err)
	}
	return near, nil
}
