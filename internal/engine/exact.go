package engine

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eviction-cares/internal/models"
)

// ExactLinker links staged evictions to properties whose standardized
// address is identical. It is the first matching tier of every run.
type ExactLinker struct {
	logger *zap.Logger
}

// NewExactLinker creates a new exact linker
func NewExactLinker(logger *zap.Logger) *ExactLinker {
	return &ExactLinker{logger: logger}
}

// LinkResult reports what an exact link pass produced
type LinkResult struct {
	Relationships int
	Evictions     int
}

// Link inserts one ADDRESS_MATCH staged relationship per (eviction, property)
// pair with equal standardized addresses. An address shared by several
// properties links to all of them.
func (l *ExactLinker) Link(ctx context.Context, tx *sql.Tx, runID uuid.UUID) (*LinkResult, error) {
	res, err := tx.ExecContext(ctx, `
		INSERT INTO staged_relationship (run_id, eviction_id, cares_id, type)
		SELECT e.run_id, e.case_id, c.id, 'ADDRESS_MATCH'::relationship_type
		FROM staged_eviction e
		INNER JOIN cares c ON c.standardized_address = e.standardized_address
		WHERE e.run_id = $1
		ON CONFLICT DO NOTHING
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert exact matches: %w", err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to count exact matches: %w", err)
	}

	result := &LinkResult{Relationships: int(inserted)}
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT eviction_id) FROM staged_relationship WHERE run_id = $1
	`, runID).Scan(&result.Evictions)
	if err != nil {
		return nil, fmt.Errorf("failed to count exactly matched evictions: %w", err)
	}

	l.logger.Info("exact address matching complete",
		zap.String("run_id", runID.String()),
		zap.Int("relationships", result.Relationships),
		zap.Int("evictions", result.Evictions))
	return result, nil
}

// Unresolved returns the staged evictions the exact tier did not link
func (l *ExactLinker) Unresolved(ctx context.Context, tx *sql.Tx, runID uuid.UUID) ([]models.EvictionRecord, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT e.case_id, e.standardized_address, e.defendant_city
		FROM staged_eviction e
		WHERE e.run_id = $1
		  AND NOT EXISTS (
			SELECT 1 FROM staged_relationship r
			WHERE r.run_id = e.run_id AND r.eviction_id = e.case_id
		  )
		ORDER BY e.case_id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query unresolved evictions: %w", err)
	}
	defer rows.Close()

	var out []models.EvictionRecord
	for rows.Next() {
		var rec models.EvictionRecord
		var standardized, city sql.NullString
		if err := rows.Scan(&rec.CaseID, &standardized, &city); err != nil {
			return nil, fmt.Errorf("failed to scan unresolved eviction: %w", err)
		}
		rec.StandardizedAddress = standardized.String
		rec.DefendantCity = city.String
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read unresolved evictions: %w", err)
	}

	l.logger.Info("inexact address records", zap.Int("count", len(out)))
	return out, nil
}
