package engine

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// Promoter copies a run's staging rows into the permanent tables
type Promoter struct {
	logger *zap.Logger
}

// NewPromoter creates a new promoter
func NewPromoter(logger *zap.Logger) *Promoter {
	return &Promoter{logger: logger}
}

// PromoteResult reports what a promotion wrote
type PromoteResult struct {
	Evictions       int
	Relationships   int
	SkippedExisting int
}

// Promote runs inside the caller's transaction so the whole run lands or
// none of it does. Evictions already promoted by an earlier run are left
// untouched, and so are the staged relationships for them. The run's staging
// rows are removed afterwards.
func (p *Promoter) Promote(ctx context.Context, tx *sql.Tx, runID uuid.UUID) (*PromoteResult, error) {
	var staged int
	if err := tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM staged_eviction WHERE run_id = $1
	`, runID).Scan(&staged); err != nil {
		return nil, fmt.Errorf("failed to count staged evictions: %w", err)
	}

	rows, err := tx.QueryContext(ctx, `
		INSERT INTO evictions (
			case_id, file_date, plaintiff, plaintiff_address, plaintiff_city,
			defendant_address, defendant_city, standardized_address, location
		)
		SELECT case_id, file_date, plaintiff, plaintiff_address, plaintiff_city,
		       defendant_address, defendant_city, standardized_address, location
		FROM staged_eviction
		WHERE run_id = $1
		ON CONFLICT (case_id) DO NOTHING
		RETURNING case_id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to promote evictions: %w", err)
	}
	var inserted []string
	for rows.Next() {
		var caseID string
		if err := rows.Scan(&caseID); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan promoted eviction: %w", err)
		}
		inserted = append(inserted, caseID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to promote evictions: %w", err)
	}

	result := &PromoteResult{Evictions: len(inserted), SkippedExisting: staged - len(inserted)}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO eviction_cares (eviction_id, cares_id, type)
		SELECT eviction_id, cares_id, type
		FROM staged_relationship
		WHERE run_id = $1 AND eviction_id = ANY($2)
		ON CONFLICT (eviction_id, cares_id) DO NOTHING
	`, runID, pq.Array(inserted))
	if err != nil {
		return nil, fmt.Errorf("failed to promote relationships: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to count promoted relationships: %w", err)
	}
	result.Relationships = int(n)

	if err := p.clear(ctx, tx, runID); err != nil {
		return nil, err
	}

	p.logger.Info("promoted run",
		zap.String("run_id", runID.String()),
		zap.Int("evictions", result.Evictions),
		zap.Int("relationships", result.Relationships),
		zap.Int("skipped_existing", result.SkippedExisting))
	return result, nil
}

// Discard removes a run's staging rows without promoting them
func (p *Promoter) Discard(ctx context.Context, db *sql.DB, runID uuid.UUID) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := p.clear(ctx, tx, runID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit staging cleanup: %w", err)
	}
	return nil
}

func (p *Promoter) clear(ctx context.Context, tx *sql.Tx, runID uuid.UUID) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM staged_relationship WHERE run_id = $1`, runID); err != nil {
		return fmt.Errorf("failed to clear staged relationships: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM staged_eviction WHERE run_id = $1`, runID); err != nil {
		return fmt.Errorf("failed to clear staged evictions: %w", err)
	}
	return nil
}
