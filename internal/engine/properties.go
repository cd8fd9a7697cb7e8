package engine

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/eviction-cares/internal/normalize"
)

// Properties maintains derived columns of the property registry
type Properties struct {
	db           *sql.DB
	standardizer *normalize.Standardizer
	logger       *zap.Logger
}

// NewProperties creates a registry maintainer
func NewProperties(conn *sql.DB, standardizer *normalize.Standardizer, logger *zap.Logger) *Properties {
	return &Properties{db: conn, standardizer: standardizer, logger: logger}
}

type pendingProperty struct {
	id      int64
	address string
	city    string
}

// StandardizeMissing fills standardized_address for registry rows that do
// not have one, from address and city, the same way evictions are keyed.
func (p *Properties) StandardizeMissing(ctx context.Context) (int, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, COALESCE(address, ''), COALESCE(city, '')
		FROM cares
		WHERE standardized_address IS NULL
		ORDER BY id
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to query properties: %w", err)
	}
	var pending []pendingProperty
	for rows.Next() {
		var pp pendingProperty
		if err := rows.Scan(&pp.id, &pp.address, &pp.city); err != nil {
			rows.Close()
			return 0, fmt.Errorf("failed to scan property: %w", err)
		}
		pending = append(pending, pp)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("failed to read properties: %w", err)
	}
	if len(pending) == 0 {
		return 0, nil
	}

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `UPDATE cares SET standardized_address = $2 WHERE id = $1`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, pp := range pending {
		key := normalize.TruncateKey(p.standardizer.StandardizeAddressCity(pp.address, pp.city))
		if _, err := stmt.ExecContext(ctx, pp.id, key); err != nil {
			return 0, fmt.Errorf("failed to update property %d: %w", pp.id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	p.logger.Info("standardized property addresses", zap.Int("count", len(pending)))
	return len(pending), nil
}
