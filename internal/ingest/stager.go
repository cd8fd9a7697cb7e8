// Package ingest validates uploaded eviction files and writes them into the
// run-scoped staging tables.
package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eviction-cares/internal/models"
	"github.com/eviction-cares/internal/normalize"
)

// Counts summarises what happened to the rows of one upload
type Counts struct {
	Received   int `json:"received"`
	Dropped    int `json:"dropped"`
	Duplicates int `json:"duplicates"`
	Staged     int `json:"staged"`
	BadDates   int `json:"badDates"`
}

// Batch is a cleaned upload ready to be staged
type Batch struct {
	Evictions []models.EvictionRecord
	Counts    Counts
}

// Stager turns raw tables into staged eviction rows
type Stager struct {
	standardizer *normalize.Standardizer
	logger       *zap.Logger
}

// NewStager creates a stager
func NewStager(standardizer *normalize.Standardizer, logger *zap.Logger) *Stager {
	return &Stager{standardizer: standardizer, logger: logger}
}

// Prepare renames and projects the table, drops rows without a case id or
// defendant address, keeps the last row for each case id and derives the
// standardized address and file date. It does no I/O.
func (s *Stager) Prepare(t *Table, m ColumnMapping) (*Batch, error) {
	index, err := Validate(t, m)
	if err != nil {
		return nil, err
	}

	get := func(row []string, col string) string {
		return strings.TrimSpace(row[index[col]])
	}

	batch := &Batch{Counts: Counts{Received: len(t.Rows)}}

	// Later rows override earlier ones with the same case id.
	var kept [][]string
	last := make(map[string]int)
	for _, row := range t.Rows {
		if get(row, ColCaseID) == "" || get(row, ColDefendantAddress1) == "" {
			batch.Counts.Dropped++
			continue
		}
		last[get(row, ColCaseID)] = len(kept)
		kept = append(kept, row)
	}

	for i, row := range kept {
		caseID := get(row, ColCaseID)
		if last[caseID] != i {
			batch.Counts.Duplicates++
			continue
		}

		fileDate, ok := parseFileDate(get(row, ColFileDate))
		if !ok {
			batch.Counts.BadDates++
			s.logger.Debug("unparseable file date",
				zap.String("case_id", caseID),
				zap.String("file_date", get(row, ColFileDate)))
		}

		address := get(row, ColDefendantAddress1)
		city := get(row, ColDefendantCity1)
		batch.Evictions = append(batch.Evictions, models.EvictionRecord{
			CaseID:              caseID,
			FileDate:            fileDate,
			Plaintiff:           get(row, ColPlaintiff),
			PlaintiffAddress:    get(row, ColPlaintiffAddress),
			PlaintiffCity:       get(row, ColPlaintiffCity),
			DefendantAddress:    address,
			DefendantCity:       city,
			StandardizedAddress: normalize.TruncateKey(s.standardizer.StandardizeAddressCity(address, city)),
		})
	}
	batch.Counts.Staged = len(batch.Evictions)

	s.logger.Info("prepared upload",
		zap.Int("received", batch.Counts.Received),
		zap.Int("dropped", batch.Counts.Dropped),
		zap.Int("duplicates", batch.Counts.Duplicates),
		zap.Int("deduplicated", batch.Counts.Staged),
		zap.Int("bad_dates", batch.Counts.BadDates))

	return batch, nil
}

// Write inserts the batch into staged_eviction under runID
func (s *Stager) Write(ctx context.Context, tx *sql.Tx, runID uuid.UUID, batch *Batch) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO staged_eviction (
			run_id, case_id, file_date, plaintiff, plaintiff_address, plaintiff_city,
			defendant_address, defendant_city, standardized_address
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, e := range batch.Evictions {
		_, err := stmt.ExecContext(ctx,
			runID, e.CaseID, e.FileDate, nullString(e.Plaintiff), nullString(e.PlaintiffAddress),
			nullString(e.PlaintiffCity), e.DefendantAddress, nullString(e.DefendantCity), e.StandardizedAddress,
		)
		if err != nil {
			return fmt.Errorf("failed to stage eviction %s: %w", e.CaseID, err)
		}
		if (i+1)%1000 == 0 {
			s.logger.Debug("staged evictions", zap.Int("count", i+1))
		}
	}

	s.logger.Info("staged evictions", zap.String("run_id", runID.String()), zap.Int("count", len(batch.Evictions)))
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
