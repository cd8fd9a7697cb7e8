package engine

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eviction-cares/internal/db"
	"github.com/eviction-cares/internal/ingest"
	"github.com/eviction-cares/internal/logging"
	"github.com/eviction-cares/internal/models"
)

// Upload is one eviction file submitted for ingestion
type Upload struct {
	Name    string
	Table   *ingest.Table
	Mapping ingest.ColumnMapping
}

// RunReport is what an ingestion run tells the operator
type RunReport struct {
	RunID              uuid.UUID `json:"runId"`
	Received           int       `json:"received"`
	Dropped            int       `json:"dropped"`
	Duplicates         int       `json:"duplicates"`
	Staged             int       `json:"staged"`
	BadDates           int       `json:"badDates"`
	ExactMatched       int       `json:"exactMatched"`
	ExactRelationships int       `json:"exactRelationships"`
	Unresolved         int       `json:"unresolved"`
	Geocoded           int       `json:"geocoded"`
	GeocodeFailed      int       `json:"geocodeFailed"`
	NearProperty       int       `json:"nearProperty"`
	Promoted           int       `json:"promoted"`
	SkippedExisting    int       `json:"skippedExisting"`
}

// Pipeline runs one upload through staging, exact linking, geocoding and
// promotion. Every run stages under its own id, so concurrent runs do not
// see each other's rows.
type Pipeline struct {
	db       *sql.DB
	stager   *ingest.Stager
	linker   *ExactLinker
	geocoder *GeocodeStep
	promoter *Promoter
	runs     *RunRegistry
	radius   float64
	logger   *zap.Logger
}

// NewPipeline wires the ingestion tiers together
func NewPipeline(conn *sql.DB, stager *ingest.Stager, linker *ExactLinker, geocoder *GeocodeStep,
	promoter *Promoter, runs *RunRegistry, radius float64, logger *zap.Logger) *Pipeline {
	if radius <= 0 {
		radius = DefaultSuggestionRadius
	}
	return &Pipeline{
		db:       conn,
		stager:   stager,
		linker:   linker,
		geocoder: geocoder,
		promoter: promoter,
		runs:     runs,
		radius:   radius,
		logger:   logger,
	}
}

// Preview reads an upload and returns its header and first n rows
func Preview(name string, r io.Reader, n int) (*ingest.Table, error) {
	t, err := ingest.ReadTable(name, r)
	if err != nil {
		return nil, err
	}
	return t.Head(n), nil
}

// Run ingests an upload. Validation errors are returned before anything is
// written. A failed geocode chunk only leaves its evictions without a
// location; any other failure discards the run's staging rows.
func (p *Pipeline) Run(ctx context.Context, up Upload) (*RunReport, error) {
	defer logging.Timing(p.logger, "ingestion run")()

	batch, err := p.stager.Prepare(up.Table, up.Mapping)
	if err != nil {
		return nil, err
	}

	runID, err := p.runs.Start(ctx, up.Name)
	if err != nil {
		return nil, err
	}

	report := &RunReport{
		RunID:      runID,
		Received:   batch.Counts.Received,
		Dropped:    batch.Counts.Dropped,
		Duplicates: batch.Counts.Duplicates,
		Staged:     batch.Counts.Staged,
		BadDates:   batch.Counts.BadDates,
	}
	logger := p.logger.With(zap.String("run_id", runID.String()))

	if err := p.run(ctx, runID, batch, report); err != nil {
		cleanupCtx := context.WithoutCancel(ctx)
		if derr := p.promoter.Discard(cleanupCtx, p.db, runID); derr != nil {
			logger.Error("failed to discard staging rows", zap.Error(derr))
		}
		if ferr := p.runs.Finish(cleanupCtx, runID, RunFailed, report, err); ferr != nil {
			logger.Error("failed to record run failure", zap.Error(ferr))
		}
		return nil, fmt.Errorf("ingestion run %s failed: %w", runID, err)
	}

	if err := p.runs.Finish(ctx, runID, RunPromoted, report, nil); err != nil {
		logger.Warn("failed to record run completion", zap.Error(err))
	}

	logger.Info("ingestion complete",
		zap.Int("received", report.Received),
		zap.Int("staged", report.Staged),
		zap.Int("exact_matched", report.ExactMatched),
		zap.Int("geocoded", report.Geocoded),
		zap.Int("promoted", report.Promoted))
	return report, nil
}

func (p *Pipeline) run(ctx context.Context, runID uuid.UUID, batch *ingest.Batch, report *RunReport) error {
	var records []models.EvictionRecord

	err := db.WithTx(ctx, p.db, func(tx *sql.Tx) error {
		if err := p.stager.Write(ctx, tx, runID, batch); err != nil {
			return err
		}
		link, err := p.linker.Link(ctx, tx, runID)
		if err != nil {
			return err
		}
		report.ExactMatched = link.Evictions
		report.ExactRelationships = link.Relationships

		records, err = p.linker.Unresolved(ctx, tx, runID)
		return err
	})
	if err != nil {
		return err
	}
	report.Unresolved = len(records)

	// No transaction is held while the geocoder is working.
	outcome, err := p.geocoder.Geocode(ctx, records)
	if err != nil {
		return err
	}
	report.GeocodeFailed = len(outcome.Failed)
	if len(outcome.Failed) > 0 {
		p.logger.Warn("evictions left without a location",
			zap.String("run_id", runID.String()),
			zap.Int("count", len(outcome.Failed)),
			zap.Int("unresolved", len(records)),
			zap.Int("failed_chunks", outcome.FailedChunks))
	}

	return db.WithTx(ctx, p.db, func(tx *sql.Tx) error {
		geocoded, err := p.geocoder.Apply(ctx, tx, runID, outcome.Results)
		if err != nil {
			return err
		}
		report.Geocoded = geocoded

		near, err := p.geocoder.AnnotateDistance(ctx, tx, runID, p.radius)
		if err != nil {
			return err
		}
		report.NearProperty = near

		promoted, err := p.promoter.Promote(ctx, tx, runID)
		if err != nil {
			return err
		}
		report.Promoted = promoted.Evictions
		report.SkippedExisting = promoted.SkippedExisting
		return nil
	})
}
