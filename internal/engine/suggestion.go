package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/eviction-cares/internal/audit"
	"github.com/eviction-cares/internal/db"
	"github.com/eviction-cares/internal/models"
)

// DefaultSuggestionRadius is the nearest-property distance, in meters, at or
// under which an unlinked eviction is suggested
const DefaultSuggestionRadius = 160.0

// nearestSQL pairs every located eviction that has no relationship other
// than MANUAL_REJECT with its single nearest property.
const nearestSQL = `
	WITH nearest AS (
		SELECT e.case_id, e.defendant_address, n.id AS cares_id, n.property_name, n.dist
		FROM evictions e
		CROSS JOIN LATERAL (
			SELECT c.id, c.property_name, e.location <-> c.location AS dist
			FROM cares c
			WHERE c.location IS NOT NULL
			ORDER BY e.location <-> c.location
			LIMIT 1
		) n
		WHERE e.location IS NOT NULL
		  AND NOT EXISTS (
			SELECT 1 FROM eviction_cares r
			WHERE r.eviction_id = e.case_id AND r.type <> 'MANUAL_REJECT'
		  )
	)
`

// Suggestion is one eviction proposed for a property
type Suggestion struct {
	CaseID       string   `json:"caseID"`
	Address      string   `json:"address"`
	Verification int      `json:"verification"`
	Distance     *float64 `json:"distance,omitempty"`
}

// SuggestionGroup holds the suggestions for one property
type SuggestionGroup struct {
	PropertyID   int64        `json:"propertyId"`
	PropertyName string       `json:"propertyName"`
	Suggestions  []Suggestion `json:"suggestions"`
}

// MapLocations holds both points of a pair for map verification
type MapLocations struct {
	Property *models.Point `json:"property"`
	Eviction *models.Point `json:"eviction"`
}

// SuggestionEngine proposes proximity links over promoted data and records
// the operator's confirm, reject and undo decisions.
type SuggestionEngine struct {
	db      *sql.DB
	tracker *audit.Tracker
	radius  float64
	logger  *zap.Logger
}

// NewSuggestionEngine creates a suggestion engine. A non-positive radius
// selects DefaultSuggestionRadius.
func NewSuggestionEngine(conn *sql.DB, tracker *audit.Tracker, radius float64, logger *zap.Logger) *SuggestionEngine {
	if radius <= 0 {
		radius = DefaultSuggestionRadius
	}
	return &SuggestionEngine{db: conn, tracker: tracker, radius: radius, logger: logger}
}

// Count returns the number of current suggestions
func (s *SuggestionEngine) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, nearestSQL+`
		SELECT COUNT(*) FROM nearest WHERE dist <= $1
	`, s.radius).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count suggestions: %w", err)
	}
	return n, nil
}

// List returns current suggestions grouped by their nearest property
func (s *SuggestionEngine) List(ctx context.Context) ([]SuggestionGroup, error) {
	rows, err := s.db.QueryContext(ctx, nearestSQL+`
		SELECT cares_id, property_name, case_id, defendant_address, dist
		FROM nearest
		WHERE dist <= $1
		ORDER BY cares_id, dist, case_id
	`, s.radius)
	if err != nil {
		return nil, fmt.Errorf("failed to query suggestions: %w", err)
	}
	defer rows.Close()

	var groups []SuggestionGroup
	index := make(map[int64]int)
	for rows.Next() {
		var propertyID int64
		var propertyName, address sql.NullString
		var caseID string
		var dist float64
		if err := rows.Scan(&propertyID, &propertyName, &caseID, &address, &dist); err != nil {
			return nil, fmt.Errorf("failed to scan suggestion: %w", err)
		}
		d := dist
		groups = appendGrouped(groups, index, propertyID, propertyName.String, Suggestion{
			CaseID:       caseID,
			Address:      address.String,
			Verification: models.VerificationUnverified,
			Distance:     &d,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read suggestions: %w", err)
	}
	return groups, nil
}

// ListArchived returns every manual decision grouped by property, most
// recent first
func (s *SuggestionEngine) ListArchived(ctx context.Context) ([]SuggestionGroup, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.cares_id, c.property_name, r.eviction_id, e.defendant_address, r.type
		FROM eviction_cares r
		JOIN cares c ON c.id = r.cares_id
		JOIN evictions e ON e.case_id = r.eviction_id
		WHERE r.type IN ('MANUAL_MATCH', 'MANUAL_REJECT')
		ORDER BY r.id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query archived suggestions: %w", err)
	}
	defer rows.Close()

	var groups []SuggestionGroup
	index := make(map[int64]int)
	for rows.Next() {
		var propertyID int64
		var propertyName, address sql.NullString
		var caseID, relType string
		if err := rows.Scan(&propertyID, &propertyName, &caseID, &address, &relType); err != nil {
			return nil, fmt.Errorf("failed to scan archived suggestion: %w", err)
		}
		groups = appendGrouped(groups, index, propertyID, propertyName.String, Suggestion{
			CaseID:       caseID,
			Address:      address.String,
			Verification: models.RelationshipType(relType).Verification(),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read archived suggestions: %w", err)
	}
	return groups, nil
}

// appendGrouped keeps groups in order of first appearance
func appendGrouped(groups []SuggestionGroup, index map[int64]int, propertyID int64, name string, sg Suggestion) []SuggestionGroup {
	i, ok := index[propertyID]
	if !ok {
		i = len(groups)
		index[propertyID] = i
		groups = append(groups, SuggestionGroup{PropertyID: propertyID, PropertyName: name})
	}
	groups[i].Suggestions = append(groups[i].Suggestions, sg)
	return groups
}

// Confirm records a MANUAL_MATCH for the pair
func (s *SuggestionEngine) Confirm(ctx context.Context, propertyID int64, caseID string) error {
	return s.classify(ctx, propertyID, caseID, models.ManualMatch, audit.ActionConfirm)
}

// Reject records a MANUAL_REJECT for the pair
func (s *SuggestionEngine) Reject(ctx context.Context, propertyID int64, caseID string) error {
	return s.classify(ctx, propertyID, caseID, models.ManualReject, audit.ActionReject)
}

// classify inserts a manual relationship. A pair that already has a row of
// any type is a conflict; the existing row is never replaced.
func (s *SuggestionEngine) classify(ctx context.Context, propertyID int64, caseID string, relType models.RelationshipType, action audit.Action) error {
	err := db.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.ensureExists(ctx, tx, propertyID, caseID); err != nil {
			return err
		}

		existing, err := s.existingType(ctx, tx, propertyID, caseID)
		if err != nil {
			return err
		}
		if existing != "" {
			return &models.ConflictError{CaresID: propertyID, EvictionID: caseID, Existing: existing}
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO eviction_cares (eviction_id, cares_id, type)
			VALUES ($1, $2, $3)
		`, caseID, propertyID, string(relType))
		if err != nil {
			if isUniqueViolation(err) {
				return &models.ConflictError{CaresID: propertyID, EvictionID: caseID}
			}
			return fmt.Errorf("failed to insert %s: %w", relType, err)
		}

		return s.tracker.Record(ctx, tx, audit.Entry{
			Action:     action,
			EvictionID: caseID,
			CaresID:    propertyID,
			Type:       relType,
		})
	})
	if err != nil {
		return err
	}

	s.logger.Info("relationship recorded",
		zap.String("type", string(relType)),
		zap.Int64("cares_id", propertyID),
		zap.String("case_id", caseID))
	return nil
}

// Undo deletes the manual relationship for exactly this pair. System
// ADDRESS_MATCH rows cannot be undone.
func (s *SuggestionEngine) Undo(ctx context.Context, propertyID int64, caseID string) error {
	var removed models.RelationshipType
	err := db.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		existing, err := s.existingType(ctx, tx, propertyID, caseID)
		if err != nil {
			return err
		}
		switch {
		case existing == "":
			return &models.NotFoundError{Kind: "relationship", ID: pairID(propertyID, caseID)}
		case !existing.Manual():
			return &models.ConflictError{CaresID: propertyID, EvictionID: caseID, Existing: existing}
		}

		_, err = tx.ExecContext(ctx, `
			DELETE FROM eviction_cares
			WHERE eviction_id = $1 AND cares_id = $2 AND type IN ('MANUAL_MATCH', 'MANUAL_REJECT')
		`, caseID, propertyID)
		if err != nil {
			return fmt.Errorf("failed to delete relationship: %w", err)
		}
		removed = existing

		return s.tracker.Record(ctx, tx, audit.Entry{
			Action:     audit.ActionUndo,
			EvictionID: caseID,
			CaresID:    propertyID,
			Type:       existing,
		})
	})
	if err != nil {
		return err
	}

	s.logger.Info("relationship undone",
		zap.String("type", string(removed)),
		zap.Int64("cares_id", propertyID),
		zap.String("case_id", caseID))
	return nil
}

// Locations returns both points of a pair so an analyst can check a
// suggestion on a map
func (s *SuggestionEngine) Locations(ctx context.Context, propertyID int64, caseID string) (*MapLocations, error) {
	var propertyWKT, evictionWKT sql.NullString

	err := s.db.QueryRowContext(ctx, `
		SELECT ST_AsText(location::geometry) FROM cares WHERE id = $1
	`, propertyID).Scan(&propertyWKT)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &models.NotFoundError{Kind: "property", ID: strconv.FormatInt(propertyID, 10)}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query property location: %w", err)
	}

	err = s.db.QueryRowContext(ctx, `
		SELECT ST_AsText(location::geometry) FROM evictions WHERE case_id = $1
	`, caseID).Scan(&evictionWKT)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &models.NotFoundError{Kind: "eviction", ID: caseID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query eviction location: %w", err)
	}

	locs := &MapLocations{}
	if locs.Property, err = parseOptionalWKT(propertyWKT); err != nil {
		return nil, err
	}
	if locs.Eviction, err = parseOptionalWKT(evictionWKT); err != nil {
		return nil, err
	}
	return locs, nil
}

// Property returns one registry row with its linked eviction count
// (ADDRESS_MATCH and MANUAL_MATCH)
func (s *SuggestionEngine) Property(ctx context.Context, propertyID int64) (*models.PropertyRecord, error) {
	var p models.PropertyRecord
	var source, name, address, city, zip, standardized, wkt sql.NullString

	err := s.db.QueryRowContext(ctx, `
		SELECT c.id, c.source, c.property_name, c.address, c.city, c.zip_code,
		       c.standardized_address, ST_AsText(c.location::geometry),
		       (SELECT COUNT(*) FROM eviction_cares r
		        WHERE r.cares_id = c.id AND r.type IN ('ADDRESS_MATCH', 'MANUAL_MATCH'))
		FROM cares c
		WHERE c.id = $1
	`, propertyID).Scan(&p.ID, &source, &name, &address, &city, &zip, &standardized, &wkt, &p.EvictionCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &models.NotFoundError{Kind: "property", ID: strconv.FormatInt(propertyID, 10)}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query property: %w", err)
	}

	p.Source = source.String
	p.PropertyName = name.String
	p.Address = address.String
	p.City = city.String
	p.ZipCode = zip.String
	p.StandardizedAddress = standardized.String
	if p.Location, err = parseOptionalWKT(wkt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *SuggestionEngine) ensureExists(ctx context.Context, tx *sql.Tx, propertyID int64, caseID string) error {
	var propertyExists, evictionExists bool
	err := tx.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM cares WHERE id = $1),
		       EXISTS (SELECT 1 FROM evictions WHERE case_id = $2)
	`, propertyID, caseID).Scan(&propertyExists, &evictionExists)
	if err != nil {
		return fmt.Errorf("failed to check pair: %w", err)
	}
	if !propertyExists {
		return &models.NotFoundError{Kind: "property", ID: strconv.FormatInt(propertyID, 10)}
	}
	if !evictionExists {
		return &models.NotFoundError{Kind: "eviction", ID: caseID}
	}
	return nil
}

// existingType locks and returns the pair's relationship type, or "" when
// the pair has none
func (s *SuggestionEngine) existingType(ctx context.Context, tx *sql.Tx, propertyID int64, caseID string) (models.RelationshipType, error) {
	var relType string
	err := tx.QueryRowContext(ctx, `
		SELECT type FROM eviction_cares
		WHERE eviction_id = $1 AND cares_id = $2
		FOR UPDATE
	`, caseID, propertyID).Scan(&relType)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query relationship: %w", err)
	}
	return models.RelationshipType(relType), nil
}

func parseOptionalWKT(s sql.NullString) (*models.Point, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	return models.ParseWKT(s.String)
}

func pairID(propertyID int64, caseID string) string {
	return strconv.FormatInt(propertyID, 10) + "/" + caseID
}
