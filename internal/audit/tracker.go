// Package audit keeps the append-only ledger of manual relationship decisions.
package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/eviction-cares/internal/models"
)

// Action is the manual operation being recorded
type Action string

const (
	ActionConfirm Action = "confirm"
	ActionReject  Action = "reject"
	ActionUndo    Action = "undo"
)

// Entry is one ledger row
type Entry struct {
	ID         int64                   `json:"id"`
	Action     Action                  `json:"action"`
	EvictionID string                  `json:"caseID"`
	CaresID    int64                   `json:"caresId"`
	Type       models.RelationshipType `json:"type"`
	Actor      string                  `json:"actor,omitempty"`
	ClientInfo string                  `json:"clientInfo,omitempty"`
	CreatedAt  time.Time               `json:"createdAt"`
}

// Execer is satisfied by *sql.DB and *sql.Tx
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// Tracker manages the relationship audit trail
type Tracker struct {
	db *sql.DB
}

// NewTracker creates a new audit tracker
func NewTracker(db *sql.DB) *Tracker {
	return &Tracker{db: db}
}

// Record appends an entry. Pass the transaction that made the change so the
// ledger and the relationship table commit together. Actor and client info
// default to the values carried by ctx.
func (t *Tracker) Record(ctx context.Context, ex Execer, e Entry) error {
	if e.Actor == "" && e.ClientInfo == "" {
		e.Actor, e.ClientInfo = ActorFrom(ctx)
	}

	_, err := ex.ExecContext(ctx, `
		INSERT INTO relationship_audit (action, eviction_id, cares_id, relationship_type, actor, client_info)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, string(e.Action), e.EvictionID, e.CaresID, string(e.Type), nullString(e.Actor), nullString(e.ClientInfo))
	if err != nil {
		return fmt.Errorf("failed to record %s audit for %s/%d: %w", e.Action, e.EvictionID, e.CaresID, err)
	}
	return nil
}

// History returns every ledger entry for a case, newest first
func (t *Tracker) History(ctx context.Context, caseID string) ([]Entry, error) {
	rows, err := t.db.QueryContext(ctx, `
		SELECT id, action, eviction_id, cares_id, relationship_type, actor, client_info, created_at
		FROM relationship_audit
		WHERE eviction_id = $1
		ORDER BY created_at DESC, id DESC
	`, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit history: %w", err)
	}
	defer rows.Close()

	var history []Entry
	for rows.Next() {
		var e Entry
		var action, relType string
		var actor, clientInfo sql.NullString
		if err := rows.Scan(&e.ID, &action, &e.EvictionID, &e.CaresID, &relType, &actor, &clientInfo, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit row: %w", err)
		}
		e.Action = Action(action)
		e.Type = models.RelationshipType(relType)
		e.Actor = actor.String
		e.ClientInfo = clientInfo.String
		history = append(history, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read audit history: %w", err)
	}
	return history, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
