package repository

import (
	"context"
	"encoding/json"

	"chairduel/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type EventRepository struct {
	db *pgxpool.Pool
}

func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

// Create inserts an event record. Runs outside the operation's transaction:
// events are observability-only and must not affect core state.
func (r *EventRepository) Create(ctx context.Context, e *domain.Event) error {
	detailsJSON, err := json.Marshal(e.Details)
	if err != nil {
		detailsJSON = []byte("{}")
	}

	return r.db.QueryRow(ctx,
		`INSERT INTO events (id, match_id, type, details)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`,
		e.ID, e.MatchID, e.Type, detailsJSON,
	).Scan(&e.CreatedAt)
}

// GetByMatch returns a match's events, oldest first.
func (r *EventRepository) GetByMatch(ctx context.Context, matchID string, limit int) ([]*domain.Event, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, match_id, type, details, created_at
		 FROM events
		 WHERE match_id = $1
		 ORDER BY seq
		 LIMIT $2`,
		matchID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Event
	for rows.Next() {
		var (
			e           domain.Event
			detailsJSON []byte
		)
		if err := rows.Scan(&e.ID, &e.MatchID, &e.Type, &detailsJSON, &e.CreatedAt); err != nil {
			return nil, err
		}
		if len(detailsJSON) > 0 {
			_ = json.Unmarshal(detailsJSON, &e.Details)
		}
		result = append(result, &e)
	}
	return result, rows.Err()
}
