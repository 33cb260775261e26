package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ivankudzin/tgevents/internal/domain/enums"
	"github.com/ivankudzin/tgevents/internal/domain/model"
)

type EventRepo struct {
	pool *pgxpool.Pool
}

func NewEventRepo(pool *pgxpool.Pool) *EventRepo {
	return &EventRepo{pool: pool}
}

func (r *EventRepo) GetEvent(ctx context.Context, id string) (model.Event, error) {
	if r.pool == nil {
		return model.Event{}, fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(id) == "" {
		return model.Event{}, fmt.Errorf("event id is required")
	}

	const query = `
SELECT id, name, status, creator_phone_number
FROM events
WHERE id = $1
`

	var (
		event  model.Event
		status string
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(&event.ID, &event.Name, &status, &event.CreatorPhoneNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Event{}, model.ErrEventNotFound
		}
		return model.Event{}, fmt.Errorf("get event %s: %w", id, err)
	}
	event.Status = enums.EventStatus(status)

	return event, nil
}

// UpdateEventStatus fails with ErrEventNotFound when no row matches.
func (r *EventRepo) UpdateEventStatus(ctx context.Context, id string, status enums.EventStatus) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("event id is required")
	}

	const query = `
UPDATE events
SET status = $2,
	updated_at = NOW()
WHERE id = $1
`

	tag, err := r.pool.Exec(ctx, query, id, string(status))
	if err != nil {
		return fmt.Errorf("update event %s status: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrEventNotFound
	}
	return nil
}
