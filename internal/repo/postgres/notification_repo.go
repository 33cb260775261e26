package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ivankudzin/tgevents/internal/domain/model"
)

type NotificationRepo struct {
	pool *pgxpool.Pool
}

func NewNotificationRepo(pool *pgxpool.Pool) *NotificationRepo {
	return &NotificationRepo{pool: pool}
}

func (r *NotificationRepo) CreateNotification(ctx context.Context, n model.Notification) (string, error) {
	if r.pool == nil {
		return "", fmt.Errorf("postgres pool is nil")
	}

	const query = `
INSERT INTO notifications (
	id,
	type,
	title,
	message,
	creator_phone_number,
	event_id,
	event_name,
	is_read,
	created_at
) VALUES (
	$1,
	$2,
	$3,
	$4,
	$5,
	$6,
	$7,
	$8,
	NOW()
)
`

	id := uuid.New()
	if _, err := r.pool.Exec(ctx, query,
		id,
		n.Type,
		n.Title,
		n.Message,
		n.CreatorPhoneNumber,
		n.EventID,
		n.EventName,
		n.IsRead,
	); err != nil {
		return "", fmt.Errorf("insert notification for event %s: %w", n.EventID, err)
	}

	return id.String(), nil
}
