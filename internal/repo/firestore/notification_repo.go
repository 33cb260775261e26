package firestore

import (
	"context"
	"fmt"

	gcfirestore "cloud.google.com/go/firestore"

	"github.com/ivankudzin/tgevents/internal/domain/model"
)

type NotificationRepo struct {
	client     *gcfirestore.Client
	collection string
}

func NewNotificationRepo(client *gcfirestore.Client, collection string) *NotificationRepo {
	return &NotificationRepo{client: client, collection: collection}
}

// CreateNotification adds a document with a server-assigned id and createdAt.
func (r *NotificationRepo) CreateNotification(ctx context.Context, n model.Notification) (string, error) {
	if r.client == nil {
		return "", fmt.Errorf("firestore client is nil")
	}

	ref, _, err := r.client.Collection(r.collection).Add(ctx, notificationFields(n))
	if err != nil {
		return "", fmt.Errorf("add notification for event %s: %w", n.EventID, err)
	}
	return ref.ID, nil
}

func notificationFields(n model.Notification) map[string]interface{} {
	return map[string]interface{}{
		"type":               n.Type,
		"title":              n.Title,
		"message":            n.Message,
		"creatorPhoneNumber": n.CreatorPhoneNumber,
		"eventId":            n.EventID,
		"eventName":          n.EventName,
		"createdAt":          gcfirestore.ServerTimestamp,
		"isRead":             n.IsRead,
	}
}
