package firestore

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	gcfirestore "cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ivankudzin/tgevents/internal/domain/enums"
	"github.com/ivankudzin/tgevents/internal/domain/model"
)

type EventRepo struct {
	client     *gcfirestore.Client
	collection string
}

func NewEventRepo(client *gcfirestore.Client, collection string) *EventRepo {
	return &EventRepo{client: client, collection: collection}
}

func (r *EventRepo) GetEvent(ctx context.Context, id string) (model.Event, error) {
	ref, err := r.doc(id)
	if err != nil {
		return model.Event{}, err
	}

	snap, err := ref.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return model.Event{}, model.ErrEventNotFound
		}
		return model.Event{}, fmt.Errorf("get event %s: %w", id, err)
	}
	if !snap.Exists() {
		return model.Event{}, model.ErrEventNotFound
	}

	return eventFromData(snap.Ref.ID, snap.Data()), nil
}

// UpdateEventStatus writes only the status field; it fails for missing documents.
func (r *EventRepo) UpdateEventStatus(ctx context.Context, id string, eventStatus enums.EventStatus) error {
	ref, err := r.doc(id)
	if err != nil {
		return err
	}

	if _, err := ref.Update(ctx, []gcfirestore.Update{
		{Path: "status", Value: string(eventStatus)},
	}); err != nil {
		return fmt.Errorf("update event %s status: %w", id, err)
	}
	return nil
}

func (r *EventRepo) doc(id string) (*gcfirestore.DocumentRef, error) {
	if r.client == nil {
		return nil, fmt.Errorf("firestore client is nil")
	}
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("event id is required")
	}

	ref := r.client.Collection(r.collection).Doc(id)
	if ref == nil {
		return nil, fmt.Errorf("invalid event id %q", id)
	}
	return ref, nil
}

// eventFromData reads fields leniently: documents written by other clients may
// store a phone number or name as a number.
func eventFromData(id string, data map[string]interface{}) model.Event {
	return model.Event{
		ID:                 id,
		Name:               stringField(data, "name"),
		Status:             enums.EventStatus(stringField(data, "status")),
		CreatorPhoneNumber: stringField(data, "creatorPhoneNumber"),
	}
}

func stringField(data map[string]interface{}, key string) string {
	switch v := data[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
