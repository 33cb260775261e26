package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/ivankudzin/tgevents/internal/domain/enums"
	"github.com/ivankudzin/tgevents/internal/domain/model"
)

func TestReposRequirePool(t *testing.T) {
	events := NewEventRepo(nil)
	if _, err := events.GetEvent(context.Background(), "evt42"); err == nil || errors.Is(err, model.ErrEventNotFound) {
		t.Fatalf("expected pool error, got %v", err)
	}
	if err := events.UpdateEventStatus(context.Background(), "evt42", enums.EventStatusApproved); err == nil {
		t.Fatal("expected pool error on update")
	}

	notifications := NewNotificationRepo(nil)
	if _, err := notifications.CreateNotification(context.Background(), model.Notification{}); err == nil {
		t.Fatal("expected pool error on insert")
	}
}

func TestNewPoolRequiresDSN(t *testing.T) {
	if _, err := NewPool(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty dsn")
	}
}
