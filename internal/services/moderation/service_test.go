package moderation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ivankudzin/tgevents/internal/domain/enums"
	"github.com/ivankudzin/tgevents/internal/domain/model"
)

type statusUpdate struct {
	EventID string
	Status  enums.EventStatus
}

type fakeEventRepo struct {
	events    map[string]model.Event
	getErr    error
	updateErr error
	updates   []statusUpdate
	gets      []string
}

func (r *fakeEventRepo) GetEvent(_ context.Context, id string) (model.Event, error) {
	r.gets = append(r.gets, id)
	if r.getErr != nil {
		return model.Event{}, r.getErr
	}
	event, ok := r.events[id]
	if !ok {
		return model.Event{}, model.ErrEventNotFound
	}
	return event, nil
}

func (r *fakeEventRepo) UpdateEventStatus(_ context.Context, id string, status enums.EventStatus) error {
	r.updates = append(r.updates, statusUpdate{EventID: id, Status: status})
	return r.updateErr
}

type fakeNotificationRepo struct {
	created []model.Notification
	err     error
}

func (r *fakeNotificationRepo) CreateNotification(_ context.Context, n model.Notification) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	r.created = append(r.created, n)
	return "ntf-1", nil
}

type editCall struct {
	ChatID    int64
	MessageID int
	Text      string
}

type fakeBot struct {
	answers   []string
	answerIDs []string
	edits     []editCall
	answerErr error
	editErr   error
}

func (b *fakeBot) AnswerCallback(_ context.Context, callbackID, text string) error {
	b.answerIDs = append(b.answerIDs, callbackID)
	b.answers = append(b.answers, text)
	return b.answerErr
}

func (b *fakeBot) EditMessageText(_ context.Context, chatID int64, messageID int, text string) error {
	b.edits = append(b.edits, editCall{ChatID: chatID, MessageID: messageID, Text: text})
	return b.editErr
}

type fakeRecorder struct {
	callbacks []string
	failures  []string
}

func (r *fakeRecorder) ObserveCallback(action string, _ time.Duration) {
	r.callbacks = append(r.callbacks, action)
}

func (r *fakeRecorder) ObserveStepFailure(step string) {
	r.failures = append(r.failures, step)
}

type fixture struct {
	events        *fakeEventRepo
	notifications *fakeNotificationRepo
	bot           *fakeBot
	recorder      *fakeRecorder
	service       *Service
}

func newFixture(events map[string]model.Event) *fixture {
	f := &fixture{
		events:        &fakeEventRepo{events: events},
		notifications: &fakeNotificationRepo{},
		bot:           &fakeBot{},
		recorder:      &fakeRecorder{},
	}
	f.service = NewService(Dependencies{
		Events:        f.events,
		Notifications: f.notifications,
		Bot:           f.bot,
		Recorder:      f.recorder,
	})
	return f
}

func callbackFor(data string) model.CallbackEvent {
	return model.CallbackEvent{
		CallbackID:  "cb-1",
		Data:        data,
		Admin:       model.CallbackAdmin{UserID: 42, Username: "moder", FirstName: "Anna"},
		HasMessage:  true,
		ChatID:      -1001,
		MessageID:   77,
		MessageText: "New event: Party",
	}
}

func TestProcessAcceptEndToEnd(t *testing.T) {
	f := newFixture(map[string]model.Event{
		"evt42": {ID: "evt42", Name: "Party", CreatorPhoneNumber: "+100", Status: enums.EventStatusPending},
	})

	outcome := f.service.Process(context.Background(), callbackFor("accept_evt42"))

	if len(outcome.FailedSteps) != 0 {
		t.Fatalf("unexpected failed steps: %v", outcome.FailedSteps)
	}
	if len(f.events.updates) != 1 || f.events.updates[0] != (statusUpdate{EventID: "evt42", Status: enums.EventStatusApproved}) {
		t.Fatalf("unexpected status updates: %+v", f.events.updates)
	}

	if len(f.notifications.created) != 1 {
		t.Fatalf("expected exactly one notification, got %d", len(f.notifications.created))
	}
	n := f.notifications.created[0]
	if n.Title != "Event Approved! 🎉" {
		t.Fatalf("unexpected title: %q", n.Title)
	}
	if n.Type != "event_approved" || n.EventID != "evt42" || n.EventName != "Party" || n.CreatorPhoneNumber != "+100" || n.IsRead {
		t.Fatalf("unexpected notification: %+v", n)
	}
	wantMessage := `Your event "Party" has been approved and is now visible on the map and in search results.`
	if n.Message != wantMessage {
		t.Fatalf("unexpected message: %q", n.Message)
	}
	if outcome.NotificationID != "ntf-1" {
		t.Fatalf("unexpected notification id: %q", outcome.NotificationID)
	}

	if len(f.bot.answers) != 1 || f.bot.answers[0] != "✅ Event Accepted" || f.bot.answerIDs[0] != "cb-1" {
		t.Fatalf("unexpected callback answers: %v %v", f.bot.answerIDs, f.bot.answers)
	}

	if len(f.bot.edits) != 1 {
		t.Fatalf("expected one edit, got %d", len(f.bot.edits))
	}
	edit := f.bot.edits[0]
	if edit.ChatID != -1001 || edit.MessageID != 77 {
		t.Fatalf("unexpected edit target: %+v", edit)
	}
	if edit.Text != "New event: Party\n\n✅ <b>Accepted</b> by @moder" {
		t.Fatalf("unexpected edited text: %q", edit.Text)
	}

	if len(f.recorder.callbacks) != 1 || f.recorder.callbacks[0] != "accept" {
		t.Fatalf("unexpected recorded callbacks: %v", f.recorder.callbacks)
	}
}

func TestProcessStatusMapping(t *testing.T) {
	testCases := []struct {
		data      string
		status    enums.EventStatus
		notifType string
		answer    string
	}{
		{data: "accept_e1", status: enums.EventStatusApproved, notifType: "event_approved", answer: "✅ Event Accepted"},
		{data: "waitlist_e1", status: enums.EventStatusWaitlisted, notifType: "event_waitlisted", answer: "⏳ Event Waitlisted"},
		{data: "decline_e1", status: enums.EventStatusRejected, notifType: "event_rejected", answer: "❌ Event Declined"},
	}

	for _, tc := range testCases {
		t.Run(tc.data, func(t *testing.T) {
			f := newFixture(map[string]model.Event{
				"e1": {ID: "e1", Name: "Meetup", CreatorPhoneNumber: "+1"},
			})

			f.service.Process(context.Background(), callbackFor(tc.data))

			if len(f.events.updates) != 1 || f.events.updates[0].Status != tc.status {
				t.Fatalf("unexpected updates: %+v", f.events.updates)
			}
			if len(f.notifications.created) != 1 || f.notifications.created[0].Type != tc.notifType {
				t.Fatalf("unexpected notifications: %+v", f.notifications.created)
			}
			if f.notifications.created[0].IsRead {
				t.Fatal("notification must be unread")
			}
			if len(f.bot.answers) != 1 || f.bot.answers[0] != tc.answer {
				t.Fatalf("unexpected answers: %v", f.bot.answers)
			}
		})
	}
}

func TestProcessUnknownActionWritesPending(t *testing.T) {
	f := newFixture(map[string]model.Event{
		"e1": {ID: "e1", Name: "Meetup", CreatorPhoneNumber: "+1"},
	})

	outcome := f.service.Process(context.Background(), callbackFor("archive_e1"))

	if outcome.Decision.Known() {
		t.Fatal("archive must not be a known decision")
	}
	if len(f.events.updates) != 1 || f.events.updates[0] != (statusUpdate{EventID: "e1", Status: enums.EventStatusPending}) {
		t.Fatalf("unexpected updates: %+v", f.events.updates)
	}
	if len(f.notifications.created) != 1 {
		t.Fatalf("expected one notification, got %d", len(f.notifications.created))
	}
	n := f.notifications.created[0]
	if n.Title != "" || n.Message != "" || n.Type != "event_pending" {
		t.Fatalf("unexpected notification for unknown action: %+v", n)
	}
	if f.bot.answers[0] != " Event " {
		t.Fatalf("unexpected answer text: %q", f.bot.answers[0])
	}
	if f.bot.edits[0].Text != "New event: Party\n\n <b></b> by @moder" {
		t.Fatalf("unexpected edited text: %q", f.bot.edits[0].Text)
	}
}

func TestProcessMissingEventSkipsNotification(t *testing.T) {
	f := newFixture(map[string]model.Event{})

	outcome := f.service.Process(context.Background(), callbackFor("accept_ghost"))

	if outcome.EventFound {
		t.Fatal("event must not be found")
	}
	if len(f.notifications.created) != 0 {
		t.Fatalf("expected no notifications, got %d", len(f.notifications.created))
	}
	if len(f.events.updates) != 1 || f.events.updates[0].EventID != "ghost" {
		t.Fatalf("status update must still be attempted: %+v", f.events.updates)
	}
	if len(f.bot.answers) != 1 || len(f.bot.edits) != 1 {
		t.Fatalf("bot calls must still happen: answers=%d edits=%d", len(f.bot.answers), len(f.bot.edits))
	}
	if len(outcome.FailedSteps) != 0 {
		t.Fatalf("not found is not a failure: %v", outcome.FailedSteps)
	}
}

func TestProcessEventWithoutContactSkipsNotification(t *testing.T) {
	f := newFixture(map[string]model.Event{
		"e1": {ID: "e1", Name: "Meetup"},
	})

	outcome := f.service.Process(context.Background(), callbackFor("decline_e1"))

	if !outcome.EventFound {
		t.Fatal("event must be found")
	}
	if len(f.notifications.created) != 0 {
		t.Fatalf("expected no notifications, got %d", len(f.notifications.created))
	}
}

func TestProcessUsesDefaultEventName(t *testing.T) {
	f := newFixture(map[string]model.Event{
		"e1": {ID: "e1", CreatorPhoneNumber: "+1"},
	})

	f.service.Process(context.Background(), callbackFor("waitlist_e1"))

	n := f.notifications.created[0]
	if n.EventName != model.DefaultEventName {
		t.Fatalf("unexpected event name: %q", n.EventName)
	}
	if n.Message != `Your event "Your Event" has been waitlisted. We'll review it again soon.` {
		t.Fatalf("unexpected message: %q", n.Message)
	}
}

func TestProcessContinuesAfterEveryFailure(t *testing.T) {
	f := newFixture(nil)
	f.events.getErr = errors.New("store unavailable")
	f.events.updateErr = errors.New("store unavailable")
	f.bot.answerErr = errors.New("telegram down")
	f.bot.editErr = errors.New("telegram down")

	outcome := f.service.Process(context.Background(), callbackFor("accept_e1"))

	if len(f.events.updates) != 1 {
		t.Fatal("update must be attempted after fetch failure")
	}
	if len(f.bot.answers) != 1 || len(f.bot.edits) != 1 {
		t.Fatalf("bot calls must be attempted: answers=%d edits=%d", len(f.bot.answers), len(f.bot.edits))
	}

	want := []string{StepFetchEvent, StepUpdateStatus, StepAnswerCallback, StepEditMessage}
	if len(outcome.FailedSteps) != len(want) {
		t.Fatalf("unexpected failed steps: %v", outcome.FailedSteps)
	}
	for i, step := range want {
		if outcome.FailedSteps[i] != step {
			t.Fatalf("failed step #%d: got=%s want=%s", i, outcome.FailedSteps[i], step)
		}
	}
	if len(f.recorder.failures) != len(want) {
		t.Fatalf("unexpected recorded failures: %v", f.recorder.failures)
	}
}

func TestProcessNotificationFailureDoesNotStopBotCalls(t *testing.T) {
	f := newFixture(map[string]model.Event{
		"e1": {ID: "e1", Name: "Meetup", CreatorPhoneNumber: "+1"},
	})
	f.notifications.err = errors.New("quota exceeded")

	outcome := f.service.Process(context.Background(), callbackFor("accept_e1"))

	if !outcome.Failed(StepCreateNotification) {
		t.Fatalf("expected notification failure, got %v", outcome.FailedSteps)
	}
	if len(f.bot.answers) != 1 || len(f.bot.edits) != 1 {
		t.Fatal("bot calls must still happen")
	}
}

func TestProcessWithoutSourceMessageSkipsEdit(t *testing.T) {
	f := newFixture(map[string]model.Event{})
	callback := callbackFor("accept_e1")
	callback.HasMessage = false

	outcome := f.service.Process(context.Background(), callback)

	if len(f.bot.edits) != 0 {
		t.Fatal("edit must not be attempted without a message")
	}
	if len(f.bot.answers) != 1 {
		t.Fatal("answer must still be attempted")
	}
	if !outcome.Failed(StepEditMessage) {
		t.Fatalf("expected edit step failure, got %v", outcome.FailedSteps)
	}
}

func TestProcessWithoutDependenciesDoesNotPanic(t *testing.T) {
	svc := NewService(Dependencies{})

	outcome := svc.Process(context.Background(), callbackFor("accept_e1"))

	if len(outcome.FailedSteps) != 4 {
		t.Fatalf("unexpected failed steps: %v", outcome.FailedSteps)
	}
}
