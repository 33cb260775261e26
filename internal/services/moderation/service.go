package moderation

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ivankudzin/tgevents/internal/domain/enums"
	"github.com/ivankudzin/tgevents/internal/domain/model"
)

// Processing steps, used as log and metric labels.
const (
	StepFetchEvent         = "fetch_event"
	StepUpdateStatus       = "update_status"
	StepCreateNotification = "create_notification"
	StepAnswerCallback     = "answer_callback"
	StepEditMessage        = "edit_message"
)

type EventRepo interface {
	GetEvent(context.Context, string) (model.Event, error)
	UpdateEventStatus(context.Context, string, enums.EventStatus) error
}

type NotificationRepo interface {
	CreateNotification(context.Context, model.Notification) (string, error)
}

type Bot interface {
	AnswerCallback(ctx context.Context, callbackID, text string) error
	EditMessageText(ctx context.Context, chatID int64, messageID int, text string) error
}

type Recorder interface {
	ObserveCallback(action string, duration time.Duration)
	ObserveStepFailure(step string)
}

type Dependencies struct {
	Events        EventRepo
	Notifications NotificationRepo
	Bot           Bot
	Recorder      Recorder
	Logger        *zap.Logger
}

type Service struct {
	events        EventRepo
	notifications NotificationRepo
	bot           Bot
	recorder      Recorder
	logger        *zap.Logger
	now           func() time.Time
}

// Outcome summarizes one processed callback. FailedSteps lists steps whose
// external call returned an error, in execution order.
type Outcome struct {
	Decision       Decision
	EventID        string
	EventFound     bool
	NotificationID string
	FailedSteps    []string
}

func (o Outcome) Failed(step string) bool {
	for _, s := range o.FailedSteps {
		if s == step {
			return true
		}
	}
	return false
}

func NewService(deps Dependencies) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		events:        deps.Events,
		notifications: deps.Notifications,
		bot:           deps.Bot,
		recorder:      deps.Recorder,
		logger:        logger,
		now:           time.Now,
	}
}

// Process applies one admin decision. Every external call is attempted in
// order regardless of earlier failures; failures are logged and recorded, never
// returned.
func (s *Service) Process(ctx context.Context, callback model.CallbackEvent) Outcome {
	startedAt := s.now()

	action, eventID := ParseCallbackData(callback.Data)
	decision := DecisionFor(action)
	outcome := Outcome{Decision: decision, EventID: eventID}

	log := s.logger.With(
		zap.String("callback_id", callback.CallbackID),
		zap.String("event_id", eventID),
		zap.String("action", string(action)),
	)
	if !decision.Known() {
		log.Warn("unknown moderation action, falling back to pending", zap.String("data", callback.Data))
	}

	event, found := s.fetchEvent(ctx, log, eventID, &outcome)
	outcome.EventFound = found

	s.updateStatus(ctx, log, eventID, decision.Status, &outcome)

	if found && event.CreatorPhoneNumber != "" {
		s.createNotification(ctx, log, event, decision, &outcome)
	}

	s.answerCallback(ctx, log, callback, decision, &outcome)
	s.editMessage(ctx, log, callback, decision, &outcome)

	if s.recorder != nil {
		s.recorder.ObserveCallback(string(action), s.now().Sub(startedAt))
	}
	log.Info("moderation callback processed",
		zap.String("status", string(decision.Status)),
		zap.Bool("event_found", outcome.EventFound),
		zap.String("notification_id", outcome.NotificationID),
		zap.Strings("failed_steps", outcome.FailedSteps),
	)

	return outcome
}

func (s *Service) fetchEvent(ctx context.Context, log *zap.Logger, eventID string, outcome *Outcome) (model.Event, bool) {
	if s.events == nil {
		s.fail(log, StepFetchEvent, errors.New("event repo is not configured"), outcome)
		return model.Event{}, false
	}

	event, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, model.ErrEventNotFound) {
			log.Info("event not found, notification will be skipped")
			return model.Event{}, false
		}
		s.fail(log, StepFetchEvent, err, outcome)
		return model.Event{}, false
	}
	return event, true
}

func (s *Service) updateStatus(ctx context.Context, log *zap.Logger, eventID string, status enums.EventStatus, outcome *Outcome) {
	if s.events == nil {
		s.fail(log, StepUpdateStatus, errors.New("event repo is not configured"), outcome)
		return
	}

	if err := s.events.UpdateEventStatus(ctx, eventID, status); err != nil {
		s.fail(log, StepUpdateStatus, err, outcome)
		return
	}
	log.Info("event status updated", zap.String("status", string(status)))
}

func (s *Service) createNotification(ctx context.Context, log *zap.Logger, event model.Event, decision Decision, outcome *Outcome) {
	if s.notifications == nil {
		s.fail(log, StepCreateNotification, errors.New("notification repo is not configured"), outcome)
		return
	}

	eventName := event.DisplayName()
	notification := model.Notification{
		Type:               decision.Status.NotificationType(),
		Title:              decision.NotificationTitle(),
		Message:            decision.NotificationMessage(eventName),
		CreatorPhoneNumber: event.CreatorPhoneNumber,
		EventID:            outcome.EventID,
		EventName:          eventName,
		IsRead:             false,
	}

	id, err := s.notifications.CreateNotification(ctx, notification)
	if err != nil {
		s.fail(log, StepCreateNotification, err, outcome)
		return
	}
	outcome.NotificationID = id
	log.Info("notification created", zap.String("notification_id", id))
}

func (s *Service) answerCallback(ctx context.Context, log *zap.Logger, callback model.CallbackEvent, decision Decision, outcome *Outcome) {
	if s.bot == nil {
		s.fail(log, StepAnswerCallback, errors.New("bot is not configured"), outcome)
		return
	}

	if err := s.bot.AnswerCallback(ctx, callback.CallbackID, decision.CallbackText()); err != nil {
		s.fail(log, StepAnswerCallback, err, outcome)
	}
}

func (s *Service) editMessage(ctx context.Context, log *zap.Logger, callback model.CallbackEvent, decision Decision, outcome *Outcome) {
	if s.bot == nil {
		s.fail(log, StepEditMessage, errors.New("bot is not configured"), outcome)
		return
	}
	if !callback.HasMessage {
		s.fail(log, StepEditMessage, errors.New("callback has no source message"), outcome)
		return
	}

	adminName := callback.Admin.DisplayName()
	if strings.TrimSpace(adminName) == "" {
		log.Warn("admin has neither username nor first name", zap.Int64("admin_tg_id", callback.Admin.UserID))
	}

	text := decision.EditedMessageText(callback.MessageText, adminName)
	if err := s.bot.EditMessageText(ctx, callback.ChatID, callback.MessageID, text); err != nil {
		s.fail(log, StepEditMessage, err, outcome)
	}
}

func (s *Service) fail(log *zap.Logger, step string, err error, outcome *Outcome) {
	outcome.FailedSteps = append(outcome.FailedSteps, step)
	if s.recorder != nil {
		s.recorder.ObserveStepFailure(step)
	}
	log.Error("moderation step failed", zap.String("step", step), zap.Error(err))
}
