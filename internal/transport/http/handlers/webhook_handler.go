package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/ivankudzin/tgevents/internal/domain/model"
	"github.com/ivankudzin/tgevents/internal/infra/telegram"
	modsvc "github.com/ivankudzin/tgevents/internal/services/moderation"
)

const maxUpdateBodyBytes = 1 << 20

type CallbackProcessor interface {
	Process(context.Context, model.CallbackEvent) modsvc.Outcome
}

// WebhookHandler receives bot platform updates. It answers 200 with an empty
// body for every request so the platform never redelivers or disables the hook.
type WebhookHandler struct {
	processor CallbackProcessor
	logger    *zap.Logger
}

func NewWebhookHandler(processor CallbackProcessor, logger *zap.Logger) *WebhookHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookHandler{processor: processor, logger: logger}
}

func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error("webhook handler panic", zap.Any("panic", rec), zap.Stack("stack"))
		}
		w.WriteHeader(http.StatusOK)
	}()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxUpdateBodyBytes))
	if err != nil {
		h.logger.Warn("read webhook body", zap.Error(err))
		return
	}

	var update tgbotapi.Update
	if err := json.Unmarshal(body, &update); err != nil {
		h.logger.Warn("decode webhook update", zap.Error(err), zap.Int("body_bytes", len(body)))
		return
	}

	callback, ok := telegram.CallbackEventFromUpdate(update)
	if !ok {
		h.logger.Debug("update without callback query ignored", zap.Int("update_id", update.UpdateID))
		return
	}
	if h.processor == nil {
		h.logger.Error("moderation processor is unavailable", zap.String("callback_id", callback.CallbackID))
		return
	}

	h.processor.Process(r.Context(), callback)
}
