package telegram

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/ivankudzin/tgevents/internal/domain/model"
)

type Config struct {
	Token       string
	APIEndpoint string
	HTTPClient  *http.Client
}

// Bot wraps the Bot API calls the webhook needs. With an empty token it runs
// in dry mode: calls are logged and succeed without network access.
type Bot struct {
	api    *tgbotapi.BotAPI
	logger *zap.Logger
	dryRun bool
}

func NewBot(cfg Config, logger *zap.Logger) (*Bot, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		logger.Warn("BOT_TOKEN is empty, bot api calls run in dry mode")
		return &Bot{logger: logger, dryRun: true}, nil
	}

	endpoint := cfg.APIEndpoint
	if strings.TrimSpace(endpoint) == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}

	// No getMe round trip here: an unreachable Bot API must fail single
	// requests, not startup.
	api := &tgbotapi.BotAPI{Token: token, Client: client, Buffer: 100}
	api.SetAPIEndpoint(endpoint)

	return &Bot{api: api, logger: logger}, nil
}

func (b *Bot) DryRun() bool {
	return b != nil && b.dryRun
}

// AnswerCallback answers a callback query with a non-blocking notification.
func (b *Bot) AnswerCallback(ctx context.Context, callbackID, text string) error {
	if b == nil {
		return fmt.Errorf("telegram bot is not initialized")
	}
	if strings.TrimSpace(callbackID) == "" {
		return fmt.Errorf("callback id is required")
	}
	if b.dryRun {
		b.logger.Info("dry run: answer callback query", zap.String("callback_id", callbackID), zap.String("text", text))
		return nil
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("answer callback query: %w", err)
	}

	cfg := tgbotapi.NewCallback(callbackID, text)
	cfg.ShowAlert = false
	if _, err := b.api.Request(cfg); err != nil {
		return fmt.Errorf("answer callback query: %w", err)
	}

	return nil
}

// EditMessageText replaces a message text, rendered with HTML formatting.
func (b *Bot) EditMessageText(ctx context.Context, chatID int64, messageID int, text string) error {
	if b == nil {
		return fmt.Errorf("telegram bot is not initialized")
	}
	if chatID == 0 || messageID == 0 {
		return fmt.Errorf("chat id and message id are required")
	}
	if b.dryRun {
		b.logger.Info("dry run: edit message text",
			zap.Int64("chat_id", chatID),
			zap.Int("message_id", messageID),
			zap.String("text", text),
		)
		return nil
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("edit message text: %w", err)
	}

	cfg := tgbotapi.NewEditMessageText(chatID, messageID, text)
	cfg.ParseMode = tgbotapi.ModeHTML
	if _, err := b.api.Request(cfg); err != nil {
		return fmt.Errorf("edit message text: %w", err)
	}

	return nil
}

// CallbackEventFromUpdate extracts the moderation callback from an update.
// It reports false when the update carries no callback query.
func CallbackEventFromUpdate(update tgbotapi.Update) (model.CallbackEvent, bool) {
	query := update.CallbackQuery
	if query == nil {
		return model.CallbackEvent{}, false
	}

	event := model.CallbackEvent{
		CallbackID: query.ID,
		Data:       query.Data,
	}
	if query.From != nil {
		event.Admin = model.CallbackAdmin{
			UserID:    query.From.ID,
			Username:  query.From.UserName,
			FirstName: query.From.FirstName,
		}
	}
	if query.Message != nil && query.Message.Chat != nil {
		event.HasMessage = true
		event.ChatID = query.Message.Chat.ID
		event.MessageID = query.Message.MessageID
		event.MessageText = query.Message.Text
	}

	return event, true
}
