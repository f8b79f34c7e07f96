package alert

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"pump-radar/internal/tracker/config"
)

// Notifier delivers one formatted message to the alert channel. Delivery is
// fire-and-forget: failures are logged by callers, never retried.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// TelegramNotifier dispatches alerts to a Telegram chat.
type TelegramNotifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
	logger *zap.Logger
}

func NewTelegramNotifier(cfg config.TelegramConfig, logger *zap.Logger) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &TelegramNotifier{
		api:    api,
		chatID: cfg.ChatID,
		logger: logger,
	}, nil
}

func (n *TelegramNotifier) Notify(ctx context.Context, message string) error {
	msg := tgbotapi.NewMessage(n.chatID, message)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true

	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}

// LogNotifier writes alerts to the log instead of a chat. Used when no
// Telegram token is configured, typically in local runs.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, message string) error {
	n.logger.Info("alert (log-only dispatch)", zap.String("message", message))
	return nil
}
