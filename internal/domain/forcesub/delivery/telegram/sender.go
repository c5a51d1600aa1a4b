// Package telegram contains Telegram delivery for the forcesub domain
package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"github.com/Conte777/forcesub-bot/config"
	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/entities"
	fserrors "github.com/Conte777/forcesub-bot/internal/domain/forcesub/errors"
	"github.com/Conte777/forcesub-bot/internal/infrastructure/telegram"
	pkgerrors "github.com/Conte777/forcesub-bot/pkg/errors"
)

// MaxCallbackAnswerLength is the Bot API limit for answerCallbackQuery text
const MaxCallbackAnswerLength = 200

// botAPI is the part of the Bot API used for chat side effects
type botAPI interface {
	SendMessage(ctx context.Context, params *tgbot.SendMessageParams) (*models.Message, error)
	DeleteMessage(ctx context.Context, params *tgbot.DeleteMessageParams) (bool, error)
	AnswerCallbackQuery(ctx context.Context, params *tgbot.AnswerCallbackQueryParams) (bool, error)
}

// Sender performs chat side effects.
// Implements deps.Messenger interface
type Sender struct {
	api     botAPI
	timeout time.Duration
	logger  zerolog.Logger
}

// NewSender creates a new Telegram sender
func NewSender(bot *telegram.Bot, cfg *config.TelegramConfig, logger zerolog.Logger) *Sender {
	return newSender(bot.Raw(), cfg.RequestTimeout, logger.With().Str("component", "sender").Logger())
}

func newSender(api botAPI, timeout time.Duration, logger zerolog.Logger) *Sender {
	return &Sender{
		api:     api,
		timeout: timeout,
		logger:  logger,
	}
}

// SendWarning implements deps.Messenger interface
func (s *Sender) SendWarning(ctx context.Context, warning *entities.Warning) (int, error) {
	msgCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	disablePreview := true
	msg, err := s.api.SendMessage(msgCtx, &tgbot.SendMessageParams{
		ChatID:             warning.ChatID,
		Text:               warning.Text,
		ParseMode:          models.ParseModeHTML,
		ReplyMarkup:        inlineKeyboard(warning.Buttons),
		LinkPreviewOptions: &models.LinkPreviewOptions{IsDisabled: &disablePreview},
	})
	if err != nil {
		return 0, s.handleSendError(warning.ChatID, err)
	}

	s.logger.Debug().
		Int64("chat_id", warning.ChatID).
		Int("message_id", msg.ID).
		Int("buttons", len(warning.Buttons)).
		Msg("Warning sent")

	return msg.ID, nil
}

// DeleteMessage implements deps.Messenger interface
func (s *Sender) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	msgCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.api.DeleteMessage(msgCtx, &tgbot.DeleteMessageParams{
		ChatID:    chatID,
		MessageID: messageID,
	}); err != nil {
		return pkgerrors.Wrap(fserrors.ErrTelegramAPI, err)
	}

	return nil
}

// AnswerCallback shows text to the user who pressed a button, as an alert
func (s *Sender) AnswerCallback(ctx context.Context, callbackID, text string) error {
	msgCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.api.AnswerCallbackQuery(msgCtx, &tgbot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            truncate(text, MaxCallbackAnswerLength),
		ShowAlert:       true,
	}); err != nil {
		return pkgerrors.Wrap(fserrors.ErrTelegramAPI, err)
	}

	return nil
}

// Reply sends an HTML reply to a command message
func (s *Sender) Reply(ctx context.Context, chatID int64, replyTo int, text string) error {
	if text == "" {
		return fmt.Errorf("message text cannot be empty")
	}

	msgCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	params := &tgbot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if replyTo != 0 {
		params.ReplyParameters = &models.ReplyParameters{
			MessageID:                replyTo,
			AllowSendingWithoutReply: true,
		}
	}

	if _, err := s.api.SendMessage(msgCtx, params); err != nil {
		return s.handleSendError(chatID, err)
	}

	return nil
}

func (s *Sender) handleSendError(chatID int64, err error) error {
	errorMsg := err.Error()

	switch {
	case strings.Contains(errorMsg, "Forbidden"):
		s.logger.Warn().Int64("chat_id", chatID).Msg("Bot was removed from the chat or cannot write there")
	case strings.Contains(errorMsg, "Too Many Requests"):
		s.logger.Warn().Int64("chat_id", chatID).Msg("Rate limit exceeded")
	case strings.Contains(errorMsg, "timeout"), strings.Contains(errorMsg, "deadline exceeded"):
		s.logger.Warn().Int64("chat_id", chatID).Msg("Network error while sending message")
	default:
		s.logger.Error().Int64("chat_id", chatID).Err(err).Msg("Unknown error while sending message")
	}

	return pkgerrors.Wrap(fserrors.ErrTelegramAPI, err)
}

// inlineKeyboard lays out one button per row
func inlineKeyboard(buttons []entities.Button) models.ReplyMarkup {
	if len(buttons) == 0 {
		return nil
	}

	rows := make([][]models.InlineKeyboardButton, 0, len(buttons))
	for _, b := range buttons {
		rows = append(rows, []models.InlineKeyboardButton{{
			Text:         b.Text,
			URL:          b.URL,
			CallbackData: b.CallbackData,
		}})
	}

	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit-1]) + "…"
}
