// Package telegram contains Telegram bot infrastructure
package telegram

import (
	"context"
	"fmt"
	"sync"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"
)

// Bot wraps the Telegram bot for infrastructure layer
type Bot struct {
	bot    *tgbot.Bot
	logger zerolog.Logger

	mu       sync.RWMutex
	fallback tgbot.HandlerFunc
	selfID   int64
}

// NewBot creates a new Telegram bot wrapper
func NewBot(token string, logger zerolog.Logger) (*Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram token is required")
	}

	b := &Bot{logger: logger}

	opts := []tgbot.Option{
		tgbot.WithDefaultHandler(b.defaultHandler),
	}

	bot, err := tgbot.New(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	b.bot = bot

	logger.Info().Msg("Telegram bot created successfully")

	return b, nil
}

// Raw returns the underlying telegram bot for handler registration
func (b *Bot) Raw() *tgbot.Bot {
	return b.bot
}

// SetFallback sets the handler for updates that match no registered route.
// The domain layer installs it after construction since it depends on the bot.
func (b *Bot) SetFallback(h tgbot.HandlerFunc) {
	b.mu.Lock()
	b.fallback = h
	b.mu.Unlock()
}

// SelfID returns the bot's own user id, fetched once via getMe
func (b *Bot) SelfID(ctx context.Context) (int64, error) {
	b.mu.RLock()
	id := b.selfID
	b.mu.RUnlock()
	if id != 0 {
		return id, nil
	}

	me, err := b.bot.GetMe(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get bot identity: %w", err)
	}

	b.mu.Lock()
	b.selfID = me.ID
	b.mu.Unlock()

	return me.ID, nil
}

// Start starts the bot (blocking call)
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info().Msg("Starting Telegram bot...")
	b.bot.Start(ctx)
	b.logger.Info().Msg("Telegram bot stopped")
	return nil
}

// Stop stops the bot
func (b *Bot) Stop() error {
	b.logger.Info().Msg("Stopping Telegram bot...")
	return nil
}

// defaultHandler forwards unmatched updates to the fallback handler
func (b *Bot) defaultHandler(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	b.mu.RLock()
	h := b.fallback
	b.mu.RUnlock()

	if h == nil {
		return
	}
	h(ctx, bot, update)
}
