package telegram

import (
	"context"
	"strconv"
	"strings"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/rs/zerolog"

	"github.com/Conte777/forcesub-bot/config"
	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/deps"
	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/entities"
	fserrors "github.com/Conte777/forcesub-bot/internal/domain/forcesub/errors"
	"github.com/Conte777/forcesub-bot/internal/infrastructure/telegram"
	pkgerrors "github.com/Conte777/forcesub-bot/pkg/errors"
)

type selfIdentifier interface {
	SelfID(ctx context.Context) (int64, error)
}

// ChannelResolver looks up target channels for admin commands
type ChannelResolver struct {
	api     chatAPI
	self    selfIdentifier
	timeout time.Duration
	logger  zerolog.Logger
}

// NewChannelResolver creates the resolver backed by the bot
func NewChannelResolver(bot *telegram.Bot, cfg *config.TelegramConfig, logger zerolog.Logger) deps.ChannelResolver {
	return newChannelResolver(bot.Raw(), bot, cfg.RequestTimeout, logger)
}

func newChannelResolver(api chatAPI, self selfIdentifier, timeout time.Duration, logger zerolog.Logger) *ChannelResolver {
	return &ChannelResolver{
		api:     api,
		self:    self,
		timeout: timeout,
		logger:  logger.With().Str("component", "channel-resolver").Logger(),
	}
}

// ResolveChannel accepts "@username", a bare username or a numeric chat id
func (r *ChannelResolver) ResolveChannel(ctx context.Context, ref string) (*entities.ChannelInfo, error) {
	chatID, err := chatReference(ref)
	if err != nil {
		return nil, err
	}

	reqCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	chat, err := r.api.GetChat(reqCtx, &tgbot.GetChatParams{ChatID: chatID})
	if err != nil {
		r.logger.Warn().Err(err).Str("ref", ref).Msg("Failed to resolve channel")
		return nil, pkgerrors.Wrap(fserrors.ErrChannelNotFound, err)
	}

	return &entities.ChannelInfo{
		ID:       chat.ID,
		Title:    chat.Title,
		Username: chat.Username,
	}, nil
}

// BotRole returns the bot's own role in the channel
func (r *ChannelResolver) BotRole(ctx context.Context, channelID int64) (entities.ChatRole, error) {
	reqCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	selfID, err := r.self.SelfID(reqCtx)
	if err != nil {
		return entities.RoleUnknown, pkgerrors.Wrap(fserrors.ErrBotRoleUnknown, err)
	}

	member, err := r.api.GetChatMember(reqCtx, &tgbot.GetChatMemberParams{
		ChatID: channelID,
		UserID: selfID,
	})
	if err != nil {
		r.logger.Warn().Err(err).Int64("channel_id", channelID).Msg("Failed to check bot role")
		return entities.RoleUnknown, pkgerrors.Wrap(fserrors.ErrBotRoleUnknown, err)
	}

	return chatRole(member), nil
}

// chatReference converts a user supplied reference into a Bot API chat id
func chatReference(ref string) (any, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" || ref == "@" {
		return nil, fserrors.ErrInvalidChannelID
	}

	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		if id == 0 {
			return nil, fserrors.ErrInvalidChannelID
		}
		return id, nil
	}

	if !strings.HasPrefix(ref, "@") {
		ref = "@" + ref
	}
	return ref, nil
}
