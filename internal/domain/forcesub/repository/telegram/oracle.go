// Package telegram implements forcesub lookups on the Telegram Bot API
package telegram

import (
	"context"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"github.com/Conte777/forcesub-bot/config"
	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/deps"
	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/entities"
	"github.com/Conte777/forcesub-bot/internal/infrastructure/metrics"
	"github.com/Conte777/forcesub-bot/internal/infrastructure/telegram"
)

// chatAPI is the subset of *tgbot.Bot used by this package
type chatAPI interface {
	GetChatMember(ctx context.Context, params *tgbot.GetChatMemberParams) (*models.ChatMember, error)
	GetChat(ctx context.Context, params *tgbot.GetChatParams) (*models.ChatFullInfo, error)
}

// MembershipOracle answers channel membership questions via getChatMember
type MembershipOracle struct {
	api     chatAPI
	timeout time.Duration
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewMembershipOracle creates the oracle backed by the bot
func NewMembershipOracle(bot *telegram.Bot, cfg *config.TelegramConfig, m *metrics.Metrics, logger zerolog.Logger) deps.MembershipOracle {
	return newMembershipOracle(bot.Raw(), cfg.RequestTimeout, m, logger)
}

func newMembershipOracle(api chatAPI, timeout time.Duration, m *metrics.Metrics, logger zerolog.Logger) *MembershipOracle {
	return &MembershipOracle{
		api:     api,
		timeout: timeout,
		metrics: m,
		logger:  logger.With().Str("component", "membership-oracle").Logger(),
	}
}

// Status never returns an error: every failure is reported as StatusUnknown
func (o *MembershipOracle) Status(ctx context.Context, channelID, userID int64) entities.MembershipStatus {
	reqCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	start := time.Now()
	member, err := o.api.GetChatMember(reqCtx, &tgbot.GetChatMemberParams{
		ChatID: channelID,
		UserID: userID,
	})

	status := entities.StatusUnknown
	if err != nil {
		o.logger.Warn().
			Err(err).
			Int64("channel_id", channelID).
			Int64("user_id", userID).
			Msg("Membership lookup failed")
	} else {
		status = membershipStatus(member)
		if status == entities.StatusUnknown {
			o.logger.Warn().
				Int64("channel_id", channelID).
				Int64("user_id", userID).
				Str("type", string(member.Type)).
				Msg("Unrecognised chat member type")
		}
	}

	o.metrics.RecordMembershipCheck(string(status), time.Since(start).Seconds())
	return status
}

// membershipStatus maps a platform chat member onto the gate's status enum
func membershipStatus(member *models.ChatMember) entities.MembershipStatus {
	if member == nil {
		return entities.StatusUnknown
	}

	switch member.Type {
	case models.ChatMemberTypeOwner, models.ChatMemberTypeAdministrator, models.ChatMemberTypeMember:
		return entities.StatusMember
	case models.ChatMemberTypeRestricted:
		if member.Restricted != nil && member.Restricted.IsMember {
			return entities.StatusMember
		}
		return entities.StatusLeft
	case models.ChatMemberTypeLeft:
		return entities.StatusLeft
	case models.ChatMemberTypeBanned:
		return entities.StatusBanned
	default:
		return entities.StatusUnknown
	}
}

// chatRole maps a platform chat member onto a role
func chatRole(member *models.ChatMember) entities.ChatRole {
	if member == nil {
		return entities.RoleUnknown
	}

	switch member.Type {
	case models.ChatMemberTypeOwner:
		return entities.RoleOwner
	case models.ChatMemberTypeAdministrator:
		return entities.RoleAdministrator
	case models.ChatMemberTypeMember:
		return entities.RoleMember
	case models.ChatMemberTypeRestricted:
		return entities.RoleRestricted
	case models.ChatMemberTypeLeft:
		return entities.RoleLeft
	case models.ChatMemberTypeBanned:
		return entities.RoleBanned
	default:
		return entities.RoleUnknown
	}
}
