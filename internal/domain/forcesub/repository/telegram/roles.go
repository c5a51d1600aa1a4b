package telegram

import (
	"context"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog"

	"github.com/Conte777/forcesub-bot/config"
	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/deps"
	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/entities"
	"github.com/Conte777/forcesub-bot/internal/infrastructure/metrics"
	"github.com/Conte777/forcesub-bot/internal/infrastructure/telegram"
)

const roleCacheSize = 4096

type roleKey struct {
	chatID int64
	userID int64
}

// RoleChecker resolves gate exemption from the user's role in the group.
// Only positive answers are cached so a failed lookup never sticks.
type RoleChecker struct {
	api     chatAPI
	timeout time.Duration
	cache   *expirable.LRU[roleKey, entities.ChatRole]
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewRoleChecker creates the role checker backed by the bot
func NewRoleChecker(
	bot *telegram.Bot,
	tgCfg *config.TelegramConfig,
	gateCfg *config.GateConfig,
	m *metrics.Metrics,
	logger zerolog.Logger,
) deps.RoleChecker {
	return newRoleChecker(bot.Raw(), tgCfg.RequestTimeout, gateCfg.AdminCacheTTL, m, logger)
}

func newRoleChecker(api chatAPI, timeout, cacheTTL time.Duration, m *metrics.Metrics, logger zerolog.Logger) *RoleChecker {
	c := &RoleChecker{
		api:     api,
		timeout: timeout,
		metrics: m,
		logger:  logger.With().Str("component", "role-checker").Logger(),
	}

	// expirable treats a zero TTL as "never expire", so zero disables the cache instead
	if cacheTTL > 0 {
		c.cache = expirable.NewLRU[roleKey, entities.ChatRole](roleCacheSize, nil, cacheTTL)
	}

	return c
}

// Exemption returns Exempt for group owners and administrators
func (c *RoleChecker) Exemption(ctx context.Context, chatID, userID int64) entities.Exemption {
	key := roleKey{chatID: chatID, userID: userID}

	if c.cache != nil {
		if _, ok := c.cache.Get(key); ok {
			c.metrics.RecordRoleCheck(string(entities.Exempt), true)
			return entities.Exempt
		}
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	member, err := c.api.GetChatMember(reqCtx, &tgbot.GetChatMemberParams{
		ChatID: chatID,
		UserID: userID,
	})
	if err != nil {
		c.logger.Warn().
			Err(err).
			Int64("chat_id", chatID).
			Int64("user_id", userID).
			Msg("Role lookup failed, treating as not exempt")
		c.metrics.RecordRoleCheck(string(entities.ExemptUnknown), false)
		return entities.ExemptUnknown
	}

	role := chatRole(member)
	result := entities.NotExempt

	switch {
	case role == entities.RoleUnknown:
		result = entities.ExemptUnknown
	case role.IsElevated():
		result = entities.Exempt
		if c.cache != nil {
			c.cache.Add(key, role)
		}
	}

	c.metrics.RecordRoleCheck(string(result), false)
	return result
}
