package business

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Conte777/forcesub-bot/config"
	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/deps"
	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/dto"
	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/entities"
	"github.com/Conte777/forcesub-bot/internal/infrastructure/metrics"
)

// Gate intercepts group messages from users who have not joined the required channels
type Gate struct {
	evaluator *Evaluator
	roles     deps.RoleChecker
	messenger deps.Messenger
	expirer   deps.Expirer
	publisher deps.EventPublisher
	cfg       *config.GateConfig
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

// NewGate creates a new gate controller
func NewGate(
	evaluator *Evaluator,
	roles deps.RoleChecker,
	messenger deps.Messenger,
	expirer deps.Expirer,
	publisher deps.EventPublisher,
	cfg *config.GateConfig,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *Gate {
	return &Gate{
		evaluator: evaluator,
		roles:     roles,
		messenger: messenger,
		expirer:   expirer,
		publisher: publisher,
		cfg:       cfg,
		metrics:   m,
		logger:    logger.With().Str("component", "gate").Logger(),
	}
}

// Handle runs one message through the gate and returns its terminal state
func (g *Gate) Handle(ctx context.Context, msg *dto.GroupMessage) dto.GateOutcome {
	start := time.Now()
	outcome := g.handle(ctx, msg)
	g.metrics.RecordGateOutcome(string(outcome), time.Since(start).Seconds())
	return outcome
}

func (g *Gate) handle(ctx context.Context, msg *dto.GroupMessage) dto.GateOutcome {
	if !msg.IsGroup || !msg.HasBody || msg.SenderIsBot || msg.IsCommand || msg.GroupAuthored {
		return dto.OutcomeExempt
	}
	if msg.SenderID == 0 && msg.SenderChatID == 0 {
		return dto.OutcomeExempt
	}

	reqs, ok := g.evaluator.Requirements(ctx, msg.ChatID)
	if ok && len(reqs) == 0 {
		return dto.OutcomeAdmitted
	}

	var decision entities.Decision
	switch {
	case msg.SenderID == 0:
		// Channel membership cannot be checked for a channel identity
		decision = entities.Deny(reqs)
		if !ok {
			decision = entities.DenyDegraded()
		}
	case g.isExempt(ctx, msg):
		return dto.OutcomeExempt
	case !ok:
		decision = entities.DenyDegraded()
	default:
		decision = g.evaluator.Check(ctx, reqs, msg.SenderID)
	}

	if decision.Admitted {
		return dto.OutcomeAdmitted
	}

	log := g.logger.With().
		Int64("group_id", msg.ChatID).
		Int64("user_id", msg.SenderID).
		Int64("sender_chat_id", msg.SenderChatID).
		Int("message_id", msg.MessageID).
		Logger()

	if err := g.messenger.DeleteMessage(ctx, msg.ChatID, msg.MessageID); err != nil {
		log.Warn().Err(err).Msg("Failed to delete gated message")
	}

	outcome := g.warn(ctx, msg, decision, log)

	publishEvent(ctx, g.publisher, log, &entities.GateEvent{
		Type:       entities.EventMessageSuppressed,
		GroupID:    msg.ChatID,
		UserID:     msg.SenderID,
		ChannelIDs: channelIDs(decision.Missing),
		Degraded:   decision.Degraded,
	})

	return outcome
}

// isExempt applies the superuser list and the group role check.
// An unknown role counts as not exempt.
func (g *Gate) isExempt(ctx context.Context, msg *dto.GroupMessage) bool {
	if g.cfg.IsSuperuser(msg.SenderID) {
		return true
	}

	exemption := g.roles.Exemption(ctx, msg.ChatID, msg.SenderID)
	if exemption == entities.ExemptUnknown {
		g.logger.Debug().
			Int64("group_id", msg.ChatID).
			Int64("user_id", msg.SenderID).
			Msg("Role unknown, gating as regular member")
	}

	return exemption.IsExempt()
}

// warn sends the join warning and schedules its removal
func (g *Gate) warn(ctx context.Context, msg *dto.GroupMessage, decision entities.Decision, log zerolog.Logger) dto.GateOutcome {
	warning := composeWarning(&senderRef{
		chatID: msg.ChatID,
		userID: msg.SenderID,
		name:   msg.SenderName,
	}, decision)

	messageID, err := g.messenger.SendWarning(ctx, warning)
	if err != nil {
		g.metrics.RecordWarningSent(false)
		log.Error().Err(err).Msg("Failed to send join warning")
		return dto.OutcomeSuppressed
	}
	g.metrics.RecordWarningSent(true)

	g.expirer.Schedule(msg.ChatID, messageID, g.cfg.WarningTTL)

	log.Info().
		Int("warning_id", messageID).
		Int("missing", len(decision.Missing)).
		Bool("degraded", decision.Degraded).
		Msg("Message suppressed, warning sent")

	return dto.OutcomeWarned
}
