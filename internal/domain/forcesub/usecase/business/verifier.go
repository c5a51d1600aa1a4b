package business

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/deps"
	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/dto"
	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/entities"
	"github.com/Conte777/forcesub-bot/internal/infrastructure/metrics"
)

// Acknowledgement texts shown as callback alerts
const (
	ackInvalid       = "❌ Invalid request."
	ackUnavailable   = "⚠️ Verification is temporarily unavailable. Please try again later."
	ackNoRestriction = "✅ No restrictions!"
	ackVerified      = "✅ Verified! You can now chat."
	ackPleaseJoin    = "❌ Please join: "
)

// Verifier handles presses of the re-verify button
type Verifier struct {
	repo      deps.RequirementRepository
	evaluator *Evaluator
	publisher deps.EventPublisher
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

// NewVerifier creates a new re-verification handler
func NewVerifier(
	repo deps.RequirementRepository,
	evaluator *Evaluator,
	publisher deps.EventPublisher,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *Verifier {
	return &Verifier{
		repo:      repo,
		evaluator: evaluator,
		publisher: publisher,
		metrics:   m,
		logger:    logger.With().Str("component", "verifier").Logger(),
	}
}

// Verify re-evaluates the invoking user, who may differ from the warned one
func (v *Verifier) Verify(ctx context.Context, req *dto.VerifyRequest) *dto.VerifyResponse {
	resp := v.verify(ctx, req)
	v.metrics.RecordVerification(string(resp.Result))
	return resp
}

func (v *Verifier) verify(ctx context.Context, req *dto.VerifyRequest) *dto.VerifyResponse {
	groupID, err := ParseVerifyPayload(req.Payload)
	if err != nil {
		v.logger.Warn().
			Str("payload", req.Payload).
			Int64("user_id", req.InvokerID).
			Msg("Malformed verify payload")
		return &dto.VerifyResponse{Result: dto.VerifyInvalid, Text: ackInvalid}
	}

	log := v.logger.With().
		Int64("group_id", groupID).
		Int64("user_id", req.InvokerID).
		Logger()

	reqs, err := v.repo.List(ctx, groupID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load requirements for verification")
		return &dto.VerifyResponse{Result: dto.VerifyUnavailable, Text: ackUnavailable}
	}

	if len(reqs) == 0 {
		return &dto.VerifyResponse{
			Result:        dto.VerifyNoRestriction,
			Text:          ackNoRestriction,
			DeleteWarning: true,
		}
	}

	decision := v.evaluator.Check(ctx, reqs, req.InvokerID)

	if decision.Admitted {
		log.Info().Msg("User verified")
		publishEvent(ctx, v.publisher, log, &entities.GateEvent{
			Type:    entities.EventVerificationPassed,
			GroupID: groupID,
			UserID:  req.InvokerID,
		})
		return &dto.VerifyResponse{
			Result:        dto.VerifyPassed,
			Text:          ackVerified,
			DeleteWarning: true,
		}
	}

	log.Info().Int("missing", len(decision.Missing)).Msg("Verification failed")
	publishEvent(ctx, v.publisher, log, &entities.GateEvent{
		Type:       entities.EventVerificationFailed,
		GroupID:    groupID,
		UserID:     req.InvokerID,
		ChannelIDs: channelIDs(decision.Missing),
	})

	return &dto.VerifyResponse{
		Result: dto.VerifyFailed,
		Text:   ackPleaseJoin + strings.Join(decision.MissingTitles(), ", "),
	}
}
