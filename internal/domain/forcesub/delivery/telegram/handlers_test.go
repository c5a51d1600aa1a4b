package telegram

import (
	"context"
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/deps"
	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/entities"
	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/repository/memory"
	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/usecase/business"
	"github.com/Conte777/forcesub-bot/internal/infrastructure/metrics"
)

const testGroupID int64 = -1001000000001

type staticOracle map[int64]entities.MembershipStatus

func (o staticOracle) Status(_ context.Context, channelID, _ int64) entities.MembershipStatus {
	if status, ok := o[channelID]; ok {
		return status
	}
	return entities.StatusUnknown
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, *entities.GateEvent) error { return nil }

type recordingCanceler struct {
	canceled [][2]int64
}

func (c *recordingCanceler) Cancel(chatID int64, messageID int) {
	c.canceled = append(c.canceled, [2]int64{chatID, int64(messageID)})
}

type handlersFixture struct {
	handlers *Handlers
	repo     deps.RequirementRepository
	api      *mockBotAPI
	canceler *recordingCanceler
}

func newHandlersFixture(oracle staticOracle) *handlersFixture {
	f := &handlersFixture{
		repo:     memory.NewRepository(),
		api:      &mockBotAPI{},
		canceler: &recordingCanceler{},
	}

	evaluator := business.NewEvaluator(f.repo, oracle, zerolog.Nop())
	verifier := business.NewVerifier(f.repo, evaluator, nopPublisher{}, metrics.GetDefaultMetrics(), zerolog.Nop())

	f.handlers = newHandlers(nil, verifier, nil, newTestSender(f.api), f.canceler, zerolog.Nop())
	return f
}

func verifyUpdate(payload string) *models.Update {
	return &models.Update{
		CallbackQuery: &models.CallbackQuery{
			ID:   "cb-1",
			From: models.User{ID: 55},
			Data: payload,
			Message: models.MaybeInaccessibleMessage{
				Message: &models.Message{ID: 1001, Chat: models.Chat{ID: testGroupID}},
			},
		},
	}
}

func TestHandleCallback_VerifiedDeletesWarningAndCancelsExpiry(t *testing.T) {
	f := newHandlersFixture(staticOracle{-1002: entities.StatusMember})
	require.NoError(t, f.repo.Upsert(context.Background(), &entities.Requirement{
		GroupID:   testGroupID,
		ChannelID: -1002,
		JoinLink:  "https://t.me/news",
		AddedBy:   1,
	}))

	f.handlers.HandleCallback(context.Background(), nil, verifyUpdate(business.VerifyPayload(testGroupID)))

	require.Len(t, f.api.answered, 1)
	assert.Equal(t, "✅ Verified! You can now chat.", f.api.answered[0].Text)
	assert.True(t, f.api.answered[0].ShowAlert)

	assert.Equal(t, [][2]int64{{testGroupID, 1001}}, f.canceler.canceled)
	require.Len(t, f.api.deleted, 1)
	assert.Equal(t, 1001, f.api.deleted[0].MessageID)
}

func TestHandleCallback_NotJoinedKeepsWarning(t *testing.T) {
	f := newHandlersFixture(staticOracle{-1002: entities.StatusLeft})
	require.NoError(t, f.repo.Upsert(context.Background(), &entities.Requirement{
		GroupID:      testGroupID,
		ChannelID:    -1002,
		ChannelTitle: "News",
		JoinLink:     "https://t.me/news",
		AddedBy:      1,
	}))

	f.handlers.HandleCallback(context.Background(), nil, verifyUpdate(business.VerifyPayload(testGroupID)))

	require.Len(t, f.api.answered, 1)
	assert.Equal(t, "❌ Please join: News", f.api.answered[0].Text)
	assert.Empty(t, f.api.deleted)
	assert.Empty(t, f.canceler.canceled)
}

func TestHandleCallback_NoRestrictionDeletesWarning(t *testing.T) {
	f := newHandlersFixture(nil)

	f.handlers.HandleCallback(context.Background(), nil, verifyUpdate(business.VerifyPayload(testGroupID)))

	require.Len(t, f.api.answered, 1)
	assert.Equal(t, "✅ No restrictions!", f.api.answered[0].Text)
	assert.Len(t, f.api.deleted, 1)
}

func TestHandleCallback_InvalidPayload(t *testing.T) {
	f := newHandlersFixture(nil)

	f.handlers.HandleCallback(context.Background(), nil, verifyUpdate("checksub_oops"))

	require.Len(t, f.api.answered, 1)
	assert.Equal(t, "❌ Invalid request.", f.api.answered[0].Text)
	assert.Empty(t, f.api.deleted)
}
