package business

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conte777/forcesub-bot/config"
	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/dto"
	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/entities"
	"github.com/Conte777/forcesub-bot/internal/infrastructure/metrics"
)

type gateFixture struct {
	gate      *Gate
	repo      *mockRepository
	oracle    *mockOracle
	roles     *mockRoles
	messenger *mockMessenger
	expirer   *mockExpirer
	publisher *mockPublisher
}

func newGateFixture(reqs []entities.Requirement, statuses map[int64]entities.MembershipStatus) *gateFixture {
	f := &gateFixture{
		repo:      staticRepo(reqs),
		oracle:    newMockOracle(statuses),
		roles:     &mockRoles{},
		messenger: &mockMessenger{},
		expirer:   &mockExpirer{},
		publisher: &mockPublisher{},
	}

	cfg := &config.GateConfig{
		SuperuserIDs: []int64{999},
		WarningTTL:   60 * time.Second,
	}

	f.gate = NewGate(
		NewEvaluator(f.repo, f.oracle, zerolog.Nop()),
		f.roles,
		f.messenger,
		f.expirer,
		f.publisher,
		cfg,
		metrics.GetDefaultMetrics(),
		zerolog.Nop(),
	)
	return f
}

func groupMessage() *dto.GroupMessage {
	return &dto.GroupMessage{
		ChatID:     testGroupID,
		ChatTitle:  "Test Group",
		IsGroup:    true,
		MessageID:  77,
		SenderID:   42,
		SenderName: "Alice",
		HasBody:    true,
	}
}

func TestGate_ExemptWithoutSideEffects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(msg *dto.GroupMessage)
	}{
		{"private chat", func(msg *dto.GroupMessage) { msg.IsGroup = false }},
		{"service message", func(msg *dto.GroupMessage) { msg.HasBody = false }},
		{"bot sender", func(msg *dto.GroupMessage) { msg.SenderIsBot = true }},
		{"command", func(msg *dto.GroupMessage) { msg.IsCommand = true }},
		{"no sender", func(msg *dto.GroupMessage) { msg.SenderID = 0 }},
		{"group authored", func(msg *dto.GroupMessage) { msg.SenderID = 0; msg.GroupAuthored = true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newGateFixture(requirementsOf(testGroupID, 1), nil)
			msg := groupMessage()
			tt.mutate(msg)

			outcome := f.gate.Handle(context.Background(), msg)

			assert.Equal(t, dto.OutcomeExempt, outcome)
			assert.Zero(t, f.roles.calls)
			assert.Zero(t, f.oracle.callCount())
			assert.Empty(t, f.messenger.deleted)
			assert.Empty(t, f.messenger.warnings)
		})
	}
}

func TestGate_SuperuserExempt(t *testing.T) {
	f := newGateFixture(requirementsOf(testGroupID, 1), nil)
	msg := groupMessage()
	msg.SenderID = 999

	assert.Equal(t, dto.OutcomeExempt, f.gate.Handle(context.Background(), msg))
	assert.Zero(t, f.roles.calls)
	assert.Zero(t, f.oracle.callCount())
}

func TestGate_GroupAdminExempt(t *testing.T) {
	f := newGateFixture(requirementsOf(testGroupID, 1), nil)
	f.roles.exemptionFunc = func(_ context.Context, chatID, userID int64) entities.Exemption {
		assert.Equal(t, testGroupID, chatID)
		assert.Equal(t, int64(42), userID)
		return entities.Exempt
	}

	assert.Equal(t, dto.OutcomeExempt, f.gate.Handle(context.Background(), groupMessage()))
	assert.Zero(t, f.oracle.callCount())
	assert.Empty(t, f.messenger.deleted)
}

func TestGate_UnknownRoleIsGated(t *testing.T) {
	f := newGateFixture(requirementsOf(testGroupID, 1), nil)
	f.roles.exemptionFunc = func(context.Context, int64, int64) entities.Exemption {
		return entities.ExemptUnknown
	}

	assert.Equal(t, dto.OutcomeWarned, f.gate.Handle(context.Background(), groupMessage()))
	assert.Len(t, f.messenger.deleted, 1)
}

func TestGate_AdmittedLeavesMessage(t *testing.T) {
	f := newGateFixture(requirementsOf(testGroupID, 1, 2), map[int64]entities.MembershipStatus{
		1: entities.StatusMember,
		2: entities.StatusMember,
	})

	assert.Equal(t, dto.OutcomeAdmitted, f.gate.Handle(context.Background(), groupMessage()))
	assert.Empty(t, f.messenger.deleted)
	assert.Empty(t, f.messenger.warnings)
	assert.Empty(t, f.expirer.scheduled)
	assert.Empty(t, f.publisher.events)
}

func TestGate_NoRequirementsAdmitted(t *testing.T) {
	f := newGateFixture(nil, nil)

	assert.Equal(t, dto.OutcomeAdmitted, f.gate.Handle(context.Background(), groupMessage()))
	assert.Zero(t, f.oracle.callCount())
	assert.Zero(t, f.roles.calls)
	assert.Empty(t, f.messenger.deleted)
}

func TestGate_ChannelIdentityDeniedWithoutLookup(t *testing.T) {
	f := newGateFixture(requirementsOf(testGroupID, 1, 2), map[int64]entities.MembershipStatus{
		1: entities.StatusMember,
		2: entities.StatusMember,
	})
	msg := groupMessage()
	msg.SenderID = 0
	msg.SenderChatID = -100777
	msg.SenderName = "Cheap <Followers>"

	assert.Equal(t, dto.OutcomeWarned, f.gate.Handle(context.Background(), msg))

	assert.Zero(t, f.oracle.callCount())
	assert.Zero(t, f.roles.calls)
	assert.Equal(t, []deletedMessage{{chatID: testGroupID, messageID: 77}}, f.messenger.deleted)

	require.Len(t, f.messenger.warnings, 1)
	warning := f.messenger.warnings[0]
	assert.Contains(t, warning.Text, "Hey Cheap &lt;Followers&gt;!")
	assert.NotContains(t, warning.Text, "tg://user")
	assert.Contains(t, warning.Text, "1. <b>C1</b>\n2. <b>C2</b>")
	assert.Len(t, warning.Buttons, 3)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, []int64{1, 2}, f.publisher.events[0].ChannelIDs)
}

func TestGate_ChannelIdentityInUngatedGroupAdmitted(t *testing.T) {
	f := newGateFixture(nil, nil)
	msg := groupMessage()
	msg.SenderID = 0
	msg.SenderChatID = -100777

	assert.Equal(t, dto.OutcomeAdmitted, f.gate.Handle(context.Background(), msg))
	assert.Empty(t, f.messenger.deleted)
}

func TestGate_RegistryFailureStillExemptsAdmins(t *testing.T) {
	f := newGateFixture(nil, nil)
	f.repo.listFunc = func(context.Context, int64) ([]entities.Requirement, error) {
		return nil, errors.New("connection refused")
	}
	f.roles.exemptionFunc = func(context.Context, int64, int64) entities.Exemption {
		return entities.Exempt
	}

	assert.Equal(t, dto.OutcomeExempt, f.gate.Handle(context.Background(), groupMessage()))
	assert.Equal(t, 1, f.roles.calls)
	assert.Empty(t, f.messenger.deleted)
}

func TestGate_DeniedDeletesWarnsAndSchedules(t *testing.T) {
	f := newGateFixture(requirementsOf(testGroupID, 1, 2, 3), map[int64]entities.MembershipStatus{
		1: entities.StatusMember,
		2: entities.StatusLeft,
		3: entities.StatusBanned,
	})

	outcome := f.gate.Handle(context.Background(), groupMessage())

	assert.Equal(t, dto.OutcomeWarned, outcome)
	assert.Equal(t, []deletedMessage{{chatID: testGroupID, messageID: 77}}, f.messenger.deleted)

	require.Len(t, f.messenger.warnings, 1)
	warning := f.messenger.warnings[0]
	assert.Equal(t, testGroupID, warning.ChatID)
	assert.Contains(t, warning.Text, `<a href="tg://user?id=42">Alice</a>`)
	assert.Contains(t, warning.Text, "1. <b>C2</b>\n2. <b>C3</b>")
	assert.NotContains(t, warning.Text, "C1")

	assert.Equal(t, []entities.Button{
		{Text: "👉 Join C2", URL: "https://t.me/C2"},
		{Text: "👉 Join C3", URL: "https://t.me/C3"},
		{Text: "✅ I've Joined - Verify", CallbackData: "checksub_-1001000000001"},
	}, warning.Buttons)

	assert.Equal(t, []scheduledDeletion{{chatID: testGroupID, messageID: 1001, delay: 60 * time.Second}}, f.expirer.scheduled)

	require.Len(t, f.publisher.events, 1)
	event := f.publisher.events[0]
	assert.Equal(t, entities.EventMessageSuppressed, event.Type)
	assert.Equal(t, int64(42), event.UserID)
	assert.Equal(t, []int64{2, 3}, event.ChannelIDs)
	assert.False(t, event.OccurredAt.IsZero())
}

func TestGate_DeleteFailureStillWarns(t *testing.T) {
	f := newGateFixture(requirementsOf(testGroupID, 1), nil)
	f.messenger.deleteErr = errors.New("Bad Request: message can't be deleted")

	assert.Equal(t, dto.OutcomeWarned, f.gate.Handle(context.Background(), groupMessage()))
	assert.Len(t, f.messenger.warnings, 1)
	assert.Len(t, f.expirer.scheduled, 1)
}

func TestGate_SendFailureStops(t *testing.T) {
	f := newGateFixture(requirementsOf(testGroupID, 1), nil)
	f.messenger.sendErr = errors.New("Too Many Requests: retry after 5")

	assert.Equal(t, dto.OutcomeSuppressed, f.gate.Handle(context.Background(), groupMessage()))
	assert.Len(t, f.messenger.deleted, 1)
	assert.Empty(t, f.expirer.scheduled)
}

func TestGate_RegistryFailureWarnsDegraded(t *testing.T) {
	f := newGateFixture(nil, nil)
	f.repo.listFunc = func(context.Context, int64) ([]entities.Requirement, error) {
		return nil, errors.New("connection refused")
	}

	assert.Equal(t, dto.OutcomeWarned, f.gate.Handle(context.Background(), groupMessage()))

	require.Len(t, f.messenger.warnings, 1)
	warning := f.messenger.warnings[0]
	assert.Contains(t, warning.Text, "temporarily unavailable")
	assert.Equal(t, []entities.Button{
		{Text: "✅ I've Joined - Verify", CallbackData: "checksub_-1001000000001"},
	}, warning.Buttons)

	require.Len(t, f.publisher.events, 1)
	assert.True(t, f.publisher.events[0].Degraded)
}

func TestGate_PublishFailureIgnored(t *testing.T) {
	f := newGateFixture(requirementsOf(testGroupID, 1), nil)
	f.publisher.err = errors.New("kafka: broker not available")

	assert.Equal(t, dto.OutcomeWarned, f.gate.Handle(context.Background(), groupMessage()))
}

func TestGate_MentionIsEscaped(t *testing.T) {
	f := newGateFixture(requirementsOf(testGroupID, 1), nil)
	msg := groupMessage()
	msg.SenderName = "<b>Eve</b> & co"

	f.gate.Handle(context.Background(), msg)

	require.Len(t, f.messenger.warnings, 1)
	assert.Contains(t, f.messenger.warnings[0].Text, "&lt;b&gt;Eve&lt;/b&gt; &amp; co")
}
