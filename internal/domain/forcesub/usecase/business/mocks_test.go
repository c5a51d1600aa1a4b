package business

import (
	"context"
	"sync"
	"time"

	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/entities"
)

type mockRepository struct {
	upsertFunc func(ctx context.Context, req *entities.Requirement) error
	removeFunc func(ctx context.Context, groupID, channelID int64) error
	listFunc   func(ctx context.Context, groupID int64) ([]entities.Requirement, error)
	clearFunc  func(ctx context.Context, groupID int64) (int64, error)
	groupsFunc func(ctx context.Context) ([]entities.GroupSummary, error)
}

func (m *mockRepository) Upsert(ctx context.Context, req *entities.Requirement) error {
	if m.upsertFunc != nil {
		return m.upsertFunc(ctx, req)
	}
	return nil
}

func (m *mockRepository) Remove(ctx context.Context, groupID, channelID int64) error {
	if m.removeFunc != nil {
		return m.removeFunc(ctx, groupID, channelID)
	}
	return nil
}

func (m *mockRepository) List(ctx context.Context, groupID int64) ([]entities.Requirement, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, groupID)
	}
	return nil, nil
}

func (m *mockRepository) Clear(ctx context.Context, groupID int64) (int64, error) {
	if m.clearFunc != nil {
		return m.clearFunc(ctx, groupID)
	}
	return 0, nil
}

func (m *mockRepository) Groups(ctx context.Context) ([]entities.GroupSummary, error) {
	if m.groupsFunc != nil {
		return m.groupsFunc(ctx)
	}
	return nil, nil
}

// mockOracle answers from a per-channel table; missing channels are unknown
type mockOracle struct {
	mu       sync.Mutex
	statuses map[int64]entities.MembershipStatus
	calls    []int64
	users    []int64
}

func newMockOracle(statuses map[int64]entities.MembershipStatus) *mockOracle {
	return &mockOracle{statuses: statuses}
}

func (m *mockOracle) Status(_ context.Context, channelID, userID int64) entities.MembershipStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, channelID)
	m.users = append(m.users, userID)

	if status, ok := m.statuses[channelID]; ok {
		return status
	}
	return entities.StatusUnknown
}

func (m *mockOracle) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

type mockRoles struct {
	exemptionFunc func(ctx context.Context, chatID, userID int64) entities.Exemption
	calls         int
}

func (m *mockRoles) Exemption(ctx context.Context, chatID, userID int64) entities.Exemption {
	m.calls++
	if m.exemptionFunc != nil {
		return m.exemptionFunc(ctx, chatID, userID)
	}
	return entities.NotExempt
}

type mockResolver struct {
	resolveFunc func(ctx context.Context, ref string) (*entities.ChannelInfo, error)
	botRoleFunc func(ctx context.Context, channelID int64) (entities.ChatRole, error)
	resolved    []string
}

func (m *mockResolver) ResolveChannel(ctx context.Context, ref string) (*entities.ChannelInfo, error) {
	m.resolved = append(m.resolved, ref)
	return m.resolveFunc(ctx, ref)
}

func (m *mockResolver) BotRole(ctx context.Context, channelID int64) (entities.ChatRole, error) {
	if m.botRoleFunc != nil {
		return m.botRoleFunc(ctx, channelID)
	}
	return entities.RoleAdministrator, nil
}

type deletedMessage struct {
	chatID    int64
	messageID int
}

type mockMessenger struct {
	mu        sync.Mutex
	sendErr   error
	deleteErr error
	nextID    int
	warnings  []*entities.Warning
	deleted   []deletedMessage
}

func (m *mockMessenger) SendWarning(_ context.Context, warning *entities.Warning) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sendErr != nil {
		return 0, m.sendErr
	}
	m.warnings = append(m.warnings, warning)
	m.nextID++
	return 1000 + m.nextID, nil
}

func (m *mockMessenger) DeleteMessage(_ context.Context, chatID int64, messageID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.deleted = append(m.deleted, deletedMessage{chatID: chatID, messageID: messageID})
	return m.deleteErr
}

type scheduledDeletion struct {
	chatID    int64
	messageID int
	delay     time.Duration
}

type mockExpirer struct {
	scheduled []scheduledDeletion
}

func (m *mockExpirer) Schedule(chatID int64, messageID int, delay time.Duration) {
	m.scheduled = append(m.scheduled, scheduledDeletion{chatID: chatID, messageID: messageID, delay: delay})
}

type mockPublisher struct {
	err    error
	events []*entities.GateEvent
}

func (m *mockPublisher) Publish(_ context.Context, event *entities.GateEvent) error {
	m.events = append(m.events, event)
	return m.err
}

func requirementsOf(groupID int64, channels ...int64) []entities.Requirement {
	reqs := make([]entities.Requirement, len(channels))
	for i, id := range channels {
		reqs[i] = entities.Requirement{
			ID:           uint(i + 1),
			GroupID:      groupID,
			ChannelID:    id,
			ChannelTitle: channelTitle(id),
			JoinLink:     "https://t.me/" + channelTitle(id),
		}
	}
	return reqs
}

func channelTitle(id int64) string {
	switch id {
	case 1:
		return "C1"
	case 2:
		return "C2"
	case 3:
		return "C3"
	default:
		return "Other"
	}
}
