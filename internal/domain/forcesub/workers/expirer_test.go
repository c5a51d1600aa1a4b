package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/entities"
	"github.com/Conte777/forcesub-bot/internal/infrastructure/metrics"
)

type deletion struct {
	chatID      int64
	messageID   int
	at          time.Time
	hasDeadline bool
}

type mockMessenger struct {
	mu        sync.Mutex
	deleteErr error
	deleted   []deletion
}

func (m *mockMessenger) SendWarning(context.Context, *entities.Warning) (int, error) {
	return 0, errors.New("not used")
}

func (m *mockMessenger) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	_, ok := ctx.Deadline()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, deletion{chatID: chatID, messageID: messageID, at: time.Now(), hasDeadline: ok})
	return m.deleteErr
}

func (m *mockMessenger) deletions() []deletion {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]deletion(nil), m.deleted...)
}

func newTestExpirer(messenger *mockMessenger) *Expirer {
	return newExpirer(messenger, time.Second, metrics.GetDefaultMetrics(), zerolog.Nop())
}

func TestExpirer_DeletesAfterDelay(t *testing.T) {
	messenger := &mockMessenger{}
	expirer := newTestExpirer(messenger)

	start := time.Now()
	expirer.Schedule(-100, 7, 50*time.Millisecond)
	assert.Equal(t, 1, expirer.Pending())

	require.Eventually(t, func() bool {
		return len(messenger.deletions()) == 1
	}, 2*time.Second, 5*time.Millisecond)

	got := messenger.deletions()[0]
	assert.Equal(t, int64(-100), got.chatID)
	assert.Equal(t, 7, got.messageID)
	assert.GreaterOrEqual(t, got.at.Sub(start), 50*time.Millisecond)
	assert.True(t, got.hasDeadline)
	assert.Zero(t, expirer.Pending())
}

func TestExpirer_DeleteErrorSwallowed(t *testing.T) {
	messenger := &mockMessenger{deleteErr: errors.New("Bad Request: message to delete not found")}
	expirer := newTestExpirer(messenger)

	expirer.Schedule(-100, 9, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		return len(messenger.deletions()) == 1
	}, 2*time.Second, 5*time.Millisecond)
	assert.Zero(t, expirer.Pending())

	// Still usable afterwards
	expirer.Schedule(-100, 10, 10*time.Millisecond)
	require.Eventually(t, func() bool {
		return len(messenger.deletions()) == 2
	}, 2*time.Second, 5*time.Millisecond)
}

func TestExpirer_RescheduleKeepsSingleDeletion(t *testing.T) {
	messenger := &mockMessenger{}
	expirer := newTestExpirer(messenger)

	expirer.Schedule(-100, 11, 20*time.Millisecond)
	expirer.Schedule(-100, 11, 60*time.Millisecond)
	assert.Equal(t, 1, expirer.Pending())

	require.Eventually(t, func() bool {
		return len(messenger.deletions()) == 1
	}, 2*time.Second, 5*time.Millisecond)

	time.Sleep(100 * time.Millisecond)
	assert.Len(t, messenger.deletions(), 1)
}

func TestExpirer_CancelDropsDeletion(t *testing.T) {
	messenger := &mockMessenger{}
	expirer := newTestExpirer(messenger)

	expirer.Schedule(-100, 12, 30*time.Millisecond)
	expirer.Cancel(-100, 12)
	expirer.Cancel(-100, 99)

	assert.Zero(t, expirer.Pending())
	time.Sleep(80 * time.Millisecond)
	assert.Empty(t, messenger.deletions())
}

func TestExpirer_StopCancelsPending(t *testing.T) {
	messenger := &mockMessenger{}
	expirer := newTestExpirer(messenger)

	expirer.Schedule(-100, 13, 30*time.Millisecond)
	expirer.Schedule(-200, 14, 30*time.Millisecond)
	require.NoError(t, expirer.Stop())

	assert.Zero(t, expirer.Pending())

	expirer.Schedule(-100, 15, time.Millisecond)
	assert.Zero(t, expirer.Pending())

	time.Sleep(80 * time.Millisecond)
	assert.Empty(t, messenger.deletions())
}
