// Package workers contains background workers for the forcesub domain
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Conte777/forcesub-bot/config"
	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/deps"
	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/entities"
	"github.com/Conte777/forcesub-bot/internal/infrastructure/metrics"
)

type warningKey struct {
	chatID    int64
	messageID int
}

type pendingEntry struct {
	warning entities.PendingWarning
	timer   *time.Timer
}

// Expirer deletes warning messages once their delay elapses.
// Pending deletions live in memory only and are dropped on shutdown.
type Expirer struct {
	messenger deps.Messenger
	timeout   time.Duration
	metrics   *metrics.Metrics
	logger    zerolog.Logger

	mu      sync.Mutex
	pending map[warningKey]*pendingEntry
	stopped bool
}

// NewExpirer creates a new warning expirer
func NewExpirer(messenger deps.Messenger, cfg *config.TelegramConfig, m *metrics.Metrics, logger zerolog.Logger) *Expirer {
	return newExpirer(messenger, cfg.RequestTimeout, m, logger.With().Str("component", "expirer").Logger())
}

func newExpirer(messenger deps.Messenger, timeout time.Duration, m *metrics.Metrics, logger zerolog.Logger) *Expirer {
	return &Expirer{
		messenger: messenger,
		timeout:   timeout,
		metrics:   m,
		logger:    logger,
		pending:   make(map[warningKey]*pendingEntry),
	}
}

// Schedule deletes the message after delay. Scheduling the same message again restarts its timer.
func (e *Expirer) Schedule(chatID int64, messageID int, delay time.Duration) {
	k := warningKey{chatID: chatID, messageID: messageID}
	entry := &pendingEntry{
		warning: entities.PendingWarning{
			ChatID:    chatID,
			MessageID: messageID,
			NotBefore: time.Now().Add(delay),
		},
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopped {
		return
	}

	if prev, ok := e.pending[k]; ok {
		prev.timer.Stop()
	}

	entry.timer = time.AfterFunc(delay, func() {
		e.expire(k, entry)
	})
	e.pending[k] = entry
	e.metrics.UpdatePendingWarnings(len(e.pending))

	e.logger.Debug().
		Int64("chat_id", chatID).
		Int("message_id", messageID).
		Dur("delay", delay).
		Msg("Warning scheduled for deletion")
}

// Cancel drops a pending deletion, used when the warning was already removed
func (e *Expirer) Cancel(chatID int64, messageID int) {
	k := warningKey{chatID: chatID, messageID: messageID}

	e.mu.Lock()
	defer e.mu.Unlock()

	if entry, ok := e.pending[k]; ok {
		entry.timer.Stop()
		delete(e.pending, k)
		e.metrics.UpdatePendingWarnings(len(e.pending))
	}
}

// Pending returns the number of scheduled deletions
func (e *Expirer) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.pending)
}

// Stop cancels every pending deletion
func (e *Expirer) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopped = true
	for k, entry := range e.pending {
		entry.timer.Stop()
		delete(e.pending, k)
	}
	e.metrics.UpdatePendingWarnings(0)

	e.logger.Info().Msg("Warning expirer stopped")
	return nil
}

func (e *Expirer) expire(k warningKey, entry *pendingEntry) {
	e.mu.Lock()
	if e.stopped || e.pending[k] != entry {
		e.mu.Unlock()
		return
	}
	delete(e.pending, k)
	e.metrics.UpdatePendingWarnings(len(e.pending))
	e.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()

	err := e.messenger.DeleteMessage(ctx, k.chatID, k.messageID)
	e.metrics.RecordWarningExpired(err == nil)

	if err != nil {
		// Already deleted by a verify press or by an admin
		e.logger.Debug().
			Err(err).
			Int64("chat_id", k.chatID).
			Int("message_id", k.messageID).
			Msg("Failed to delete expired warning")
		return
	}

	e.logger.Debug().
		Int64("chat_id", k.chatID).
		Int("message_id", k.messageID).
		Msg("Expired warning deleted")
}
