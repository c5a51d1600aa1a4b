package business

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/deps"
	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/entities"
)

// publishEvent emits an audit event; failures are logged only
func publishEvent(ctx context.Context, publisher deps.EventPublisher, logger zerolog.Logger, event *entities.GateEvent) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warn().
			Err(err).
			Str("event_type", string(event.Type)).
			Int64("group_id", event.GroupID).
			Msg("Failed to publish gate event")
	}
}

func channelIDs(reqs []entities.Requirement) []int64 {
	ids := make([]int64, len(reqs))
	for i, req := range reqs {
		ids[i] = req.ChannelID
	}
	return ids
}
