package kafka

import (
	"context"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/Conte777/forcesub-bot/config"
)

// Module provides the Kafka producer for fx dependency injection
var Module = fx.Module("kafka",
	fx.Provide(NewProducer),
)

// NewProducer creates the producer and closes it on shutdown
func NewProducer(lc fx.Lifecycle, cfg *config.KafkaConfig, logger zerolog.Logger) (sarama.SyncProducer, error) {
	log := logger.With().Str("component", "kafka").Logger()

	producer, err := NewSyncProducer(cfg, log)
	if err != nil || producer == nil {
		return producer, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			log.Info().Msg("Closing Kafka producer...")
			if err := producer.Close(); err != nil {
				log.Error().Err(err).Msg("Failed to close Kafka producer")
				return err
			}
			log.Info().Msg("Kafka producer closed")
			return nil
		},
	})

	return producer, nil
}
