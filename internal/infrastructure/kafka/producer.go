// Package kafka provides the Kafka producer used for gate events
package kafka

import (
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"

	"github.com/Conte777/forcesub-bot/config"
)

// NewSyncProducer creates a sarama SyncProducer with retry and backoff.
// Returns nil without error when no brokers are configured.
func NewSyncProducer(cfg *config.KafkaConfig, logger zerolog.Logger) (sarama.SyncProducer, error) {
	if len(cfg.Brokers) == 0 {
		logger.Info().Msg("Kafka brokers not configured, gate events disabled")
		return nil, nil
	}

	producer, err := sarama.NewSyncProducer(cfg.Brokers, producerConfig())
	if err != nil {
		logger.Error().Err(err).Strs("brokers", cfg.Brokers).Msg("Failed to create Kafka SyncProducer")
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	logger.Info().
		Strs("brokers", cfg.Brokers).
		Str("topic", cfg.EventsTopic).
		Msg("Kafka SyncProducer initialized")

	return producer, nil
}

func producerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.ClientID = "forcesub-bot"
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 5
	config.Producer.Retry.Backoff = 500 * time.Millisecond
	config.Producer.Timeout = 10 * time.Second
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy
	return config
}
