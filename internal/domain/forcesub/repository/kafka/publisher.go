// Package kafka publishes gate events to Kafka
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"

	"github.com/Conte777/forcesub-bot/config"
	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/deps"
	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/entities"
	"github.com/Conte777/forcesub-bot/internal/infrastructure/metrics"
)

// Publisher sends gate events keyed by group id, so one group's events stay ordered
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// NewPublisher creates an event publisher. A nil producer yields a publisher that drops events.
func NewPublisher(producer sarama.SyncProducer, cfg *config.KafkaConfig, m *metrics.Metrics, logger zerolog.Logger) deps.EventPublisher {
	log := logger.With().Str("component", "event-publisher").Logger()

	if producer == nil {
		log.Debug().Msg("No Kafka producer, gate events are dropped")
		return noopPublisher{}
	}

	return &Publisher{
		producer: producer,
		topic:    cfg.EventsTopic,
		metrics:  m,
		logger:   log,
	}
}

// Publish implements deps.EventPublisher interface
func (p *Publisher) Publish(ctx context.Context, event *entities.GateEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		p.metrics.RecordKafkaError("marshal")
		return fmt.Errorf("failed to marshal gate event: %w", err)
	}

	key := strconv.FormatInt(event.GroupID, 10)
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(event.Type)},
		},
	}

	start := time.Now()
	partition, offset, err := p.producer.SendMessage(msg)
	latency := time.Since(start)

	if err != nil {
		p.metrics.RecordKafkaError("send")
		p.logger.Error().
			Err(err).
			Str("topic", p.topic).
			Str("key", key).
			Str("event_type", string(event.Type)).
			Dur("latency", latency).
			Msg("Failed to send gate event to Kafka")
		return fmt.Errorf("failed to send gate event: %w", err)
	}

	p.metrics.RecordKafkaMessage(latency.Seconds())

	p.logger.Debug().
		Str("topic", p.topic).
		Str("key", key).
		Str("event_type", string(event.Type)).
		Int32("partition", partition).
		Int64("offset", offset).
		Dur("latency", latency).
		Msg("Gate event sent to Kafka")

	return nil
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, *entities.GateEvent) error {
	return nil
}
