package event

import (
	"context"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/fliamecomm/storefront/internal/domain/shared"
	"github.com/fliamecomm/storefront/internal/infrastructure/config"
	"go.uber.org/zap"
)

// KafkaForwarder is a wildcard event handler that copies every domain event to Kafka.
// Each event goes to the topic "<prefix>.<event_type>" keyed by its aggregate ID.
type KafkaForwarder struct {
	producer   sarama.SyncProducer
	serializer *EventSerializer
	prefix     string
	logger     *zap.Logger
}

// Ensure KafkaForwarder implements EventHandler
var _ shared.EventHandler = (*KafkaForwarder)(nil)

// NewKafkaProducerConfig returns the sarama configuration used by the forwarder
func NewKafkaProducerConfig(clientID string) *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.ClientID = clientID
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Timeout = 5 * time.Second
	cfg.Net.DialTimeout = 5 * time.Second
	return cfg
}

// NewKafkaForwarder connects a synchronous producer to the configured brokers
func NewKafkaForwarder(cfg config.KafkaConfig, logger *zap.Logger) (*KafkaForwarder, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are required")
	}
	producer, err := sarama.NewSyncProducer(cfg.Brokers, NewKafkaProducerConfig(cfg.ClientID))
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	return NewKafkaForwarderWithProducer(producer, cfg.TopicPrefix, logger), nil
}

// NewKafkaForwarderWithProducer wraps an existing producer
func NewKafkaForwarderWithProducer(producer sarama.SyncProducer, prefix string, logger *zap.Logger) *KafkaForwarder {
	if logger == nil {
		logger = zap.NewNop()
	}
	serializer := NewEventSerializer()
	RegisterAllEvents(serializer)
	return &KafkaForwarder{
		producer:   producer,
		serializer: serializer,
		prefix:     prefix,
		logger:     logger,
	}
}

// Topic returns the topic an event type is written to
func (f *KafkaForwarder) Topic(eventType string) string {
	if f.prefix == "" {
		return eventType
	}
	return f.prefix + "." + eventType
}

// Handle sends the event and waits for the broker acknowledgement
func (f *KafkaForwarder) Handle(ctx context.Context, event shared.DomainEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := f.serializer.Serialize(event)
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic:     f.Topic(event.EventType()),
		Key:       sarama.StringEncoder(event.AggregateID().String()),
		Value:     sarama.ByteEncoder(data),
		Timestamp: event.OccurredAt(),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_id"), Value: []byte(event.EventID().String())},
			{Key: []byte("event_type"), Value: []byte(event.EventType())},
		},
	}

	partition, offset, err := f.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to send %s to kafka: %w", event.EventType(), err)
	}

	f.logger.Debug("Event forwarded to kafka",
		zap.String("topic", msg.Topic),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset),
	)
	return nil
}

// EventTypes returns nil so the forwarder receives every event
func (f *KafkaForwarder) EventTypes() []string {
	return nil
}

// Close shuts the producer down
func (f *KafkaForwarder) Close() error {
	return f.producer.Close()
}
