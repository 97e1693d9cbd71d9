package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sweet-shop/internal/config"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	publishAttempts = 3
	publishBackoff  = 100 * time.Millisecond
	sendTimeout     = 5 * time.Second
)

// KafkaEventPublisher implements EventPublisher using Kafka
type KafkaEventPublisher struct {
	producer    sarama.SyncProducer
	logger      *zap.Logger
	topicSweets string
	topicStock  string
	backoff     time.Duration
}

// NewKafkaEventPublisher creates a new Kafka event publisher
func NewKafkaEventPublisher(cfg *config.Config, logger *zap.Logger) (*KafkaEventPublisher, error) {
	producer, err := sarama.NewSyncProducer(cfg.KafkaBrokers, newProducerConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return newKafkaEventPublisher(producer, cfg, logger), nil
}

func newKafkaEventPublisher(producer sarama.SyncProducer, cfg *config.Config, logger *zap.Logger) *KafkaEventPublisher {
	return &KafkaEventPublisher{
		producer:    producer,
		logger:      logger,
		topicSweets: cfg.KafkaTopicSweets,
		topicStock:  cfg.KafkaTopicStock,
		backoff:     publishBackoff,
	}
}

func newProducerConfig(cfg *config.Config) *sarama.Config {
	config := sarama.NewConfig()
	config.ClientID = cfg.KafkaClientID
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = cfg.KafkaRetries
	config.Producer.Idempotent = true
	config.Net.MaxOpenRequests = 1

	switch cfg.KafkaAcks {
	case "0":
		config.Producer.RequiredAcks = sarama.NoResponse
	case "1":
		config.Producer.RequiredAcks = sarama.WaitForLocal
	default:
		config.Producer.RequiredAcks = sarama.WaitForAll
	}

	// the idempotent producer requires acks=all
	if config.Producer.RequiredAcks != sarama.WaitForAll {
		config.Producer.Idempotent = false
		config.Net.MaxOpenRequests = 5
	}
	return config
}

// Publish publishes an event to Kafka with retries and exponential backoff
func (p *KafkaEventPublisher) Publish(ctx context.Context, event interface{}) error {
	message, err := p.buildMessage(event)
	if err != nil {
		return err
	}
	eventType := EventTypeOf(event)

	for attempt := 0; attempt < publishAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
		done := make(chan error, 1)

		go func(attempt int) {
			partition, offset, err := p.producer.SendMessage(message)
			if err != nil {
				done <- err
				return
			}
			p.logger.Info("Event published to Kafka",
				zap.String("topic", message.Topic),
				zap.Int32("partition", partition),
				zap.Int64("offset", offset),
				zap.String("event-type", eventType),
				zap.Int("attempt", attempt+1),
			)
			done <- nil
		}(attempt)

		select {
		case err := <-done:
			cancel()
			if err == nil {
				return nil
			}
			p.logger.Warn("Failed to publish event to Kafka, retrying",
				zap.String("topic", message.Topic),
				zap.Error(err),
				zap.Int("attempt", attempt+1),
				zap.Int("max_retries", publishAttempts),
			)
		case <-sendCtx.Done():
			cancel()
			p.logger.Warn("Timeout publishing event to Kafka, retrying",
				zap.String("topic", message.Topic),
				zap.Error(sendCtx.Err()),
				zap.Int("attempt", attempt+1),
				zap.Int("max_retries", publishAttempts),
			)
		}

		// 100ms, 200ms, ...
		if attempt < publishAttempts-1 {
			delay := p.backoff * time.Duration(1<<uint(attempt))
			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled during backoff: %w", ctx.Err())
			case <-time.After(delay):
			}
		}
	}

	return fmt.Errorf("failed to publish event to Kafka after %d attempts", publishAttempts)
}

func (p *KafkaEventPublisher) buildMessage(event interface{}) (*sarama.ProducerMessage, error) {
	env, err := describe(event)
	if err != nil {
		return nil, fmt.Errorf("failed to determine topic: %w", err)
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	eventID := env.eventID
	if eventID == "" {
		eventID = uuid.New().String()
	}

	message := &sarama.ProducerMessage{
		Topic: p.topicFor(env),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event-type"), Value: []byte(env.eventType)},
			{Key: []byte("event-id"), Value: []byte(eventID)},
			{Key: []byte("timestamp"), Value: []byte(time.Now().UTC().Format(time.RFC3339))},
		},
	}
	if env.key != "" {
		message.Key = sarama.StringEncoder(env.key)
	}
	return message, nil
}

func (p *KafkaEventPublisher) topicFor(env envelope) string {
	if env.stock {
		return p.topicStock
	}
	return p.topicSweets
}

// Close closes the Kafka producer
func (p *KafkaEventPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
