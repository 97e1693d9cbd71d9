package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sweet-shop/internal/config"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

// EventHandler processes one decoded event; *events.EventProcessor implements it
type EventHandler interface {
	ProcessEvent(ctx context.Context, eventType string, eventData []byte) error
}

// Consumer feeds sweet shop events from Kafka into an EventHandler
type Consumer struct {
	consumerGroup sarama.ConsumerGroup
	handler       *consumerGroupHandler
	logger        *zap.Logger
	groupID       string
	topics        []string
}

// NewConsumer creates a new Kafka consumer
func NewConsumer(cfg *config.Config, processor EventHandler, logger *zap.Logger) (*Consumer, error) {
	logger.Info("Creating Kafka consumer",
		zap.Strings("brokers", cfg.KafkaBrokers),
		zap.String("group_id", cfg.KafkaGroupID),
	)

	saramaConfig := sarama.NewConfig()
	saramaConfig.ClientID = cfg.KafkaClientID
	saramaConfig.Consumer.Group.Rebalance.Strategy = sarama.NewBalanceStrategyRoundRobin()
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Version = sarama.V2_8_0_0
	saramaConfig.Net.DialTimeout = 10 * time.Second
	saramaConfig.Net.ReadTimeout = 10 * time.Second
	saramaConfig.Net.WriteTimeout = 10 * time.Second
	saramaConfig.Metadata.Retry.Max = 3
	saramaConfig.Metadata.Retry.Backoff = 250 * time.Millisecond

	consumerGroup, err := sarama.NewConsumerGroup(cfg.KafkaBrokers, cfg.KafkaGroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &Consumer{
		consumerGroup: consumerGroup,
		handler:       newConsumerGroupHandler(processor, cfg.MaxRetries, time.Duration(cfg.RetryDelayMs)*time.Millisecond, logger),
		logger:        logger,
		groupID:       cfg.KafkaGroupID,
		topics:        []string{cfg.KafkaTopicSweets, cfg.KafkaTopicStock},
	}, nil
}

// Start consumes until ctx is cancelled or the group is closed
func (c *Consumer) Start(ctx context.Context) error {
	go func() {
		for err := range c.consumerGroup.Errors() {
			c.logger.Error("Consumer error", zap.Error(err))
		}
	}()

	c.logger.Info("Kafka consumer started",
		zap.Strings("topics", c.topics),
		zap.String("group_id", c.groupID),
	)

	// Consume returns on every rebalance, so it runs in a loop
	for {
		if err := c.consumerGroup.Consume(ctx, c.topics, c.handler); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return nil
			}
			return fmt.Errorf("consumer group failed: %w", err)
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

// Close closes the consumer
func (c *Consumer) Close() error {
	return c.consumerGroup.Close()
}

// consumerGroupHandler handles Kafka consumer group messages
type consumerGroupHandler struct {
	processor  EventHandler
	logger     *zap.Logger
	maxRetries int
	retryDelay time.Duration
}

func newConsumerGroupHandler(processor EventHandler, maxRetries int, retryDelay time.Duration, logger *zap.Logger) *consumerGroupHandler {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &consumerGroupHandler{
		processor:  processor,
		logger:     logger,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
	}
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim processes messages until the claim closes or the session ends.
// Every message is marked, including ones that failed all retries.
func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok || message == nil {
				return nil
			}

			eventType := extractEventType(message.Headers)
			if eventType == "" {
				h.logger.Warn("Message without event type, skipping",
					zap.String("topic", message.Topic),
					zap.Int("partition", int(message.Partition)),
					zap.Int64("offset", message.Offset),
				)
				session.MarkMessage(message, "")
				continue
			}

			if err := h.processWithRetry(session.Context(), eventType, message.Value); err != nil {
				h.logger.Error("Failed to process event after retries",
					zap.String("event_type", eventType),
					zap.String("topic", message.Topic),
					zap.Int64("offset", message.Offset),
					zap.Error(err),
				)
			}
			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}

// processWithRetry retries with a linearly growing delay
func (h *consumerGroupHandler) processWithRetry(ctx context.Context, eventType string, eventData []byte) error {
	var lastErr error
	for attempt := 0; attempt <= h.maxRetries; attempt++ {
		if attempt > 0 {
			delay := h.retryDelay * time.Duration(attempt)
			h.logger.Info("Retrying event processing",
				zap.String("event_type", eventType),
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay),
			)
			select {
			case <-ctx.Done():
				return fmt.Errorf("retry cancelled: %w", ctx.Err())
			case <-time.After(delay):
			}
		}

		err := h.processor.ProcessEvent(ctx, eventType, eventData)
		if err == nil {
			if attempt > 0 {
				h.logger.Info("Event processed successfully after retry",
					zap.String("event_type", eventType),
					zap.Int("attempts", attempt+1),
				)
			}
			return nil
		}

		lastErr = err
		h.logger.Warn("Event processing failed",
			zap.String("event_type", eventType),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
	}

	return fmt.Errorf("failed after %d attempts: %w", h.maxRetries+1, lastErr)
}

func extractEventType(headers []*sarama.RecordHeader) string {
	for _, header := range headers {
		if header != nil && string(header.Key) == "event-type" {
			return string(header.Value)
		}
	}
	return ""
}
