package events

import (
	"context"
	"encoding/json"
	"fmt"

	"sweet-shop/internal/database"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// MovementRecorder stores ledger entries; *database.SingleWriterDB implements it
type MovementRecorder interface {
	RecordMovement(ctx context.Context, m *database.Movement) error
}

// EventProcessor turns stock events into ledger movements
type EventProcessor struct {
	ledger MovementRecorder
	logger *zap.Logger
}

// NewEventProcessor creates a new event processor
func NewEventProcessor(ledger MovementRecorder, logger *zap.Logger) *EventProcessor {
	return &EventProcessor{
		ledger: ledger,
		logger: logger,
	}
}

// ProcessEvent processes a single event
func (p *EventProcessor) ProcessEvent(ctx context.Context, eventType string, eventData []byte) error {
	switch eventType {
	case EventTypeSweetAdded:
		return p.processSweetAdded(eventData)
	case EventTypeSweetDeleted:
		return p.processSweetDeleted(eventData)
	case EventTypeSweetPurchased:
		return p.processSweetPurchased(ctx, eventData)
	case EventTypeSweetRestocked:
		return p.processSweetRestocked(ctx, eventData)
	default:
		return fmt.Errorf("unknown event type: %s", eventType)
	}
}

func (p *EventProcessor) processSweetAdded(eventData []byte) error {
	var event SweetAddedEvent
	if err := json.Unmarshal(eventData, &event); err != nil {
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	p.logger.Info("Sweet added",
		zap.String("sweet_id", event.SweetID),
		zap.String("name", event.Name),
		zap.Int("quantity", event.Quantity),
	)
	return nil
}

func (p *EventProcessor) processSweetDeleted(eventData []byte) error {
	var event SweetDeletedEvent
	if err := json.Unmarshal(eventData, &event); err != nil {
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	p.logger.Info("Sweet deleted", zap.String("sweet_id", event.SweetID))
	return nil
}

func (p *EventProcessor) processSweetPurchased(ctx context.Context, eventData []byte) error {
	var event SweetPurchasedEvent
	if err := json.Unmarshal(eventData, &event); err != nil {
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	movement := &database.Movement{
		ID:            event.EventID,
		SweetID:       event.SweetID,
		SweetName:     event.Name,
		Kind:          database.MovementPurchase,
		Quantity:      event.Quantity,
		UnitPrice:     event.UnitPrice,
		TotalCost:     event.TotalCost,
		PreviousStock: event.RemainingStock + event.Quantity,
		NewStock:      event.RemainingStock,
		OccurredAt:    event.OccurredAt,
	}
	if err := p.ledger.RecordMovement(ctx, movement); err != nil {
		return fmt.Errorf("failed to record purchase: %w", err)
	}

	p.logger.Info("Purchase recorded",
		zap.String("sweet_id", event.SweetID),
		zap.Int("quantity", event.Quantity),
		zap.Int("remaining", event.RemainingStock),
	)
	return nil
}

func (p *EventProcessor) processSweetRestocked(ctx context.Context, eventData []byte) error {
	var event SweetRestockedEvent
	if err := json.Unmarshal(eventData, &event); err != nil {
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	movement := &database.Movement{
		ID:            event.EventID,
		SweetID:       event.SweetID,
		SweetName:     event.Name,
		Kind:          database.MovementRestock,
		Quantity:      event.QuantityAdded,
		UnitPrice:     event.Price,
		TotalCost:     event.Price.Mul(decimal.NewFromInt(int64(event.QuantityAdded))),
		PreviousStock: event.PreviousStock,
		NewStock:      event.NewStock,
		OccurredAt:    event.OccurredAt,
	}
	if err := p.ledger.RecordMovement(ctx, movement); err != nil {
		return fmt.Errorf("failed to record restock: %w", err)
	}

	p.logger.Info("Restock recorded",
		zap.String("sweet_id", event.SweetID),
		zap.Int("quantity", event.QuantityAdded),
		zap.Int("new_stock", event.NewStock),
	)
	return nil
}
