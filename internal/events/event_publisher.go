package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	Publish(ctx context.Context, event interface{}) error
}

// Event type names, carried in the event-type header
const (
	EventTypeSweetAdded     = "SweetAdded"
	EventTypeSweetDeleted   = "SweetDeleted"
	EventTypeSweetPurchased = "SweetPurchased"
	EventTypeSweetRestocked = "SweetRestocked"
)

// Sweet catalogue events

type SweetAddedEvent struct {
	EventID    string          `json:"eventId"`
	SweetID    string          `json:"sweetId"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
	OccurredAt time.Time       `json:"occurredAt"`
}

type SweetDeletedEvent struct {
	EventID    string    `json:"eventId"`
	SweetID    string    `json:"sweetId"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Stock events

type SweetPurchasedEvent struct {
	EventID        string          `json:"eventId"`
	SweetID        string          `json:"sweetId"`
	Name           string          `json:"name"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	TotalCost      decimal.Decimal `json:"totalCost"`
	RemainingStock int             `json:"remainingStock"`
	OccurredAt     time.Time       `json:"occurredAt"`
}

type SweetRestockedEvent struct {
	EventID       string          `json:"eventId"`
	SweetID       string          `json:"sweetId"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	QuantityAdded int             `json:"quantityAdded"`
	PreviousStock int             `json:"previousStock"`
	NewStock      int             `json:"newStock"`
	OccurredAt    time.Time       `json:"occurredAt"`
}

// envelope is what every transport needs to know about an event
type envelope struct {
	eventType string
	eventID   string
	key       string
	stock     bool
}

func describe(event interface{}) (envelope, error) {
	switch e := event.(type) {
	case SweetAddedEvent:
		return envelope{EventTypeSweetAdded, e.EventID, e.SweetID, false}, nil
	case SweetDeletedEvent:
		return envelope{EventTypeSweetDeleted, e.EventID, e.SweetID, false}, nil
	case SweetPurchasedEvent:
		return envelope{EventTypeSweetPurchased, e.EventID, e.SweetID, true}, nil
	case SweetRestockedEvent:
		return envelope{EventTypeSweetRestocked, e.EventID, e.SweetID, true}, nil
	default:
		return envelope{}, fmt.Errorf("unknown event type: %T", event)
	}
}

// EventTypeOf returns the event type name, or "Unknown"
func EventTypeOf(event interface{}) string {
	env, err := describe(event)
	if err != nil {
		return "Unknown"
	}
	return env.eventType
}

// maxRetainedEvents bounds the history kept by a publisher without a processor
const maxRetainedEvents = 1000

// InMemoryEventPublisher hands each event to its processor synchronously,
// which keeps the stock ledger current without a broker. Without a
// processor it keeps the latest maxRetainedEvents events for Events.
type InMemoryEventPublisher struct {
	mu        sync.Mutex
	logger    *zap.Logger
	processor *EventProcessor
	events    []interface{}
}

func NewInMemoryEventPublisher(logger *zap.Logger, processor *EventProcessor) *InMemoryEventPublisher {
	return &InMemoryEventPublisher{
		logger:    logger,
		processor: processor,
		events:    make([]interface{}, 0),
	}
}

func (p *InMemoryEventPublisher) Publish(ctx context.Context, event interface{}) error {
	env, err := describe(event)
	if err != nil {
		return err
	}

	p.logger.Debug("Event published (in-memory)",
		zap.String("event-type", env.eventType),
		zap.String("event-id", env.eventID),
	)

	if p.processor == nil {
		p.retain(event)
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	return p.processor.ProcessEvent(ctx, env.eventType, payload)
}

func (p *InMemoryEventPublisher) retain(event interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.events) == maxRetainedEvents {
		copy(p.events, p.events[1:])
		p.events = p.events[:maxRetainedEvents-1]
	}
	p.events = append(p.events, event)
}

// Events returns a copy of the retained events, oldest first. It stays
// empty when a processor is attached.
func (p *InMemoryEventPublisher) Events() []interface{} {
	p.mu.Lock()
	defer p.mu.Unlock()

	events := make([]interface{}, len(p.events))
	copy(events, p.events)
	return events
}
