package commands

import (
	"context"
	"time"

	"sweet-shop/internal/cache"
	"sweet-shop/internal/domain"
	"sweet-shop/internal/events"
	"sweet-shop/internal/inventory"
	"sweet-shop/pkg/middleware"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler executes commands against the store. After a successful mutation
// it publishes the matching event and drops cached dashboard statistics.
// Neither step can fail the command: the store has already changed.
type Handler struct {
	store     *inventory.Store
	publisher events.EventPublisher
	cache     cache.Cache
	logger    *zap.Logger
}

func NewHandler(store *inventory.Store, publisher events.EventPublisher, c cache.Cache, logger *zap.Logger) *Handler {
	return &Handler{
		store:     store,
		publisher: publisher,
		cache:     c,
		logger:    logger,
	}
}

func (h *Handler) AddSweet(ctx context.Context, cmd AddSweetCommand) (domain.Sweet, error) {
	sweet, err := h.store.Add(ctx, cmd.Name, cmd.Category, cmd.Price, cmd.Quantity)
	if err != nil {
		return domain.Sweet{}, err
	}

	h.logger.Info("Sweet added",
		zap.String("sweet_id", sweet.ID),
		zap.String("name", sweet.Name),
		zap.String("request_id", middleware.RequestIDFromContext(ctx)),
	)
	h.afterMutation(ctx, events.SweetAddedEvent{
		EventID:    uuid.New().String(),
		SweetID:    sweet.ID,
		Name:       sweet.Name,
		Category:   sweet.Category,
		Price:      sweet.Price,
		Quantity:   sweet.Quantity,
		OccurredAt: sweet.CreatedAt,
	})
	return sweet, nil
}

// DeleteSweet removes the sweet and returns the record as it was
func (h *Handler) DeleteSweet(ctx context.Context, cmd DeleteSweetCommand) (domain.Sweet, error) {
	sweet, err := h.store.Get(ctx, cmd.ID)
	if err != nil {
		return domain.Sweet{}, err
	}
	if err := h.store.Delete(ctx, cmd.ID); err != nil {
		return domain.Sweet{}, err
	}

	h.logger.Info("Sweet deleted",
		zap.String("sweet_id", sweet.ID),
		zap.String("request_id", middleware.RequestIDFromContext(ctx)),
	)
	h.afterMutation(ctx, events.SweetDeletedEvent{
		EventID:    uuid.New().String(),
		SweetID:    sweet.ID,
		OccurredAt: time.Now().UTC(),
	})
	return sweet, nil
}

func (h *Handler) PurchaseSweet(ctx context.Context, cmd PurchaseSweetCommand) (domain.PurchaseReceipt, error) {
	receipt, err := h.store.Purchase(ctx, cmd.ID, cmd.Quantity)
	if err != nil {
		return domain.PurchaseReceipt{}, err
	}

	h.logger.Info("Sweet purchased",
		zap.String("sweet_id", receipt.Sweet.ID),
		zap.Int("quantity", receipt.Quantity),
		zap.Int("remaining", receipt.RemainingStock),
		zap.String("request_id", middleware.RequestIDFromContext(ctx)),
	)
	h.afterMutation(ctx, events.SweetPurchasedEvent{
		EventID:        uuid.New().String(),
		SweetID:        receipt.Sweet.ID,
		Name:           receipt.Sweet.Name,
		Quantity:       receipt.Quantity,
		UnitPrice:      receipt.UnitPrice,
		TotalCost:      receipt.TotalCost,
		RemainingStock: receipt.RemainingStock,
		OccurredAt:     receipt.Sweet.UpdatedAt,
	})
	return receipt, nil
}

func (h *Handler) RestockSweet(ctx context.Context, cmd RestockSweetCommand) (domain.RestockReceipt, error) {
	receipt, err := h.store.Restock(ctx, cmd.ID, cmd.Quantity)
	if err != nil {
		return domain.RestockReceipt{}, err
	}

	h.logger.Info("Sweet restocked",
		zap.String("sweet_id", receipt.Sweet.ID),
		zap.Int("quantity", receipt.QuantityAdded),
		zap.Int("new_stock", receipt.NewStock),
		zap.String("request_id", middleware.RequestIDFromContext(ctx)),
	)
	h.afterMutation(ctx, events.SweetRestockedEvent{
		EventID:       uuid.New().String(),
		SweetID:       receipt.Sweet.ID,
		Name:          receipt.Sweet.Name,
		Price:         receipt.Sweet.Price,
		QuantityAdded: receipt.QuantityAdded,
		PreviousStock: receipt.PreviousStock,
		NewStock:      receipt.NewStock,
		OccurredAt:    receipt.Sweet.UpdatedAt,
	})
	return receipt, nil
}

func (h *Handler) afterMutation(ctx context.Context, event interface{}) {
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.Error("Failed to publish event",
			zap.String("event_type", events.EventTypeOf(event)),
			zap.Error(err),
		)
	}

	if err := h.cache.DeleteByPattern(ctx, cache.StatsPattern); err != nil {
		h.logger.Warn("Failed to invalidate stats cache", zap.Error(err))
	}
}
