package inventory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"sweet-shop/internal/domain"
	"sweet-shop/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Summary aggregates dashboard statistics over the whole inventory
type Summary struct {
	TotalItems      int             `json:"totalItems"`
	TotalCategories int             `json:"totalCategories"`
	Categories      []string        `json:"categories"`
	TotalValue      decimal.Decimal `json:"totalValue"`
	AveragePrice    decimal.Decimal `json:"averagePrice"`
	LowStockCount   int             `json:"lowStockCount"`
	LowStockLimit   int             `json:"lowStockLimit"`
}

// Store owns the sweet collection. Every operation runs as a critical
// section so concurrent requests observe each mutation as a whole.
type Store struct {
	mu      sync.RWMutex
	repo    repository.SweetRepository
	newID   func() string
	version atomic.Uint64
}

// NewStore creates a store over repo with UUID identifiers
func NewStore(repo repository.SweetRepository) *Store {
	return &Store{
		repo:  repo,
		newID: func() string { return uuid.New().String() },
	}
}

// Add validates the fields, assigns a fresh id and stores the sweet
func (s *Store) Add(ctx context.Context, name, category string, price decimal.Decimal, quantity int) (domain.Sweet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.unusedID(ctx)
	if err != nil {
		return domain.Sweet{}, err
	}

	sweet, err := domain.NewSweet(id, name, category, price, quantity)
	if err != nil {
		return domain.Sweet{}, err
	}

	if err := s.repo.Save(ctx, sweet); err != nil {
		return domain.Sweet{}, err
	}
	s.version.Add(1)
	return *sweet, nil
}

// Version counts successful mutations. Data read after Version returned v
// reflects at least version v.
func (s *Store) Version() uint64 {
	return s.version.Load()
}

// unusedID draws ids until one is free. Caller holds the write lock.
func (s *Store) unusedID(ctx context.Context) (string, error) {
	for {
		id := s.newID()
		_, err := s.repo.FindByID(ctx, id)
		if domain.IsNotFound(err) {
			return id, nil
		}
		if err != nil {
			return "", err
		}
	}
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.version.Add(1)
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (domain.Sweet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sweet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Sweet{}, err
	}
	return *sweet, nil
}

// All returns a snapshot of every sweet in insertion order
func (s *Store) All(ctx context.Context) ([]domain.Sweet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.repo.FindAll(ctx)
}

// SearchByName matches a case-insensitive substring of the name.
// A blank term matches nothing.
func (s *Store) SearchByName(ctx context.Context, term string) ([]domain.Sweet, error) {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return []domain.Sweet{}, nil
	}
	return s.filter(ctx, func(sweet domain.Sweet) bool {
		return strings.Contains(strings.ToLower(sweet.Name), needle)
	})
}

// SearchByCategory matches a case-insensitive substring of the category.
// A blank term matches nothing.
func (s *Store) SearchByCategory(ctx context.Context, term string) ([]domain.Sweet, error) {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return []domain.Sweet{}, nil
	}
	return s.filter(ctx, func(sweet domain.Sweet) bool {
		return strings.Contains(strings.ToLower(sweet.Category), needle)
	})
}

// SearchByPriceRange returns sweets priced within [min, max]
func (s *Store) SearchByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]domain.Sweet, error) {
	if min.IsNegative() || max.IsNegative() {
		return nil, domain.NewValidationError("price", "price range bounds cannot be negative")
	}
	if min.GreaterThan(max) {
		return nil, domain.NewValidationError("price", "minimum price cannot be greater than maximum price")
	}
	return s.filter(ctx, func(sweet domain.Sweet) bool {
		return sweet.Price.GreaterThanOrEqual(min) && sweet.Price.LessThanOrEqual(max)
	})
}

// LowStock returns sweets whose quantity is at or below threshold
func (s *Store) LowStock(ctx context.Context, threshold int) ([]domain.Sweet, error) {
	return s.filter(ctx, func(sweet domain.Sweet) bool {
		return sweet.Quantity <= threshold
	})
}

// TotalValue sums price * quantity over the inventory
func (s *Store) TotalValue(ctx context.Context) (decimal.Decimal, error) {
	sweets, err := s.All(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return totalValue(sweets), nil
}

// Summary computes the dashboard statistics from a single snapshot
func (s *Store) Summary(ctx context.Context, threshold int) (Summary, error) {
	sweets, err := s.All(ctx)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{
		TotalItems:    len(sweets),
		Categories:    make([]string, 0),
		TotalValue:    totalValue(sweets),
		AveragePrice:  decimal.Zero,
		LowStockLimit: threshold,
	}

	seen := make(map[string]struct{})
	priceSum := decimal.Zero
	for _, sweet := range sweets {
		if _, ok := seen[sweet.Category]; !ok {
			seen[sweet.Category] = struct{}{}
			summary.Categories = append(summary.Categories, sweet.Category)
		}
		if sweet.Quantity <= threshold {
			summary.LowStockCount++
		}
		priceSum = priceSum.Add(sweet.Price)
	}
	sort.Strings(summary.Categories)
	summary.TotalCategories = len(summary.Categories)

	if len(sweets) > 0 {
		summary.AveragePrice = priceSum.Div(decimal.NewFromInt(int64(len(sweets)))).Round(2)
	}
	return summary, nil
}

// Purchase removes amount units from the sweet's stock. The amount is
// checked first, then the id, then the stock on hand.
func (s *Store) Purchase(ctx context.Context, id string, amount int) (domain.PurchaseReceipt, error) {
	if amount <= 0 {
		return domain.PurchaseReceipt{}, domain.NewValidationError("quantity", "purchase quantity must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sweet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.PurchaseReceipt{}, err
	}
	if err := sweet.Purchase(amount); err != nil {
		return domain.PurchaseReceipt{}, err
	}
	if err := s.repo.Save(ctx, sweet); err != nil {
		return domain.PurchaseReceipt{}, err
	}
	s.version.Add(1)

	return domain.PurchaseReceipt{
		Sweet:          *sweet,
		Quantity:       amount,
		UnitPrice:      sweet.Price,
		TotalCost:      sweet.Price.Mul(decimal.NewFromInt(int64(amount))),
		RemainingStock: sweet.Quantity,
	}, nil
}

// Restock adds amount units to the sweet's stock
func (s *Store) Restock(ctx context.Context, id string, amount int) (domain.RestockReceipt, error) {
	if amount <= 0 {
		return domain.RestockReceipt{}, domain.NewValidationError("quantity", "restock quantity must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sweet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.RestockReceipt{}, err
	}
	previous := sweet.Quantity
	if err := sweet.Restock(amount); err != nil {
		return domain.RestockReceipt{}, err
	}
	if err := s.repo.Save(ctx, sweet); err != nil {
		return domain.RestockReceipt{}, err
	}
	s.version.Add(1)

	return domain.RestockReceipt{
		Sweet:         *sweet,
		QuantityAdded: amount,
		PreviousStock: previous,
		NewStock:      sweet.Quantity,
	}, nil
}

func (s *Store) filter(ctx context.Context, keep func(domain.Sweet) bool) ([]domain.Sweet, error) {
	sweets, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	matches := make([]domain.Sweet, 0)
	for _, sweet := range sweets {
		if keep(sweet) {
			matches = append(matches, sweet)
		}
	}
	return matches, nil
}

func totalValue(sweets []domain.Sweet) decimal.Decimal {
	total := decimal.Zero
	for _, sweet := range sweets {
		total = total.Add(sweet.Value())
	}
	return total
}
