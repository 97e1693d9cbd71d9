package domain

import (
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Sweet is the only entity of the shop inventory.
type Sweet struct {
	ID        string
	Name      string
	Category  string
	Price     decimal.Decimal
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewSweet validates the fields and builds a sweet with the given id.
// Name and category are trimmed before validation.
func NewSweet(id, name, category string, price decimal.Decimal, quantity int) (*Sweet, error) {
	name = strings.TrimSpace(name)
	category = strings.TrimSpace(category)

	if name == "" {
		return nil, NewValidationError("name", "sweet name cannot be empty")
	}
	if category == "" {
		return nil, NewValidationError("category", "sweet category cannot be empty")
	}
	if !price.IsPositive() {
		return nil, NewValidationError("price", "sweet price must be positive")
	}
	if quantity < 0 {
		return nil, NewValidationError("quantity", "sweet quantity cannot be negative")
	}

	now := time.Now().UTC()
	return &Sweet{
		ID:        id,
		Name:      name,
		Category:  category,
		Price:     price,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Purchase removes amount units from stock. Stock is never clamped: a
// purchase larger than the quantity on hand fails and leaves it untouched.
func (s *Sweet) Purchase(amount int) error {
	if amount <= 0 {
		return NewValidationError("quantity", "purchase quantity must be positive")
	}
	if amount > s.Quantity {
		return &InsufficientStockError{Available: s.Quantity, Requested: amount}
	}
	s.Quantity -= amount
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// Restock adds amount units to stock.
func (s *Sweet) Restock(amount int) error {
	if amount <= 0 {
		return NewValidationError("quantity", "restock quantity must be positive")
	}
	if amount > math.MaxInt-s.Quantity {
		return NewValidationError("quantity", "restock quantity exceeds the maximum stock")
	}
	s.Quantity += amount
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// Value returns price * quantity.
func (s Sweet) Value() decimal.Decimal {
	return s.Price.Mul(decimal.NewFromInt(int64(s.Quantity)))
}

// PurchaseReceipt describes a completed purchase.
type PurchaseReceipt struct {
	Sweet          Sweet
	Quantity       int
	UnitPrice      decimal.Decimal
	TotalCost      decimal.Decimal
	RemainingStock int
}

// RestockReceipt describes a completed restock.
type RestockReceipt struct {
	Sweet         Sweet
	QuantityAdded int
	PreviousStock int
	NewStock      int
}
