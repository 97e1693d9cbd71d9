package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSweet(t *testing.T) {
	sweet, err := NewSweet("id-1", "  Kaju Katli ", " Nut-Based", decimal.NewFromInt(50), 20)

	require.NoError(t, err)
	assert.Equal(t, "id-1", sweet.ID)
	assert.Equal(t, "Kaju Katli", sweet.Name)
	assert.Equal(t, "Nut-Based", sweet.Category)
	assert.True(t, decimal.NewFromInt(50).Equal(sweet.Price))
	assert.Equal(t, 20, sweet.Quantity)
	assert.False(t, sweet.CreatedAt.IsZero())
	assert.Equal(t, sweet.CreatedAt, sweet.UpdatedAt)
}

func TestNewSweet_ZeroQuantityAllowed(t *testing.T) {
	sweet, err := NewSweet("id-1", "Jalebi", "Syrup-Based", decimal.RequireFromString("0.01"), 0)

	require.NoError(t, err)
	assert.Equal(t, 0, sweet.Quantity)
}

func TestNewSweet_ValidationErrors(t *testing.T) {
	testCases := []struct {
		name     string
		sweet    string
		category string
		price    decimal.Decimal
		quantity int
		field    string
	}{
		{"empty name", "", "Candy", decimal.NewFromInt(1), 1, "name"},
		{"blank name", "   ", "Candy", decimal.NewFromInt(1), 1, "name"},
		{"empty category", "Toffee", "", decimal.NewFromInt(1), 1, "category"},
		{"zero price", "Toffee", "Candy", decimal.Zero, 1, "price"},
		{"negative price", "Toffee", "Candy", decimal.NewFromInt(-3), 1, "price"},
		{"negative quantity", "Toffee", "Candy", decimal.NewFromInt(1), -1, "quantity"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sweet, err := NewSweet("id", tc.sweet, tc.category, tc.price, tc.quantity)

			assert.Nil(t, sweet)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tc.field, validationErr.Field)
		})
	}
}

func TestPurchase_Success(t *testing.T) {
	sweet, _ := NewSweet("id", "Gulab Jamun", "Dessert", decimal.NewFromInt(10), 20)

	err := sweet.Purchase(5)

	assert.NoError(t, err)
	assert.Equal(t, 15, sweet.Quantity)
}

func TestPurchase_EntireStock(t *testing.T) {
	sweet, _ := NewSweet("id", "Gulab Jamun", "Dessert", decimal.NewFromInt(10), 4)

	err := sweet.Purchase(4)

	assert.NoError(t, err)
	assert.Equal(t, 0, sweet.Quantity)
}

func TestPurchase_Error_InsufficientStock(t *testing.T) {
	sweet, _ := NewSweet("id", "Gulab Jamun", "Dessert", decimal.NewFromInt(10), 3)
	originalUpdatedAt := sweet.UpdatedAt

	err := sweet.Purchase(4)

	assert.True(t, errors.Is(err, ErrInsufficientStock))
	var stockErr *InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 3, stockErr.Available)
	assert.Equal(t, 4, stockErr.Requested)
	assert.Equal(t, 3, sweet.Quantity)
	assert.Equal(t, originalUpdatedAt, sweet.UpdatedAt)
}

func TestPurchase_Error_NonPositiveAmount(t *testing.T) {
	sweet, _ := NewSweet("id", "Gulab Jamun", "Dessert", decimal.NewFromInt(10), 3)

	for _, amount := range []int{0, -1} {
		err := sweet.Purchase(amount)
		assert.True(t, errors.Is(err, ErrValidation))
		assert.Equal(t, 3, sweet.Quantity)
	}
}

func TestRestock(t *testing.T) {
	sweet, _ := NewSweet("id", "Rasgulla", "Milk-Based", decimal.NewFromInt(8), 30)

	assert.NoError(t, sweet.Restock(10))
	assert.Equal(t, 40, sweet.Quantity)

	err := sweet.Restock(0)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, 40, sweet.Quantity)
}

func TestRestock_RejectsOverflow(t *testing.T) {
	sweet, _ := NewSweet("id", "Rasgulla", "Milk-Based", decimal.NewFromInt(8), 20)

	err := sweet.Restock(math.MaxInt)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, 20, sweet.Quantity)

	require.NoError(t, sweet.Restock(math.MaxInt-20))
	assert.Equal(t, math.MaxInt, sweet.Quantity)
}

func TestValue(t *testing.T) {
	sweet, _ := NewSweet("id", "Barfi", "Nut-Based", decimal.RequireFromString("12.50"), 4)

	assert.Equal(t, "50", sweet.Value().String())
}

func TestNotFoundError(t *testing.T) {
	err := error(&NotFoundError{ID: "missing"})

	assert.True(t, errors.Is(err, ErrSweetNotFound))
	assert.False(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "sweet with ID 'missing' not found", err.Error())
}
