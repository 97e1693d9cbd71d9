package inventory

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"

	"sweet-shop/internal/domain"
	"sweet-shop/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() *Store {
	return NewStore(repository.NewInMemorySweetRepository())
}

func price(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func mustAdd(t *testing.T, store *Store, name, category, p string, quantity int) domain.Sweet {
	t.Helper()
	sweet, err := store.Add(context.Background(), name, category, price(p), quantity)
	require.NoError(t, err)
	return sweet
}

func TestStore_AddThenGet(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	added, err := store.Add(ctx, "Kaju Katli", "Nut-Based", price("50.00"), 20)
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)

	got, err := store.Get(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, added.ID, got.ID)
	assert.Equal(t, "Kaju Katli", got.Name)
	assert.Equal(t, "Nut-Based", got.Category)
	assert.True(t, price("50").Equal(got.Price))
	assert.Equal(t, 20, got.Quantity)
}

func TestStore_AddAssignsUniqueIDs(t *testing.T) {
	store := newTestStore()
	seen := make(map[string]bool)

	for i := 0; i < 50; i++ {
		sweet := mustAdd(t, store, fmt.Sprintf("Sweet %d", i), "Candy", "1", i)
		assert.False(t, seen[sweet.ID], "duplicate id %s", sweet.ID)
		seen[sweet.ID] = true
	}
}

func TestStore_AddSkipsTakenIDs(t *testing.T) {
	store := newTestStore()
	ids := []string{"a", "a", "b"}
	store.newID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}

	first := mustAdd(t, store, "Jalebi", "Syrup-Based", "15", 25)
	second := mustAdd(t, store, "Rasgulla", "Milk-Based", "8", 30)

	assert.Equal(t, "a", first.ID)
	assert.Equal(t, "b", second.ID)
}

func TestStore_AddRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	mustAdd(t, store, "Jalebi", "Syrup-Based", "15", 25)

	testCases := []struct {
		name     string
		price    string
		quantity int
	}{
		{"zero price", "0", 1},
		{"negative price", "-0.01", 1},
		{"very negative price", "-100", 1},
		{"negative quantity", "5", -1},
		{"very negative quantity", "5", -1000},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := store.Add(ctx, "Barfi", "Milk-Based", price(tc.price), tc.quantity)
			assert.True(t, errors.Is(err, domain.ErrValidation))

			all, err := store.All(ctx)
			require.NoError(t, err)
			assert.Len(t, all, 1)
		})
	}
}

func TestStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	added := mustAdd(t, store, "Jalebi", "Syrup-Based", "15", 25)

	all, err := store.All(ctx)
	require.NoError(t, err)
	all[0].Quantity = 0

	got, err := store.Get(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, got.Quantity)
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	added := mustAdd(t, store, "Jalebi", "Syrup-Based", "15", 25)

	require.NoError(t, store.Delete(ctx, added.ID))

	_, err := store.Get(ctx, added.ID)
	assert.True(t, errors.Is(err, domain.ErrSweetNotFound))

	err = store.Delete(ctx, added.ID)
	assert.True(t, errors.Is(err, domain.ErrSweetNotFound))
}

func TestStore_SearchByName(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	mustAdd(t, store, "Gulab Jamun", "Milk-Based", "10", 50)
	mustAdd(t, store, "Kaju Katli", "Nut-Based", "50", 20)

	results, err := store.SearchByName(ctx, "JAMUN")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Gulab Jamun", results[0].Name)

	results, err = store.SearchByName(ctx, "ladoo")
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)

	results, err = store.SearchByName(ctx, "   ")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestStore_SearchByCategory(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	mustAdd(t, store, "Gulab Jamun", "Milk-Based", "10", 50)
	mustAdd(t, store, "Rasgulla", "Milk-Based", "8", 30)
	mustAdd(t, store, "Kaju Katli", "Nut-Based", "50", 20)

	results, err := store.SearchByCategory(ctx, "milk")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Gulab Jamun", results[0].Name)
	assert.Equal(t, "Rasgulla", results[1].Name)

	results, err = store.SearchByCategory(ctx, "Pastry")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestStore_SearchByPriceRange(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	mustAdd(t, store, "Rasgulla", "Milk-Based", "8", 30)
	mustAdd(t, store, "Gulab Jamun", "Milk-Based", "10", 50)
	mustAdd(t, store, "Jalebi", "Syrup-Based", "15", 25)
	mustAdd(t, store, "Kaju Katli", "Nut-Based", "50", 20)

	results, err := store.SearchByPriceRange(ctx, price("10"), price("15"))
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Gulab Jamun", results[0].Name)
	assert.Equal(t, "Jalebi", results[1].Name)

	results, err = store.SearchByPriceRange(ctx, price("10"), price("10"))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Gulab Jamun", results[0].Name)

	_, err = store.SearchByPriceRange(ctx, price("20"), price("10"))
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = store.SearchByPriceRange(ctx, price("-1"), price("10"))
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestStore_TotalValue(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	total, err := store.TotalValue(ctx)
	require.NoError(t, err)
	assert.True(t, total.IsZero())

	mustAdd(t, store, "Gulab Jamun", "Milk-Based", "10", 2)
	mustAdd(t, store, "Jalebi", "Syrup-Based", "5", 4)

	total, err = store.TotalValue(ctx)
	require.NoError(t, err)
	assert.True(t, price("40").Equal(total), "got %s", total)
}

func TestStore_LowStock(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	empty := mustAdd(t, store, "A", "Candy", "1", 0)
	atLimit := mustAdd(t, store, "B", "Candy", "1", 5)
	mustAdd(t, store, "C", "Candy", "1", 6)
	mustAdd(t, store, "D", "Candy", "1", 10)

	results, err := store.LowStock(ctx, 5)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, empty.ID, results[0].ID)
	assert.Equal(t, atLimit.ID, results[1].ID)
}

func TestStore_Purchase(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	sweet := mustAdd(t, store, "Kaju Katli", "Nut-Based", "50", 20)

	receipt, err := store.Purchase(ctx, sweet.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, receipt.Quantity)
	assert.Equal(t, 17, receipt.RemainingStock)
	assert.Equal(t, 17, receipt.Sweet.Quantity)
	assert.True(t, price("50").Equal(receipt.UnitPrice))
	assert.True(t, price("150").Equal(receipt.TotalCost))
}

func TestStore_PurchaseInsufficientStock(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	sweet := mustAdd(t, store, "Kaju Katli", "Nut-Based", "50", 2)

	_, err := store.Purchase(ctx, sweet.ID, 3)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	got, err := store.Get(ctx, sweet.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Quantity)
}

func TestStore_PurchaseCheckOrder(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	// amount is validated before the id is looked up
	_, err := store.Purchase(ctx, "missing", 0)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = store.Purchase(ctx, "missing", 1)
	assert.True(t, errors.Is(err, domain.ErrSweetNotFound))
}

func TestStore_Restock(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	sweet := mustAdd(t, store, "Rasgulla", "Milk-Based", "8", 30)

	receipt, err := store.Restock(ctx, sweet.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, receipt.QuantityAdded)
	assert.Equal(t, 30, receipt.PreviousStock)
	assert.Equal(t, 40, receipt.NewStock)

	_, err = store.Restock(ctx, sweet.ID, -1)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = store.Restock(ctx, "missing", 1)
	assert.True(t, errors.Is(err, domain.ErrSweetNotFound))
}

func TestStore_RestockOverflowLeavesStockUnchanged(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	sweet := mustAdd(t, store, "Jalebi", "Syrup-Based", "15", 20)

	_, err := store.Restock(ctx, sweet.ID, math.MaxInt)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	stored, err := store.Get(ctx, sweet.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, stored.Quantity)

	total, err := store.TotalValue(ctx)
	require.NoError(t, err)
	assert.True(t, price("300").Equal(total))
}

func TestStore_PurchaseRestockRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	sweet := mustAdd(t, store, "Jalebi", "Syrup-Based", "15", 25)

	for _, amount := range []int{1, 7, 25} {
		_, err := store.Purchase(ctx, sweet.ID, amount)
		require.NoError(t, err)
		_, err = store.Restock(ctx, sweet.ID, amount)
		require.NoError(t, err)

		got, err := store.Get(ctx, sweet.ID)
		require.NoError(t, err)
		assert.Equal(t, 25, got.Quantity)
	}
}

func TestStore_GulabJamunScenario(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	sweet, err := store.Add(ctx, "Gulab Jamun", "Dessert", price("10.00"), 20)
	require.NoError(t, err)
	assert.Equal(t, 20, sweet.Quantity)

	purchase, err := store.Purchase(ctx, sweet.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 15, purchase.RemainingStock)

	restock, err := store.Restock(ctx, sweet.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 18, restock.NewStock)

	require.NoError(t, store.Delete(ctx, sweet.ID))
	_, err = store.Get(ctx, sweet.ID)
	assert.True(t, errors.Is(err, domain.ErrSweetNotFound))
}

func TestStore_Summary(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	summary, err := store.Summary(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalItems)
	assert.Empty(t, summary.Categories)
	assert.True(t, summary.AveragePrice.IsZero())

	mustAdd(t, store, "Rasgulla", "Milk-Based", "8", 30)
	mustAdd(t, store, "Kaju Katli", "Nut-Based", "50", 3)
	mustAdd(t, store, "Gulab Jamun", "Milk-Based", "10", 5)

	summary, err = store.Summary(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalItems)
	assert.Equal(t, 2, summary.TotalCategories)
	assert.Equal(t, []string{"Milk-Based", "Nut-Based"}, summary.Categories)
	assert.True(t, price("440").Equal(summary.TotalValue), "got %s", summary.TotalValue)
	assert.True(t, price("22.67").Equal(summary.AveragePrice), "got %s", summary.AveragePrice)
	assert.Equal(t, 2, summary.LowStockCount)
	assert.Equal(t, 5, summary.LowStockLimit)
}

func TestStore_ConcurrentPurchasesNeverOversell(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	sweet := mustAdd(t, store, "Jalebi", "Syrup-Based", "15", 50)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 80; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.Purchase(ctx, sweet.ID, 1); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	got, err := store.Get(ctx, sweet.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, succeeded)
	assert.Equal(t, 0, got.Quantity)
}

func TestSeedSampleData(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	added, err := SeedSampleData(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, 7, added)

	all, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 7)
	assert.Equal(t, "Kaju Katli", all[0].Name)
	assert.Equal(t, "Jalebi", all[6].Name)

	added, err = SeedSampleData(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, 0, added)
}
