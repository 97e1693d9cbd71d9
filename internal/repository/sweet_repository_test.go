package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"sweet-shop/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSweet(t *testing.T, id, name string, price string, quantity int) *domain.Sweet {
	t.Helper()
	sweet, err := domain.NewSweet(id, name, "Milk-Based", decimal.RequireFromString(price), quantity)
	require.NoError(t, err)
	return sweet
}

func newSQLiteRepository(t *testing.T) *SQLiteSweetRepository {
	t.Helper()
	repo, err := NewSQLiteSweetRepository(filepath.Join(t.TempDir(), "sweets.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

// runRepositoryContract exercises behaviour both implementations must share
func runRepositoryContract(t *testing.T, newRepo func(t *testing.T) SweetRepository) {
	ctx := context.Background()

	t.Run("FindAll keeps insertion order", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Save(ctx, newSweet(t, "c", "Rasgulla", "8", 30)))
		require.NoError(t, repo.Save(ctx, newSweet(t, "a", "Gulab Jamun", "10", 50)))
		require.NoError(t, repo.Save(ctx, newSweet(t, "b", "Kalakand", "25", 5)))

		sweets, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, sweets, 3)
		assert.Equal(t, "c", sweets[0].ID)
		assert.Equal(t, "a", sweets[1].ID)
		assert.Equal(t, "b", sweets[2].ID)
	})

	t.Run("Save updates in place", func(t *testing.T) {
		repo := newRepo(t)
		first := newSweet(t, "a", "Gulab Jamun", "10", 50)
		require.NoError(t, repo.Save(ctx, first))
		require.NoError(t, repo.Save(ctx, newSweet(t, "b", "Kalakand", "25", 5)))

		first.Quantity = 45
		require.NoError(t, repo.Save(ctx, first))

		sweets, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, sweets, 2)
		assert.Equal(t, "a", sweets[0].ID)
		assert.Equal(t, 45, sweets[0].Quantity)
	})

	t.Run("FindByID round trips fields", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Save(ctx, newSweet(t, "a", "Almond Barfi", "60.25", 12)))

		sweet, err := repo.FindByID(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, "Almond Barfi", sweet.Name)
		assert.Equal(t, "Milk-Based", sweet.Category)
		assert.True(t, decimal.RequireFromString("60.25").Equal(sweet.Price))
		assert.Equal(t, 12, sweet.Quantity)
	})

	t.Run("FindByID missing", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.FindByID(ctx, "nope")
		assert.True(t, errors.Is(err, domain.ErrSweetNotFound))
	})

	t.Run("Delete", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Save(ctx, newSweet(t, "a", "Jalebi", "15", 25)))
		require.NoError(t, repo.Save(ctx, newSweet(t, "b", "Kalakand", "25", 5)))

		require.NoError(t, repo.Delete(ctx, "a"))

		_, err := repo.FindByID(ctx, "a")
		assert.True(t, errors.Is(err, domain.ErrSweetNotFound))
		sweets, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, sweets, 1)
		assert.Equal(t, "b", sweets[0].ID)

		err = repo.Delete(ctx, "a")
		assert.True(t, errors.Is(err, domain.ErrSweetNotFound))
	})
}

func TestInMemorySweetRepository(t *testing.T) {
	runRepositoryContract(t, func(t *testing.T) SweetRepository {
		return NewInMemorySweetRepository()
	})
}

func TestSQLiteSweetRepository(t *testing.T) {
	runRepositoryContract(t, func(t *testing.T) SweetRepository {
		return newSQLiteRepository(t)
	})
}

func TestInMemorySweetRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemorySweetRepository()
	require.NoError(t, repo.Save(ctx, newSweet(t, "a", "Jalebi", "15", 25)))

	found, err := repo.FindByID(ctx, "a")
	require.NoError(t, err)
	found.Quantity = 0

	again, err := repo.FindByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 25, again.Quantity)
}

func TestSQLiteSweetRepository_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sweets.db")

	repo, err := NewSQLiteSweetRepository(path)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, newSweet(t, "a", "Chocolate Cake", "100", 8)))
	require.NoError(t, repo.Close())

	reopened, err := NewSQLiteSweetRepository(path)
	require.NoError(t, err)
	defer reopened.Close()

	sweet, err := reopened.FindByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "Chocolate Cake", sweet.Name)
	assert.Equal(t, 8, sweet.Quantity)
}
