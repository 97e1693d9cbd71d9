package handlers

import (
	"context"
	"strconv"
	"strings"

	"sweet-shop/internal/domain"
	"sweet-shop/internal/inventory"

	"github.com/shopspring/decimal"
)

// Search modes accepted by the search endpoints
const (
	SearchByName       = "name"
	SearchByCategory   = "category"
	SearchByPriceRange = "price_range"
)

const priceRangeHint = "invalid price range format. Use 'min-max' (e.g., '10-50')"

// parsePrice converts a form value into a price. Range checks stay in the
// domain.
func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, domain.NewValidationError("price", "price must be a number")
	}
	return price, nil
}

func parseQuantity(raw string) (int, error) {
	quantity, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, domain.NewValidationError("quantity", "quantity must be a whole number")
	}
	return quantity, nil
}

// parsePriceRange splits "<min>-<max>" into its two bounds
func parsePriceRange(query string) (decimal.Decimal, decimal.Decimal, error) {
	parts := strings.Split(query, "-")
	if len(parts) != 2 {
		return decimal.Zero, decimal.Zero, domain.NewValidationError("query", priceRangeHint)
	}

	min, err := decimal.NewFromString(strings.TrimSpace(parts[0]))
	if err != nil {
		return decimal.Zero, decimal.Zero, domain.NewValidationError("query", priceRangeHint)
	}
	max, err := decimal.NewFromString(strings.TrimSpace(parts[1]))
	if err != nil {
		return decimal.Zero, decimal.Zero, domain.NewValidationError("query", priceRangeHint)
	}
	return min, max, nil
}

// searchSweets dispatches a search request. An empty query matches nothing.
func searchSweets(ctx context.Context, store *inventory.Store, searchType, query string) ([]domain.Sweet, error) {
	query = strings.TrimSpace(query)
	if searchType == "" {
		searchType = SearchByName
	}

	switch searchType {
	case SearchByName:
		return store.SearchByName(ctx, query)
	case SearchByCategory:
		return store.SearchByCategory(ctx, query)
	case SearchByPriceRange:
		if query == "" {
			return []domain.Sweet{}, nil
		}
		min, max, err := parsePriceRange(query)
		if err != nil {
			return nil, err
		}
		return store.SearchByPriceRange(ctx, min, max)
	default:
		return nil, domain.NewValidationError("type", "search type must be one of name, category, price_range")
	}
}
