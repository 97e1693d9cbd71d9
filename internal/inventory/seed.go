package inventory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

type sampleSweet struct {
	name     string
	category string
	price    int64
	quantity int
}

var sampleSweets = []sampleSweet{
	{"Kaju Katli", "Nut-Based", 50, 20},
	{"Gajar Halwa", "Vegetable-Based", 30, 15},
	{"Gulab Jamun", "Milk-Based", 10, 50},
	{"Chocolate Cake", "Pastry", 100, 8},
	{"Rasgulla", "Milk-Based", 8, 30},
	{"Almond Barfi", "Nut-Based", 60, 12},
	{"Jalebi", "Syrup-Based", 15, 25},
}

// SeedSampleData fills an empty store with the shop's starter catalogue.
// It returns the number of sweets added; a non-empty store is left alone.
func SeedSampleData(ctx context.Context, store *Store) (int, error) {
	existing, err := store.All(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	for i, sample := range sampleSweets {
		if _, err := store.Add(ctx, sample.name, sample.category, decimal.NewFromInt(sample.price), sample.quantity); err != nil {
			return i, fmt.Errorf("failed to seed %s: %w", sample.name, err)
		}
	}
	return len(sampleSweets), nil
}
