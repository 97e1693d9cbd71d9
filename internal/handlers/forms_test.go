package handlers

import (
	"errors"
	"testing"

	"sweet-shop/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriceRange(t *testing.T) {
	tests := []struct {
		query   string
		min     string
		max     string
		wantErr bool
	}{
		{query: "10-50", min: "10", max: "50"},
		{query: " 2.5 - 7.25 ", min: "2.5", max: "7.25"},
		{query: "50-10", min: "50", max: "10"},
		{query: "10", wantErr: true},
		{query: "10-", wantErr: true},
		{query: "a-b", wantErr: true},
		{query: "-5-10", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			min, max, err := parsePriceRange(tt.query)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrValidation))
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.min).Equal(min))
			assert.True(t, decimal.RequireFromString(tt.max).Equal(max))
		})
	}
}

func TestParsePriceAndQuantity(t *testing.T) {
	price, err := parsePrice(" 12.50 ")
	require.NoError(t, err)
	assert.Equal(t, "12.5", price.String())

	_, err = parsePrice("")
	var validationErr *domain.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "price", validationErr.Field)

	quantity, err := parseQuantity("7")
	require.NoError(t, err)
	assert.Equal(t, 7, quantity)

	_, err = parseQuantity("7.5")
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "quantity", validationErr.Field)
}
