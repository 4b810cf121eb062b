package orderbookv1

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProduct_SizeForFunds(t *testing.T) {
	product := Product{ID: "BTC-USD", BaseScale: 2, QuoteScale: 2}

	testCases := []struct {
		name     string
		funds    string
		price    string
		expected string
	}{
		{name: "truncates toward zero", funds: "20.00", price: "7", expected: "2.85"},
		{name: "exact division", funds: "100", price: "4", expected: "25"},
		{name: "less than one unit", funds: "0.05", price: "10", expected: "0"},
		{name: "zero funds", funds: "0", price: "10", expected: "0"},
		{name: "zero price", funds: "10", price: "0", expected: "0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			funds := decimal.RequireFromString(tc.funds)
			price := decimal.RequireFromString(tc.price)

			size := product.SizeForFunds(funds, price)

			assert.True(t, decimal.RequireFromString(tc.expected).Equal(size), "got %s", size)
			assert.True(t, size.Mul(price).LessThanOrEqual(funds))
		})
	}
}
