package main

import (
	"encoding/json"
	"testing"

	orderbookv1 "github.com/muhammadchandra19/exchange-matching/internal/domain/orderbook/v1"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator() *generator {
	return newGenerator(generatorConfig{
		ProductID: "BTC-USD",
		StartID:   100,
		BasePrice: decimal.RequireFromString("3945.5"),
		Spread:    decimal.RequireFromString("200"),
		BaseScale: 4,
	}, 42)
}

func TestGenerator_Next(t *testing.T) {
	gen := newTestGenerator()

	var (
		lastNewID int64
		cancels   int
	)
	for i := 0; i < 500; i++ {
		order := gen.Next()

		data, err := json.Marshal(order)
		require.NoError(t, err)
		decoded, err := orderbookv1.DecodeOrder(data)
		require.NoError(t, err)
		assert.Equal(t, order.ID, decoded.ID)

		if order.Status == orderbookv1.OrderStatusCancelling {
			cancels++
			assert.Less(t, order.ID, int64(100+i))
			continue
		}

		assert.Greater(t, order.ID, lastNewID)
		lastNewID = order.ID
		assert.Equal(t, "BTC-USD", order.ProductID)
		_, err = ulid.Parse(order.ClientOID)
		assert.NoError(t, err)

		switch {
		case order.Type == orderbookv1.OrderTypeLimit:
			assert.True(t, order.Price.IsPositive())
			assert.True(t, order.Size.IsPositive())
			assert.LessOrEqual(t, -order.Size.Exponent(), int32(4))
		case order.Side == orderbookv1.SideBuy:
			assert.True(t, order.Funds.IsPositive())
		default:
			assert.True(t, order.Size.IsPositive())
		}
	}

	assert.NotZero(t, cancels)
}

func TestGenerator_LimitPrices(t *testing.T) {
	gen := newTestGenerator()
	base := decimal.RequireFromString("3945.5")

	for i := 0; i < 200; i++ {
		assert.True(t, gen.price(orderbookv1.SideBuy).LessThanOrEqual(base))
		assert.True(t, gen.price(orderbookv1.SideSell).GreaterThanOrEqual(base))
	}
}
