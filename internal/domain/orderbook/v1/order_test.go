package orderbookv1

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeOrder(t *testing.T) {
	order := Order{
		ID:          1,
		CreatedAt:   1695783003020967000,
		ProductID:   "BTC-USD",
		UserID:      1,
		ClientOID:   "",
		Price:       decimal.RequireFromString("20.00"),
		Size:        decimal.RequireFromString("3000.00"),
		Funds:       decimal.RequireFromString("0.00"),
		Type:        OrderTypeLimit,
		Side:        SideBuy,
		TimeInForce: GoodTillCanceled,
		Status:      OrderStatusNew,
	}

	buf, err := json.Marshal(order)
	require.NoError(t, err)
	assert.Contains(t, string(buf), `"price":"20"`)
	assert.Contains(t, string(buf), `"time_in_force":"GTC"`)

	decoded, err := DecodeOrder(buf)
	require.NoError(t, err)
	assert.Equal(t, order.ID, decoded.ID)
	assert.Equal(t, order.CreatedAt, decoded.CreatedAt)
	assert.Equal(t, order.ProductID, decoded.ProductID)
	assert.Equal(t, order.UserID, decoded.UserID)
	assert.True(t, order.Price.Equal(decoded.Price))
	assert.True(t, order.Size.Equal(decoded.Size))
	assert.True(t, order.Funds.Equal(decoded.Funds))
	assert.Equal(t, order.Type, decoded.Type)
	assert.Equal(t, order.Side, decoded.Side)
	assert.Equal(t, order.TimeInForce, decoded.TimeInForce)
	assert.Equal(t, order.Status, decoded.Status)
}

func TestDecodeOrder_Invalid(t *testing.T) {
	testCases := []struct {
		name      string
		payload   string
		expectErr error
	}{
		{
			name:      "unknown type",
			payload:   `{"id":1,"price":"1","size":"1","funds":"0","type":"stop","side":"buy","time_in_force":"GTC","status":"new"}`,
			expectErr: ErrInvalidOrderType,
		},
		{
			name:      "unknown side",
			payload:   `{"id":1,"price":"1","size":"1","funds":"0","type":"limit","side":"long","time_in_force":"GTC","status":"new"}`,
			expectErr: ErrInvalidSide,
		},
		{
			name:      "unknown time in force",
			payload:   `{"id":1,"price":"1","size":"1","funds":"0","type":"limit","side":"buy","time_in_force":"DAY","status":"new"}`,
			expectErr: ErrInvalidTimeInForce,
		},
		{
			name:      "unknown status",
			payload:   `{"id":1,"price":"1","size":"1","funds":"0","type":"limit","side":"buy","time_in_force":"GTC","status":"done"}`,
			expectErr: ErrInvalidOrderStatus,
		},
		{
			name:      "missing status",
			payload:   `{"id":1,"price":"1","size":"1","funds":"0","type":"limit","side":"buy","time_in_force":"GTC"}`,
			expectErr: ErrInvalidOrderStatus,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeOrder([]byte(tc.payload))
			assert.ErrorIs(t, err, tc.expectErr)
		})
	}

	t.Run("malformed json", func(t *testing.T) {
		_, err := DecodeOrder([]byte(`{"id":`))
		assert.Error(t, err)
	})

	t.Run("malformed decimal", func(t *testing.T) {
		_, err := DecodeOrder([]byte(`{"id":1,"price":"abc","size":"1","funds":"0","type":"limit","side":"buy","time_in_force":"GTC","status":"new"}`))
		assert.Error(t, err)
	})
}

func TestSide_Opposite(t *testing.T) {
	assert.Equal(t, SideSell, SideBuy.Opposite())
	assert.Equal(t, SideBuy, SideSell.Opposite())
}

func TestBookOrder_Crosses(t *testing.T) {
	price := decimal.NewFromInt(100)

	testCases := []struct {
		name   string
		order  BookOrder
		expect bool
	}{
		{name: "buy above", order: BookOrder{Type: OrderTypeLimit, Side: SideBuy, Price: decimal.NewFromInt(101)}, expect: true},
		{name: "buy equal", order: BookOrder{Type: OrderTypeLimit, Side: SideBuy, Price: decimal.NewFromInt(100)}, expect: true},
		{name: "buy below", order: BookOrder{Type: OrderTypeLimit, Side: SideBuy, Price: decimal.NewFromInt(99)}, expect: false},
		{name: "sell below", order: BookOrder{Type: OrderTypeLimit, Side: SideSell, Price: decimal.NewFromInt(99)}, expect: true},
		{name: "sell above", order: BookOrder{Type: OrderTypeLimit, Side: SideSell, Price: decimal.NewFromInt(101)}, expect: false},
		{name: "market buy", order: BookOrder{Type: OrderTypeMarket, Side: SideBuy}, expect: true},
		{name: "market sell", order: BookOrder{Type: OrderTypeMarket, Side: SideSell}, expect: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, tc.order.Crosses(price))
		})
	}
}
