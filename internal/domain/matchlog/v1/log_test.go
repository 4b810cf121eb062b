package matchlogv1

import (
	"encoding/json"
	"testing"

	orderbookv1 "github.com/muhammadchandra19/exchange-matching/internal/domain/orderbook/v1"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchLog_JSON(t *testing.T) {
	taker := &orderbookv1.BookOrder{OrderID: 2, UserID: 20, Side: orderbookv1.SideBuy, TimeInForce: orderbookv1.ImmediateOrCancel}
	maker := &orderbookv1.BookOrder{OrderID: 1, UserID: 10, Side: orderbookv1.SideSell, TimeInForce: orderbookv1.GoodTillCanceled}

	log := NewMatchLog(7, "BTC-USD", 3, taker, maker, decimal.RequireFromString("99.5"), decimal.RequireFromString("0.25"))

	buf, err := json.Marshal(log)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(buf, &fields))

	assert.Equal(t, "match", fields["type"])
	assert.Equal(t, float64(7), fields["sequence"])
	assert.Equal(t, "BTC-USD", fields["product_id"])
	assert.Equal(t, float64(3), fields["trade_seq"])
	assert.Equal(t, float64(2), fields["taker_order_id"])
	assert.Equal(t, float64(1), fields["maker_order_id"])
	assert.Equal(t, "sell", fields["side"])
	assert.Equal(t, "99.5", fields["price"])
	assert.Equal(t, "0.25", fields["size"])
	assert.Equal(t, "IOC", fields["taker_time_in_force"])
	assert.Equal(t, "GTC", fields["maker_time_in_force"])
	assert.NotZero(t, fields["time"])
}

func TestDoneLog(t *testing.T) {
	order := &orderbookv1.BookOrder{
		OrderID:     5,
		UserID:      50,
		Price:       decimal.NewFromInt(100),
		Size:        decimal.NewFromInt(4),
		Side:        orderbookv1.SideBuy,
		TimeInForce: orderbookv1.GoodTillCanceled,
	}

	log := NewDoneLog(11, "BTC-USD", order, decimal.NewFromInt(1), orderbookv1.DoneReasonCancelled)

	assert.Equal(t, int64(11), log.GetSeq())
	assert.Equal(t, LogTypeDone, log.GetType())
	assert.True(t, decimal.NewFromInt(1).Equal(log.RemainingSize))
	assert.Equal(t, orderbookv1.DoneReasonCancelled, log.Reason)

	buf, err := json.Marshal(log)
	require.NoError(t, err)
	assert.Contains(t, string(buf), `"reason":"cancelled"`)
	assert.Contains(t, string(buf), `"remaining_size":"1"`)
}

func TestOpenLog(t *testing.T) {
	taker := &orderbookv1.BookOrder{
		OrderID:     9,
		UserID:      90,
		Price:       decimal.NewFromInt(100),
		Size:        decimal.NewFromInt(5),
		Side:        orderbookv1.SideBuy,
		TimeInForce: orderbookv1.GoodTillCanceled,
	}

	log := NewOpenLog(1, "BTC-USD", taker)

	assert.Equal(t, LogTypeOpen, log.GetType())
	assert.Equal(t, int64(9), log.OrderID)
	assert.True(t, decimal.NewFromInt(5).Equal(log.RemainingSize))
}
