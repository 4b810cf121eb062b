package orderbook

import (
	"testing"

	orderbookv1 "github.com/muhammadchandra19/exchange-matching/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/exchange-matching/pkg/logger"
	"github.com/shopspring/decimal"
)

func setupBenchmarkOrderBook(b *testing.B) *OrderBook {
	b.Helper()
	return NewOrderBook(testProduct, int64(b.N)*2+1024, logger.NewNop())
}

func benchmarkOrder(id int64, side orderbookv1.Side, price int64) *orderbookv1.Order {
	return &orderbookv1.Order{
		ID:          id,
		ProductID:   testProduct.ID,
		UserID:      id,
		Price:       decimal.NewFromInt(price),
		Size:        decimal.NewFromInt(1),
		Type:        orderbookv1.OrderTypeLimit,
		Side:        side,
		TimeInForce: orderbookv1.GoodTillCanceled,
		Status:      orderbookv1.OrderStatusNew,
	}
}

func BenchmarkOrderBook_Process(b *testing.B) {
	benchmarkCases := []struct {
		name  string
		order func(id int64) *orderbookv1.Order
	}{
		{
			name: "resting orders",
			order: func(id int64) *orderbookv1.Order {
				return benchmarkOrder(id, orderbookv1.SideBuy, 100+id%50)
			},
		},
		{
			name: "crossing orders",
			order: func(id int64) *orderbookv1.Order {
				side := orderbookv1.SideBuy
				if id%2 == 0 {
					side = orderbookv1.SideSell
				}
				return benchmarkOrder(id, side, 100)
			},
		},
	}

	for _, bc := range benchmarkCases {
		b.Run(bc.name, func(b *testing.B) {
			ob := setupBenchmarkOrderBook(b)
			orders := make([]*orderbookv1.Order, b.N)
			for i := range orders {
				orders[i] = bc.order(int64(i + 1))
			}

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := ob.Process(orders[i]); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkOrderBook_Snapshot(b *testing.B) {
	ob := NewOrderBook(testProduct, 20000, logger.NewNop())
	for id := int64(1); id <= 10000; id++ {
		if _, err := ob.Process(benchmarkOrder(id, orderbookv1.SideBuy, 100+id%50)); err != nil {
			b.Fatal(err)
		}
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ob.Snapshot()
	}
}
