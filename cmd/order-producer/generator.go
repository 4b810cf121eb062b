package main

import (
	"math/rand"
	"time"

	orderbookv1 "github.com/muhammadchandra19/exchange-matching/internal/domain/orderbook/v1"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// cancelEvery makes every n-th generated order a cancel of an earlier resting order.
const cancelEvery = 10

var timeInForces = []orderbookv1.TimeInForce{
	orderbookv1.GoodTillCanceled,
	orderbookv1.ImmediateOrCancel,
	orderbookv1.GoodTillCrossing,
	orderbookv1.FillOrKill,
}

type generatorConfig struct {
	ProductID string
	StartID   int64
	BasePrice decimal.Decimal
	Spread    decimal.Decimal
	BaseScale int32
}

// generator produces a stream of random orders with strictly increasing ids.
type generator struct {
	config generatorConfig
	rand   *rand.Rand
	nextID int64
	// limits holds GTC limit orders that may still rest on the book.
	limits []*orderbookv1.Order
}

func newGenerator(config generatorConfig, seed int64) *generator {
	return &generator{
		config: config,
		rand:   rand.New(rand.NewSource(seed)),
		nextID: config.StartID,
	}
}

// Next returns the next order. Roughly 70% are limit orders and 30% market
// orders, sides are split evenly, and every cancelEvery-th order cancels an
// earlier limit order when one is known.
func (g *generator) Next() *orderbookv1.Order {
	id := g.nextID
	g.nextID++

	if id%cancelEvery == 0 && len(g.limits) > 0 {
		i := g.rand.Intn(len(g.limits))
		target := *g.limits[i]
		g.limits = append(g.limits[:i], g.limits[i+1:]...)

		target.Status = orderbookv1.OrderStatusCancelling
		target.CreatedAt = time.Now().UnixMilli()
		return &target
	}

	side := orderbookv1.SideBuy
	if g.rand.Intn(2) == 0 {
		side = orderbookv1.SideSell
	}

	order := &orderbookv1.Order{
		ID:          id,
		CreatedAt:   time.Now().UnixMilli(),
		ProductID:   g.config.ProductID,
		UserID:      g.rand.Int63n(1000) + 1,
		ClientOID:   ulid.Make().String(),
		Side:        side,
		TimeInForce: orderbookv1.GoodTillCanceled,
		Status:      orderbookv1.OrderStatusNew,
	}

	size := g.size()
	if g.rand.Float64() < 0.3 {
		order.Type = orderbookv1.OrderTypeMarket
		if side == orderbookv1.SideBuy {
			order.Funds = size.Mul(g.config.BasePrice).Truncate(2)
		} else {
			order.Size = size
		}
		return order
	}

	order.Type = orderbookv1.OrderTypeLimit
	order.Size = size
	order.Price = g.price(side)
	order.TimeInForce = timeInForces[g.rand.Intn(len(timeInForces))]
	if order.TimeInForce == orderbookv1.GoodTillCanceled {
		g.limits = append(g.limits, order)
	}
	return order
}

// size returns a size between 0.01 and 10.
func (g *generator) size() decimal.Decimal {
	size := decimal.NewFromFloat(0.01 + g.rand.Float64()*9.99).Truncate(g.config.BaseScale)
	if !size.IsPositive() {
		return decimal.New(1, -g.config.BaseScale)
	}
	return size
}

// price places bids below and asks above the base price, within the spread.
func (g *generator) price(side orderbookv1.Side) decimal.Decimal {
	offset := g.config.Spread.Mul(decimal.NewFromFloat(g.rand.Float64() * 0.8))
	price := g.config.BasePrice.Add(offset)
	if side == orderbookv1.SideBuy {
		price = g.config.BasePrice.Sub(offset)
	}

	price = price.Truncate(1)
	if !price.IsPositive() {
		return g.config.BasePrice
	}
	return price
}
