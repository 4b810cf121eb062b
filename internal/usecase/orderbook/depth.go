package orderbook

import (
	"errors"
	"fmt"

	orderbookv1 "github.com/muhammadchandra19/exchange-matching/internal/domain/orderbook/v1"
	"github.com/shopspring/decimal"
	"github.com/tidwall/btree"
)

var (
	// ErrOrderNotFound is returned when a resting order expected on the book is missing.
	ErrOrderNotFound = errors.New("order not found on book")
	// ErrInsufficientSize is returned when more size is taken from a resting order than it holds.
	ErrInsufficientSize = errors.New("order size less than requested")
)

type priceOrderIDKey struct {
	price   decimal.Decimal
	orderID int64
}

func askLess(a, b priceOrderIDKey) bool {
	if c := a.price.Cmp(b.price); c != 0 {
		return c < 0
	}
	return a.orderID < b.orderID
}

func bidLess(a, b priceOrderIDKey) bool {
	if c := a.price.Cmp(b.price); c != 0 {
		return c > 0
	}
	return a.orderID < b.orderID
}

// Depth is one side of the book. orders and queue always hold the same set
// of orders; queue is ordered by match priority.
type Depth struct {
	side   orderbookv1.Side
	orders map[int64]*orderbookv1.BookOrder
	queue  *btree.BTreeG[priceOrderIDKey]
}

// NewDepth creates an empty depth. Bids are ordered by price descending, asks
// by price ascending, and equal prices by ascending order id.
func NewDepth(side orderbookv1.Side) *Depth {
	less := askLess
	if side == orderbookv1.SideBuy {
		less = bidLess
	}
	return &Depth{
		side:   side,
		orders: make(map[int64]*orderbookv1.BookOrder),
		queue:  btree.NewBTreeGOptions(less, btree.Options{NoLocks: true}),
	}
}

// Side returns the side of the book this depth holds.
func (d *Depth) Side() orderbookv1.Side {
	return d.side
}

// Add puts order on the book.
func (d *Depth) Add(order *orderbookv1.BookOrder) {
	d.orders[order.OrderID] = order
	d.queue.Set(priceOrderIDKey{price: order.Price, orderID: order.OrderID})
}

// Get returns the resting order with the given id.
func (d *Depth) Get(orderID int64) (*orderbookv1.BookOrder, bool) {
	order, ok := d.orders[orderID]
	return order, ok
}

// Best returns the order with the highest match priority.
func (d *Depth) Best() (*orderbookv1.BookOrder, bool) {
	key, ok := d.queue.Min()
	if !ok {
		return nil, false
	}
	return d.orders[key.orderID], true
}

// DecrSize takes size from a resting order and removes the order once it
// reaches zero.
func (d *Depth) DecrSize(orderID int64, size decimal.Decimal) error {
	order, ok := d.orders[orderID]
	if !ok {
		return fmt.Errorf("%w: order %d", ErrOrderNotFound, orderID)
	}
	if order.Size.LessThan(size) {
		return fmt.Errorf("%w: order %d size %s, requested %s", ErrInsufficientSize, orderID, order.Size, size)
	}

	order.Size = order.Size.Sub(size)
	if order.Size.IsZero() {
		delete(d.orders, orderID)
		d.queue.Delete(priceOrderIDKey{price: order.Price, orderID: orderID})
	}
	return nil
}

// Ascend calls iter for every resting order in match priority until iter
// returns false. iter must not modify the depth.
func (d *Depth) Ascend(iter func(order *orderbookv1.BookOrder) bool) {
	d.queue.Scan(func(key priceOrderIDKey) bool {
		return iter(d.orders[key.orderID])
	})
}

// Orders returns copies of every resting order in match priority.
func (d *Depth) Orders() []orderbookv1.BookOrder {
	orders := make([]orderbookv1.BookOrder, 0, len(d.orders))
	d.Ascend(func(order *orderbookv1.BookOrder) bool {
		orders = append(orders, *order)
		return true
	})
	return orders
}

// Len returns the number of resting orders.
func (d *Depth) Len() int {
	return len(d.orders)
}
