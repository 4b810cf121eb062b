package orderbookv1

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Order is the intake record read from the order source. It is immutable once read.
type Order struct {
	ID          int64           `json:"id"`
	CreatedAt   int64           `json:"created_at"`
	ProductID   string          `json:"product_id"`
	UserID      int64           `json:"user_id"`
	ClientOID   string          `json:"client_oid"`
	Price       decimal.Decimal `json:"price"`
	Size        decimal.Decimal `json:"size"`
	Funds       decimal.Decimal `json:"funds"`
	Type        OrderType       `json:"type"`
	Side        Side            `json:"side"`
	TimeInForce TimeInForce     `json:"time_in_force"`
	Status      OrderStatus     `json:"status"`
}

// DecodeOrder parses a wire record into an Order. Absent or unknown enum
// values fail decoding.
func DecodeOrder(data []byte) (*Order, error) {
	var order Order
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, err
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return &order, nil
}

// Validate checks that every enum field carries a known value.
func (o *Order) Validate() error {
	if !o.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidOrderType, o.Type)
	}
	if !o.Side.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSide, o.Side)
	}
	if !o.TimeInForce.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidTimeInForce, o.TimeInForce)
	}
	if !o.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidOrderStatus, o.Status)
	}
	return nil
}

// IsMarket checks if the order is a market order.
func (o *Order) IsMarket() bool {
	return o.Type == OrderTypeMarket
}

// BookOrder is the resting projection of an Order. Size and Funds are
// decremented in place while the order is matched.
type BookOrder struct {
	OrderID     int64           `json:"order_id"`
	UserID      int64           `json:"user_id"`
	Price       decimal.Decimal `json:"price"`
	Size        decimal.Decimal `json:"size"`
	Funds       decimal.Decimal `json:"funds"`
	Side        Side            `json:"side"`
	Type        OrderType       `json:"type"`
	TimeInForce TimeInForce     `json:"time_in_force"`
}

// NewBookOrder projects an intake order onto the book.
func NewBookOrder(order *Order) *BookOrder {
	return &BookOrder{
		OrderID:     order.ID,
		UserID:      order.UserID,
		Price:       order.Price,
		Size:        order.Size,
		Funds:       order.Funds,
		Side:        order.Side,
		Type:        order.Type,
		TimeInForce: order.TimeInForce,
	}
}

// IsMarket checks if the order is a market order.
func (o *BookOrder) IsMarket() bool {
	return o.Type == OrderTypeMarket
}

// IsMarketBuy checks if the order is funds denominated.
func (o *BookOrder) IsMarketBuy() bool {
	return o.Type == OrderTypeMarket && o.Side == SideBuy
}

// Crosses reports whether the order would trade against a maker resting at
// price. Market orders cross every price.
func (o *BookOrder) Crosses(price decimal.Decimal) bool {
	if o.IsMarket() {
		return true
	}
	if o.Side == SideBuy {
		return o.Price.GreaterThanOrEqual(price)
	}
	return o.Price.LessThanOrEqual(price)
}
