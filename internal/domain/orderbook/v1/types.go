package orderbookv1

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrInvalidOrderType   = errors.New("invalid order type")
	ErrInvalidSide        = errors.New("invalid side")
	ErrInvalidTimeInForce = errors.New("invalid time in force")
	ErrInvalidOrderStatus = errors.New("invalid order status")
	ErrInvalidDoneReason  = errors.New("invalid done reason")
)

// OrderType represents the type of order.
type OrderType string

const (
	// OrderTypeLimit represents a limit order.
	OrderTypeLimit OrderType = "limit"
	// OrderTypeMarket represents a market order.
	OrderTypeMarket OrderType = "market"
)

// Valid reports whether t is a known order type.
func (t OrderType) Valid() bool {
	return t == OrderTypeLimit || t == OrderTypeMarket
}

// UnmarshalJSON rejects unknown order type literals.
func (t *OrderType) UnmarshalJSON(data []byte) error {
	v, err := unmarshalEnum(data, OrderType.Valid, ErrInvalidOrderType)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Side represents the side of the book an order belongs to.
type Side string

const (
	// SideBuy represents a bid.
	SideBuy Side = "buy"
	// SideSell represents an ask.
	SideSell Side = "sell"
)

// Valid reports whether s is a known side.
func (s Side) Valid() bool {
	return s == SideBuy || s == SideSell
}

// Opposite returns the other side of the book.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

// UnmarshalJSON rejects unknown side literals.
func (s *Side) UnmarshalJSON(data []byte) error {
	v, err := unmarshalEnum(data, Side.Valid, ErrInvalidSide)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// TimeInForce governs whether and how an order may rest or partially fill.
type TimeInForce string

const (
	// GoodTillCanceled rests any unfilled remainder.
	GoodTillCanceled TimeInForce = "GTC"
	// ImmediateOrCancel matches what it can and cancels the rest.
	ImmediateOrCancel TimeInForce = "IOC"
	// GoodTillCrossing is rejected if it would match on arrival (post only).
	GoodTillCrossing TimeInForce = "GTX"
	// FillOrKill is rejected unless it can be filled completely on arrival.
	FillOrKill TimeInForce = "FOK"
)

// Valid reports whether tif is a known time in force.
func (tif TimeInForce) Valid() bool {
	switch tif {
	case GoodTillCanceled, ImmediateOrCancel, GoodTillCrossing, FillOrKill:
		return true
	}
	return false
}

// UnmarshalJSON rejects unknown time in force literals.
func (tif *TimeInForce) UnmarshalJSON(data []byte) error {
	v, err := unmarshalEnum(data, TimeInForce.Valid, ErrInvalidTimeInForce)
	if err != nil {
		return err
	}
	*tif = v
	return nil
}

// OrderStatus is the lifecycle status carried by an intake order.
type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "new"
	OrderStatusOpen       OrderStatus = "open"
	OrderStatusCancelling OrderStatus = "cancelling"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusPartial    OrderStatus = "partial"
	OrderStatusFilled     OrderStatus = "filled"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusNew, OrderStatusOpen, OrderStatusCancelling,
		OrderStatusCancelled, OrderStatusPartial, OrderStatusFilled:
		return true
	}
	return false
}

// UnmarshalJSON rejects unknown status literals.
func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	v, err := unmarshalEnum(data, OrderStatus.Valid, ErrInvalidOrderStatus)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// DoneReason tells why an order left the book.
type DoneReason string

const (
	DoneReasonFilled    DoneReason = "filled"
	DoneReasonCancelled DoneReason = "cancelled"
)

// Valid reports whether r is a known done reason.
func (r DoneReason) Valid() bool {
	return r == DoneReasonFilled || r == DoneReasonCancelled
}

// UnmarshalJSON rejects unknown done reason literals.
func (r *DoneReason) UnmarshalJSON(data []byte) error {
	v, err := unmarshalEnum(data, DoneReason.Valid, ErrInvalidDoneReason)
	if err != nil {
		return err
	}
	*r = v
	return nil
}

func unmarshalEnum[T ~string](data []byte, valid func(T) bool, errInvalid error) (T, error) {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return "", fmt.Errorf("%w: %v", errInvalid, err)
	}
	if !valid(T(raw)) {
		return "", fmt.Errorf("%w: %q", errInvalid, raw)
	}
	return T(raw), nil
}
