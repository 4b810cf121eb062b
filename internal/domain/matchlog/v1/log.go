package matchlogv1

import (
	"time"

	orderbookv1 "github.com/muhammadchandra19/exchange-matching/internal/domain/orderbook/v1"
	"github.com/shopspring/decimal"
)

// LogType is the kind of an event emitted by the order book.
type LogType string

const (
	LogTypeOpen  LogType = "open"
	LogTypeMatch LogType = "match"
	LogTypeDone  LogType = "done"
)

// Log is an append-only order book event. Seq is unique per product and
// increases by exactly one per emitted event.
type Log interface {
	GetSeq() int64
	GetType() LogType
}

// Base holds the fields shared by every event.
type Base struct {
	Type      LogType `json:"type"`
	Sequence  int64   `json:"sequence"`
	ProductID string  `json:"product_id"`
	Time      int64   `json:"time"`
}

// GetSeq returns the log sequence of the event.
func (b *Base) GetSeq() int64 {
	return b.Sequence
}

// GetType returns the event kind.
func (b *Base) GetType() LogType {
	return b.Type
}

func newBase(logType LogType, seq int64, productID string) Base {
	return Base{
		Type:      logType,
		Sequence:  seq,
		ProductID: productID,
		Time:      time.Now().UnixNano(),
	}
}

// OpenLog marks an order that started resting on the book.
type OpenLog struct {
	Base
	OrderID       int64                   `json:"order_id"`
	UserID        int64                   `json:"user_id"`
	RemainingSize decimal.Decimal         `json:"remaining_size"`
	Price         decimal.Decimal         `json:"price"`
	Side          orderbookv1.Side        `json:"side"`
	TimeInForce   orderbookv1.TimeInForce `json:"time_in_force"`
}

// NewOpenLog creates an OpenLog for a taker that rests with its remaining size.
func NewOpenLog(seq int64, productID string, taker *orderbookv1.BookOrder) *OpenLog {
	return &OpenLog{
		Base:          newBase(LogTypeOpen, seq, productID),
		OrderID:       taker.OrderID,
		UserID:        taker.UserID,
		RemainingSize: taker.Size,
		Price:         taker.Price,
		Side:          taker.Side,
		TimeInForce:   taker.TimeInForce,
	}
}

// DoneLog marks an order that left the book.
type DoneLog struct {
	Base
	OrderID       int64                   `json:"order_id"`
	UserID        int64                   `json:"user_id"`
	RemainingSize decimal.Decimal         `json:"remaining_size"`
	Price         decimal.Decimal         `json:"price"`
	Reason        orderbookv1.DoneReason  `json:"reason"`
	Side          orderbookv1.Side        `json:"side"`
	TimeInForce   orderbookv1.TimeInForce `json:"time_in_force"`
}

// NewDoneLog creates a DoneLog for order.
func NewDoneLog(seq int64, productID string, order *orderbookv1.BookOrder, remainingSize decimal.Decimal, reason orderbookv1.DoneReason) *DoneLog {
	return &DoneLog{
		Base:          newBase(LogTypeDone, seq, productID),
		OrderID:       order.OrderID,
		UserID:        order.UserID,
		RemainingSize: remainingSize,
		Price:         order.Price,
		Reason:        reason,
		Side:          order.Side,
		TimeInForce:   order.TimeInForce,
	}
}

// MatchLog records one executed trade between a taker and a maker.
type MatchLog struct {
	Base
	TradeSeq         int64                   `json:"trade_seq"`
	TakerOrderID     int64                   `json:"taker_order_id"`
	MakerOrderID     int64                   `json:"maker_order_id"`
	TakerUserID      int64                   `json:"taker_user_id"`
	MakerUserID      int64                   `json:"maker_user_id"`
	Side             orderbookv1.Side        `json:"side"`
	Price            decimal.Decimal         `json:"price"`
	Size             decimal.Decimal         `json:"size"`
	TakerTimeInForce orderbookv1.TimeInForce `json:"taker_time_in_force"`
	MakerTimeInForce orderbookv1.TimeInForce `json:"maker_time_in_force"`
}

// NewMatchLog creates a MatchLog. Side is the resting side and price is the maker's price.
func NewMatchLog(seq int64, productID string, tradeSeq int64, taker, maker *orderbookv1.BookOrder, price, size decimal.Decimal) *MatchLog {
	return &MatchLog{
		Base:             newBase(LogTypeMatch, seq, productID),
		TradeSeq:         tradeSeq,
		TakerOrderID:     taker.OrderID,
		MakerOrderID:     maker.OrderID,
		TakerUserID:      taker.UserID,
		MakerUserID:      maker.UserID,
		Side:             maker.Side,
		Price:            price,
		Size:             size,
		TakerTimeInForce: taker.TimeInForce,
		MakerTimeInForce: maker.TimeInForce,
	}
}
