package snapshotv1

import (
	"encoding/json"
	"errors"
	"fmt"

	orderbookv1 "github.com/muhammadchandra19/exchange-matching/internal/domain/orderbook/v1"
)

// ErrInvalidBitMap is returned when a persisted bitmap holds a value that is not a byte.
var ErrInvalidBitMap = errors.New("bit map value out of byte range")

// Snapshot pairs the order book state with the order offset it was taken at.
// OrderBookSnapshot is nil when nothing has been checkpointed yet.
type Snapshot struct {
	OrderBookSnapshot *OrderBookSnapshot `json:"order_book_snapshot"`
	OrderOffset       int64              `json:"order_offset"`
}

// OrderBookSnapshot is the full recoverable state of one product's book.
type OrderBookSnapshot struct {
	ProductID     string                  `json:"product_id"`
	Orders        []orderbookv1.BookOrder `json:"orders"`
	TradeSeq      int64                   `json:"trade_seq"`
	LogSeq        int64                   `json:"log_seq"`
	OrderIDWindow WindowSnapshot          `json:"order_id_window"`
}

// WindowSnapshot is the raw state of the order id admission window.
type WindowSnapshot struct {
	Min    int64  `json:"min"`
	Max    int64  `json:"max"`
	Cap    int64  `json:"cap"`
	BitMap BitMap `json:"bit_map"`
}

// BitMap holds the window bitmap as byte values. Data is an int slice so it
// encodes as a JSON array instead of base64.
type BitMap struct {
	Data []int `json:"data"`
}

// NewWindowSnapshot builds a WindowSnapshot from the window's raw state.
func NewWindowSnapshot(min, max, cap int64, data []byte) WindowSnapshot {
	values := make([]int, len(data))
	for i, b := range data {
		values[i] = int(b)
	}
	return WindowSnapshot{
		Min:    min,
		Max:    max,
		Cap:    cap,
		BitMap: BitMap{Data: values},
	}
}

// UnmarshalJSON rejects values outside 0..255.
func (b *BitMap) UnmarshalJSON(data []byte) error {
	var raw struct {
		Data []int `json:"data"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for i, v := range raw.Data {
		if v < 0 || v > 255 {
			return fmt.Errorf("%w: data[%d] = %d", ErrInvalidBitMap, i, v)
		}
	}
	b.Data = raw.Data
	return nil
}

// Bytes returns the bitmap as raw bytes.
func (w WindowSnapshot) Bytes() []byte {
	data := make([]byte, len(w.BitMap.Data))
	for i, v := range w.BitMap.Data {
		data[i] = byte(v)
	}
	return data
}

// LogSeq returns the log sequence the snapshot covers, or zero when the
// snapshot carries no book state.
func (s *Snapshot) LogSeq() int64 {
	if s == nil || s.OrderBookSnapshot == nil {
		return 0
	}
	return s.OrderBookSnapshot.LogSeq
}
