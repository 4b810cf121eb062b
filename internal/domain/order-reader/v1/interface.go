package orderreaderv1

import (
	"context"
	"errors"

	orderbookv1 "github.com/muhammadchandra19/exchange-matching/internal/domain/orderbook/v1"
)

// ErrDecode is returned for a record that could not be decoded into an order.
// The record is consumed; reading may continue with the next one.
var ErrDecode = errors.New("order decode failed")

// OrderReader defines the interface for reading orders from an offset-addressed source.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=orderreaderv1_mock
type OrderReader interface {
	// SetOffset sets the offset of the next record to read. It must be called before the first FetchOrder.
	SetOffset(offset int64) error
	// FetchOrder reads the next record and returns its offset and the decoded order.
	FetchOrder(ctx context.Context) (int64, *orderbookv1.Order, error)
	// Close closes the reader
	Close() error
}
