package matchlogv1

import "context"

// Store appends order book events to the durable event log.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=matchlogv1_mock
type Store interface {
	// Store appends logs as one batch, preserving their order.
	Store(ctx context.Context, logs []Log) error
	// Close releases the underlying writer.
	Close() error
}
