package util

import (
	"context"

	"github.com/google/uuid"
)

type key string

const (
	requestIDKey = key("x-request-id")
	productIDKey = key("product-id")
)

// WithRequestID returns a context with request id.
// It will generate a new request id if the provided id is empty.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		id = NewRequestID()
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// GetRequestID returns request id from context
// will return empty string if not present
func GetRequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithProductID returns a context with the product the engine runs for.
func WithProductID(ctx context.Context, productID string) context.Context {
	return context.WithValue(ctx, productIDKey, productID)
}

// GetProductID returns product id from context
// will return empty string if not present
func GetProductID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(productIDKey).(string)
	return id
}

// NewRequestID returns a uuid-v4 string to use as request id
func NewRequestID() string {
	return uuid.NewString()
}
