package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorTracer_Wrap(t *testing.T) {
	cause := stderrors.New("connection refused")

	err := NewTracer(SnapshotStoreError.String()).Wrap(cause)

	assert.Equal(t, "snapshot_store_error: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.NotEmpty(t, err.StackTrace())
}

func TestTracerFromError(t *testing.T) {
	cause := stderrors.New("boom")

	err := TracerFromError(cause)

	assert.Equal(t, "boom", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.NotEmpty(t, err.StackTrace())
}

func TestErrorCodeEquals(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		code     ErrorCode
		expected bool
	}{
		{
			name:     "matching code",
			err:      NewErrorDetails("bad addr", RedisConfigError.String(), "connect"),
			code:     RedisConfigError,
			expected: true,
		},
		{
			name:     "wrapped details",
			err:      NewTracer("connect").Wrap(NewErrorDetails("bad addr", RedisConfigError.String(), "connect")),
			code:     RedisConfigError,
			expected: true,
		},
		{
			name:     "other code",
			err:      NewErrorDetails("bad addr", RedisConfigError.String(), "connect"),
			code:     RedisPingError,
			expected: false,
		},
		{
			name:     "plain error",
			err:      stderrors.New("plain"),
			code:     RedisConfigError,
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ErrorCodeEquals(tc.err, tc.code.String()))
		})
	}
}
