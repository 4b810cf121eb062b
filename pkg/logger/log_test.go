package logger

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/muhammadchandra19/exchange-matching/pkg/errors"
	"github.com/muhammadchandra19/exchange-matching/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger(level zapcore.Level) (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return &Logger{logger: zap.New(core)}, logs
}

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expected  Level
		expectErr bool
	}{
		{name: "debug", input: "debug", expected: DebugLevel},
		{name: "upper case", input: "WARN", expected: WarnLevel},
		{name: "empty defaults to info", input: "", expected: InfoLevel},
		{name: "unknown", input: "verbose", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			level, err := ParseLevel(tc.input)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, level)
		})
	}
}

func TestLogger_InfoContext(t *testing.T) {
	log, logs := newObservedLogger(zapcore.InfoLevel)
	ctx := util.WithProductID(util.WithRequestID(context.Background(), "run-1"), "BTC-USD")

	log.InfoContext(ctx, "snapshot stored", Field{Key: "order_offset", Value: int64(42)})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "snapshot stored", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "run-1", fields["request_id"])
	assert.Equal(t, "BTC-USD", fields["product_id"])
	assert.Equal(t, int64(42), fields["order_offset"])
}

func TestLogger_ErrorUsesTracerStack(t *testing.T) {
	log, logs := newObservedLogger(zapcore.InfoLevel)

	log.Error(errors.NewTracer("snapshot_store_error").Wrap(stderrors.New("timeout")))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	assert.Equal(t, "snapshot_store_error: timeout", entry.Message)
	assert.Contains(t, entry.Stack, "TestLogger_ErrorUsesTracerStack")
}

func TestLogger_WithFields(t *testing.T) {
	log, logs := newObservedLogger(zapcore.DebugLevel)

	log.WithFields(Field{Key: "stage", Value: "committer"}).Debug("flushed")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "committer", logs.All()[0].ContextMap()["stage"])
}

func TestNewNop(t *testing.T) {
	log := NewNop()

	assert.NotPanics(t, func() {
		log.Info("discarded")
		log.Error(stderrors.New("discarded"))
	})
}

func TestNewLogger_Level(t *testing.T) {
	testCases := []struct {
		name     string
		opts     []Options
		expected zapcore.Level
	}{
		{name: "default info", expected: zapcore.InfoLevel},
		{name: "debug", opts: []Options{WithLoggingLevel(DebugLevel)}, expected: zapcore.DebugLevel},
		{name: "error", opts: []Options{WithLoggingLevel(ErrorLevel)}, expected: zapcore.ErrorLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			log, err := NewLogger(tc.opts...)
			require.NoError(t, err)

			assert.True(t, log.logger.Core().Enabled(tc.expected))
			if tc.expected > zapcore.DebugLevel {
				assert.False(t, log.logger.Core().Enabled(tc.expected-1))
			}
		})
	}
}
