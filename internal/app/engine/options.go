package engine

import (
	"time"

	"github.com/muhammadchandra19/exchange-matching/pkg/config"
)

// Options represents configuration options for the Engine.
type Options struct {
	SnapshotInterval    time.Duration
	SnapshotOffsetDelta int64

	OrderQueueSize   int
	LogQueueSize     int
	ControlQueueSize int
	CommitBatchSize  int

	StoreMaxRetries   int
	StoreRetryBackoff time.Duration

	// ReadErrorBackoff is how long the fetcher pauses after a failed read.
	ReadErrorBackoff time.Duration
}

// DefaultEngineOptions returns the default engine options.
func DefaultEngineOptions() *Options {
	return &Options{
		SnapshotInterval:    30 * time.Second,
		SnapshotOffsetDelta: 1000,
		OrderQueueSize:      10000,
		LogQueueSize:        10000,
		ControlQueueSize:    32,
		CommitBatchSize:     100,
		StoreMaxRetries:     3,
		StoreRetryBackoff:   200 * time.Millisecond,
		ReadErrorBackoff:    100 * time.Millisecond,
	}
}

// OptionsFromConfig builds engine options from the loaded configuration.
func OptionsFromConfig(cfg *config.Config) *Options {
	opts := DefaultEngineOptions()
	opts.SnapshotInterval = cfg.Snapshot.Interval
	opts.SnapshotOffsetDelta = cfg.Snapshot.OffsetDelta
	opts.OrderQueueSize = cfg.Engine.OrderQueueSize
	opts.LogQueueSize = cfg.Engine.LogQueueSize
	opts.ControlQueueSize = cfg.Engine.ControlQueueSize
	opts.CommitBatchSize = cfg.Engine.CommitBatchSize
	opts.StoreMaxRetries = cfg.Engine.StoreMaxRetries
	opts.StoreRetryBackoff = cfg.Engine.StoreRetryBackoff
	return opts
}
