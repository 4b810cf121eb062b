package engine

import (
	"context"
	stderrors "errors"

	matchlogv1 "github.com/muhammadchandra19/exchange-matching/internal/domain/matchlog/v1"
	orderreaderv1 "github.com/muhammadchandra19/exchange-matching/internal/domain/order-reader/v1"
	orderbookv1 "github.com/muhammadchandra19/exchange-matching/internal/domain/orderbook/v1"
	snapshotv1 "github.com/muhammadchandra19/exchange-matching/internal/domain/snapshot/v1"
	"github.com/muhammadchandra19/exchange-matching/internal/usecase/orderbook"
	"github.com/muhammadchandra19/exchange-matching/pkg/errors"
	"github.com/muhammadchandra19/exchange-matching/pkg/logger"
	"gopkg.in/tomb.v2"
)

var (
	errNotStarted = stderrors.New("engine not started")
	errStopped    = stderrors.New("engine stopped")
)

var closedCh = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// offsetOrder is an order paired with the source offset it was read at.
type offsetOrder struct {
	offset int64
	order  *orderbookv1.Order
}

// snapshotRequest asks the applier for a snapshot if the book has moved far
// enough past orderOffset, the offset of the last stored snapshot.
type snapshotRequest struct {
	orderOffset int64
}

// Engine runs the matching pipeline of a single product:
//
//	fetcher -> applier -> committer -> snapshotter
//
// Each stage is a goroutine tracked by a tomb. The order book is touched only
// by the applier.
type Engine struct {
	orderBook     *orderbook.OrderBook
	orderReader   orderreaderv1.OrderReader
	logStore      matchlogv1.Store
	snapshotStore snapshotv1.Store
	metrics       *Metrics
	logger        *logger.Logger
	options       *Options

	orderCh              chan *offsetOrder
	logCh                chan matchlogv1.Log
	snapshotReqCh        chan *snapshotRequest
	snapshotApproveReqCh chan *snapshotv1.Snapshot
	snapshotCh           chan *snapshotv1.Snapshot

	// recoveredOffset is the order offset restored at start, -1 without a snapshot.
	recoveredOffset int64
	// orderOffset is owned by the applier once the engine runs.
	orderOffset int64
	// committedSeq is the book's log seq at start, read before any stage runs.
	// The committer treats every log up to it as durable.
	committedSeq int64

	t   *tomb.Tomb
	ctx context.Context
}

// NewEngine creates an engine around an order book and its collaborators.
// A nil options uses DefaultEngineOptions.
func NewEngine(
	orderBook *orderbook.OrderBook,
	orderReader orderreaderv1.OrderReader,
	logStore matchlogv1.Store,
	snapshotStore snapshotv1.Store,
	metrics *Metrics,
	log *logger.Logger,
	options *Options,
) *Engine {
	if options == nil {
		options = DefaultEngineOptions()
	}

	return &Engine{
		orderBook:     orderBook,
		orderReader:   orderReader,
		logStore:      logStore,
		snapshotStore: snapshotStore,
		metrics:       metrics,
		logger:        log,
		options:       options,

		orderCh:              make(chan *offsetOrder, options.OrderQueueSize),
		logCh:                make(chan matchlogv1.Log, options.LogQueueSize),
		snapshotReqCh:        make(chan *snapshotRequest, options.ControlQueueSize),
		snapshotApproveReqCh: make(chan *snapshotv1.Snapshot, options.ControlQueueSize),
		snapshotCh:           make(chan *snapshotv1.Snapshot, options.ControlQueueSize),

		recoveredOffset: -1,
		orderOffset:     -1,
	}
}

// Start restores the latest snapshot and launches the pipeline stages. The
// stages stop when ctx is cancelled, when Stop is called, or when one of them
// fails.
func (e *Engine) Start(ctx context.Context) error {
	if err := e.recover(ctx); err != nil {
		return err
	}

	e.committedSeq = e.orderBook.LogSeq()
	e.t, e.ctx = tomb.WithContext(ctx)

	e.logger.InfoContext(ctx, "engine started",
		logger.Field{Key: "order_offset", Value: e.recoveredOffset},
		logger.Field{Key: "log_seq", Value: e.committedSeq},
	)

	e.t.Go(e.runFetcher)
	e.t.Go(e.runApplier)
	e.t.Go(e.runCommitter)
	e.t.Go(e.runSnapshotter)

	return nil
}

// Stop asks every stage to exit and waits for them until ctx is done.
func (e *Engine) Stop(ctx context.Context) error {
	if e.t == nil {
		return nil
	}

	e.t.Kill(nil)

	select {
	case <-e.t.Dead():
		err := e.Err()
		if err != nil {
			e.logger.Error(err)
			return err
		}
		e.logger.Info("engine stopped")
		return nil
	case <-ctx.Done():
		return errors.NewTracer(errors.EngineStopTimeout.String()).Wrap(ctx.Err())
	}
}

// Health reports nil while every stage is running.
func (e *Engine) Health() error {
	if e.t == nil {
		return errNotStarted
	}
	if e.t.Alive() {
		return nil
	}
	if err := e.Err(); err != nil {
		return err
	}
	return errStopped
}

// Dead returns a channel closed once every stage has exited. Before a
// successful Start the channel is already closed.
func (e *Engine) Dead() <-chan struct{} {
	if e.t == nil {
		return closedCh
	}
	return e.t.Dead()
}

// Wait blocks until every stage has exited and returns the failure that
// stopped the engine, if any.
func (e *Engine) Wait() error {
	if e.t == nil {
		return errNotStarted
	}
	e.t.Wait()
	return e.Err()
}

// Err returns the stage failure that stopped the engine. Cancellation of the
// start context is not a failure.
func (e *Engine) Err() error {
	if e.t == nil {
		return nil
	}
	err := e.t.Err()
	if err == tomb.ErrStillAlive || stderrors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (e *Engine) recover(ctx context.Context) error {
	snapshot, err := e.snapshotStore.GetLatest(ctx)
	if err != nil {
		return errors.NewTracer(errors.EngineRecoveryError.String()).Wrap(err)
	}
	if snapshot == nil {
		e.logger.InfoContext(ctx, "no snapshot found, starting with an empty book")
		return nil
	}

	if snapshot.OrderBookSnapshot != nil {
		e.orderBook.Restore(snapshot.OrderBookSnapshot)
	}
	e.recoveredOffset = snapshot.OrderOffset
	e.orderOffset = snapshot.OrderOffset

	e.metrics.orderOffset.Set(float64(e.orderOffset))
	e.metrics.logSeq.Set(float64(e.orderBook.LogSeq()))

	e.logger.InfoContext(ctx, "restored from snapshot",
		logger.Field{Key: "order_offset", Value: snapshot.OrderOffset},
		logger.Field{Key: "log_seq", Value: e.orderBook.LogSeq()},
		logger.Field{Key: "trade_seq", Value: e.orderBook.TradeSeq()},
	)

	return nil
}
