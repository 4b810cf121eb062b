package engine

import (
	"context"
	"time"

	matchlogv1 "github.com/muhammadchandra19/exchange-matching/internal/domain/matchlog/v1"
	snapshotv1 "github.com/muhammadchandra19/exchange-matching/internal/domain/snapshot/v1"
	"github.com/muhammadchandra19/exchange-matching/pkg/errors"
	"github.com/muhammadchandra19/exchange-matching/pkg/logger"
	"gopkg.in/tomb.v2"
)

// runCommitter writes logs to the log store in batches and approves a pending
// snapshot once every log it reflects is durable.
//
// lastSeq is the highest seq accepted into the batch and drives dedup. seq is
// the highest seq acknowledged by the store and drives approval. At most one
// snapshot is pending; a newer one replaces it.
func (e *Engine) runCommitter() error {
	var (
		seq     = e.committedSeq
		lastSeq = seq
		batch   = make([]matchlogv1.Log, 0, e.options.CommitBatchSize)
		pending *snapshotv1.Snapshot
	)

	e.logger.InfoContext(e.ctx, "committer started", logger.Field{Key: "log_seq", Value: seq})
	defer e.logger.Info("committer stopped")

	for {
		select {
		case <-e.t.Dying():
			return nil

		case log := <-e.logCh:
			if log.GetSeq() <= lastSeq {
				e.logger.DebugContext(e.ctx, "discard log",
					logger.Field{Key: "seq", Value: log.GetSeq()},
					logger.Field{Key: "last_seq", Value: lastSeq},
				)
				continue
			}
			lastSeq = log.GetSeq()
			batch = append(batch, log)

			if len(batch) < e.options.CommitBatchSize && len(e.logCh) > 0 {
				continue
			}

			err := e.withRetry("store logs", func(ctx context.Context) error {
				return e.logStore.Store(ctx, batch)
			})
			if err != nil {
				return err
			}

			e.metrics.logsCommitted.Add(float64(len(batch)))
			e.metrics.logBatches.Inc()
			e.metrics.logSeq.Set(float64(lastSeq))

			seq = lastSeq
			batch = make([]matchlogv1.Log, 0, e.options.CommitBatchSize)

		case snapshot := <-e.snapshotApproveReqCh:
			if pending != nil {
				e.logger.InfoContext(e.ctx, "discard pending snapshot",
					logger.Field{Key: "order_offset", Value: pending.OrderOffset},
					logger.Field{Key: "log_seq", Value: pending.LogSeq()},
				)
				e.metrics.snapshotRequestsDiscarded.Inc()
			}
			pending = snapshot
		}

		if pending != nil && seq >= pending.LogSeq() {
			e.logger.InfoContext(e.ctx, "snapshot approved",
				logger.Field{Key: "order_offset", Value: pending.OrderOffset},
				logger.Field{Key: "log_seq", Value: pending.LogSeq()},
			)

			select {
			case e.snapshotCh <- pending:
				pending = nil
			case <-e.t.Dying():
				return nil
			}
		}
	}
}

// withRetry calls fn until it succeeds, retrying StoreMaxRetries times with
// exponential backoff. It returns tomb.ErrDying when the engine stops while
// waiting.
func (e *Engine) withRetry(op string, fn func(ctx context.Context) error) error {
	backoff := e.options.StoreRetryBackoff

	for attempt := 0; ; attempt++ {
		err := fn(e.ctx)
		if err == nil {
			return nil
		}
		if !e.t.Alive() {
			return tomb.ErrDying
		}
		if attempt >= e.options.StoreMaxRetries {
			e.logger.ErrorContext(e.ctx, err, logger.Field{Key: "operation", Value: op})
			return errors.NewTracer(op + " failed").Wrap(err)
		}

		e.logger.WarnContext(e.ctx, "retrying after failure",
			logger.Field{Key: "operation", Value: op},
			logger.Field{Key: "attempt", Value: attempt + 1},
			logger.Field{Key: "error", Value: err.Error()},
		)

		select {
		case <-time.After(backoff):
			backoff *= 2
		case <-e.t.Dying():
			return tomb.ErrDying
		}
	}
}
