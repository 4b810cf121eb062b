package engine

import (
	stderrors "errors"

	snapshotv1 "github.com/muhammadchandra19/exchange-matching/internal/domain/snapshot/v1"
	"github.com/muhammadchandra19/exchange-matching/pkg/errors"
	"github.com/muhammadchandra19/exchange-matching/pkg/logger"
	"github.com/muhammadchandra19/exchange-matching/pkg/window"
)

// runApplier is the only goroutine touching the order book. It applies queued
// orders and answers snapshot requests between orders.
func (e *Engine) runApplier() error {
	e.logger.InfoContext(e.ctx, "applier started")
	defer e.logger.Info("applier stopped")

	for {
		select {
		case <-e.t.Dying():
			return nil
		case oo := <-e.orderCh:
			if err := e.apply(oo); err != nil {
				return err
			}
		case req := <-e.snapshotReqCh:
			e.answerSnapshotRequest(req)
		}
	}
}

func (e *Engine) apply(oo *offsetOrder) error {
	logs, err := e.orderBook.Process(oo.order)
	if err != nil {
		if !stderrors.Is(err, window.ErrStaleOrDuplicate) && !stderrors.Is(err, window.ErrDuplicate) {
			e.logger.ErrorContext(e.ctx, err,
				logger.Field{Key: "offset", Value: oo.offset},
				logger.Field{Key: "order_id", Value: oo.order.ID},
			)
			return errors.NewTracer(errors.OrderBookCorruptedError.String()).Wrap(err)
		}
		e.metrics.ordersRejected.WithLabelValues(rejectReasonDuplicate).Inc()
	} else {
		e.metrics.ordersApplied.Inc()
	}

	for _, log := range logs {
		select {
		case e.logCh <- log:
		case <-e.t.Dying():
			return nil
		}
	}

	e.orderOffset = oo.offset
	e.metrics.orderOffset.Set(float64(oo.offset))

	return nil
}

// answerSnapshotRequest takes a snapshot when more than SnapshotOffsetDelta
// orders were applied since the last stored one. The snapshot goes to the
// committer, which holds it until its logs are durable.
func (e *Engine) answerSnapshotRequest(req *snapshotRequest) {
	delta := e.orderOffset - req.orderOffset
	if delta <= e.options.SnapshotOffsetDelta {
		e.logger.DebugContext(e.ctx, "snapshot not needed",
			logger.Field{Key: "order_offset", Value: e.orderOffset},
			logger.Field{Key: "delta", Value: delta},
		)
		return
	}

	snapshot := &snapshotv1.Snapshot{
		OrderBookSnapshot: e.orderBook.Snapshot(),
		OrderOffset:       e.orderOffset,
	}

	e.logger.InfoContext(e.ctx, "snapshot taken",
		logger.Field{Key: "order_offset", Value: snapshot.OrderOffset},
		logger.Field{Key: "log_seq", Value: snapshot.LogSeq()},
	)

	select {
	case e.snapshotApproveReqCh <- snapshot:
	case <-e.t.Dying():
	}
}
