package engine

import (
	"context"
	"time"

	"github.com/muhammadchandra19/exchange-matching/pkg/logger"
)

// runSnapshotter persists approved snapshots. When none arrives within
// SnapshotInterval it asks the applier for one, measured from the offset of
// the last stored snapshot.
func (e *Engine) runSnapshotter() error {
	baseline := e.recoveredOffset

	e.logger.InfoContext(e.ctx, "snapshotter started", logger.Field{Key: "order_offset", Value: baseline})
	defer e.logger.Info("snapshotter stopped")

	for {
		select {
		case <-e.t.Dying():
			return nil

		case snapshot := <-e.snapshotCh:
			err := e.withRetry("store snapshot", func(ctx context.Context) error {
				return e.snapshotStore.Store(ctx, snapshot)
			})
			if err != nil {
				return err
			}

			baseline = snapshot.OrderOffset
			e.metrics.snapshotsStored.Inc()
			e.logger.InfoContext(e.ctx, "snapshot stored",
				logger.Field{Key: "order_offset", Value: snapshot.OrderOffset},
				logger.Field{Key: "log_seq", Value: snapshot.LogSeq()},
			)

		case <-time.After(e.options.SnapshotInterval):
			e.logger.DebugContext(e.ctx, "request snapshot", logger.Field{Key: "order_offset", Value: baseline})

			select {
			case e.snapshotReqCh <- &snapshotRequest{orderOffset: baseline}:
			case <-e.t.Dying():
				return nil
			}
		}
	}
}
