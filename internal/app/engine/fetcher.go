package engine

import (
	stderrors "errors"
	"time"

	orderreaderv1 "github.com/muhammadchandra19/exchange-matching/internal/domain/order-reader/v1"
	"github.com/muhammadchandra19/exchange-matching/pkg/logger"
)

// runFetcher reads orders strictly after the recovered offset and queues them
// for the applier. Failing to position the reader stops the engine; read and
// decode failures do not.
func (e *Engine) runFetcher() error {
	offset := e.recoveredOffset + 1
	if err := e.orderReader.SetOffset(offset); err != nil {
		e.logger.ErrorContext(e.ctx, err, logger.Field{Key: "offset", Value: offset})
		return err
	}

	e.logger.InfoContext(e.ctx, "fetcher started", logger.Field{Key: "offset", Value: offset})
	defer e.logger.Info("fetcher stopped")

	for {
		offset, order, err := e.orderReader.FetchOrder(e.ctx)
		if err != nil {
			if !e.t.Alive() {
				return nil
			}

			if stderrors.Is(err, orderreaderv1.ErrDecode) {
				e.logger.ErrorContext(e.ctx, err, logger.Field{Key: "offset", Value: offset})
				e.metrics.ordersRejected.WithLabelValues(rejectReasonDecode).Inc()
				continue
			}

			e.logger.ErrorContext(e.ctx, err)
			select {
			case <-time.After(e.options.ReadErrorBackoff):
				continue
			case <-e.t.Dying():
				return nil
			}
		}

		select {
		case e.orderCh <- &offsetOrder{offset: offset, order: order}:
		case <-e.t.Dying():
			return nil
		}
	}
}
