package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Rejection reasons reported on matching_orders_rejected_total.
const (
	rejectReasonDuplicate = "duplicate"
	rejectReasonDecode    = "decode"
)

// Metrics holds the engine's prometheus collectors.
type Metrics struct {
	ordersApplied             prometheus.Counter
	ordersRejected            *prometheus.CounterVec
	logsCommitted             prometheus.Counter
	logBatches                prometheus.Counter
	snapshotsStored           prometheus.Counter
	snapshotRequestsDiscarded prometheus.Counter
	logSeq                    prometheus.Gauge
	orderOffset               prometheus.Gauge
}

// NewMetrics registers the engine collectors on reg, labelled with the product id.
func NewMetrics(reg prometheus.Registerer, productID string) *Metrics {
	factory := promauto.With(reg)
	labels := prometheus.Labels{"product_id": productID}

	return &Metrics{
		ordersApplied: factory.NewCounter(prometheus.CounterOpts{
			Name:        "matching_orders_applied_total",
			Help:        "Orders applied to the order book.",
			ConstLabels: labels,
		}),
		ordersRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "matching_orders_rejected_total",
			Help:        "Orders dropped before reaching the order book, by reason.",
			ConstLabels: labels,
		}, []string{"reason"}),
		logsCommitted: factory.NewCounter(prometheus.CounterOpts{
			Name:        "matching_logs_committed_total",
			Help:        "Logs acknowledged by the log store.",
			ConstLabels: labels,
		}),
		logBatches: factory.NewCounter(prometheus.CounterOpts{
			Name:        "matching_log_batches_total",
			Help:        "Log batches acknowledged by the log store.",
			ConstLabels: labels,
		}),
		snapshotsStored: factory.NewCounter(prometheus.CounterOpts{
			Name:        "matching_snapshots_stored_total",
			Help:        "Snapshots persisted to the snapshot store.",
			ConstLabels: labels,
		}),
		snapshotRequestsDiscarded: factory.NewCounter(prometheus.CounterOpts{
			Name:        "matching_snapshot_requests_discarded_total",
			Help:        "Pending snapshots superseded before they were approved.",
			ConstLabels: labels,
		}),
		logSeq: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "matching_log_seq",
			Help:        "Sequence of the last durably committed log.",
			ConstLabels: labels,
		}),
		orderOffset: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "matching_order_offset",
			Help:        "Offset of the last order applied to the order book.",
			ConstLabels: labels,
		}),
	}
}
