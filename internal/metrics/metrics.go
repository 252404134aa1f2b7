package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "matchbook"

// Outcome labels for OrdersProcessed.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeNotFound = "not_found"
	OutcomeExpired  = "expired"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

// Metrics holds the Prometheus collectors of the matching service.
type Metrics struct {
	OrdersProcessed *prometheus.CounterVec
	Trades          prometheus.Counter
	TradedQuantity  prometheus.Counter
	BookOrders      *prometheus.GaugeVec
	FeedErrors      *prometheus.CounterVec

	EventsPublished *prometheus.CounterVec
	PublishFailures *prometheus.CounterVec
	EventsDropped   *prometheus.CounterVec
	QueueDepth      prometheus.Gauge
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		OrdersProcessed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "engine",
				Name:      "orders_processed_total",
				Help:      "Order commands applied to the book",
			},
			[]string{"action", "outcome"},
		),
		Trades: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "engine",
				Name:      "trades_total",
				Help:      "Trades produced by matching",
			},
		),
		TradedQuantity: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "engine",
				Name:      "traded_quantity_total",
				Help:      "Sum of filled quantity across all trades",
			},
		),
		BookOrders: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "engine",
				Name:      "book_orders",
				Help:      "Live resting orders per side",
			},
			[]string{"side"},
		),
		FeedErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "engine",
				Name:      "feed_errors_total",
				Help:      "Order intake read, decode and commit failures",
			},
			[]string{"stage"},
		),
		EventsPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "publisher",
				Name:      "events_published_total",
				Help:      "Events written to the sink transport",
			},
			[]string{"kind"},
		),
		PublishFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "publisher",
				Name:      "publish_failures_total",
				Help:      "Events the sink transport failed to write",
			},
			[]string{"kind"},
		),
		EventsDropped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "publisher",
				Name:      "events_dropped_total",
				Help:      "Events dropped because the hand-off queue was full or closed",
			},
			[]string{"kind"},
		),
		QueueDepth: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "publisher",
				Name:      "queue_depth",
				Help:      "Events waiting in the hand-off queue",
			},
		),
	}
}

// NewNop returns collectors registered nowhere.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
