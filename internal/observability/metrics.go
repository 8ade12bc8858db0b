package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the order-lifecycle counters exported via the Prometheus
// endpoint.
type Metrics struct {
	OrdersPlaced     prometheus.Counter
	OrdersDeleted    prometheus.Counter
	CookTimeAssigned prometheus.Histogram
}

// NewMetrics registers the service metrics with the default registry.
func NewMetrics() *Metrics {
	return &Metrics{
		OrdersPlaced: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "tableside",
			Name:      "orders_placed_total",
			Help:      "Number of orders successfully created.",
		}),
		OrdersDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "tableside",
			Name:      "orders_deleted_total",
			Help:      "Number of orders removed by delete requests.",
		}),
		CookTimeAssigned: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tableside",
			Name:      "cook_time_minutes",
			Help:      "Cook times assigned at order creation.",
			Buckets:   prometheus.LinearBuckets(1, 2, 10),
		}),
	}
}
