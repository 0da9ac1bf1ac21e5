package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// OrderMetrics holds the instrumentation for the order placement flow
type OrderMetrics struct {
	OrdersCreated  prometheus.Counter
	OrderFailures  *prometheus.CounterVec
	CatalogLatency prometheus.Histogram
}

// NewOrderMetrics registers and returns the order service metrics
func NewOrderMetrics() *OrderMetrics {
	ordersCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "order_service",
		Name:      "orders_created_total",
		Help:      "Total number of successfully persisted orders.",
	})
	orderFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "order_service",
		Name:      "order_failures_total",
		Help:      "Total number of failed order placements by kind.",
	}, []string{"kind"})
	catalogLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "order_service",
		Name:      "catalog_resolve_duration_ms",
		Help:      "Latency of the batched catalog resolution call in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	})

	prometheus.MustRegister(ordersCreated, orderFailures, catalogLatency)
	return &OrderMetrics{
		OrdersCreated:  ordersCreated,
		OrderFailures:  orderFailures,
		CatalogLatency: catalogLatency,
	}
}

// Handler exposes the prometheus scrape endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}
