package metrics

import (
	"context"
	"time"

	"github.com/ecommerce-backend/order-service/internal/catalog"
	"github.com/prometheus/client_golang/prometheus"
)

type resolver interface {
	Resolve(ctx context.Context, productIDs []string, bearerToken string) (map[string]catalog.Product, error)
}

// TimedResolver wraps a product resolver and records the latency of
// every catalog round trip
type TimedResolver struct {
	next    resolver
	latency prometheus.Histogram
}

// NewTimedResolver creates a latency-recording resolver wrapper
func NewTimedResolver(next resolver, latency prometheus.Histogram) *TimedResolver {
	return &TimedResolver{
		next:    next,
		latency: latency,
	}
}

// Resolve delegates to the wrapped resolver and observes the duration
func (t *TimedResolver) Resolve(ctx context.Context, productIDs []string, bearerToken string) (map[string]catalog.Product, error) {
	start := time.Now()
	resolved, err := t.next.Resolve(ctx, productIDs, bearerToken)
	t.latency.Observe(float64(time.Since(start).Milliseconds()))
	return resolved, err
}
