package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics records external lookups and finished orders.
type StorefrontMetrics struct {
	lookupDuration *prometheus.HistogramVec
	lookupSuccess  *prometheus.CounterVec
	lookupFailure  *prometheus.CounterVec
	ordersFinished prometheus.Counter
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	lookupDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "external_lookup_duration_seconds",
		Help:    "Duration of external lookup calls in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"upstream"})
	lookupSuccess := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "external_lookup_success",
		Help: "Successful external lookup calls.",
	}, []string{"upstream"})
	lookupFailure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "external_lookup_failure",
		Help: "Failed external lookup calls.",
	}, []string{"upstream"})
	ordersFinished := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_finished",
		Help: "Checkout flows completed.",
	})
	reg.MustRegister(lookupDuration, lookupSuccess, lookupFailure, ordersFinished)
	return &StorefrontMetrics{
		lookupDuration: lookupDuration,
		lookupSuccess:  lookupSuccess,
		lookupFailure:  lookupFailure,
		ordersFinished: ordersFinished,
	}
}

// ObserveLookup records the duration for the named upstream.
func (s *StorefrontMetrics) ObserveLookup(upstream string, duration time.Duration) {
	if s == nil || s.lookupDuration == nil {
		return
	}
	s.lookupDuration.WithLabelValues(normalizeLabel(upstream)).Observe(duration.Seconds())
}

// IncLookupSuccess increments the success counter for the named upstream.
func (s *StorefrontMetrics) IncLookupSuccess(upstream string) {
	if s == nil || s.lookupSuccess == nil {
		return
	}
	s.lookupSuccess.WithLabelValues(normalizeLabel(upstream)).Inc()
}

// IncLookupFailure increments the failure counter for the named upstream.
func (s *StorefrontMetrics) IncLookupFailure(upstream string) {
	if s == nil || s.lookupFailure == nil {
		return
	}
	s.lookupFailure.WithLabelValues(normalizeLabel(upstream)).Inc()
}

// IncOrderFinished counts a completed checkout.
func (s *StorefrontMetrics) IncOrderFinished() {
	if s == nil || s.ordersFinished == nil {
		return
	}
	s.ordersFinished.Inc()
}

func normalizeLabel(upstream string) string {
	if upstream == "" {
		return "unknown"
	}
	return upstream
}
