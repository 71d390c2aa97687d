package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// QuoteMetrics records outcomes of pricing calculations.
type QuoteMetrics struct {
	duration *prometheus.HistogramVec
	requests *prometheus.CounterVec
	floor    prometheus.Counter
	cacheHit prometheus.Counter
}

// NewQuoteMetrics registers the quote metrics on the provided registerer.
func NewQuoteMetrics(reg prometheus.Registerer) *QuoteMetrics {
	if reg == nil {
		return &QuoteMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quote_duration_seconds",
		Help:    "Duration of quote calculations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quote_requests_total",
		Help: "Quote calculations by outcome.",
	}, []string{"outcome"})
	floor := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quote_minimum_floor_total",
		Help: "Quotes where the minimum-price floor was engaged.",
	})
	cacheHit := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quote_cache_hits_total",
		Help: "Quote results served from the memo cache.",
	})
	reg.MustRegister(duration, requests, floor, cacheHit)
	return &QuoteMetrics{
		duration: duration,
		requests: requests,
		floor:    floor,
		cacheHit: cacheHit,
	}
}

// ObserveQuote records one calculation with its outcome label.
func (q *QuoteMetrics) ObserveQuote(outcome string, elapsed time.Duration) {
	if q == nil {
		return
	}
	label := normalizeLabel(outcome)
	if q.requests != nil {
		q.requests.WithLabelValues(label).Inc()
	}
	if q.duration != nil {
		q.duration.WithLabelValues(label).Observe(elapsed.Seconds())
	}
}

// IncFloorEngaged counts a quote clamped to the minimum price.
func (q *QuoteMetrics) IncFloorEngaged() {
	if q == nil || q.floor == nil {
		return
	}
	q.floor.Inc()
}

// IncCacheHit counts a quote served from the memo cache.
func (q *QuoteMetrics) IncCacheHit() {
	if q == nil || q.cacheHit == nil {
		return
	}
	q.cacheHit.Inc()
}

func normalizeLabel(outcome string) string {
	if outcome == "" {
		return "unknown"
	}
	return outcome
}
