package metrics

import (
	"math"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bharatdcim_http_requests_total",
			Help: "Total number of HTTP requests per method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bharatdcim_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds per method and route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	BillEstimatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bharatdcim_bill_estimates_total",
			Help: "Bill estimates computed per state, billing unit and path (pattern or hourly)",
		},
		[]string{"state", "billing_unit", "path"},
	)

	StateFallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bharatdcim_state_fallbacks_total",
			Help: "Lookups for an unknown state that were served the default schedule",
		},
	)

	EffectiveRate = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bharatdcim_effective_rate_inr_per_kwh",
			Help:    "Effective all-in rate of computed estimates, rupees per kWh",
			Buckets: []float64{4, 6, 8, 9, 10, 11, 12, 14, 16, 20},
		},
		[]string{"state"},
	)
)

func ObserveRequest(method, route, status string, d time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDurationSeconds.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveEstimate records one estimate. Non-finite rates are counted but
// not observed.
func ObserveEstimate(state, billingUnit, path string, effectiveRate float64) {
	BillEstimatesTotal.WithLabelValues(state, billingUnit, path).Inc()
	if !math.IsNaN(effectiveRate) && !math.IsInf(effectiveRate, 0) {
		EffectiveRate.WithLabelValues(state).Observe(effectiveRate)
	}
}

// ObserveLookup counts a schedule lookup that fell back to the default.
func ObserveLookup(matched bool) {
	if !matched {
		StateFallbacksTotal.Inc()
	}
}
