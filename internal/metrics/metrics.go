package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Searches counts country searches by outcome
	// (fresh, cached, stale, invalid, unknown, failed).
	Searches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smogwatch_searches_total",
		Help: "Total number of country searches by outcome",
	}, []string{"outcome"})

	// UpstreamDuration tracks upstream request latency per upstream
	UpstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "smogwatch_upstream_request_duration_seconds",
		Help:    "Duration of upstream API requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"upstream"})

	// UpstreamErrors tracks upstream errors per upstream
	UpstreamErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smogwatch_upstream_errors_total",
		Help: "Total number of failed upstream requests",
	}, []string{"upstream"})

	// CircuitBreakerState tracks the current state of circuit breakers
	// 0=closed, 1=open, 2=half-open
	CircuitBreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "smogwatch_circuit_breaker_state",
		Help: "Current state of circuit breaker (0=closed, 1=open, 2=half-open)",
	}, []string{"upstream"})

	// HealthCheckFailures tracks health check failures
	HealthCheckFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "smogwatch_health_check_failures_total",
		Help: "Total number of health check failures",
	})
)

// RecordSearch increments the search counter for an outcome.
func RecordSearch(outcome string) {
	Searches.WithLabelValues(outcome).Inc()
}

// ObserveUpstream records the duration of an upstream call and counts it as
// an error when err is non-nil.
func ObserveUpstream(upstream string, started time.Time, err error) {
	UpstreamDuration.WithLabelValues(upstream).Observe(time.Since(started).Seconds())
	if err != nil {
		UpstreamErrors.WithLabelValues(upstream).Inc()
	}
}

// SetCircuitBreakerState updates the circuit breaker state metric
// state should be one of: "CLOSED" (0), "OPEN" (1), "HALF-OPEN" (2)
func SetCircuitBreakerState(upstream, state string) {
	var value float64
	switch state {
	case "CLOSED":
		value = 0
	case "OPEN":
		value = 1
	case "HALF-OPEN":
		value = 2
	}
	CircuitBreakerState.WithLabelValues(upstream).Set(value)
}

// RecordHealthCheckFailure increments the health check failure counter
func RecordHealthCheckFailure() {
	HealthCheckFailures.Inc()
}
