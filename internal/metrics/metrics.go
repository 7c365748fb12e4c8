package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector provides application metrics collection
type Collector struct {
	APIRequestsTotal   *prometheus.CounterVec
	APIRequestDuration *prometheus.HistogramVec

	UpstreamRequestsTotal   *prometheus.CounterVec
	UpstreamRequestDuration *prometheus.HistogramVec

	SuggestionResults prometheus.Histogram
	LookupsTotal      *prometheus.CounterVec
}

// NewCollector creates a new metrics collector
func NewCollector(namespace string) *Collector {
	return &Collector{
		APIRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_requests_total",
				Help:      "Total number of API requests by endpoint, method, and status",
			},
			[]string{"endpoint", "method", "status"},
		),

		APIRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "api_request_duration_seconds",
				Help:      "API request duration in seconds",
				Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
			},
			[]string{"endpoint"},
		),

		UpstreamRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upstream_requests_total",
				Help:      "Total number of upstream provider requests by provider and outcome",
			},
			[]string{"provider", "outcome"},
		),

		UpstreamRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "upstream_request_duration_seconds",
				Help:      "Upstream provider request duration in seconds",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
			},
			[]string{"provider"},
		),

		SuggestionResults: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "suggestion_results",
				Help:      "Number of suggestions returned per completed lookup",
				Buckets:   []float64{0, 1, 2, 3, 4, 5},
			},
		),

		LookupsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "weather_lookups_total",
				Help:      "Total number of weather lookups by source and outcome",
			},
			[]string{"source", "outcome"},
		),
	}
}

// ObserveUpstream records one upstream provider call
func (c *Collector) ObserveUpstream(provider string, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	c.UpstreamRequestsTotal.WithLabelValues(provider, outcome).Inc()
	c.UpstreamRequestDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())
}
