package metrics

import (
	"strconv"
	"time"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

type APIMetrics struct {
	RequestsTotal          metrics.Counter
	RequestErrorsTotal     metrics.Counter
	RequestDurationSeconds metrics.Histogram

	// StreamsOpen counts the event streams of the polls being watched.
	StreamsOpen metrics.Gauge
}

// ObserveRequest is called once the response was written.
func (m *APIMetrics) ObserveRequest(endpoint, method string, status int, begin time.Time) {
	labels := []string{"endpoint", endpoint, "method", method, "status", strconv.Itoa(status)}

	m.RequestsTotal.With(labels...).Add(1)
	if status >= 400 {
		m.RequestErrorsTotal.With(labels...).Add(1)
	}
	m.RequestDurationSeconds.With(labels...).Observe(time.Since(begin).Seconds())
}

func PromAPIMetrics() *APIMetrics {
	labels := []string{"endpoint", "method", "status"}

	return &APIMetrics{
		RequestsTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: APISubsystem,
			Name:      "requests_total",
			Help:      "Total number of requests.",
		}, labels),
		RequestErrorsTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: APISubsystem,
			Name:      "request_errors_total",
			Help:      "Total number of requests answered with 4xx or 5xx.",
		}, labels),
		RequestDurationSeconds: prometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
			Namespace: Namespace,
			Subsystem: APISubsystem,
			Name:      "request_duration_seconds",
			Help:      "Time to answer the request.",
		}, labels),
		StreamsOpen: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: APISubsystem,
			Name:      "streams_open",
			Help:      "Number of the open poll streams.",
		}, []string{}),
	}
}

func NopAPIMetrics() *APIMetrics {
	return &APIMetrics{
		RequestsTotal:          discard.NewCounter(),
		RequestErrorsTotal:     discard.NewCounter(),
		RequestDurationSeconds: discard.NewHistogram(),
		StreamsOpen:            discard.NewGauge(),
	}
}
