package metrics

import (
	"time"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

type LedgerMetrics struct {
	Transactions    metrics.Counter
	DurationSeconds metrics.Histogram
}

func (m *LedgerMetrics) ObserveTransaction(begin time.Time, committed bool) {
	status := "committed"
	if !committed {
		status = "discarded"
	}
	m.Transactions.With("status", status).Add(1)
	m.DurationSeconds.With("status", status).Observe(time.Since(begin).Seconds())
}

func PromLedgerMetrics() *LedgerMetrics {
	return &LedgerMetrics{
		Transactions: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: LedgerSubsystem,
			Name:      "transactions_total",
			Help:      "Number of executed ledger transactions.",
		}, []string{"status"}),
		DurationSeconds: prometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
			Namespace: Namespace,
			Subsystem: LedgerSubsystem,
			Name:      "transaction_duration_seconds",
			Help:      "Time executing one ledger transaction.",
		}, []string{"status"}),
	}
}

func NopLedgerMetrics() *LedgerMetrics {
	return &LedgerMetrics{
		Transactions:    discard.NewCounter(),
		DurationSeconds: discard.NewHistogram(),
	}
}
