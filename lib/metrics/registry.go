package metrics

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"

	"boscoin.io/herehere/lib/common"
)

type RegistryMetrics struct {
	PollsCreated   metrics.Counter
	FeesCollected  metrics.Counter
	FeesWithdrawn  metrics.Counter
	CreationPrice  metrics.Gauge
	CustodyBalance metrics.Gauge
}

func amountFloat(a common.Amount) float64 {
	f, _ := a.Decimal().Float64()
	return f
}

func (m *RegistryMetrics) AddPollCreated(registry string) {
	m.PollsCreated.With("registry", registry).Add(1)
}

func (m *RegistryMetrics) AddFee(registry string, fee common.Amount, custody common.Amount) {
	m.FeesCollected.With("registry", registry).Add(amountFloat(fee))
	m.CustodyBalance.With("registry", registry).Set(amountFloat(custody))
}

func (m *RegistryMetrics) AddWithdrawal(registry string, withdrawn common.Amount) {
	m.FeesWithdrawn.With("registry", registry).Add(amountFloat(withdrawn))
	m.CustodyBalance.With("registry", registry).Set(0)
}

func (m *RegistryMetrics) SetCreationPrice(registry string, price common.Amount) {
	m.CreationPrice.With("registry", registry).Set(amountFloat(price))
}

func PromRegistryMetrics() *RegistryMetrics {
	return &RegistryMetrics{
		PollsCreated: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: RegistrySubsystem,
			Name:      "polls_created_total",
			Help:      "Number of created polls.",
		}, []string{"registry"}),
		FeesCollected: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: RegistrySubsystem,
			Name:      "fees_collected",
			Help:      "Amount of fees deposited into custody.",
		}, []string{"registry"}),
		FeesWithdrawn: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: RegistrySubsystem,
			Name:      "fees_withdrawn",
			Help:      "Amount of fees withdrawn by the owner.",
		}, []string{"registry"}),
		CreationPrice: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: RegistrySubsystem,
			Name:      "creation_price",
			Help:      "Price of creating a poll.",
		}, []string{"registry"}),
		CustodyBalance: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: RegistrySubsystem,
			Name:      "custody_balance",
			Help:      "Balance of the custody.",
		}, []string{"registry"}),
	}
}

func NopRegistryMetrics() *RegistryMetrics {
	return &RegistryMetrics{
		PollsCreated:   discard.NewCounter(),
		FeesCollected:  discard.NewCounter(),
		FeesWithdrawn:  discard.NewCounter(),
		CreationPrice:  discard.NewGauge(),
		CustodyBalance: discard.NewGauge(),
	}
}
