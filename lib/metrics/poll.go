package metrics

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

type PollMetrics struct {
	Votes         metrics.Counter
	RejectedVotes metrics.Counter
}

func (m *PollMetrics) AddVote(choice bool) {
	c := ChoiceNo
	if choice {
		c = ChoiceAye
	}
	m.Votes.With("choice", c).Add(1)
}

func (m *PollMetrics) AddRejectedVote(reason string) {
	m.RejectedVotes.With("reason", reason).Add(1)
}

func PromPollMetrics() *PollMetrics {
	return &PollMetrics{
		Votes: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: PollSubsystem,
			Name:      "votes_total",
			Help:      "Number of recorded votes.",
		}, []string{"choice"}),
		RejectedVotes: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: PollSubsystem,
			Name:      "rejected_votes_total",
			Help:      "Number of rejected votes.",
		}, []string{"reason"}),
	}
}

func NopPollMetrics() *PollMetrics {
	return &PollMetrics{
		Votes:         discard.NewCounter(),
		RejectedVotes: discard.NewCounter(),
	}
}
