package metrics

import (
	"runtime"

	"boscoin.io/herehere/lib/version"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"

	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

var Version metrics.Gauge = discard.NewGauge()

func PromVersion() metrics.Gauge {
	return prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "version",
		Help:      "Build information of the node; always 1.",
	}, []string{"version", "git_commit", "git_state", "build_date", "go_version"})
}

func SetVersion() {
	Version.With(
		"version", version.Version,
		"git_commit", version.GitCommit,
		"git_state", version.GitState,
		"build_date", version.BuildDate,
		"go_version", runtime.Version()).Set(1)
}
