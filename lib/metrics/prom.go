package metrics

func InitPrometheusMetrics() {
	Version = PromVersion()
	Registry = PromRegistryMetrics()
	Poll = PromPollMetrics()
	Ledger = PromLedgerMetrics()
	API = PromAPIMetrics()
}
