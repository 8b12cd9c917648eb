package metrics

var (
	Registry = NopRegistryMetrics()
	Poll     = NopPollMetrics()
	Ledger   = NopLedgerMetrics()
	API      = NopAPIMetrics()
)
