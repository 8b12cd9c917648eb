package common

// Config carries the network parameters shared by the ledger, the api and
// the transaction executor.
type Config struct {
	NetworkID []byte

	OpsLimit int

	// SettlementCurrency is the only currency accepted for creation fees and
	// vote tolls.
	SettlementCurrency string

	// CreationPrice and VotePrice are the initial prices of a newly
	// instantiated registry.
	CreationPrice Amount
	VotePrice     Amount

	// Those fields are not ledger-related
	RateLimitRuleAPI RateLimitRule

	HTTPCacheAdapter    string
	HTTPCachePoolSize   int
	HTTPCacheRedisAddrs map[string]string
}

func NewConfig(networkID []byte) Config {
	p := Config{}

	p.NetworkID = networkID
	p.OpsLimit = DefaultOperationsInTransactionLimit

	p.SettlementCurrency = SettlementCurrency
	p.CreationPrice = DefaultCreationPrice
	p.VotePrice = DefaultVotePrice

	p.RateLimitRuleAPI = NewRateLimitRule(RateLimitAPI)

	p.HTTPCachePoolSize = HTTPCachePoolSize

	return p
}
