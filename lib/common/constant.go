package common

import (
	"time"

	"github.com/ulule/limiter"
)

const (
	// SettlementCurrency is the resource address of the native settlement
	// token, the only currency the registry accepts for fees.
	SettlementCurrency string = "XRD"

	// DefaultOperationsInTransactionLimit is the maximum number of operations
	// in one transaction.
	DefaultOperationsInTransactionLimit int = 100

	// MaxTransactionBodySize limits the body of a posted transaction.
	MaxTransactionBodySize int64 = 1 << 20

	// HTTPCacheMemoryAdapterName and HTTPCacheRedisAdapterName select the
	// response cache backend of the api.
	HTTPCacheMemoryAdapterName = "mem"
	HTTPCacheRedisAdapterName  = "redis"
	HTTPCachePoolSize          = 10000

	DefaultHTTPCacheExpire = 5 * time.Second
)

var (
	// DefaultCreationPrice is the price of creating one poll, 69 coins.
	DefaultCreationPrice Amount = MustAmountFromDecimalString("69")

	// DefaultVotePrice is the toll charged for every vote, 6.9 coins.
	DefaultVotePrice Amount = MustAmountFromDecimalString("6.9")

	RateLimitAPI limiter.Rate = limiter.Rate{
		Period: 1 * time.Second,
		Limit:  100,
	}
)
