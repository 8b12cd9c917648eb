package httpcache

import (
	"net/http"

	"boscoin.io/herehere/lib/common"
	"boscoin.io/herehere/lib/errors"
)

func NewAdapter(cfg common.Config) (Adapter, error) {
	switch cfg.HTTPCacheAdapter {
	case common.HTTPCacheMemoryAdapterName:
		return NewMemCacheAdapter(cfg.HTTPCachePoolSize), nil
	case common.HTTPCacheRedisAdapterName:
		if len(cfg.HTTPCacheRedisAddrs) < 1 {
			return nil, errors.HTTPCacheAdapterUnknown.Clone().SetData("reason", "redis addresses are empty")
		}
		return NewRedisCacheAdapter(&RedisRingOptions{Addrs: cfg.HTTPCacheRedisAddrs}), nil
	default:
		return nil, errors.HTTPCacheAdapterUnknown.Clone().SetData("adapter", cfg.HTTPCacheAdapter)
	}
}

// NewClientFromConfig returns the cache of the api; without an adapter
// nothing is cached.
func NewClientFromConfig(cfg common.Config) (Wrapper, error) {
	if len(cfg.HTTPCacheAdapter) < 1 {
		return NewNopClient(), nil
	}

	adapter, err := NewAdapter(cfg)
	if err != nil {
		return nil, err
	}

	return NewClient(
		WithAdapter(adapter),
		WithExpire(common.DefaultHTTPCacheExpire),
		// the unknown components appear once they are created
		WithStatusCode(http.StatusNotFound, common.DefaultHTTPCacheExpire),
		WithLogger(log),
	)
}
