package httpcache

import (
	"time"

	redisCache "github.com/go-redis/cache"
	"github.com/go-redis/redis"
	"github.com/vmihailenco/msgpack"
)

// RedisKeyPrefix keeps the pages apart from the other keys of the shared
// redis servers.
const RedisKeyPrefix = "herehere:httpcache:"

// RedisCacheAdapter shares the pages between the nodes thru the ring of redis
// servers. The pages can not be purged, so they live until the expiration.
type RedisCacheAdapter struct {
	codec *redisCache.Codec
}

type RedisRingOptions redis.RingOptions

func NewRedisCacheAdapter(opt *RedisRingOptions) *RedisCacheAdapter {
	ropt := redis.RingOptions(*opt)

	return &RedisCacheAdapter{
		codec: &redisCache.Codec{
			Redis: redis.NewRing(&ropt),
			Marshal: func(v interface{}) ([]byte, error) {
				return msgpack.Marshal(v)
			},
			Unmarshal: func(b []byte, v interface{}) error {
				return msgpack.Unmarshal(b, v)
			},
		},
	}
}

func (a *RedisCacheAdapter) Get(key string) (*Response, bool) {
	var resp Response
	if err := a.codec.Get(RedisKeyPrefix+key, &resp); err != nil {
		if err != redisCache.ErrCacheMiss {
			log.Error("failed to get cached page", "key", key, "error", err)
		}
		return nil, false
	}
	return &resp, true
}

func (a *RedisCacheAdapter) Set(key string, resp *Response, expiration time.Time) {
	resp.Expiration = expiration

	var ttl time.Duration
	if !expiration.IsZero() {
		if ttl = time.Until(expiration); ttl <= 0 {
			return
		}
	}

	err := a.codec.Set(&redisCache.Item{
		Key:        RedisKeyPrefix + key,
		Object:     resp,
		Expiration: ttl,
	})
	if err != nil {
		log.Error("failed to cache page", "key", key, "error", err)
	}
}

func (a *RedisCacheAdapter) Remove(key string) {
	if err := a.codec.Delete(RedisKeyPrefix + key); err != nil && err != redisCache.ErrCacheMiss {
		log.Error("failed to remove cached page", "key", key, "error", err)
	}
}
