package httpcache

import (
	"time"

	lru "github.com/hashicorp/golang-lru"
)

// MemCacheAdapter keeps the pages in a lru pool of the process; the expired
// pages are dropped when they are looked up.
type MemCacheAdapter struct {
	pool *lru.Cache
	now  func() time.Time
}

func NewMemCacheAdapter(size int) *MemCacheAdapter {
	pool, err := lru.New(size)
	if err != nil {
		panic(err)
	}

	return &MemCacheAdapter{pool: pool, now: time.Now}
}

func (a *MemCacheAdapter) Get(key string) (*Response, bool) {
	value, ok := a.pool.Get(key)
	if !ok {
		return nil, false
	}

	resp, ok := value.(*Response)
	if !ok {
		return nil, false
	}
	if resp.IsExpired(a.now()) {
		a.pool.Remove(key)
		return nil, false
	}
	return resp, true
}

func (a *MemCacheAdapter) Set(key string, resp *Response, expiration time.Time) {
	resp.Expiration = expiration
	a.pool.Add(key, resp)
}

func (a *MemCacheAdapter) Remove(key string) {
	a.pool.Remove(key)
}

func (a *MemCacheAdapter) Purge() {
	a.pool.Purge()
}

func (a *MemCacheAdapter) Len() int {
	return a.pool.Len()
}
