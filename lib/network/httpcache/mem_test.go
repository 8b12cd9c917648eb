package httpcache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var _ Adapter = (*MemCacheAdapter)(nil)
var _ Adapter = (*RedisCacheAdapter)(nil)
var _ Purger = (*MemCacheAdapter)(nil)

func TestMemCacheAdapter(t *testing.T) {
	now := time.Now()

	a := NewMemCacheAdapter(1)
	a.now = func() time.Time { return now }

	resp := &Response{Value: []byte("hello"), StatusCode: 200}
	a.Set("key", resp, now.Add(time.Second))

	cached, ok := a.Get("key")
	require.True(t, ok)
	require.Equal(t, resp, cached)

	// the pool holds one page
	a.Set("another", &Response{Value: []byte("another")}, time.Time{})
	_, ok = a.Get("key")
	require.False(t, ok)
	require.Equal(t, 1, a.Len())

	a.Remove("another")
	_, ok = a.Get("another")
	require.False(t, ok)
	require.Equal(t, 0, a.Len())
}

func TestMemCacheAdapterExpired(t *testing.T) {
	now := time.Now()

	a := NewMemCacheAdapter(10)
	a.now = func() time.Time { return now }

	a.Set("key", &Response{Value: []byte("hello")}, now.Add(time.Second))
	a.Set("forever", &Response{Value: []byte("hello")}, time.Time{})

	now = now.Add(time.Second)
	_, ok := a.Get("key")
	require.False(t, ok)
	require.Equal(t, 1, a.Len())

	_, ok = a.Get("forever")
	require.True(t, ok)

	a.Purge()
	require.Equal(t, 0, a.Len())
}
