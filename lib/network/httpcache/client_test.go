package httpcache

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"boscoin.io/herehere/lib/common"
	"boscoin.io/herehere/lib/errors"
)

func TestMiddleware(t *testing.T) {
	a := NewMemCacheAdapter(10)
	a.Set("http://foo?bar=1", &Response{
		Value:      []byte("value 1"),
		StatusCode: 200,
	}, time.Time{})

	c, err := NewClient(
		WithAdapter(a),
	)
	require.NoError(t, err)

	cnt := 0
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(fmt.Sprintf("new value:%v", cnt)))
	})

	handler := c.Middleware(testHandler)

	tests := []struct {
		name   string
		url    string
		method string
		body   string
		code   int
	}{
		{
			"return cached resp",
			"http://foo?bar=1",
			"GET",
			"value 1",
			200,
		},
		{
			"return nocached resp",
			"http://foo?bar=2",
			"GET",
			"new value:2",
			200,
		},
		{
			"return cached resp of the previous request",
			"http://foo?bar=2",
			"GET",
			"new value:2",
			200,
		},
		{
			"post is not cached",
			"http://foo?bar=2",
			"POST",
			"new value:4",
			200,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cnt++

			r, err := http.NewRequest(tt.method, tt.url, nil)
			require.NoError(t, err)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)

			require.Equal(t, tt.code, w.Code)
			require.Equal(t, tt.body, w.Body.String())
		})
	}
}

func TestMiddlewareExpiredAndErrors(t *testing.T) {
	a := NewMemCacheAdapter(10)
	a.Set("http://foo?bar=1", &Response{
		Value:      []byte("stale"),
		StatusCode: 200,
	}, time.Now().Add(-time.Second))

	c, err := NewClient(WithAdapter(a), WithExpire(time.Minute))
	require.NoError(t, err)

	failing := true
	handler := c.WrapHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("fresh"))
	})

	{ // errors are not cached
		r := httptest.NewRequest("GET", "http://foo?bar=2", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		require.Equal(t, http.StatusNotFound, w.Code)

		_, found := a.Get("http://foo?bar=2")
		require.False(t, found)
	}

	failing = false
	{ // expired page is made again
		r := httptest.NewRequest("GET", "http://foo?bar=1", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		require.Equal(t, "fresh", w.Body.String())

		cached, found := a.Get("http://foo?bar=1")
		require.True(t, found)
		require.False(t, cached.IsExpired(time.Now()))
	}
}

func TestNewAdapter(t *testing.T) {
	conf := common.NewTestConfig()

	a, err := NewAdapter(conf)
	require.NoError(t, err)
	require.IsType(t, &MemCacheAdapter{}, a)

	conf.HTTPCacheAdapter = common.HTTPCacheRedisAdapterName
	_, err = NewAdapter(conf)
	require.Equal(t, errors.HTTPCacheAdapterUnknown.Code, errors.Code(err))

	conf.HTTPCacheAdapter = "memcached"
	_, err = NewAdapter(conf)
	require.Equal(t, errors.HTTPCacheAdapterUnknown.Code, errors.Code(err))

	conf.HTTPCacheAdapter = ""
	w, err := NewClientFromConfig(conf)
	require.NoError(t, err)
	require.IsType(t, &NopClient{}, w)
}

func TestClientNotCacheable(t *testing.T) {
	a := NewMemCacheAdapter(10)
	c, err := NewClient(WithAdapter(a), WithExpire(time.Minute))
	require.NoError(t, err)

	handler := c.WrapHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("store") == "no" {
			w.Header().Set("Cache-Control", "no-store")
		}
		w.Write([]byte("page"))
	})

	{ // event stream
		r := httptest.NewRequest("GET", "http://foo/polls/a", nil)
		r.Header.Set("Accept", "text/event-stream")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		require.Equal(t, "page", w.Body.String())

		_, found := a.Get("http://foo/polls/a")
		require.False(t, found)
	}

	{ // no-store
		r := httptest.NewRequest("GET", "http://foo/polls/a?store=no", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		require.Equal(t, "page", w.Body.String())

		_, found := a.Get("http://foo/polls/a?store=no")
		require.False(t, found)
	}
}

func TestClientPurge(t *testing.T) {
	a := NewMemCacheAdapter(10)
	c, err := NewClient(WithAdapter(a))
	require.NoError(t, err)

	handler := c.WrapHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("page"))
	})

	r := httptest.NewRequest("GET", "http://foo/registries/a", nil)
	handler.ServeHTTP(httptest.NewRecorder(), r)
	_, found := a.Get("http://foo/registries/a")
	require.True(t, found)

	c.Purge()
	_, found = a.Get("http://foo/registries/a")
	require.False(t, found)

	// nothing to purge with the nop client
	NewNopClient().Purge()
}

func TestClientConcurrentMisses(t *testing.T) {
	c, err := NewClient(WithAdapter(NewMemCacheAdapter(10)), WithExpire(time.Minute))
	require.NoError(t, err)

	var rendered int32
	release := make(chan struct{})
	handler := c.WrapHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&rendered, 1)
		<-release
		w.Write([]byte("page"))
	})

	var wg sync.WaitGroup
	bodies := make([]string, 5)
	for i := range bodies {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest("GET", "http://foo/polls/a", nil))
			bodies[i] = w.Body.String()
		}(i)
	}

	time.Sleep(200 * time.Millisecond)
	close(release)
	wg.Wait()

	require.Equal(t, int32(1), atomic.LoadInt32(&rendered))
	for _, body := range bodies {
		require.Equal(t, "page", body)
	}
}
