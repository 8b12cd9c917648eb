package network

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/ulule/limiter"

	"boscoin.io/herehere/lib/common"
)

func TestNewServerConfigFromString(t *testing.T) {
	{
		config, err := NewServerConfigFromString("http://0.0.0.0:12345?ReadTimeout=5s&IdleTimeout=1m")
		require.NoError(t, err)
		require.Equal(t, "0.0.0.0:12345", config.Addr)
		require.Equal(t, 5*time.Second, config.ReadTimeout)
		require.Equal(t, time.Minute, config.IdleTimeout)
		require.Equal(t, time.Duration(0), config.WriteTimeout)
		require.False(t, config.IsHTTPS())
	}

	{ // https without certificates
		_, err := NewServerConfigFromString("https://0.0.0.0:12345")
		require.Error(t, err)
	}

	{
		config, err := NewServerConfigFromString("https://0.0.0.0:12345?TLSCertFile=a.crt&TLSKeyFile=a.key")
		require.NoError(t, err)
		require.True(t, config.IsHTTPS())
	}

	{ // negative timeout
		_, err := NewServerConfigFromString("http://0.0.0.0:12345?ReadTimeout=-5s")
		require.Error(t, err)
	}

	{ // unknown scheme
		_, err := NewServerConfigFromString("ftp://0.0.0.0:12345")
		require.Error(t, err)
	}
}

func newTestServer(t *testing.T) *Server {
	config, err := NewServerConfigFromString("http://127.0.0.1:0")
	require.NoError(t, err)

	return NewServer(config)
}

func TestServerRouters(t *testing.T) {
	s := newTestServer(t)

	_, err := s.AddHandler(RouterNameAPI, "/v1/hello", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hello"))
	})
	require.NoError(t, err)

	_, err = s.AddHandler("unknown", "/hello", nil)
	require.Error(t, err)

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/hello")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, resp.Header.Get(HeaderRequestID))

	{ // the given request id is kept
		req, _ := http.NewRequest("GET", ts.URL+"/api/v1/hello", nil)
		req.Header.Set(HeaderRequestID, "findme")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, "findme", resp.Header.Get(HeaderRequestID))
	}
}

func TestRecoverMiddleware(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.AddMiddleware("", RecoverMiddleware(log)))

	s.AddHandler(RouterNameAPI, "/v1/panic", func(w http.ResponseWriter, r *http.Request) {
		panic("showstopper")
	})

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/panic")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.Equal(t, "application/problem+json", resp.Header.Get("Content-Type"))
}

func TestRateLimitMiddleware(t *testing.T) {
	rule := common.NewRateLimitRule(limiter.Rate{Period: time.Minute, Limit: 2})

	s := newTestServer(t)
	require.NoError(t, s.AddMiddleware(RouterNameAPI, RateLimitMiddleware(log, rule)))
	s.AddHandler(RouterNameAPI, "/v1/hello", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hello"))
	})

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	for i := 0; i < 2; i++ {
		resp, err := http.Get(ts.URL + "/api/v1/hello")
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "2", resp.Header.Get("X-RateLimit-Limit"))
	}

	resp, err := http.Get(ts.URL + "/api/v1/hello")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestRateLimitMiddlewareUnlimited(t *testing.T) {
	rule := common.NewRateLimitRule(limiter.Rate{Period: time.Minute, Limit: 1})
	rule.ByIPAddress["127.0.0.1"] = limiter.Rate{}

	s := newTestServer(t)
	require.NoError(t, s.AddMiddleware(RouterNameAPI, RateLimitMiddleware(log, rule)))
	s.AddHandler(RouterNameAPI, "/v1/hello", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hello"))
	})

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	for i := 0; i < 3; i++ {
		resp, err := http.Get(ts.URL + "/api/v1/hello")
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
}
