package httpcache

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"time"

	logging "github.com/inconshreveable/log15"
	"golang.org/x/sync/singleflight"

	"boscoin.io/herehere/lib/common"
)

// Client caches the responses of GET requests by the url; the query
// parameters are sorted, so the order of them does not matter.
type Client struct {
	adapter     Adapter
	ttl         time.Duration
	methods     map[string]bool
	statusCodes map[int]time.Duration
	logger      logging.Logger
	group       singleflight.Group
}

type ClientOption func(c *Client) error

func NewClient(opts ...ClientOption) (*Client, error) {
	c := &Client{
		methods:     map[string]bool{"GET": true},
		statusCodes: map[int]time.Duration{},
		ttl:         time.Duration(0),
		logger:      common.NopLogger(),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.adapter == nil {
		return nil, errors.New("cache client adapter is nil")
	}

	return c, nil
}

func WithAdapter(a Adapter) ClientOption {
	return func(c *Client) error {
		c.adapter = a
		return nil
	}
}

func WithExpire(ttl time.Duration) ClientOption {
	return func(c *Client) error {
		c.ttl = ttl
		return nil
	}
}

func WithStatusCode(code int, ttl time.Duration) ClientOption {
	return func(c *Client) error {
		c.statusCodes[code] = ttl
		return nil
	}
}

func WithLogger(logger logging.Logger) ClientOption {
	return func(c *Client) error {
		c.logger = logger
		return nil
	}
}

func (c *Client) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ok := c.handleCache(next, w, r); !ok {
			next.ServeHTTP(w, r)
		}
	})
}

func (c *Client) WrapHandlerFunc(handlerFunc http.HandlerFunc) http.HandlerFunc {
	return c.Middleware(handlerFunc).ServeHTTP
}

// Purge drops every cached page. The adapters which can not enumerate their
// pages, like redis, rely on the expiration.
func (c *Client) Purge() {
	if p, ok := c.adapter.(Purger); ok {
		p.Purge()
		c.logger.Debug("cache purged")
	}
}

// isCacheable refuses the streams; the event stream never ends, so it can
// not be buffered.
func (c *Client) isCacheable(r *http.Request) bool {
	if !c.methods[r.Method] {
		return false
	}

	return !strings.Contains(r.Header.Get("Accept"), "text/event-stream")
}

func (c *Client) handleCache(next http.Handler, w http.ResponseWriter, r *http.Request) bool {
	if !c.isCacheable(r) {
		c.logger.Debug("page not cacheable", "url", r.URL.String(), "method", r.Method)
		return false
	}
	sortURLParams(r.URL)
	key := r.URL.String()
	if resp, ok := c.adapter.Get(key); ok {
		if !resp.IsExpired(time.Now()) {
			w.Header().Set("X-Cache", "HIT")
			writeResponse(w, resp)
			c.logger.Debug("return cache", "url", r.URL.String())
			return true
		}
		c.adapter.Remove(key)
	}

	// the concurrent misses of the same page wait for the first one
	v, _, shared := c.group.Do(key, func() (interface{}, error) {
		return c.render(next, r, key), nil
	})
	if shared {
		c.logger.Debug("page shared", "url", r.URL.String())
	}
	writeResponse(w, v.(*Response))
	return true
}

func (c *Client) render(next http.Handler, r *http.Request, key string) *Response {
	rec := httptest.NewRecorder()
	next.ServeHTTP(rec, r)

	result := rec.Result()
	resp := &Response{
		Value:      rec.Body.Bytes(),
		StatusCode: result.StatusCode,
		Header:     result.Header,
	}

	expiration, caching := c.cachingExpiration(resp.StatusCode)
	if strings.Contains(result.Header.Get("Cache-Control"), "no-store") {
		caching = false
	}
	if caching {
		c.adapter.Set(key, resp, expiration)
		c.logger.Debug("page cached", "url", r.URL.String(), "status", resp.StatusCode, "expiration", expiration)
	}

	return resp
}

func writeResponse(w http.ResponseWriter, resp *Response) {
	for k, v := range resp.Header {
		w.Header().Set(k, strings.Join(v, ","))
	}
	w.WriteHeader(resp.StatusCode)
	w.Write(resp.Value)
}

func (c *Client) cachingExpiration(code int) (time.Time, bool) {
	if ttl, ok := c.statusCodes[code]; ok {
		return expiration(ttl), true
	} else if code < 400 {
		return expiration(c.ttl), true
	}
	return time.Time{}, false
}

func expiration(ttl time.Duration) time.Time {
	if ttl == 0 {
		return time.Time{}
	}
	return time.Now().Add(ttl)
}

func sortURLParams(u *url.URL) {
	params := u.Query()
	for _, p := range params {
		sort.Slice(p, func(i, j int) bool {
			return p[i] < p[j]
		})
	}
	u.RawQuery = params.Encode()
}
