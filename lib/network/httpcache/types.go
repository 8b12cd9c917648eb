package httpcache

import (
	"net/http"
	"time"
)

type Adapter interface {
	Get(key string) (*Response, bool)
	Set(key string, response *Response, expiration time.Time)
	Remove(key string)
}

type Purger interface {
	Purge()
}

// Response is a cached page; a zero `Expiration` never expires.
type Response struct {
	Value      []byte
	StatusCode int
	Header     http.Header
	Expiration time.Time
}

func (r *Response) IsExpired(now time.Time) bool {
	return !r.Expiration.IsZero() && !r.Expiration.After(now)
}
