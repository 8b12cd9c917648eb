package network

import (
	"fmt"
	"net"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	logging "github.com/inconshreveable/log15"
	"github.com/ulule/limiter"
	"github.com/ulule/limiter/drivers/store/memory"

	"boscoin.io/herehere/lib/common"
	"boscoin.io/herehere/lib/metrics"
	"boscoin.io/herehere/lib/network/httputils"
)

func RecoverMiddleware(logger logging.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if r := recover(); r != nil {
					err, ok := r.(error)
					if !ok {
						err = fmt.Errorf("panic: %v", r)
					}
					httputils.WriteJSONError(w, err)
					logger.Error("recover an panic", "err", err, "stack", string(debug.Stack()))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimitMiddleware limits the requests by the remote ip address. A rate
// of zero limit is unlimited.
func RateLimitMiddleware(logger logging.Logger, rule common.RateLimitRule) mux.MiddlewareFunc {
	store := memory.NewStore()

	newLimiter := func(rate limiter.Rate) *limiter.Limiter {
		if rate.Limit < 1 {
			return nil
		}
		return limiter.New(store, rate)
	}

	defaultLimiter := newLimiter(rule.Default)
	byIPAddress := map[string]*limiter.Limiter{}
	for ip, rate := range rule.ByIPAddress {
		byIPAddress[ip] = newLimiter(rate)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := remoteIP(r)

			lmt, found := byIPAddress[ip]
			if !found {
				lmt = defaultLimiter
			}
			if lmt == nil {
				next.ServeHTTP(w, r)
				return
			}

			context, err := lmt.Get(r.Context(), ip)
			if err != nil {
				logger.Error("failed to get rate limit", "ip", ip, "error", err)
				httputils.WriteJSONError(w, err)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(context.Limit, 10))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(context.Remaining, 10))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(context.Reset, 10))

			if context.Reached {
				logger.Debug("rate limit reached", "ip", ip, "limit", context.Limit)
				httputils.MustWriteJSON(w, http.StatusTooManyRequests, httputils.NewStatusProblem(http.StatusTooManyRequests))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// MetricsMiddleware counts the requests by the route template.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		begin := time.Now()

		endpoint := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				endpoint = tpl
			}
		}

		writer := &HTTP2ResponseLog15Writer{w: w}
		next.ServeHTTP(writer, r)

		status := writer.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.API.ObserveRequest(endpoint, r.Method, status, begin)
	})
}
