package httpapi

import (
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/arxos/cadtool/internal/logger"
)

// ipRateLimiter throttles requests per client IP (teacher's
// arx-backend/gateway/middleware/rate_limit.go keyed-limiter-map shape,
// simplified to a single IP key since cadtool has no per-user/per-service
// auth context to key on).
type ipRateLimiter struct {
	requestsPerSecond float64
	burst             int

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func newIPRateLimiter(requestsPerSecond float64, burst int) *ipRateLimiter {
	return &ipRateLimiter{
		requestsPerSecond: requestsPerSecond,
		burst:             burst,
		limiters:          make(map[string]*rate.Limiter),
	}
}

func (l *ipRateLimiter) limiterFor(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.limiters[key]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(l.requestsPerSecond), l.burst)
		l.limiters[key] = lim
	}
	return lim
}

// Middleware rejects requests once a client IP exceeds its budget.
func (l *ipRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientKey(r)
		lim := l.limiterFor(key)

		if !lim.Allow() {
			logger.Warn("rate limit exceeded: key=%s path=%s", key, r.URL.Path)
			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%g", l.requestsPerSecond))
			w.Header().Set("X-RateLimit-Remaining", "0")
			w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", time.Now().Add(time.Second).Unix()))
			respondError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%g", l.requestsPerSecond))
		next.ServeHTTP(w, r)
	})
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
