package http

import (
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"github.com/ollapdf/ollapdf"
)

// clientLimiter provides per-client rate limiting using token buckets.
// It creates a separate rate limiter for each client IP, so one chatty
// client cannot starve the others of queue slots.
type clientLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
	burst    int
}

// newClientLimiter creates a new clientLimiter with the specified requests
// per second limit and burst per client.
func newClientLimiter(rps float64, burst int) *clientLimiter {
	if burst < 1 {
		burst = 1
	}
	return &clientLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
		burst:    burst,
	}
}

// allow reports whether a request from the client may proceed now.
func (l *clientLimiter) allow(client string) bool {
	l.mu.Lock()
	limiter, ok := l.limiters[client]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(l.rps), l.burst)
		l.limiters[client] = limiter
	}
	l.mu.Unlock()

	return limiter.Allow()
}

// middleware rejects over-limit requests with 429 before they reach the
// queue's own admission control.
func (l *clientLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			client = r.RemoteAddr
		}

		if !l.allow(client) {
			writeError(w, ollapdf.Errorf(ollapdf.EQUEUEFULL, "rate limit exceeded"))
			return
		}

		next.ServeHTTP(w, r)
	})
}
