// Package ratelimit limits requests per client address with token buckets.
package ratelimit

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/kamilvitek/frix/internal/metrics"
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter manages one token bucket per client key
type Limiter struct {
	mu      sync.Mutex
	clients map[string]*client

	limit      rate.Limit
	burst      int
	maxClients int
	now        func() time.Time
}

// New creates a limiter allowing rps sustained requests per second per key,
// with bursts of up to burst requests. At most maxClients keys are tracked;
// a new key beyond that evicts the least recently seen one.
func New(rps float64, burst, maxClients int) *Limiter {
	return &Limiter{
		clients:    make(map[string]*client),
		limit:      rate.Limit(rps),
		burst:      burst,
		maxClients: maxClients,
		now:        time.Now,
	}
}

// Allow reports whether a request from key may proceed now
func (l *Limiter) Allow(key string) bool {
	now := l.now()

	l.mu.Lock()
	c, ok := l.clients[key]
	if !ok {
		if len(l.clients) >= l.maxClients {
			l.evictOldest()
		}
		c = &client{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = c
	}
	c.lastSeen = now
	l.mu.Unlock()

	return c.limiter.AllowN(now, 1)
}

// evictOldest drops the least recently seen client. Caller holds mu.
func (l *Limiter) evictOldest() {
	var (
		oldestKey  string
		oldestSeen time.Time
		found      bool
	)
	for key, c := range l.clients {
		if !found || c.lastSeen.Before(oldestSeen) {
			oldestKey, oldestSeen, found = key, c.lastSeen, true
		}
	}
	if found {
		delete(l.clients, oldestKey)
	}
}

// Len returns the number of tracked clients
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// Sweep forgets clients idle for longer than maxIdle and returns how many
// were removed.
func (l *Limiter) Sweep(maxIdle time.Duration) int {
	cutoff := l.now().Add(-maxIdle)

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, c := range l.clients {
		if c.lastSeen.Before(cutoff) {
			delete(l.clients, key)
			removed++
		}
	}
	return removed
}

// Run sweeps idle clients every interval until ctx is cancelled
func (l *Limiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Sweep(interval)
			metrics.RateLimitClients.Set(float64(l.Len()))
		}
	}
}

// Middleware rejects requests over the limit by calling onLimit instead of
// the next handler. Clients are keyed by the host part of RemoteAddr, which
// only reflects forwarding headers when RealIP runs first.
func (l *Limiter) Middleware(onLimit http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow(clientKey(r)) {
				onLimit(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
