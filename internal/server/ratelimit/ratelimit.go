// Package ratelimit provides per-client request rate limiting backed by
// token buckets from golang.org/x/time/rate.
package ratelimit

import (
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Defaults used when a Config field is zero.
const (
	DefaultRPS      = 1.0
	DefaultBurst    = 5
	DefaultIdleTime = 10 * time.Minute
)

// Config holds rate limiting configuration.
type Config struct {
	// RPS is the steady refill rate per client. Zero uses DefaultRPS.
	RPS float64
	// Burst is the bucket capacity per client. Zero uses DefaultBurst.
	Burst int
	// IdleTime is how long an unused bucket is kept before Sweep drops it.
	IdleTime time.Duration
	// Disabled lets every request through.
	Disabled bool
}

// Info describes the outcome of one Allow call.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter manages one token bucket per client ID.
type Limiter struct {
	mu      sync.Mutex
	clients map[string]*client
	cfg     Config
	now     func() time.Time
}

// NewLimiter creates a limiter, filling zero config fields with defaults.
func NewLimiter(cfg Config) *Limiter {
	if cfg.RPS <= 0 {
		cfg.RPS = DefaultRPS
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultBurst
	}
	if cfg.IdleTime <= 0 {
		cfg.IdleTime = DefaultIdleTime
	}
	return &Limiter{
		clients: make(map[string]*client),
		cfg:     cfg,
		now:     time.Now,
	}
}

// Allow takes one token from the client's bucket. A denied request
// consumes nothing and reports how long to wait before retrying.
func (l *Limiter) Allow(clientID string) Info {
	if l.cfg.Disabled {
		return Info{Allowed: true}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	c, ok := l.clients[clientID]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rate.Limit(l.cfg.RPS), l.cfg.Burst)}
		l.clients[clientID] = c
	}
	c.lastSeen = now

	info := Info{Limit: l.cfg.Burst}
	r := c.limiter.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		info.RetryAfter = delay
	} else {
		info.Allowed = true
	}
	info.Remaining = max(0, int(math.Floor(c.limiter.TokensAt(now))))
	return info
}

// Sweep drops buckets idle for longer than the configured idle time and
// reports how many were removed.
func (l *Limiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for id, c := range l.clients {
		if now.Sub(c.lastSeen) > l.cfg.IdleTime {
			delete(l.clients, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked clients.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}
