package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestLimiter(cfg Config) (*Limiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	l := NewLimiter(cfg)
	l.now = clock.Now
	return l, clock
}

func TestNewLimiter_Defaults(t *testing.T) {
	l := NewLimiter(Config{})
	assert.Equal(t, DefaultRPS, l.cfg.RPS)
	assert.Equal(t, DefaultBurst, l.cfg.Burst)
	assert.Equal(t, DefaultIdleTime, l.cfg.IdleTime)
}

func TestAllow_BurstThenDeny(t *testing.T) {
	l, _ := newTestLimiter(Config{RPS: 1, Burst: 2})

	first := l.Allow("10.0.0.1")
	assert.True(t, first.Allowed)
	assert.Equal(t, 2, first.Limit)
	assert.Equal(t, 1, first.Remaining)

	second := l.Allow("10.0.0.1")
	assert.True(t, second.Allowed)
	assert.Equal(t, 0, second.Remaining)

	third := l.Allow("10.0.0.1")
	assert.False(t, third.Allowed)
	assert.Equal(t, time.Second, third.RetryAfter)
	assert.Equal(t, 0, third.Remaining)
}

func TestAllow_DeniedRequestConsumesNothing(t *testing.T) {
	l, clock := newTestLimiter(Config{RPS: 1, Burst: 1})

	require.True(t, l.Allow("a").Allowed)
	for range 3 {
		assert.False(t, l.Allow("a").Allowed)
	}

	clock.Advance(time.Second)
	assert.True(t, l.Allow("a").Allowed)
}

func TestAllow_ClientsAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(Config{RPS: 1, Burst: 1})

	assert.True(t, l.Allow("a").Allowed)
	assert.False(t, l.Allow("a").Allowed)
	assert.True(t, l.Allow("b").Allowed)
	assert.Equal(t, 2, l.Len())
}

func TestAllow_Disabled(t *testing.T) {
	l, _ := newTestLimiter(Config{RPS: 1, Burst: 1, Disabled: true})
	for range 10 {
		assert.True(t, l.Allow("a").Allowed)
	}
	assert.Equal(t, 0, l.Len())
}

func TestSweep_DropsIdleClients(t *testing.T) {
	l, clock := newTestLimiter(Config{IdleTime: time.Minute})

	l.Allow("old")
	clock.Advance(45 * time.Second)
	l.Allow("recent")
	clock.Advance(30 * time.Second)

	assert.Equal(t, 1, l.Sweep())
	assert.Equal(t, 1, l.Len())
}

func TestAllow_Concurrent(t *testing.T) {
	l, _ := newTestLimiter(Config{RPS: 1, Burst: 50})

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow("shared").Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, allowed)
}
