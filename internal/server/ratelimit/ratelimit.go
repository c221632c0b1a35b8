// Package ratelimit throttles API clients with token buckets shared per endpoint tier.
package ratelimit

import (
	"sync"
	"time"
)

// IdleTTL is how long an unused bucket survives the periodic sweep
const IdleTTL = time.Hour

// bucket is a token bucket refilled continuously at rate tokens per second
type bucket struct {
	mu       sync.Mutex
	capacity float64
	rate     float64
	tokens   float64
	last     time.Time
	seen     time.Time
}

func newBucket(capacity int, rate float64, now time.Time) *bucket {
	return &bucket{
		capacity: float64(capacity),
		rate:     rate,
		tokens:   float64(capacity),
		last:     now,
		seen:     now,
	}
}

// take refills the bucket up to now and consumes one token if available.
func (b *bucket) take(now time.Time) (ok bool, remaining int, reset time.Time, retryAfter time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if elapsed := now.Sub(b.last); elapsed > 0 {
		b.tokens = min(b.capacity, b.tokens+elapsed.Seconds()*b.rate)
		b.last = now
	}
	b.seen = now

	if b.tokens >= 1 {
		b.tokens--
		ok = true
	} else {
		retryAfter = secondsToDuration((1 - b.tokens) / b.rate)
	}

	reset = now
	if b.tokens < b.capacity {
		reset = now.Add(secondsToDuration((b.capacity - b.tokens) / b.rate))
	}
	return ok, int(b.tokens), reset, retryAfter
}

func (b *bucket) idleSince(cutoff time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.seen.Before(cutoff)
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Info describes the limit applied to one request.
type Info struct {
	Allowed    bool
	Tier       string
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	Tiers           []Tier
}

// Limiter tracks one bucket per client and tier.
type Limiter struct {
	config  *Config
	now     func() time.Time
	mu      sync.Mutex
	buckets map[string]*bucket

	stop     chan struct{}
	stopOnce sync.Once
}

// Option configures a Limiter
type Option func(*Limiter)

// WithClock sets the clock used for refills.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		l.now = now
	}
}

// NewLimiter creates a limiter. A nil config enables a default of 1000 requests a minute.
func NewLimiter(config *Config, opts ...Option) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
		}
	}

	l := &Limiter{
		config:  config,
		now:     time.Now,
		buckets: make(map[string]*bucket),
		stop:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}

	if config.Enabled && config.CleanupInterval > 0 {
		go l.sweepLoop(config.CleanupInterval)
	}
	return l
}

// Allow reports whether clientID may call method on path, consuming a token when it may.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{}
	}

	tier := MatchTier(path, method, l.config.Tiers)
	if tier == nil {
		tier = &Tier{
			Name:   "default",
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
		}
	}
	if tier.Limit <= 0 || tier.Window <= 0 {
		return true, Info{Allowed: true, Tier: tier.Name}
	}

	now := l.now()
	b := l.bucketFor(clientID+"|"+tier.Name, *tier, now)
	ok, remaining, reset, retryAfter := b.take(now)

	return ok, Info{
		Allowed:    ok,
		Tier:       tier.Name,
		Limit:      tier.Limit,
		Remaining:  remaining,
		ResetTime:  reset,
		RetryAfter: retryAfter,
	}
}

func (l *Limiter) bucketFor(key string, tier Tier, now time.Time) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	if b, ok := l.buckets[key]; ok {
		return b
	}
	capacity := tier.Burst
	if capacity <= 0 {
		capacity = tier.Limit
	}
	b := newBucket(capacity, float64(tier.Limit)/tier.Window.Seconds(), now)
	l.buckets[key] = b
	return b
}

// Sweep drops buckets unused for longer than idle and returns how many were dropped.
func (l *Limiter) Sweep(idle time.Duration) int {
	cutoff := l.now().Add(-idle)

	l.mu.Lock()
	defer l.mu.Unlock()

	dropped := 0
	for key, b := range l.buckets {
		if b.idleSince(cutoff) {
			delete(l.buckets, key)
			dropped++
		}
	}
	return dropped
}

// Len returns the number of live buckets.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func (l *Limiter) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.Sweep(IdleTTL)
		case <-l.stop:
			return
		}
	}
}

// Stop ends the sweep goroutine. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}
