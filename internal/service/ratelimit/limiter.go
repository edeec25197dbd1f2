package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type entry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// Limiter is a per-key token bucket. Idle keys are dropped after idleTTL.
type Limiter struct {
	mu      sync.Mutex
	m       map[string]*entry
	rate    rate.Limit
	burst   int
	idleTTL time.Duration
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

// New allows requests per window for each key, with bursts up to requests.
func New(requests int, window time.Duration) *Limiter {
	if requests <= 0 {
		requests = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &Limiter{
		m:       make(map[string]*entry),
		rate:    rate.Every(window / time.Duration(requests)),
		burst:   requests,
		idleTTL: time.Hour,
		now:     time.Now,
		stop:    make(chan struct{}),
	}
}

// Allow reports whether one request for key may proceed now.
func (l *Limiter) Allow(key string) bool {
	now := l.now()
	l.mu.Lock()
	e, ok := l.m[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.m[key] = e
	}
	e.lastAccess = now
	lim := e.limiter
	l.mu.Unlock()

	return lim.AllowN(now, 1)
}

// StartCleanup evicts idle keys every interval until Stop.
func (l *Limiter) StartCleanup(interval time.Duration) {
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				l.cleanup()
			case <-l.stop:
				return
			}
		}
	}()
}

func (l *Limiter) cleanup() {
	threshold := l.now().Add(-l.idleTTL)
	l.mu.Lock()
	defer l.mu.Unlock()
	for k, e := range l.m {
		if e.lastAccess.Before(threshold) {
			delete(l.m, k)
		}
	}
}

// Stop ends the cleanup loop.
func (l *Limiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}
