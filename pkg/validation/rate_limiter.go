package validation

import (
	"net"
	"sync"
	"time"
)

// RateLimiter is a token bucket per remote host. Each host may open
// maxRequests connections per window; tokens refill continuously.
type RateLimiter struct {
	maxRequests int
	window      time.Duration
	clients     map[string]*clientLimiter
	mu          sync.Mutex
	cleanupTick *time.Ticker
	done        chan struct{}
	closeOnce   sync.Once
	now         func() time.Time
}

// clientLimiter is the bucket of one host.
type clientLimiter struct {
	tokens     float64
	lastRefill time.Time
}

// NewRateLimiter creates a limiter and starts its cleanup loop.
func NewRateLimiter(maxRequests int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		maxRequests: maxRequests,
		window:      window,
		clients:     make(map[string]*clientLimiter),
		done:        make(chan struct{}),
		now:         time.Now,
	}

	rl.cleanupTick = time.NewTicker(window)
	go rl.cleanup()

	return rl
}

// Allow reports whether addr may connect now and takes a token if so.
// Addresses with a port are limited by host.
func (rl *RateLimiter) Allow(addr string) bool {
	host := HostOf(addr)
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, ok := rl.clients[host]
	if !ok {
		limiter = &clientLimiter{tokens: float64(rl.maxRequests), lastRefill: now}
		rl.clients[host] = limiter
	}

	if elapsed := now.Sub(limiter.lastRefill); elapsed > 0 {
		refill := float64(rl.maxRequests) * float64(elapsed) / float64(rl.window)
		limiter.tokens = min(limiter.tokens+refill, float64(rl.maxRequests))
		limiter.lastRefill = now
	}

	if limiter.tokens >= 1 {
		limiter.tokens--
		return true
	}
	return false
}

// HostOf strips the port from a host:port address.
func HostOf(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

// Clients returns how many hosts are tracked.
func (rl *RateLimiter) Clients() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

func (rl *RateLimiter) cleanup() {
	for {
		select {
		case <-rl.cleanupTick.C:
			rl.removeInactiveClients()
		case <-rl.done:
			return
		}
	}
}

// removeInactiveClients forgets hosts idle for two windows; their buckets
// would be full again anyway.
func (rl *RateLimiter) removeInactiveClients() {
	cutoff := rl.now().Add(-2 * rl.window)

	rl.mu.Lock()
	defer rl.mu.Unlock()
	for host, limiter := range rl.clients {
		if limiter.lastRefill.Before(cutoff) {
			delete(rl.clients, host)
		}
	}
}

// Close stops the cleanup loop. It is safe to call more than once.
func (rl *RateLimiter) Close() {
	rl.closeOnce.Do(func() {
		close(rl.done)
		rl.cleanupTick.Stop()
	})
}
