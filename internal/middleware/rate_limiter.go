package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// LimitConfig controls the per-client request rate.
type LimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// DefaultLimitConfig suits read-heavy market endpoints.
var DefaultLimitConfig = LimitConfig{RequestsPerSecond: 20, Burst: 40}

// TradeLimitConfig is tighter, for order-placing endpoints.
var TradeLimitConfig = LimitConfig{RequestsPerSecond: 5, Burst: 10}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type limiterPool struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	config  LimitConfig
}

func newLimiterPool(config LimitConfig) *limiterPool {
	p := &limiterPool{
		clients: make(map[string]*clientLimiter),
		config:  config,
	}
	go p.evictStale()
	return p
}

func (p *limiterPool) get(ip string) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()

	cl, ok := p.clients[ip]
	if !ok {
		cl = &clientLimiter{
			limiter: rate.NewLimiter(rate.Limit(p.config.RequestsPerSecond), p.config.Burst),
		}
		p.clients[ip] = cl
	}
	cl.lastSeen = time.Now()
	return cl.limiter
}

// evictStale drops limiters for clients idle longer than 15 minutes.
func (p *limiterPool) evictStale() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-15 * time.Minute)
		p.mu.Lock()
		for ip, cl := range p.clients {
			if cl.lastSeen.Before(cutoff) {
				delete(p.clients, ip)
			}
		}
		p.mu.Unlock()
	}
}

// RateLimiter returns middleware enforcing a per-IP token bucket.
func RateLimiter(config LimitConfig) gin.HandlerFunc {
	pool := newLimiterPool(config)

	return func(c *gin.Context) {
		limiter := pool.get(c.ClientIP())
		if !limiter.Allow() {
			reservation := limiter.Reserve()
			retryAfter := reservation.DelayFrom(time.Now()).Seconds()
			reservation.Cancel()

			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": retryAfter,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
