package utils

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long an idle client keeps its limiter entry.
const limiterIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientLimiters hands out one rate limiter per client IP. Idle entries
// are swept whenever a new client shows up, so the map stays bounded on
// a public endpoint.
type clientLimiters struct {
	mu      sync.Mutex
	rate    rate.Limit
	burst   int
	idleTTL time.Duration
	clients map[string]*clientLimiter
}

func newClientLimiters(r rate.Limit, burst int, idleTTL time.Duration) *clientLimiters {
	return &clientLimiters{
		rate:    r,
		burst:   burst,
		idleTTL: idleTTL,
		clients: make(map[string]*clientLimiter),
	}
}

func (l *clientLimiters) get(ip string, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry, ok := l.clients[ip]
	if !ok {
		l.sweep(now)
		entry = &clientLimiter{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.clients[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// sweep drops entries idle past the TTL. Caller holds the lock.
func (l *clientLimiters) sweep(now time.Time) {
	for key, entry := range l.clients {
		if now.Sub(entry.lastSeen) > l.idleTTL {
			delete(l.clients, key)
		}
	}
}

// RateLimitMiddleware throttles requests per client IP.
func RateLimitMiddleware(r rate.Limit, burst int) gin.HandlerFunc {
	limiters := newClientLimiters(r, burst, limiterIdleTTL)
	return func(c *gin.Context) {
		if !limiters.get(c.ClientIP(), time.Now()).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			c.Abort()
			return
		}
		c.Next()
	}
}
