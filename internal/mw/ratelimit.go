package mw

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/time/rate"
)

var rateLimited = promauto.NewCounter(prometheus.CounterOpts{
	Name: "hotel_http_rate_limited_total",
	Help: "Requests rejected by the per-client rate limiter.",
})

// limiterIdleTTL is how long a client's limiter survives without requests.
const limiterIdleTTL = 10 * time.Minute

// ClientLimiter hands out one token bucket per client key. Buckets of idle
// clients expire so the table does not grow with every address ever seen.
type ClientLimiter struct {
	buckets *cache.Cache
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
}

// NewClientLimiter creates a limiter allowing limit requests per second with
// the given burst, per client.
func NewClientLimiter(limit rate.Limit, burst int) *ClientLimiter {
	return &ClientLimiter{
		buckets: cache.New(limiterIdleTTL, 2*limiterIdleTTL),
		limit:   limit,
		burst:   burst,
	}
}

// For returns the bucket of key, creating it on first use and extending its
// lifetime on every call.
func (l *ClientLimiter) For(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	if v, ok := l.buckets.Get(key); ok {
		limiter := v.(*rate.Limiter)
		l.buckets.Set(key, limiter, cache.DefaultExpiration)
		return limiter
	}
	limiter := rate.NewLimiter(l.limit, l.burst)
	l.buckets.Set(key, limiter, cache.DefaultExpiration)
	return limiter
}

// Clients returns the number of live buckets.
func (l *ClientLimiter) Clients() int {
	return l.buckets.ItemCount()
}

// retryAfter is the time, in whole seconds, until one more token is available.
func (l *ClientLimiter) retryAfter() int {
	if l.limit <= 0 {
		return 1
	}
	return int(math.Max(1, math.Ceil(1/float64(l.limit))))
}

// RateLimiter is a middleware for IP-based rate limiting.
func RateLimiter(limit rate.Limit, burst int) gin.HandlerFunc {
	return NewClientLimiter(limit, burst).Middleware()
}

// Middleware rejects requests over the client's budget with 429.
func (l *ClientLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.For(c.ClientIP()).Allow() {
			rateLimited.Inc()
			c.Header("Retry-After", strconv.Itoa(l.retryAfter()))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
