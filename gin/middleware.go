package gin

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// CORSMiddleware sets CORS headers for allowed origins and answers
// preflight requests. An allowed origin ending in "*" matches by prefix.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if isAllowedOrigin(origin, allowedOrigins) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, DELETE")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Profile-ID")
			c.Writer.Header().Set("Access-Control-Max-Age", "3600")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func isAllowedOrigin(origin string, allowedOrigins []string) bool {
	if origin == "" {
		return false
	}
	for _, allowed := range allowedOrigins {
		if prefix, ok := strings.CutSuffix(allowed, "*"); ok {
			if strings.HasPrefix(origin, prefix) {
				return true
			}
		} else if origin == allowed {
			return true
		}
	}
	return false
}

// DefaultClientIdleTimeout is how long a client's limiter is kept after its
// last request.
const DefaultClientIdleTimeout = 10 * time.Minute

// ClientLimiters holds one token bucket per client key. Buckets idle for
// longer than the idle timeout are evicted, so memory tracks recently active
// clients rather than every client ever seen.
type ClientLimiters struct {
	mu        sync.Mutex
	clients   map[string]*clientLimiter
	rps       float64
	burst     int
	idle      time.Duration
	lastSweep time.Time
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewClientLimiters creates a ClientLimiters allowing rps requests per second
// with the given burst to each client.
func NewClientLimiters(rps float64, burst int, idle time.Duration) *ClientLimiters {
	return &ClientLimiters{
		clients: make(map[string]*clientLimiter),
		rps:     rps,
		burst:   burst,
		idle:    idle,
	}
}

// Allow reports whether a request from key at now fits its rate limit.
func (l *ClientLimiters) Allow(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.idle {
		for k, c := range l.clients {
			if now.Sub(c.lastSeen) >= l.idle {
				delete(l.clients, k)
			}
		}
		l.lastSweep = now
	}

	c, ok := l.clients[key]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(rate.Limit(l.rps), l.burst)}
		l.clients[key] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

// Len returns the number of clients currently tracked.
func (l *ClientLimiters) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// RateLimitMiddleware limits each client IP to rps requests per second with
// the given burst. Requests over the limit get 429.
func RateLimitMiddleware(rps float64, burst int) gin.HandlerFunc {
	limiters := NewClientLimiters(rps, burst, DefaultClientIdleTimeout)

	return func(c *gin.Context) {
		if !limiters.Allow(c.ClientIP(), time.Now()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"detail": "Too many requests"})
			return
		}

		c.Next()
	}
}
