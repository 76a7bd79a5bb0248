package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/ecohealth/sentinel/pkg/metrics"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// limiterStore keeps one token bucket per client key.
type limiterStore struct {
	m     sync.Map // map[string]*rate.Limiter
	limit rate.Limit
	burst int
}

func (s *limiterStore) get(key string) *rate.Limiter {
	if v, ok := s.m.Load(key); ok {
		return v.(*rate.Limiter)
	}
	v, _ := s.m.LoadOrStore(key, rate.NewLimiter(s.limit, s.burst))
	return v.(*rate.Limiter)
}

// clientKey prefers the authenticated subject and falls back to the client IP.
func clientKey(c *gin.Context) string {
	if sub := ClaimString(c, "sub"); sub != "" {
		return "sub:" + sub
	}
	ip := c.ClientIP()
	if ip == "" {
		ip = "unknown"
	}
	return "ip:" + ip
}

func tokenBucket(name string, limit rate.Limit, burst int, retryAfter time.Duration, message string) gin.HandlerFunc {
	store := &limiterStore{limit: limit, burst: burst}
	retry := strconv.Itoa(int(retryAfter.Seconds()))
	if retryAfter < time.Second {
		retry = "1"
	}
	return func(c *gin.Context) {
		if !store.get(clientKey(c)).Allow() {
			c.Header("Retry-After", retry)
			metrics.RateLimitRejected.WithLabelValues(name).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"success": false, "error": message})
			return
		}
		metrics.RateLimitAllowed.WithLabelValues(name).Inc()
		c.Next()
	}
}

// RateLimitMiddleware enforces a per-client token bucket.
// rps = allowed events per second, burst = maximum tokens in bucket.
func RateLimitMiddleware(rps float64, burst int) gin.HandlerFunc {
	return tokenBucket("memory", rate.Limit(rps), burst, time.Second, "Rate limit exceeded")
}

// ChatRateLimitMiddleware allows perMinute chat messages per client per minute.
func ChatRateLimitMiddleware(perMinute int) gin.HandlerFunc {
	if perMinute <= 0 {
		perMinute = 20
	}
	return tokenBucket("chat", rate.Every(time.Minute/time.Duration(perMinute)), perMinute, time.Minute,
		"Too many messages. Please wait a moment before sending more.")
}

// AuthRateLimitMiddleware allows attempts per client per window on credential routes.
func AuthRateLimitMiddleware(attempts int, window time.Duration) gin.HandlerFunc {
	if attempts <= 0 {
		attempts = 5
	}
	return tokenBucket("auth", rate.Every(window/time.Duration(attempts)), attempts, window,
		"Too many login attempts. Please try again after 15 minutes.")
}
