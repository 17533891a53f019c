package middleware

import (
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// IPRateLimiter throttles requests per client IP.
type IPRateLimiter struct {
	visitors sync.Map
	rps      rate.Limit
	burst    int
	log      *zap.Logger
}

// visitor tracks one client. lastSeen holds unix nanos and is atomic:
// request goroutines update it while the cleanup goroutine reads it.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64
}

// NewIPRateLimiter allows perMinute requests per IP with a small burst.
// Idle visitor entries are dropped in the background.
func NewIPRateLimiter(perMinute, burst int, logger *zap.Logger) *IPRateLimiter {
	if burst <= 0 {
		burst = 5
	}
	l := &IPRateLimiter{
		rps:   rate.Limit(float64(perMinute) / 60.0),
		burst: burst,
		log:   logger,
	}
	go l.cleanupVisitors()
	return l
}

func (l *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	vi := &visitor{limiter: rate.NewLimiter(l.rps, l.burst)}
	if v, loaded := l.visitors.LoadOrStore(ip, vi); loaded {
		vi = v.(*visitor)
	}
	vi.lastSeen.Store(time.Now().UnixNano())
	return vi.limiter
}

func (l *IPRateLimiter) cleanupVisitors() {
	for {
		time.Sleep(time.Minute)
		l.removeIdle(time.Now().Add(-5 * time.Minute))
	}
}

func (l *IPRateLimiter) removeIdle(cutoff time.Time) {
	l.visitors.Range(func(k, v interface{}) bool {
		if v.(*visitor).lastSeen.Load() < cutoff.UnixNano() {
			l.visitors.Delete(k)
		}
		return true
	})
}

// Handler is the fiber middleware.
func (l *IPRateLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ip := clientIP(c)
		if !l.getLimiter(ip).Allow() {
			l.log.Warn("rate limit exceeded", zap.String("ip", ip), zap.String("path", c.Path()))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded"})
		}
		return c.Next()
	}
}

func clientIP(c *fiber.Ctx) string {
	ip := c.IP()
	if ip == "" {
		return "unknown"
	}
	if host, _, err := net.SplitHostPort(ip); err == nil {
		return host
	}
	return ip
}
