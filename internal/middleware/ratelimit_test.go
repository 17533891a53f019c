package middleware

import (
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newLimiterApp(l *IPRateLimiter) *fiber.App {
	app := fiber.New()
	app.Use(l.Handler())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestIPRateLimiterBlocksAfterBurst(t *testing.T) {
	l := NewIPRateLimiter(60, 2, zap.NewNop())
	app := newLimiterApp(l)

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}

// Hammers the visitor map from request goroutines while the idle sweep
// runs, so `go test -race` catches unsynchronized lastSeen access.
func TestIPRateLimiterConcurrentSweep(t *testing.T) {
	l := NewIPRateLimiter(6000, 100, zap.NewNop())

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				l.getLimiter(fmt.Sprintf("10.0.%d.%d", w, i%10))
			}
		}(w)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			l.removeIdle(time.Now().Add(-time.Millisecond))
		}
	}()
	wg.Wait()

	// The limiter still serves after sweeping.
	assert.True(t, l.getLimiter("10.0.0.1").Allow())
}
