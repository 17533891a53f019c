package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"github.com/Abror-150/Online-shop/internal/config"
	"github.com/Abror-150/Online-shop/internal/middleware"
	"github.com/Abror-150/Online-shop/internal/routes"
)

// New initializes the Fiber application with config, middlewares, and routes.
func New(cfg *config.Config, h routes.Handlers, guard *middleware.AuthMiddleware, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.App.ReadTimeout,
		WriteTimeout: cfg.App.WriteTimeout,
		IdleTimeout:  cfg.App.IdleTimeout,
	})

	app.Use(cors.New())
	app.Use(middleware.Logger(logger))
	if cfg.RateLimit.PerMinute > 0 {
		limiter := middleware.NewIPRateLimiter(cfg.RateLimit.PerMinute, cfg.RateLimit.Burst, logger)
		app.Use(limiter.Handler())
	}

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	routes.Setup(app, h, guard)

	return app
}
