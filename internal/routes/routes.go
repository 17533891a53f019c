package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Abror-150/Online-shop/internal/handlers"
	"github.com/Abror-150/Online-shop/internal/middleware"
	"github.com/Abror-150/Online-shop/internal/models"
)

// Handlers collects every route handler the router mounts.
type Handlers struct {
	Auth     *handlers.AuthHandler
	User     *handlers.UserHandler
	Region   *handlers.RegionHandler
	Category *handlers.CategoryHandler
	Product  *handlers.ProductHandler
	Comment  *handlers.CommentHandler
	Order    *handlers.OrderHandler
}

// Setup mounts all routes under /api/v1 with their role guards.
func Setup(app *fiber.App, h Handlers, guard *middleware.AuthMiddleware) {
	anyRole := guard.RequireRoles(
		models.RoleUser, models.RoleAdmin, models.RoleSuperAdmin, models.RoleSeller,
	)
	adminOnly := guard.RequireRoles(models.RoleAdmin)

	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/register", h.Auth.Register)
	auth.Post("/verify-email", h.Auth.VerifyEmail)
	auth.Post("/send-otp", h.Auth.SendOTP)
	auth.Post("/verify-otp", h.Auth.VerifyOTP)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.Refresh)

	users := api.Group("/users")
	users.Get("/", adminOnly, h.User.List)
	users.Get("/:id", anyRole, h.User.Get)
	users.Patch("/:id", anyRole, h.User.Update)
	users.Delete("/:id", adminOnly, h.User.Delete)

	regions := api.Group("/regions")
	regions.Get("/", h.Region.List)
	regions.Get("/:id", h.Region.Get)
	regions.Post("/", adminOnly, h.Region.Create)
	regions.Patch("/:id", adminOnly, h.Region.Update)
	regions.Delete("/:id", adminOnly, h.Region.Delete)

	categories := api.Group("/categories")
	categories.Get("/", h.Category.List)
	categories.Get("/:id", h.Category.Get)
	categories.Post("/", adminOnly, h.Category.Create)
	categories.Patch("/:id", guard.RequireRoles(models.RoleSuperAdmin, models.RoleAdmin), h.Category.Update)
	categories.Delete("/:id", adminOnly, h.Category.Delete)

	products := api.Group("/products")
	products.Get("/", h.Product.List)
	products.Get("/:id", h.Product.Get)
	products.Post("/", guard.RequireRoles(models.RoleSeller, models.RoleAdmin), h.Product.Create)
	products.Patch("/:id", guard.RequireRoles(models.RoleSeller, models.RoleAdmin), h.Product.Update)
	products.Delete("/:id", guard.RequireRoles(models.RoleSeller, models.RoleAdmin), h.Product.Delete)

	comments := api.Group("/comments")
	comments.Get("/", h.Comment.List)
	comments.Post("/", guard.RequireRoles(models.RoleUser, models.RoleAdmin), h.Comment.Create)
	comments.Patch("/:id", guard.RequireRoles(models.RoleUser, models.RoleAdmin), h.Comment.Update)
	comments.Delete("/:id", guard.RequireRoles(models.RoleUser, models.RoleAdmin), h.Comment.Delete)

	orders := api.Group("/orders")
	orders.Get("/", anyRole, h.Order.List)
	orders.Get("/:id", anyRole, h.Order.Get)
	orders.Post("/", anyRole, h.Order.Create)
	orders.Patch("/:id", anyRole, h.Order.Update)
	orders.Delete("/:id", anyRole, h.Order.Delete)
}
