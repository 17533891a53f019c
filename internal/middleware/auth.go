package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Abror-150/Online-shop/internal/auth"
)

// Locals keys set by RequireRoles for downstream handlers.
const (
	LocalUserID   = "userID"
	LocalUserRole = "userRole"
)

// AuthMiddleware gates routes on a bearer access token and a role set.
type AuthMiddleware struct {
	jwtManager *auth.JWTManager
	log        *zap.Logger
}

// NewAuthMiddleware builds the guard.
func NewAuthMiddleware(jwtManager *auth.JWTManager, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{jwtManager: jwtManager, log: logger}
}

// RequireRoles returns a handler that rejects requests without a valid
// access token (401) or with a role outside the allowed set (403). On
// success the user id and role are attached to the request context.
func (a *AuthMiddleware) RequireRoles(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "token not provided"})
		}
		if !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization header"})
		}

		claims, err := a.jwtManager.VerifyAccessToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			a.log.Debug("access token rejected", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
		}

		if _, ok := allowed[claims.Role]; !ok {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "not allowed"})
		}

		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalUserRole, claims.Role)
		return c.Next()
	}
}

// UserID returns the authenticated user id set by RequireRoles.
func UserID(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocalUserID).(string); ok {
		return v
	}
	return ""
}

// UserRole returns the authenticated user role set by RequireRoles.
func UserRole(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocalUserRole).(string); ok {
		return v
	}
	return ""
}
