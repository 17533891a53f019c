package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Abror-150/Online-shop/internal/auth"
	"github.com/Abror-150/Online-shop/internal/models"
)

func newGuardApp(t *testing.T, jwtManager *auth.JWTManager, roles ...string) *fiber.App {
	t.Helper()
	guard := NewAuthMiddleware(jwtManager, zap.NewNop())
	app := fiber.New()
	app.Get("/protected", guard.RequireRoles(roles...), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"userID": UserID(c),
			"role":   UserRole(c),
		})
	})
	return app
}

func TestRequireRolesMissingToken(t *testing.T) {
	jm := auth.NewJWTManager("access", "refresh", 15, 7)
	app := newGuardApp(t, jm, models.RoleUser)

	req := httptest.NewRequest("GET", "/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRolesMalformedHeader(t *testing.T) {
	jm := auth.NewJWTManager("access", "refresh", 15, 7)
	app := newGuardApp(t, jm, models.RoleUser)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Token abcdef")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRolesInvalidToken(t *testing.T) {
	jm := auth.NewJWTManager("access", "refresh", 15, 7)
	app := newGuardApp(t, jm, models.RoleUser)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRolesRefreshTokenRejected(t *testing.T) {
	jm := auth.NewJWTManager("access", "refresh", 15, 7)
	app := newGuardApp(t, jm, models.RoleUser)

	refresh, _, err := jm.GenerateRefreshToken("user-1", models.RoleUser)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRolesForbiddenRole(t *testing.T) {
	jm := auth.NewJWTManager("access", "refresh", 15, 7)
	app := newGuardApp(t, jm, models.RoleAdmin)

	token, _, err := jm.GenerateAccessToken("user-1", models.RoleUser)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireRolesAllowedRole(t *testing.T) {
	jm := auth.NewJWTManager("access", "refresh", 15, 7)
	app := newGuardApp(t, jm, models.RoleUser, models.RoleAdmin)

	token, _, err := jm.GenerateAccessToken("user-42", models.RoleAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
