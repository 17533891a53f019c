package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Abror-150/Online-shop/internal/models"
	"github.com/Abror-150/Online-shop/internal/services"
)

// stubAuthService returns canned results per operation.
type stubAuthService struct {
	registerUser *models.User
	registerErr  error
	verifyUser   *models.User
	verifyErr    error
	sendErr      error
	otpMatch     bool
	loginTokens  *models.AuthTokens
	loginErr     error
	refreshToken string
	refreshErr   error
}

func (s *stubAuthService) Register(context.Context, models.RegisterRequest) (*models.User, error) {
	return s.registerUser, s.registerErr
}

func (s *stubAuthService) VerifyEmailOTP(context.Context, string, string) (*models.User, error) {
	return s.verifyUser, s.verifyErr
}

func (s *stubAuthService) SendPhoneOTP(context.Context, string) error {
	return s.sendErr
}

func (s *stubAuthService) VerifyPhoneOTP(context.Context, string, string) (bool, error) {
	return s.otpMatch, nil
}

func (s *stubAuthService) Login(context.Context, string, string) (*models.AuthTokens, error) {
	return s.loginTokens, s.loginErr
}

func (s *stubAuthService) Refresh(context.Context, string) (string, error) {
	return s.refreshToken, s.refreshErr
}

func newAuthApp(svc services.AuthService) *fiber.App {
	h := NewAuthHandler(svc, zap.NewNop())
	app := fiber.New()
	auth := app.Group("/api/v1/auth")
	auth.Post("/register", h.Register)
	auth.Post("/verify-email", h.VerifyEmail)
	auth.Post("/send-otp", h.SendOTP)
	auth.Post("/verify-otp", h.VerifyOTP)
	auth.Post("/login", h.Login)
	auth.Post("/refresh", h.Refresh)
	return app
}

func doPost(t *testing.T, app *fiber.App, path string, body interface{}) int {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func validRegisterBody() map[string]interface{} {
	return map[string]interface{}{
		"userName": "alisher",
		"email":    "alisher@example.com",
		"password": "secret123",
		"phone":    "+998901234567",
	}
}

func TestRegisterHandlerCreated(t *testing.T) {
	svc := &stubAuthService{
		registerUser: &models.User{ID: primitive.NewObjectID(), UserName: "alisher", Status: models.StatusPending},
	}
	app := newAuthApp(svc)

	status := doPost(t, app, "/api/v1/auth/register", validRegisterBody())
	assert.Equal(t, fiber.StatusCreated, status)
}

func TestRegisterHandlerValidation(t *testing.T) {
	app := newAuthApp(&stubAuthService{})

	body := validRegisterBody()
	body["email"] = "not-an-email"
	assert.Equal(t, fiber.StatusBadRequest, doPost(t, app, "/api/v1/auth/register", body))

	body = validRegisterBody()
	body["phone"] = "901234567" // not E.164
	assert.Equal(t, fiber.StatusBadRequest, doPost(t, app, "/api/v1/auth/register", body))

	body = validRegisterBody()
	body["role"] = "root"
	assert.Equal(t, fiber.StatusBadRequest, doPost(t, app, "/api/v1/auth/register", body))
}

func TestRegisterHandlerDuplicate(t *testing.T) {
	app := newAuthApp(&stubAuthService{registerErr: services.ErrUserAlreadyExists})

	status := doPost(t, app, "/api/v1/auth/register", validRegisterBody())
	assert.Equal(t, fiber.StatusConflict, status)
}

func TestVerifyEmailHandler(t *testing.T) {
	svc := &stubAuthService{
		verifyUser: &models.User{ID: primitive.NewObjectID(), Status: models.StatusActive},
	}
	app := newAuthApp(svc)

	body := map[string]string{"email": "alisher@example.com", "otp": "123456"}
	assert.Equal(t, fiber.StatusOK, doPost(t, app, "/api/v1/auth/verify-email", body))
}

func TestVerifyEmailHandlerInvalidOTP(t *testing.T) {
	app := newAuthApp(&stubAuthService{verifyErr: services.ErrInvalidOTP})

	body := map[string]string{"email": "alisher@example.com", "otp": "000000"}
	assert.Equal(t, fiber.StatusUnauthorized, doPost(t, app, "/api/v1/auth/verify-email", body))
}

func TestSendOTPHandlerRateLimited(t *testing.T) {
	app := newAuthApp(&stubAuthService{sendErr: services.ErrOTPRateLimited})

	body := map[string]string{"phone": "+998901234567"}
	assert.Equal(t, fiber.StatusTooManyRequests, doPost(t, app, "/api/v1/auth/send-otp", body))
}

func TestVerifyOTPHandler(t *testing.T) {
	body := map[string]string{"phone": "+998901234567", "otp": "123456"}

	app := newAuthApp(&stubAuthService{otpMatch: true})
	assert.Equal(t, fiber.StatusOK, doPost(t, app, "/api/v1/auth/verify-otp", body))

	app = newAuthApp(&stubAuthService{otpMatch: false})
	assert.Equal(t, fiber.StatusUnauthorized, doPost(t, app, "/api/v1/auth/verify-otp", body))
}

func TestLoginHandler(t *testing.T) {
	svc := &stubAuthService{
		loginTokens: &models.AuthTokens{AccessToken: "a", RefreshToken: "r", ExpiresAt: 123},
	}
	app := newAuthApp(svc)

	body := map[string]string{"userName": "alisher", "password": "secret123"}
	assert.Equal(t, fiber.StatusOK, doPost(t, app, "/api/v1/auth/login", body))
}

func TestLoginHandlerErrors(t *testing.T) {
	body := map[string]string{"userName": "alisher", "password": "secret123"}

	app := newAuthApp(&stubAuthService{loginErr: services.ErrUserNotFound})
	assert.Equal(t, fiber.StatusNotFound, doPost(t, app, "/api/v1/auth/login", body))

	app = newAuthApp(&stubAuthService{loginErr: services.ErrInvalidCredentials})
	assert.Equal(t, fiber.StatusUnauthorized, doPost(t, app, "/api/v1/auth/login", body))

	app = newAuthApp(&stubAuthService{loginErr: services.ErrUserNotVerified})
	assert.Equal(t, fiber.StatusUnauthorized, doPost(t, app, "/api/v1/auth/login", body))
}

func TestRefreshHandler(t *testing.T) {
	app := newAuthApp(&stubAuthService{refreshToken: "new-access"})
	body := map[string]string{"refreshToken": "r"}
	assert.Equal(t, fiber.StatusOK, doPost(t, app, "/api/v1/auth/refresh", body))

	app = newAuthApp(&stubAuthService{refreshErr: services.ErrInvalidRefreshToken})
	assert.Equal(t, fiber.StatusUnauthorized, doPost(t, app, "/api/v1/auth/refresh", body))
}
