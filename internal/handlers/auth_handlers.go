package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Abror-150/Online-shop/internal/models"
	"github.com/Abror-150/Online-shop/internal/services"
)

// AuthHandler exposes the authentication flow over HTTP.
type AuthHandler struct {
	svc      services.AuthService
	validate *validator.Validate
	log      *zap.Logger
}

// NewAuthHandler builds the handler.
func NewAuthHandler(svc services.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		svc:      svc,
		validate: validator.New(),
		log:      logger,
	}
}

// statusFromAuthErr maps the service error taxonomy onto HTTP statuses.
func statusFromAuthErr(err error) int {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrUserAlreadyExists):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrInvalidOTP),
		errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrUserNotVerified),
		errors.Is(err, services.ErrInvalidRefreshToken):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrOTPRateLimited):
		return fiber.StatusTooManyRequests
	case errors.Is(err, services.ErrInvalidRegion):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func (h *AuthHandler) fail(c *fiber.Ctx, err error) error {
	status := statusFromAuthErr(err)
	if status == fiber.StatusInternalServerError {
		h.log.Error("auth operation failed", zap.Error(err))
		return c.Status(status).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func (h *AuthHandler) parseAndValidate(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if err := h.validate.Struct(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

// Register creates a PENDING account and emails the registration OTP.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := h.parseAndValidate(c, &req); err != nil {
		return err
	}
	user, err := h.svc.Register(c.Context(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// VerifyEmail confirms the registration OTP and activates the account.
func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	var req models.VerifyEmailRequest
	if err := h.parseAndValidate(c, &req); err != nil {
		return err
	}
	user, err := h.svc.VerifyEmailOTP(c.Context(), req.Email, req.OTP)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "account activated", "user": user})
}

// SendOTP runs the pre-registration phone possession check.
func (h *AuthHandler) SendOTP(c *fiber.Ctx) error {
	var req models.SendOTPRequest
	if err := h.parseAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.svc.SendPhoneOTP(c.Context(), req.Phone); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "otp sent"})
}

// VerifyOTP checks a phone code without any state transition.
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req models.VerifyOTPRequest
	if err := h.parseAndValidate(c, &req); err != nil {
		return err
	}
	ok, err := h.svc.VerifyPhoneOTP(c.Context(), req.Phone, req.OTP)
	if err != nil {
		return h.fail(c, err)
	}
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": services.ErrInvalidOTP.Error()})
	}
	return c.JSON(fiber.Map{"match": true})
}

// Login exchanges credentials for an access/refresh token pair.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := h.parseAndValidate(c, &req); err != nil {
		return err
	}
	tokens, err := h.svc.Login(c.Context(), req.UserName, req.Password)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(tokens)
}

// Refresh mints a new access token from a refresh token.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req models.RefreshRequest
	if err := h.parseAndValidate(c, &req); err != nil {
		return err
	}
	access, err := h.svc.Refresh(c.Context(), req.RefreshToken)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"accessToken": access})
}
