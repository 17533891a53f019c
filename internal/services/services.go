package services

import (
	"context"
	"errors"

	"github.com/Abror-150/Online-shop/internal/models"
)

var (
	ErrUserAlreadyExists   = errors.New("user with this userName, email or phone already exists")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidOTP          = errors.New("invalid or expired OTP code")
	ErrInvalidCredentials  = errors.New("wrong password")
	ErrUserNotVerified     = errors.New("account not verified, confirm the registration OTP first")
	ErrOTPRateLimited      = errors.New("too many OTP requests, please try again later")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	ErrInvalidRegion       = errors.New("invalid regionId")
	ErrInternal            = errors.New("internal server error")
)

// AuthService is the authentication flow controller: registration with OTP
// issuance, OTP verification, login, token refresh.
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	VerifyEmailOTP(ctx context.Context, email, code string) (*models.User, error)
	SendPhoneOTP(ctx context.Context, phone string) error
	VerifyPhoneOTP(ctx context.Context, phone, code string) (bool, error)
	Login(ctx context.Context, userName, password string) (*models.AuthTokens, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
}
