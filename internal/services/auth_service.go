package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Abror-150/Online-shop/internal/auth"
	"github.com/Abror-150/Online-shop/internal/models"
	"github.com/Abror-150/Online-shop/internal/notifier"
	"github.com/Abror-150/Online-shop/internal/otp"
	"github.com/Abror-150/Online-shop/internal/repository"
)

const otpRateLimitPrefix = "otp_rate_limit:"

// authService orchestrates registration, OTP verification, login and token
// refresh. All mutable state lives in the repository; tokens and OTP codes
// are stateless, so there is no server-side revocation: an issued token is
// valid until it expires.
type authService struct {
	userRepo        repository.UserRepository
	smsClient       notifier.SMSClient
	emailClient     notifier.EmailClient
	redisClient     *redis.Client
	otpEngine       *otp.Engine
	hasher          *auth.PasswordHasher
	jwtManager      *auth.JWTManager
	phoneOTPSalt    string
	emailOTPSalt    string
	otpSendsPerHour int
	logger          *zap.Logger
}

// NewAuthService creates the authentication flow controller. redisClient may
// be nil, which disables OTP send rate limiting.
func NewAuthService(
	userRepo repository.UserRepository,
	smsClient notifier.SMSClient,
	emailClient notifier.EmailClient,
	redisClient *redis.Client,
	otpEngine *otp.Engine,
	hasher *auth.PasswordHasher,
	jwtManager *auth.JWTManager,
	phoneOTPSalt string,
	emailOTPSalt string,
	otpSendsPerHour int,
	logger *zap.Logger,
) AuthService {
	return &authService{
		userRepo:        userRepo,
		smsClient:       smsClient,
		emailClient:     emailClient,
		redisClient:     redisClient,
		otpEngine:       otpEngine,
		hasher:          hasher,
		jwtManager:      jwtManager,
		phoneOTPSalt:    phoneOTPSalt,
		emailOTPSalt:    emailOTPSalt,
		otpSendsPerHour: otpSendsPerHour,
		logger:          logger,
	}
}

// Register creates a PENDING user and emails a registration OTP. The email
// is dispatched fire-and-forget: a notifier failure never fails
// registration.
func (s *authService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if err := s.ensureIdentityFree(ctx, req.UserName, req.Email, req.Phone); err != nil {
		return nil, err
	}

	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", ErrInternal)
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}

	user := &models.User{
		UserName:     req.UserName,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: digest,
		Role:         role,
		Status:       models.StatusPending,
		Image:        req.Image,
		Year:         req.Year,
	}
	if req.RegionID != "" {
		regionID, err := primitive.ObjectIDFromHex(req.RegionID)
		if err != nil {
			return nil, ErrInvalidRegion
		}
		user.RegionID = regionID
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Two concurrent registrations of the same identity race here;
		// the unique index decides and the loser surfaces as a duplicate.
		if repository.IsDuplicateKey(err) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", ErrInternal)
	}

	code, err := s.otpEngine.Generate(req.Email, s.emailOTPSalt)
	if err != nil {
		s.logger.Error("failed to generate registration OTP", zap.Error(err))
		return user, nil
	}

	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		body := fmt.Sprintf("Your one time password is %s", code)
		if err := s.emailClient.SendEmail(sendCtx, req.Email, "verify auth", body); err != nil {
			s.logger.Warn("failed to send registration OTP email",
				zap.String("email", req.Email), zap.Error(err))
		}
	}()

	return user, nil
}

// VerifyEmailOTP activates a PENDING account once the registration code
// checks out.
func (s *authService) VerifyEmailOTP(ctx context.Context, email, code string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", ErrInternal)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if !s.otpEngine.Verify(email, s.emailOTPSalt, code) {
		return nil, ErrInvalidOTP
	}

	user.Status = models.StatusActive
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to activate user: %w", ErrInternal)
	}
	return user, nil
}

// SendPhoneOTP runs the pre-registration phone possession check: the number
// must not belong to an existing account. No record is created.
func (s *authService) SendPhoneOTP(ctx context.Context, phone string) error {
	existing, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		return fmt.Errorf("failed to check existing phone: %w", ErrInternal)
	}
	if existing != nil {
		return ErrUserAlreadyExists
	}

	if err := s.checkOTPRateLimit(ctx, phone); err != nil {
		return err
	}

	code, err := s.otpEngine.Generate(phone, s.phoneOTPSalt)
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", ErrInternal)
	}

	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		msg := fmt.Sprintf("Your one time password is %s", code)
		if err := s.smsClient.SendSMS(sendCtx, phone, msg); err != nil {
			s.logger.Warn("failed to send OTP sms", zap.String("phone", phone), zap.Error(err))
		}
	}()

	return nil
}

// VerifyPhoneOTP is a pure possession check with no state transition.
func (s *authService) VerifyPhoneOTP(ctx context.Context, phone, code string) (bool, error) {
	return s.otpEngine.Verify(phone, s.phoneOTPSalt, code), nil
}

// Login checks credentials and issues an access/refresh token pair. PENDING
// accounts are refused until the registration OTP is confirmed.
func (s *authService) Login(ctx context.Context, userName, password string) (*models.AuthTokens, error) {
	user, err := s.userRepo.FindByUserName(ctx, userName)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", ErrInternal)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if !s.hasher.Check(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive() {
		return nil, ErrUserNotVerified
	}

	id := user.ID.Hex()
	access, accessExp, err := s.jwtManager.GenerateAccessToken(id, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", ErrInternal)
	}
	refresh, _, err := s.jwtManager.GenerateRefreshToken(id, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", ErrInternal)
	}

	return &models.AuthTokens{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    accessExp.Unix(),
	}, nil
}

// Refresh mints a new access token for the identity in refreshToken. The
// refresh token itself is not rotated; it stays valid until expiry.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtManager.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	access, _, err := s.jwtManager.GenerateAccessToken(claims.UserID, claims.Role)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", ErrInternal)
	}
	return access, nil
}

// ensureIdentityFree fails with ErrUserAlreadyExists when any of the three
// login identifiers is already taken.
func (s *authService) ensureIdentityFree(ctx context.Context, userName, email, phone string) error {
	byUserName, err := s.userRepo.FindByUserName(ctx, userName)
	if err != nil {
		return fmt.Errorf("failed to check existing userName: %w", ErrInternal)
	}
	byEmail, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check existing email: %w", ErrInternal)
	}
	byPhone, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		return fmt.Errorf("failed to check existing phone: %w", ErrInternal)
	}
	if byUserName != nil || byEmail != nil || byPhone != nil {
		return ErrUserAlreadyExists
	}
	return nil
}

// checkOTPRateLimit caps OTP sends per phone per hour via redis. With no
// redis client configured the limit is off.
func (s *authService) checkOTPRateLimit(ctx context.Context, phone string) error {
	if s.redisClient == nil || s.otpSendsPerHour <= 0 {
		return nil
	}

	key := otpRateLimitPrefix + phone
	count, err := s.redisClient.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to increment OTP rate limit: %w", ErrInternal)
	}
	if count == 1 {
		if _, err := s.redisClient.Expire(ctx, key, time.Hour).Result(); err != nil {
			return fmt.Errorf("failed to set OTP rate limit expiry: %w", ErrInternal)
		}
	} else if count > int64(s.otpSendsPerHour) {
		s.redisClient.Decr(ctx, key)
		return ErrOTPRateLimited
	}
	return nil
}
