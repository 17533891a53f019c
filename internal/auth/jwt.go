package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token audiences. Access and refresh tokens are signed with distinct
// secrets; the audience claim is an additional explicit type marker so a
// refresh token can never pass as an access token even if the secrets were
// ever misconfigured to the same value.
const (
	audienceAccess  = "access"
	audienceRefresh = "refresh"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims is the identity payload embedded in every token.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTManager issues and verifies HS256 access/refresh token pairs.
type JWTManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewJWTManager builds a manager. accessMinutes and refreshDays fall back to
// 15 minutes and 7 days when zero.
func NewJWTManager(accessSecret, refreshSecret string, accessMinutes, refreshDays int) *JWTManager {
	if accessMinutes <= 0 {
		accessMinutes = 15
	}
	if refreshDays <= 0 {
		refreshDays = 7
	}
	return &JWTManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     time.Duration(accessMinutes) * time.Minute,
		refreshTTL:    time.Duration(refreshDays) * 24 * time.Hour,
	}
}

// GenerateAccessToken signs a short-lived token carrying {id, role}.
func (j *JWTManager) GenerateAccessToken(userID, role string) (string, time.Time, error) {
	return j.generate(userID, role, audienceAccess, j.accessSecret, j.accessTTL)
}

// GenerateRefreshToken signs a long-lived token carrying {id, role}.
func (j *JWTManager) GenerateRefreshToken(userID, role string) (string, time.Time, error) {
	return j.generate(userID, role, audienceRefresh, j.refreshSecret, j.refreshTTL)
}

// VerifyAccessToken validates signature, expiry and token type.
func (j *JWTManager) VerifyAccessToken(tokenStr string) (*Claims, error) {
	return j.verify(tokenStr, j.accessSecret, audienceAccess)
}

// VerifyRefreshToken validates signature, expiry and token type with the
// refresh secret. Tokens signed with the access secret are rejected.
func (j *JWTManager) VerifyRefreshToken(tokenStr string) (*Claims, error) {
	return j.verify(tokenStr, j.refreshSecret, audienceRefresh)
}

func (j *JWTManager) generate(userID, role, aud string, secret []byte, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(ttl)
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			Audience:  jwt.ClaimStrings{aud},
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

func (j *JWTManager) verify(tokenStr string, secret []byte, aud string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if !containsAudience(claims.Audience, aud) {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func containsAudience(aud jwt.ClaimStrings, target string) bool {
	for _, a := range aud {
		if a == target {
			return true
		}
	}
	return false
}
