package models

// RegisterRequest is the registration payload.
//
// Role is stored as submitted, privileged roles included; nothing here
// restricts self-registration to user/seller. Deployments that need
// controlled admin provisioning must gate it upstream.
type RegisterRequest struct {
	UserName string `json:"userName" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone" validate:"required,e164"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=admin user super_admin seller"`
	RegionID string `json:"regionId,omitempty"`
	Image    string `json:"image,omitempty"`
	Year     int    `json:"year,omitempty" validate:"omitempty,min=1000"`
}

// LoginRequest carries username/password credentials.
type LoginRequest struct {
	UserName string `json:"userName" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SendOTPRequest asks for a phone possession check before registration.
type SendOTPRequest struct {
	Phone string `json:"phone" validate:"required,e164"`
}

// VerifyOTPRequest submits the code sent to a phone.
type VerifyOTPRequest struct {
	Phone string `json:"phone" validate:"required,e164"`
	OTP   string `json:"otp" validate:"required,len=6"`
}

// VerifyEmailRequest submits the registration code sent to an email.
type VerifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6"`
}

// RefreshRequest exchanges a refresh token for a new access token.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// AuthTokens is the token pair returned by login.
type AuthTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresAt    int64  `json:"expiresAt"`
}
