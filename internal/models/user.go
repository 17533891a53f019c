package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles. Every mutation route is gated on a subset of these.
const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
	RoleSeller     = "seller"
)

// Account lifecycle. A user is created PENDING and becomes ACTIVE only
// after the registration OTP is verified.
const (
	StatusPending = "PENDING"
	StatusActive  = "ACTIVE"
)

// User represents a marketplace account.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserName     string             `bson:"user_name" json:"userName"`
	Email        string             `bson:"email" json:"email"`
	Phone        string             `bson:"phone" json:"phone"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Role         string             `bson:"role" json:"role"`
	Status       string             `bson:"status" json:"status"`
	RegionID     primitive.ObjectID `bson:"region_id,omitempty" json:"regionId,omitempty"`
	Image        string             `bson:"image,omitempty" json:"image,omitempty"`
	Year         int                `bson:"year,omitempty" json:"year,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// IsActive reports whether the account finished OTP verification.
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// ValidRole reports whether r is one of the known roles.
func ValidRole(r string) bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperAdmin, RoleSeller:
		return true
	}
	return false
}
