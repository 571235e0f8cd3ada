package model

import (
	"time"
)

// Role is stored as a {label, value} pair exactly as the dashboard sends it.
type Role struct {
	Label string `json:"label" bson:"label" validate:"required"`
	Value string `json:"value" bson:"value" validate:"required"`
}

// User is a back-office account. LoginID is generated server-side
// (prefix + 4 random digits) and, like username, email and phoneNumber,
// guarded by a unique index. Only the bcrypt hash of the password is kept.
type User struct {
	ID             string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	LoginID        string    `json:"loginID" bson:"loginID"`
	Image          string    `json:"image,omitempty" bson:"image,omitempty"`
	Username       string    `json:"username" bson:"username" validate:"required"`
	Gender         string    `json:"gender" bson:"gender" validate:"required"`
	Email          string    `json:"email" bson:"email" validate:"required,email"`
	PhoneNumber    string    `json:"phoneNumber" bson:"phoneNumber" validate:"required"`
	NID            string    `json:"nid,omitempty" bson:"nid,omitempty"`
	CurrentAddress string    `json:"currentAddress" bson:"currentAddress" validate:"required"`
	Role           Role      `json:"role" bson:"role" validate:"required"`
	Password       string    `json:"password,omitempty" bson:"password" validate:"required,min=6"`
	StatusID       int       `json:"statusID" bson:"statusID"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt" bson:"updatedAt"`
}

const (
	UserStatusActive  = 1
	UserStatusDeleted = 255
)

// UserProjection is the sanitized view returned by the API; it never carries
// password material.
type UserProjection struct {
	ID             string    `json:"id"`
	LoginID        string    `json:"loginID"`
	Username       string    `json:"username"`
	Gender         string    `json:"gender,omitempty"`
	Email          string    `json:"email"`
	PhoneNumber    string    `json:"phoneNumber"`
	NID            string    `json:"nid,omitempty"`
	CurrentAddress string    `json:"currentAddress"`
	Role           Role      `json:"role"`
	Image          string    `json:"image,omitempty"`
	CreatedAt      time.Time `json:"createdAt,omitempty"`
}

// Sanitize builds the API projection of u.
func (u *User) Sanitize() UserProjection {
	return UserProjection{
		ID:             u.ID,
		LoginID:        u.LoginID,
		Username:       u.Username,
		Gender:         u.Gender,
		Email:          u.Email,
		PhoneNumber:    u.PhoneNumber,
		NID:            u.NID,
		CurrentAddress: u.CurrentAddress,
		Role:           u.Role,
		Image:          u.Image,
		CreatedAt:      u.CreatedAt,
	}
}

// UserUpdate carries the mutable profile fields; password and loginID are
// not updatable through this path.
type UserUpdate struct {
	Image          string `json:"image,omitempty"`
	Username       string `json:"username,omitempty"`
	Gender         string `json:"gender,omitempty"`
	Email          string `json:"email,omitempty" validate:"omitempty,email"`
	PhoneNumber    string `json:"phoneNumber,omitempty"`
	NID            string `json:"nid,omitempty"`
	CurrentAddress string `json:"currentAddress,omitempty"`
	Role           *Role  `json:"role,omitempty"`
}
