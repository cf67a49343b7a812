package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleClient  Role = "client"
	RolePartner Role = "partner"
	RoleAdmin   Role = "admin"
)

type User struct {
	ID    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email string    `gorm:"uniqueIndex;not null" json:"email"`

	Password string `gorm:"not null" json:"-"`
	Role     Role   `gorm:"type:varchar(20);not null;index;default:'client'" json:"role"`

	IsVerified bool `gorm:"default:false" json:"is_verified"`

	// set after the first onboarding submission / portfolio write
	PartnerProfileID *uuid.UUID `gorm:"type:uuid" json:"partner_profile_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	PartnerProfile *PartnerProfile `gorm:"foreignKey:UserID;references:ID" json:"partner_profile,omitempty"`
}

// ValidRole reports whether a caller-supplied role may be chosen at signup.
// Admin accounts are never created through the public API.
func ValidRole(r string) bool {
	return r == string(RoleClient) || r == string(RolePartner)
}
