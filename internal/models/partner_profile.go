package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type VerificationStatus string

const (
	StatusPending  VerificationStatus = "pending"
	StatusVerified VerificationStatus = "verified"
	StatusRejected VerificationStatus = "rejected"
)

// PortfolioItem lives inside the profile's Portfolio JSON column; item IDs
// are generated app-side since the rows never exist on their own.
type PortfolioItem struct {
	ID          string    `json:"id"`
	ImageURL    string    `json:"image_url"`
	Description string    `json:"description"`
	OrderIndex  int       `json:"order_index"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
}

type PartnerProfile struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`

	// personal details
	FirstName   string     `gorm:"type:varchar(80)" json:"first_name"`
	LastName    string     `gorm:"type:varchar(80)" json:"last_name"`
	PhoneNumber string     `gorm:"type:varchar(30)" json:"phone_number"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Address     datatypes.JSON `gorm:"type:jsonb" json:"address"`

	// service details; free text, never validated against the admin taxonomy
	ServiceCategories datatypes.JSON `gorm:"type:jsonb" json:"service_categories"`
	ServiceLocations  datatypes.JSON `gorm:"type:jsonb" json:"service_locations"`
	Experience        int            `json:"experience"`

	AadharNumber string `gorm:"type:varchar(20)" json:"aadhar_number"`

	Portfolio datatypes.JSON `gorm:"type:jsonb" json:"portfolio"`

	VerificationStatus VerificationStatus `gorm:"type:varchar(20);not null;index;default:'pending'" json:"verification_status"`
	AdminComment       string             `gorm:"type:text" json:"admin_comment"`
	IsFeatured         bool               `gorm:"default:false" json:"is_featured"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidDecision reports whether s is a status an admin may set on review.
func ValidDecision(s VerificationStatus) bool {
	return s == StatusVerified || s == StatusRejected
}
