package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type InquiryStatus string

const (
	InquiryNew       InquiryStatus = "new"
	InquiryResponded InquiryStatus = "responded"
	InquiryBooked    InquiryStatus = "booked"
	InquiryClosed    InquiryStatus = "closed"
)

type Inquiry struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ClientID uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`

	Category string    `gorm:"not null;index" json:"category"`
	Date     time.Time `gorm:"not null" json:"date"`
	Budget   float64   `gorm:"not null" json:"budget"`
	City     string    `gorm:"not null;index" json:"city"`

	ReferenceImageURL string `gorm:"type:text" json:"reference_image_url,omitempty"`

	// declared with four states but nothing ever moves it past "new"
	Status InquiryStatus `gorm:"type:varchar(20);not null;index;default:'new'" json:"status"`

	// snapshot of matching partner user IDs, computed once at submission
	AssignedPartnerIDs datatypes.JSON `gorm:"type:jsonb" json:"assigned_partner_ids"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
