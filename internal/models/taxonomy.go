package models

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name string    `gorm:"uniqueIndex;not null" json:"name"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type LocationType string

const (
	LocationCity    LocationType = "city"
	LocationState   LocationType = "state"
	LocationCountry LocationType = "country"
)

// Location is flat reference data; no hierarchy is enforced between types.
type Location struct {
	ID   uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name string       `gorm:"uniqueIndex;not null" json:"name"`
	Type LocationType `gorm:"type:varchar(20);not null;default:'city'" json:"type"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ValidLocationType(t LocationType) bool {
	return t == LocationCity || t == LocationState || t == LocationCountry
}
