package matching

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pixisphere/pixisphere-api/internal/models"
)

// MatchingService assigns verified partners to freshly submitted inquiries.
type MatchingService struct {
	DB *gorm.DB
}

func NewMatchingService(db *gorm.DB) *MatchingService {
	return &MatchingService{DB: db}
}

// AssignPartners scans every verified partner profile and collects the user
// IDs whose declared service categories or locations match the inquiry. The
// result is a one-shot snapshot: partners verified later are never assigned
// retroactively.
func (s *MatchingService) AssignPartners(category, city string, requesterID uuid.UUID) ([]uuid.UUID, error) {
	var profiles []models.PartnerProfile
	if err := s.DB.
		Where("verification_status = ?", models.StatusVerified).
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	return FilterProfiles(profiles, category, city, requesterID), nil
}

// FilterProfiles selects the user IDs to assign from a loaded profile set:
// only verified profiles qualify, the requester is never assigned to their
// own inquiry, and the rest is the ProfileMatches predicate. The verified
// check is repeated here even though AssignPartners already queries on it.
func FilterProfiles(profiles []models.PartnerProfile, category, city string, requesterID uuid.UUID) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(profiles))
	for _, p := range profiles {
		if p.VerificationStatus != models.StatusVerified {
			continue
		}
		if p.UserID == requesterID {
			continue
		}
		cats := DecodeStringList(p.ServiceCategories)
		locs := DecodeStringList(p.ServiceLocations)
		if ProfileMatches(cats, locs, category, city) {
			ids = append(ids, p.UserID)
		}
	}
	return ids
}

// ProfileMatches applies the assignment predicate: a profile qualifies when
// any declared category contains the inquiry category, OR any declared
// location contains the inquiry city. Substring search is unanchored and
// case-insensitive, so "Delhi" matches a declared "New Delhi".
func ProfileMatches(categories, locations []string, category, city string) bool {
	return containsFold(categories, category) || containsFold(locations, city)
}

func containsFold(haystack []string, needle string) bool {
	needle = strings.ToLower(strings.TrimSpace(needle))
	if needle == "" {
		return false
	}
	for _, h := range haystack {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}

// DecodeStringList unpacks a JSON string-array column; a nil or malformed
// value decodes to an empty list.
func DecodeStringList(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
