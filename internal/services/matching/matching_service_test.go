package matching

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/pixisphere/pixisphere-api/internal/models"
)

func jsonList(t *testing.T, in []string) datatypes.JSON {
	raw, err := json.Marshal(in)
	require.NoError(t, err)
	return datatypes.JSON(raw)
}

func profile(t *testing.T, userID uuid.UUID, status models.VerificationStatus, cats, locs []string) models.PartnerProfile {
	return models.PartnerProfile{
		UserID:             userID,
		VerificationStatus: status,
		ServiceCategories:  jsonList(t, cats),
		ServiceLocations:   jsonList(t, locs),
	}
}

func TestProfileMatchesCategorySubstring(t *testing.T) {
	cats := []string{"Wedding Photography", "Portraits"}
	locs := []string{"Mumbai"}

	assert.True(t, ProfileMatches(cats, locs, "wedding", "Chennai"))
	assert.True(t, ProfileMatches(cats, locs, "PORTRAIT", "Chennai"))
	assert.False(t, ProfileMatches(cats, locs, "maternity", "Chennai"))
}

func TestProfileMatchesLocationSubstringUnanchored(t *testing.T) {
	cats := []string{"Maternity"}
	locs := []string{"New Delhi", "Gurgaon"}

	// city-only match is enough; matching is OR, not AND
	assert.True(t, ProfileMatches(cats, locs, "wedding", "Delhi"))
	assert.True(t, ProfileMatches(cats, locs, "wedding", "gurgaon"))
	assert.False(t, ProfileMatches(cats, locs, "wedding", "Pune"))
}

func TestProfileMatchesEitherDimensionAlone(t *testing.T) {
	// category hit with no location hit
	assert.True(t, ProfileMatches([]string{"Fashion"}, nil, "fashion", "Nowhere"))
	// location hit with no category hit
	assert.True(t, ProfileMatches(nil, []string{"Jaipur"}, "fashion", "jaipur"))
	// neither
	assert.False(t, ProfileMatches([]string{"Fashion"}, []string{"Jaipur"}, "travel", "Kochi"))
}

func TestProfileMatchesEmptyInputs(t *testing.T) {
	assert.False(t, ProfileMatches([]string{"Wedding"}, []string{"Delhi"}, "", ""))
	assert.False(t, ProfileMatches(nil, nil, "wedding", "delhi"))
	// blank needle must not match everything
	assert.False(t, ProfileMatches([]string{"Wedding"}, []string{"Delhi"}, "  ", "  "))
}

func TestFilterProfilesOnlyVerified(t *testing.T) {
	requester := uuid.New()
	verified := uuid.New()
	pending := uuid.New()
	rejected := uuid.New()

	profiles := []models.PartnerProfile{
		profile(t, verified, models.StatusVerified, []string{"Wedding"}, []string{"Delhi"}),
		profile(t, pending, models.StatusPending, []string{"Wedding"}, []string{"Delhi"}),
		profile(t, rejected, models.StatusRejected, []string{"Wedding"}, []string{"Delhi"}),
	}

	ids := FilterProfiles(profiles, "Wedding", "Delhi", requester)
	assert.Equal(t, []uuid.UUID{verified}, ids)
}

func TestFilterProfilesExcludesRequester(t *testing.T) {
	requester := uuid.New()
	other := uuid.New()

	profiles := []models.PartnerProfile{
		profile(t, requester, models.StatusVerified, []string{"Wedding"}, []string{"Delhi"}),
		profile(t, other, models.StatusVerified, []string{"Wedding"}, []string{"Delhi"}),
	}

	ids := FilterProfiles(profiles, "Wedding", "Delhi", requester)
	assert.Equal(t, []uuid.UUID{other}, ids)
}

func TestFilterProfilesNoMatchesYieldsEmptySet(t *testing.T) {
	profiles := []models.PartnerProfile{
		profile(t, uuid.New(), models.StatusVerified, []string{"Fashion"}, []string{"Mumbai"}),
	}

	ids := FilterProfiles(profiles, "Wedding", "Delhi", uuid.New())
	assert.Empty(t, ids)
}

func TestDecodeStringList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, DecodeStringList([]byte(`["a","b"]`)))
	assert.Nil(t, DecodeStringList(nil))
	assert.Nil(t, DecodeStringList([]byte(`not json`)))
	assert.Empty(t, DecodeStringList([]byte(`[]`)))
}
