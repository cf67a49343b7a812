package handlers

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixisphere/pixisphere-api/internal/models"
)

func TestOnboardingEditGuardBlocksVerified(t *testing.T) {
	err := onboardingEditGuard(models.StatusVerified)
	require.Error(t, err)

	var fe *fiber.Error
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)
	// the 400 names the current state
	assert.Contains(t, fe.Message, "verified")
}

func TestOnboardingEditGuardAllowsPendingAndRejected(t *testing.T) {
	assert.NoError(t, onboardingEditGuard(models.StatusPending))
	assert.NoError(t, onboardingEditGuard(models.StatusRejected))
}

func TestReopenIfRejectedResetsStateAndComment(t *testing.T) {
	p := models.PartnerProfile{
		VerificationStatus: models.StatusRejected,
		AdminComment:       "documents unreadable",
	}

	reopenIfRejected(&p)
	assert.Equal(t, models.StatusPending, p.VerificationStatus)
	assert.Empty(t, p.AdminComment)
}

func TestReopenIfRejectedLeavesPendingAlone(t *testing.T) {
	p := models.PartnerProfile{
		VerificationStatus: models.StatusPending,
		AdminComment:       "",
	}

	reopenIfRejected(&p)
	assert.Equal(t, models.StatusPending, p.VerificationStatus)
}

func TestReopenIfRejectedNeverTouchesVerified(t *testing.T) {
	// unreachable through the handler (the guard fires first) but the reset
	// itself must not downgrade a verified profile
	p := models.PartnerProfile{
		VerificationStatus: models.StatusVerified,
		AdminComment:       "approved",
	}

	reopenIfRejected(&p)
	assert.Equal(t, models.StatusVerified, p.VerificationStatus)
	assert.Equal(t, "approved", p.AdminComment)
}
