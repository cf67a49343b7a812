package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/pixisphere/pixisphere-api/internal/models"
)

type PartnerHandler struct {
	DB *gorm.DB
}

func NewPartnerHandler(db *gorm.DB) *PartnerHandler {
	return &PartnerHandler{DB: db}
}

type personalDetailsReq struct {
	FirstName   string          `json:"firstName"`
	LastName    string          `json:"lastName"`
	PhoneNumber string          `json:"phoneNumber"`
	DateOfBirth string          `json:"dateOfBirth"` // YYYY-MM-DD
	Address     *models.Address `json:"address"`
}

type serviceDetailsReq struct {
	Categories []string `json:"categories"`
	Locations  []string `json:"locations"`
	Experience int      `json:"experience"`
}

type documentMetadataReq struct {
	AadharNumber string `json:"aadharNumber"`
}

type onboardReq struct {
	PersonalDetails  *personalDetailsReq  `json:"personalDetails"`
	ServiceDetails   *serviceDetailsReq   `json:"serviceDetails"`
	DocumentMetadata *documentMetadataReq `json:"documentMetadata"`
}

func parseDOB(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func mustJSON(v interface{}) datatypes.JSON {
	raw, _ := json.Marshal(v)
	return datatypes.JSON(raw)
}

func (h *PartnerHandler) applyPersonal(p *models.PartnerProfile, pd *personalDetailsReq) error {
	dob, err := parseDOB(pd.DateOfBirth)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid dateOfBirth. Use YYYY-MM-DD")
	}
	p.FirstName = strings.TrimSpace(pd.FirstName)
	p.LastName = strings.TrimSpace(pd.LastName)
	p.PhoneNumber = strings.TrimSpace(pd.PhoneNumber)
	if dob != nil {
		p.DateOfBirth = dob
	}
	if pd.Address != nil {
		p.Address = mustJSON(pd.Address)
	}
	return nil
}

func (h *PartnerHandler) applyService(p *models.PartnerProfile, sd *serviceDetailsReq) {
	p.ServiceCategories = mustJSON(trimAll(sd.Categories))
	p.ServiceLocations = mustJSON(trimAll(sd.Locations))
	p.Experience = sd.Experience
}

// onboardingEditGuard decides whether the owner may resubmit while the
// profile sits in status. Verified profiles are locked; the 400 names the
// current state.
func onboardingEditGuard(status models.VerificationStatus) error {
	if status == models.StatusVerified {
		return fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("Profile update not allowed. Status is %s.", status))
	}
	return nil
}

// reopenIfRejected resets a rejected profile to pending and clears the admin
// comment; a resubmission is the only way back into review.
func reopenIfRejected(p *models.PartnerProfile) {
	if p.VerificationStatus == models.StatusRejected {
		p.VerificationStatus = models.StatusPending
		p.AdminComment = ""
	}
}

// SubmitOnboarding creates the caller's partner profile or updates it while
// it is still editable. A rejected profile is reopened by the resubmission:
// its state resets to pending and the admin comment is cleared. A verified
// profile cannot be edited at all.
func (h *PartnerHandler) SubmitOnboarding(c *fiber.Ctx) error {
	userID, err := getAuth(c)
	if err != nil {
		return err
	}

	var req onboardReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid body",
		})
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
		})
	}
	if user.Role != models.RolePartner {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Access denied, only partners can submit onboarding",
		})
	}

	var existing models.PartnerProfile
	err = h.DB.Where("user_id = ?", userID).First(&existing).Error
	if err == nil {
		if guardErr := onboardingEditGuard(existing.VerificationStatus); guardErr != nil {
			return guardErr
		}

		if req.PersonalDetails != nil {
			if err := h.applyPersonal(&existing, req.PersonalDetails); err != nil {
				return err
			}
		}
		if req.ServiceDetails != nil {
			h.applyService(&existing, req.ServiceDetails)
		}
		if req.DocumentMetadata != nil {
			existing.AadharNumber = strings.TrimSpace(req.DocumentMetadata.AadharNumber)
		}

		reopenIfRejected(&existing)

		if err := h.DB.Save(&existing).Error; err != nil {
			log.Println("Onboarding update error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Server error during profile submission",
			})
		}
		return c.JSON(fiber.Map{
			"message": "Partner profile updated successfully",
			"profile": existing,
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Println("Onboarding lookup error:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error during profile submission",
		})
	}

	if req.PersonalDetails == nil ||
		strings.TrimSpace(req.PersonalDetails.FirstName) == "" ||
		strings.TrimSpace(req.PersonalDetails.LastName) == "" ||
		strings.TrimSpace(req.PersonalDetails.PhoneNumber) == "" ||
		strings.TrimSpace(req.PersonalDetails.DateOfBirth) == "" ||
		req.PersonalDetails.Address == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "personalDetails (firstName, lastName, phoneNumber, dateOfBirth, address) are required",
		})
	}

	profile := models.PartnerProfile{
		UserID:             userID,
		VerificationStatus: models.StatusPending,
		ServiceCategories:  mustJSON([]string{}),
		ServiceLocations:   mustJSON([]string{}),
		Portfolio:          mustJSON([]models.PortfolioItem{}),
	}
	if err := h.applyPersonal(&profile, req.PersonalDetails); err != nil {
		return err
	}
	if req.ServiceDetails != nil {
		h.applyService(&profile, req.ServiceDetails)
	}
	if req.DocumentMetadata != nil {
		profile.AadharNumber = strings.TrimSpace(req.DocumentMetadata.AadharNumber)
	}

	if err := h.DB.Create(&profile).Error; err != nil {
		if isUniqueViolation(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Profile already exists for this user.",
			})
		}
		log.Println("Onboarding create error:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error during profile submission",
		})
	}

	// second write links the profile back onto the user; no transaction
	// spans the two
	user.PartnerProfileID = &profile.ID
	if err := h.DB.Save(&user).Error; err != nil {
		log.Println("Onboarding user-link error:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error during profile submission",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Partner profile created successfully",
		"profile": profile,
	})
}
