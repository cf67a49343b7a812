package handlers

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pixisphere/pixisphere-api/internal/cache"
	"github.com/pixisphere/pixisphere-api/internal/models"
)

type AdminHandler struct {
	DB    *gorm.DB
	Stats *cache.StatsCache
}

func NewAdminHandler(db *gorm.DB, stats *cache.StatsCache) *AdminHandler {
	return &AdminHandler{DB: db, Stats: stats}
}

// ==== verification workflow ====

func (h *AdminHandler) GetPendingVerifications(c *fiber.Ctx) error {
	var profiles []models.PartnerProfile
	if err := h.DB.
		Where("verification_status = ?", models.StatusPending).
		Order("created_at ASC").
		Find(&profiles).Error; err != nil {
		log.Println("Pending verifications error:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	return c.JSON(fiber.Map{
		"count":    len(profiles),
		"profiles": profiles,
	})
}

type verifyReq struct {
	Status       string `json:"status"`
	AdminComment string `json:"adminComment"`
}

// VerifyPartner records the admin decision. The transition is repeatable: a
// profile already decided may be decided again.
func (h *AdminHandler) VerifyPartner(c *fiber.Ctx) error {
	profileID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid profile ID format",
		})
	}

	var req verifyReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid body",
		})
	}

	status := models.VerificationStatus(strings.TrimSpace(req.Status))
	if !models.ValidDecision(status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": `Invalid status. Must be either "verified" or "rejected"`,
		})
	}

	var profile models.PartnerProfile
	if err := h.DB.First(&profile, "id = ?", profileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Profile not found",
			})
		}
		log.Println("Verify partner lookup error:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error during verification",
		})
	}

	profile.VerificationStatus = status
	profile.AdminComment = strings.TrimSpace(req.AdminComment)

	if err := h.DB.Save(&profile).Error; err != nil {
		log.Println("Verify partner save error:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error during verification",
		})
	}

	h.Stats.Invalidate(c.UserContext())

	return c.JSON(fiber.Map{
		"message": "Profile " + string(status) + " updated successfully",
		"profile": profile,
	})
}

// ==== stats ====

type AdminStats struct {
	TotalClients         int64 `json:"totalClients"`
	TotalPartners        int64 `json:"totalPartners"`
	PendingVerifications int64 `json:"pendingVerifications"`
	// inquiry totals were never wired up; kept at zero on purpose
	TotalInquiries int64 `json:"totalInquiries"`
}

func (h *AdminHandler) GetStats(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var stats AdminStats
	if hit, err := h.Stats.Get(ctx, &stats); err == nil && hit {
		return c.JSON(stats)
	}

	if err := h.DB.Model(&models.User{}).
		Where("role = ?", models.RoleClient).
		Count(&stats.TotalClients).Error; err != nil {
		log.Println("Admin stats error:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error during fetching admin stats",
		})
	}
	if err := h.DB.Model(&models.User{}).
		Where("role = ?", models.RolePartner).
		Count(&stats.TotalPartners).Error; err != nil {
		log.Println("Admin stats error:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error during fetching admin stats",
		})
	}
	if err := h.DB.Model(&models.PartnerProfile{}).
		Where("verification_status = ?", models.StatusPending).
		Count(&stats.PendingVerifications).Error; err != nil {
		log.Println("Admin stats error:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error during fetching admin stats",
		})
	}

	if err := h.Stats.Set(ctx, stats); err != nil {
		log.Println("Admin stats cache error:", err)
	}

	return c.JSON(stats)
}

// ==== taxonomy: categories ====

type categoryReq struct {
	Name string `json:"name"`
}

func (h *AdminHandler) CreateCategory(c *fiber.Ctx) error {
	var req categoryReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid body",
		})
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Category name is required",
		})
	}

	cat := models.Category{Name: name}
	if err := h.DB.Create(&cat).Error; err != nil {
		if isUniqueViolation(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Category already exists",
			})
		}
		log.Println("Create category error:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Category created successfully",
		"category": cat,
	})
}

func (h *AdminHandler) GetCategories(c *fiber.Ctx) error {
	var cats []models.Category
	if err := h.DB.Order("name ASC").Find(&cats).Error; err != nil {
		log.Println("Get categories error:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}
	return c.JSON(fiber.Map{
		"count":      len(cats),
		"categories": cats,
	})
}

func (h *AdminHandler) UpdateCategory(c *fiber.Ctx) error {
	catID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid category ID format",
		})
	}

	var req categoryReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid body",
		})
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Category name is required",
		})
	}

	var cat models.Category
	if err := h.DB.First(&cat, "id = ?", catID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Category not found",
			})
		}
		log.Println("Update category error:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	cat.Name = name
	if err := h.DB.Save(&cat).Error; err != nil {
		if isUniqueViolation(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Category already exists",
			})
		}
		log.Println("Update category save error:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	return c.JSON(fiber.Map{
		"message":  "Category updated successfully",
		"category": cat,
	})
}

func (h *AdminHandler) DeleteCategory(c *fiber.Ctx) error {
	catID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid category ID format",
		})
	}

	res := h.DB.Delete(&models.Category{}, "id = ?", catID)
	if res.Error != nil {
		log.Println("Delete category error:", res.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Category not found",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Category deleted successfully",
	})
}

// ==== taxonomy: locations ====

type locationReq struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

func (h *AdminHandler) CreateLocation(c *fiber.Ctx) error {
	var req locationReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid body",
		})
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Location name is required",
		})
	}

	locType := models.LocationCity
	if t := strings.TrimSpace(req.Type); t != "" {
		locType = models.LocationType(t)
		if !models.ValidLocationType(locType) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": `Invalid type. Must be one of "city", "state", "country"`,
			})
		}
	}

	loc := models.Location{Name: name, Type: locType}
	if err := h.DB.Create(&loc).Error; err != nil {
		if isUniqueViolation(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Location already exists",
			})
		}
		log.Println("Create location error:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Location created successfully",
		"location": loc,
	})
}

func (h *AdminHandler) GetLocations(c *fiber.Ctx) error {
	var locs []models.Location
	if err := h.DB.Order("name ASC").Find(&locs).Error; err != nil {
		log.Println("Get locations error:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}
	return c.JSON(fiber.Map{
		"count":     len(locs),
		"locations": locs,
	})
}

func (h *AdminHandler) UpdateLocation(c *fiber.Ctx) error {
	locID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid location ID format",
		})
	}

	var req locationReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid body",
		})
	}

	var loc models.Location
	if err := h.DB.First(&loc, "id = ?", locID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Location not found",
			})
		}
		log.Println("Update location error:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		loc.Name = name
	}
	if t := strings.TrimSpace(req.Type); t != "" {
		locType := models.LocationType(t)
		if !models.ValidLocationType(locType) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": `Invalid type. Must be one of "city", "state", "country"`,
			})
		}
		loc.Type = locType
	}

	if err := h.DB.Save(&loc).Error; err != nil {
		if isUniqueViolation(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Location already exists",
			})
		}
		log.Println("Update location save error:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	return c.JSON(fiber.Map{
		"message":  "Location updated successfully",
		"location": loc,
	})
}

func (h *AdminHandler) DeleteLocation(c *fiber.Ctx) error {
	locID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid location ID format",
		})
	}

	res := h.DB.Delete(&models.Location{}, "id = ?", locID)
	if res.Error != nil {
		log.Println("Delete location error:", res.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Location not found",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Location deleted successfully",
	})
}

// ==== partner promotion ====

// PromotePartner flips a client account to the partner role so the user can
// start onboarding. Partners and admins cannot be promoted again.
func (h *AdminHandler) PromotePartner(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("partnerId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid user ID format",
		})
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
			})
		}
		log.Println("Promote partner error:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	if user.Role != models.RoleClient {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Only client users can be promoted to partner",
		})
	}

	user.Role = models.RolePartner
	if err := h.DB.Save(&user).Error; err != nil {
		log.Println("Promote partner save error:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	h.Stats.Invalidate(c.UserContext())

	return c.JSON(fiber.Map{
		"message": "User promoted to partner successfully",
		"user":    userPayload(&user),
	})
}
