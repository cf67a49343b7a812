package handlers

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/pixisphere/pixisphere-api/internal/models"
	"github.com/pixisphere/pixisphere-api/internal/services/matching"
)

type InquiryHandler struct {
	DB       *gorm.DB
	Matching *matching.MatchingService
}

func NewInquiryHandler(db *gorm.DB, m *matching.MatchingService) *InquiryHandler {
	return &InquiryHandler{DB: db, Matching: m}
}

type submitInquiryReq struct {
	Category          string  `json:"category"`
	Date              string  `json:"date"` // YYYY-MM-DD
	Budget            float64 `json:"budget"`
	City              string  `json:"city"`
	ReferenceImageURL string  `json:"referenceImageURL"`
}

// SubmitInquiry stores the inquiry, then computes partner assignment and
// persists it as a second write. No transaction spans the two writes; a
// failure between them leaves the inquiry without its assignment.
func (h *InquiryHandler) SubmitInquiry(c *fiber.Ctx) error {
	clientID, err := getAuth(c)
	if err != nil {
		return err
	}

	var req submitInquiryReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid body",
		})
	}

	category := strings.TrimSpace(req.Category)
	city := strings.TrimSpace(req.City)
	if category == "" || strings.TrimSpace(req.Date) == "" || req.Budget <= 0 || city == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Category, date, budget, and city are required.",
		})
	}

	date, err := time.Parse("2006-01-02", strings.TrimSpace(req.Date))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid date format. Please use YYYY-MM-DD.",
		})
	}

	var client models.User
	if err := h.DB.First(&client, "id = ?", clientID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Client user not found",
		})
	}
	if client.Role != models.RoleClient {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Access denied. Not a client.",
		})
	}

	inquiry := models.Inquiry{
		ClientID:           clientID,
		Category:           category,
		Date:               date,
		Budget:             req.Budget,
		City:               city,
		ReferenceImageURL:  strings.TrimSpace(req.ReferenceImageURL),
		Status:             models.InquiryNew,
		AssignedPartnerIDs: mustJSON([]string{}),
	}
	if err := h.DB.Create(&inquiry).Error; err != nil {
		log.Println("Submit inquiry error:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error during inquiry submission",
		})
	}

	partnerIDs, err := h.Matching.AssignPartners(category, city, clientID)
	if err != nil {
		log.Println("Inquiry matching error:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error during inquiry submission",
		})
	}

	if len(partnerIDs) > 0 {
		assigned := make([]string, 0, len(partnerIDs))
		for _, id := range partnerIDs {
			assigned = append(assigned, id.String())
		}
		inquiry.AssignedPartnerIDs = mustJSON(assigned)
		if err := h.DB.Save(&inquiry).Error; err != nil {
			log.Println("Inquiry assignment save error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Server error during inquiry submission",
			})
		}
	}
	log.Printf("Inquiry %s assigned to %d partners\n", inquiry.ID, len(partnerIDs))

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Inquiry submitted successfully",
		"inquiry": inquiry,
	})
}

// GetPartnerLeads lists inquiries whose assignment snapshot contains the
// caller, newest first.
func (h *InquiryHandler) GetPartnerLeads(c *fiber.Ctx) error {
	partnerID, err := getAuth(c)
	if err != nil {
		return err
	}

	var partner models.User
	if err := h.DB.First(&partner, "id = ?", partnerID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Partner user not found",
		})
	}
	if partner.Role != models.RolePartner {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Access denied. Not a partner.",
		})
	}

	var leads []models.Inquiry
	member := datatypes.JSON([]byte(fmt.Sprintf("%q", partnerID.String())))
	if err := h.DB.
		Where("assigned_partner_ids @> ?", member).
		Order("created_at DESC").
		Find(&leads).Error; err != nil {
		log.Println("Get partner leads error:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error fetching leads",
		})
	}

	return c.JSON(fiber.Map{
		"count": len(leads),
		"leads": leads,
	})
}
