package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pixisphere/pixisphere-api/internal/models"
)

type PortfolioHandler struct {
	DB *gorm.DB
}

func NewPortfolioHandler(db *gorm.DB) *PortfolioHandler {
	return &PortfolioHandler{DB: db}
}

// ==== portfolio list operations ====

func decodePortfolio(p *models.PartnerProfile) []models.PortfolioItem {
	if len(p.Portfolio) == 0 {
		return nil
	}
	var items []models.PortfolioItem
	if err := json.Unmarshal(p.Portfolio, &items); err != nil {
		return nil
	}
	return items
}

func setPortfolio(p *models.PartnerProfile, items []models.PortfolioItem) {
	if items == nil {
		items = []models.PortfolioItem{}
	}
	p.Portfolio = mustJSON(items)
}

// nextOrderIndex is max existing + 1 rather than len(items), so gaps left by
// deletions never cause an index to be reissued.
func nextOrderIndex(items []models.PortfolioItem) int {
	max := -1
	for _, it := range items {
		if it.OrderIndex > max {
			max = it.OrderIndex
		}
	}
	return max + 1
}

// reorderItems rebuilds the portfolio from the supplied id sequence. Every id
// must exist; items missing from the sequence are dropped and surviving items
// get indices 0..n-1 in sequence order. A duplicated id yields one copy per
// occurrence, each at its own position.
func reorderItems(items []models.PortfolioItem, orderedIDs []string) ([]models.PortfolioItem, error) {
	byID := make(map[string]models.PortfolioItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	for _, id := range orderedIDs {
		if _, ok := byID[id]; !ok {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid portfolio item ID provided: "+id)
		}
	}

	out := make([]models.PortfolioItem, 0, len(orderedIDs))
	for i, id := range orderedIDs {
		it := byID[id]
		it.OrderIndex = i
		out = append(out, it)
	}
	return out, nil
}

func sortedByOrderIndex(items []models.PortfolioItem) []models.PortfolioItem {
	out := make([]models.PortfolioItem, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OrderIndex < out[j].OrderIndex
	})
	return out
}

// findOrCreateProfile returns the caller's profile, creating a minimal one on
// the first portfolio write and linking it back onto the user (two writes, no
// transaction).
func (h *PortfolioHandler) findOrCreateProfile(partnerID uuid.UUID) (*models.PartnerProfile, error) {
	var p models.PartnerProfile
	err := h.DB.Where("user_id = ?", partnerID).First(&p).Error
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	p = models.PartnerProfile{
		UserID:             partnerID,
		VerificationStatus: models.StatusPending,
		ServiceCategories:  mustJSON([]string{}),
		ServiceLocations:   mustJSON([]string{}),
		Portfolio:          mustJSON([]models.PortfolioItem{}),
	}
	if err := h.DB.Create(&p).Error; err != nil {
		return nil, err
	}
	if err := h.DB.Model(&models.User{}).
		Where("id = ?", partnerID).
		Update("partner_profile_id", p.ID).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ==== handlers ====

type addItemReq struct {
	ImageURL    string `json:"imageUrl"`
	Description string `json:"description"`
}

func (h *PortfolioHandler) AddItem(c *fiber.Ctx) error {
	partnerID, err := getAuth(c)
	if err != nil {
		return err
	}

	var req addItemReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid body",
		})
	}
	if strings.TrimSpace(req.ImageURL) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Image URL is required",
		})
	}

	profile, err := h.findOrCreateProfile(partnerID)
	if err != nil {
		log.Println("Add portfolio item error:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error adding portfolio item",
		})
	}

	items := decodePortfolio(profile)
	item := models.PortfolioItem{
		ID:          uuid.New().String(),
		ImageURL:    strings.TrimSpace(req.ImageURL),
		Description: strings.TrimSpace(req.Description),
		OrderIndex:  nextOrderIndex(items),
		UploadedAt:  time.Now(),
	}
	items = append(items, item)
	setPortfolio(profile, items)

	if err := h.DB.Save(profile).Error; err != nil {
		log.Println("Add portfolio item save error:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error adding portfolio item",
		})
	}

	// return the stored item, located by its generated id
	for _, it := range decodePortfolio(profile) {
		if it.ID == item.ID {
			return c.Status(fiber.StatusCreated).JSON(fiber.Map{
				"message": "Portfolio item added successfully",
				"item":    it,
			})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Server error adding portfolio item",
	})
}

func (h *PortfolioHandler) GetMine(c *fiber.Ctx) error {
	partnerID, err := getAuth(c)
	if err != nil {
		return err
	}

	var profile models.PartnerProfile
	if err := h.DB.Where("user_id = ?", partnerID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Partner profile not found",
			})
		}
		log.Println("Get portfolio error:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error fetching portfolio",
		})
	}

	items := sortedByOrderIndex(decodePortfolio(&profile))
	if items == nil {
		items = []models.PortfolioItem{}
	}
	return c.JSON(fiber.Map{
		"count":     len(items),
		"portfolio": items,
	})
}

type editItemReq struct {
	ImageURL    *string `json:"imageUrl"`
	Description *string `json:"description"`
}

func (h *PortfolioHandler) EditItem(c *fiber.Ctx) error {
	partnerID, err := getAuth(c)
	if err != nil {
		return err
	}
	itemID := c.Params("itemId")

	var req editItemReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid body",
		})
	}
	if req.ImageURL == nil && req.Description == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Description or Image URL is required for update",
		})
	}

	var profile models.PartnerProfile
	if err := h.DB.Where("user_id = ?", partnerID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Partner profile not found",
			})
		}
		log.Println("Edit portfolio item error:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error updating portfolio item",
		})
	}

	items := decodePortfolio(&profile)
	idx := -1
	for i, it := range items {
		if it.ID == itemID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Portfolio item not found",
		})
	}

	if req.Description != nil {
		items[idx].Description = strings.TrimSpace(*req.Description)
	}
	if req.ImageURL != nil {
		items[idx].ImageURL = strings.TrimSpace(*req.ImageURL)
	}
	setPortfolio(&profile, items)

	if err := h.DB.Save(&profile).Error; err != nil {
		log.Println("Edit portfolio item save error:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error updating portfolio item",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Portfolio item updated successfully",
		"item":    items[idx],
	})
}

func (h *PortfolioHandler) DeleteItem(c *fiber.Ctx) error {
	partnerID, err := getAuth(c)
	if err != nil {
		return err
	}
	itemID := c.Params("itemId")

	var profile models.PartnerProfile
	if err := h.DB.Where("user_id = ?", partnerID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Partner profile not found",
			})
		}
		log.Println("Delete portfolio item error:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error deleting portfolio item",
		})
	}

	items := decodePortfolio(&profile)
	idx := -1
	for i, it := range items {
		if it.ID == itemID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Portfolio item not found",
		})
	}

	// splice only; remaining order indices keep their gap until a reorder
	items = append(items[:idx], items[idx+1:]...)
	setPortfolio(&profile, items)

	if err := h.DB.Save(&profile).Error; err != nil {
		log.Println("Delete portfolio item save error:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error deleting portfolio item",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Portfolio item deleted successfully",
	})
}

type reorderReq struct {
	OrderedItemIDs []string `json:"orderedItemIds"`
}

func (h *PortfolioHandler) Reorder(c *fiber.Ctx) error {
	partnerID, err := getAuth(c)
	if err != nil {
		return err
	}

	var req reorderReq
	if err := c.BodyParser(&req); err != nil || req.OrderedItemIDs == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "orderedItemIds must be an array",
		})
	}

	var profile models.PartnerProfile
	if err := h.DB.Where("user_id = ?", partnerID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Partner profile not found",
			})
		}
		log.Println("Reorder portfolio error:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error reordering portfolio",
		})
	}

	items, err := reorderItems(decodePortfolio(&profile), req.OrderedItemIDs)
	if err != nil {
		return err
	}
	setPortfolio(&profile, items)

	if err := h.DB.Save(&profile).Error; err != nil {
		log.Println("Reorder portfolio save error:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error reordering portfolio",
		})
	}

	return c.JSON(fiber.Map{
		"message":   "Portfolio reordered successfully",
		"portfolio": items,
	})
}
