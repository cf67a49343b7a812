package handlers

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/pixisphere/pixisphere-api/internal/models"
	"github.com/pixisphere/pixisphere-api/internal/utils"
)

type AuthHandler struct {
	DB        *gorm.DB
	JWTSecret string
	Expires   int
}

type SignupReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func userPayload(u *models.User) fiber.Map {
	return fiber.Map{
		"id":    u.ID,
		"email": u.Email,
		"role":  u.Role,
	}
}

// normalizeEmail is applied on signup storage AND on every lookup, which is
// what makes the email uniqueness check case-insensitive.
func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// loginFailure maps a login attempt to the message the API answers with; an
// empty string means the credentials check out. A nil user stands for a
// lookup miss.
func loginFailure(u *models.User, password string) string {
	if u == nil {
		return "Invalid email or password"
	}
	if !utils.CheckPassword(u.Password, password) {
		return "Invalid credentials"
	}
	return ""
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req SignupReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid body",
		})
	}

	email := normalizeEmail(req.Email)
	password := strings.TrimSpace(req.Password)

	if email == "" || !strings.Contains(email, "@") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Please enter a valid email",
		})
	}
	if len(password) < 6 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Password must be at least 6 characters",
		})
	}

	// anything outside client/partner falls back to client; admin accounts
	// are never created through the public API
	role := models.RoleClient
	if models.ValidRole(strings.TrimSpace(req.Role)) {
		role = models.Role(strings.TrimSpace(req.Role))
	}

	var existing models.User
	err := h.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "User already exists",
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Println("Signup lookup error:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error during signup",
		})
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		log.Println("Signup hash error:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error during signup",
		})
	}

	u := models.User{
		Email:    email,
		Password: hash,
		Role:     role,
	}
	if err := h.DB.Create(&u).Error; err != nil {
		if isUniqueViolation(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "User already exists",
			})
		}
		log.Println("Signup create error:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error during signup",
		})
	}

	token, err := utils.SignJWT(h.JWTSecret, u.ID.String(), string(u.Role), h.Expires)
	if err != nil {
		log.Println("Signup token error:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error during signup",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"token":   token,
		"user":    userPayload(&u),
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid body",
		})
	}

	email := normalizeEmail(req.Email)
	password := strings.TrimSpace(req.Password)

	if email == "" || password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Please provide email and password",
		})
	}

	var u models.User
	found := &u
	if err := h.DB.Where("email = ?", email).First(&u).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Println("Login lookup error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Server error during login",
			})
		}
		found = nil
	}

	if msg := loginFailure(found, password); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": msg,
		})
	}

	token, err := utils.SignJWT(h.JWTSecret, u.ID.String(), string(u.Role), h.Expires)
	if err != nil {
		log.Println("Login token error:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error during login",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"user":    userPayload(&u),
	})
}
