package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixisphere/pixisphere-api/internal/models"
	"github.com/pixisphere/pixisphere-api/internal/utils"
)

// validation-only paths; nothing here reaches the database
func newAuthApp() *fiber.App {
	app := fiber.New()
	h := &AuthHandler{JWTSecret: "test", Expires: 10}
	app.Post("/signup", h.Signup)
	app.Post("/login", h.Login)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestSignupRejectsInvalidEmail(t *testing.T) {
	app := newAuthApp()

	resp := postJSON(t, app, "/signup", `{"email":"not-an-email","password":"secret1"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSignupRejectsShortPassword(t *testing.T) {
	app := newAuthApp()

	resp := postJSON(t, app, "/signup", `{"email":"a@b.com","password":"123"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSignupRejectsMalformedBody(t *testing.T) {
	app := newAuthApp()

	resp := postJSON(t, app, "/signup", `{"email":`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestNormalizeEmailIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, "user@example.com", normalizeEmail("  User@Example.COM "))
	// the same key for every casing is what makes the duplicate-email check
	// case-insensitive
	assert.Equal(t, normalizeEmail("USER@EXAMPLE.COM"), normalizeEmail("user@example.com"))
}

func TestLoginFailureWrongPassword(t *testing.T) {
	hash, err := utils.HashPassword("correct-horse")
	require.NoError(t, err)
	u := &models.User{Email: "user@example.com", Password: hash}

	assert.Equal(t, "Invalid credentials", loginFailure(u, "battery-staple"))
	assert.Empty(t, loginFailure(u, "correct-horse"))
}

func TestLoginFailureUnknownEmail(t *testing.T) {
	assert.Equal(t, "Invalid email or password", loginFailure(nil, "whatever"))
}

func TestLoginRequiresEmailAndPassword(t *testing.T) {
	app := newAuthApp()

	resp := postJSON(t, app, "/login", `{"email":"a@b.com"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = postJSON(t, app, "/login", `{"password":"secret1"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
