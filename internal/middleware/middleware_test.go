package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixisphere/pixisphere-api/internal/utils"
)

const testSecret = "middleware-test-secret"

func newTestApp() *fiber.App {
	app := fiber.New()
	protected := app.Group("/",
		Protect(testSecret),
		AttachClaims(),
	)
	protected.Get("/me", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"userId": c.Locals("userId"),
			"role":   c.Locals("role"),
		})
	})
	protected.Get("/admin", RequireRoles("admin"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, path, token string) *http.Response {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestProtectMissingToken(t *testing.T) {
	app := newTestApp()

	resp := doRequest(t, app, "/me", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProtectMalformedToken(t *testing.T) {
	app := newTestApp()

	resp := doRequest(t, app, "/me", "garbage")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProtectWrongSecret(t *testing.T) {
	app := newTestApp()

	token, err := utils.SignJWT("other-secret", "u1", "client", 10)
	require.NoError(t, err)

	resp := doRequest(t, app, "/me", token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAttachClaimsPassesThrough(t *testing.T) {
	app := newTestApp()

	token, err := utils.SignJWT(testSecret, "u1", "client", 10)
	require.NoError(t, err)

	resp := doRequest(t, app, "/me", token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRolesForbidden(t *testing.T) {
	app := newTestApp()

	token, err := utils.SignJWT(testSecret, "u1", "client", 10)
	require.NoError(t, err)

	resp := doRequest(t, app, "/admin", token)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireRolesAllowed(t *testing.T) {
	app := newTestApp()

	token, err := utils.SignJWT(testSecret, "u1", "admin", 10)
	require.NoError(t, err)

	resp := doRequest(t, app, "/admin", token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRolesCaseInsensitive(t *testing.T) {
	app := newTestApp()

	token, err := utils.SignJWT(testSecret, "u1", "Admin", 10)
	require.NoError(t, err)

	resp := doRequest(t, app, "/admin", token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
