package middleware

import (
	"net/http/httptest"
	"testing"

	"go-retail-ws/internal/model"
	"go-retail-ws/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoRole(c *fiber.Ctx) error {
	role, _ := c.Locals("user_role").(string)
	return c.JSON(fiber.Map{"role": role})
}

func TestRequireAuth(t *testing.T) {
	app := fiber.New()
	app.Get("/protected", RequireAuth(), echoRole)

	t.Run("missing token", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Token abc")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("valid token passes", func(t *testing.T) {
		token, err := jwt.GenerateToken(uuid.New(), "ana@example.com", "Ana", model.RoleCustomer)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})
}

func TestOptionalAuth(t *testing.T) {
	app := fiber.New()
	app.Get("/open", OptionalAuth(), echoRole)

	t.Run("anonymous passes", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/open", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("bad token still passes as anonymous", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/open", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})
}

func TestRequireAdmin(t *testing.T) {
	app := fiber.New()
	app.Get("/admin", RequireAuth(), RequireAdmin(), echoRole)

	t.Run("customer role forbidden", func(t *testing.T) {
		token, err := jwt.GenerateToken(uuid.New(), "ana@example.com", "Ana", model.RoleCustomer)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 403, resp.StatusCode)
	})

	t.Run("admin role allowed", func(t *testing.T) {
		token, err := jwt.GenerateToken(uuid.New(), "root@example.com", "Root", model.RoleAdmin)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})
}
