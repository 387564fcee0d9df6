package middleware

import (
	"strings"

	"go-retail-ws/pkg/jwt"

	"go-retail-ws/internal/model"

	"github.com/gofiber/fiber/v2"
)

func bearerToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", false
	}
	return parts[1], true
}

func setUserLocals(c *fiber.Ctx, claims *jwt.Claims) {
	c.Locals("user_id", claims.UserID.String())
	c.Locals("user_email", claims.Email)
	c.Locals("user_name", claims.Name)
	c.Locals("user_role", claims.Role)
}

// RequireAuth validates the bearer JWT and sets user info in context.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c)
		if !ok {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		claims, err := jwt.ValidateToken(token)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		setUserLocals(c, claims)
		return c.Next()
	}
}

// OptionalAuth sets user info when a valid bearer token is present and lets
// the request through either way. Checkout uses it: anonymous buyers are
// allowed, but a signed-in buyer gets their new customer record linked.
func OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token, ok := bearerToken(c); ok {
			if claims, err := jwt.ValidateToken(token); err == nil {
				setUserLocals(c, claims)
			}
		}
		return c.Next()
	}
}

// RequireAdmin allows only admin-role users. Must run after RequireAuth.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("user_role").(string)
		if !ok || role != model.RoleAdmin {
			return c.Status(403).JSON(fiber.Map{"error": "Forbidden: requires admin role"})
		}
		return c.Next()
	}
}
