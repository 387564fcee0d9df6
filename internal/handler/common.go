package handler

import (
	"go-retail-ws/internal/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// respondError maps a service error onto the HTTP status for its failure
// category and renders the standard {error: ...} body.
func respondError(c *fiber.Ctx, err error) error {
	status := apperr.HTTPStatus(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		msg = "Internal Server Error"
	}
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}

func getUserEmail(c *fiber.Ctx) string {
	email, _ := c.Locals("user_email").(string)
	return email
}

func getUserID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}
