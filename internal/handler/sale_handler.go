package handler

import (
	"go-retail-ws/internal/model"
	"go-retail-ws/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SaleHandler struct {
	checkout service.CheckoutService
	sales    service.SaleService
}

func NewSaleHandler(checkout service.CheckoutService, sales service.SaleService) *SaleHandler {
	return &SaleHandler{checkout: checkout, sales: sales}
}

// CreateSale handles checkout.
// POST /api/sales
func (h *SaleHandler) CreateSale(c *fiber.Ctx) error {
	var req model.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	sale, err := h.checkout.Checkout(&req, actorFromContext(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(sale)
}

// actorFromContext builds the optional authenticated user from locals set by
// OptionalAuth; nil for anonymous checkout.
func actorFromContext(c *fiber.Ctx) *service.AuthUser {
	idStr := getUserID(c)
	if idStr == "" {
		return nil
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil
	}
	return &service.AuthUser{ID: id, Email: getUserEmail(c)}
}

// GetSales lists all sales, newest first.
// GET /api/sales
func (h *SaleHandler) GetSales(c *fiber.Ctx) error {
	sales, err := h.sales.GetAllSales()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sales)
}

// GetSale returns one sale with its items and customer.
// GET /api/sales/:id
func (h *SaleHandler) GetSale(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	sale, err := h.sales.GetSaleByID(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sale)
}

// GetMyPurchases lists the authenticated user's sales.
// GET /api/sales/my-purchases
func (h *SaleHandler) GetMyPurchases(c *fiber.Ctx) error {
	email := getUserEmail(c)
	if email == "" {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	sales, err := h.sales.GetPurchasesByEmail(email)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sales)
}

// BackfillClientTypes tags historical sales missing a client type.
// POST /api/sales/update-client-types
func (h *SaleHandler) BackfillClientTypes(c *fiber.Ctx) error {
	updated, total, err := h.sales.BackfillClientTypes()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":   total,
		"updated": updated,
	})
}
