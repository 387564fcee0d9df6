package handler

import (
	"go-retail-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	catalog service.CatalogService
}

func NewCatalogHandler(catalog service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// GetCategories lists product categories.
// GET /api/categories
func (h *CatalogHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.catalog.GetCategories()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(categories)
}

// GetSizes lists catalog sizes.
// GET /api/sizes
func (h *CatalogHandler) GetSizes(c *fiber.Ctx) error {
	sizes, err := h.catalog.GetSizes()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sizes)
}

// GetClientTypes lists client type labels.
// GET /api/client-types
func (h *CatalogHandler) GetClientTypes(c *fiber.Ctx) error {
	clientTypes, err := h.catalog.GetClientTypes()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(clientTypes)
}
