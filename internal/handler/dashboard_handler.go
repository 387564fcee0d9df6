package handler

import (
	"go-retail-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	dashboard service.DashboardService
}

func NewDashboardHandler(dashboard service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// GetStats returns the headline totals.
// GET /api/dashboard/stats
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.dashboard.GetStats()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

// GetMonthlySales returns revenue per month.
// GET /api/dashboard/monthly-sales
func (h *DashboardHandler) GetMonthlySales(c *fiber.Ctx) error {
	points, err := h.dashboard.GetMonthlySales()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(points)
}

// GetSalesByCategory returns units sold per category.
// GET /api/dashboard/sales-by-category
func (h *DashboardHandler) GetSalesByCategory(c *fiber.Ctx) error {
	data, err := h.dashboard.GetSalesByCategory()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(data)
}

// GetSalesByClientType returns units sold per client type.
// GET /api/dashboard/sales-by-client-type
func (h *DashboardHandler) GetSalesByClientType(c *fiber.Ctx) error {
	data, err := h.dashboard.GetSalesByClientType()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(data)
}

// GetSalesBySize returns units sold per size label.
// GET /api/dashboard/sales-by-size
func (h *DashboardHandler) GetSalesBySize(c *fiber.Ctx) error {
	data, err := h.dashboard.GetSalesBySize()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(data)
}

// GetInventory returns per-product stock positions.
// GET /api/dashboard/inventory
func (h *DashboardHandler) GetInventory(c *fiber.Ctx) error {
	data, err := h.dashboard.GetInventoryStatus()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(data)
}

// GetRecommendations returns best/worst sellers.
// GET /api/dashboard/recommendations
func (h *DashboardHandler) GetRecommendations(c *fiber.Ctx) error {
	data, err := h.dashboard.GetRecommendations()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(data)
}
