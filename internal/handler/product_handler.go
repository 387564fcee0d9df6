package handler

import (
	"go-retail-ws/internal/model"
	"go-retail-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	catalog service.CatalogService
}

func NewProductHandler(catalog service.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// productView flattens the size association into string labels, the shape the
// storefront consumes.
type productView struct {
	model.Product
	Sizes []string `json:"sizes"`
}

func toProductView(p *model.Product) productView {
	return productView{Product: *p, Sizes: p.SizeNames()}
}

// GetProducts lists the catalog.
// GET /api/products
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.catalog.GetAllProducts()
	if err != nil {
		return respondError(c, err)
	}

	views := make([]productView, len(products))
	for i := range products {
		views[i] = toProductView(&products[i])
	}
	return c.JSON(views)
}

// GetProduct returns one product.
// GET /api/products/:id
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.catalog.GetProductByID(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toProductView(product))
}

// CreateProduct adds a catalog product.
// POST /api/products
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var input service.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.catalog.CreateProduct(&input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(toProductView(product))
}

// UpdateProduct replaces a product's fields and size set.
// PUT /api/products/:id
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var input service.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.catalog.UpdateProduct(id, &input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toProductView(product))
}

// DeleteProduct removes a product.
// DELETE /api/products/:id
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.catalog.DeleteProduct(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
