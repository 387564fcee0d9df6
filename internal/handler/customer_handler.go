package handler

import (
	"go-retail-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CustomerHandler struct {
	customers service.CustomerService
}

func NewCustomerHandler(customers service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

// GetCustomers lists all customers.
// GET /api/customers
func (h *CustomerHandler) GetCustomers(c *fiber.Ctx) error {
	customers, err := h.customers.GetAllCustomers()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(customers)
}

// GetCustomer returns one customer.
// GET /api/customers/:id
func (h *CustomerHandler) GetCustomer(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	customer, err := h.customers.GetCustomerByID(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(customer)
}

// CreateCustomer adds a customer from the dashboard.
// POST /api/customers
func (h *CustomerHandler) CreateCustomer(c *fiber.Ctx) error {
	var input service.CustomerInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	customer, err := h.customers.CreateCustomer(&input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(customer)
}

// UpdateCustomer replaces a customer's fields.
// PUT /api/customers/:id
func (h *CustomerHandler) UpdateCustomer(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	var input service.CustomerInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	customer, err := h.customers.UpdateCustomer(id, &input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(customer)
}

// DeleteCustomer removes a customer.
// DELETE /api/customers/:id
func (h *CustomerHandler) DeleteCustomer(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	if err := h.customers.DeleteCustomer(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
