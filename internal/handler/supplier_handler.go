package handler

import (
	"errors"

	"github.com/Innie12/Inventory-Management-System/internal/middleware"
	"github.com/Innie12/Inventory-Management-System/internal/model"
	"github.com/Innie12/Inventory-Management-System/internal/service"
	"github.com/Innie12/Inventory-Management-System/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SupplierHandler struct {
	catalogService *service.CatalogService
	auditService   *service.AuditService
}

func NewSupplierHandler(catalogService *service.CatalogService, auditService *service.AuditService) *SupplierHandler {
	return &SupplierHandler{catalogService: catalogService, auditService: auditService}
}

// List returns all active suppliers
// GET /api/v1/suppliers
func (h *SupplierHandler) List(c *fiber.Ctx) error {
	suppliers, err := h.catalogService.ListSuppliers()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch suppliers"})
	}
	return c.JSON(fiber.Map{"suppliers": suppliers})
}

// Create adds a supplier
// POST /api/v1/suppliers
func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	var supplier model.Supplier
	if err := c.BodyParser(&supplier); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(supplier); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": errs})
	}

	actor := middleware.CurrentUser(c)
	if err := h.catalogService.CreateSupplier(&supplier, actor.Username); err != nil {
		if errors.Is(err, service.ErrSupplierNameExists) {
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create supplier"})
	}

	h.auditService.Record(&actor.ID, service.AuditActionCreate, "supplier", &supplier.ID,
		"created "+supplier.Name, c.IP(), c.Get("User-Agent"))

	return c.Status(201).JSON(fiber.Map{"supplier": supplier})
}

// Update edits a supplier
// PUT /api/v1/suppliers/:id
func (h *SupplierHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid supplier ID"})
	}

	var supplier model.Supplier
	if err := c.BodyParser(&supplier); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(supplier); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": errs})
	}

	actor := middleware.CurrentUser(c)
	updated, err := h.catalogService.UpdateSupplier(id, &supplier, actor.Username)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSupplierNotFound):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrSupplierNameExists):
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "Failed to update supplier"})
		}
	}

	h.auditService.Record(&actor.ID, service.AuditActionUpdate, "supplier", &updated.ID,
		"updated "+updated.Name, c.IP(), c.Get("User-Agent"))

	return c.JSON(fiber.Map{"supplier": updated})
}

// Delete soft-deletes a supplier with no active products (admin only)
// DELETE /api/v1/suppliers/:id
func (h *SupplierHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid supplier ID"})
	}

	actor := middleware.CurrentUser(c)
	if err := h.catalogService.DeleteSupplier(id, actor.Username); err != nil {
		switch {
		case errors.Is(err, service.ErrSupplierNotFound):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrSupplierHasProducts):
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "Failed to delete supplier"})
		}
	}

	h.auditService.Record(&actor.ID, service.AuditActionDelete, "supplier", &id,
		"deleted supplier", c.IP(), c.Get("User-Agent"))

	return c.JSON(fiber.Map{"message": "Supplier deleted"})
}
