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

type CategoryHandler struct {
	catalogService *service.CatalogService
	auditService   *service.AuditService
}

func NewCategoryHandler(catalogService *service.CatalogService, auditService *service.AuditService) *CategoryHandler {
	return &CategoryHandler{catalogService: catalogService, auditService: auditService}
}

// List returns all active categories
// GET /api/v1/categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	categories, err := h.catalogService.ListCategories()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch categories"})
	}
	return c.JSON(fiber.Map{"categories": categories})
}

// Create adds a category
// POST /api/v1/categories
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var category model.Category
	if err := c.BodyParser(&category); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(category); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": errs})
	}

	actor := middleware.CurrentUser(c)
	if err := h.catalogService.CreateCategory(&category, actor.Username); err != nil {
		if errors.Is(err, service.ErrCategoryNameExists) {
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create category"})
	}

	h.auditService.Record(&actor.ID, service.AuditActionCreate, "category", &category.ID,
		"created "+category.Name, c.IP(), c.Get("User-Agent"))

	return c.Status(201).JSON(fiber.Map{"category": category})
}

// Update edits a category
// PUT /api/v1/categories/:id
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid category ID"})
	}

	var category model.Category
	if err := c.BodyParser(&category); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(category); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": errs})
	}

	actor := middleware.CurrentUser(c)
	updated, err := h.catalogService.UpdateCategory(id, &category, actor.Username)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrCategoryNameExists):
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "Failed to update category"})
		}
	}

	h.auditService.Record(&actor.ID, service.AuditActionUpdate, "category", &updated.ID,
		"updated "+updated.Name, c.IP(), c.Get("User-Agent"))

	return c.JSON(fiber.Map{"category": updated})
}

// Delete soft-deletes an empty category (admin only). Categories that still
// have active products are refused.
// DELETE /api/v1/categories/:id
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid category ID"})
	}

	actor := middleware.CurrentUser(c)
	if err := h.catalogService.DeleteCategory(id, actor.Username); err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrCategoryHasProducts):
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "Failed to delete category"})
		}
	}

	h.auditService.Record(&actor.ID, service.AuditActionDelete, "category", &id,
		"deleted category", c.IP(), c.Get("User-Agent"))

	return c.JSON(fiber.Map{"message": "Category deleted"})
}
