package handler

import (
	"errors"
	"fmt"

	"github.com/Innie12/Inventory-Management-System/internal/middleware"
	"github.com/Innie12/Inventory-Management-System/internal/model"
	"github.com/Innie12/Inventory-Management-System/internal/repository"
	"github.com/Innie12/Inventory-Management-System/internal/service"
	"github.com/Innie12/Inventory-Management-System/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProductHandler struct {
	catalogService *service.CatalogService
	stockService   *service.StockService
	auditService   *service.AuditService
	perPage        int
}

func NewProductHandler(
	catalogService *service.CatalogService,
	stockService *service.StockService,
	auditService *service.AuditService,
	perPage int,
) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
		stockService:   stockService,
		auditService:   auditService,
		perPage:        perPage,
	}
}

func parseOptionalUUID(s string) *uuid.UUID {
	if s == "" {
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}

// List searches and pages products. A text query that matches nothing
// literally falls through to similarity search; the response flags that.
// GET /api/v1/products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	filter := repository.ProductFilter{
		Query:       c.Query("q"),
		CategoryID:  parseOptionalUUID(c.Query("category_id")),
		SupplierID:  parseOptionalUUID(c.Query("supplier_id")),
		StockStatus: c.Query("stock_status"),
		SortBy:      c.Query("sort"),
		Page:        c.QueryInt("page", 1),
		PerPage:     c.QueryInt("per_page", h.perPage),
	}

	page, err := h.catalogService.SearchProducts(filter)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to search products"})
	}
	return c.JSON(page)
}

// QuickSearch powers autocomplete
// GET /api/v1/products/quick-search
func (h *ProductHandler) QuickSearch(c *fiber.Ctx) error {
	products, err := h.catalogService.QuickSearch(c.Query("q"), c.QueryInt("limit", 10))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Search failed"})
	}
	return c.JSON(fiber.Map{"products": products})
}

// LowStock lists every product at or below its reorder level
// GET /api/v1/products/low-stock
func (h *ProductHandler) LowStock(c *fiber.Ctx) error {
	products, err := h.catalogService.LowStockProducts()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch low stock products"})
	}
	return c.JSON(fiber.Map{"products": products})
}

// SuggestCategory guesses a category from product text. Advisory only.
// GET /api/v1/products/suggest-category
func (h *ProductHandler) SuggestCategory(c *fiber.Ctx) error {
	name := c.Query("name")
	if name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Product name is required"})
	}

	suggestion, err := h.catalogService.SuggestCategory(name, c.Query("description"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Suggestion failed"})
	}
	return c.JSON(fiber.Map{"suggestion": suggestion})
}

// Create adds a product to the catalog
// POST /api/v1/products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(product); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": errs})
	}

	actor := middleware.CurrentUser(c)
	if err := h.catalogService.CreateProduct(&product, actor.Username); err != nil {
		switch {
		case errors.Is(err, service.ErrSKUExists), errors.Is(err, service.ErrBarcodeExists):
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "Failed to create product"})
		}
	}

	h.auditService.Record(&actor.ID, service.AuditActionCreate, "product", &product.ID,
		"created "+product.SKU, c.IP(), c.Get("User-Agent"))

	return c.Status(201).JSON(fiber.Map{"product": product})
}

// Get returns one product with its category and supplier
// GET /api/v1/products/:id
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.catalogService.GetProduct(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch product"})
	}
	return c.JSON(fiber.Map{"product": product})
}

// Update edits catalog fields. Quantity is not among them; stock only moves
// through the adjust endpoint.
// PUT /api/v1/products/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(product); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": errs})
	}

	actor := middleware.CurrentUser(c)
	updated, err := h.catalogService.UpdateProduct(id, &product, actor.Username)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrSKUExists), errors.Is(err, service.ErrBarcodeExists):
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "Failed to update product"})
		}
	}

	h.auditService.Record(&actor.ID, service.AuditActionUpdate, "product", &updated.ID,
		"updated "+updated.SKU, c.IP(), c.Get("User-Agent"))

	return c.JSON(fiber.Map{"product": updated})
}

// Delete soft-deletes a product (admin only)
// DELETE /api/v1/products/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	actor := middleware.CurrentUser(c)
	if err := h.catalogService.DeleteProduct(id, actor.Username); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete product"})
	}

	h.auditService.Record(&actor.ID, service.AuditActionDelete, "product", &id,
		"deleted product", c.IP(), c.Get("User-Agent"))

	return c.JSON(fiber.Map{"message": "Product deleted"})
}

// AdjustRequest is one stock change. Type is optional: "in" forces the delta
// positive, "out" forces it negative, "adjust" (or empty) takes the delta's
// own sign. The service below only ever sees the signed delta.
type AdjustRequest struct {
	Type      string `json:"type"`
	Delta     int    `json:"delta"`
	Reference string `json:"reference"`
	Remarks   string `json:"remarks"`
}

// collapseDelta folds the adjustment type into the delta's sign.
func collapseDelta(adjType string, delta int) (int, error) {
	abs := delta
	if abs < 0 {
		abs = -abs
	}
	switch adjType {
	case "in":
		return abs, nil
	case "out":
		return -abs, nil
	case "", "adjust":
		return delta, nil
	}
	return 0, errors.New("unknown adjustment type, use in, out or adjust")
}

// Adjust applies a signed quantity change and returns the ledger entry
// POST /api/v1/products/:id/adjust
func (h *ProductHandler) Adjust(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var req AdjustRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	delta, err := collapseDelta(req.Type, req.Delta)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	actor := middleware.CurrentUser(c)
	entry, err := h.stockService.Adjust(service.AdjustStockInput{
		ProductID: id,
		Delta:     delta,
		Reference: req.Reference,
		Remarks:   req.Remarks,
	}, actor)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrZeroDelta):
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrProductInactive):
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "Failed to adjust stock"})
		}
	}

	h.auditService.Record(&actor.ID, service.AuditActionAdjustStock, "product", &id,
		fmt.Sprintf("adjusted by %+d (%s)", delta, req.Reference), c.IP(), c.Get("User-Agent"))

	return c.JSON(fiber.Map{"transaction": entry})
}

// History returns the recent ledger for one product
// GET /api/v1/products/:id/transactions
func (h *ProductHandler) History(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	transactions, err := h.stockService.History(id, c.QueryInt("limit", 50))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch transactions"})
	}
	return c.JSON(fiber.Map{"transactions": transactions})
}

// Transactions pages the full ledger, newest first
// GET /api/v1/transactions
func (h *ProductHandler) Transactions(c *fiber.Ctx) error {
	transactions, total, err := h.stockService.ListTransactions(
		c.QueryInt("page", 1), c.QueryInt("per_page", h.perPage))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch transactions"})
	}
	return c.JSON(fiber.Map{"transactions": transactions, "total": total})
}
