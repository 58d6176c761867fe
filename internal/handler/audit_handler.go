package handler

import (
	"github.com/Innie12/Inventory-Management-System/internal/repository"
	"github.com/Innie12/Inventory-Management-System/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuditHandler struct {
	auditService *service.AuditService
}

func NewAuditHandler(auditService *service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// List pages the audit trail with optional filters (admin only)
// GET /api/v1/audit-logs?user_id=&action=&entity_type=
func (h *AuditHandler) List(c *fiber.Ctx) error {
	filter := repository.AuditFilter{
		Action:     c.Query("action"),
		EntityType: c.Query("entity_type"),
		Page:       c.QueryInt("page", 1),
		PerPage:    c.QueryInt("per_page", 25),
	}
	if s := c.Query("user_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid user_id filter"})
		}
		filter.UserID = &id
	}

	entries, total, err := h.auditService.List(filter)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch audit log"})
	}
	return c.JSON(fiber.Map{"entries": entries, "total": total})
}
