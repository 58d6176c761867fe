package handler

import (
	"github.com/Innie12/Inventory-Management-System/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Overview returns stats, stock movement, category distribution, low-stock
// products and recent transactions in one payload
// GET /api/v1/dashboard
func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	data, err := h.dashboardService.Overview()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build dashboard"})
	}
	return c.JSON(data)
}
