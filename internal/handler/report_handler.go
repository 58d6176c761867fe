package handler

import (
	"time"

	"github.com/Innie12/Inventory-Management-System/internal/middleware"
	"github.com/Innie12/Inventory-Management-System/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	reportService *service.ReportService
	auditService  *service.AuditService
}

func NewReportHandler(reportService *service.ReportService, auditService *service.AuditService) *ReportHandler {
	return &ReportHandler{reportService: reportService, auditService: auditService}
}

func (h *ReportHandler) recordExport(c *fiber.Ctx, what string) {
	actor := middleware.CurrentUser(c)
	h.auditService.Record(&actor.ID, service.AuditActionExport, "report", nil,
		what, c.IP(), c.Get("User-Agent"))
}

// InventoryPDF streams the full inventory report
// GET /api/v1/reports/inventory.pdf
func (h *ReportHandler) InventoryPDF(c *fiber.Ctx) error {
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="inventory-report.pdf"`)

	if err := h.reportService.InventoryPDF(c.Response().BodyWriter()); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to generate report"})
	}
	h.recordExport(c, "inventory pdf")
	return nil
}

// LowStockPDF streams the reorder report
// GET /api/v1/reports/low-stock.pdf
func (h *ReportHandler) LowStockPDF(c *fiber.Ctx) error {
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="low-stock-report.pdf"`)

	if err := h.reportService.LowStockPDF(c.Response().BodyWriter()); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to generate report"})
	}
	h.recordExport(c, "low stock pdf")
	return nil
}

// TransactionsPDF streams the ledger for a date range, defaulting to the
// last 30 days
// GET /api/v1/reports/transactions.pdf?start=2026-01-01&end=2026-01-31
func (h *ReportHandler) TransactionsPDF(c *fiber.Ctx) error {
	end := time.Now()
	start := end.AddDate(0, 0, -30)

	if s := c.Query("start"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid start date, use YYYY-MM-DD"})
		}
		start = parsed
	}
	if e := c.Query("end"); e != "" {
		parsed, err := time.Parse("2006-01-02", e)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid end date, use YYYY-MM-DD"})
		}
		// Include the whole end day.
		end = parsed.AddDate(0, 0, 1).Add(-time.Second)
	}
	if end.Before(start) {
		return c.Status(400).JSON(fiber.Map{"error": "End date is before start date"})
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="transactions-report.pdf"`)

	if err := h.reportService.TransactionsPDF(c.Response().BodyWriter(), start, end); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to generate report"})
	}
	h.recordExport(c, "transactions pdf")
	return nil
}

// InventoryExcel streams the inventory workbook
// GET /api/v1/reports/inventory.xlsx
func (h *ReportHandler) InventoryExcel(c *fiber.Ctx) error {
	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", `attachment; filename="inventory-report.xlsx"`)

	if err := h.reportService.InventoryExcel(c.Response().BodyWriter()); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to generate report"})
	}
	h.recordExport(c, "inventory excel")
	return nil
}
