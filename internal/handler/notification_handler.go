package handler

import (
	"errors"

	"github.com/Innie12/Inventory-Management-System/internal/middleware"
	"github.com/Innie12/Inventory-Management-System/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
	perPage             int
}

func NewNotificationHandler(notificationService *service.NotificationService, perPage int) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService, perPage: perPage}
}

// List returns the authenticated user's notifications, newest first
// GET /api/v1/notifications
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)

	notifications, total, err := h.notificationService.List(actor.ID,
		c.QueryInt("page", 1), c.QueryInt("per_page", h.perPage))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch notifications"})
	}
	return c.JSON(fiber.Map{"notifications": notifications, "total": total})
}

// UnreadCount is polled by the badge in the UI
// GET /api/v1/notifications/unread-count
func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)

	count, err := h.notificationService.UnreadCount(actor.ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to count notifications"})
	}
	return c.JSON(fiber.Map{"unread": count})
}

// MarkRead flips one notification
// PUT /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid notification ID"})
	}

	actor := middleware.CurrentUser(c)
	if err := h.notificationService.MarkRead(id, actor.ID); err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update notification"})
	}
	return c.JSON(fiber.Map{"message": "Notification marked as read"})
}

// MarkAllRead clears the unread badge in one go
// PUT /api/v1/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)

	if err := h.notificationService.MarkAllRead(actor.ID); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update notifications"})
	}
	return c.JSON(fiber.Map{"message": "All notifications marked as read"})
}
