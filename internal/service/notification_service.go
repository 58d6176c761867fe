package service

import (
	"errors"
	"fmt"

	"github.com/Innie12/Inventory-Management-System/internal/model"
	"github.com/Innie12/Inventory-Management-System/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

// BuildLowStockAlerts returns one notification per active admin for a product
// that has fallen to or below its reorder level. Pure: it builds intents and
// never talks to storage, so the caller decides the transaction they land in.
// Every admin in the roster gets one; preference flags govern outbound
// channels like SMS, not the in-app notification record.
func BuildLowStockAlerts(product *model.Product, admins []model.User) []model.Notification {
	var alerts []model.Notification
	for _, admin := range admins {
		alerts = append(alerts, model.Notification{
			UserID: admin.ID,
			Kind:   model.NotificationLowStock,
			Title:  "Low Stock Alert",
			Message: fmt.Sprintf("%s (SKU %s) is down to %d units, at or below its reorder level of %d.",
				product.Name, product.SKU, product.Quantity, product.ReorderLevel),
			Link: fmt.Sprintf("/products/%s/adjust", product.ID),
		})
	}
	return alerts
}

// NotificationService reads and flips the read state of a user's
// notifications. Creation only ever happens through system events.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

func (s *NotificationService) List(userID uuid.UUID, page, perPage int) ([]model.Notification, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	return s.notificationRepo.FindByUser(userID, page, perPage)
}

func (s *NotificationService) UnreadCount(userID uuid.UUID) (int64, error) {
	return s.notificationRepo.CountUnread(userID)
}

// MarkRead flips one notification, refusing to touch another user's.
func (s *NotificationService) MarkRead(id, userID uuid.UUID) error {
	notification, err := s.notificationRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	if notification.UserID != userID {
		return ErrNotificationNotFound
	}
	return s.notificationRepo.MarkRead(id)
}

func (s *NotificationService) MarkAllRead(userID uuid.UUID) error {
	return s.notificationRepo.MarkAllRead(userID)
}
