package service

import (
	"strings"
	"testing"

	"github.com/Innie12/Inventory-Management-System/internal/model"

	"github.com/google/uuid"
)

func lowStockProduct() *model.Product {
	p := &model.Product{
		SKU:          "WM-001",
		Name:         "Wireless Mouse",
		Quantity:     3,
		ReorderLevel: 5,
	}
	p.ID = uuid.New()
	return p
}

func admin(enabled bool) model.User {
	u := model.User{Role: model.RoleAdmin, EnableNotifications: enabled}
	u.ID = uuid.New()
	return u
}

func TestBuildLowStockAlertsOnePerAdmin(t *testing.T) {
	product := lowStockProduct()
	admins := []model.User{admin(true), admin(true), admin(true)}

	alerts := BuildLowStockAlerts(product, admins)
	if len(alerts) != 3 {
		t.Fatalf("expected 3 alerts, got %d", len(alerts))
	}

	seen := make(map[uuid.UUID]bool)
	for _, alert := range alerts {
		if seen[alert.UserID] {
			t.Errorf("duplicate alert for user %s", alert.UserID)
		}
		seen[alert.UserID] = true

		if alert.Kind != model.NotificationLowStock {
			t.Errorf("kind: got %q", alert.Kind)
		}
		if alert.IsRead {
			t.Error("new alert must start unread")
		}
		if !strings.Contains(alert.Message, "Wireless Mouse") ||
			!strings.Contains(alert.Message, "WM-001") ||
			!strings.Contains(alert.Message, "3") {
			t.Errorf("message missing product details: %q", alert.Message)
		}
		if alert.Link != "/products/"+product.ID.String()+"/adjust" {
			t.Errorf("link does not point at the adjustment screen: %q", alert.Link)
		}
	}
}

// The fan-out count equals the admin roster, full stop: notification
// preferences do not thin the in-app alert list.
func TestBuildLowStockAlertsIgnoresPreferenceFlags(t *testing.T) {
	product := lowStockProduct()
	admins := []model.User{admin(true), admin(false)}

	alerts := BuildLowStockAlerts(product, admins)
	if len(alerts) != 2 {
		t.Fatalf("expected 2 alerts for 2 active admins, got %d", len(alerts))
	}
	if alerts[0].UserID == alerts[1].UserID {
		t.Error("both alerts went to the same admin")
	}
}

func TestBuildLowStockAlertsNoRecipients(t *testing.T) {
	if alerts := BuildLowStockAlerts(lowStockProduct(), nil); len(alerts) != 0 {
		t.Fatalf("expected no alerts, got %d", len(alerts))
	}
}
