package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditLog is an append-only record of who did what. Written best-effort from
// every mutating route; failures are logged, never surfaced.
type AuditLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	UserID *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`

	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"` // create, update, delete, login, adjust_stock, ...
	EntityType string     `gorm:"type:varchar(50);index" json:"entity_type,omitempty"`
	EntityID   *uuid.UUID `gorm:"type:uuid" json:"entity_id,omitempty"`

	Description string `gorm:"type:text" json:"description,omitempty"`
	IPAddress   string `gorm:"type:varchar(45)" json:"ip_address,omitempty"`
	UserAgent   string `gorm:"type:varchar(255)" json:"user_agent,omitempty"`
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
