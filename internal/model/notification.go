package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	NotificationLowStock = "low_stock"
)

// Notification is created by system events, never directly by users, and is
// only ever mutated to flip its read state.
type Notification struct {
	BaseModel
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	Kind    string `gorm:"type:varchar(50)" json:"kind"`
	Title   string `gorm:"type:varchar(200);not null" json:"title"`
	Message string `gorm:"type:text;not null" json:"message"`
	Link    string `gorm:"type:varchar(255)" json:"link,omitempty"`

	IsRead bool       `gorm:"default:false;index" json:"is_read"`
	ReadAt *time.Time `json:"read_at,omitempty"`
}
