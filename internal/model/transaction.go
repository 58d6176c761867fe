package model

import "github.com/google/uuid"

type TransactionType string

const (
	TxIn  TransactionType = "in"
	TxOut TransactionType = "out"
)

// InventoryTransaction is one immutable ledger entry: a single quantity
// change with before/after snapshots. Never updated or deleted.
type InventoryTransaction struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product   Product   `json:"product,omitempty" validate:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	User      *User     `json:"user,omitempty" validate:"-"`

	Type           TransactionType `gorm:"type:varchar(10);not null" json:"type" validate:"required,oneof=in out"`
	Quantity       int             `gorm:"not null" json:"quantity" validate:"required,gt=0"` // unsigned magnitude
	QuantityBefore int             `gorm:"default:0" json:"quantity_before"`
	QuantityAfter  int             `gorm:"default:0" json:"quantity_after"`

	Reference string `gorm:"type:varchar(120)" json:"reference,omitempty"`
	Remarks   string `gorm:"type:text" json:"remarks,omitempty"`
}
