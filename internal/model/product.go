package model

import "github.com/google/uuid"

type Product struct {
	BaseModel
	SKU         string  `gorm:"type:varchar(80);uniqueIndex;not null" json:"sku" validate:"required"`
	Barcode     *string `gorm:"type:varchar(100);uniqueIndex" json:"barcode,omitempty"`
	Name        string  `gorm:"type:varchar(255);not null;index" json:"name" validate:"required"`
	Description string  `gorm:"type:text" json:"description"`

	// Categorization (optional references)
	CategoryID *uuid.UUID `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Category   *Category  `json:"category,omitempty" validate:"-"`
	SupplierID *uuid.UUID `gorm:"type:uuid;index" json:"supplier_id,omitempty"`
	Supplier   *Supplier  `json:"supplier,omitempty" validate:"-"`

	// Pricing
	CostPrice    float64 `gorm:"type:numeric(12,2);default:0" json:"cost_price" validate:"gte=0"`
	SellingPrice float64 `gorm:"type:numeric(12,2);default:0" json:"selling_price" validate:"gte=0"`
	Currency     string  `gorm:"type:varchar(3);default:'PHP'" json:"currency"`

	// Stock. Quantity is only ever written through the stock mutator, which
	// appends one ledger entry per change.
	Quantity        int `gorm:"default:0" json:"quantity"`
	ReorderLevel    int `gorm:"default:5" json:"reorder_level"`
	ReorderQuantity int `gorm:"default:20" json:"reorder_quantity"`

	// Physical attributes
	Weight     *float64 `gorm:"type:numeric(10,3)" json:"weight,omitempty"` // kg
	Dimensions string   `gorm:"type:varchar(50)" json:"dimensions,omitempty"`

	ImageURL string `gorm:"type:varchar(255)" json:"image_url,omitempty"`

	// Status
	IsActive   bool `gorm:"default:true" json:"is_active"`
	IsFeatured bool `gorm:"default:false" json:"is_featured"`

	Transactions []InventoryTransaction `gorm:"constraint:OnDelete:CASCADE" json:"transactions,omitempty"`
}

// IsLowStock reports whether the on-hand quantity is at or below the reorder
// threshold.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.ReorderLevel
}

// StockValue is the cost of the on-hand quantity.
func (p *Product) StockValue() float64 {
	return float64(p.Quantity) * p.CostPrice
}

// ProfitMargin is the markup percentage over cost, or 0 without a cost price.
func (p *Product) ProfitMargin() float64 {
	if p.CostPrice <= 0 || p.SellingPrice <= 0 {
		return 0
	}
	return (p.SellingPrice - p.CostPrice) / p.CostPrice * 100
}

// SearchText is the document fed to the similarity index.
func (p *Product) SearchText() string {
	return p.Name + " " + p.Description
}
