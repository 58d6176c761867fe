package model

type Category struct {
	BaseModel
	Name        string `gorm:"type:varchar(120);uniqueIndex;not null" json:"name" validate:"required"`
	Description string `gorm:"type:text" json:"description"`
	Icon        string `gorm:"type:varchar(50)" json:"icon,omitempty"`
	Color       string `gorm:"type:varchar(7);default:'#007bff'" json:"color"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`
}

// SearchText is the document used for category suggestion scoring.
func (c *Category) SearchText() string {
	return c.Name + " " + c.Description
}
