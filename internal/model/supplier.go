package model

type Supplier struct {
	BaseModel
	Name          string `gorm:"type:varchar(200);uniqueIndex;not null" json:"name" validate:"required"`
	ContactPerson string `gorm:"type:varchar(150)" json:"contact_person"`
	Email         string `gorm:"type:varchar(120)" json:"email" validate:"omitempty,email"`
	Phone         string `gorm:"type:varchar(20)" json:"phone"`
	Address       string `gorm:"type:text" json:"address"`
	Website       string `gorm:"type:varchar(255)" json:"website"`

	// Financial
	CreditLimit        float64 `gorm:"type:numeric(12,2);default:0" json:"credit_limit"`
	OutstandingBalance float64 `gorm:"type:numeric(12,2);default:0" json:"outstanding_balance"`

	// Status
	IsActive bool `gorm:"default:true" json:"is_active"`
	Rating   int  `gorm:"default:5" json:"rating" validate:"omitempty,min=1,max=5"`
}
