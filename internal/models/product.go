package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a product in the store catalog.
// Price is an exact decimal; never use floats for money.
type Product struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string          `json:"name" gorm:"type:varchar(100)" validate:"required,min=3,max=100"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(12,2)" validate:"required"`
	CategoryID  string          `json:"category_id" gorm:"index;type:varchar(36)" validate:"omitempty,uuid"`
	Description string          `json:"description" gorm:"type:varchar(500)" validate:"omitempty,max=500"`
	SubCategory string          `json:"subcategory" gorm:"type:varchar(100)" validate:"omitempty,max=100"`
	Stock       int             `json:"stock" validate:"gte=0"`
	Featured    bool            `json:"featured"`
	ImageURL    string          `json:"image_url" gorm:"type:varchar(255)" validate:"omitempty,max=255"`
	gorm.Model  `json:"-"`     // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
