package repositories

import (
	"storefront/internal/models"

	"github.com/shopspring/decimal"
)

// ProductFilter narrows a product search. Nil / empty fields are ignored.
type ProductFilter struct {
	CategoryID  string
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	SubCategory string
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	ListByCategoryID(categoryID string) ([]models.Product, error)
	Search(filter ProductFilter) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}
