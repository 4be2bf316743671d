package models

import "github.com/shopspring/decimal"

// CartItem is one row of a user's shopping cart: a product selection with
// quantity and an optional percentage discount. The embedded Product is a
// denormalized snapshot populated when the cart is read.
type CartItem struct {
	UserID          string          `json:"-" gorm:"primaryKey;type:varchar(36)"`
	ProductID       string          `json:"-" gorm:"primaryKey;type:varchar(36)"`
	Product         *Product        `json:"product" gorm:"foreignKey:ProductID"`
	Quantity        int             `json:"quantity" validate:"gte=0"`
	DiscountPercent decimal.Decimal `json:"discount_percent" gorm:"type:decimal(5,2)"`
}

// TableName maps CartItem onto the shopping_cart table.
func (CartItem) TableName() string {
	return "shopping_cart"
}

// LineTotal returns the discounted total for this cart row.
// A row without an attached product totals zero.
func (ci *CartItem) LineTotal() decimal.Decimal {
	if ci.Product == nil {
		return decimal.Zero
	}
	return LineTotal(ci.Product.Price, ci.Quantity, ci.DiscountPercent)
}

// Cart is the per-user collection of cart items, keyed by product ID.
// It is assembled from shopping_cart rows at read time; it is not a table.
type Cart struct {
	Items map[string]CartItem `json:"items"`
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{Items: make(map[string]CartItem)}
}

// IsEmpty reports whether the cart holds no items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Total sums the line totals of every item in the cart.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}
