package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Order is a durable record of a checked-out cart. It is created exactly
// once per successful checkout and never modified afterwards, except for
// appending its line items within the same transaction.
type Order struct {
	ID              string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID          string          `json:"user_id" gorm:"index;type:varchar(36)"`
	OrderDate       time.Time       `json:"order_date"`
	ShippingAddress string          `json:"shipping_address" gorm:"type:varchar(500)"`
	ShippingAmount  decimal.Decimal `json:"shipping_amount" gorm:"type:decimal(12,2)"`
	LineItems       []OrderLineItem `json:"line_items" gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time       `json:"-"`
}

// OrderLineItem records one product within an order. SalesPrice is a
// snapshot of the product price at checkout time, so historical orders are
// unaffected by later catalog price changes.
type OrderLineItem struct {
	ID              string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID         string          `json:"order_id" gorm:"index;type:varchar(36)"`
	ProductID       string          `json:"product_id" gorm:"type:varchar(36)"`
	SalesPrice      decimal.Decimal `json:"sales_price" gorm:"type:decimal(12,2)"`
	Quantity        int             `json:"quantity"`
	DiscountPercent decimal.Decimal `json:"discount_percent" gorm:"type:decimal(5,2)"`
	CreatedAt       time.Time       `json:"-"`
}

// LineTotal returns the discounted total for this line item.
func (li *OrderLineItem) LineTotal() decimal.Decimal {
	return LineTotal(li.SalesPrice, li.Quantity, li.DiscountPercent)
}

// AddLineItem appends a line item to the in-memory order representation.
func (o *Order) AddLineItem(item OrderLineItem) {
	o.LineItems = append(o.LineItems, item)
}

// Total is the sum of all line totals plus the shipping amount. It is
// always recomputed from the line items, never stored.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for i := range o.LineItems {
		total = total.Add(o.LineItems[i].LineTotal())
	}
	return total.Add(o.ShippingAmount)
}

// MarshalJSON includes the derived total alongside the stored fields.
func (o Order) MarshalJSON() ([]byte, error) {
	type alias Order
	return json.Marshal(struct {
		alias
		Total decimal.Decimal `json:"total"`
	}{alias(o), o.Total()})
}
