package entity

import (
	"gorm.io/gorm"
)

// OrderProduct is an immutable line snapshot. Price and name are copied at
// order time so historical orders do not change when the catalog does.
type OrderProduct struct {
	gorm.Model
	OrderID uint  `json:"orderId"`
	Order   Order `json:"-"`

	ProductID   uint    `json:"productId"`
	Product     Product `json:"-"`
	ProductName string  `json:"productName"`

	Quantity int   `json:"quantity"`
	Price    int64 `json:"price"` // unit price at order time
}
