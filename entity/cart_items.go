package entity

import (
	"gorm.io/gorm"
)

// One line per (cart, product): re-adding a product merges into the existing
// line. The composite unique index enforces that against concurrent writers,
// not just in service code.
type CartItem struct {
	gorm.Model
	CartID uint `json:"cartId" gorm:"uniqueIndex:idx_cart_product"`
	Cart   Cart `json:"-"`

	ProductID uint    `json:"productId" gorm:"uniqueIndex:idx_cart_product"`
	Product   Product `json:"-"`

	// StoreID is denormalized from the product so fee computation can group
	// lines by store without joining.
	StoreID uint  `json:"storeId"`
	Store   Store `json:"-"`

	Quantity int `json:"quantity"`
}
