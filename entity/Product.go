package entity

import (
	"gorm.io/gorm"
)

// Product stock and SoldOut move together: SoldOut is true exactly when
// Stock is 0. Deduction and restore paths both maintain the pair.
type Product struct {
	gorm.Model
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Stock    int    `json:"stock"`
	SoldOut  bool   `json:"soldOut"`
	ImageURL string `json:"imageUrl"`

	StoreID uint  `json:"storeId"`
	Store   Store `json:"-"`

	CartItems     []CartItem     `json:"-"`
	OrderProducts []OrderProduct `json:"-"`
}
