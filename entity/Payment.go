package entity

import (
	"gorm.io/gorm"
)

const PaymentMethodMockTransfer = "mock_transfer"

type Payment struct {
	gorm.Model
	Amount int64         `json:"amount"` // order total + pickup fee
	Method string        `json:"method"`
	Status PaymentStatus `json:"status" gorm:"size:20"`

	OrderID uint  `json:"orderId" gorm:"uniqueIndex"`
	Order   Order `json:"-"`
}
