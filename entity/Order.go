package entity

import (
	"time"

	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	Status      OrderStatus `json:"status" gorm:"size:20;index"`
	TotalPrice  int64       `json:"totalPrice"`
	DeliveryFee int64       `json:"deliveryFee"` // pickup fee; nonzero on one order per checkout

	PreparationTime *int       `json:"preparationTime,omitempty"` // minutes, set on accept
	AcceptedAt      *time.Time `json:"acceptedAt,omitempty"`
	CancelReason    *string    `json:"cancelReason,omitempty"`
	PickupSlot      *int       `json:"pickupSlot,omitempty"` // 1..10, nil once terminal
	PickupCode      string     `json:"pickupCode"`

	CustomerID uint `json:"customerId"`
	Customer   User `gorm:"foreignKey:CustomerID" json:"-"`

	StoreID uint  `json:"storeId"`
	Store   Store `json:"-"`

	Products []OrderProduct `json:"products" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`

	Payment *Payment `json:"-"`
}

// RemainingMinutes is the derived countdown while the store is preparing.
// Nothing schedules it; it is recomputed from AcceptedAt on every read.
func (o *Order) RemainingMinutes(now time.Time) *int {
	if o.Status != OrderStatusAccepted && o.Status != OrderStatusPreparing {
		return nil
	}
	if o.PreparationTime == nil || o.AcceptedAt == nil {
		return nil
	}
	due := o.AcceptedAt.Add(time.Duration(*o.PreparationTime) * time.Minute)
	left := int(due.Sub(now).Minutes())
	if left < 0 {
		left = 0
	}
	return &left
}
