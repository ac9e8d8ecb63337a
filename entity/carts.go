package entity

import (
	"gorm.io/gorm"
)

type Cart struct {
	gorm.Model
	CustomerID uint `json:"customerId" gorm:"uniqueIndex"`
	Customer   User `gorm:"foreignKey:CustomerID" json:"-"`

	Items []CartItem `json:"items" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
