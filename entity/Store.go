package entity

import (
	"gorm.io/gorm"
)

type Store struct {
	gorm.Model
	Name        string `json:"name"`
	Address     string `json:"address"`
	Description string `json:"description"`

	MerchantID uint `json:"merchantId"`
	Merchant   User `gorm:"foreignKey:MerchantID" json:"-"`

	Products []Product `json:"-"`
	Orders   []Order   `json:"-"`
}
