package entity

import (
	"gorm.io/gorm"
)

const (
	RoleCustomer = "customer"
	RoleMerchant = "merchant"
)

type User struct {
	gorm.Model
	Email    string `json:"email" gorm:"uniqueIndex;size:255"`
	Password string `json:"-"`
	Name     string `json:"name"`
	Role     string `json:"role"` // customer | merchant

	Stores []Store `gorm:"foreignKey:MerchantID" json:"-"`
	Orders []Order `gorm:"foreignKey:CustomerID" json:"-"`
}
