package configs

import (
	"log"

	"jangbo/entity"

	"golang.org/x/crypto/bcrypt"
)

// SeedDemo creates a demo merchant with two stores and a handful of
// products so a fresh install has a browsable market. Skipped unless the
// seed credentials are configured.
func SeedDemo(cfg *Config) error {
	if cfg.SeedMerchantEmail == "" || cfg.SeedMerchantPassword == "" {
		log.Println("skip seeding: missing SEED_MERCHANT_EMAIL/SEED_MERCHANT_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.User{}).Where("email = ?", cfg.SeedMerchantEmail).Count(&count)
	if count > 0 {
		log.Println("seed merchant already exists:", cfg.SeedMerchantEmail)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.SeedMerchantPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	merchant := entity.User{
		Email:    cfg.SeedMerchantEmail,
		Password: string(hash),
		Name:     "Demo Merchant",
		Role:     entity.RoleMerchant,
	}
	if err := db.Create(&merchant).Error; err != nil {
		return err
	}

	stores := []entity.Store{
		{Name: "Greengrocer Kim", Address: "Stall 3, Central Market", MerchantID: merchant.ID},
		{Name: "Butcher Lee", Address: "Stall 12, Central Market", MerchantID: merchant.ID},
	}
	for i := range stores {
		if err := db.Create(&stores[i]).Error; err != nil {
			return err
		}
	}

	products := []entity.Product{
		{Name: "Napa Cabbage", Price: 3500, Stock: 40, StoreID: stores[0].ID},
		{Name: "Green Onion Bundle", Price: 1500, Stock: 60, StoreID: stores[0].ID},
		{Name: "Pork Belly 500g", Price: 9800, Stock: 25, StoreID: stores[1].ID},
	}
	for i := range products {
		if err := db.Create(&products[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
