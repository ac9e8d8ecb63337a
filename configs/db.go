package configs

import (
	"log"

	"jangbo/entity"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

func ConnectionDB(cfg *Config) {
	var (
		database *gorm.DB
		err      error
	)
	switch cfg.DBDriver {
	case "postgres":
		database, err = gorm.Open(postgres.Open(cfg.DBSource), &gorm.Config{})
	default:
		database, err = gorm.Open(sqlite.Open(cfg.DBSource), &gorm.Config{})
	}
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	db = database
}

func SetupDatabase() {
	err := db.AutoMigrate(
		&entity.User{},
		&entity.Store{}, &entity.Product{},
		&entity.Cart{}, &entity.CartItem{},
		&entity.Order{}, &entity.OrderProduct{},
		&entity.Payment{},
	)
	if err != nil {
		log.Fatalf("migrate failed: %v", err)
	}
}
