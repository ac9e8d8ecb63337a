package configs

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver  string
	DBSource  string
	Port      string
	JWTSecret string
	JWTTTL    time.Duration

	SeedMerchantEmail    string
	SeedMerchantPassword string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	return &Config{
		DBDriver:             getEnv("DB_DRIVER", "sqlite"),
		DBSource:             getEnv("DB_SOURCE", "jangbo.db"),
		Port:                 getEnv("PORT", "8000"),
		JWTSecret:            getEnv("JWT_SECRET", "changeme"),
		JWTTTL:               24 * time.Hour,
		SeedMerchantEmail:    getEnv("SEED_MERCHANT_EMAIL", ""),
		SeedMerchantPassword: getEnv("SEED_MERCHANT_PASSWORD", ""),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
