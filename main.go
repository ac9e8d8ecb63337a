package main

import (
	"log"

	"jangbo/configs"
	"jangbo/middlewares"
	"jangbo/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := configs.LoadConfig()

	// DB
	configs.ConnectionDB(cfg)
	configs.SetupDatabase()
	if err := configs.SeedDemo(cfg); err != nil {
		log.Fatalf("seed failed: %v", err)
	}

	// HTTP
	r := gin.Default()
	r.Use(middlewares.CORSMiddleware())

	routes.RegisterRoutes(r, configs.DB(), cfg)

	log.Println("listening on :" + cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
