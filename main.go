package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/rakapane/dineflow/config"
	"github.com/rakapane/dineflow/models"
	"github.com/rakapane/dineflow/router"
	"github.com/rakapane/dineflow/services"
	"github.com/rakapane/dineflow/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	utils.InitLogger()

	cfg := config.Load()
	utils.InitJWT(cfg.JWTSecret)

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	autoMigrate(db)

	redisClient, err := config.InitRedis(cfg)
	if err != nil {
		utils.ErrorLogger.Printf("Redis unavailable, menu cache disabled: %v", err)
	}
	menuCache := services.NewMenuCache(redisClient, cfg.MenuCacheTTL)

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := router.SetupRouter(db, cfg, menuCache)

	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.MenuItem{},
		&models.Reservation{},
		&models.Order{},
		&models.OrderItem{},
		&models.Feedback{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
