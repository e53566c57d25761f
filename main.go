package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"ordering-system/config"
	"ordering-system/database"
	"ordering-system/middlewares"
	"ordering-system/models"
	"ordering-system/router"
	"ordering-system/services"
	"ordering-system/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()
}

func main() {
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	if os.Getenv("SEED_DEMO") == "true" {
		if err := database.SeedDemoData(db); err != nil {
			utils.ErrorLogger.Printf("Error seeding demo data: %v", err)
		}
	}

	carts := services.NewCartService(db)

	rateLimiter := middlewares.NewRateLimiter(50, 1)

	r := router.SetupRouter(db, carts)
	r.Use(rateLimiter.RateLimit())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.Meal{},
		&models.Staff{},
		&models.Order{},
		&models.OrderDetail{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
