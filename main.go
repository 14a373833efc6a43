package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/talibjameel/gemStore-backend/config"
	"github.com/talibjameel/gemStore-backend/models"
	"github.com/talibjameel/gemStore-backend/routes"
	"github.com/talibjameel/gemStore-backend/storage"
	"github.com/talibjameel/gemStore-backend/token"
)

func main() {
	log.Println("✅ Starting gemStore backend...")

	// Load environment variables
	_ = godotenv.Load()
	cfg := config.Load()

	// Init DB
	db := initDatabase(cfg.DatabaseURL)

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Category{},
		&models.Banner{},
		&models.CartItem{},
		&models.Order{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	// Token service (signing secret + mandatory expiry)
	tokenSvc := token.NewService(cfg.JWTSecret, cfg.TokenExpiry)

	// S3 bucket for product/banner images
	bucket, err := storage.New(context.Background(), cfg.AWSRegion, cfg.AWSBucket)
	if err != nil {
		log.Fatalf("❌ Failed to init S3 bucket: %v", err)
	}

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup routes
	routes.SetupRoutes(r, db, tokenSvc, bucket)

	log.Printf("🚀 Server running on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase(databaseURL string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ DB connection failed: %v", err)
	}
	return db
}
