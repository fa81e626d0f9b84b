package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	models "github.com/dmfernando/donation-campaign-go/models"
)

// Config carries everything handlers need: the open DB handle and the
// environment-derived settings. It is built once in main and passed
// explicitly to every handler factory.
type Config struct {
	DB            *gorm.DB
	Port          string
	BaseURL       string
	Currency      string
	JWTSecret     string
	AdminEmail    string
	AdminPassword string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	db, err := connectDB()
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.Donation{},
		&models.StripeConfig{},
		&models.CampaignSettings{},
		&models.DonorMessage{},
		&models.ProjectImage{},
		&models.WebhookEvent{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	cfg := &Config{
		DB:            db,
		Port:          getEnv("PORT", "8080"),
		BaseURL:       getEnv("BASE_URL", "http://localhost:5173"),
		Currency:      getEnv("CAMPAIGN_CURRENCY", "BRL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func connectDB() (*gorm.DB, error) {
	// DATABASE_URL wins (hosted Postgres connection string), otherwise the
	// DSN is assembled from individual vars.
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "host=" + getEnv("DB_HOST", "localhost") +
			" user=" + getEnv("DB_USER", "postgres") +
			" password=" + getEnv("DB_PASS", "postgres") +
			" dbname=" + getEnv("DB_NAME", "donationsdb") +
			" port=" + getEnv("DB_PORT", "5432") +
			" sslmode=" + getEnv("DB_SSLMODE", "disable") + " TimeZone=UTC"
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	return db, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
