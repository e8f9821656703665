package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"transit_info/internal/models"
)

var (
	// DB is the shared database handle, initialized once at process start
	// and reused across requests.
	DB *gorm.DB
)

// InitDB loads the environment, opens the GORM connection and runs
// auto-migration for every catalog entity.
func InitDB() {
	// Load .env (if present)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found – relying on env vars")
	}

	host := Getenv("DB_HOST", "localhost")
	port := Getenv("DB_PORT", "5432")
	user := Getenv("DB_USER", "postgres")
	password := Getenv("DB_PASSWORD", "password")
	dbname := Getenv("DB_NAME", "transit")
	sslmode := Getenv("DB_SSLMODE", "disable")
	timezone := Getenv("DB_TIMEZONE", "UTC")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		host, user, password, dbname, port, sslmode, timezone,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Stop{},
		&models.Route{},
		&models.RouteStop{},
		&models.Schedule{},
		&models.Fare{},
		&models.ServiceAlert{},
		&models.SimpleRoute{},
	)
	if err != nil {
		log.Fatalf("auto-migration failed: %v", err)
	}

	DB = db
}

// Getenv reads an environment variable or returns the provided default.
func Getenv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}

// GetDB returns the initialized DB handle
func GetDB() *gorm.DB {
	return DB
}
