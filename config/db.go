package config

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/andres-gutierrezri/kitty-project/domain"
	"github.com/andres-gutierrezri/kitty-project/utils"
)

func GetDatabaseURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_SSLMODE"),
	)
}

func BootDB() (*gorm.DB, error) {
	address := GetDatabaseURL()

	var gormLogger logger.Interface
	if os.Getenv("APP_ENV") == "development" {
		gormLogger = logger.Default.LogMode(logger.Info) // show all SQL
	} else {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(postgres.Open(address), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(30 * time.Minute)

	err = db.AutoMigrate(
		&domain.User{},
		&domain.LoginHistory{},
		&domain.Product{},
		&domain.Category{},
		&domain.Review{},
		&domain.Favorite{},
		&domain.Order{},
		&domain.OrderItem{},
	)
	if err != nil {
		return nil, fmt.Errorf("auto-migrate database schemas: %w", err)
	}

	if err := seedAdminUser(db); err != nil {
		return nil, err
	}

	log.Info().Msg("Connected to " + utils.ColorText("Database", utils.Green) + " successfully")
	return db, nil
}

// seedAdminUser creates the initial administrator when no admin exists yet.
// Controlled by ADMIN_* env vars; skipped silently when they are unset.
func seedAdminUser(db *gorm.DB) error {
	var count int64
	db.Model(&domain.User{}).Where("role = ?", domain.RoleAdmin).Count(&count)
	if count > 0 {
		return nil
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPass := os.Getenv("ADMIN_PASSWORD")
	adminUsername := os.Getenv("ADMIN_USERNAME")

	if adminEmail == "" || adminPass == "" {
		log.Warn().Msg("Skipping admin seeding, missing ADMIN_EMAIL or ADMIN_PASSWORD in env")
		return nil
	}
	if adminUsername == "" {
		adminUsername = "admin"
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPass), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	adminUser := domain.User{
		Username:      adminUsername,
		Email:         adminEmail,
		Password:      string(hashed),
		Role:          domain.RoleAdmin,
		EmailVerified: true,
		IsActive:      true,
	}

	if err := db.Create(&adminUser).Error; err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}

	log.Info().Str("email", adminEmail).Msg("Seeded admin user")
	return nil
}
