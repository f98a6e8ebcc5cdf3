package config

import (
	"fmt"
	"ohcm/domain"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// GetDatabaseURL builds the database connection string.
func GetDatabaseURL() string {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		os.Getenv("DB_HOST"), os.Getenv("DB_PORT"), os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"), os.Getenv("DB_DATABASE"))
	return dsn
}

// BootDB initializes the database connection and runs migrations. The
// returned handle is the only one; callers pass it down instead of reading
// package state.
func BootDB() (*gorm.DB, error) {
	url := GetDatabaseURL()

	db, err := gorm.Open(postgres.Open(url), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := autoMigrate(db); err != nil {
		return db, err
	}

	GetLogrusInstance().Info("DB initialized")
	return db, nil
}

func autoMigrate(db *gorm.DB) error {
	// Enums must exist before the columns that use them
	if err := db.Exec(`DO $$ BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'designation_type_enum') THEN
			CREATE TYPE designation_type_enum AS ENUM ('academic', 'administrative');
		END IF;
	END $$`).Error; err != nil {
		return fmt.Errorf("failed to create designation type ENUM: %w", err)
	}

	if err := db.Exec(`DO $$ BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'user_role_enum') THEN
			CREATE TYPE user_role_enum AS ENUM ('admin', 'staff');
		END IF;
	END $$`).Error; err != nil {
		return fmt.Errorf("failed to create role ENUM: %w", err)
	}

	// Tables without foreign keys first
	if err := db.AutoMigrate(
		&domain.Person{},
		&domain.Designation{},
		&domain.User{},
	); err != nil {
		return fmt.Errorf("failed to migrate base tables: %w", err)
	}

	// Tables that reference the base tables
	if err := db.AutoMigrate(
		&domain.Faculty{},
		&domain.Qualification{},
	); err != nil {
		return fmt.Errorf("failed to migrate relational tables: %w", err)
	}

	var existingAdmin domain.User
	err := db.Where("role = 'admin' AND deleted_at IS NULL").First(&existingAdmin).Error
	if err != nil {
		GetLogrusInstance().Info("Creating default admin account....")
		adminUsername := os.Getenv("ADMIN_USERNAME")
		adminName := os.Getenv("ADMIN_NAME")
		adminPassword := os.Getenv("ADMIN_PASSWORD")

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("could not hash password: %v", err)
		}

		now := time.Now()
		admin := domain.User{
			Username:  adminUsername,
			Name:      adminName,
			Password:  string(hashedPassword),
			Role:      "admin",
			CreatedAt: now,
			UpdatedAt: now,
		}

		err = db.Create(&admin).Error
		if err != nil {
			return err
		}
		GetLogrusInstance().Info("Admin account created")
	}

	return nil
}
