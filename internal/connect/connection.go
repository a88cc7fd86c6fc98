package connect

import (
	"fmt"

	"github.com/joshua-takyi/driveway/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// PostgresConnect opens the relational store and runs migrations for the
// marketplace tables.
func PostgresConnect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %v", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	if err := db.AutoMigrate(&models.User{}, &models.Car{}, &models.Booking{}); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	return db, nil
}

func Disconnect(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to access connection pool: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to disconnect Postgres: %v", err)
	}
	return nil
}
