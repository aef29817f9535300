package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"userhub/internal/models"
)

// Init opens the database and runs migrations. The returned instance is
// passed explicitly to every component that needs it; there is no
// package-level connection.
func Init(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect db: %w", err)
	}
	if err := gdb.AutoMigrate(&models.User{}); err != nil {
		return nil, fmt.Errorf("auto migrate failed: %w", err)
	}
	return gdb, nil
}

// Close releases the underlying connection pool.
func Close(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
