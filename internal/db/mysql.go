package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"senti/internal/model"
)

// NewMySQL returns a connected GORM DB instance. Driver errors are
// translated so duplicate keys surface as gorm.ErrDuplicatedKey.
func NewMySQL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the credential and funding tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Credential{}, &model.CatalogItem{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
