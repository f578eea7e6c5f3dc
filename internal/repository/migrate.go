package repository

import "gorm.io/gorm"

// Migrate creates or updates the tables owned by this package.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&productModel{},
		&authTokenModel{},
	)
}
