package db

import (
	"recipe_backend/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// Migrate creates tables, missing foreign keys, constraints, columns and indexes
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Usuario{}, &domain.Ingrediente{}, &domain.Receta{}, &domain.RecetaFavorita{})
}
