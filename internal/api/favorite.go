package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes

	"recipe_backend/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// FavoriteRequest marks a recipe as favorite
type FavoriteRequest struct {
	RecetaID uint `json:"receta_id" binding:"required"`
}

// ListFavoritesHandler returns the caller's favorites with their recipes
func ListFavoritesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		var favs []domain.RecetaFavorita
		if err := db.WithContext(c.Request.Context()).Preload("Receta.Ingredientes").
			Where("usuario_id = ?", userID).Order("id").Find(&favs).Error; err != nil {
			respondStoreError(c, err, "", "Fetching favorites")
			return
		}
		c.JSON(http.StatusOK, gin.H{"favoritas": favs})
	}
}

// AddFavoriteHandler links the caller to an existing recipe
func AddFavoriteHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		var req FavoriteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		tx := db.WithContext(c.Request.Context())
		var receta domain.Receta
		if err := tx.First(&receta, req.RecetaID).Error; err != nil {
			respondStoreError(c, err, "Receta no encontrada", "Fetching recipe")
			return
		}
		fav := domain.RecetaFavorita{UsuarioID: userID, RecetaID: receta.ID}
		if err := tx.Create(&fav).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusConflict, gin.H{"error": "La receta ya está en favoritos"})
				return
			}
			respondStoreError(c, err, "", "Adding favorite")
			return
		}
		c.JSON(http.StatusCreated, fav)
	}
}

// RemoveFavoriteHandler deletes one of the caller's favorites
func RemoveFavoriteHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		tx := db.WithContext(c.Request.Context())
		var fav domain.RecetaFavorita
		if err := tx.First(&fav, id).Error; err != nil {
			respondStoreError(c, err, "Favorito no encontrado", "Fetching favorite")
			return
		}
		if fav.UsuarioID != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Este favorito no te pertenece"})
			return
		}
		if err := tx.Delete(&fav).Error; err != nil {
			respondStoreError(c, err, "Favorito no encontrado", "Removing favorite")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Favorito eliminado"})
	}
}
