package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"time"     // Cache TTL

	"recipe_backend/internal/domain" // Importing domain models
	"recipe_backend/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// IngredientRequest is the payload for a new ingredient
type IngredientRequest struct {
	Nombre string `json:"nombre" binding:"required"`
}

func ListIngredientsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var ings []domain.Ingrediente
		if found, err := utils.GetCache(ctx, rdb, ingredientsCacheKey, &ings); err == nil && found {
			c.JSON(http.StatusOK, gin.H{"ingredientes": ings})
			return
		}
		if err := db.WithContext(ctx).Order("nombre").Find(&ings).Error; err != nil {
			respondStoreError(c, err, "", "Fetching ingredients")
			return
		}
		_ = utils.SetCache(ctx, rdb, ingredientsCacheKey, ings, 60*time.Second)
		c.JSON(http.StatusOK, gin.H{"ingredientes": ings})
	}
}

func GetIngredientHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		var ing domain.Ingrediente
		if err := db.WithContext(c.Request.Context()).First(&ing, id).Error; err != nil {
			respondStoreError(c, err, "Ingrediente no encontrado", "Fetching ingredient")
			return
		}
		c.JSON(http.StatusOK, ing)
	}
}

// CreateIngredientHandler adds an ingredient; names are unique
func CreateIngredientHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req IngredientRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		ing := domain.Ingrediente{Nombre: utils.SanitizeText(req.Nombre)}
		if ing.Nombre == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "El nombre no puede estar vacío"})
			return
		}
		if err := db.WithContext(c.Request.Context()).Create(&ing).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusConflict, gin.H{"error": "El ingrediente ya existe"})
				return
			}
			respondStoreError(c, err, "", "Creating ingredient")
			return
		}
		invalidate(rdb, ingredientsCacheKey)
		c.JSON(http.StatusCreated, ing)
	}
}

// DeleteIngredientHandler removes an ingredient and unlinks it from every recipe
func DeleteIngredientHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		err := db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
			var ing domain.Ingrediente
			if err := tx.First(&ing, id).Error; err != nil {
				return err
			}
			if err := tx.Exec("DELETE FROM receta_ingredientes WHERE ingrediente_id = ?", id).Error; err != nil {
				return err
			}
			return tx.Delete(&ing).Error
		})
		if err != nil {
			respondStoreError(c, err, "Ingrediente no encontrado", "Deleting ingredient")
			return
		}
		invalidate(rdb, ingredientsCacheKey, recipesCacheKey)
		c.JSON(http.StatusOK, gin.H{"message": "Ingrediente eliminado"})
	}
}
