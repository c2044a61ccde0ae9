package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"time"     // Cache TTL

	"recipe_backend/internal/domain" // Importing domain models
	"recipe_backend/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/gorm"                 // GORM ORM library
)

var errUnknownIngredient = errors.New("unknown ingredient")

// CreateRecipeRequest is the payload for a new recipe
type CreateRecipeRequest struct {
	Titulo            string `json:"titulo" binding:"required"`
	Descripcion       string `json:"descripcion"`
	Instrucciones     string `json:"instrucciones"`
	TiempoPreparacion int    `json:"tiempo_preparacion" binding:"gte=0"`
	ImagenURL         string `json:"imagen_url" binding:"omitempty,url"`
	Ingredientes      []uint `json:"ingredientes"` // Ingredient IDs
}

// UpdateRecipeRequest carries only the fields being changed
type UpdateRecipeRequest struct {
	Titulo            *string `json:"titulo" binding:"omitempty,min=1"`
	Descripcion       *string `json:"descripcion"`
	Instrucciones     *string `json:"instrucciones"`
	TiempoPreparacion *int    `json:"tiempo_preparacion" binding:"omitempty,gte=0"`
	ImagenURL         *string `json:"imagen_url" binding:"omitempty,len=0|url"` // Empty string clears the picture
	Ingredientes      *[]uint `json:"ingredientes"`                             // Replaces the whole set when present
}

// loadIngredients resolves ingredient IDs, failing if any of them does not exist
func loadIngredients(tx *gorm.DB, ids []uint) ([]domain.Ingrediente, error) {
	unique := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}
	if len(unique) == 0 {
		return []domain.Ingrediente{}, nil
	}
	var ings []domain.Ingrediente
	if err := tx.Where("id IN ?", ids).Find(&ings).Error; err != nil {
		return nil, err
	}
	if len(ings) != len(unique) {
		return nil, errUnknownIngredient
	}
	return ings, nil
}

// deleteRecipeRows removes recipes and every row referencing them
func deleteRecipeRows(tx *gorm.DB, ids []uint) error {
	if err := tx.Where("receta_id IN ?", ids).Delete(&domain.RecetaFavorita{}).Error; err != nil {
		return err
	}
	if err := tx.Exec("DELETE FROM receta_ingredientes WHERE receta_id IN ?", ids).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&domain.Receta{}).Error
}

// findOwnedRecipe loads a recipe and checks the caller owns it, writing the error response otherwise
func findOwnedRecipe(c *gin.Context, tx *gorm.DB, id, userID uint) (*domain.Receta, bool) {
	var receta domain.Receta
	if err := tx.First(&receta, id).Error; err != nil {
		respondStoreError(c, err, "Receta no encontrada", "Fetching recipe")
		return nil, false
	}
	if receta.UsuarioID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "No eres el propietario de esta receta"})
		return nil, false
	}
	return &receta, true
}

// ListRecipesHandler returns every recipe with its ingredients
func ListRecipesHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var recetas []domain.Receta
		if found, err := utils.GetCache(ctx, rdb, recipesCacheKey, &recetas); err == nil && found {
			c.JSON(http.StatusOK, gin.H{"recetas": recetas})
			return
		}
		if err := db.WithContext(ctx).Preload("Ingredientes").Order("id").Find(&recetas).Error; err != nil {
			respondStoreError(c, err, "", "Fetching recipes")
			return
		}
		_ = utils.SetCache(ctx, rdb, recipesCacheKey, recetas, 60*time.Second)
		c.JSON(http.StatusOK, gin.H{"recetas": recetas})
	}
}

// ListMyRecipesHandler returns the caller's recipes
func ListMyRecipesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		var recetas []domain.Receta
		if err := db.WithContext(c.Request.Context()).Preload("Ingredientes").
			Where("usuario_id = ?", userID).Order("id").Find(&recetas).Error; err != nil {
			respondStoreError(c, err, "", "Fetching recipes")
			return
		}
		c.JSON(http.StatusOK, gin.H{"recetas": recetas})
	}
}

// GetRecipeHandler returns one recipe by primary key
func GetRecipeHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		var receta domain.Receta
		if err := db.WithContext(c.Request.Context()).Preload("Ingredientes").First(&receta, id).Error; err != nil {
			respondStoreError(c, err, "Receta no encontrada", "Fetching recipe")
			return
		}
		c.JSON(http.StatusOK, receta)
	}
}

// CreateRecipeHandler stores a recipe owned by the caller
func CreateRecipeHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		var req CreateRecipeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		receta := domain.Receta{
			Titulo:            utils.SanitizeText(req.Titulo),
			Descripcion:       utils.SanitizeText(req.Descripcion),
			Instrucciones:     utils.SanitizeText(req.Instrucciones),
			TiempoPreparacion: req.TiempoPreparacion,
			ImagenURL:         req.ImagenURL,
			UsuarioID:         userID,
		}
		if receta.Titulo == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "El título no puede estar vacío"})
			return
		}
		err := db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
			ings, err := loadIngredients(tx, req.Ingredientes)
			if err != nil {
				return err
			}
			receta.Ingredientes = ings
			return tx.Omit("Ingredientes.*").Create(&receta).Error // Link existing ingredients only
		})
		if errors.Is(err, errUnknownIngredient) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Ingrediente no encontrado"})
			return
		}
		if err != nil {
			respondStoreError(c, err, "", "Creating recipe")
			return
		}
		invalidate(rdb, recipesCacheKey)
		logrus.WithFields(logrus.Fields{"recipe_id": receta.ID, "user_id": userID}).Info("Recipe created")
		c.JSON(http.StatusCreated, receta)
	}
}

// UpdateRecipeHandler applies a partial update to a recipe the caller owns
func UpdateRecipeHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		var req UpdateRecipeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		tx := db.WithContext(c.Request.Context())
		receta, ok := findOwnedRecipe(c, tx, id, userID)
		if !ok {
			return
		}

		updates := map[string]any{}
		if req.Titulo != nil {
			titulo := utils.SanitizeText(*req.Titulo)
			if titulo == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "El título no puede estar vacío"})
				return
			}
			updates["titulo"] = titulo
		}
		if req.Descripcion != nil {
			updates["descripcion"] = utils.SanitizeText(*req.Descripcion)
		}
		if req.Instrucciones != nil {
			updates["instrucciones"] = utils.SanitizeText(*req.Instrucciones)
		}
		if req.TiempoPreparacion != nil {
			updates["tiempo_preparacion"] = *req.TiempoPreparacion
		}
		if req.ImagenURL != nil {
			updates["imagen_url"] = *req.ImagenURL
		}

		err := tx.Transaction(func(tx *gorm.DB) error {
			if len(updates) > 0 {
				if err := tx.Model(receta).Updates(updates).Error; err != nil {
					return err
				}
			}
			if req.Ingredientes == nil {
				return nil
			}
			ings, err := loadIngredients(tx, *req.Ingredientes)
			if err != nil {
				return err
			}
			assoc := tx.Model(receta).Association("Ingredientes")
			if len(ings) == 0 {
				return assoc.Clear()
			}
			return assoc.Replace(ings)
		})
		if errors.Is(err, errUnknownIngredient) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Ingrediente no encontrado"})
			return
		}
		if err != nil {
			respondStoreError(c, err, "Receta no encontrada", "Updating recipe")
			return
		}

		var updated domain.Receta
		if err := db.WithContext(c.Request.Context()).Preload("Ingredientes").First(&updated, id).Error; err != nil {
			respondStoreError(c, err, "Receta no encontrada", "Fetching recipe")
			return
		}
		invalidate(rdb, recipesCacheKey)
		c.JSON(http.StatusOK, updated)
	}
}

// DeleteRecipeHandler removes a recipe the caller owns
func DeleteRecipeHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
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
		receta, ok := findOwnedRecipe(c, tx, id, userID)
		if !ok {
			return
		}
		err := tx.Transaction(func(tx *gorm.DB) error {
			return deleteRecipeRows(tx, []uint{receta.ID})
		})
		if err != nil {
			respondStoreError(c, err, "Receta no encontrada", "Deleting recipe")
			return
		}
		invalidate(rdb, recipesCacheKey)
		logrus.WithFields(logrus.Fields{"recipe_id": id, "user_id": userID}).Info("Recipe deleted")
		c.JSON(http.StatusOK, gin.H{"message": "Receta eliminada"})
	}
}
