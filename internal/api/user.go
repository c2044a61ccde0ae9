package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strings"  // String manipulation
	"time"     // Cache TTL

	"recipe_backend/internal/domain" // Importing domain models
	"recipe_backend/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/gorm"                 // GORM ORM library
)

// CreateUserRequest is the signup payload
type CreateUserRequest struct {
	Nombre        string `json:"nombre"`
	Apellidos     string `json:"apellidos"`
	NombreUsuario string `json:"nombre_usuario"`
	Email         string `json:"email" binding:"required,email"` // Email must be provided
	Password      string `json:"password" binding:"required"`    // Password must be provided
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is returned on successful login
type LoginResponse struct {
	Msg         string         `json:"msg"`
	AccessToken string         `json:"access_token"`
	User        domain.Usuario `json:"user"`
}

// ListUsersHandler returns every user, served from cache when possible
func ListUsersHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var users []domain.Usuario
		if found, err := utils.GetCache(ctx, rdb, usersCacheKey, &users); err == nil && found {
			c.JSON(http.StatusOK, gin.H{"users": users})
			return
		}
		if err := db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
			respondStoreError(c, err, "", "Fetching users")
			return
		}
		_ = utils.SetCache(ctx, rdb, usersCacheKey, users, 60*time.Second)
		c.JSON(http.StatusOK, gin.H{"users": users})
	}
}

// CreateUserHandler registers a user with a bcrypt hashed password
func CreateUserHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		user := domain.Usuario{
			Nombre:        req.Nombre,
			Apellidos:     req.Apellidos,
			NombreUsuario: req.NombreUsuario,
			Email:         strings.ToLower(strings.TrimSpace(req.Email)), // Lowercase so uniqueness is case-insensitive
			Password:      hash,
		}
		if err := db.WithContext(c.Request.Context()).Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusConflict, gin.H{"error": "El email ya está registrado"})
				return
			}
			respondStoreError(c, err, "", "Creating user")
			return
		}
		invalidate(rdb, usersCacheKey)
		logrus.WithField("user_id", user.ID).Info("User created")
		c.JSON(http.StatusCreated, gin.H{"message": "Usuario creado", "id": user.ID})
	}
}

// LoginHandler verifies credentials and returns a signed token
func LoginHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var user domain.Usuario
		err := db.WithContext(c.Request.Context()).
			Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).
			First(&user).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			respondStoreError(c, err, "", "Login")
			return
		}
		// Unknown email and wrong password produce the same answer
		if err != nil || !utils.CheckPassword(user.Password, req.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "El email no está registrado o los datos son incorrectos"})
			return
		}
		token, err := utils.GenerateJWT(user.ID, jwtSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		c.JSON(http.StatusOK, LoginResponse{Msg: "Login correcto", AccessToken: token, User: user})
	}
}

// ProfileHandler returns the user identified by the token
func ProfileHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		var user domain.Usuario
		if err := db.WithContext(c.Request.Context()).First(&user, userID).Error; err != nil {
			respondStoreError(c, err, "Usuario no encontrado", "Fetching profile")
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// GetUserHandler returns a user by primary key
func GetUserHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		var user domain.Usuario
		if err := db.WithContext(c.Request.Context()).First(&user, id).Error; err != nil {
			respondStoreError(c, err, "Usuario no encontrado", "Fetching user")
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

// DeleteUserHandler removes a user together with their recipes and favorites.
// Ownership is enforced by SelfOnlyMiddleware on the route.
func DeleteUserHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		err := db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
			var user domain.Usuario
			if err := tx.First(&user, id).Error; err != nil {
				return err
			}
			var recipeIDs []uint
			if err := tx.Model(&domain.Receta{}).Where("usuario_id = ?", id).Pluck("id", &recipeIDs).Error; err != nil {
				return err
			}
			if err := tx.Where("usuario_id = ?", id).Delete(&domain.RecetaFavorita{}).Error; err != nil {
				return err
			}
			if len(recipeIDs) > 0 {
				if err := deleteRecipeRows(tx, recipeIDs); err != nil {
					return err
				}
			}
			return tx.Delete(&user).Error
		})
		if err != nil {
			respondStoreError(c, err, "Usuario no encontrado", "Deleting user")
			return
		}
		invalidate(rdb, usersCacheKey, recipesCacheKey)
		logrus.WithField("user_id", id).Info("User deleted")
		c.JSON(http.StatusOK, gin.H{"message": "Usuario eliminado"})
	}
}
