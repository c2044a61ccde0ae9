package api

import (
	"context"  // Context for Redis operations
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strconv"  // Path parameter parsing

	"recipe_backend/internal/middleware" // Authenticated user lookup
	"recipe_backend/internal/utils"      // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/gorm"                 // GORM ORM library
)

// Cache keys for list endpoints
const (
	usersCacheKey       = "usuarios:all"
	recipesCacheKey     = "recetas:all"
	ingredientsCacheKey = "ingredientes:all"
)

// parseID reads a numeric path parameter, writing 400 when it is malformed
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}

// currentUser reads the authenticated user ID, writing 401 when it is missing
func currentUser(c *gin.Context) (uint, bool) {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return id, true
}

// respondStoreError maps a GORM error to a status code, logging anything unexpected
func respondStoreError(c *gin.Context, err error, notFound, action string) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
	case errors.Is(err, gorm.ErrDuplicatedKey):
		c.JSON(http.StatusConflict, gin.H{"error": "Resource already exists"})
	default:
		logrus.WithFields(logrus.Fields{
			"path":  c.FullPath(),
			"error": err.Error(),
		}).Error(action + " failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": action + " failed"})
	}
}

// invalidate drops list caches after a write; cache failures are logged, never surfaced
func invalidate(rdb *redis.Client, keys ...string) {
	if err := utils.DeleteCache(context.Background(), rdb, keys...); err != nil {
		logrus.WithField("keys", keys).WithError(err).Warn("Cache invalidation failed")
	}
}
