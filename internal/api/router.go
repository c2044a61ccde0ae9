package api

import (
	"net/http" // HTTP status codes
	"time"     // CORS preflight cache

	"recipe_backend/internal/middleware" // Custom package for middleware

	"github.com/gin-contrib/cors"                             // CORS middleware
	"github.com/gin-gonic/gin"                                // Gin web framework
	"github.com/prometheus/client_golang/prometheus"          // Prometheus registry
	"github.com/prometheus/client_golang/prometheus/promhttp" // Metrics exposition
	"github.com/redis/go-redis/v9"                            // Redis client
	"github.com/sirupsen/logrus"                              // Logrus for structured logging
	"gorm.io/gorm"                                            // GORM ORM library
)

// Deps are the shared resources handed to every handler
type Deps struct {
	DB          *gorm.DB
	Redis       *redis.Client // Optional, nil disables caching
	JWTSecret   string
	CORSOrigins []string
	Registry    *prometheus.Registry // Optional, a fresh registry is used when nil
}

// NewRouter builds the Gin engine with every route registered
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.RedirectTrailingSlash = false // Collections are registered with and without the trailing slash
	r.Use(gin.Recovery(), middleware.RequestLogger())
	r.Use(corsMiddleware(d.CORSOrigins))

	reg := d.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	r.Use(middleware.NewMetrics(reg).Handler())
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	r.GET("/health", healthHandler(d.DB))

	auth := middleware.JWTAuthMiddleware(d.JWTSecret)

	// User routes
	users := r.Group("/user")
	collection(users, http.MethodGet, auth, ListUsersHandler(d.DB, d.Redis))
	users.POST("/create", CreateUserHandler(d.DB, d.Redis))
	users.POST("/login", LoginHandler(d.DB, d.JWTSecret))
	users.GET("/profile", auth, ProfileHandler(d.DB))
	users.GET("/:id", GetUserHandler(d.DB))
	users.DELETE("/:id", auth, middleware.SelfOnlyMiddleware("id"), DeleteUserHandler(d.DB, d.Redis))

	// Recipe routes
	recipes := r.Group("/recipe")
	collection(recipes, http.MethodGet, ListRecipesHandler(d.DB, d.Redis))
	recipes.GET("/mine", auth, ListMyRecipesHandler(d.DB))
	recipes.GET("/:id", GetRecipeHandler(d.DB))
	collection(recipes, http.MethodPost, auth, CreateRecipeHandler(d.DB, d.Redis))
	recipes.PUT("/:id", auth, UpdateRecipeHandler(d.DB, d.Redis))
	recipes.DELETE("/:id", auth, DeleteRecipeHandler(d.DB, d.Redis))

	// Ingredient routes
	ingredients := r.Group("/ingredient")
	collection(ingredients, http.MethodGet, ListIngredientsHandler(d.DB, d.Redis))
	ingredients.GET("/:id", GetIngredientHandler(d.DB))
	collection(ingredients, http.MethodPost, auth, CreateIngredientHandler(d.DB, d.Redis))
	ingredients.DELETE("/:id", auth, DeleteIngredientHandler(d.DB, d.Redis))

	// Favorite routes, all scoped to the caller
	favorites := r.Group("/recipe_favorite", auth)
	collection(favorites, http.MethodGet, ListFavoritesHandler(d.DB))
	collection(favorites, http.MethodPost, AddFavoriteHandler(d.DB))
	favorites.DELETE("/:id", RemoveFavoriteHandler(d.DB))

	return r
}

// collection registers a handler on both the bare group path and its trailing-slash form
func collection(g *gin.RouterGroup, method string, handlers ...gin.HandlerFunc) {
	g.Handle(method, "", handlers...)
	g.Handle(method, "/", handlers...)
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}

func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			logrus.WithError(err).Error("Health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
