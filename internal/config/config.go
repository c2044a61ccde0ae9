package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For splitting list values

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort     string   // Application port
	DatabaseURL string   // Full database URL (postgres:// or sqlite path)
	DBUser      string   // MySQL user
	DBPassword  string   // MySQL password
	DBHost      string   // MySQL host
	DBPort      string   // MySQL port
	DBName      string   // MySQL database name
	JWTSecret   string   // JWT secret key
	RedisAddr   string   // Redis server address, empty disables caching
	RedisPass   string   // Redis password
	RedisDB     int      // Redis database number
	CORSOrigins []string // Allowed CORS origins
	IsProd      bool     // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AppPort:     firstNonEmpty(os.Getenv("APP_PORT"), os.Getenv("PORT"), "3000"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBHost:      os.Getenv("DB_HOST"),
		DBPort:      firstNonEmpty(os.Getenv("DB_PORT"), "3306"),
		DBName:      os.Getenv("DB_NAME"),
		JWTSecret:   os.Getenv("JWT_KEY"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		RedisPass:   os.Getenv("REDIS_PASS"),
		RedisDB:     redisDB,
		CORSOrigins: splitList(firstNonEmpty(os.Getenv("CORS_ORIGINS"), "*")),
		IsProd:      os.Getenv("IS_PROD") == "true",
	}
}

// MySQLDSN builds the MySQL Data Source Name, or "" when no MySQL host is configured
func (c *Config) MySQLDSN() string {
	if c.DBHost == "" {
		return ""
	}
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
