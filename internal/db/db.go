package db

import (
	"recipe_backend/internal/config" // Custom import path (Config)
	"strings"                        // DSN inspection

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/driver/postgres"    // PostgreSQL driver for GORM
	"gorm.io/driver/sqlite"      // SQLite driver for GORM
	"gorm.io/gorm"               // GORM ORM library
)

// DefaultSQLitePath is used when neither DATABASE_URL nor a MySQL host is configured
const DefaultSQLitePath = "/tmp/recetas.db"

// Dialector picks the GORM driver from the configuration.
// Precedence: DATABASE_URL (postgres or sqlite), then MySQL settings, then a local SQLite file.
func Dialector(cfg *config.Config) gorm.Dialector {
	url := cfg.DatabaseURL
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return postgres.Open(url)
	case strings.HasPrefix(url, "sqlite://"):
		return sqlite.Open(strings.TrimPrefix(url, "sqlite://"))
	case url != "":
		return postgres.Open(url) // key=value style DSN
	case cfg.MySQLDSN() != "":
		return mysql.Open(cfg.MySQLDSN())
	default:
		return sqlite.Open(DefaultSQLitePath)
	}
}

// Open connects to the configured database
func Open(cfg *config.Config) (*gorm.DB, error) {
	dialector := Dialector(cfg)
	logrus.WithField("driver", dialector.Name()).Info("Opening database")
	return gorm.Open(dialector, &gorm.Config{TranslateError: true})
}
