package db

import (
	"testing"

	"recipe_backend/internal/config"
	"recipe_backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestDialectorSelection(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want string
	}{
		{"postgres url", config.Config{DatabaseURL: "postgres://u:p@localhost:5432/recetas"}, "postgres"},
		{"postgresql url", config.Config{DatabaseURL: "postgresql://u:p@localhost/recetas"}, "postgres"},
		{"sqlite url", config.Config{DatabaseURL: "sqlite:///tmp/x.db"}, "sqlite"},
		{"mysql settings", config.Config{DBHost: "db", DBPort: "3306", DBUser: "u", DBName: "r"}, "mysql"},
		{"fallback", config.Config{}, "sqlite"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Dialector(&tt.cfg).Name())
		})
	}
}

func TestMigrateCreatesTables(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, Migrate(gdb))

	for _, table := range []string{"usuarios", "recetas", "ingredientes", "recetas_favoritas", "receta_ingredientes"} {
		assert.True(t, gdb.Migrator().HasTable(table), table)
	}

	require.NoError(t, gdb.Create(&domain.Usuario{Email: "a@b.c", Password: "x"}).Error)
	err = gdb.Create(&domain.Usuario{Email: "a@b.c", Password: "y"}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
