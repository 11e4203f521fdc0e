package db

import (
	"io/fs"
	"strings"
	"testing"

	"emedica-be/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDSN(t *testing.T) {
	cfg := &config.Config{
		DBHost:     "localhost",
		DBUser:     "test_user",
		DBPassword: "test_password",
		DBName:     "test_db",
		DBPort:     "5432",
	}

	t.Run("DefaultSSLMode", func(t *testing.T) {
		expected := "host=localhost user=test_user password=test_password dbname=test_db port=5432 sslmode=disable"
		assert.Equal(t, expected, buildDSN(cfg))
	})

	t.Run("ExplicitSSLMode", func(t *testing.T) {
		withSSL := *cfg
		withSSL.DBSSLMode = "require"
		assert.True(t, strings.HasSuffix(buildDSN(&withSSL), "sslmode=require"))
	})
}

func TestNewDatabase_InvalidDriver(t *testing.T) {
	db, err := newDatabaseWithDriver(&config.Config{}, "invalid_driver_name")

	assert.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "failed to connect to DB")
}

func TestNewDatabase_ConnectionFailure(t *testing.T) {
	cfg := &config.Config{
		DBHost: "127.0.0.1",
		DBPort: "1",
	}

	db, err := NewDatabase(cfg)

	assert.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "failed to ping DB")
}

func TestEmbeddedMigrations(t *testing.T) {
	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	var ups, downs int
	for _, f := range files {
		switch {
		case strings.HasSuffix(f, ".up.sql"):
			ups++
		case strings.HasSuffix(f, ".down.sql"):
			downs++
		}
	}
	assert.Equal(t, ups, downs, "every up migration needs a down migration")

	up, err := fs.ReadFile(migrationsFS, "migrations/000001_init.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(up), "CONSTRAINT products_stock_check CHECK (stock >= 0)")
}
