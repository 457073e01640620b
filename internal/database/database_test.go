package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"plantonize/internal/models"
)

func TestNewManager_SQLite(t *testing.T) {
	cfg := &Config{Driver: DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "test.db")}

	m, err := NewManager(cfg)
	require.NoError(t, err)
	defer m.Close()

	require.NoError(t, m.RunMigrations())
	for _, table := range []string{"users", "evolutions", "evolution_logs"} {
		assert.True(t, m.DB().Migrator().HasTable(table), "table %s", table)
	}

	// Idempotent
	require.NoError(t, m.RunMigrations())

	// Driver errors are translated to gorm sentinels
	require.NoError(t, m.DB().Create(&models.User{Username: "repetido", Password: "x", Role: models.RoleCollaborator}).Error)
	err = m.DB().Create(&models.User{Username: "repetido", Password: "x", Role: models.RoleCollaborator}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestNewManager_UnsupportedDriver(t *testing.T) {
	_, err := NewManager(&Config{Driver: "mysql"})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestNewMigrator_RequiresPostgres(t *testing.T) {
	_, err := NewMigrator(&Config{Driver: DriverSQLite})
	assert.Error(t, err)
}

func TestConfigURLs(t *testing.T) {
	cfg := &Config{
		Driver:         DriverPostgres,
		Host:           "db",
		Port:           "5432",
		User:           "u",
		Password:       "p",
		DBName:         "plantonize",
		SSLMode:        "disable",
		MigrationsPath: "migrations",
	}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=plantonize sslmode=disable", cfg.DSN())
	assert.Equal(t, "postgres://u:p@db:5432/plantonize?sslmode=disable", cfg.URL())
	assert.Equal(t, "file://migrations", cfg.SourceURL())
}
