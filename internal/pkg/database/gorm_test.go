package database

import (
	"Quill/internal/api/config"
	"Quill/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGormDBSQLiteMigrates(t *testing.T) {
	db, err := NewGormDB(&config.DBConfig{
		Driver:      config.DriverSQLite,
		DSN:         "file::memory:?_pragma=foreign_keys(1)",
		AutoMigrate: true,
	})
	require.NoError(t, err)

	assert.True(t, db.Migrator().HasTable(&model.Post{}))
	assert.True(t, db.Migrator().HasTable(&model.Category{}))
	assert.True(t, db.Migrator().HasTable(&model.PostCategory{}))
}

func TestNewGormDBRejectsUnknownDriver(t *testing.T) {
	_, err := NewGormDB(&config.DBConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestMySQLDSN(t *testing.T) {
	dsn := MySQLDSN(&config.DBConfig{
		Driver:   config.DriverMySQL,
		Host:     "db",
		Port:     3306,
		User:     "quill",
		Password: "secret",
		Name:     "blog",
	})
	assert.Contains(t, dsn, "quill:secret@tcp(db:3306)/blog?")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")

	assert.Equal(t, "u:p@tcp(h:1)/x", MySQLDSN(&config.DBConfig{DSN: "u:p@tcp(h:1)/x"}))
}
