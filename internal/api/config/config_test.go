package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(viper.New(), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.DB.Driver)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.False(t, cfg.Auth.Enabled)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, "quill_posts", cfg.Elastic.Indices.PostIndex)
	assert.Equal(t, "@daily", cfg.Cron.SearchReindex)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  port: 9090
database:
  driver: mysql
  host: db.internal
  name: blog
kafka:
  brokers: ["k1:9092", "k2:9092"]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	t.Setenv("QUILL_DATABASE_PASSWORD", "from-env")
	t.Setenv("QUILL_AUTH_ENABLED", "true")

	cfg, err := Load(viper.New(), dir)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, DriverMySQL, cfg.DB.Driver)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, "from-env", cfg.DB.Password)
	assert.True(t, cfg.Auth.Enabled)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("QUILL_DATABASE_DRIVER", "oracle")
	_, err := Load(viper.New(), t.TempDir())
	assert.Error(t, err)
}

func TestRepositoryConfigParses(t *testing.T) {
	cfg, err := Load(viper.New(), filepath.Join("..", "..", "..", "configs"))
	require.NoError(t, err)
	assert.Equal(t, "admin", cfg.Auth.AdminUsername)
	assert.Equal(t, []string{"127.0.0.1"}, cfg.Server.TrustedProxies)
}
