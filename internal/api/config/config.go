package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg，环境变量 QUILL_* 优先
func LoadConfig() error {
	cfg, err := Load(viper.New(), "./configs")
	if err != nil {
		return err
	}
	Cfg = cfg
	return nil
}

// Load 使用给定的 viper 实例读取配置，配置文件缺失时只使用默认值与环境变量
func Load(v *viper.Viper, paths ...string) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("QUILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.DB.Driver != DriverMySQL && cfg.DB.Driver != DriverSQLite {
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.DB.Driver)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", 5)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.logstash.index", "logstash-quill")
	v.SetDefault("log.slow_threshold", 200)

	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.dsn", "file:quill.db?_pragma=foreign_keys(1)")
	v.SetDefault("database.max_idle", 10)
	v.SetDefault("database.max_open", 50)
	v.SetDefault("database.max_lifetime", 60)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("database.slow_threshold", 200)

	v.SetDefault("auth.enabled", false)
	v.SetDefault("auth.admin_username", "admin")
	v.SetDefault("auth.token_ttl", 24)

	v.SetDefault("redis.pool_size", 10)

	v.SetDefault("mongo.database", "quill")
	v.SetDefault("mongo.activity_collection", "admin_activities")

	v.SetDefault("elastic.indices.post_index", "quill_posts")

	v.SetDefault("kafka.post_topic", "quill.post.events")
	v.SetDefault("kafka.group_id", "quill-search-indexer")
	v.SetDefault("kafka.consumer.session_timeout", 10)
	v.SetDefault("kafka.consumer.heartbeat_interval", 3)
	v.SetDefault("kafka.consumer.rebalance_timeout", 60)

	v.SetDefault("minio.bucket", "quill-covers")
	v.SetDefault("minio.max_cover_width", 1600)
	v.SetDefault("minio.max_upload_mb", 10)
	v.SetDefault("minio.max_pixels", 40_000_000)

	v.SetDefault("cron.orphan_clean", "0 0 * * * *")
	v.SetDefault("cron.search_reindex", "@daily")

	// 无默认值的键也需登记，AutomaticEnv 才能在 Unmarshal 时生效
	for key, zero := range map[string]any{
		"log.logstash.address":     "",
		"log.logstash.token":       "",
		"database.host":            "",
		"database.port":            3306,
		"database.user":            "",
		"database.password":        "",
		"database.name":            "",
		"auth.admin_password_hash": "",
		"auth.jwt_secret":          "",
		"redis.addr":               "",
		"redis.password":           "",
		"redis.db":                 0,
		"mongo.url":                "",
		"elastic.address":          "",
		"elastic.username":         "",
		"elastic.password":         "",
		"kafka.brokers":            []string{},
		"minio.endpoint":           "",
		"minio.public_endpoint":    "",
		"minio.access_key":         "",
		"minio.secret_key":         "",
		"minio.use_ssl":            false,
	} {
		v.SetDefault(key, zero)
	}
}
