package redis

import (
	"Quill/internal/api/config"
	"Quill/internal/pkg/logger"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/redis/go-redis/v9/maintnotifications"
)

// Rdb 未配置地址时为 nil
var Rdb *redis.Client

const dialTimeout = 3 * time.Second

// InitRedis 初始化 Redis 客户端连接
func InitRedis(cfg config.RedisConfig, slow time.Duration) error {
	if cfg.Addr == "" {
		log.Info("Redis disabled, logout only discards tokens client-side")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		PoolSize:    cfg.PoolSize,
		DialTimeout: dialTimeout,

		MaintNotificationsConfig: &maintnotifications.Config{
			Mode: maintnotifications.ModeDisabled,
		},
	})
	rdb.AddHook(logger.NewRedisHook(slow))

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return fmt.Errorf("redis ping failed: %w", err)
	}

	Rdb = rdb
	log.Info("Redis connected", "addr", cfg.Addr, "db", cfg.DB)
	return nil
}

// Close 关闭全局客户端
func Close() error {
	if Rdb == nil {
		return nil
	}
	return Rdb.Close()
}
