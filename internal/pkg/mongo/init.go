package mongo

import (
	"Quill/internal/api/config"
	"Quill/internal/pkg/logger"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	appName        = "quill"
	connectTimeout = 10 * time.Second
)

// InitMongo 建立连接并返回 Database 引用，未配置 URL 时返回 nil
func InitMongo(cfg config.MongoConfig, slow time.Duration) (*mongo.Database, error) {
	if cfg.URL == "" {
		log.Info("MongoDB disabled, admin activities are not recorded")
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.URL).
		SetAppName(appName).
		SetServerSelectionTimeout(connectTimeout).
		SetMonitor(logger.NewMongoMonitor(slow)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect mongo: %w", err)
	}

	if err = client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping failed: %w", err)
	}

	log.Info("MongoDB connected", "db", cfg.Database)
	return client.Database(cfg.Database), nil
}

// Close 断开 db 所属的客户端，db 为 nil 时什么也不做
func Close(ctx context.Context, db *mongo.Database) error {
	if db == nil {
		return nil
	}
	return db.Client().Disconnect(ctx)
}
