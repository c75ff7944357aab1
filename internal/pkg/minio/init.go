package minio

import (
	"Quill/internal/api/config"
	"context"
	"fmt"
	log "log/slog"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Client 全局 MinIO 客户端实例，未配置时为 nil
var Client *minio.Client

// Init 初始化 MinIO 客户端，并确保封面桶存在且可匿名读取
func Init(cfg config.MinIOConfig) error {
	if cfg.Endpoint == "" {
		log.Info("MinIO disabled, cover upload unavailable")
		return nil
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize minio client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return fmt.Errorf("failed to connect to minio server: %w", err)
	}
	if !exists {
		if err = client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		log.Info("MinIO bucket created", "bucket", cfg.Bucket)
	}

	if err = client.SetBucketPolicy(ctx, cfg.Bucket, publicReadPolicy(cfg.Bucket)); err != nil {
		return fmt.Errorf("failed to set bucket policy: %w", err)
	}

	Client = client
	return nil
}

// publicReadPolicy 封面需要被前台直接引用
func publicReadPolicy(bucket string) string {
	return fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["%s"],"Resource":["arn:aws:s3:::%s/*"]}]}`,
		"s3:GetObject", bucket)
}
