package minio

import (
	"Quill/internal/api/config"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/minio/minio-go/v7"
)

// ObjectStore 对象存储，返回可公开访问的 URL
type ObjectStore interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
}

type objectStoreImpl struct {
	client     *minio.Client
	bucket     string
	publicBase string
}

func NewObjectStore(client *minio.Client, cfg config.MinIOConfig) ObjectStore {
	return &objectStoreImpl{
		client:     client,
		bucket:     cfg.Bucket,
		publicBase: PublicBase(cfg),
	}
}

// UploadFile 上传文件到MinIO
func (s *objectStoreImpl) UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	uploadInfo, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: "public, max-age=31536000, immutable",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return s.publicBase + "/" + uploadInfo.Key, nil
}

// PublicBase 公开访问前缀，优先使用 public_endpoint
func PublicBase(cfg config.MinIOConfig) string {
	if cfg.PublicEndpoint != "" {
		return strings.TrimRight(cfg.PublicEndpoint, "/")
	}

	protocol := "http"
	if cfg.UseSSL {
		protocol = "https"
	}
	return fmt.Sprintf("%s://%s/%s", protocol, cfg.Endpoint, cfg.Bucket)
}

// CoverObjectName 生成封面对象名：covers/年/月/slug-随机串.扩展名
func CoverObjectName(originalName string, ext string, now time.Time) string {
	name := slug.Make(originalName)
	if name == "" {
		name = "cover"
	}
	if len(name) > 60 {
		name = strings.Trim(name[:60], "-")
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("covers/%s/%s-%s%s", now.Format("2006/01"), name, suffix, ext)
}
