package es

import (
	"Quill/internal/api/config"
	"Quill/internal/pkg/logger"
	"context"
	"fmt"
	log "log/slog"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
)

// Client 未配置地址时为 nil，搜索回退到数据库
var Client *elasticsearch.TypedClient

var PostIndex string

const (
	NotFoundCode = 404
	ConflictCode = 409
)

const initTimeout = 10 * time.Second

// postMapping 帖子索引结构，与 PostES 字段对应
const postMapping = `{
  "mappings": {
    "properties": {
      "id":             {"type": "keyword"},
      "title":          {"type": "text"},
      "plain_content":  {"type": "text"},
      "category_ids":   {"type": "keyword"},
      "category_names": {"type": "keyword"},
      "created_at":     {"type": "date"},
      "updated_at":     {"type": "date"}
    }
  }
}`

// InitClient 连接 Elasticsearch 并确保帖子索引存在
func InitClient(cfg config.ElasticConfig, slow time.Duration) error {
	PostIndex = cfg.Indices.PostIndex
	if cfg.Address == "" {
		log.Info("Elasticsearch disabled, search falls back to database")
		return nil
	}

	client, err := elasticsearch.NewTypedClient(elasticsearch.Config{
		Addresses: []string{cfg.Address},
		Username:  cfg.Username,
		Password:  cfg.Password,
		Transport: &logger.ESTransport{Slow: slow},
	})
	if err != nil {
		return fmt.Errorf("failed to create elasticsearch client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
	defer cancel()

	info, err := client.Info().Do(ctx)
	if err != nil {
		return fmt.Errorf("cannot connect to elasticsearch: %w", err)
	}
	if err = EnsureIndex(ctx, client, PostIndex); err != nil {
		return err
	}

	Client = client
	log.Info("Connected to Elasticsearch", "version", info.Version.Int, "index", PostIndex)
	return nil
}

// EnsureIndex 索引不存在时按 postMapping 创建
func EnsureIndex(ctx context.Context, client *elasticsearch.TypedClient, index string) error {
	exists, err := client.Indices.Exists(index).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check index %s: %w", index, err)
	}
	if exists {
		return nil
	}
	if _, err = client.Indices.Create(index).Raw(strings.NewReader(postMapping)).Do(ctx); err != nil {
		return fmt.Errorf("failed to create index %s: %w", index, err)
	}
	log.Info("Elasticsearch index created", "index", index)
	return nil
}
