package service

import (
	"Quill/internal/api/config"
	"Quill/internal/model"
	"Quill/internal/pkg/database"
	"Quill/internal/pkg/es"
	"Quill/internal/pkg/kafka"
	"Quill/internal/pkg/mongo"
	"Quill/internal/repository"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewGormDB(&config.DBConfig{
		Driver:      config.DriverSQLite,
		DSN:         "file::memory:?_pragma=foreign_keys(1)",
		AutoMigrate: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})
	return db
}

func seedCategory(t *testing.T, db *gorm.DB, id, name string) {
	t.Helper()
	require.NoError(t, repository.NewCategoryRepository(db).CreateCategory(context.Background(), &model.Category{ID: id, Name: name}))
}

type fakePublisher struct {
	mu     sync.Mutex
	events []*kafka.PostEvent
	err    error
}

func (f *fakePublisher) PublishPostEvent(_ context.Context, event *kafka.PostEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return f.err
}

func (f *fakePublisher) Close() error { return nil }

func (f *fakePublisher) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Type+":"+e.PostID)
	}
	return out
}

type fakeActivityRepo struct {
	mu   sync.Mutex
	list []*mongo.ActivityModel
}

func (f *fakeActivityRepo) CreateActivity(_ context.Context, a *mongo.ActivityModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.list = append([]*mongo.ActivityModel{a}, f.list...)
	return nil
}

func (f *fakeActivityRepo) ListActivities(_ context.Context, limit int64) ([]*mongo.ActivityModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if int64(len(f.list)) > limit {
		return f.list[:limit], nil
	}
	return f.list, nil
}

type fakeESRepo struct {
	ids      []string
	err      error
	indexed  []string
	versions []int64
}

func (f *fakeESRepo) SearchPostIDs(context.Context, string, int) ([]string, error) {
	return f.ids, f.err
}

func (f *fakeESRepo) IndexPost(_ context.Context, post *es.PostES, version int64) error {
	f.indexed = append(f.indexed, post.ID)
	f.versions = append(f.versions, version)
	return nil
}

func (f *fakeESRepo) DeletePost(context.Context, string) error { return nil }

type fakeBlacklist struct {
	revoked map[string]time.Duration
}

func (f *fakeBlacklist) Revoke(_ context.Context, signature string, ttl time.Duration) error {
	f.revoked[signature] = ttl
	return nil
}

func (f *fakeBlacklist) IsRevoked(_ context.Context, signature string) (bool, error) {
	_, ok := f.revoked[signature]
	return ok, nil
}

type fakeObjectStore struct {
	name        string
	contentType string
	data        []byte
	err         error
}

func (f *fakeObjectStore) UploadFile(_ context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	if int64(len(data)) != size {
		return "", errors.New("size mismatch")
	}
	f.name, f.contentType, f.data = objectName, contentType, data
	return "https://cdn.test/" + objectName, nil
}
