package repository

import (
	"Quill/internal/api/config"
	"Quill/internal/model"
	"Quill/internal/pkg/database"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
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

func seedCategories(t *testing.T, repo CategoryRepo, names ...string) []*model.Category {
	t.Helper()
	out := make([]*model.Category, 0, len(names))
	for _, n := range names {
		c := &model.Category{ID: n, Name: n}
		require.NoError(t, repo.CreateCategory(context.Background(), c))
		out = append(out, c)
	}
	return out
}

func ptr[T any](v T) *T { return &v }

func TestPostRepoCreateAndGet(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	posts := NewPostRepository(db)
	seedCategories(t, NewCategoryRepository(db), "c1", "c2")

	post := &model.Post{Title: "Hello World", Content: "AAAAAAAAAAAAAAAAAAAAAAAAA", CoverImageURL: "https://x.com/a.png"}
	require.NoError(t, posts.CreatePost(ctx, post, []string{"c1", "c1", "c2"}))
	require.NotEmpty(t, post.ID)

	got, err := posts.GetPost(ctx, post.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Hello World", got.Title)
	assert.Equal(t, "https://x.com/a.png", got.CoverImageURL)
	assert.ElementsMatch(t, []string{"c1", "c2"}, categoryIDs(got))
	for _, pc := range got.Categories {
		assert.Equal(t, pc.CategoryID, pc.Category.Name)
	}

	missing, err := posts.GetPost(ctx, "nope")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPostRepoListNewestFirst(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	posts := NewPostRepository(db)

	base := time.Now().Add(-time.Hour)
	for i, title := range []string{"first", "second", "third"} {
		p := &model.Post{Title: title, Content: "content", CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, posts.CreatePost(ctx, p, nil))
	}

	list, err := posts.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "third", list[0].Title)
	assert.Equal(t, "first", list[2].Title)
}

func TestPostRepoUpdate(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	posts := NewPostRepository(db)
	seedCategories(t, NewCategoryRepository(db), "c1", "c2")

	post := &model.Post{Title: "Original", Content: "original content"}
	require.NoError(t, posts.CreatePost(ctx, post, []string{"c1"}))

	t.Run("partial keeps other fields", func(t *testing.T) {
		got, err := posts.UpdatePost(ctx, post.ID, &PostPatch{Title: ptr("Renamed")})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Title)
		assert.Equal(t, "original content", got.Content)
		assert.Equal(t, []string{"c1"}, categoryIDs(got))
	})

	t.Run("replaces categories", func(t *testing.T) {
		got, err := posts.UpdatePost(ctx, post.ID, &PostPatch{CategoryIDs: &[]string{"c2"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"c2"}, categoryIDs(got))
	})

	t.Run("empty category set clears links", func(t *testing.T) {
		got, err := posts.UpdatePost(ctx, post.ID, &PostPatch{CategoryIDs: &[]string{}})
		require.NoError(t, err)
		assert.Empty(t, categoryIDs(got))
	})

	t.Run("missing post", func(t *testing.T) {
		_, err := posts.UpdatePost(ctx, "missing", &PostPatch{Title: ptr("x")})
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestPostRepoDelete(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	posts := NewPostRepository(db)
	seedCategories(t, NewCategoryRepository(db), "c1")

	post := &model.Post{Title: "Doomed", Content: "content"}
	require.NoError(t, posts.CreatePost(ctx, post, []string{"c1"}))

	deleted, err := posts.DeletePost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Doomed", deleted.Title)

	var links int64
	require.NoError(t, db.Model(&model.PostCategory{}).Count(&links).Error)
	assert.Zero(t, links)

	list, err := posts.ListPosts(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = posts.DeletePost(ctx, post.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPostRepoSearchEscapesWildcards(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	posts := NewPostRepository(db)

	require.NoError(t, posts.CreatePost(ctx, &model.Post{Title: "Hello World", Content: "greeting"}, nil))
	require.NoError(t, posts.CreatePost(ctx, &model.Post{Title: "Goodbye", Content: "100% done"}, nil))

	got, err := posts.SearchPosts(ctx, "HELLO", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Hello World", got[0].Title)

	got, err = posts.SearchPosts(ctx, "%", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Goodbye", got[0].Title)
}

func TestCategoryRepoDeleteDetachesPosts(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	posts := NewPostRepository(db)
	categories := NewCategoryRepository(db)
	seedCategories(t, categories, "c1", "c2")

	post := &model.Post{Title: "Tagged", Content: "content"}
	require.NoError(t, posts.CreatePost(ctx, post, []string{"c1", "c2"}))

	linked, err := categories.ListPostIDsByCategory(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, []string{post.ID}, linked)

	deleted, affected, err := categories.DeleteCategory(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", deleted.Name)
	assert.Equal(t, []string{post.ID}, affected)

	got, err := posts.GetPost(ctx, post.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"c2"}, categoryIDs(got))

	_, _, err = categories.DeleteCategory(ctx, "c1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCategoryRepoUpdateAndList(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	categories := NewCategoryRepository(db)
	seedCategories(t, categories, "go")

	updated, err := categories.UpdateCategory(ctx, "go", "Golang")
	require.NoError(t, err)
	assert.Equal(t, "Golang", updated.Name)

	_, err = categories.UpdateCategory(ctx, "missing", "x")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	list, err := categories.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Golang", list[0].Name)

	found, err := categories.GetCategoriesByIds(ctx, []string{"go", "missing"})
	require.NoError(t, err)
	assert.Len(t, found, 1)

	none, err := categories.GetCategory(ctx, "missing")
	assert.NoError(t, err)
	assert.Nil(t, none)
}

func TestDeleteOrphanLinks(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	posts := NewPostRepository(db)
	seedCategories(t, NewCategoryRepository(db), "c1")

	post := &model.Post{Title: "Kept", Content: "content"}
	require.NoError(t, posts.CreatePost(ctx, post, []string{"c1"}))

	// 绕过外键约束制造孤儿行
	require.NoError(t, db.Exec("PRAGMA foreign_keys = OFF").Error)
	require.NoError(t, db.Exec("INSERT INTO post_categories (post_id, category_id) VALUES (?, ?)", "ghost", "c1").Error)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)

	n, err := posts.DeleteOrphanLinks(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err := posts.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, categoryIDs(got))
}

func categoryIDs(p *model.Post) []string {
	ids := make([]string, 0, len(p.Categories))
	for _, pc := range p.Categories {
		ids = append(ids, pc.CategoryID)
	}
	return ids
}
