package view

import (
	"Quill/internal/api/config"
	"Quill/internal/api/dto"
	"Quill/internal/client"
	"Quill/internal/pkg/database"
	"Quill/internal/wire"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) *client.Client {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{DB: config.DBConfig{Driver: config.DriverSQLite, DSN: "file::memory:?_pragma=foreign_keys(1)", AutoMigrate: true}}
	db, err := database.NewGormDB(&cfg.DB)
	require.NoError(t, err)
	app, err := wire.BuildApplication(db, nil, cfg)
	require.NoError(t, err)

	srv := httptest.NewServer(app.Router)
	t.Cleanup(srv.Close)
	return client.New(srv.URL)
}

var (
	yes = ConfirmFunc(func(string) bool { return true })
	no  = ConfirmFunc(func(string) bool { return false })
)

func seed(t *testing.T, c *client.Client, n int) (goID, rustID string) {
	t.Helper()
	ctx := context.Background()
	goCat, err := c.CreateCategory(ctx, &dto.CategoryReq{Name: "Go"})
	require.NoError(t, err)
	rustCat, err := c.CreateCategory(ctx, &dto.CategoryReq{Name: "Rust"})
	require.NoError(t, err)

	for i := 0; i < n; i++ {
		category := goCat.ID
		if i%2 == 1 {
			category = rustCat.ID
		}
		_, err = c.CreatePost(ctx, &dto.CreatePostDTO{
			Title:         fmt.Sprintf("Post number %02d", i),
			Content:       strings.Repeat("content ", 5),
			CoverImageURL: "https://x.com/a.png",
			CategoryIDs:   []string{category},
		})
		require.NoError(t, err)
	}
	return goCat.ID, rustCat.ID
}

func TestPostListView(t *testing.T) {
	c := newClient(t)
	goID, _ := seed(t, c, 12)
	ctx := context.Background()

	v := NewPostListView(c, NewNotices(time.Minute))
	assert.Equal(t, StatusIdle, v.State().Status())

	state := v.Load(ctx)
	require.Equal(t, StatusLoaded, state.Status())

	page := v.Visible()
	assert.Equal(t, 12, page.Total)
	assert.Equal(t, 2, page.PageCount)
	assert.Len(t, page.Items, 10)

	v.SetPage(2)
	assert.Len(t, v.Visible().Items, 2)
	v.SetPage(9)
	assert.Equal(t, 2, v.Visible().Number)

	v.SetQuery("NUMBER 1")
	page = v.Visible()
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 2, page.Total)

	v.SetQuery("")
	v.SetCategory(goID)
	assert.Equal(t, 6, v.Visible().Total)
}

func TestPostListDelete(t *testing.T) {
	c := newClient(t)
	seed(t, c, 3)
	ctx := context.Background()
	notices := NewNotices(time.Minute)

	v := NewPostListView(c, notices)
	v.Load(ctx)
	target := v.Visible().Items[0]

	deleted, err := v.Delete(ctx, target, no)
	require.NoError(t, err)
	assert.False(t, deleted)
	posts, err := c.ListPosts(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, 3)

	deleted, err = v.Delete(ctx, target, yes)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, 2, v.Visible().Total)
	require.Len(t, notices.Active(), 1)
	assert.Equal(t, NoticeInfo, notices.Active()[0].Kind)
	assert.Contains(t, notices.Active()[0].Message, target.Title)

	// 再删一次失败，列表不变
	deleted, err = v.Delete(ctx, target, yes)
	require.Error(t, err)
	assert.False(t, deleted)
	assert.Equal(t, 2, v.Visible().Total)
	assert.Equal(t, NoticeError, notices.Active()[1].Kind)
}

func TestCategoryListView(t *testing.T) {
	c := newClient(t)
	seed(t, c, 0)
	ctx := context.Background()

	v := NewCategoryListView(c, NewNotices(time.Minute))
	v.Load(ctx)
	v.SetQuery("ru")
	page := v.Visible()
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Rust", page.Items[0].Name)

	deleted, err := v.Delete(ctx, page.Items[0], yes)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Empty(t, v.Visible().Items)

	v.Reset()
	assert.Equal(t, StatusIdle, v.State().Status())
}

func TestLoadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"系统异常，请稍后重试"}`))
	}))
	defer srv.Close()

	v := NewPostListView(client.New(srv.URL), NewNotices(time.Minute))
	state := v.Load(context.Background())
	assert.Equal(t, StatusFailed, state.Status())
	assert.Equal(t, "系统异常，请稍后重试", state.Message())
	_, ok := state.Data()
	assert.False(t, ok)
	assert.Empty(t, v.Visible().Items)
}

type slowPosts struct {
	release chan struct{}
	started chan struct{}
}

func (s *slowPosts) ListPosts(context.Context) ([]dto.PostDTO, error) {
	close(s.started)
	<-s.release
	return []dto.PostDTO{{ID: "late"}}, nil
}

func (s *slowPosts) DeletePost(context.Context, string) (*dto.MsgDTO, error) {
	return nil, errors.New("unused")
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	api := &slowPosts{release: make(chan struct{}), started: make(chan struct{})}
	v := NewPostListView(api, NewNotices(time.Minute))

	done := make(chan struct{})
	go func() {
		v.Load(context.Background())
		close(done)
	}()

	<-api.started
	assert.Equal(t, StatusLoading, v.State().Status())
	v.Reset()
	close(api.release)
	<-done

	assert.Equal(t, StatusIdle, v.State().Status())
}

func TestPostDetailView(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()
	category, err := c.CreateCategory(ctx, &dto.CategoryReq{Name: "Go"})
	require.NoError(t, err)
	post, err := c.CreatePost(ctx, &dto.CreatePostDTO{
		Title:         "Hello World",
		Content:       `<b>bold</b> text<script>alert(1)</script> and more`,
		CoverImageURL: "https://x.com/a.png",
		CategoryIDs:   []string{category.ID},
	})
	require.NoError(t, err)

	v := NewPostDetailView(c)
	assert.Empty(t, v.HTML())

	state := v.Load(ctx, post.ID)
	require.Equal(t, StatusLoaded, state.Status())
	assert.Contains(t, v.HTML(), "<b>bold</b>")
	assert.NotContains(t, v.HTML(), "script")
	assert.Equal(t, []dto.CategoryRefDTO{{ID: category.ID, Name: "Go"}}, v.Categories())

	state = v.Load(ctx, "missing")
	assert.Equal(t, StatusFailed, state.Status())
	assert.Equal(t, "帖子不存在", state.Message())
}

type countingCreator struct {
	calls int
}

func (c *countingCreator) CreatePost(_ context.Context, req *dto.CreatePostDTO) (*dto.PostDTO, error) {
	c.calls++
	return &dto.PostDTO{ID: "p1", Title: req.Title}, nil
}

func TestPostCreateFormBlocksInvalidInput(t *testing.T) {
	api := &countingCreator{}
	notices := NewNotices(time.Minute)
	f := NewPostCreateForm(api, notices)
	f.Title = "Hey"
	f.Content = "short"
	f.CoverImageURL = "not a url"

	_, err := f.Submit(context.Background())
	assert.ErrorIs(t, err, ErrInvalidForm)
	assert.Zero(t, api.calls)
	errs := f.FieldErrors()
	assert.Len(t, errs, 4)
	assert.Equal(t, "至少选择 1 项", errs["categoryIds"])

	f.Title = "Hello World"
	f.Content = strings.Repeat("A", 20)
	f.CoverImageURL = "https://x.com/a.png"
	f.ToggleCategory("c1")
	require.True(t, f.Validate())

	post, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "p1", post.ID)
	assert.Equal(t, 1, api.calls)
	assert.Empty(t, f.FieldErrors())
	assert.Len(t, notices.Active(), 1)
}

func TestPostEditForm(t *testing.T) {
	c := newClient(t)
	seed(t, c, 1)
	ctx := context.Background()
	posts, err := c.ListPosts(ctx)
	require.NoError(t, err)

	f := NewPostEditForm(c, NewNotices(time.Minute))
	require.Equal(t, StatusLoaded, f.Load(ctx, posts[0].ID).Status())
	assert.Equal(t, posts[0].Title, f.Title)
	require.Len(t, f.CategoryIDs, 1)

	f.Title = "no"
	_, err = f.Submit(ctx)
	assert.ErrorIs(t, err, ErrInvalidForm)
	assert.Contains(t, f.FieldErrors(), "title")

	f.Title = "Renamed post"
	f.ToggleCategory(f.CategoryIDs[0])
	updated, err := f.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Renamed post", updated.Title)
	assert.Empty(t, updated.Categories)
	assert.Empty(t, f.CategoryIDs)

	// 提交成功后状态里的数据与表单一致
	loaded, ok := f.State().Data()
	require.True(t, ok)
	assert.Equal(t, "Renamed post", loaded.Title)
	assert.Empty(t, loaded.Categories)
}

func TestCategoryForm(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()
	notices := NewNotices(time.Minute)

	f := NewCategoryForm(c, notices)
	f.Name = "   "
	_, err := f.Submit(ctx)
	assert.ErrorIs(t, err, ErrInvalidForm)

	f.Name = "Databases"
	created, err := f.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, created.ID, f.ID)

	edit := NewCategoryForm(c, notices)
	require.Equal(t, StatusLoaded, edit.Load(ctx, created.ID).Status())
	edit.Name = "Storage"
	updated, err := edit.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Storage", updated.Name)

	edit.ID = "missing"
	_, err = edit.Submit(ctx)
	require.Error(t, err)
	assert.Equal(t, NoticeError, notices.Active()[len(notices.Active())-1].Kind)
}

func TestViewsWithoutNotices(t *testing.T) {
	c := newClient(t)
	seed(t, c, 2)
	ctx := context.Background()

	v := NewPostListView(c, nil)
	v.Load(ctx)
	target := v.Visible().Items[0]

	deleted, err := v.Delete(ctx, target, yes)
	require.NoError(t, err)
	assert.True(t, deleted)
	_, err = v.Delete(ctx, target, yes)
	require.Error(t, err)

	f := NewCategoryForm(c, nil)
	f.Name = "Databases"
	_, err = f.Submit(ctx)
	require.NoError(t, err)
	f.ID = "missing"
	_, err = f.Submit(ctx)
	require.Error(t, err)

	var n *Notices
	assert.Zero(t, n.Info("dropped"))
	assert.Empty(t, n.Active())
}

func TestNoticesAutoDismiss(t *testing.T) {
	n := NewNotices(20 * time.Millisecond)
	n.Info("saved")
	n.Error("failed")
	assert.Len(t, n.Active(), 2)

	assert.Eventually(t, func() bool { return len(n.Active()) == 0 }, time.Second, 5*time.Millisecond)
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	tests := []struct {
		page, size int
		want       []int
		number     int
	}{
		{1, 2, []int{1, 2}, 1},
		{3, 2, []int{5}, 3},
		{0, 2, []int{1, 2}, 1},
		{7, 2, []int{5}, 3},
	}
	for _, tt := range tests {
		got := paginate(items, tt.page, tt.size)
		assert.Equal(t, tt.want, got.Items)
		assert.Equal(t, tt.number, got.Number)
		assert.Equal(t, 3, got.PageCount)
	}

	empty := paginate([]int{}, 1, 10)
	assert.Empty(t, empty.Items)
	assert.Equal(t, 1, empty.PageCount)
}
