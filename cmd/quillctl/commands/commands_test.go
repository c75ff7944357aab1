package commands

import (
	"Quill/internal/api/config"
	"Quill/internal/pkg/database"
	"Quill/internal/wire"
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{DB: config.DBConfig{Driver: config.DriverSQLite, DSN: "file::memory:?_pragma=foreign_keys(1)", AutoMigrate: true}}
	db, err := database.NewGormDB(&cfg.DB)
	require.NoError(t, err)
	app, err := wire.BuildApplication(db, nil, cfg)
	require.NoError(t, err)

	srv := httptest.NewServer(app.Router)
	t.Cleanup(srv.Close)
	return srv.URL
}

func run(t *testing.T, server, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd(strings.NewReader(stdin), &out)
	cmd.SetArgs(append([]string{"--server", server}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPostLifecycle(t *testing.T) {
	server := newServer(t)

	out, err := run(t, server, "", "categories", "create", "Go")
	require.NoError(t, err)
	categoryID := strings.TrimSpace(strings.Split(out, "\n")[0])
	require.NotEmpty(t, categoryID)

	out, err = run(t, server, "", "posts", "create", "Hello World", strings.Repeat("A", 25),
		"--cover", "https://x.com/a.png", "-c", categoryID)
	require.NoError(t, err)
	postID := strings.TrimSpace(strings.Split(out, "\n")[0])
	assert.Contains(t, out, "[ok] 已发布「Hello World」")

	out, err = run(t, server, "", "posts", "list", "-q", "hello")
	require.NoError(t, err)
	assert.Contains(t, out, postID)
	assert.Contains(t, out, "共 1 篇")

	out, err = run(t, server, "", "posts", "show", postID)
	require.NoError(t, err)
	assert.Contains(t, out, "分类: Go")

	out, err = run(t, server, "", "posts", "edit", postID, "--title", "Hello Again", "--clear-categories")
	require.NoError(t, err)
	assert.Contains(t, out, "「Hello Again」已更新")

	out, err = run(t, server, "n\n", "posts", "delete", postID)
	require.NoError(t, err)
	assert.Contains(t, out, "已取消")

	out, err = run(t, server, "y\n", "posts", "delete", postID)
	require.NoError(t, err)
	assert.Contains(t, out, "已删除「Hello Again」")

	_, err = run(t, server, "", "posts", "show", postID)
	require.Error(t, err)
	assert.Equal(t, "帖子 "+postID+" 不存在或已被删除", err.Error())
}

func TestShowMissingPost(t *testing.T) {
	server := newServer(t)

	_, err := run(t, server, "", "posts", "show", "no-such-post")
	require.Error(t, err)
	assert.Equal(t, "帖子 no-such-post 不存在或已被删除", err.Error())
}

func TestCreatePostShowsFieldErrors(t *testing.T) {
	server := newServer(t)

	out, err := run(t, server, "", "posts", "create", "Hey", "short")
	require.Error(t, err)
	assert.Contains(t, out, "title: 至少需要 5 个字符")
	assert.Contains(t, out, "categoryIds:")
}

func TestCategoryCommands(t *testing.T) {
	server := newServer(t)

	out, err := run(t, server, "", "categories", "create", "Go")
	require.NoError(t, err)
	id := strings.TrimSpace(strings.Split(out, "\n")[0])

	_, err = run(t, server, "", "categories", "rename", id, "Golang")
	require.NoError(t, err)

	out, err = run(t, server, "", "categories", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Golang")

	out, err = run(t, server, "", "--yes", "categories", "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "已删除分类「Golang」")
}

func TestHashPassword(t *testing.T) {
	out, err := run(t, "http://unused", "", "hash-password", "s3cret")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "$2"))
}
