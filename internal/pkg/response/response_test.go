package response

import (
	"Quill/internal/pkg/util"
	"Quill/internal/service"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	Error(c, err)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"not found", service.ErrPostNotFound, http.StatusNotFound, "帖子不存在"},
		{"wrapped not found", pkgerrors.Wrap(service.ErrCategoryNotFound, "ctx"), http.StatusNotFound, "分类不存在"},
		{"bad param", service.ErrParamInvalid, http.StatusBadRequest, "参数错误"},
		{"unknown", errors.New("dial tcp: connection refused"), http.StatusInternalServerError, "系统异常，请稍后重试"},
		{"json", json.Unmarshal([]byte("{"), &struct{}{}), http.StatusBadRequest, "Json错误"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := run(tt.err)
			assert.Equal(t, tt.status, w.Code)
			body := decode(t, w)
			assert.Equal(t, tt.msg, body["error"])
			assert.NotContains(t, w.Body.String(), "connection refused")
		})
	}
}

func TestFieldErrors(t *testing.T) {
	w := run(util.FieldErrors{"title": "至少需要 5 个字符"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	fields, ok := body["fields"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "至少需要 5 个字符", fields["title"])
}

func TestSuccessWritesBareBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Success(c, []string{"a"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `["a"]`, strings.TrimSpace(w.Body.String()))
}
