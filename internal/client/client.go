package client

import (
	"Quill/internal/api/dto"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
)

const defaultTimeout = 15 * time.Second

// ErrMalformedResponse 响应体与约定的结构不符
var ErrMalformedResponse = errors.New("响应格式不正确")

// APIError 服务端返回的非 2xx 响应
type APIError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// Client Quill HTTP 接口的类型化客户端，所有响应在返回前都经过结构校验
type Client struct {
	http *resty.Client
}

type Option func(*resty.Client)

func WithTimeout(d time.Duration) Option {
	return func(c *resty.Client) { c.SetTimeout(d) }
}

func WithToken(token string) Option {
	return func(c *resty.Client) {
		if token != "" {
			c.SetAuthToken(token)
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(defaultTimeout).
		SetHeader("Accept", "application/json").
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)
	for _, opt := range opts {
		opt(rc)
	}
	return &Client{http: rc}
}

// SetToken 登录后携带 Bearer token，传空串清除
func (c *Client) SetToken(token string) {
	c.http.SetAuthToken(token)
}

func (c *Client) ListPosts(ctx context.Context) ([]dto.PostDTO, error) {
	return doList(ctx, c.newRequest(ctx), http.MethodGet, "/api/posts", checkPost)
}

func (c *Client) GetPost(ctx context.Context, id string) (*dto.PostDTO, error) {
	return do(ctx, c.newRequest(ctx), http.MethodGet, "/api/posts/"+url.PathEscape(id), checkPost)
}

func (c *Client) SearchPosts(ctx context.Context, keyword string, limit int) ([]dto.PostDTO, error) {
	req := c.newRequest(ctx).SetQueryParam("q", keyword)
	if limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(limit))
	}
	return doList(ctx, req, http.MethodGet, "/api/posts/search", checkPost)
}

func (c *Client) CreatePost(ctx context.Context, req *dto.CreatePostDTO) (*dto.PostDTO, error) {
	return do(ctx, c.newRequest(ctx).SetBody(req), http.MethodPost, "/api/admin/posts", checkPost)
}

func (c *Client) UpdatePost(ctx context.Context, id string, req *dto.UpdatePostDTO) (*dto.PostDTO, error) {
	return do(ctx, c.newRequest(ctx).SetBody(req), http.MethodPut, "/api/admin/posts/"+url.PathEscape(id), checkPost)
}

func (c *Client) DeletePost(ctx context.Context, id string) (*dto.MsgDTO, error) {
	return do(ctx, c.newRequest(ctx), http.MethodDelete, "/api/admin/posts/"+url.PathEscape(id), checkMsg)
}

func (c *Client) ListCategories(ctx context.Context) ([]dto.CategoryDTO, error) {
	return doList(ctx, c.newRequest(ctx), http.MethodGet, "/api/categories", checkCategory)
}

func (c *Client) GetCategory(ctx context.Context, id string) (*dto.CategoryDTO, error) {
	return do(ctx, c.newRequest(ctx), http.MethodGet, "/api/categories/"+url.PathEscape(id), checkCategory)
}

func (c *Client) CreateCategory(ctx context.Context, req *dto.CategoryReq) (*dto.CategoryDTO, error) {
	return do(ctx, c.newRequest(ctx).SetBody(req), http.MethodPost, "/api/admin/categories", checkCategory)
}

func (c *Client) UpdateCategory(ctx context.Context, id string, req *dto.CategoryReq) (*dto.CategoryDTO, error) {
	return do(ctx, c.newRequest(ctx).SetBody(req), http.MethodPut, "/api/admin/categories/"+url.PathEscape(id), checkCategory)
}

func (c *Client) DeleteCategory(ctx context.Context, id string) (*dto.MsgDTO, error) {
	return do(ctx, c.newRequest(ctx), http.MethodDelete, "/api/admin/categories/"+url.PathEscape(id), checkMsg)
}

// Login 成功后自动携带 token
func (c *Client) Login(ctx context.Context, username, password string) (*dto.TokenDTO, error) {
	body := &dto.LoginDTO{Username: username, Password: password}
	token, err := do(ctx, c.newRequest(ctx).SetBody(body), http.MethodPost, "/api/auth/login", checkToken)
	if err != nil {
		return nil, err
	}
	c.SetToken(token.Token)
	return token, nil
}

func (c *Client) Logout(ctx context.Context) error {
	if _, err := do(ctx, c.newRequest(ctx), http.MethodPost, "/api/auth/logout", checkMsg); err != nil {
		return err
	}
	c.SetToken("")
	return nil
}

func (c *Client) UploadCover(ctx context.Context, filename string, reader io.Reader) (*dto.CoverDTO, error) {
	req := c.newRequest(ctx).SetFileReader("file", filename, reader)
	return do(ctx, req, http.MethodPost, "/api/admin/media/cover", checkCover)
}

func (c *Client) ListActivities(ctx context.Context, limit int) ([]dto.ActivityDTO, error) {
	req := c.newRequest(ctx)
	if limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(limit))
	}
	return doList(ctx, req, http.MethodGet, "/api/admin/activities", checkActivity)
}

func (c *Client) newRequest(ctx context.Context) *resty.Request {
	return c.http.R().SetContext(ctx)
}
