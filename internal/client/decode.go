package client

import (
	"Quill/internal/api/dto"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
)

func do[T any](ctx context.Context, req *resty.Request, method, path string, check func(*T) error) (*T, error) {
	body, err := execute(ctx, req, method, path)
	if err != nil {
		return nil, err
	}

	var out T
	if err = strictUnmarshal(body, &out); err != nil {
		return nil, err
	}
	if err = check(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &out, nil
}

func doList[T any](ctx context.Context, req *resty.Request, method, path string, check func(*T) error) ([]T, error) {
	body, err := execute(ctx, req, method, path)
	if err != nil {
		return nil, err
	}

	var out []T
	if err = strictUnmarshal(body, &out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("%w: expected array", ErrMalformedResponse)
	}
	for i := range out {
		if err = check(&out[i]); err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", ErrMalformedResponse, i, err)
		}
	}
	return out, nil
}

func execute(ctx context.Context, req *resty.Request, method, path string) ([]byte, error) {
	resp, err := req.Execute(method, path)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}

	body := resp.Body()
	if resp.IsError() || resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return nil, toAPIError(resp.StatusCode(), body)
	}
	return body, nil
}

// toAPIError 错误体无法解析时使用状态码文案
func toAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}
	var errBody dto.ErrorDTO
	if json.Unmarshal(body, &errBody) == nil && errBody.Error != "" {
		apiErr.Message = errBody.Error
		apiErr.Fields = errBody.Fields
		return apiErr
	}
	apiErr.Message = http.StatusText(status)
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("HTTP %d", status)
	}
	return apiErr
}

// strictUnmarshal 响应体必须恰好是一个 JSON 值，且不含 DTO 之外的字段
func strictUnmarshal(body []byte, out any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return fmt.Errorf("%w: empty body", ErrMalformedResponse)
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: trailing data after JSON value", ErrMalformedResponse)
	}
	return nil
}

func checkPost(p *dto.PostDTO) error {
	switch {
	case p.ID == "":
		return fmt.Errorf("post without id")
	case strings.TrimSpace(p.Title) == "":
		return fmt.Errorf("post %s without title", p.ID)
	case p.CreatedAt.IsZero():
		return fmt.Errorf("post %s without createdAt", p.ID)
	}
	for _, pc := range p.Categories {
		if pc.Category.ID == "" {
			return fmt.Errorf("post %s has category without id", p.ID)
		}
	}
	return nil
}

func checkCategory(c *dto.CategoryDTO) error {
	if c.ID == "" {
		return fmt.Errorf("category without id")
	}
	if c.Name == "" {
		return fmt.Errorf("category %s without name", c.ID)
	}
	return nil
}

func checkMsg(m *dto.MsgDTO) error {
	if m.Msg == "" {
		return fmt.Errorf("missing msg")
	}
	return nil
}

func checkToken(t *dto.TokenDTO) error {
	if t.Token == "" {
		return fmt.Errorf("missing token")
	}
	return nil
}

func checkCover(c *dto.CoverDTO) error {
	if c.URL == "" {
		return fmt.Errorf("missing url")
	}
	return nil
}

func checkActivity(a *dto.ActivityDTO) error {
	if a.Action == "" || a.Entity == "" {
		return fmt.Errorf("activity without action or entity")
	}
	return nil
}
