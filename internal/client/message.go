package client

import (
	"context"
	"errors"
	"net/http"
)

const (
	msgNetwork   = "网络异常，请稍后重试"
	msgMalformed = "服务器返回了无法识别的数据"
	msgTimeout   = "请求超时，请稍后重试"
)

// UserMessage 把任意错误转换为可直接展示给用户的一句话
func UserMessage(err error) string {
	var apiErr *APIError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &apiErr):
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return http.StatusText(apiErr.Status)
	case errors.Is(err, ErrMalformedResponse):
		return msgMalformed
	case errors.Is(err, context.DeadlineExceeded):
		return msgTimeout
	default:
		return msgNetwork
	}
}

// IsNotFound 资源不存在
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}
