package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	InternalServerError = 500
	ServiceUnavailable  = 503
)

var (
	ErrParamInvalid            = errors.New("参数错误")
	ErrPostNotFound            = errors.New("帖子不存在")
	ErrCategoryNotFound        = errors.New("分类不存在")
	ErrCategoryInvalid         = errors.New("包含不存在的分类")
	ErrPasswordIncorrect       = errors.New("用户名或密码错误")
	ErrMissingLoginCredentials = errors.New("缺少登录凭据")
	ErrTokenInvalid            = errors.New("Token 无效或已过期")
	ErrFileNotSupported        = errors.New("不支持的文件类型")
	ErrFileTooLarge            = errors.New("文件过大")
	ErrFeatureDisabled         = errors.New("功能未启用")
	UnauthorizedError          = errors.New("权限不足")
	UnExpectedError            = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:            BadRequest,
	ErrPostNotFound:            NotFound,
	ErrCategoryNotFound:        NotFound,
	ErrCategoryInvalid:         BadRequest,
	ErrPasswordIncorrect:       Unauthorized,
	ErrMissingLoginCredentials: Unauthorized,
	ErrTokenInvalid:            Unauthorized,
	ErrFileNotSupported:        BadRequest,
	ErrFileTooLarge:            BadRequest,
	ErrFeatureDisabled:         ServiceUnavailable,
	UnauthorizedError:          Forbidden,
	UnExpectedError:            InternalServerError,
}

// StatusOf 返回错误对应的 HTTP 状态码，未登记的错误一律视为 500
func StatusOf(err error) (int, error) {
	for target, code := range ErrorMap {
		if errors.Is(err, target) {
			return code, target
		}
	}
	return InternalServerError, UnExpectedError
}
