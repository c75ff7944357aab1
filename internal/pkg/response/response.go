package response

import (
	"Quill/internal/api/dto"
	"Quill/internal/pkg/util"
	"Quill/internal/service"
	stdjson "encoding/json"
	"errors"
	"io"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

const (
	Ok                  = http.StatusOK
	BadRequest          = http.StatusBadRequest
	Unauthorized        = http.StatusUnauthorized
	Forbidden           = http.StatusForbidden
	NotFound            = http.StatusNotFound
	InternalServerError = http.StatusInternalServerError
)

// Success 成功返回，直接输出数据本身
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Fail 失败返回封装
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, dto.ErrorDTO{Error: message})
}

// Error 处理错误，500 只返回固定文案，具体原因只写日志
func Error(c *gin.Context, err error) {
	var fe util.FieldErrors
	if errors.As(err, &fe) {
		c.JSON(BadRequest, dto.ErrorDTO{Error: service.ErrParamInvalid.Error(), Fields: fe})
		return
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		Fail(c, BadRequest, service.ErrParamInvalid.Error())
		return
	}

	if isJSONError(err) {
		Fail(c, BadRequest, "Json错误")
		return
	}

	code, target := service.StatusOf(err)
	if code == InternalServerError {
		log.ErrorContext(c.Request.Context(), "Error", "path", c.FullPath(), "err", err)
	}
	Fail(c, code, target.Error())
}

func isJSONError(err error) bool {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	var stdSyntax *stdjson.SyntaxError
	var stdType *stdjson.UnmarshalTypeError
	var syntax *json.SyntaxError
	var typ *json.UnmarshalTypeError
	return errors.As(err, &stdSyntax) || errors.As(err, &stdType) ||
		errors.As(err, &syntax) || errors.As(err, &typ)
}
