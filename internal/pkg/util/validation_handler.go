package util

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	// 错误字段名使用 json 名称，便于前端直接对应表单字段
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	// 表单长度按 UTF-16 码元计数，与浏览器端 string.length 一致
	_ = validate.RegisterValidation("u16min", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		return err == nil && UTF16Len(fl.Field().String()) >= n
	})
	_ = validate.RegisterValidation("u16max", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		return err == nil && UTF16Len(fl.Field().String()) <= n
	})
}

// UTF16Len 字符串的 UTF-16 码元数，BMP 之外的字符（如 emoji）计 2
func UTF16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// FieldErrors 字段级校验错误，key 为 json 字段名
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return "参数错误: " + strings.Join(parts, "; ")
}

// ValidateDTO 校验失败时返回 FieldErrors，每个字段只保留第一条信息
func ValidateDTO(dto any) error {
	err := validate.Struct(dto)
	if err == nil {
		return nil
	}

	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return err
	}

	fields := make(FieldErrors, len(vErrs))
	for _, fe := range vErrs {
		name := fieldName(fe)
		if _, ok := fields[name]; ok {
			continue
		}
		fields[name] = fieldMessage(fe)
	}
	return fields
}

// fieldName dive 产生的 categoryIds[0] 归并到 categoryIds
func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if i := strings.IndexByte(name, '['); i > 0 {
		name = name[:i]
	}
	return name
}

func fieldMessage(fe validator.FieldError) string {
	isList := fe.Kind() == reflect.Slice || fe.Kind() == reflect.Array
	switch fe.Tag() {
	case "required":
		return "不能为空"
	case "u16min":
		return fmt.Sprintf("至少需要 %s 个字符", fe.Param())
	case "u16max":
		return fmt.Sprintf("不能超过 %s 个字符", fe.Param())
	case "min":
		if isList {
			return fmt.Sprintf("至少选择 %s 项", fe.Param())
		}
		return fmt.Sprintf("至少需要 %s 个字符", fe.Param())
	case "max":
		if isList {
			return fmt.Sprintf("最多选择 %s 项", fe.Param())
		}
		return fmt.Sprintf("不能超过 %s 个字符", fe.Param())
	case "url":
		return "必须是合法的 URL"
	default:
		return fmt.Sprintf("校验失败，规则 [%s]", fe.Tag())
	}
}
