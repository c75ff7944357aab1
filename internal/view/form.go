package view

import (
	"Quill/internal/client"
	"Quill/internal/pkg/util"
	"errors"
	"maps"
	"sync"
)

// ErrInvalidForm 本地校验未通过，未发送请求
var ErrInvalidForm = errors.New("表单校验未通过")

// formState 表单共用的字段错误与提交结果
type formState struct {
	mu      sync.Mutex
	errs    util.FieldErrors
	notices *Notices
}

// FieldErrors 当前的字段错误，字段名与请求 JSON 一致
func (f *formState) FieldErrors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return maps.Clone(map[string]string(f.errs))
}

// check 校验失败时记录字段错误并返回 ErrInvalidForm
func (f *formState) check(req any) error {
	err := util.ValidateDTO(req)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs = nil
	if err == nil {
		return nil
	}

	var fe util.FieldErrors
	if errors.As(err, &fe) {
		f.errs = fe
		return ErrInvalidForm
	}
	return err
}

// fail 服务端拒绝时展示错误，服务端返回的字段错误同样回填到表单
func (f *formState) fail(err error) error {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && len(apiErr.Fields) > 0 {
		f.mu.Lock()
		f.errs = apiErr.Fields
		f.mu.Unlock()
	}
	f.notices.Error(client.UserMessage(err))
	return err
}
