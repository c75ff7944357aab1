package dto

// MsgDTO 删除等操作的确认信息
type MsgDTO struct {
	Msg string `json:"msg"`
}

// ErrorDTO 失败返回
type ErrorDTO struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}
