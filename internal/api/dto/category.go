package dto

import "time"

// CategoryDTO 分类
type CategoryDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CategoryReq 分类 - 新增或修改
type CategoryReq struct {
	Name string `json:"name" validate:"required,max=50"`
}
