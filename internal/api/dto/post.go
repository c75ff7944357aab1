package dto

import "time"

// PostDTO 帖子
type PostDTO struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Content       string            `json:"content"`
	CoverImageURL string            `json:"coverImageURL"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
	Categories    []PostCategoryDTO `json:"categories"`
}

// PostCategoryDTO 帖子关联的分类，保持 {"category": {...}} 的嵌套结构
type PostCategoryDTO struct {
	Category CategoryRefDTO `json:"category"`
}

type CategoryRefDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreatePostDTO 帖子 - 新增
type CreatePostDTO struct {
	Title         string   `json:"title" validate:"u16min=5,u16max=100"`
	Content       string   `json:"content" validate:"u16min=20"`
	CoverImageURL string   `json:"coverImageURL" validate:"url"`
	CategoryIDs   []string `json:"categoryIds" validate:"min=1,dive,required"`
}

// UpdatePostDTO 帖子 - 修改，缺省字段保持不变；categoryIds 出现即整体替换
type UpdatePostDTO struct {
	Title         *string   `json:"title,omitempty" validate:"omitnil,u16min=5,u16max=100"`
	Content       *string   `json:"content,omitempty" validate:"omitnil,u16min=20"`
	CoverImageURL *string   `json:"coverImageURL,omitempty" validate:"omitnil,url"`
	CategoryIDs   *[]string `json:"categoryIds,omitempty" validate:"omitnil,dive,required"`
}

// SearchPostDTO 帖子 - 搜索
type SearchPostDTO struct {
	Keyword string `form:"q"`
	Limit   int    `form:"limit"`
}

// CategoryIDs 返回帖子关联的分类 ID
func (p *PostDTO) CategoryIDs() []string {
	ids := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		ids = append(ids, c.Category.ID)
	}
	return ids
}
