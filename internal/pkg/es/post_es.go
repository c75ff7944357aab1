package es

import (
	"Quill/internal/model"
	"Quill/internal/pkg/util"
	"time"
)

// PostES 写入 ES 的帖子文档，正文只保存纯文本
type PostES struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	PlainContent  string    `json:"plain_content"`
	CategoryIDs   []string  `json:"category_ids"`
	CategoryNames []string  `json:"category_names"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewPostES 由数据库模型构造索引文档
func NewPostES(post *model.Post) *PostES {
	doc := &PostES{
		ID:            post.ID,
		Title:         post.Title,
		PlainContent:  util.HTMLToText(post.Content),
		CategoryIDs:   make([]string, 0, len(post.Categories)),
		CategoryNames: make([]string, 0, len(post.Categories)),
		CreatedAt:     post.CreatedAt,
		UpdatedAt:     post.UpdatedAt,
	}
	for _, pc := range post.Categories {
		doc.CategoryIDs = append(doc.CategoryIDs, pc.CategoryID)
		doc.CategoryNames = append(doc.CategoryNames, pc.Category.Name)
	}
	return doc
}
