package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Post struct {
	ID            string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title         string    `gorm:"type:varchar(100);not null" json:"title"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	CoverImageURL string    `gorm:"column:cover_image_url;type:varchar(2048);not null;default:''" json:"coverImageURL"`
	CreatedAt     time.Time `gorm:"index:idx_post_created_at" json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	// 关联关系
	Categories []PostCategory `gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE" json:"categories"`
}

func (Post) TableName() string {
	return "posts"
}

// BeforeCreate 创建时分配 ID，ID 创建后不可变
func (p *Post) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
