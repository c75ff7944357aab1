package model

// PostCategory 帖子与分类的多对多关联，生命周期依附于两端
type PostCategory struct {
	PostID     string `gorm:"type:varchar(36);primaryKey" json:"postId"`
	CategoryID string `gorm:"type:varchar(36);primaryKey;index:idx_category_id" json:"categoryId"`

	Category Category `gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:CASCADE" json:"category"`
}

func (PostCategory) TableName() string {
	return "post_categories"
}
