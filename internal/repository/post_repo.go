package repository

import (
	"Quill/internal/model"
	"context"
	"errors"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostPatch 帖子更新内容，nil 字段保持不变
type PostPatch struct {
	Title         *string
	Content       *string
	CoverImageURL *string
	// CategoryIDs 非 nil 时整体替换关联（允许为空）
	CategoryIDs *[]string
}

type PostRepo interface {
	ListPosts(ctx context.Context) ([]*model.Post, error)
	GetPost(ctx context.Context, id string) (*model.Post, error)
	GetPostByIds(ctx context.Context, ids []string) ([]*model.Post, error)
	SearchPosts(ctx context.Context, keyword string, limit int) ([]*model.Post, error)
	CreatePost(ctx context.Context, post *model.Post, categoryIDs []string) error
	UpdatePost(ctx context.Context, id string, patch *PostPatch) (*model.Post, error)
	DeletePost(ctx context.Context, id string) (*model.Post, error)
	DeleteOrphanLinks(ctx context.Context) (int64, error)
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepo {
	return &PostRepoImpl{
		db: db,
	}
}

func (s *PostRepoImpl) withCategories(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Preload("Categories.Category")
}

// ListPosts 按创建时间倒序返回全部帖子
func (s *PostRepoImpl) ListPosts(ctx context.Context) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	err := s.withCategories(ctx).Order("created_at DESC").Order("id DESC").Find(&posts).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list posts")
	}
	return posts, nil
}

// GetPost 不存在时返回 nil, nil
func (s *PostRepoImpl) GetPost(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	err := s.withCategories(ctx).Where("id = ?", id).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrapf(err, "get post %s", id)
	}
	return &post, nil
}

func (s *PostRepoImpl) GetPostByIds(ctx context.Context, ids []string) ([]*model.Post, error) {
	posts := make([]*model.Post, 0, len(ids))
	if len(ids) == 0 {
		return posts, nil
	}
	err := s.withCategories(ctx).Where("id IN ?", ids).Order("created_at DESC").Find(&posts).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "get posts by ids")
	}
	return posts, nil
}

// SearchPosts 标题或正文包含关键字（不区分大小写）
func (s *PostRepoImpl) SearchPosts(ctx context.Context, keyword string, limit int) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	pattern := "%" + escapeLike(strings.ToLower(keyword)) + "%"
	err := s.withCategories(ctx).
		Where("LOWER(title) LIKE ? ESCAPE '!' OR LOWER(content) LIKE ? ESCAPE '!'", pattern, pattern).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "search posts")
	}
	return posts, nil
}

func (s *PostRepoImpl) CreatePost(ctx context.Context, post *model.Post, categoryIDs []string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Categories").Create(post).Error; err != nil {
			return err
		}
		links := buildLinks(post.ID, categoryIDs)
		if len(links) > 0 {
			if err := tx.Omit(clause.Associations).Create(&links).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return pkgerrors.Wrap(err, "create post")
	}
	return nil
}

// UpdatePost 帖子不存在时返回 gorm.ErrRecordNotFound
func (s *PostRepoImpl) UpdatePost(ctx context.Context, id string, patch *PostPatch) (*model.Post, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Post
		if err := tx.Select("id").Where("id = ?", id).First(&existing).Error; err != nil {
			return err
		}

		columns := map[string]any{}
		if patch.Title != nil {
			columns["title"] = *patch.Title
		}
		if patch.Content != nil {
			columns["content"] = *patch.Content
		}
		if patch.CoverImageURL != nil {
			columns["cover_image_url"] = *patch.CoverImageURL
		}
		if len(columns) > 0 {
			if err := tx.Model(&existing).Updates(columns).Error; err != nil {
				return err
			}
		}

		if patch.CategoryIDs != nil {
			if err := tx.Where("post_id = ?", id).Delete(&model.PostCategory{}).Error; err != nil {
				return err
			}
			links := buildLinks(id, *patch.CategoryIDs)
			if len(links) > 0 {
				if err := tx.Omit(clause.Associations).Create(&links).Error; err != nil {
					return err
				}
			}
			if len(columns) == 0 {
				if err := tx.Model(&existing).Update("updated_at", time.Now()).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "update post %s", id)
	}

	return s.GetPost(ctx, id)
}

// DeletePost 删除帖子及其关联，返回被删除的帖子；不存在时返回 gorm.ErrRecordNotFound
func (s *PostRepoImpl) DeletePost(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&post).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&model.PostCategory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "delete post %s", id)
	}
	return &post, nil
}

// DeleteOrphanLinks 清理指向已删除帖子或分类的关联行
func (s *PostRepoImpl) DeleteOrphanLinks(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("post_id NOT IN (?)", s.db.Model(&model.Post{}).Select("id")).
		Or("category_id NOT IN (?)", s.db.Model(&model.Category{}).Select("id")).
		Delete(&model.PostCategory{})
	if result.Error != nil {
		return 0, pkgerrors.Wrap(result.Error, "delete orphan post categories")
	}
	return result.RowsAffected, nil
}

func buildLinks(postID string, categoryIDs []string) []model.PostCategory {
	seen := make(map[string]struct{}, len(categoryIDs))
	links := make([]model.PostCategory, 0, len(categoryIDs))
	for _, cid := range categoryIDs {
		if _, ok := seen[cid]; ok {
			continue
		}
		seen[cid] = struct{}{}
		links = append(links, model.PostCategory{PostID: postID, CategoryID: cid})
	}
	return links
}

func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}
