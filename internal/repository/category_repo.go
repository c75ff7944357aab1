package repository

import (
	"Quill/internal/model"
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

type CategoryRepo interface {
	ListCategories(ctx context.Context) ([]*model.Category, error)
	GetCategory(ctx context.Context, id string) (*model.Category, error)
	GetCategoriesByIds(ctx context.Context, ids []string) ([]*model.Category, error)
	CreateCategory(ctx context.Context, category *model.Category) error
	UpdateCategory(ctx context.Context, id string, name string) (*model.Category, error)
	DeleteCategory(ctx context.Context, id string) (*model.Category, []string, error)
	ListPostIDsByCategory(ctx context.Context, id string) ([]string, error)
}

type categoryRepoImpl struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepo {
	return &categoryRepoImpl{
		db: db,
	}
}

func (s *categoryRepoImpl) ListCategories(ctx context.Context) ([]*model.Category, error) {
	categories := make([]*model.Category, 0)
	err := s.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&categories).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list categories")
	}
	return categories, nil
}

// GetCategory 不存在时返回 nil, nil
func (s *categoryRepoImpl) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	var category model.Category
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrapf(err, "get category %s", id)
	}
	return &category, nil
}

func (s *categoryRepoImpl) GetCategoriesByIds(ctx context.Context, ids []string) ([]*model.Category, error) {
	categories := make([]*model.Category, 0, len(ids))
	if len(ids) == 0 {
		return categories, nil
	}
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "get categories by ids")
	}
	return categories, nil
}

func (s *categoryRepoImpl) CreateCategory(ctx context.Context, category *model.Category) error {
	if err := s.db.WithContext(ctx).Create(category).Error; err != nil {
		return pkgerrors.Wrap(err, "create category")
	}
	return nil
}

// UpdateCategory 分类不存在时返回 gorm.ErrRecordNotFound
func (s *categoryRepoImpl) UpdateCategory(ctx context.Context, id string, name string) (*model.Category, error) {
	var category model.Category
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&category).Error; err != nil {
			return err
		}
		return tx.Model(&category).Update("name", name).Error
	})
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "update category %s", id)
	}
	category.Name = name
	return &category, nil
}

// DeleteCategory 删除分类及其关联，返回被删除的分类与受影响的帖子 ID；不存在时返回 gorm.ErrRecordNotFound
func (s *categoryRepoImpl) DeleteCategory(ctx context.Context, id string) (*model.Category, []string, error) {
	var category model.Category
	postIDs := make([]string, 0)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&category).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.PostCategory{}).Where("category_id = ?", id).Pluck("post_id", &postIDs).Error; err != nil {
			return err
		}
		if err := tx.Where("category_id = ?", id).Delete(&model.PostCategory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
	if err != nil {
		return nil, nil, pkgerrors.Wrapf(err, "delete category %s", id)
	}
	return &category, postIDs, nil
}

// ListPostIDsByCategory 返回关联到该分类的帖子 ID
func (s *categoryRepoImpl) ListPostIDsByCategory(ctx context.Context, id string) ([]string, error) {
	postIDs := make([]string, 0)
	err := s.db.WithContext(ctx).Model(&model.PostCategory{}).Where("category_id = ?", id).Pluck("post_id", &postIDs).Error
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "list posts of category %s", id)
	}
	return postIDs, nil
}
