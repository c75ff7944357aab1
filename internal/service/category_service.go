package service

import (
	"Quill/internal/api/dto"
	"Quill/internal/model"
	"Quill/internal/pkg/consts"
	"Quill/internal/pkg/kafka"
	"Quill/internal/pkg/util"
	"Quill/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"strings"

	"github.com/jinzhu/copier"
)

type CategoryService interface {
	ListCategories(ctx context.Context) ([]*dto.CategoryDTO, error)
	GetCategory(ctx context.Context, id string) (*dto.CategoryDTO, error)
	CreateCategory(ctx context.Context, req *dto.CategoryReq) (*dto.CategoryDTO, error)
	UpdateCategory(ctx context.Context, id string, req *dto.CategoryReq) (*dto.CategoryDTO, error)
	DeleteCategory(ctx context.Context, id string) (*dto.MsgDTO, error)
}

type categoryServiceImpl struct {
	categoryDBRepo repository.CategoryRepo
	publisher      kafka.Publisher
	activitySvc    ActivityService
}

func NewCategoryService(categoryDBRepo repository.CategoryRepo, publisher kafka.Publisher, activitySvc ActivityService) CategoryService {
	return &categoryServiceImpl{
		categoryDBRepo: categoryDBRepo,
		publisher:      publisher,
		activitySvc:    activitySvc,
	}
}

func (s *categoryServiceImpl) ListCategories(ctx context.Context) ([]*dto.CategoryDTO, error) {
	categories, err := s.categoryDBRepo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	categoryDTOs := make([]*dto.CategoryDTO, 0, len(categories))
	if err = copier.Copy(&categoryDTOs, &categories); err != nil {
		return nil, err
	}
	return categoryDTOs, nil
}

func (s *categoryServiceImpl) GetCategory(ctx context.Context, id string) (*dto.CategoryDTO, error) {
	category, err := s.categoryDBRepo.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return toCategoryDTO(category)
}

func (s *categoryServiceImpl) CreateCategory(ctx context.Context, req *dto.CategoryReq) (*dto.CategoryDTO, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := util.ValidateDTO(req); err != nil {
		return nil, err
	}

	category := &model.Category{Name: req.Name}
	if err := s.categoryDBRepo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}

	s.activitySvc.Record(ctx, consts.ActionCreate, consts.EntityCategory, category.ID, category.Name)
	return toCategoryDTO(category)
}

// UpdateCategory 分类不存在时返回持久层错误（500）
func (s *categoryServiceImpl) UpdateCategory(ctx context.Context, id string, req *dto.CategoryReq) (*dto.CategoryDTO, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := util.ValidateDTO(req); err != nil {
		return nil, err
	}

	category, err := s.categoryDBRepo.UpdateCategory(ctx, id, req.Name)
	if err != nil {
		return nil, err
	}

	// 分类名写入了帖子索引，关联帖子需要重新索引
	postIDs, err := s.categoryDBRepo.ListPostIDsByCategory(ctx, id)
	if err != nil {
		log.WarnContext(ctx, "list posts of renamed category failed", "category_id", id, "err", err)
	}
	s.resyncPosts(ctx, postIDs)

	s.activitySvc.Record(ctx, consts.ActionUpdate, consts.EntityCategory, id, category.Name)
	return toCategoryDTO(category)
}

// DeleteCategory 同时解除与帖子的关联，帖子本身保留
func (s *categoryServiceImpl) DeleteCategory(ctx context.Context, id string) (*dto.MsgDTO, error) {
	category, postIDs, err := s.categoryDBRepo.DeleteCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	s.resyncPosts(ctx, postIDs)
	s.activitySvc.Record(ctx, consts.ActionDelete, consts.EntityCategory, id, category.Name)
	return &dto.MsgDTO{Msg: fmt.Sprintf("已删除分类「%s」", category.Name)}, nil
}

func (s *categoryServiceImpl) resyncPosts(ctx context.Context, postIDs []string) {
	if s.publisher == nil {
		return
	}
	for _, postID := range postIDs {
		if err := s.publisher.PublishPostEvent(ctx, kafka.NewPostEvent(kafka.EventUpsert, postID)); err != nil {
			log.WarnContext(ctx, "publish post event failed", "post_id", postID, "err", err)
		}
	}
}

func toCategoryDTO(category *model.Category) (*dto.CategoryDTO, error) {
	categoryDTO := &dto.CategoryDTO{}
	if err := copier.Copy(categoryDTO, category); err != nil {
		return nil, err
	}
	return categoryDTO, nil
}
