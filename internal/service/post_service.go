package service

import (
	"Quill/internal/api/dto"
	"Quill/internal/model"
	"Quill/internal/pkg/consts"
	"Quill/internal/pkg/es"
	"Quill/internal/pkg/kafka"
	"Quill/internal/pkg/util"
	"Quill/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	pkgerrors "github.com/pkg/errors"
)

const maxSearchLimit = 100

type PostService interface {
	ListPosts(ctx context.Context) ([]*dto.PostDTO, error)
	GetPost(ctx context.Context, id string) (*dto.PostDTO, error)
	SearchPosts(ctx context.Context, keyword string, limit int) ([]*dto.PostDTO, error)
	CreatePost(ctx context.Context, req *dto.CreatePostDTO) (*dto.PostDTO, error)
	UpdatePost(ctx context.Context, id string, req *dto.UpdatePostDTO) (*dto.PostDTO, error)
	DeletePost(ctx context.Context, id string) (*dto.MsgDTO, error)
	ReindexPosts(ctx context.Context) (int, error)
}

type postServiceImpl struct {
	postDBRepo     repository.PostRepo
	categoryDBRepo repository.CategoryRepo
	postESRepo     es.PostRepo
	publisher      kafka.Publisher
	activitySvc    ActivityService
}

// NewPostService postESRepo 为 nil 时搜索走数据库，publisher 为 nil 时不同步索引
func NewPostService(postDBRepo repository.PostRepo, categoryDBRepo repository.CategoryRepo, postESRepo es.PostRepo, publisher kafka.Publisher, activitySvc ActivityService) PostService {
	return &postServiceImpl{
		postDBRepo:     postDBRepo,
		categoryDBRepo: categoryDBRepo,
		postESRepo:     postESRepo,
		publisher:      publisher,
		activitySvc:    activitySvc,
	}
}

// ListPosts 全部帖子，新的在前
func (s *postServiceImpl) ListPosts(ctx context.Context) ([]*dto.PostDTO, error) {
	posts, err := s.postDBRepo.ListPosts(ctx)
	if err != nil {
		return nil, err
	}
	return s.batchToPostDTO(posts)
}

func (s *postServiceImpl) GetPost(ctx context.Context, id string) (*dto.PostDTO, error) {
	post, err := s.postDBRepo.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return s.toPostDTO(post)
}

// SearchPosts 优先使用 ES，失败或未启用时退回数据库模糊匹配
func (s *postServiceImpl) SearchPosts(ctx context.Context, keyword string, limit int) ([]*dto.PostDTO, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []*dto.PostDTO{}, nil
	}
	if limit <= 0 {
		limit = consts.SearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	if s.postESRepo != nil {
		posts, err := s.searchByES(ctx, keyword, limit)
		if err == nil {
			return s.batchToPostDTO(posts)
		}
		log.WarnContext(ctx, "es search failed, falling back to database", "keyword", keyword, "err", err)
	}

	posts, err := s.postDBRepo.SearchPosts(ctx, keyword, limit)
	if err != nil {
		return nil, err
	}
	return s.batchToPostDTO(posts)
}

func (s *postServiceImpl) searchByES(ctx context.Context, keyword string, limit int) ([]*model.Post, error) {
	ids, err := s.postESRepo.SearchPostIDs(ctx, keyword, limit)
	if err != nil {
		return nil, err
	}
	posts, err := s.postDBRepo.GetPostByIds(ctx, ids)
	if err != nil {
		return nil, err
	}

	// 按 ES 相关度重排，索引中残留的已删除帖子自然被过滤
	byID := make(map[string]*model.Post, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}
	ordered := make([]*model.Post, 0, len(posts))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}

func (s *postServiceImpl) CreatePost(ctx context.Context, req *dto.CreatePostDTO) (*dto.PostDTO, error) {
	if err := util.ValidateDTO(req); err != nil {
		return nil, err
	}
	if err := s.checkCategories(ctx, req.CategoryIDs); err != nil {
		return nil, err
	}

	post := &model.Post{
		Title:         req.Title,
		Content:       req.Content,
		CoverImageURL: req.CoverImageURL,
	}
	if err := s.postDBRepo.CreatePost(ctx, post, req.CategoryIDs); err != nil {
		return nil, err
	}

	created, err := s.GetPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	s.syncSearch(ctx, kafka.EventUpsert, post.ID)
	s.activitySvc.Record(ctx, consts.ActionCreate, consts.EntityPost, post.ID, post.Title)
	return created, nil
}

// UpdatePost 帖子不存在时返回持久层错误（500），与删除保持一致
func (s *postServiceImpl) UpdatePost(ctx context.Context, id string, req *dto.UpdatePostDTO) (*dto.PostDTO, error) {
	if err := util.ValidateDTO(req); err != nil {
		return nil, err
	}
	if req.CategoryIDs != nil {
		if err := s.checkCategories(ctx, *req.CategoryIDs); err != nil {
			return nil, err
		}
	}

	post, err := s.postDBRepo.UpdatePost(ctx, id, &repository.PostPatch{
		Title:         req.Title,
		Content:       req.Content,
		CoverImageURL: req.CoverImageURL,
		CategoryIDs:   req.CategoryIDs,
	})
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, pkgerrors.Errorf("post %s vanished during update", id)
	}

	s.syncSearch(ctx, kafka.EventUpsert, id)
	s.activitySvc.Record(ctx, consts.ActionUpdate, consts.EntityPost, id, post.Title)
	return s.toPostDTO(post)
}

func (s *postServiceImpl) DeletePost(ctx context.Context, id string) (*dto.MsgDTO, error) {
	post, err := s.postDBRepo.DeletePost(ctx, id)
	if err != nil {
		return nil, err
	}

	s.syncSearch(ctx, kafka.EventDelete, id)
	s.activitySvc.Record(ctx, consts.ActionDelete, consts.EntityPost, id, post.Title)
	return &dto.MsgDTO{Msg: fmt.Sprintf("已删除「%s」", post.Title)}, nil
}

// ReindexPosts 全量重建搜索索引，返回写入的文档数
func (s *postServiceImpl) ReindexPosts(ctx context.Context) (int, error) {
	if s.postESRepo == nil {
		return 0, ErrFeatureDisabled
	}

	// 版本号取在读库之前：读库期间提交的更新事件版本更高，不会被这里的旧数据覆盖
	version := time.Now().UnixMilli()
	posts, err := s.postDBRepo.ListPosts(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, p := range posts {
		if err = s.postESRepo.IndexPost(ctx, es.NewPostES(p), version); err != nil {
			log.ErrorContext(ctx, "reindex post failed", "post_id", p.ID, "err", err)
			continue
		}
		count++
	}
	return count, nil
}

// checkCategories 分类必须全部存在
func (s *postServiceImpl) checkCategories(ctx context.Context, ids []string) error {
	unique := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}
	if len(unique) == 0 {
		return nil
	}

	keys := make([]string, 0, len(unique))
	for id := range unique {
		keys = append(keys, id)
	}
	found, err := s.categoryDBRepo.GetCategoriesByIds(ctx, keys)
	if err != nil {
		return err
	}
	if len(found) != len(unique) {
		return ErrCategoryInvalid
	}
	return nil
}

// syncSearch 数据库为准，索引同步失败只记录日志
func (s *postServiceImpl) syncSearch(ctx context.Context, eventType string, postID string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishPostEvent(ctx, kafka.NewPostEvent(eventType, postID)); err != nil {
		log.WarnContext(ctx, "publish post event failed", "type", eventType, "post_id", postID, "err", err)
	}
}

func (s *postServiceImpl) toPostDTO(post *model.Post) (*dto.PostDTO, error) {
	postDTO := &dto.PostDTO{}
	if err := copier.Copy(postDTO, post); err != nil {
		return nil, err
	}

	postDTO.Categories = make([]dto.PostCategoryDTO, 0, len(post.Categories))
	for _, pc := range post.Categories {
		postDTO.Categories = append(postDTO.Categories, dto.PostCategoryDTO{
			Category: dto.CategoryRefDTO{ID: pc.Category.ID, Name: pc.Category.Name},
		})
	}
	return postDTO, nil
}

func (s *postServiceImpl) batchToPostDTO(posts []*model.Post) ([]*dto.PostDTO, error) {
	postDTOs := make([]*dto.PostDTO, 0, len(posts))
	for _, post := range posts {
		postDTO, err := s.toPostDTO(post)
		if err != nil {
			return nil, err
		}
		postDTOs = append(postDTOs, postDTO)
	}
	return postDTOs, nil
}
