package view

import (
	"Quill/internal/api/dto"
	"context"
	"fmt"
)

type PostCreator interface {
	CreatePost(ctx context.Context, req *dto.CreatePostDTO) (*dto.PostDTO, error)
}

// PostCreateForm 新建帖子，至少选择一个分类
type PostCreateForm struct {
	formState
	api PostCreator

	Title         string
	Content       string
	CoverImageURL string
	CategoryIDs   []string
}

func NewPostCreateForm(api PostCreator, notices *Notices) *PostCreateForm {
	return &PostCreateForm{api: api, formState: formState{notices: notices}}
}

// ToggleCategory 勾选或取消一个分类
func (f *PostCreateForm) ToggleCategory(id string) {
	f.CategoryIDs = toggle(f.CategoryIDs, id)
}

func (f *PostCreateForm) request() *dto.CreatePostDTO {
	return &dto.CreatePostDTO{
		Title:         f.Title,
		Content:       f.Content,
		CoverImageURL: f.CoverImageURL,
		CategoryIDs:   f.CategoryIDs,
	}
}

func (f *PostCreateForm) Validate() bool {
	return f.check(f.request()) == nil
}

func (f *PostCreateForm) Submit(ctx context.Context) (*dto.PostDTO, error) {
	req := f.request()
	if err := f.check(req); err != nil {
		return nil, err
	}

	post, err := f.api.CreatePost(ctx, req)
	if err != nil {
		return nil, f.fail(err)
	}
	f.notices.Info(fmt.Sprintf("已发布「%s」", post.Title))
	return post, nil
}

type PostEditAPI interface {
	PostGetter
	UpdatePost(ctx context.Context, id string, req *dto.UpdatePostDTO) (*dto.PostDTO, error)
}

// PostEditForm 编辑已有帖子，提交完整字段，允许清空分类
type PostEditForm struct {
	formState
	api    PostEditAPI
	loader loader[dto.PostDTO]

	ID            string
	Title         string
	Content       string
	CoverImageURL string
	CategoryIDs   []string
}

func NewPostEditForm(api PostEditAPI, notices *Notices) *PostEditForm {
	return &PostEditForm{api: api, formState: formState{notices: notices}}
}

// Load 拉取帖子并用其内容填充表单
func (f *PostEditForm) Load(ctx context.Context, id string) Loadable[dto.PostDTO] {
	gen := f.loader.begin()
	var post dto.PostDTO
	got, err := f.api.GetPost(ctx, id)
	if got != nil {
		post = *got
	}
	if f.loader.finish(gen, post, err) && err == nil {
		f.fill(post)
	}
	return f.loader.get()
}

func (f *PostEditForm) State() Loadable[dto.PostDTO] {
	return f.loader.get()
}

func (f *PostEditForm) Reset() {
	f.loader.reset()
	f.fill(dto.PostDTO{})
}

func (f *PostEditForm) fill(post dto.PostDTO) {
	f.ID = post.ID
	f.Title = post.Title
	f.Content = post.Content
	f.CoverImageURL = post.CoverImageURL
	f.CategoryIDs = post.CategoryIDs()
}

func (f *PostEditForm) ToggleCategory(id string) {
	f.CategoryIDs = toggle(f.CategoryIDs, id)
}

func (f *PostEditForm) request() *dto.UpdatePostDTO {
	categoryIDs := append([]string{}, f.CategoryIDs...)
	return &dto.UpdatePostDTO{
		Title:         &f.Title,
		Content:       &f.Content,
		CoverImageURL: &f.CoverImageURL,
		CategoryIDs:   &categoryIDs,
	}
}

func (f *PostEditForm) Validate() bool {
	return f.check(f.request()) == nil
}

func (f *PostEditForm) Submit(ctx context.Context) (*dto.PostDTO, error) {
	if f.ID == "" {
		return nil, ErrInvalidForm
	}
	req := f.request()
	if err := f.check(req); err != nil {
		return nil, err
	}

	post, err := f.api.UpdatePost(ctx, f.ID, req)
	if err != nil {
		return nil, f.fail(err)
	}
	f.fill(*post)
	f.loader.update(func(dto.PostDTO) dto.PostDTO { return *post })
	f.notices.Info(fmt.Sprintf("「%s」已更新", post.Title))
	return post, nil
}

func toggle(ids []string, id string) []string {
	out := make([]string, 0, len(ids)+1)
	found := false
	for _, existing := range ids {
		if existing == id {
			found = true
			continue
		}
		out = append(out, existing)
	}
	if !found {
		out = append(out, id)
	}
	return out
}
