package view

import (
	"Quill/internal/api/dto"
	"Quill/internal/pkg/sanitize"
	"context"
)

type PostGetter interface {
	GetPost(ctx context.Context, id string) (*dto.PostDTO, error)
}

// PostDetailView 帖子详情，id 变化时重新加载
type PostDetailView struct {
	api    PostGetter
	loader loader[dto.PostDTO]
}

func NewPostDetailView(api PostGetter) *PostDetailView {
	return &PostDetailView{api: api}
}

func (v *PostDetailView) Load(ctx context.Context, id string) Loadable[dto.PostDTO] {
	gen := v.loader.begin()
	var post dto.PostDTO
	got, err := v.api.GetPost(ctx, id)
	if got != nil {
		post = *got
	}
	v.loader.finish(gen, post, err)
	return v.loader.get()
}

func (v *PostDetailView) State() Loadable[dto.PostDTO] {
	return v.loader.get()
}

func (v *PostDetailView) Reset() {
	v.loader.reset()
}

// HTML 经过白名单过滤的正文，未加载时为空
func (v *PostDetailView) HTML() string {
	post, ok := v.loader.get().Data()
	if !ok {
		return ""
	}
	return sanitize.PostContent(post.Content)
}

func (v *PostDetailView) Categories() []dto.CategoryRefDTO {
	post, ok := v.loader.get().Data()
	if !ok {
		return nil
	}
	out := make([]dto.CategoryRefDTO, 0, len(post.Categories))
	for _, pc := range post.Categories {
		out = append(out, pc.Category)
	}
	return out
}
