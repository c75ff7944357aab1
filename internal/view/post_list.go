package view

import (
	"Quill/internal/api/dto"
	"context"
	"fmt"
	"sync"
)

type PostListAPI interface {
	ListPosts(ctx context.Context) ([]dto.PostDTO, error)
	DeletePost(ctx context.Context, id string) (*dto.MsgDTO, error)
}

// PostListView 帖子列表：标题搜索、分类筛选、分页、删除
type PostListView struct {
	list *listView[dto.PostDTO]

	mu         sync.Mutex
	categoryID string
}

func NewPostListView(api PostListAPI, notices *Notices) *PostListView {
	return &PostListView{
		list: &listView[dto.PostDTO]{
			notices: notices,
			fetch:   api.ListPosts,
			remove:  api.DeletePost,
			idOf:    func(p dto.PostDTO) string { return p.ID },
			textOf:  func(p dto.PostDTO) string { return p.Title },
			page:    1,
		},
	}
}

func (v *PostListView) Load(ctx context.Context) Loadable[[]dto.PostDTO] {
	return v.list.Load(ctx)
}

func (v *PostListView) State() Loadable[[]dto.PostDTO] {
	return v.list.State()
}

func (v *PostListView) Reset() {
	v.list.Reset()
	v.SetCategory("")
}

func (v *PostListView) SetQuery(query string) {
	v.list.SetQuery(query)
}

// SetCategory 空串表示不筛选
func (v *PostListView) SetCategory(categoryID string) {
	v.mu.Lock()
	v.categoryID = categoryID
	v.mu.Unlock()
	v.list.SetPage(1)
}

func (v *PostListView) SetPage(page int) {
	v.list.SetPage(page)
}

func (v *PostListView) Visible() Page[dto.PostDTO] {
	v.mu.Lock()
	categoryID := v.categoryID
	v.mu.Unlock()

	if categoryID == "" {
		return v.list.visible(nil)
	}
	return v.list.visible(func(p dto.PostDTO) bool {
		for _, id := range p.CategoryIDs() {
			if id == categoryID {
				return true
			}
		}
		return false
	})
}

func (v *PostListView) Delete(ctx context.Context, post dto.PostDTO, confirm Confirmer) (bool, error) {
	return v.list.Delete(ctx, post.ID, fmt.Sprintf("确定删除「%s」吗？", post.Title), confirm)
}
