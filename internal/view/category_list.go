package view

import (
	"Quill/internal/api/dto"
	"context"
	"fmt"
)

type CategoryListAPI interface {
	ListCategories(ctx context.Context) ([]dto.CategoryDTO, error)
	DeleteCategory(ctx context.Context, id string) (*dto.MsgDTO, error)
}

// CategoryListView 分类列表：名称搜索、分页、删除
type CategoryListView struct {
	list *listView[dto.CategoryDTO]
}

func NewCategoryListView(api CategoryListAPI, notices *Notices) *CategoryListView {
	return &CategoryListView{
		list: &listView[dto.CategoryDTO]{
			notices: notices,
			fetch:   api.ListCategories,
			remove:  api.DeleteCategory,
			idOf:    func(c dto.CategoryDTO) string { return c.ID },
			textOf:  func(c dto.CategoryDTO) string { return c.Name },
			page:    1,
		},
	}
}

func (v *CategoryListView) Load(ctx context.Context) Loadable[[]dto.CategoryDTO] {
	return v.list.Load(ctx)
}

func (v *CategoryListView) State() Loadable[[]dto.CategoryDTO] {
	return v.list.State()
}

func (v *CategoryListView) Reset() {
	v.list.Reset()
}

func (v *CategoryListView) SetQuery(query string) {
	v.list.SetQuery(query)
}

func (v *CategoryListView) SetPage(page int) {
	v.list.SetPage(page)
}

func (v *CategoryListView) Visible() Page[dto.CategoryDTO] {
	return v.list.visible(nil)
}

func (v *CategoryListView) Delete(ctx context.Context, category dto.CategoryDTO, confirm Confirmer) (bool, error) {
	return v.list.Delete(ctx, category.ID, fmt.Sprintf("确定删除分类「%s」吗？", category.Name), confirm)
}
