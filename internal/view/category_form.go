package view

import (
	"Quill/internal/api/dto"
	"context"
	"fmt"
	"strings"
)

type CategoryFormAPI interface {
	GetCategory(ctx context.Context, id string) (*dto.CategoryDTO, error)
	CreateCategory(ctx context.Context, req *dto.CategoryReq) (*dto.CategoryDTO, error)
	UpdateCategory(ctx context.Context, id string, req *dto.CategoryReq) (*dto.CategoryDTO, error)
}

// CategoryForm ID 为空时新建，否则更新
type CategoryForm struct {
	formState
	api    CategoryFormAPI
	loader loader[dto.CategoryDTO]

	ID   string
	Name string
}

func NewCategoryForm(api CategoryFormAPI, notices *Notices) *CategoryForm {
	return &CategoryForm{api: api, formState: formState{notices: notices}}
}

func (f *CategoryForm) Load(ctx context.Context, id string) Loadable[dto.CategoryDTO] {
	gen := f.loader.begin()
	var category dto.CategoryDTO
	got, err := f.api.GetCategory(ctx, id)
	if got != nil {
		category = *got
	}
	if f.loader.finish(gen, category, err) && err == nil {
		f.ID, f.Name = category.ID, category.Name
	}
	return f.loader.get()
}

func (f *CategoryForm) State() Loadable[dto.CategoryDTO] {
	return f.loader.get()
}

func (f *CategoryForm) Reset() {
	f.loader.reset()
	f.ID, f.Name = "", ""
}

func (f *CategoryForm) Validate() bool {
	return f.check(&dto.CategoryReq{Name: strings.TrimSpace(f.Name)}) == nil
}

func (f *CategoryForm) Submit(ctx context.Context) (*dto.CategoryDTO, error) {
	req := &dto.CategoryReq{Name: strings.TrimSpace(f.Name)}
	if err := f.check(req); err != nil {
		return nil, err
	}

	var (
		category *dto.CategoryDTO
		err      error
	)
	if f.ID == "" {
		category, err = f.api.CreateCategory(ctx, req)
	} else {
		category, err = f.api.UpdateCategory(ctx, f.ID, req)
	}
	if err != nil {
		return nil, f.fail(err)
	}

	f.ID, f.Name = category.ID, category.Name
	f.notices.Info(fmt.Sprintf("分类「%s」已保存", category.Name))
	return category, nil
}
