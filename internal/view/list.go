package view

import (
	"Quill/internal/api/dto"
	"Quill/internal/client"
	"Quill/internal/pkg/consts"
	"context"
	"strings"
	"sync"
)

// Confirmer 删除前的用户确认
type Confirmer interface {
	Confirm(prompt string) bool
}

type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool {
	return f(prompt)
}

// Page 过滤并分页后的结果
type Page[T any] struct {
	Items     []T
	Number    int
	PageCount int
	Total     int
}

// listView 一次加载全部数据，搜索与分页都是对已加载集合的纯投影
type listView[T any] struct {
	loader  loader[[]T]
	notices *Notices

	fetch  func(ctx context.Context) ([]T, error)
	remove func(ctx context.Context, id string) (*dto.MsgDTO, error)
	idOf   func(T) string
	textOf func(T) string

	mu    sync.Mutex
	query string
	page  int
}

func (v *listView[T]) Load(ctx context.Context) Loadable[[]T] {
	gen := v.loader.begin()
	items, err := v.fetch(ctx)
	v.loader.finish(gen, items, err)
	return v.loader.get()
}

func (v *listView[T]) State() Loadable[[]T] {
	return v.loader.get()
}

// Reset 离开视图，进行中的请求结果将被丢弃
func (v *listView[T]) Reset() {
	v.loader.reset()
	v.mu.Lock()
	v.query, v.page = "", 1
	v.mu.Unlock()
}

// SetQuery 修改搜索词后回到第一页
func (v *listView[T]) SetQuery(query string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.query = query
	v.page = 1
}

func (v *listView[T]) SetPage(page int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.page = page
}

func (v *listView[T]) visible(extra func(T) bool) Page[T] {
	items, ok := v.loader.get().Data()
	if !ok {
		return Page[T]{Number: 1}
	}

	v.mu.Lock()
	query := strings.ToLower(v.query)
	page := v.page
	v.mu.Unlock()

	filtered := make([]T, 0, len(items))
	for _, item := range items {
		if query != "" && !strings.Contains(strings.ToLower(v.textOf(item)), query) {
			continue
		}
		if extra != nil && !extra(item) {
			continue
		}
		filtered = append(filtered, item)
	}
	return paginate(filtered, page, consts.PostPageSize)
}

// Delete 未确认时不发请求；成功后按 id 从本地列表移除，失败时列表保持不变
func (v *listView[T]) Delete(ctx context.Context, id, prompt string, confirm Confirmer) (bool, error) {
	if confirm == nil || !confirm.Confirm(prompt) {
		return false, nil
	}

	msg, err := v.remove(ctx, id)
	if err != nil {
		v.notices.Error(client.UserMessage(err))
		return false, err
	}

	v.loader.update(func(items []T) []T {
		kept := make([]T, 0, len(items))
		for _, item := range items {
			if v.idOf(item) != id {
				kept = append(kept, item)
			}
		}
		return kept
	})
	v.notices.Info(msg.Msg)
	return true, nil
}

// paginate 页码从 1 开始，越界时落到最近的有效页
func paginate[T any](items []T, page, size int) Page[T] {
	total := len(items)
	pageCount := (total + size - 1) / size
	if pageCount == 0 {
		pageCount = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pageCount {
		page = pageCount
	}

	start := (page - 1) * size
	end := min(start+size, total)
	return Page[T]{
		Items:     items[start:end],
		Number:    page,
		PageCount: pageCount,
		Total:     total,
	}
}
