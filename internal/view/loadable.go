package view

import (
	"Quill/internal/client"
	"sync"
)

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Loadable 视图数据的唯一状态：Idle | Loading | Loaded(data) | Failed(message)
type Loadable[T any] struct {
	status  Status
	data    T
	message string
	err     error
}

func (l Loadable[T]) Status() Status {
	return l.status
}

// Data 仅在 Loaded 时返回 true
func (l Loadable[T]) Data() (T, bool) {
	return l.data, l.status == StatusLoaded
}

// Message 仅在 Failed 时非空
func (l Loadable[T]) Message() string {
	return l.message
}

// Err 失败时的原始错误，用于区分不存在、网络异常等情况
func (l Loadable[T]) Err() error {
	return l.err
}

// loader 持有 Loadable 并用代数丢弃过期响应：每次发起请求或离开视图都会让之前的请求失效
type loader[T any] struct {
	mu    sync.Mutex
	gen   uint64
	state Loadable[T]
}

func (l *loader[T]) begin() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.gen++
	l.state = Loadable[T]{status: StatusLoading}
	return l.gen
}

// finish 返回 false 表示响应已过期被丢弃
func (l *loader[T]) finish(gen uint64, data T, err error) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen {
		return false
	}
	if err != nil {
		l.state = Loadable[T]{status: StatusFailed, message: client.UserMessage(err), err: err}
	} else {
		l.state = Loadable[T]{status: StatusLoaded, data: data}
	}
	return true
}

func (l *loader[T]) reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.gen++
	l.state = Loadable[T]{}
}

func (l *loader[T]) get() Loadable[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// update 只修改已加载的数据
func (l *loader[T]) update(fn func(T) T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state.status == StatusLoaded {
		l.state.data = fn(l.state.data)
	}
}
