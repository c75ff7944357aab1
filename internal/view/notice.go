package view

import (
	"sync"
	"time"
)

// DefaultNoticeTTL 提示自动消失的时间
const DefaultNoticeTTL = 3 * time.Second

type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeError
)

type Notice struct {
	ID      uint64
	Kind    NoticeKind
	Message string
}

// Notices 短暂提示，到期自动移除，不阻塞其他操作。nil 的 Notices 丢弃所有提示
type Notices struct {
	mu     sync.Mutex
	ttl    time.Duration
	nextID uint64
	items  []Notice
}

func NewNotices(ttl time.Duration) *Notices {
	if ttl <= 0 {
		ttl = DefaultNoticeTTL
	}
	return &Notices{ttl: ttl}
}

func (n *Notices) Info(message string) uint64 {
	return n.push(NoticeInfo, message)
}

func (n *Notices) Error(message string) uint64 {
	return n.push(NoticeError, message)
}

func (n *Notices) push(kind NoticeKind, message string) uint64 {
	if n == nil {
		return 0
	}
	n.mu.Lock()
	n.nextID++
	id := n.nextID
	n.items = append(n.items, Notice{ID: id, Kind: kind, Message: message})
	n.mu.Unlock()

	time.AfterFunc(n.ttl, func() { n.Dismiss(id) })
	return id
}

func (n *Notices) Dismiss(id uint64) {
	if n == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, item := range n.items {
		if item.ID == id {
			n.items = append(n.items[:i], n.items[i+1:]...)
			return
		}
	}
}

// Active 当前仍在展示的提示，旧的在前
func (n *Notices) Active() []Notice {
	if n == nil {
		return nil
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Notice, len(n.items))
	copy(out, n.items)
	return out
}
