package windows

import (
	"context"
	"sync"

	"github.com/dep2p/go-winbus/pkg/types"
)

// Source 窗口清单来源
type Source interface {
	// List 返回当前顶层窗口
	List(ctx context.Context) ([]types.Window, error)
}

// StaticSource 固定窗口清单
type StaticSource struct {
	mu      sync.RWMutex
	windows []types.Window
	err     error
}

var _ Source = (*StaticSource)(nil)

// NewStaticSource 创建固定清单
func NewStaticSource(windows []types.Window) *StaticSource {
	return &StaticSource{windows: append([]types.Window(nil), windows...)}
}

// List 返回清单副本
func (s *StaticSource) List(ctx context.Context) ([]types.Window, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return nil, s.err
	}
	return append([]types.Window(nil), s.windows...), nil
}

// Set 替换清单
func (s *StaticSource) Set(windows []types.Window) {
	s.mu.Lock()
	s.windows = append([]types.Window(nil), windows...)
	s.err = nil
	s.mu.Unlock()
}

// Fail 之后的 List 返回 err，Set 清除
func (s *StaticSource) Fail(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}
