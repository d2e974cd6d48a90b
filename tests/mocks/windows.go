package mocks

import (
	"context"
	"sync"

	"github.com/dep2p/go-winbus/pkg/types"
)

// MockWindowSource 模拟窗口清单来源
type MockWindowSource struct {
	mu sync.Mutex

	// Windows 默认返回的清单
	Windows []types.Window

	// ListFunc 自定义 List 行为
	ListFunc func(ctx context.Context) ([]types.Window, error)

	// ListCalls List 调用次数
	ListCalls int
}

// NewMockWindowSource 创建 MockWindowSource
func NewMockWindowSource(windows ...types.Window) *MockWindowSource {
	return &MockWindowSource{Windows: windows}
}

// List 返回窗口清单
func (m *MockWindowSource) List(ctx context.Context) ([]types.Window, error) {
	m.mu.Lock()
	m.ListCalls++
	custom := m.ListFunc
	out := append([]types.Window(nil), m.Windows...)
	m.mu.Unlock()

	if custom != nil {
		return custom(ctx)
	}
	return out, nil
}

// Calls 返回 List 调用次数
func (m *MockWindowSource) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ListCalls
}
