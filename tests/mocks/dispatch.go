package mocks

import (
	"sync"

	"github.com/dep2p/go-winbus/pkg/interfaces"
)

var (
	_ interfaces.Dispatcher = (*MockDispatcher)(nil)
	_ interfaces.Scheduler  = (*MockScheduler)(nil)
)

// MockDispatcher 模拟 UI 调度器
//
// Post 的回调排队，直到调用 Drain。
type MockDispatcher struct {
	mu     sync.Mutex
	queue  []func()
	closed bool

	// PostFunc 自定义 Post 行为
	PostFunc func(fn func()) bool

	// PostCalls Post 调用次数
	PostCalls int
}

// NewMockDispatcher 创建 MockDispatcher
func NewMockDispatcher() *MockDispatcher {
	return &MockDispatcher{}
}

// Post 排队回调
func (m *MockDispatcher) Post(fn func()) bool {
	m.mu.Lock()
	m.PostCalls++
	custom := m.PostFunc
	if custom == nil {
		defer m.mu.Unlock()
		if m.closed {
			return false
		}
		m.queue = append(m.queue, fn)
		return true
	}
	m.mu.Unlock()
	return custom(fn)
}

// Drain 执行全部排队的回调（包括执行期间新加入的）
func (m *MockDispatcher) Drain() int {
	ran := 0
	for {
		m.mu.Lock()
		queue := m.queue
		m.queue = nil
		m.mu.Unlock()

		if len(queue) == 0 {
			return ran
		}
		for _, fn := range queue {
			fn()
			ran++
		}
	}
}

// Pending 排队的回调数
func (m *MockDispatcher) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// Close 之后 Post 返回 false
func (m *MockDispatcher) Close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
}

// MockScheduler 模拟后台调度器
type MockScheduler struct {
	mu     sync.Mutex
	queue  []func()
	closed bool

	// ScheduleFunc 自定义 Schedule 行为
	ScheduleFunc func(fn func()) bool

	// ScheduleCalls Schedule 调用次数
	ScheduleCalls int
}

// NewMockScheduler 创建 MockScheduler
func NewMockScheduler() *MockScheduler {
	return &MockScheduler{}
}

// Schedule 排队回调
func (m *MockScheduler) Schedule(fn func()) bool {
	m.mu.Lock()
	m.ScheduleCalls++
	custom := m.ScheduleFunc
	if custom == nil {
		defer m.mu.Unlock()
		if m.closed {
			return false
		}
		m.queue = append(m.queue, fn)
		return true
	}
	m.mu.Unlock()
	return custom(fn)
}

// Close 之后 Schedule 返回 false
func (m *MockScheduler) Close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
}

// RunAll 在当前 goroutine 上执行全部排队的回调
func (m *MockScheduler) RunAll() int {
	m.mu.Lock()
	queue := m.queue
	m.queue = nil
	m.mu.Unlock()

	for _, fn := range queue {
		fn()
	}
	return len(queue)
}

// Calls 返回 Post 调用次数
func (m *MockDispatcher) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.PostCalls
}
