package mocks

import (
	"sync"

	"github.com/dep2p/go-winbus/pkg/interfaces"
)

var _ interfaces.MessengerObserver = (*MockObserver)(nil)

// MockObserver 记录消息总线观察者回调
type MockObserver struct {
	mu sync.Mutex

	PublishedCalls map[string]int
	DeliveredCalls map[string]int
	FaultedCalls   map[string]int
	PrunedTotal    map[string]int
	SubscriberLast map[string]int
}

// NewMockObserver 创建 MockObserver
func NewMockObserver() *MockObserver {
	return &MockObserver{
		PublishedCalls: make(map[string]int),
		DeliveredCalls: make(map[string]int),
		FaultedCalls:   make(map[string]int),
		PrunedTotal:    make(map[string]int),
		SubscriberLast: make(map[string]int),
	}
}

func (m *MockObserver) Published(event string, _ int) {
	m.mu.Lock()
	m.PublishedCalls[event]++
	m.mu.Unlock()
}

func (m *MockObserver) Delivered(event, thread string) {
	m.mu.Lock()
	m.DeliveredCalls[event+"/"+thread]++
	m.mu.Unlock()
}

func (m *MockObserver) Pruned(event string, n int) {
	m.mu.Lock()
	m.PrunedTotal[event] += n
	m.mu.Unlock()
}

func (m *MockObserver) Faulted(event, thread string) {
	m.mu.Lock()
	m.FaultedCalls[event+"/"+thread]++
	m.mu.Unlock()
}

func (m *MockObserver) Subscribers(event string, n int) {
	m.mu.Lock()
	m.SubscriberLast[event] = n
	m.mu.Unlock()
}

// PublishCount 发布次数
func (m *MockObserver) PublishCount(event string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.PublishedCalls[event]
}

// DeliveryCount 按事件和线程统计的投递次数
func (m *MockObserver) DeliveryCount(event, thread string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.DeliveredCalls[event+"/"+thread]
}
