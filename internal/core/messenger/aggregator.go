package messenger

import (
	"reflect"
	"slices"
	"sync"
)

// Channel 可由聚合器创建的事件类型
//
// 嵌入 PubSubEvent[T] 或 Signal 的具名类型自动满足该约束。
type Channel interface {
	bindEnvironment(name string, env *environment)
}

// Aggregator 事件聚合器
//
// 将事件类型映射到唯一的共享通道实例。所有请求同一事件类型的
// 生产者和消费者看到同一个订阅列表。进程内创建一次，
// 通过依赖注入传递给各组件，不提供重置操作。
type Aggregator struct {
	mu     sync.RWMutex
	events map[reflect.Type]any
	env    *environment
}

// NewAggregator 创建事件聚合器
func NewAggregator(opts ...Option) *Aggregator {
	settings := defaultAggregatorSettings()
	for _, opt := range opts {
		if opt != nil {
			opt(settings)
		}
	}

	a := &Aggregator{
		events: make(map[reflect.Type]any),
		env:    newEnvironment(settings),
	}
	if settings.routeFaults {
		a.env.route = a.routeFault
	}
	return a
}

// GetEvent 获取事件类型 E 的共享实例
//
// 首次请求时创建并登记，之后返回同一指针。
//
//	ev := messenger.GetEvent[events.SettingsChangedEvent](agg)
func GetEvent[E any, PE interface {
	*E
	Channel
}](a *Aggregator) PE {
	typ := reflect.TypeFor[E]()

	a.mu.RLock()
	ev, ok := a.events[typ]
	a.mu.RUnlock()
	if ok {
		return ev.(PE)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	// 双重检查：其他 goroutine 可能已经创建
	if ev, ok := a.events[typ]; ok {
		return ev.(PE)
	}

	created := PE(new(E))
	created.bindEnvironment(typ.String(), a.env)
	a.events[typ] = created

	logger.Debug("创建事件通道", "event", typ.String())
	return created
}

// EventTypes 返回已创建的事件通道名称（排序）
func (a *Aggregator) EventTypes() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	names := make([]string, 0, len(a.events))
	for typ := range a.events {
		names = append(names, typ.String())
	}
	slices.Sort(names)
	return names
}

// routeFault 将异步故障发布到死信事件
func (a *Aggregator) routeFault(report FaultReport) {
	// 死信订阅者自身的故障只记录日志
	if report.Event == deadLetterName {
		return
	}
	if err := GetEvent[DeadLetterEvent](a).Publish(report); err != nil {
		logger.Warn("死信订阅者 panic", "err", err)
	}
}
