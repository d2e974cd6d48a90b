package messenger

import (
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/multierr"
)

// EventBase 事件通道
//
// 持有一个事件类型的有序订阅列表（按订阅顺序）。
// 零值可用；由 Aggregator 创建时共享聚合器的调度环境。
type EventBase[T any] struct {
	mu   sync.Mutex
	subs []*Subscription[T]
	name string
	env  *environment
}

// bindEnvironment 由聚合器在创建通道时调用
func (b *EventBase[T]) bindEnvironment(name string, env *environment) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.name = name
	b.env = env
}

// contextLocked 返回调度上下文，调用者必须持有 b.mu
func (b *EventBase[T]) contextLocked() dispatchContext {
	if b.name == "" {
		b.name = fmt.Sprintf("PubSubEvent[%s]", reflect.TypeFor[T]())
	}
	env := b.env
	if env == nil {
		env = defaultEnv
	}
	return dispatchContext{name: b.name, env: env}
}

// Name 返回通道名称（用于日志和指标）
func (b *EventBase[T]) Name() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.contextLocked().name
}

// subscribe 追加订阅并返回令牌
func (b *EventBase[T]) subscribe(action Reference[func(T)], filter Reference[func(T) bool], opts []SubscribeOption) (SubscriptionToken, error) {
	if action == nil {
		return SubscriptionToken{}, fmt.Errorf("%w: nil action", ErrInvalidArgument)
	}
	if fn, ok := action.Resolve(); !ok || fn == nil {
		return SubscriptionToken{}, fmt.Errorf("%w: action does not resolve", ErrInvalidArgument)
	}
	settings, err := applySubscribeOptions(opts)
	if err != nil {
		return SubscriptionToken{}, err
	}

	sub := newSubscription(action, filter, settings.thread)

	b.mu.Lock()
	b.subs = append(b.subs, sub)
	n := len(b.subs)
	dc := b.contextLocked()
	b.mu.Unlock()

	dc.env.observer.Subscribers(dc.name, n)
	logger.Debug("新增订阅", "event", dc.name, "token", sub.token.String(), "thread", sub.thread.String())
	return sub.token, nil
}

// Unsubscribe 取消订阅
//
// 令牌未知或已取消时为空操作，便于幂等清理。
// 已经调度到 UI/后台线程的调用不会被撤回。
func (b *EventBase[T]) Unsubscribe(token SubscriptionToken) {
	b.mu.Lock()
	removed := false
	for i, s := range b.subs {
		if s.token == token {
			copy(b.subs[i:], b.subs[i+1:])
			b.subs[len(b.subs)-1] = nil
			b.subs = b.subs[:len(b.subs)-1]
			removed = true
			break
		}
	}
	n := len(b.subs)
	dc := b.contextLocked()
	b.mu.Unlock()

	if removed {
		dc.env.observer.Subscribers(dc.name, n)
	}
}

// Contains 令牌对应的订阅是否仍在列表中
func (b *EventBase[T]) Contains(token SubscriptionToken) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, s := range b.subs {
		if s.token == token {
			return true
		}
	}
	return false
}

// Len 返回当前订阅数（包括尚未清理的失效订阅）
func (b *EventBase[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.subs)
}

// publish 发布载荷
//
// 同步处理器按订阅顺序调用；全部尝试后返回合并的故障。
func (b *EventBase[T]) publish(payload T) error {
	strategies, dc := b.pruneAndReturnStrategies()
	dc.env.observer.Published(dc.name, len(strategies))

	var errs error
	for _, execute := range strategies {
		if err := execute(payload); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

// pruneAndReturnStrategies 生成执行快照并清理失效订阅
//
// 引用在锁外解析，Resolve 可以安全地回调本通道。
func (b *EventBase[T]) pruneAndReturnStrategies() ([]func(T) error, dispatchContext) {
	b.mu.Lock()
	dc := b.contextLocked()
	snapshot := append([]*Subscription[T](nil), b.subs...)
	b.mu.Unlock()

	strategies := make([]func(T) error, 0, len(snapshot))
	var dead map[*Subscription[T]]struct{}
	for _, s := range snapshot {
		execute := s.executionStrategy(dc)
		if execute == nil {
			if dead == nil {
				dead = make(map[*Subscription[T]]struct{})
			}
			dead[s] = struct{}{}
			continue
		}
		strategies = append(strategies, execute)
	}
	if len(dead) == 0 {
		return strategies, dc
	}

	b.mu.Lock()
	live := b.subs[:0]
	for _, s := range b.subs {
		if _, ok := dead[s]; !ok {
			live = append(live, s)
		}
	}
	pruned := len(b.subs) - len(live)
	clear(b.subs[len(live):])
	b.subs = live
	n := len(live)
	b.mu.Unlock()

	if pruned > 0 {
		logger.Debug("清理失效订阅", "event", dc.name, "pruned", pruned)
		dc.env.observer.Pruned(dc.name, pruned)
		dc.env.observer.Subscribers(dc.name, n)
	}
	return strategies, dc
}
