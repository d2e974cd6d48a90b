package messenger

import "fmt"

// PubSubEvent 携带单个载荷的类型化事件
//
// 通常嵌入到具名类型中，通过 GetEvent 获取共享实例：
//
//	type SettingsChangedEvent struct {
//	    messenger.PubSubEvent[types.Settings]
//	}
type PubSubEvent[T any] struct {
	EventBase[T]
}

// Subscribe 以强引用订阅
func (e *PubSubEvent[T]) Subscribe(action func(T), opts ...SubscribeOption) (SubscriptionToken, error) {
	if action == nil {
		return SubscriptionToken{}, fmt.Errorf("%w: nil action", ErrInvalidArgument)
	}
	return e.subscribe(Strong(action), nil, opts)
}

// SubscribeWhere 以强引用订阅，仅当 filter 返回 true 时调用 action
//
// filter 为 nil 等同于 Subscribe。
func (e *PubSubEvent[T]) SubscribeWhere(action func(T), filter func(T) bool, opts ...SubscribeOption) (SubscriptionToken, error) {
	if action == nil {
		return SubscriptionToken{}, fmt.Errorf("%w: nil action", ErrInvalidArgument)
	}
	var f Reference[func(T) bool]
	if filter != nil {
		f = Strong(filter)
	}
	return e.subscribe(Strong(action), f, opts)
}

// SubscribeReference 以给定引用订阅，通常配合 WeakAction 使用
//
// Resolve 在通道锁之外调用。
func (e *PubSubEvent[T]) SubscribeReference(action Reference[func(T)], opts ...SubscribeOption) (SubscriptionToken, error) {
	return e.subscribe(action, nil, opts)
}

// SubscribeReferenceWhere 以给定的处理器和过滤器引用订阅
func (e *PubSubEvent[T]) SubscribeReferenceWhere(action Reference[func(T)], filter Reference[func(T) bool], opts ...SubscribeOption) (SubscriptionToken, error) {
	return e.subscribe(action, filter, opts)
}

// Publish 发布载荷
//
// 返回前所有 PublisherThread 处理器都已执行；UI/后台处理器可能仍在排队。
// 同步处理器的 panic 以 *HandlerFault 合并返回。
func (e *PubSubEvent[T]) Publish(payload T) error {
	return e.publish(payload)
}

// ============================================================================
// 弱引用构造
// ============================================================================

// WeakAction 构造处理器的弱引用
//
// method 应为方法表达式（如 (*ViewModel).OnWindows），不能捕获 owner。
func WeakAction[O, T any](owner *O, method func(*O, T)) Reference[func(T)] {
	return Weak(owner, func(o *O) func(T) {
		if method == nil {
			return nil
		}
		return func(payload T) { method(o, payload) }
	})
}

// WeakFilter 构造过滤器的弱引用
func WeakFilter[O, T any](owner *O, predicate func(*O, T) bool) Reference[func(T) bool] {
	return Weak(owner, func(o *O) func(T) bool {
		if predicate == nil {
			return nil
		}
		return func(payload T) bool { return predicate(o, payload) }
	})
}

// SubscribeWeak 以弱引用订阅 owner 的方法
//
// owner 不可达后订阅在下一次发布时被清理。
func SubscribeWeak[O, T any](e *PubSubEvent[T], owner *O, method func(*O, T), opts ...SubscribeOption) (SubscriptionToken, error) {
	if owner == nil || method == nil {
		return SubscriptionToken{}, fmt.Errorf("%w: nil owner or method", ErrInvalidArgument)
	}
	return e.SubscribeReference(WeakAction(owner, method), opts...)
}

// SubscribeWeakWhere 以弱引用订阅，处理器和过滤器都绑定到 owner
func SubscribeWeakWhere[O, T any](e *PubSubEvent[T], owner *O, method func(*O, T), filter func(*O, T) bool, opts ...SubscribeOption) (SubscriptionToken, error) {
	if owner == nil || method == nil {
		return SubscriptionToken{}, fmt.Errorf("%w: nil owner or method", ErrInvalidArgument)
	}
	var f Reference[func(T) bool]
	if filter != nil {
		f = WeakFilter(owner, filter)
	}
	return e.SubscribeReferenceWhere(WeakAction(owner, method), f, opts...)
}
