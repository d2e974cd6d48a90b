package messenger

import "fmt"

// Signal 无载荷事件
type Signal struct {
	EventBase[struct{}]
}

// Subscribe 以强引用订阅
func (s *Signal) Subscribe(action func(), opts ...SubscribeOption) (SubscriptionToken, error) {
	if action == nil {
		return SubscriptionToken{}, fmt.Errorf("%w: nil action", ErrInvalidArgument)
	}
	return s.SubscribeReference(Strong(action), opts...)
}

// SubscribeWhere 以强引用订阅，仅当 filter 返回 true 时调用 action
func (s *Signal) SubscribeWhere(action func(), filter func() bool, opts ...SubscribeOption) (SubscriptionToken, error) {
	if action == nil {
		return SubscriptionToken{}, fmt.Errorf("%w: nil action", ErrInvalidArgument)
	}
	var f Reference[func(struct{}) bool]
	if filter != nil {
		f = Strong(func(struct{}) bool { return filter() })
	}
	return s.subscribe(signalAction{Strong(action)}, f, opts)
}

// SubscribeReference 以给定引用订阅，通常配合 WeakSignal 使用
func (s *Signal) SubscribeReference(action Reference[func()], opts ...SubscribeOption) (SubscriptionToken, error) {
	if action == nil {
		return SubscriptionToken{}, fmt.Errorf("%w: nil action", ErrInvalidArgument)
	}
	return s.subscribe(signalAction{action}, nil, opts)
}

// Publish 发布信号
func (s *Signal) Publish() error {
	return s.publish(struct{}{})
}

// WeakSignal 构造无参处理器的弱引用
func WeakSignal[O any](owner *O, method func(*O)) Reference[func()] {
	return Weak(owner, func(o *O) func() {
		if method == nil {
			return nil
		}
		return func() { method(o) }
	})
}

// signalAction 将 func() 引用适配为 func(struct{}) 引用
type signalAction struct {
	ref Reference[func()]
}

func (a signalAction) Resolve() (func(struct{}), bool) {
	fn, ok := a.ref.Resolve()
	if !ok || fn == nil {
		return nil, ok
	}
	return func(struct{}) { fn() }, true
}

// SubscribeSignalWeak 以弱引用订阅 owner 的无参方法
func SubscribeSignalWeak[O any](s *Signal, owner *O, method func(*O), opts ...SubscribeOption) (SubscriptionToken, error) {
	if owner == nil || method == nil {
		return SubscriptionToken{}, fmt.Errorf("%w: nil owner or method", ErrInvalidArgument)
	}
	return s.SubscribeReference(WeakSignal(owner, method), opts...)
}
