package messenger

// Subscription 一次订阅
//
// 由处理器引用、可选的过滤器引用、令牌和调度策略组成。
// 状态：Created → Active → Dead。处理器（或过滤器）的 owner
// 被回收后进入 Dead，在下一次发布时被发现并清理。
type Subscription[T any] struct {
	action Reference[func(T)]
	filter Reference[func(T) bool] // nil 表示不过滤
	token  SubscriptionToken
	thread ThreadOption
}

func newSubscription[T any](action Reference[func(T)], filter Reference[func(T) bool], thread ThreadOption) *Subscription[T] {
	return &Subscription[T]{
		action: action,
		filter: filter,
		token:  newToken(),
		thread: thread,
	}
}

// Token 返回订阅令牌
func (s *Subscription[T]) Token() SubscriptionToken {
	return s.token
}

// Thread 返回调度策略
func (s *Subscription[T]) Thread() ThreadOption {
	return s.thread
}

// executionStrategy 生成本次发布的执行函数
//
// 返回 nil 表示订阅已失效，应被清理。返回的函数持有解析出的
// 处理器，因此 owner 在本次发布期间保持存活。
func (s *Subscription[T]) executionStrategy(dc dispatchContext) func(T) error {
	action, ok := s.action.Resolve()
	if !ok || action == nil {
		return nil
	}

	var filter func(T) bool
	if s.filter != nil {
		if filter, ok = s.filter.Resolve(); !ok || filter == nil {
			return nil
		}
	}

	return func(payload T) error {
		if filter != nil {
			accepted, fault := s.accepts(dc, filter, payload)
			if fault != nil {
				return fault
			}
			if !accepted {
				return nil
			}
		}
		return s.dispatch(dc, action, payload)
	}
}

// accepts 在发布者 goroutine 上评估过滤器
func (s *Subscription[T]) accepts(dc dispatchContext, filter func(T) bool, payload T) (ok bool, fault *HandlerFault) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			fault = &HandlerFault{Event: dc.name, Token: s.token, Thread: PublisherThread, Value: r}
			dc.env.observer.Faulted(dc.name, PublisherThread.String())
		}
	}()
	return filter(payload), nil
}

// dispatch 按调度策略调用处理器
func (s *Subscription[T]) dispatch(dc dispatchContext, action func(T), payload T) error {
	call := func() { action(payload) }

	switch s.thread {
	case UIThread:
		if d := dc.env.dispatcher; d != nil {
			if d.Post(func() { dc.invokeAsync(s.token, UIThread, call) }) {
				return nil
			}
		}
		// UI 线程不可用，退化为发布者线程
	case BackgroundThread:
		if dc.env.scheduler.Schedule(func() { dc.invokeAsync(s.token, BackgroundThread, call) }) {
			return nil
		}
		// 调度器已关闭，在发布者线程上执行，故障仍按异步处理，不返回给发布者
		dc.invokeAsync(s.token, BackgroundThread, call)
		return nil
	}

	if fault := dc.invoke(s.token, PublisherThread, call); fault != nil {
		return fault
	}
	return nil
}
