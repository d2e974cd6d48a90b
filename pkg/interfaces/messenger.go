// Package interfaces 定义 winbus 公共接口
//
// 本文件定义消息总线（messenger）依赖的外部能力：
// UI 线程调度、后台调度以及指标观察者。
package interfaces

// Dispatcher 将回调封送到 UI 线程执行
//
// 由宿主 GUI 框架（或 dispatch.UILoop）提供，对消息总线是不透明的能力。
type Dispatcher interface {
	// Post 将 fn 排入 UI 线程队列，不阻塞调用者
	//
	// 返回 false 表示 UI 线程已不可用，调用者应自行执行 fn。
	Post(fn func()) bool
}

// Scheduler 后台调度器
//
// 以 fire-and-forget 方式异步执行回调，不阻塞调用者。
type Scheduler interface {
	// Schedule 调度 fn 在后台 goroutine 上执行
	//
	// 返回 false 表示调度器已不可用，调用者应自行执行 fn。
	Schedule(fn func()) bool
}

// MessengerObserver 消息总线观察者
//
// 实现必须并发安全且不阻塞，通常用于指标采集。
type MessengerObserver interface {
	// Published 一次发布开始，subscribers 为快照中存活的订阅数
	Published(event string, subscribers int)

	// Delivered 一次处理器调用完成（无论成功与否）
	Delivered(event, thread string)

	// Pruned 移除了 n 个已被回收的订阅
	Pruned(event string, n int)

	// Faulted 处理器 panic
	Faulted(event, thread string)

	// Subscribers 订阅数变化
	Subscribers(event string, n int)
}
