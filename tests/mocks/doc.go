// Package mocks 提供统一的测试 Mock 实现
//
// # 调度 Mock
//
//   - MockDispatcher: 模拟 interfaces.Dispatcher，回调排队直到 Drain
//   - MockScheduler: 模拟 interfaces.Scheduler，回调排队直到 RunAll，Close 后拒绝调度
//
// # 观察者 Mock
//
//   - MockObserver: 模拟 interfaces.MessengerObserver，记录全部回调
//
// # 窗口 Mock
//
//   - MockWindowSource: 模拟 windows.Source
//
// # 设计原则
//
// 1. 函数式注入: 每个 Mock 都支持通过 XxxFunc 字段注入自定义行为
// 2. 调用记录: 关键 Mock 记录调用历史，便于验证测试行为
//
// # 使用示例
//
//	d := mocks.NewMockDispatcher()
//	agg := messenger.NewAggregator(messenger.WithDispatcher(d))
//	_ = ev.Publish(42)
//	d.Drain() // 在测试 goroutine 上执行 UI 回调
package mocks
