// Package messenger 实现进程内发布/订阅消息总线
//
// 用于解耦视图模型等组件：发布者与订阅者只共享事件类型，
// 不持有彼此的引用。支持：
//   - 多订阅者，按订阅顺序同步分发
//   - 订阅过滤器（仅对满足条件的载荷调用处理器）
//   - 弱引用订阅（订阅不会让视图模型保持存活）
//   - 三种调度策略：发布者线程、UI 线程、后台线程
//
// # 快速开始
//
//	type WindowsRefreshed struct {
//	    messenger.PubSubEvent[[]types.Window]
//	}
//
//	agg := messenger.NewAggregator()
//	ev := messenger.GetEvent[WindowsRefreshed](agg)
//
//	// 强引用订阅
//	token, _ := ev.Subscribe(func(ws []types.Window) { ... })
//	defer ev.Unsubscribe(token)
//
//	// 弱引用订阅：vm 不可达后订阅自动失效
//	messenger.SubscribeWeak(ev, vm, (*ViewModel).onWindows, messenger.OnThread(messenger.UIThread))
//
//	err := ev.Publish(windows)
//
// # 弱引用
//
// SubscribeWeak 只保存 owner 的 weak.Pointer 和方法表达式。
// 传入的方法不能是捕获了 owner 的闭包，否则 owner 永远不会被回收。
// 已回收的订阅在下一次发布时被惰性清理，不报告错误。
//
// # 并发安全
//
//   - 订阅/取消订阅/发布可在任意 goroutine 并发调用
//   - 发布时在锁内生成订阅快照，锁外调用处理器
//   - 发布过程中新增的订阅不参与本次发布
//
// # 故障处理
//
// 同步处理器的 panic 被逐个隔离，全部订阅者尝试完毕后以
// multierr 合并返回给发布者（元素类型为 *HandlerFault）。
// 异步处理器的 panic 不会到达发布者：限流记录日志，
// 并在启用故障路由时发布到 DeadLetterEvent。
package messenger
