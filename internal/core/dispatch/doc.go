// Package dispatch 提供消息总线的两种异步调度能力
//
//   - UILoop: 单 goroutine 的 FIFO 执行队列，充当 "UI 线程"
//   - Pool: 并发受限的后台调度器
//
// 两者都不会阻塞调用者：UILoop 队列无界，Pool 的等待发生在
// 新启动的 goroutine 内。
package dispatch
