// Package viewmodel 提供界面层的状态模型
//
// 视图模型通过弱引用订阅事件：订阅本身不会阻止视图模型被回收，
// 视图关闭后即使忘记调用 Close，失效的订阅也会在下一次发布时被清理。
// 回调在 UI 线程上执行。
package viewmodel

// notify 非阻塞地发出变更通知
func notify(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}
